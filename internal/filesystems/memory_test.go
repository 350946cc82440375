package filesystems

import (
	"errors"
	"io/fs"
	"slices"
	"testing"
)

func TestMemoryFS_ReadFile(t *testing.T) {
	mfs := NewMemoryFS()
	mfs.AddFile("charts/api/templates/deployment.yaml", []byte("env:\n"))

	content, err := mfs.ReadFile("charts/api/templates/deployment.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(content) != "env:\n" {
		t.Errorf("unexpected content %q", content)
	}

	_, err = mfs.ReadFile("charts/missing.yaml")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestMemoryFS_WalkOrder(t *testing.T) {
	mfs := NewMemoryFS()
	mfs.AddFile("b.yaml", []byte("1"))
	mfs.AddFile("a/z.yaml", []byte("2"))
	mfs.AddFile("a/sub/y.yaml", []byte("3"))
	mfs.AddDir("c")

	var visited []string
	err := mfs.Walk(".", func(path string, info FileInfo, err error) error {
		if err != nil {
			return err
		}
		visited = append(visited, path)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{".", "a", "a/sub", "a/sub/y.yaml", "a/z.yaml", "b.yaml", "c"}
	if !slices.Equal(visited, expected) {
		t.Errorf("expected %v, got %v", expected, visited)
	}
}

func TestMemoryFS_WalkSkipDir(t *testing.T) {
	mfs := NewMemoryFS()
	mfs.AddFile("keep/a.yaml", []byte("1"))
	mfs.AddFile("skip/b.yaml", []byte("2"))
	mfs.AddFile("z.yaml", []byte("3"))

	var visited []string
	err := mfs.Walk(".", func(path string, info FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() && path == "skip" {
			return SkipDir
		}
		visited = append(visited, path)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{".", "keep", "keep/a.yaml", "z.yaml"}
	if !slices.Equal(visited, expected) {
		t.Errorf("expected %v, got %v", expected, visited)
	}
}

func TestMemoryFS_WalkMissingRoot(t *testing.T) {
	mfs := NewMemoryFS()

	err := mfs.Walk("missing", func(path string, info FileInfo, err error) error {
		return err
	})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestMemoryFS_PathOperations(t *testing.T) {
	mfs := NewMemoryFS()

	if got := mfs.Join("charts", "api", "values.yaml"); got != "charts/api/values.yaml" {
		t.Errorf("Join returned %q", got)
	}
	if got := mfs.Base("charts/api/values.yaml"); got != "values.yaml" {
		t.Errorf("Base returned %q", got)
	}
}

func TestMemoryFS_Rel(t *testing.T) {
	mfs := NewMemoryFS()

	tests := []struct {
		base, target, want string
	}{
		{"dir", "dir", "."},
		{"dir", "dir/subdir/file.yaml", "subdir/file.yaml"},
		{".", "charts/a.yaml", "charts/a.yaml"},
		{"/srv", "/srv/k8s/pod.yml", "k8s/pod.yml"},
	}

	for _, tt := range tests {
		got, err := mfs.Rel(tt.base, tt.target)
		if err != nil {
			t.Fatalf("Rel(%q, %q): unexpected error: %v", tt.base, tt.target, err)
		}
		if got != tt.want {
			t.Errorf("Rel(%q, %q) = %q, want %q", tt.base, tt.target, got, tt.want)
		}
	}

	if _, err := mfs.Rel("dir", "other/file.yaml"); err == nil {
		t.Error("expected error for path outside base")
	}
}

func TestMemoryFS_WalkInfo(t *testing.T) {
	mfs := NewMemoryFS()
	mfs.AddFile("test.yaml", []byte("hello world"))
	mfs.AddDir("testdir")

	err := mfs.Walk(".", func(path string, info FileInfo, err error) error {
		if err != nil {
			return err
		}

		switch path {
		case ".":
		case "test.yaml":
			if info.Size() != 11 {
				t.Errorf("expected size 11, got %d", info.Size())
			}
			if info.IsDir() {
				t.Error("expected file to not be directory")
			}
		case "testdir":
			if !info.IsDir() || !info.Mode().IsDir() {
				t.Error("expected directory info to report as directory")
			}
		default:
			t.Errorf("unexpected path %q", path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
