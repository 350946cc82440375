// Package envblock finds `env:` blocks in Kubernetes and Helm manifests and
// pulls the variable declarations out of them without a YAML parser.
//
// Structure is inferred from indentation only. Each block is bounded by the
// next line that sits at the header's own depth and starts a new key, so the
// scanner tolerates templated (non-valid YAML) Helm sources.
package envblock

import (
	"iter"
	"strings"
)

// IndentClass is the whitespace character a block is indented with.
type IndentClass byte

const (
	IndentSpace IndentClass = ' '
	IndentTab   IndentClass = '\t'
)

func (c IndentClass) String() string {
	if c == IndentTab {
		return "tab"
	}
	return "space"
}

// Signature identifies the nesting depth of an env: header.
type Signature struct {
	Class IndentClass
	Depth int
}

// Section is the body of one env: block, header line excluded.
type Section struct {
	Signature Signature

	// Line is the 1-based line number of the env: header.
	Line int

	// Start and End are byte offsets of Text within the scanned input.
	Start int
	End   int
	Text  string
}

// Options tunes the boundary heuristics. The zero value reproduces the
// classic scanner behavior.
type Options struct {
	// BoundValues stops the value search of an entry at the next entry
	// instead of the end of the section.
	BoundValues bool

	// EndOnDedent also ends a section at any non-blank, non-comment line
	// indented less than the header with the header's indent character.
	// Lines indented with the other character never end it.
	EndOnDedent bool
}

// line is one classified input line. text has its terminator removed.
type line struct {
	start      int
	next       int
	text       string
	terminated bool
}

func splitLines(text string) []line {
	var lines []line
	for start := 0; start < len(text); {
		i := strings.IndexByte(text[start:], '\n')
		if i < 0 {
			lines = append(lines, line{
				start: start,
				next:  len(text),
				text:  strings.TrimSuffix(text[start:], "\r"),
			})
			break
		}

		end := start + i
		lines = append(lines, line{
			start:      start,
			next:       end + 1,
			text:       strings.TrimSuffix(text[start:end], "\r"),
			terminated: true,
		})
		start = end + 1
	}
	return lines
}

// leading counts how many copies of c open the line.
func (l line) leading(c IndentClass) int {
	n := 0
	for n < len(l.text) && l.text[n] == byte(c) {
		n++
	}
	return n
}

// blank reports whether the line holds only whitespace or a comment.
func (l line) blank() bool {
	trimmed := strings.TrimLeft(l.text, " \t")
	return trimmed == "" || trimmed[0] == '#'
}

// header returns the signature of l when it is an `env:` header line.
// Mixed tab/space indentation never forms a header.
func (l line) header() (Signature, bool) {
	if !l.terminated {
		return Signature{}, false
	}

	sig := Signature{Class: IndentSpace}
	if l.text != "" && l.text[0] == '\t' {
		sig.Class = IndentTab
	}
	sig.Depth = l.leading(sig.Class)

	rest, ok := strings.CutPrefix(l.text[sig.Depth:], "env:")
	if !ok || strings.TrimRight(rest, " \t") != "" {
		return Signature{}, false
	}
	return sig, true
}

// closes reports whether l ends a section opened with signature s.
func (s Signature) closes(l line, opts Options) bool {
	n := l.leading(s.Class)
	if n == s.Depth {
		return n < len(l.text) && isLetter(l.text[n])
	}
	if !opts.EndOnDedent || n >= s.Depth || l.blank() {
		return false
	}
	return l.text[n] != ' ' && l.text[n] != '\t'
}

func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// Sections yields every env: block in text, in document order. Headers
// nested inside an earlier block produce their own section.
func Sections(text string, opts Options) iter.Seq[Section] {
	return func(yield func(Section) bool) {
		lines := splitLines(text)

		for i, l := range lines {
			sig, ok := l.header()
			if !ok {
				continue
			}

			end := len(text)
			for _, next := range lines[i+1:] {
				if sig.closes(next, opts) {
					end = next.start
					break
				}
			}

			section := Section{
				Signature: sig,
				Line:      i + 1,
				Start:     l.next,
				End:       end,
				Text:      text[l.next:end],
			}
			if !yield(section) {
				return
			}
		}
	}
}
