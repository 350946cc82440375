package types

import (
	"strconv"
	"strings"
)

type EnvType int

const (
	EnvTypeUnknown EnvType = iota
	EnvTypeSecret
	EnvTypeDatabase
	EnvTypeConfig
	EnvTypeURL
	EnvTypeBoolean
	EnvTypeNumeric
)

func (t EnvType) String() string {
	switch t {
	case EnvTypeSecret:
		return "secret"
	case EnvTypeDatabase:
		return "database"
	case EnvTypeConfig:
		return "config"
	case EnvTypeURL:
		return "url"
	case EnvTypeBoolean:
		return "boolean"
	case EnvTypeNumeric:
		return "numeric"
	default:
		return "unknown"
	}
}

// Name segments (split on _ - .) that mark a variable as holding a secret.
var secretSegments = map[string]bool{
	"secret": true, "key": true, "apikey": true, "token": true,
	"password": true, "passwd": true, "pass": true, "pwd": true,
	"auth": true, "credential": true, "credentials": true, "cred": true,
	"private": true, "cert": true, "certificate": true, "jwt": true,
	"session": true, "cookie": true, "salt": true, "signing": true,
	"encryption": true, "cipher": true, "webhook": true, "vault": true,
}

var databaseMarkers = []string{
	"database_url", "db_url", "dsn", "connection_string", "connectionstring",
	"postgres_url", "mysql_url", "mongodb_url", "redis_url",
}

// Classify guesses what kind of value a variable holds and whether it
// should be treated as sensitive. It only annotates; nothing is dropped.
func Classify(name, value string) (EnvType, bool) {
	lower := strings.ToLower(name)

	for _, marker := range databaseMarkers {
		if strings.Contains(lower, marker) {
			return EnvTypeDatabase, true
		}
	}

	for _, segment := range splitName(lower) {
		if secretSegments[segment] {
			return EnvTypeSecret, true
		}
	}

	switch {
	case strings.HasPrefix(value, "http://"), strings.HasPrefix(value, "https://"),
		strings.HasSuffix(lower, "_url"), strings.HasSuffix(lower, "_uri"):
		return EnvTypeURL, false
	case value == "true", value == "false", value == `"true"`, value == `"false"`:
		return EnvTypeBoolean, false
	case isNumeric(strings.Trim(value, `"'`)):
		return EnvTypeNumeric, false
	}

	return EnvTypeConfig, false
}

func splitName(name string) []string {
	return strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})
}

func isNumeric(value string) bool {
	_, err := strconv.ParseFloat(value, 64)
	return err == nil
}
