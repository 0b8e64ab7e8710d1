package load

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	foundationerrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
	"github.com/joho/godotenv"
)

// loadEnvFiles loads every existing dotenv file. Variables already present in
// the environment win over file values.
func loadEnvFiles(paths []string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to load environment file").
				WithContext("path", path).
				Build()
		}
		slog.Debug("Loaded environment variables", logfields.Path(path))
	}
	return nil
}

// expandEnv replaces ${NAME} with lookup(NAME) and $$ with $. Any other $
// is kept as written, so prices and regexps in titles survive.
func expandEnv(s string, lookup func(string) string) string {
	if !strings.Contains(s, "$") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '$' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		switch s[i+1] {
		case '$':
			b.WriteByte('$')
			i++
			continue
		case '{':
			end := strings.IndexByte(s[i+2:], '}')
			if end >= 0 && isEnvName(s[i+2:i+2+end]) {
				b.WriteString(lookup(s[i+2 : i+2+end]))
				i += 2 + end
				continue
			}
		}
		b.WriteByte('$')
	}
	return b.String()
}

// escapeEnv is the inverse of expandEnv for text that holds no references:
// every $ that expandEnv would consume is doubled.
func escapeEnv(s string) string {
	if !strings.Contains(s, "$") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		b.WriteByte(s[i])
		if s[i] == '$' && i+1 < len(s) && (s[i+1] == '$' || s[i+1] == '{') {
			b.WriteByte('$')
		}
	}
	return b.String()
}

func isEnvName(name string) bool {
	if name == "" {
		return false
	}
	for i, c := range name {
		switch {
		case c == '_', c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
