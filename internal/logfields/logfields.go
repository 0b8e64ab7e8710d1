package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath       = "path"
	KeyFormat     = "format"
	KeyTitle      = "title"
	KeySection    = "section"
	KeyIndex      = "index"
	KeyField      = "field"
	KeyPages      = "pages"
	KeySections   = "sections"
	KeyNavLinks   = "nav_links"
	KeyMissing    = "missing"
	KeyEvent      = "event"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Format(f string) slog.Attr        { return slog.String(KeyFormat, f) }
func Title(t string) slog.Attr         { return slog.String(KeyTitle, t) }
func Section(s string) slog.Attr       { return slog.String(KeySection, s) }
func Index(i int) slog.Attr            { return slog.Int(KeyIndex, i) }
func Field(name string) slog.Attr      { return slog.String(KeyField, name) }
func Pages(n int) slog.Attr            { return slog.Int(KeyPages, n) }
func Sections(n int) slog.Attr         { return slog.Int(KeySections, n) }
func NavLinks(n int) slog.Attr         { return slog.Int(KeyNavLinks, n) }
func Missing(n int) slog.Attr          { return slog.Int(KeyMissing, n) }
func Event(op string) slog.Attr        { return slog.String(KeyEvent, op) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
