package load

import (
	"path/filepath"
	"strings"

	foundationerrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/foundation/normalization"
)

// Format identifies the syntax of a configuration file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	// FormatVuePress is a JavaScript/TypeScript module exporting an object literal.
	FormatVuePress Format = "vuepress"
	FormatHCL      Format = "hcl"
)

var formatNames = normalization.NewTable(map[string]Format{
	"yaml":       FormatYAML,
	"yml":        FormatYAML,
	"json":       FormatJSON,
	"vuepress":   FormatVuePress,
	"js":         FormatVuePress,
	"javascript": FormatVuePress,
	"ts":         FormatVuePress,
	"hcl":        FormatHCL,
})

var extensionFormats = normalization.NewTableWith(map[string]Format{
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".json": FormatJSON,
	".js":   FormatVuePress,
	".cjs":  FormatVuePress,
	".mjs":  FormatVuePress,
	".ts":   FormatVuePress,
	".hcl":  FormatHCL,
}, strings.ToLower)

// ParseFormat resolves a user-supplied format name, case-insensitively.
func ParseFormat(name string) (Format, error) {
	if f, ok := formatNames.Lookup(name); ok {
		return f, nil
	}
	return "", foundationerrors.ValidationError("unknown configuration format").
		WithContext("format", name).
		WithContext("valid", strings.Join(formatNames.ValidKeys(), ",")).
		Build()
}

// FormatForPath infers the format from the file extension.
func FormatForPath(path string) (Format, bool) {
	return extensionFormats.Lookup(filepath.Ext(path))
}
