// Package load reads site configuration files into the untyped raw form that
// siteconfig.Build validates.
package load

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	foundationerrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
	"git.home.luguber.info/inful/sitecfg/internal/siteconfig"
)

// Source is a decoded, not yet validated, configuration file.
type Source struct {
	Path   string
	Format Format
	// Raw holds siteconfig.Record mappings, []any sequences and scalars.
	Raw any
}

// File reads and decodes the configuration at path.
func File(path string, opts ...Option) (*Source, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	format := o.format
	if format == "" {
		f, ok := FormatForPath(path)
		if !ok {
			return nil, foundationerrors.ConfigError("cannot infer configuration format from file extension").
				WithContext("path", path).
				Build()
		}
		format = f
	}

	data, err := os.ReadFile(path)
	if err != nil {
		msg := "failed to read configuration file"
		if errors.Is(err, fs.ErrNotExist) {
			msg = "configuration file not found"
		}
		return nil, foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, msg).
			WithContext("path", path).
			Build()
	}

	if o.expandEnv {
		if err := loadEnvFiles(o.envFiles); err != nil {
			return nil, err
		}
	}

	raw, err := Decode(data, format, path, o.expandEnv)
	if err != nil {
		return nil, err
	}
	slog.Debug("Decoded configuration", logfields.Path(path), logfields.Format(string(format)))
	return &Source{Path: path, Format: format, Raw: raw}, nil
}

// Decode parses data in the given format. name is used in error positions.
// With expand, ${VAR} references are replaced from the environment before
// parsing and $$ stands for a literal $; HCL exposes the environment as
// env.NAME instead.
func Decode(data []byte, format Format, name string, expand bool) (any, error) {
	if expand && format != FormatHCL {
		data = []byte(expandEnv(string(data), os.Getenv))
	}

	var (
		raw any
		err error
	)
	switch format {
	case FormatYAML, FormatJSON:
		raw, err = parseYAML(data)
	case FormatVuePress:
		raw, err = parseVuePress(data, name)
	case FormatHCL:
		raw, err = parseHCL(data, name, expand)
	default:
		return nil, foundationerrors.ValidationError("unknown configuration format").
			WithContext("format", string(format)).
			Build()
	}
	if err != nil {
		return nil, foundationerrors.ConfigError("failed to parse configuration").
			WithCause(err).
			WithContext("path", name).
			WithContext("format", string(format)).
			Build()
	}
	return raw, nil
}

// Site loads the file at path and builds the validated configuration.
// Validation failures are returned as classified config errors that still
// unwrap to *siteconfig.ConfigError.
func Site(path string, opts ...Option) (*siteconfig.SiteConfig, error) {
	src, err := File(path, opts...)
	if err != nil {
		return nil, err
	}
	cfg, err := siteconfig.Build(src.Raw)
	if err != nil {
		var cerr *siteconfig.ConfigError
		if errors.As(err, &cerr) {
			return nil, cerr.Classify().WithContext("path", path)
		}
		return nil, err
	}
	return cfg, nil
}
