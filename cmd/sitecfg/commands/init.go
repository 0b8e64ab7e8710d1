package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	foundationerrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/load"
	"git.home.luguber.info/inful/sitecfg/internal/siteconfig"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool   `help:"Overwrite an existing configuration file"`
	Path  string `arg:"" optional:"" help:"File to write (default: --config)"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	path := i.Path
	if path == "" {
		path = root.Config
	}

	var format load.Format
	if root.Format != "" {
		f, err := load.ParseFormat(root.Format)
		if err != nil {
			return err
		}
		format = f
	} else if f, ok := load.FormatForPath(path); ok {
		format = f
	} else {
		return foundationerrors.ValidationError("cannot infer configuration format; pass --format").
			WithContext("path", path).
			Build()
	}

	if _, err := os.Stat(path); err == nil && !i.Force {
		return foundationerrors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to inspect configuration file").
			WithContext("path", path).
			Build()
	}

	cfg, err := siteconfig.Build(starterConfig())
	if err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryInternal, "starter configuration is invalid").Build()
	}
	data, err := load.Encode(cfg, format)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to create configuration directory").
			WithContext("path", path).
			Build()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to write configuration file").
			WithContext("path", path).
			Build()
	}
	fmt.Fprintf(g.Out, "Wrote %s configuration to %s\n", format, path)
	return nil
}

func starterConfig() siteconfig.Record {
	return siteconfig.Record{
		{Key: "title", Value: "My Documentation"},
		{Key: "description", Value: "Project documentation"},
		{Key: "themeConfig", Value: siteconfig.Record{
			{Key: "nav", Value: []any{
				siteconfig.Record{{Key: "text", Value: "GitHub"}, {Key: "link", Value: "https://github.com/example/project"}},
			}},
			{Key: "sidebar", Value: siteconfig.Record{
				{Key: "/", Value: []any{"", "getting-started"}},
			}},
		}},
	}
}
