package commands

import (
	"fmt"
	"os"

	foundationerrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/load"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
	"git.home.luguber.info/inful/sitecfg/internal/pages"
)

// PagesCmd implements the 'pages' command.
type PagesCmd struct {
	Docs string `short:"d" help:"Docs root directory (default: parent of .vuepress, else the config file's directory)"`
}

func (p *PagesCmd) Run(g *Global, root *CLI) error {
	opts, err := root.loadOptions()
	if err != nil {
		return err
	}
	cfg, err := load.Site(root.Config, opts...)
	if err != nil {
		return err
	}

	docs := p.Docs
	if docs == "" {
		docs = pages.DocsRoot(root.Config)
	}
	report, err := pages.Resolve(cfg, os.DirFS(docs))
	if err != nil {
		return err
	}

	for _, page := range report.Pages {
		status := "ok"
		if !page.Found {
			status = "missing"
		}
		fmt.Fprintf(g.Out, "%-7s %s %q -> %s\n", status, page.Section, string(page.Ref), page.Path)
	}

	missing := report.Missing()
	g.Logger.Debug("Resolved sidebar pages", logfields.Path(docs), logfields.Pages(len(report.Pages)), logfields.Missing(len(missing)))
	if len(missing) > 0 {
		return foundationerrors.ConfigError("sidebar references missing pages").
			WithContext("missing", len(missing)).
			WithContext("docs", docs).
			Build()
	}
	return nil
}
