package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/sitecfg/internal/load"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
	"git.home.luguber.info/inful/sitecfg/internal/siteconfig"
	"git.home.luguber.info/inful/sitecfg/internal/watch"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct {
	Watch    bool          `short:"w" help:"Keep running and re-validate whenever the file changes"`
	Debounce time.Duration `default:"500ms" help:"Quiet period before re-validating in watch mode"`
}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	opts, err := root.loadOptions()
	if err != nil {
		return err
	}

	cfg, err := load.Site(root.Config, opts...)
	if !v.Watch {
		if err != nil {
			return err
		}
		v.summarize(g, root.Config, cfg)
		return nil
	}

	handle := func(cfg *siteconfig.SiteConfig, err error) {
		if err != nil {
			fmt.Fprintf(g.Out, "%s: invalid: %v\n", root.Config, err)
			g.Logger.Error("Configuration invalid", locationAttrs(root.Config, err)...)
			return
		}
		v.summarize(g, root.Config, cfg)
	}
	handle(cfg, err)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	w, err := watch.New(root.Config, handle, watch.WithDebounce(v.Debounce), watch.WithLoadOptions(opts...))
	if err != nil {
		return err
	}
	return w.Run(ctx)
}

// locationAttrs points the log line at the offending entry when err is a
// validation failure.
func locationAttrs(path string, err error) []any {
	attrs := []any{logfields.Path(path)}
	var cerr *siteconfig.ConfigError
	if errors.As(err, &cerr) {
		if cerr.Field != "" {
			attrs = append(attrs, logfields.Field(cerr.Field))
		}
		switch cerr.Kind {
		case siteconfig.KindInvalidNavLink:
			attrs = append(attrs, logfields.Field("themeConfig.nav"), logfields.Index(cerr.Index))
		case siteconfig.KindInvalidPageRef:
			attrs = append(attrs, logfields.Section(cerr.Section), logfields.Index(cerr.Index))
		case siteconfig.KindDuplicateSidebarPrefix, siteconfig.KindDuplicatePageRef:
			attrs = append(attrs, logfields.Section(cerr.Section))
		}
	}
	return append(attrs, logfields.Error(err))
}

func (v *ValidateCmd) summarize(g *Global, path string, cfg *siteconfig.SiteConfig) {
	g.Logger.Info("Configuration valid",
		logfields.Path(path),
		logfields.Title(cfg.Title()),
		logfields.NavLinks(len(cfg.NavLinks())),
		logfields.Sections(len(cfg.Sections())),
		logfields.Pages(cfg.PageCount()))
	fmt.Fprintf(g.Out, "%s: ok (%d nav links, %d sidebar sections, %d pages)\n",
		path, len(cfg.NavLinks()), len(cfg.Sections()), cfg.PageCount())
}
