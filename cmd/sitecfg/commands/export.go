package commands

import (
	"git.home.luguber.info/inful/sitecfg/internal/load"
)

// ExportCmd implements the 'export' command.
type ExportCmd struct {
	To string `short:"t" default:"yaml" enum:"yaml,json,vuepress,hcl" help:"Output format (yaml, json, vuepress, hcl)"`
}

func (e *ExportCmd) Run(g *Global, root *CLI) error {
	opts, err := root.loadOptions()
	if err != nil {
		return err
	}
	cfg, err := load.Site(root.Config, opts...)
	if err != nil {
		return err
	}
	out, err := load.Encode(cfg, load.Format(e.To))
	if err != nil {
		return err
	}
	_, err = g.Out.Write(out)
	return err
}
