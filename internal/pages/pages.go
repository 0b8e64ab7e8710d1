// Package pages maps sidebar page references onto markdown files in the
// documentation source tree.
package pages

import (
	"errors"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	foundationerrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/siteconfig"
)

// Page is one sidebar entry and the file it resolved to.
type Page struct {
	Section string
	Ref     siteconfig.PageRef
	// Path is the matched file, or the preferred candidate when Found is false.
	Path  string
	Found bool
}

// Report lists every sidebar entry in sidebar order.
type Report struct {
	Pages []Page
}

// Missing returns the entries without a backing file.
func (r *Report) Missing() []Page {
	var out []Page
	for _, p := range r.Pages {
		if !p.Found {
			out = append(out, p)
		}
	}
	return out
}

// Resolve looks up every page of cfg in fsys, which is rooted at the docs
// directory. Only existence is checked.
func Resolve(cfg *siteconfig.SiteConfig, fsys fs.FS) (*Report, error) {
	report := &Report{Pages: make([]Page, 0, cfg.PageCount())}
	for _, section := range cfg.Sections() {
		for _, ref := range section.Pages {
			page := Page{Section: section.Prefix, Ref: ref}
			paths := Candidates(section.Prefix, ref)
			page.Path = paths[0]
			for _, p := range paths {
				ok, err := isFile(fsys, p)
				if err != nil {
					return nil, foundationerrors.WrapError(err, foundationerrors.CategoryFileSystem, "failed to inspect page").
						WithContext("section", section.Prefix).
						WithContext("ref", string(ref)).
						Build()
				}
				if ok {
					page.Path = p
					page.Found = true
					break
				}
			}
			report.Pages = append(report.Pages, page)
		}
	}
	return report, nil
}

// Candidates lists the files a reference may point at, most specific first.
// An empty reference or one ending in "/" names the directory's README.md;
// references starting with "/" ignore the section prefix.
func Candidates(prefix string, ref siteconfig.PageRef) []string {
	r := string(ref)
	var base string
	if strings.HasPrefix(r, "/") {
		base = path.Clean(strings.TrimPrefix(r, "/"))
	} else {
		base = path.Join(strings.Trim(prefix, "/"), r)
	}
	if base == "" {
		base = "."
	}

	switch {
	case r == "" || strings.HasSuffix(r, "/"):
		return []string{path.Join(base, "README.md"), path.Join(base, "index.md")}
	case strings.HasSuffix(r, ".md"):
		return []string{base}
	default:
		return []string{base + ".md", path.Join(base, "README.md"), path.Join(base, "index.md")}
	}
}

// DocsRoot guesses the docs directory for a configuration file: the parent of
// a .vuepress directory, otherwise the file's own directory.
func DocsRoot(configPath string) string {
	dir := filepath.Dir(configPath)
	if filepath.Base(dir) == ".vuepress" {
		return filepath.Dir(dir)
	}
	return dir
}

func isFile(fsys fs.FS, name string) (bool, error) {
	if !fs.ValidPath(name) {
		return false, nil
	}
	info, err := fs.Stat(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}
