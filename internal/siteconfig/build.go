package siteconfig

import "fmt"

// Build validates raw and returns the canonical SiteConfig, or the first
// violation as a *ConfigError.
//
// Fields are checked in a fixed order: title, description, themeConfig, nav
// entries by index, then sidebar sections in key order. Null values of
// optional fields count as absent. Build is pure and may be called
// concurrently.
func Build(raw any) (*SiteConfig, error) {
	rec, ok := asRecord(raw)
	if !ok {
		return nil, notARecord(raw)
	}

	cfg := &SiteConfig{
		navLinks: []NavLink{},
		sections: []Section{},
	}

	title, _ := rec.Get("title")
	if s, ok := title.(string); ok && s != "" {
		cfg.title = s
	} else {
		return nil, missingField("title")
	}

	if v, ok := rec.Get("description"); ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return nil, invalidField("description", v)
		}
		cfg.description = s
	}

	themeRaw, ok := rec.Get("themeConfig")
	if !ok || themeRaw == nil {
		return cfg, nil
	}
	theme, ok := asRecord(themeRaw)
	if !ok {
		return nil, invalidField("themeConfig", themeRaw)
	}

	if v, ok := theme.Get("nav"); ok && v != nil {
		links, err := buildNav(v)
		if err != nil {
			return nil, err
		}
		cfg.navLinks = links
	}

	if v, ok := theme.Get("sidebar"); ok && v != nil {
		sections, err := buildSidebar(v)
		if err != nil {
			return nil, err
		}
		cfg.sections = sections
	}

	return cfg, nil
}

func buildNav(v any) ([]NavLink, error) {
	entries, ok := asSequence(v)
	if !ok {
		return nil, invalidField("themeConfig.nav", v)
	}
	links := make([]NavLink, 0, len(entries))
	for i, e := range entries {
		entry, ok := asRecord(e)
		if !ok {
			return nil, invalidNavLink(i, "entry is not a mapping")
		}
		text, _ := entry.Get("text")
		textStr, ok := text.(string)
		if !ok || textStr == "" {
			return nil, invalidNavLink(i, "text is missing or empty")
		}
		link, _ := entry.Get("link")
		linkStr, ok := link.(string)
		if !ok {
			return nil, invalidNavLink(i, "link is missing or not a string")
		}
		if problem := linkProblem(linkStr); problem != "" {
			return nil, invalidNavLink(i, problem)
		}
		links = append(links, NavLink{Text: textStr, Link: linkStr})
	}
	return links, nil
}

func buildSidebar(v any) ([]Section, error) {
	rec, ok := asRecord(v)
	if !ok {
		return nil, invalidField("themeConfig.sidebar", v)
	}
	sections := make([]Section, 0, len(rec))
	seenPrefix := make(map[string]string, len(rec))
	for _, f := range rec {
		folded := foldPrefix(f.Key)
		if earlier, dup := seenPrefix[folded]; dup {
			return nil, duplicateSidebarPrefix(f.Key, earlier)
		}
		seenPrefix[folded] = f.Key

		entries, ok := asSequence(f.Value)
		if !ok {
			return nil, invalidField(fmt.Sprintf("themeConfig.sidebar[%q]", f.Key), f.Value)
		}
		pages := make([]PageRef, 0, len(entries))
		seenRef := make(map[string]struct{}, len(entries))
		for i, e := range entries {
			ref, ok := e.(string)
			if !ok {
				return nil, invalidPageRef(f.Key, i, e)
			}
			if _, dup := seenRef[ref]; dup {
				return nil, duplicatePageRef(f.Key, ref)
			}
			seenRef[ref] = struct{}{}
			pages = append(pages, PageRef(ref))
		}
		sections = append(sections, Section{Prefix: f.Key, Pages: pages})
	}
	return sections, nil
}
