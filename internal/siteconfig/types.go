package siteconfig

import "slices"

// NavLink is one entry of the top navigation bar.
type NavLink struct {
	Text string
	Link string
}

// PageRef names a content page relative to its sidebar section prefix.
type PageRef string

// Section is one sidebar panel: a path prefix and its pages in display order.
type Section struct {
	Prefix string
	Pages  []PageRef
}

// SiteConfig is the validated configuration of a documentation site. It is
// immutable: accessors hand out copies.
type SiteConfig struct {
	title       string
	description string
	navLinks    []NavLink
	sections    []Section
}

// Title returns the site title. It is never empty.
func (c *SiteConfig) Title() string { return c.title }

// Description returns the site description, possibly empty.
func (c *SiteConfig) Description() string { return c.description }

// NavLinks returns the navigation links in author order.
func (c *SiteConfig) NavLinks() []NavLink { return slices.Clone(c.navLinks) }

// Sections returns the sidebar sections in author order.
func (c *SiteConfig) Sections() []Section {
	out := make([]Section, len(c.sections))
	for i, s := range c.sections {
		out[i] = Section{Prefix: s.Prefix, Pages: slices.Clone(s.Pages)}
	}
	return out
}

// Prefixes returns the sidebar prefixes in author order.
func (c *SiteConfig) Prefixes() []string {
	out := make([]string, len(c.sections))
	for i, s := range c.sections {
		out[i] = s.Prefix
	}
	return out
}

// Pages returns the pages of the section with exactly this prefix.
func (c *SiteConfig) Pages(prefix string) ([]PageRef, bool) {
	for _, s := range c.sections {
		if s.Prefix == prefix {
			return slices.Clone(s.Pages), true
		}
	}
	return nil, false
}

// PageCount returns the number of page references across all sections.
func (c *SiteConfig) PageCount() int {
	n := 0
	for _, s := range c.sections {
		n += len(s.Pages)
	}
	return n
}

// Equal reports whether both configurations hold the same values in the same order.
func (c *SiteConfig) Equal(other *SiteConfig) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.title == other.title &&
		c.description == other.description &&
		slices.Equal(c.navLinks, other.navLinks) &&
		slices.EqualFunc(c.sections, other.sections, func(a, b Section) bool {
			return a.Prefix == b.Prefix && slices.Equal(a.Pages, b.Pages)
		})
}

// ToRaw serializes the configuration back into the raw schema Build accepts,
// with defaults written out.
func (c *SiteConfig) ToRaw() Record {
	nav := make([]any, len(c.navLinks))
	for i, l := range c.navLinks {
		nav[i] = Record{{Key: "text", Value: l.Text}, {Key: "link", Value: l.Link}}
	}
	sidebar := make(Record, len(c.sections))
	for i, s := range c.sections {
		pages := make([]any, len(s.Pages))
		for j, p := range s.Pages {
			pages[j] = string(p)
		}
		sidebar[i] = Field{Key: s.Prefix, Value: pages}
	}
	return Record{
		{Key: "title", Value: c.title},
		{Key: "description", Value: c.description},
		{Key: "themeConfig", Value: Record{
			{Key: "nav", Value: nav},
			{Key: "sidebar", Value: sidebar},
		}},
	}
}

// MarshalYAML writes the raw schema form.
func (c *SiteConfig) MarshalYAML() (any, error) {
	return c.ToRaw(), nil
}

// MarshalJSON writes the raw schema form.
func (c *SiteConfig) MarshalJSON() ([]byte, error) {
	return c.ToRaw().MarshalJSON()
}
