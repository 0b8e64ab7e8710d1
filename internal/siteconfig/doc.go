// Package siteconfig turns an untyped documentation-site configuration record
// into a validated, immutable SiteConfig.
//
// The raw record is what a loader produced from a config file: a Record (or a
// plain Go map) holding "title", "description" and "themeConfig" with its
// "nav" and "sidebar" entries. Build checks the record in a fixed order and
// returns the first violation as a *ConfigError. Nothing is returned on
// failure, and Build never performs I/O.
//
//	cfg, err := siteconfig.Build(raw)
//	if errors.Is(err, siteconfig.ErrDuplicatePageRef) {
//		...
//	}
//	pages, _ := cfg.Pages("/")
package siteconfig
