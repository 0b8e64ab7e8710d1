package siteconfig

import (
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// foldPrefix is the comparison key for sidebar prefixes: NFC, then full
// Unicode case folding, so "/Guide/" and "/guide/" collide.
func foldPrefix(prefix string) string {
	return cases.Fold().String(norm.NFC.String(prefix))
}

// linkSchemes are the schemes a nav link may use besides root-relative paths.
var linkSchemes = map[string]bool{"http": true, "https": true, "mailto": true}

// linkProblem returns why link is not an absolute URL or a root-relative
// path, or "" when it is fine.
func linkProblem(link string) string {
	if link == "" {
		return "link is empty"
	}
	if strings.TrimSpace(link) != link {
		return "link has surrounding whitespace"
	}
	u, err := url.Parse(link)
	if err != nil {
		return "link is not a valid URL"
	}
	if strings.HasPrefix(link, "/") {
		return ""
	}
	if u.Scheme == "" {
		return "link must be an absolute URL or start with /"
	}
	if !linkSchemes[strings.ToLower(u.Scheme)] {
		return "link scheme must be http, https or mailto"
	}
	if u.Host == "" && u.Opaque == "" {
		return "link has a scheme but no target"
	}
	return ""
}
