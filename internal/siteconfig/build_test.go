package siteconfig

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func swipeRecord() Record {
	return Record{
		{Key: "title", Value: "Swipe"},
		{Key: "description", Value: "Swipe is a code generation tool that automates the creation of repetitively used code"},
		{Key: "themeConfig", Value: Record{
			{Key: "nav", Value: []any{
				Record{{Key: "text", Value: "GitHub"}, {Key: "link", Value: "https://github.com/swipe-io/swipe"}},
			}},
			{Key: "sidebar", Value: Record{
				{Key: "/", Value: []any{"intro", "transport", "openapi", "config"}},
			}},
		}},
	}
}

func withTheme(theme Record) Record {
	return Record{{Key: "title", Value: "Swipe"}, {Key: "themeConfig", Value: theme}}
}

func TestBuild_SwipeSite(t *testing.T) {
	cfg, err := Build(swipeRecord())
	require.NoError(t, err)

	assert.Equal(t, "Swipe", cfg.Title())
	assert.Equal(t, "Swipe is a code generation tool that automates the creation of repetitively used code", cfg.Description())
	assert.Equal(t, []NavLink{{Text: "GitHub", Link: "https://github.com/swipe-io/swipe"}}, cfg.NavLinks())

	pages, ok := cfg.Pages("/")
	require.True(t, ok)
	assert.Equal(t, []PageRef{"intro", "transport", "openapi", "config"}, pages)
	assert.Equal(t, 4, cfg.PageCount())
}

func TestBuild_PlainMaps(t *testing.T) {
	raw := map[string]any{
		"title": "Swipe",
		"themeConfig": map[string]any{
			"nav": []map[string]string{
				{"text": "GitHub", "link": "https://github.com/swipe-io/swipe"},
				{"text": "GoDoc", "link": "https://pkg.go.dev/github.com/swipe-io/swipe?tab=doc"},
			},
			"sidebar": map[string][]string{
				"/guide/": {"install", "usage"},
				"/":       {"intro"},
			},
		},
	}

	cfg, err := Build(raw)
	require.NoError(t, err)
	assert.Len(t, cfg.NavLinks(), 2)
	assert.Equal(t, "GoDoc", cfg.NavLinks()[1].Text)
	// Unordered maps are read in sorted key order.
	assert.Equal(t, []string{"/", "/guide/"}, cfg.Prefixes())
}

func TestBuild_YAMLv2StyleMaps(t *testing.T) {
	raw := map[any]any{
		"title": "Swipe",
		"themeConfig": map[any]any{
			"sidebar": map[any]any{"/": []any{"intro"}},
		},
	}
	cfg, err := Build(raw)
	require.NoError(t, err)
	pages, _ := cfg.Pages("/")
	assert.Equal(t, []PageRef{"intro"}, pages)

	_, err = Build(withTheme(Record{{Key: "sidebar", Value: map[any]any{1: []any{"intro"}}}}))
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, &ConfigError{Kind: KindInvalidField, Field: "themeConfig.sidebar", Got: "map[interface {}]interface {}"}, cerr)
}

func TestBuild_Defaults(t *testing.T) {
	cfg, err := Build(Record{{Key: "title", Value: "Docs"}})
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Description())
	assert.NotNil(t, cfg.NavLinks())
	assert.Empty(t, cfg.NavLinks())
	assert.Empty(t, cfg.Sections())

	// Nulls of optional fields behave like absence.
	cfg, err = Build(Record{
		{Key: "title", Value: "Docs"},
		{Key: "description", Value: nil},
		{Key: "themeConfig", Value: Record{{Key: "nav", Value: nil}, {Key: "sidebar", Value: nil}}},
	})
	require.NoError(t, err)
	assert.Empty(t, cfg.NavLinks())
	assert.Empty(t, cfg.Sections())
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want *ConfigError
	}{
		{
			name: "not a record",
			raw:  []any{"title"},
			want: &ConfigError{Kind: KindNotARecord, Got: "sequence"},
		},
		{
			name: "nil input",
			raw:  nil,
			want: &ConfigError{Kind: KindNotARecord, Got: "null"},
		},
		{
			name: "missing title",
			raw:  Record{{Key: "description", Value: "no title here"}},
			want: &ConfigError{Kind: KindMissingField, Field: "title"},
		},
		{
			name: "empty title",
			raw:  Record{{Key: "title", Value: ""}},
			want: &ConfigError{Kind: KindMissingField, Field: "title"},
		},
		{
			name: "non-string title",
			raw:  Record{{Key: "title", Value: 42}},
			want: &ConfigError{Kind: KindMissingField, Field: "title"},
		},
		{
			name: "description not a string",
			raw:  Record{{Key: "title", Value: "Docs"}, {Key: "description", Value: true}},
			want: &ConfigError{Kind: KindInvalidField, Field: "description", Got: "boolean"},
		},
		{
			name: "themeConfig not a record",
			raw:  Record{{Key: "title", Value: "Docs"}, {Key: "themeConfig", Value: "dark"}},
			want: &ConfigError{Kind: KindInvalidField, Field: "themeConfig", Got: "string"},
		},
		{
			name: "nav not a sequence",
			raw:  withTheme(Record{{Key: "nav", Value: Record{{Key: "text", Value: "GitHub"}}}}),
			want: &ConfigError{Kind: KindInvalidField, Field: "themeConfig.nav", Got: "mapping"},
		},
		{
			name: "nav entry with empty text",
			raw: withTheme(Record{{Key: "nav", Value: []any{
				Record{{Key: "text", Value: ""}, {Key: "link", Value: "x"}},
			}}}),
			want: &ConfigError{Kind: KindInvalidNavLink, Index: 0, Reason: "text is missing or empty"},
		},
		{
			name: "second nav entry has relative link",
			raw: withTheme(Record{{Key: "nav", Value: []any{
				Record{{Key: "text", Value: "Home"}, {Key: "link", Value: "/"}},
				Record{{Key: "text", Value: "Guide"}, {Key: "link", Value: "guide/"}},
			}}}),
			want: &ConfigError{Kind: KindInvalidNavLink, Index: 1, Reason: "link must be an absolute URL or start with /"},
		},
		{
			name: "nav entry with script link",
			raw: withTheme(Record{{Key: "nav", Value: []any{
				Record{{Key: "text", Value: "Run"}, {Key: "link", Value: "javascript:alert(1)"}},
			}}}),
			want: &ConfigError{Kind: KindInvalidNavLink, Index: 0, Reason: "link scheme must be http, https or mailto"},
		},
		{
			name: "nav entry without link",
			raw:  withTheme(Record{{Key: "nav", Value: []any{Record{{Key: "text", Value: "Home"}}}}}),
			want: &ConfigError{Kind: KindInvalidNavLink, Index: 0, Reason: "link is missing or not a string"},
		},
		{
			name: "nav entry is a string",
			raw:  withTheme(Record{{Key: "nav", Value: []any{"GitHub"}}}),
			want: &ConfigError{Kind: KindInvalidNavLink, Index: 0, Reason: "entry is not a mapping"},
		},
		{
			name: "sidebar not a record",
			raw:  withTheme(Record{{Key: "sidebar", Value: []any{"intro"}}}),
			want: &ConfigError{Kind: KindInvalidField, Field: "themeConfig.sidebar", Got: "sequence"},
		},
		{
			name: "grouped sidebar",
			raw: withTheme(Record{{Key: "sidebar", Value: Record{
				{Key: "/guide/", Value: Record{{Key: "title", Value: "Guide"}}},
			}}}),
			want: &ConfigError{Kind: KindInvalidField, Field: `themeConfig.sidebar["/guide/"]`, Got: "mapping"},
		},
		{
			name: "non-string page ref",
			raw: withTheme(Record{{Key: "sidebar", Value: Record{
				{Key: "/", Value: []any{"intro", 3}},
			}}}),
			want: &ConfigError{Kind: KindInvalidPageRef, Section: "/", Index: 1, Got: "number"},
		},
		{
			name: "duplicate page ref",
			raw: withTheme(Record{{Key: "sidebar", Value: Record{
				{Key: "/", Value: []any{"intro", "intro"}},
			}}}),
			want: &ConfigError{Kind: KindDuplicatePageRef, Section: "/", Ref: "intro"},
		},
		{
			name: "duplicate prefix differing in case",
			raw: withTheme(Record{{Key: "sidebar", Value: Record{
				{Key: "/guide/", Value: []any{"install"}},
				{Key: "/Guide/", Value: []any{"usage"}},
			}}}),
			want: &ConfigError{Kind: KindDuplicateSidebarPrefix, Section: "/Guide/", Conflict: "/guide/"},
		},
		{
			name: "duplicate prefix differing in normalization form",
			raw: withTheme(Record{{Key: "sidebar", Value: Record{
				{Key: "/caf\u00e9/", Value: []any{"menu"}},
				{Key: "/CAFE\u0301/", Value: []any{"menu"}},
			}}}),
			want: &ConfigError{Kind: KindDuplicateSidebarPrefix, Section: "/CAFE\u0301/", Conflict: "/caf\u00e9/"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Build(tt.raw)
			assert.Nil(t, cfg, "no partial config on failure")
			var cerr *ConfigError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.want, cerr)
		})
	}
}

func TestBuild_ShortCircuitsOnFirstViolation(t *testing.T) {
	raw := Record{
		{Key: "title", Value: "Docs"},
		{Key: "themeConfig", Value: Record{
			{Key: "sidebar", Value: Record{{Key: "/", Value: []any{"a", "a"}}}},
			{Key: "nav", Value: []any{Record{{Key: "text", Value: ""}, {Key: "link", Value: "/"}}}},
		}},
	}
	_, err := Build(raw)
	assert.ErrorIs(t, err, ErrInvalidNavLink, "nav is checked before sidebar")

	raw = Record{
		{Key: "themeConfig", Value: Record{{Key: "nav", Value: "broken"}}},
	}
	_, err = Build(raw)
	assert.ErrorIs(t, err, ErrMissingField, "title is checked first")

	raw = withTheme(Record{{Key: "sidebar", Value: Record{
		{Key: "/a/", Value: []any{"x", "x"}},
		{Key: "/b/", Value: []any{"y", 1}},
	}}})
	_, err = Build(raw)
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "/a/", cerr.Section, "sections are checked in key order")
}

func TestBuild_PageRefsMayRepeatAcrossSections(t *testing.T) {
	raw := withTheme(Record{{Key: "sidebar", Value: Record{
		{Key: "/guide/", Value: []any{"", "install"}},
		{Key: "/reference/", Value: []any{"", "install"}},
	}}})
	cfg, err := Build(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"/guide/", "/reference/"}, cfg.Prefixes())
	pages, ok := cfg.Pages("/reference/")
	require.True(t, ok)
	assert.Equal(t, []PageRef{"", "install"}, pages)

	_, ok = cfg.Pages("/REFERENCE/")
	assert.False(t, ok, "lookup uses the prefix as written")
}

func TestBuild_AcceptedLinks(t *testing.T) {
	links := []string{
		"https://github.com/swipe-io/swipe",
		"https://pkg.go.dev/github.com/swipe-io/swipe?tab=doc",
		"/",
		"/guide/#install",
		"mailto:team@example.com",
		"HTTPS://EXAMPLE.COM/",
		"//cdn.example.com/docs",
	}
	for _, link := range links {
		t.Run(link, func(t *testing.T) {
			_, err := Build(withTheme(Record{{Key: "nav", Value: []any{
				Record{{Key: "text", Value: "Link"}, {Key: "link", Value: link}},
			}}}))
			assert.NoError(t, err)
		})
	}

	rejected := []string{"x", "guide/intro", " /padded", "https://", "http://[::1", "", "javascript:alert(1)", "data:text/html,hi", "ftp://example.com/file"}
	for _, link := range rejected {
		t.Run("reject "+link, func(t *testing.T) {
			_, err := Build(withTheme(Record{{Key: "nav", Value: []any{
				Record{{Key: "text", Value: "Link"}, {Key: "link", Value: link}},
			}}}))
			assert.ErrorIs(t, err, ErrInvalidNavLink)
		})
	}
}

func TestBuild_Idempotent(t *testing.T) {
	raw := swipeRecord()
	first, err := Build(raw)
	require.NoError(t, err)
	second, err := Build(raw)
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
	assert.Equal(t, first, second)
	assert.NotSame(t, first, second)
}

func TestBuild_RoundTrip(t *testing.T) {
	original, err := Build(swipeRecord())
	require.NoError(t, err)

	rebuilt, err := Build(original.ToRaw())
	require.NoError(t, err)
	assert.True(t, original.Equal(rebuilt))
	assert.Equal(t, original, rebuilt)
}

func TestSiteConfig_Immutable(t *testing.T) {
	cfg, err := Build(swipeRecord())
	require.NoError(t, err)

	links := cfg.NavLinks()
	links[0].Text = "changed"
	sections := cfg.Sections()
	sections[0].Pages[0] = "changed"
	pages, _ := cfg.Pages("/")
	pages[1] = "changed"

	assert.Equal(t, "GitHub", cfg.NavLinks()[0].Text)
	got, _ := cfg.Pages("/")
	assert.Equal(t, []PageRef{"intro", "transport", "openapi", "config"}, got)
}

func TestSiteConfig_Equal(t *testing.T) {
	a, err := Build(swipeRecord())
	require.NoError(t, err)

	reordered := withTheme(Record{{Key: "sidebar", Value: Record{
		{Key: "/", Value: []any{"transport", "intro", "openapi", "config"}},
	}}})
	b, err := Build(reordered)
	require.NoError(t, err)

	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(nil))
	var nilCfg *SiteConfig
	assert.True(t, nilCfg.Equal(nil))
}

func TestConfigError_Sentinels(t *testing.T) {
	_, err := Build(withTheme(Record{{Key: "sidebar", Value: Record{{Key: "/", Value: []any{"intro", "intro"}}}}}))
	assert.ErrorIs(t, err, ErrDuplicatePageRef)
	assert.NotErrorIs(t, err, ErrDuplicateSidebarPrefix)
	assert.EqualError(t, err, `duplicate page "intro" in sidebar section "/"`)
	assert.False(t, errors.Is(err, errors.New("duplicate page")))
}
