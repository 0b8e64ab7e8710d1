package siteconfig

import (
	"fmt"

	foundationerrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
)

// Kind identifies which configuration rule was violated.
type Kind int

const (
	KindNotARecord Kind = iota + 1
	KindMissingField
	KindInvalidField
	KindInvalidNavLink
	KindInvalidPageRef
	KindDuplicateSidebarPrefix
	KindDuplicatePageRef
)

func (k Kind) String() string {
	switch k {
	case KindNotARecord:
		return "NotARecord"
	case KindMissingField:
		return "MissingField"
	case KindInvalidField:
		return "InvalidField"
	case KindInvalidNavLink:
		return "InvalidNavLink"
	case KindInvalidPageRef:
		return "InvalidPageRef"
	case KindDuplicateSidebarPrefix:
		return "DuplicateSidebarPrefix"
	case KindDuplicatePageRef:
		return "DuplicatePageRef"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Sentinels for errors.Is. A *ConfigError matches the sentinel of its Kind.
var (
	ErrNotARecord             = &ConfigError{Kind: KindNotARecord}
	ErrMissingField           = &ConfigError{Kind: KindMissingField}
	ErrInvalidField           = &ConfigError{Kind: KindInvalidField}
	ErrInvalidNavLink         = &ConfigError{Kind: KindInvalidNavLink}
	ErrInvalidPageRef         = &ConfigError{Kind: KindInvalidPageRef}
	ErrDuplicateSidebarPrefix = &ConfigError{Kind: KindDuplicateSidebarPrefix}
	ErrDuplicatePageRef       = &ConfigError{Kind: KindDuplicatePageRef}
)

// ConfigError reports the first rule a raw configuration violated, with
// enough context to find the offending entry. Only the fields relevant to
// Kind are set.
type ConfigError struct {
	Kind Kind
	// Field is the dotted path of the field (MissingField, InvalidField).
	Field string
	// Section is the sidebar prefix (InvalidPageRef, DuplicateSidebarPrefix, DuplicatePageRef).
	Section string
	// Index is the position in nav or in a sidebar section.
	Index int
	// Ref is the repeated page (DuplicatePageRef).
	Ref string
	// Conflict is the earlier prefix Section collides with (DuplicateSidebarPrefix).
	Conflict string
	// Got describes the value that was found instead.
	Got string
	// Reason explains what is wrong with a nav entry.
	Reason string
}

func (e *ConfigError) Error() string {
	switch e.Kind {
	case KindNotARecord:
		return fmt.Sprintf("configuration is not a record (got %s)", e.Got)
	case KindMissingField:
		return fmt.Sprintf("missing required field %q", e.Field)
	case KindInvalidField:
		return fmt.Sprintf("field %q has the wrong shape (got %s)", e.Field, e.Got)
	case KindInvalidNavLink:
		return fmt.Sprintf("invalid nav link at index %d: %s", e.Index, e.Reason)
	case KindInvalidPageRef:
		return fmt.Sprintf("invalid page reference in sidebar section %q at index %d (got %s)", e.Section, e.Index, e.Got)
	case KindDuplicateSidebarPrefix:
		return fmt.Sprintf("duplicate sidebar prefix %q (collides with %q)", e.Section, e.Conflict)
	case KindDuplicatePageRef:
		return fmt.Sprintf("duplicate page %q in sidebar section %q", e.Ref, e.Section)
	default:
		return e.Kind.String()
	}
}

// Is matches any *ConfigError of the same Kind.
func (e *ConfigError) Is(target error) bool {
	t, ok := target.(*ConfigError)
	return ok && t.Kind == e.Kind
}

// Classify converts the error into a fatal config ClassifiedError whose
// context carries the location fields. The ConfigError stays reachable
// through errors.As.
func (e *ConfigError) Classify() *foundationerrors.ClassifiedError {
	b := foundationerrors.ConfigError(e.summary()).WithCause(e)
	switch e.Kind {
	case KindNotARecord:
		b.WithContext("got", e.Got)
	case KindMissingField:
		b.WithContext("field", e.Field)
	case KindInvalidField:
		b.WithContext("field", e.Field).WithContext("got", e.Got)
	case KindInvalidNavLink:
		b.WithContext("index", e.Index).WithContext("reason", e.Reason)
	case KindInvalidPageRef:
		b.WithContext("section", e.Section).WithContext("index", e.Index).WithContext("got", e.Got)
	case KindDuplicateSidebarPrefix:
		b.WithContext("section", e.Section).WithContext("conflict", e.Conflict)
	case KindDuplicatePageRef:
		b.WithContext("section", e.Section).WithContext("ref", e.Ref)
	}
	return b.Build()
}

func (e *ConfigError) summary() string {
	switch e.Kind {
	case KindNotARecord:
		return "configuration is not a record"
	case KindMissingField:
		return "missing required field"
	case KindInvalidField:
		return "field has the wrong shape"
	case KindInvalidNavLink:
		return "invalid nav link"
	case KindInvalidPageRef:
		return "invalid sidebar page reference"
	case KindDuplicateSidebarPrefix:
		return "duplicate sidebar prefix"
	case KindDuplicatePageRef:
		return "duplicate page in sidebar section"
	default:
		return "invalid configuration"
	}
}

func notARecord(v any) error {
	return &ConfigError{Kind: KindNotARecord, Got: describe(v)}
}

func missingField(name string) error {
	return &ConfigError{Kind: KindMissingField, Field: name}
}

func invalidField(name string, v any) error {
	return &ConfigError{Kind: KindInvalidField, Field: name, Got: describe(v)}
}

func invalidNavLink(index int, reason string) error {
	return &ConfigError{Kind: KindInvalidNavLink, Index: index, Reason: reason}
}

func invalidPageRef(section string, index int, v any) error {
	return &ConfigError{Kind: KindInvalidPageRef, Section: section, Index: index, Got: describe(v)}
}

func duplicateSidebarPrefix(key, conflict string) error {
	return &ConfigError{Kind: KindDuplicateSidebarPrefix, Section: key, Conflict: conflict}
}

func duplicatePageRef(section, ref string) error {
	return &ConfigError{Kind: KindDuplicatePageRef, Section: section, Ref: ref}
}
