// Package errors provides the classified error primitives shared by sitecfg.
//
// A ClassifiedError carries a category (what kind of input or system failed),
// a severity, a retry hint, and a small context map used to point the user at
// the offending file or configuration entry.
//
// Example usage:
//
//	err := errors.ConfigError("sidebar page listed twice").
//		WithContext("section", "/").
//		WithContext("ref", "intro").
//		Build()
package errors
