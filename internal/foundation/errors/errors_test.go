package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "config.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "invalid configuration" {
			t.Errorf("expected message 'invalid configuration', got %s", err.Message())
		}
		file, exists := err.Context().GetString("file")
		if !exists || file != "config.yaml" {
			t.Errorf("expected context file=config.yaml, got %v", file)
		}
	})

	t.Run("Error detection through wrapping", func(t *testing.T) {
		err := fmt.Errorf("loading: %w", ConfigError("test error").Build())

		if !IsClassified(err) {
			t.Fatal("expected wrapped error to be classified")
		}
		if !HasCategory(err, CategoryConfig) {
			t.Error("expected error to have config category")
		}
		classified, _ := AsClassified(err)
		if classified.CanRetry() {
			t.Error("expected config error to not be retryable")
		}
		if !classified.IsFatal() {
			t.Error("expected config error to be fatal")
		}
		if classified.RetryStrategy() != RetryUserAction {
			t.Errorf("expected user action retry, got %s", classified.RetryStrategy())
		}
	})

	t.Run("Unclassified errors", func(t *testing.T) {
		err := errors.New("plain")
		if IsClassified(err) {
			t.Error("plain error must not be classified")
		}
		if GetCategory(err) != CategoryInternal {
			t.Errorf("expected internal fallback, got %s", GetCategory(err))
		}
	})
}

func TestErrorBuilder(t *testing.T) {
	t.Run("Fluent API", func(t *testing.T) {
		originalErr := errors.New("permission denied")
		err := WrapError(originalErr, CategoryFileSystem, "read failed").
			Warning().
			WithContext("path", "docs/.vuepress/config.js").
			WithContext("attempt", 2).
			Build()

		if err.Severity() != SeverityWarning {
			t.Errorf("expected severity %s, got %s", SeverityWarning, err.Severity())
		}
		if !errors.Is(err, originalErr) {
			t.Error("expected error to wrap original error")
		}
		if n, ok := err.Context().GetInt("attempt"); !ok || n != 2 {
			t.Errorf("expected attempt=2, got %v", n)
		}
		if err.Error() != "[filesystem:warning] read failed: permission denied" {
			t.Errorf("unexpected error string %q", err.Error())
		}
	})

	t.Run("Convenience constructors", func(t *testing.T) {
		tests := []struct {
			name     string
			builder  *ErrorBuilder
			category ErrorCategory
			severity ErrorSeverity
			retry    RetryStrategy
		}{
			{"ConfigError", ConfigError("test"), CategoryConfig, SeverityFatal, RetryUserAction},
			{"ValidationError", ValidationError("test"), CategoryValidation, SeverityError, RetryUserAction},
			{"FileSystemError", FileSystemError("test"), CategoryFileSystem, SeverityError, RetryNever},
			{"InternalError", InternalError("test"), CategoryInternal, SeverityFatal, RetryNever},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.builder.Build()
				if err.Category() != tt.category {
					t.Errorf("expected category %s, got %s", tt.category, err.Category())
				}
				if err.Severity() != tt.severity {
					t.Errorf("expected severity %s, got %s", tt.severity, err.Severity())
				}
				if err.RetryStrategy() != tt.retry {
					t.Errorf("expected retry strategy %s, got %s", tt.retry, err.RetryStrategy())
				}
			})
		}
	})

	t.Run("WithContext copies", func(t *testing.T) {
		base := ConfigError("dup").WithContext("section", "/").Build()
		derived := base.WithContext("ref", "intro")

		if _, ok := base.Context().Get("ref"); ok {
			t.Error("WithContext must not mutate the receiver")
		}
		if ref, _ := derived.Context().GetString("ref"); ref != "intro" {
			t.Errorf("expected ref=intro, got %q", ref)
		}
		if !errors.Is(derived, base) {
			t.Error("expected derived error to match base by category and message")
		}
	})
}

func TestErrorContext(t *testing.T) {
	ctx1 := ErrorContext{}.Set("key1", "value1").Set("shared", "original")
	ctx2 := ErrorContext{}.Set("key2", "value2").Set("shared", "overridden")

	merged := ctx1.Merge(ctx2)

	value1, _ := merged.GetString("key1")
	value2, _ := merged.GetString("key2")
	shared, _ := merged.GetString("shared")
	if value1 != "value1" || value2 != "value2" {
		t.Errorf("merge lost keys: %v", merged)
	}
	if shared != "overridden" {
		t.Errorf("expected shared=overridden, got %s", shared)
	}

	var nilCtx ErrorContext
	if _, ok := nilCtx.Get("x"); ok {
		t.Error("nil context must report missing keys")
	}
	if got := nilCtx.Merge(ctx2); len(got) != 2 {
		t.Errorf("merge into nil context should return other, got %v", got)
	}
}
