package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeMissingLicense, "package %s is missing a license", "foo-1.0.0")

	if err.Code != ErrCodeMissingLicense {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeMissingLicense)
	}

	if err.Message != "package foo-1.0.0 is missing a license" {
		t.Errorf("Message = %v, want %v", err.Message, "package foo-1.0.0 is missing a license")
	}

	expected := "MISSING_LICENSE: package foo-1.0.0 is missing a license"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := Wrap(ErrCodeIO, cause, "could not read report")

	if err.Code != ErrCodeIO {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeIO)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestAggregate(t *testing.T) {
	if err := Aggregate(ErrCodeResolutionFailed, nil, "nothing"); err != nil {
		t.Fatalf("Aggregate(nil) = %v, want nil", err)
	}

	problems := []error{
		New(ErrCodeMissingLicense, "a-1.0.0 is missing a license"),
		New(ErrCodeMissingOrigin, "b-2.0.0 is missing an origin"),
	}
	err := Aggregate(ErrCodeResolutionFailed, problems, "%d packages failed", len(problems))

	if got := len(err.Problems()); got != 2 {
		t.Errorf("len(Problems()) = %d, want 2", got)
	}
	if err.Message != "2 packages failed" {
		t.Errorf("Message = %q, want %q", err.Message, "2 packages failed")
	}
	for _, code := range []Code{ErrCodeResolutionFailed, ErrCodeMissingLicense, ErrCodeMissingOrigin} {
		if !Is(err, code) {
			t.Errorf("Is(err, %s) = false, want true", code)
		}
	}
	if Is(err, ErrCodeParse) {
		t.Error("Is(err, PARSE_ERROR) = true, want false")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeConfig, "test"),
			code:     ErrCodeConfig,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeConfig, "test"),
			code:     ErrCodeParse,
			expected: false,
		},
		{
			name:     "wrapped error outer code",
			err:      Wrap(ErrCodeIO, New(ErrCodeParse, "inner"), "outer"),
			code:     ErrCodeIO,
			expected: true,
		},
		{
			name:     "wrapped error inner code",
			err:      Wrap(ErrCodeIO, New(ErrCodeParse, "inner"), "outer"),
			code:     ErrCodeParse,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("context: %w", New(ErrCodeMetadata, "inner")),
			code:     ErrCodeMetadata,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeConfig,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeConfig,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeMissingOrigin, "test"),
			expected: ErrCodeMissingOrigin,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeReportOutdated, "report is not up to date"),
			expected: "report is not up to date",
		},
		{
			name:     "wrapped cause",
			err:      Wrap(ErrCodeConfig, Wrap(ErrCodeConfig, errors.New("expected '='"), "malformed configuration"), "could not parse license-tool.toml"),
			expected: "could not parse license-tool.toml: malformed configuration: expected '='",
		},
		{
			name:     "aggregate omits problems",
			err:      Aggregate(ErrCodeResolutionFailed, []error{New(ErrCodeMissingLicense, "package a is missing a license")}, "could not resolve 1 of 2 packages"),
			expected: "could not resolve 1 of 2 packages",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}
