package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"plain", New(ErrCodeInvalidDimension, "bad dimension %q", "10pt"), `INVALID_DIMENSION: bad dimension "10pt"`},
		{"wrapped", Wrap(ErrCodeFileNotFound, errors.New("no such file"), "document %s", "a.json"), "FILE_NOT_FOUND: document a.json: no such file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "ping redis")

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want the cause", errors.Unwrap(err))
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
}

func TestIs(t *testing.T) {
	inner := New(ErrCodeInvalidViewport, "width must be positive")

	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"same code", inner, ErrCodeInvalidViewport, true},
		{"other code", inner, ErrCodeInvalidStyle, false},
		{"outer of a chain", Wrap(ErrCodeInvalidDocument, inner, "decode"), ErrCodeInvalidDocument, true},
		{"inner of a chain", Wrap(ErrCodeInvalidDocument, inner, "decode"), ErrCodeInvalidViewport, true},
		{"through fmt wrapping", fmt.Errorf("page.json: %w", inner), ErrCodeInvalidViewport, true},
		{"plain error", errors.New("boom"), ErrCodeInternal, false},
		{"nil", nil, ErrCodeInternal, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is(%v, %s) = %v, want %v", tt.err, tt.code, got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"error", New(ErrCodeLayoutNotFound, "gone"), ErrCodeLayoutNotFound},
		{"outermost wins", Wrap(ErrCodeInternal, New(ErrCodeInvalidStyle, "x"), "render"), ErrCodeInternal},
		{"fmt wrapped", fmt.Errorf("load: %w", New(ErrCodeFileNotFound, "x")), ErrCodeFileNotFound},
		{"plain", errors.New("plain"), ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassification(t *testing.T) {
	tests := []struct {
		code       Code
		validation bool
		notFound   bool
	}{
		{ErrCodeInvalidInput, true, false},
		{ErrCodeInvalidDocument, true, false},
		{ErrCodeInvalidDimension, true, false},
		{ErrCodeInvalidStyle, true, false},
		{ErrCodeInvalidFormat, true, false},
		{ErrCodeInvalidViewport, true, false},
		{ErrCodeInvalidNodeID, true, false},
		{ErrCodeInvalidPath, true, false},
		{ErrCodeNotFound, false, true},
		{ErrCodeFileNotFound, false, true},
		{ErrCodeLayoutNotFound, false, true},
		{ErrCodeNetwork, false, false},
		{ErrCodeTimeout, false, false},
		{ErrCodeInternal, false, false},
		{ErrCodeUnsupported, false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := fmt.Errorf("ctx: %w", New(tt.code, "x"))
			if got := IsValidation(err); got != tt.validation {
				t.Errorf("IsValidation() = %v, want %v", got, tt.validation)
			}
			if got := IsNotFound(err); got != tt.notFound {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.notFound)
			}
		})
	}
	if IsValidation(errors.New("plain")) || IsNotFound(nil) {
		t.Error("errors without a code are neither validation nor not-found errors")
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"coded", New(ErrCodeInvalidFormat, "unknown format %q", "gif"), `unknown format "gif"`},
		{"wrapped coded", fmt.Errorf("render: %w", New(ErrCodeInvalidFormat, "bad")), "bad"},
		{"plain", errors.New("plain error"), "plain error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
