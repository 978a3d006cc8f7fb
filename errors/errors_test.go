package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestWrapKeepsCodeAndCause(t *testing.T) {
	cause := fmt.Errorf("open positions.xlsx: no such file")
	err := Wrap(ErrUnreadableSource, cause)

	if err.Code != "UNREADABLE_SOURCE" {
		t.Errorf("expected code UNREADABLE_SOURCE, got %s", err.Code)
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected wrapped cause to be reachable with errors.Is")
	}
	if !stderrors.Is(err, ErrUnreadableSource) {
		t.Error("expected wrapped error to match its sentinel")
	}
	if stderrors.Is(err, ErrMissingColumn) {
		t.Error("did not expect a match against a different sentinel")
	}
}

func TestWithMessage(t *testing.T) {
	err := WithMessage(ErrMissingColumn, "position file has no 债券代码 column")
	if err.Message != "position file has no 债券代码 column" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if err.Error() != err.Message {
		t.Errorf("expected Error() to equal message without cause, got %q", err.Error())
	}

	var appErr *AppError
	if !stderrors.As(fmt.Errorf("build: %w", err), &appErr) {
		t.Fatal("expected errors.As to find the AppError")
	}
	if appErr.Code != "MISSING_COLUMN" {
		t.Errorf("expected code MISSING_COLUMN, got %s", appErr.Code)
	}
}
