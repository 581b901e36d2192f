package types

import (
	"errors"
	"testing"
)

func TestError_ChainingAndHelpers(t *testing.T) {
	t.Parallel()

	root := errors.New("root")
	err := NewError(ErrWorkerNotFound, "worker not found: researcher").
		WithCause(root).
		WithStrategy("delegated")

	if GetErrorCode(err) != ErrWorkerNotFound {
		t.Fatalf("expected code %s, got %s", ErrWorkerNotFound, GetErrorCode(err))
	}
	if err.Strategy != "delegated" {
		t.Fatalf("expected strategy delegated, got %s", err.Strategy)
	}
	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is unwrap to root")
	}
	if got := err.Error(); got == "" {
		t.Fatalf("expected non-empty error string")
	}
}

func TestGetErrorCode_PlainError(t *testing.T) {
	t.Parallel()

	if got := GetErrorCode(errors.New("plain")); got != "" {
		t.Fatalf("expected empty code for plain error, got %s", got)
	}
}
