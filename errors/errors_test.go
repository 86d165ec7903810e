package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:        PhaseInvoke,
				Kind:         KindStaleCallback,
				Scope:        "s-1",
				Registration: "r-1",
				Detail:       "callback invoked after deregistration",
			},
			contains: []string{"[invoke]", "stale_callback", "s-1", "r-1", "after deregistration"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseRegister,
				Kind:  KindScopeClosed,
			},
			contains: []string{"[register]", "scope_closed"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseAsync,
				Kind:   KindBodyPanic,
				Detail: "scope body panicked",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[async]", "body_panic", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseTeardown,
		Kind:  KindInvalidInput,
		Cause: cause,
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestError_Is(t *testing.T) {
	a := StaleCallback("s-1", "r-1")
	b := StaleCallback("s-2", "r-9")

	if !errors.Is(a, b) {
		t.Error("errors with same phase and kind should match")
	}

	c := ScopeClosed("s-1")
	if errors.Is(a, c) {
		t.Error("errors with different kinds should not match")
	}
	if errors.Is(a, errors.New("plain")) {
		t.Error("structured error should not match a plain error")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("adapter blew up")
	err := New(PhaseRegister, KindInvalidInput).
		Scope("s-1").
		Registration("r-1").
		Detail("bad adapter %d", 3).
		Cause(cause).
		Build()

	if err.Phase != PhaseRegister || err.Kind != KindInvalidInput {
		t.Fatalf("unexpected phase/kind: %s/%s", err.Phase, err.Kind)
	}
	if err.Scope != "s-1" || err.Registration != "r-1" {
		t.Fatal("builder did not set identifiers")
	}
	if err.Detail != "bad adapter 3" {
		t.Fatalf("unexpected detail: %q", err.Detail)
	}
	if err.Cause != cause {
		t.Fatal("builder did not set cause")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	stale := StaleCallback("s-1", "r-1")
	if stale.Kind != KindStaleCallback || stale.Phase != PhaseInvoke {
		t.Fatal("StaleCallback produced wrong phase/kind")
	}

	closed := ScopeClosed("s-1")
	if closed.Kind != KindScopeClosed || closed.Phase != PhaseRegister {
		t.Fatal("ScopeClosed produced wrong phase/kind")
	}

	invalid := InvalidInput(PhaseRegister, "nil callback")
	if invalid.Kind != KindInvalidInput {
		t.Fatal("InvalidInput produced wrong kind")
	}

	bp := BodyPanic("s-1", "boom", []byte("goroutine 7 [running]"))
	if bp.Kind != KindBodyPanic {
		t.Fatal("BodyPanic produced wrong kind")
	}
	if !strings.Contains(bp.Detail, "boom") {
		t.Fatalf("BodyPanic detail missing value: %q", bp.Detail)
	}
	if !strings.Contains(bp.Detail, "goroutine 7") {
		t.Fatalf("BodyPanic detail missing stack: %q", bp.Detail)
	}
}
