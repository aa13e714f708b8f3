package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelMatchingThroughWrap(t *testing.T) {
	err := Wrap(fmt.Errorf("dial tcp: refused"), ErrorTypeExternal, "TRANSPORT_FAILURE", "Failed to fetch report")

	if !errors.Is(err, ErrTransportFailure) {
		t.Error("wrapped error must match its sentinel by type and code")
	}
	if errors.Is(err, ErrDateNotFound) {
		t.Error("wrapped error must not match a different sentinel")
	}
}

func TestWithContextKeepsSentinelImmutable(t *testing.T) {
	err := ErrDateNotFound.WithContext("date", "15.01.2024")

	if len(ErrDateNotFound.Context) != 0 {
		t.Errorf("sentinel context mutated: %v", ErrDateNotFound.Context)
	}
	if err.Context["date"] != "15.01.2024" {
		t.Errorf("context value missing: %v", err.Context)
	}
	if !errors.Is(err, ErrDateNotFound) {
		t.Error("contextualized error must still match its sentinel")
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := Wrap(cause, ErrorTypeInternal, "INTERNAL", "wrapper")

	if !errors.Is(err, cause) {
		t.Error("wrapped cause must be reachable through errors.Is")
	}
}
