package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestWrap_PreservesCode(t *testing.T) {
	base := InsufficientDataf("trend detection", 10, 4)
	wrapped := Wrap(base, "analysis failed")

	if GetCode(wrapped) != CodeInsufficientData {
		t.Errorf("code = %s, want INSUFFICIENT_DATA preserved through wrapping", GetCode(wrapped))
	}
	if !IsInsufficientData(wrapped) {
		t.Error("IsInsufficientData should see through the wrapper")
	}
	if !stderrors.Is(wrapped, base) {
		t.Error("wrapped error should unwrap to its cause")
	}
}

func TestWrap_ForeignError(t *testing.T) {
	wrapped := Wrap(fmt.Errorf("disk full"), "import failed")
	if GetCode(wrapped) != CodeInternalError {
		t.Errorf("code = %s, want INTERNAL_ERROR for a foreign cause", GetCode(wrapped))
	}
	if wrapped.Error() != "import failed: disk full" {
		t.Errorf("message = %s", wrapped.Error())
	}
}

func TestWrap_Nil(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("wrapping nil should stay nil")
	}
	if Wrapf(nil, "context %d", 1) != nil {
		t.Error("Wrapf on nil should stay nil")
	}
}

func TestInsufficientDataf_Message(t *testing.T) {
	err := InsufficientDataf("seasonal analysis", 12, 7)
	want := "seasonal analysis requires at least 12 data points, got 7"
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestGetCode_Unknown(t *testing.T) {
	if GetCode(fmt.Errorf("plain")) != "UNKNOWN" {
		t.Error("foreign errors should report UNKNOWN")
	}
}
