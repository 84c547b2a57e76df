package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeUnknownAlgorithm, "no layout algorithm %q", "swirl")
	want := `UNKNOWN_ALGORITHM: no layout algorithm "swirl"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(ErrCodeInvalidGraph, cause, "import failed")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}
	if !Is(err, ErrCodeInvalidGraph) {
		t.Error("code not detected on wrapped error")
	}
	if Is(err, ErrCodeNotFound) {
		t.Error("wrong code matched")
	}
}

func TestWrappedChain(t *testing.T) {
	inner := New(ErrCodeNodeNotFound, "node %q", "a")
	outer := fmt.Errorf("store: %w", inner)

	if !Is(outer, ErrCodeNodeNotFound) {
		t.Error("code not detected through fmt.Errorf wrapping")
	}
	if GetCode(outer) != ErrCodeNodeNotFound {
		t.Errorf("GetCode = %q", GetCode(outer))
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidFilter, "bad filter")
	if UserMessage(err) != "bad filter" {
		t.Errorf("UserMessage = %q", UserMessage(err))
	}
	plain := stderrors.New("plain")
	if UserMessage(plain) != "plain" {
		t.Errorf("UserMessage(plain) = %q", UserMessage(plain))
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "Valid", id: "note-42"},
		{name: "Empty", id: "", wantErr: true},
		{name: "Control", id: "a\x01b", wantErr: true},
		{name: "TooLong", id: string(make([]byte, 300)), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) err = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}
