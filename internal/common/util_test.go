package common

import (
	"encoding/hex"
	"strings"
	"testing"
)

func TestMakeRandHexString_LengthAndHex(t *testing.T) {
	const n = 16
	s, err := MakeRandHexString(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != n*2 {
		t.Fatalf("expected hex length %d, got %d", n*2, len(s))
	}
	if _, err := hex.DecodeString(s); err != nil {
		t.Fatalf("string is not valid hex: %v", err)
	}
}

func TestMakeRandHexString_ZeroSize(t *testing.T) {
	s, err := MakeRandHexString(0)
	if err != nil {
		t.Fatalf("unexpected error for size=0: %v", err)
	}
	if s != "" {
		t.Fatalf("expected empty string for size=0, got %q", s)
	}
}

func TestNewCredentialHandle_Format(t *testing.T) {
	h, err := NewCredentialHandle()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(h, CredentialHandlePrefix) {
		t.Fatalf("expected prefix %q, got %q", CredentialHandlePrefix, h)
	}
	suffix := strings.TrimPrefix(h, CredentialHandlePrefix)
	if _, err := hex.DecodeString(suffix); err != nil || len(suffix) != 16 {
		t.Fatalf("unexpected handle suffix %q", suffix)
	}
}

func TestNewCredentialHandle_EntropyHint(t *testing.T) {
	a, _ := NewCredentialHandle()
	b, _ := NewCredentialHandle()
	if a == b {
		t.Logf("warning: two handles are identical; extremely unlikely")
	}
}
