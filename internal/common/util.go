package common

import (
	"crypto/rand"
	"encoding/hex"
)

// MakeRandHexString generates size random bytes and returns them hex-encoded,
// so the resulting string is 2*size characters long.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// NewCredentialHandle returns a simulated credential handle. It stands in for
// the public key a real authenticator would hand back and carries no key
// material.
func NewCredentialHandle() (string, error) {
	s, err := MakeRandHexString(8)
	if err != nil {
		return "", err
	}
	return CredentialHandlePrefix + s, nil
}
