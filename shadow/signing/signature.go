package signing

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Signature is the raw encoded signing certificate of a package.
type Signature struct {
	raw []byte
}

// NewSignature copies data into a Signature.
func NewSignature(data []byte) Signature {
	return Signature{raw: bytes.Clone(data)}
}

// ParseSignature decodes the hex "chars string" form produced by String.
func ParseSignature(s string) (Signature, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	data, err := hex.DecodeString(s)
	if err != nil {
		return Signature{}, fmt.Errorf("invalid signature %q: %w", s, err)
	}
	return Signature{raw: data}, nil
}

// MustParseSignature is ParseSignature that panics on error; intended for tests.
func MustParseSignature(s string) Signature {
	sig, err := ParseSignature(s)
	if err != nil {
		panic(err)
	}
	return sig
}

// Bytes returns a copy of the encoded certificate.
func (s Signature) Bytes() []byte {
	return bytes.Clone(s.raw)
}

// String returns the lowercase hex encoding of the certificate.
func (s Signature) String() string {
	return hex.EncodeToString(s.raw)
}

func (s Signature) Equal(other Signature) bool {
	return bytes.Equal(s.raw, other.raw)
}

// Digest returns the SHA-256 fingerprint of the certificate as lowercase hex.
func (s Signature) Digest() string {
	sum := sha256.Sum256(s.raw)
	return hex.EncodeToString(sum[:])
}
