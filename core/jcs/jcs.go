package jcs

import (
	"bytes"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/gowebpki/jcs"
)

// CanonicalizeJSON returns the RFC 8785 (JCS) canonical form of JSON input.
func CanonicalizeJSON(input []byte) ([]byte, error) {
	return jcs.Transform(input)
}

// DigestJCS canonicalizes JSON (RFC 8785) and returns a sha256 hex digest.
func DigestJCS(input []byte) (string, error) {
	canonical, err := CanonicalizeJSON(input)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// Content-hash tokens are <alg>-<base64url digest> over externally
// referenced content. The container model only checks token shape; these
// helpers serve callers that hold the referenced bytes themselves.

const (
	AlgSHA256 = "sha256"
	AlgSHA512 = "sha512"
)

var digestSizes = map[string]int{
	AlgSHA256: sha256.Size,
	AlgSHA512: sha512.Size,
}

// ContentHash computes the content-hash token for data under alg.
func ContentHash(alg string, data []byte) (string, error) {
	switch alg {
	case AlgSHA256:
		sum := sha256.Sum256(data)
		return AlgSHA256 + "-" + base64.RawURLEncoding.EncodeToString(sum[:]), nil
	case AlgSHA512:
		sum := sha512.Sum512(data)
		return AlgSHA512 + "-" + base64.RawURLEncoding.EncodeToString(sum[:]), nil
	default:
		return "", fmt.Errorf("unsupported content-hash algorithm %q", alg)
	}
}

// ParseContentHash splits and decodes a content-hash token, checking that
// the algorithm is supported and the digest has the algorithm's size.
func ParseContentHash(token string) (string, []byte, error) {
	alg, encoded, ok := strings.Cut(token, "-")
	if !ok || encoded == "" {
		return "", nil, fmt.Errorf("content hash must be <alg>-<base64url digest>")
	}
	size, supported := digestSizes[alg]
	if !supported {
		return "", nil, fmt.Errorf("unsupported content-hash algorithm %q", alg)
	}
	digest, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(encoded, "="))
	if err != nil {
		return "", nil, fmt.Errorf("decode content-hash digest: %w", err)
	}
	if len(digest) != size {
		return "", nil, fmt.Errorf("content-hash digest must be %d bytes for %s, got %d", size, alg, len(digest))
	}
	return alg, digest, nil
}

// VerifyContentHash recomputes the digest of data and compares it against
// the token. A mismatch is an integrity failure, not a parse failure.
func VerifyContentHash(token string, data []byte) error {
	alg, digest, err := ParseContentHash(token)
	if err != nil {
		return err
	}
	var sum []byte
	switch alg {
	case AlgSHA256:
		s := sha256.Sum256(data)
		sum = s[:]
	case AlgSHA512:
		s := sha512.Sum512(data)
		sum = s[:]
	}
	if !bytes.Equal(sum, digest) {
		return fmt.Errorf("content-hash mismatch for %s", alg)
	}
	return nil
}
