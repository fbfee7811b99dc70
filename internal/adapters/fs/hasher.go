package fs

import (
	"encoding/base64"
	"io"

	"go.trai.ch/bust/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/crypto/blake2b"
)

var _ ports.TokenComputer = (*Hasher)(nil)

// Hasher derives version tokens from file content.
// A token is the BLAKE2b-256 digest of the content in unpadded base64url,
// so it is 43 characters from [A-Za-z0-9_-] and needs no escaping in a query.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Compute returns the token for content.
func (h *Hasher) Compute(content []byte) string {
	sum := blake2b.Sum256(content)
	return encodeToken(sum[:])
}

// ComputeReader streams r into the digest and returns its token.
func (h *Hasher) ComputeReader(r io.Reader) (string, error) {
	digest, err := blake2b.New256(nil)
	if err != nil {
		return "", zerr.Wrap(err, "failed to create digest")
	}
	if _, err := io.Copy(digest, r); err != nil {
		return "", zerr.Wrap(err, "failed to hash content")
	}
	return encodeToken(digest.Sum(nil)), nil
}

func encodeToken(sum []byte) string {
	return base64.RawURLEncoding.EncodeToString(sum)
}
