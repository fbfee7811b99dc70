package ports

import "io"

// TokenComputer derives version tokens from file content.
// Tokens depend on content only and are safe to embed unescaped in a query string.
//
//go:generate go run go.uber.org/mock/mockgen -source=token_computer.go -destination=mocks/mock_token_computer.go -package=mocks
type TokenComputer interface {
	// Compute returns the token for content.
	Compute(content []byte) string
	// ComputeReader returns the token for everything read from r.
	// It only fails when reading fails.
	ComputeReader(r io.Reader) (string, error)
}
