package fs_test

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bust/internal/adapters/fs"
)

var tokenAlphabet = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func TestHasher_Compute_Deterministic(t *testing.T) {
	t.Parallel()
	hasher := fs.NewHasher()

	content := []byte("body { color: rebeccapurple; }")
	assert.Equal(t, hasher.Compute(content), hasher.Compute(bytes.Clone(content)))
}

func TestHasher_Compute_URLSafe(t *testing.T) {
	t.Parallel()
	hasher := fs.NewHasher()

	for _, content := range [][]byte{nil, {}, {0xff, 0xfe, 0x00}, []byte(strings.Repeat("x", 1<<16))} {
		token := hasher.Compute(content)
		assert.Len(t, token, 43)
		assert.Regexp(t, tokenAlphabet, token)
	}
}

func TestHasher_Compute_Empty(t *testing.T) {
	t.Parallel()
	hasher := fs.NewHasher()

	// BLAKE2b-256 of the empty input.
	assert.Equal(t, "DldRwCblQ7Loqy6wYJnaodHl30d3j3eH-qtFzfEv46g", hasher.Compute(nil))
	assert.Equal(t, hasher.Compute(nil), hasher.Compute([]byte{}))
}

func TestHasher_Compute_NoCollisions(t *testing.T) {
	t.Parallel()
	hasher := fs.NewHasher()

	seen := make(map[string]string)
	record := func(name string, content []byte) {
		token := hasher.Compute(content)
		if prev, ok := seen[token]; ok {
			t.Fatalf("collision between %s and %s", prev, name)
		}
		seen[token] = name
	}

	base := bytes.Repeat([]byte("0123456789abcdef"), 4096)
	record("base", base)
	for i := range 2000 {
		flipped := bytes.Clone(base)
		flipped[i*17%len(flipped)] ^= byte(1 << (i % 8))
		record(fmt.Sprintf("flip-%d", i), flipped)
	}
	for n := range 512 {
		record(fmt.Sprintf("prefix-%d", n), base[:n])
	}
	assert.Len(t, seen, 1+2000+512)
}

func TestHasher_ComputeReader_MatchesCompute(t *testing.T) {
	t.Parallel()
	hasher := fs.NewHasher()

	content := bytes.Repeat([]byte("asset"), 100_000)
	token, err := hasher.ComputeReader(iotest.OneByteReader(bytes.NewReader(content[:1000])))
	require.NoError(t, err)
	assert.Equal(t, hasher.Compute(content[:1000]), token)

	token, err = hasher.ComputeReader(bytes.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, hasher.Compute(content), token)
}

func TestHasher_ComputeReader_ReadError(t *testing.T) {
	t.Parallel()
	hasher := fs.NewHasher()

	readErr := errors.New("disk on fire")
	_, err := hasher.ComputeReader(iotest.ErrReader(readErr))
	require.Error(t, err)
	assert.ErrorContains(t, err, "disk on fire")
}
