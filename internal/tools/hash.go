package tools

import (
	"context"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"
	"sync"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
	"golang.org/x/sync/errgroup"
)

// Algorithm names a digest supported by the hash generator.
type Algorithm string

const (
	AlgorithmMD5        Algorithm = "MD5"
	AlgorithmSHA1       Algorithm = "SHA-1"
	AlgorithmSHA256     Algorithm = "SHA-256"
	AlgorithmSHA384     Algorithm = "SHA-384"
	AlgorithmSHA512     Algorithm = "SHA-512"
	AlgorithmSHA3_256   Algorithm = "SHA3-256"
	AlgorithmBLAKE2b256 Algorithm = "BLAKE2b-256"
)

// Algorithms lists every supported digest in display order.
func Algorithms() []Algorithm {
	return []Algorithm{
		AlgorithmMD5,
		AlgorithmSHA1,
		AlgorithmSHA256,
		AlgorithmSHA384,
		AlgorithmSHA512,
		AlgorithmSHA3_256,
		AlgorithmBLAKE2b256,
	}
}

// ParseAlgorithm accepts names case-insensitively with or without the dash,
// so "sha256", "SHA-256" and "Sha256" are equivalent.
func ParseAlgorithm(name string) (Algorithm, error) {
	key := normalizeAlgorithm(name)
	for _, alg := range Algorithms() {
		if normalizeAlgorithm(string(alg)) == key {
			return alg, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

func normalizeAlgorithm(name string) string {
	return strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.TrimSpace(name)))
}

func newHasher(alg Algorithm) (hash.Hash, error) {
	switch alg {
	case AlgorithmMD5:
		return md5.New(), nil
	case AlgorithmSHA1:
		return sha1.New(), nil
	case AlgorithmSHA256:
		return sha256.New(), nil
	case AlgorithmSHA384:
		return sha512.New384(), nil
	case AlgorithmSHA512:
		return sha512.New(), nil
	case AlgorithmSHA3_256:
		return sha3.New256(), nil
	case AlgorithmBLAKE2b256:
		return blake2b.New256(nil)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, alg)
	}
}

// Hash returns the lowercase hex digest of input under alg.
func Hash(alg Algorithm, input string) (string, error) {
	h, err := newHasher(alg)
	if err != nil {
		return "", err
	}
	h.Write([]byte(input))
	return hex.EncodeToString(h.Sum(nil)), nil
}

// HashAll computes every supported digest of input concurrently.
func HashAll(ctx context.Context, input string) (map[Algorithm]string, error) {
	var (
		mu  sync.Mutex
		out = make(map[Algorithm]string, len(Algorithms()))
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, alg := range Algorithms() {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sum, err := Hash(alg, input)
			if err != nil {
				return err
			}
			mu.Lock()
			out[alg] = sum
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
