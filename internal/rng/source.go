package rng

import (
	cryptorand "crypto/rand"
	"math/big"
	"math/rand"
)

// Source yields uniform random integers in [0, n). The draw engine takes a
// Source so tests can fix outcomes with a seeded or scripted implementation.
type Source interface {
	Intn(n int) int
}

type seededSource struct {
	r *rand.Rand
}

// NewSeeded returns a deterministic math/rand-backed Source
func NewSeeded(seed int64) Source {
	return &seededSource{r: rand.New(rand.NewSource(seed))}
}

func (s *seededSource) Intn(n int) int {
	return s.r.Intn(n)
}

type cryptoSource struct{}

// NewCrypto returns a crypto/rand-backed Source for production draws
func NewCrypto() Source {
	return cryptoSource{}
}

func (cryptoSource) Intn(n int) int {
	v, err := cryptorand.Int(cryptorand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand failing means the platform RNG is broken; there is
		// no sensible fallback for a draw.
		panic("rng: crypto source failed: " + err.Error())
	}
	return int(v.Int64())
}
