package network

import (
	"fmt"
	"math/rand"
)

// Generator names accepted by NewGenerator.
const (
	GeneratorGo   = "go"
	GeneratorJava = "java"
)

// Generator is a sequential stream of uniform draws in [0, 1).
type Generator interface {
	Float32() float32
}

// NewGenerator returns a generator seeded with seed. An empty name selects
// GeneratorGo.
func NewGenerator(name string, seed int64) (Generator, error) {
	switch name {
	case "", GeneratorGo:
		return rand.New(rand.NewSource(seed)), nil
	case GeneratorJava:
		return NewJavaRandom(seed), nil
	default:
		return nil, fmt.Errorf("unknown generator %q (valid: %s, %s)", name, GeneratorGo, GeneratorJava)
	}
}

const (
	javaMultiplier = 0x5DEECE66D
	javaAddend     = 0xB
	javaMask       = (1 << 48) - 1
)

// JavaRandom is the 48-bit linear congruential generator used by
// java.util.Random. Networks generated with it carry the same weights as
// networks written with java.util.Random for the same seed.
type JavaRandom struct {
	seed uint64
}

// NewJavaRandom returns a JavaRandom seeded like new java.util.Random(seed).
func NewJavaRandom(seed int64) *JavaRandom {
	return &JavaRandom{seed: (uint64(seed) ^ javaMultiplier) & javaMask}
}

func (r *JavaRandom) next(bits uint) int32 {
	r.seed = (r.seed*javaMultiplier + javaAddend) & javaMask
	return int32(r.seed >> (48 - bits))
}

// Int32 matches Random.nextInt().
func (r *JavaRandom) Int32() int32 {
	return r.next(32)
}

// Float32 matches Random.nextFloat().
func (r *JavaRandom) Float32() float32 {
	return float32(r.next(24)) / (1 << 24)
}
