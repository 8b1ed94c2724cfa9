package app

import (
	"crypto/rand"
	"math/big"
)

const codeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CodeGenerator produces fixed-length room codes drawn uniformly from
// codeAlphabet. Uniqueness is the store's job, not the generator's.
type CodeGenerator struct {
	length int
}

func NewCodeGenerator(length int) CodeGenerator {
	return CodeGenerator{length: length}
}

func (g CodeGenerator) NewCode() string {
	b := make([]byte, g.length)
	for i := range b {
		b[i] = codeAlphabet[secureIntn(len(codeAlphabet))]
	}
	return string(b)
}

// secureIntn returns a uniform int in [0, n) from crypto/rand.
func secureIntn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand does not fail on supported platforms
		panic(err)
	}
	return int(v.Int64())
}
