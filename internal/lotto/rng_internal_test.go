package lotto

import (
	"bytes"
	"errors"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
)

func TestCryptoRNG_PanicsWhenEntropyFails(t *testing.T) {
	rng := cryptoRNG{entropy: iotest.ErrReader(errors.New("no entropy"))}

	assert.PanicsWithValue(t, "lotto: crypto/rand unavailable: no entropy", func() {
		rng.IntN(45)
	})
}

func TestCryptoRNG_ReadsEntropy(t *testing.T) {
	// one big-endian draw, far below the rejection limit
	src := bytes.NewReader([]byte{0, 1, 2, 3, 4, 5, 6, 7})
	rng := cryptoRNG{entropy: src}

	assert.Equal(t, int(uint64(0x0001020304050607)%45), rng.IntN(45))
}
