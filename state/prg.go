//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package state

import (
	"crypto/rand"
	"crypto/sha256"

	"golang.org/x/crypto/chacha20"
)

// PRG is a deterministic random source for measurements. It outputs
// the chacha20 keystream of a key derived from the seed.
type PRG struct {
	cipher *chacha20.Cipher
}

// NewPRG creates a new PRG from seed. An empty seed selects a random
// seed.
func NewPRG(seed []byte) (*PRG, error) {
	if len(seed) == 0 {
		seed = make([]byte, chacha20.KeySize)
		if _, err := rand.Read(seed); err != nil {
			return nil, err
		}
	}
	key := sha256.Sum256(seed)
	var nonce [chacha20.NonceSize]byte

	cipher, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		return nil, err
	}
	return &PRG{
		cipher: cipher,
	}, nil
}

// Read implements io.Reader. It fills p with keystream bytes.
func (prg *PRG) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	prg.cipher.XORKeyStream(p, p)
	return len(p), nil
}
