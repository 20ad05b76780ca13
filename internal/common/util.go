package common

import (
	"crypto/rand"
	"encoding/hex"
	"io"
)

// MakeRandHexString generates a random hexadecimal string of the given size.
// The size parameter is the number of random bytes read before hex encoding,
// so the resulting string is twice as long.
//
// It returns an error if the random number generator fails.
func MakeRandHexString(size int) (string, error) {
	return ReadRandHexString(rand.Reader, size)
}

// ReadRandHexString is MakeRandHexString with an explicit entropy source.
func ReadRandHexString(r io.Reader, size int) (string, error) {
	b := make([]byte, size)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Used to drop plaintext passwords from memory once they have been hashed.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
