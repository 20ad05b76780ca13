package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

const argon2Version = 19

// Hasher derives and verifies password credentials.
type Hasher interface {
	Hash(password []byte) (string, error)
	Verify(password []byte, encoded string) (bool, error)
}

// PasswordHasher is the PHC-encoding Hasher used by the service.
type PasswordHasher struct {
	params Params
	rand   io.Reader
}

// Option configures a PasswordHasher.
type Option func(*PasswordHasher)

// WithRandReader replaces crypto/rand as the salt source.
func WithRandReader(r io.Reader) Option {
	return func(h *PasswordHasher) {
		h.rand = r
	}
}

// NewHasher validates p and returns a hasher for it.
func NewHasher(p Params, opts ...Option) (*PasswordHasher, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	h := &PasswordHasher{params: p, rand: rand.Reader}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Params returns the parameters used for new hashes.
func (h *PasswordHasher) Params() Params {
	return h.params
}

// Hash derives a key from password with a fresh random salt and returns the
// PHC-encoded result.
func (h *PasswordHasher) Hash(password []byte) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := io.ReadFull(h.rand, salt); err != nil {
		return "", fmt.Errorf("salt: %w", err)
	}

	key := derive(h.params, password, salt)
	return encode(h.params, salt, key), nil
}

// Verify recomputes the key for password using the parameters and salt stored
// in encoded, and compares it in constant time.
func (h *PasswordHasher) Verify(password []byte, encoded string) (bool, error) {
	params, salt, expected, err := decode(encoded)
	if err != nil {
		return false, err
	}

	if !withinBounds(params) {
		return false, ErrInvalidHash
	}

	key := derive(params, password, salt)
	return subtle.ConstantTimeCompare(key, expected) == 1, nil
}

func derive(p Params, password, salt []byte) []byte {
	switch p.Algorithm {
	case AlgorithmArgon2id:
		return argon2.IDKey(password, salt, p.Iterations, p.MemoryKiB, p.Parallelism, p.KeyLength)
	default:
		return pbkdf2.Key(password, salt, int(p.Iterations), int(p.KeyLength), sha256.New)
	}
}

func encode(p Params, salt, key []byte) string {
	b64 := base64.RawStdEncoding

	switch p.Algorithm {
	case AlgorithmArgon2id:
		return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
			argon2Version, p.MemoryKiB, p.Iterations, p.Parallelism,
			b64.EncodeToString(salt), b64.EncodeToString(key))
	default:
		return fmt.Sprintf("$pbkdf2-sha256$i=%d,l=%d$%s$%s",
			p.Iterations, p.KeyLength,
			b64.EncodeToString(salt), b64.EncodeToString(key))
	}
}

func decode(encoded string) (Params, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) < 5 || parts[0] != "" {
		return Params{}, nil, nil, ErrInvalidHash
	}

	var p Params
	var saltB64, keyB64 string

	switch parts[1] {
	case AlgorithmPBKDF2SHA256:
		if len(parts) != 5 {
			return Params{}, nil, nil, ErrInvalidHash
		}
		var it, kl uint32
		if _, err := fmt.Sscanf(parts[2], "i=%d,l=%d", &it, &kl); err != nil {
			return Params{}, nil, nil, ErrInvalidHash
		}
		p = Params{Algorithm: AlgorithmPBKDF2SHA256, Iterations: it, KeyLength: kl}
		saltB64, keyB64 = parts[3], parts[4]

	case AlgorithmArgon2id:
		if len(parts) != 6 || parts[2] != fmt.Sprintf("v=%d", argon2Version) {
			return Params{}, nil, nil, ErrInvalidHash
		}
		var mem, it, par uint32
		if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &it, &par); err != nil {
			return Params{}, nil, nil, ErrInvalidHash
		}
		if par == 0 || par > 255 {
			return Params{}, nil, nil, ErrInvalidHash
		}
		p = Params{Algorithm: AlgorithmArgon2id, Iterations: it, MemoryKiB: mem, Parallelism: uint8(par)}
		saltB64, keyB64 = parts[4], parts[5]

	default:
		return Params{}, nil, nil, ErrInvalidHash
	}

	if p.Iterations == 0 {
		return Params{}, nil, nil, ErrInvalidHash
	}

	b64 := base64.RawStdEncoding
	salt, err := b64.DecodeString(saltB64)
	if err != nil {
		return Params{}, nil, nil, ErrInvalidHash
	}
	key, err := b64.DecodeString(keyB64)
	if err != nil {
		return Params{}, nil, nil, ErrInvalidHash
	}

	if p.KeyLength != 0 && int(p.KeyLength) != len(key) {
		return Params{}, nil, nil, ErrInvalidHash
	}
	p.SaltLength = uint32(len(salt))
	p.KeyLength = uint32(len(key))

	return p, salt, key, nil
}
