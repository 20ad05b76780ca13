// Package cryptox implements salted password hashing for the credential
// directory.
//
// Hashes are encoded as PHC strings so that every stored credential carries
// the algorithm, work factor and salt it was derived with:
//
//	$pbkdf2-sha256$i=600000,l=32$<salt>$<key>
//	$argon2id$v=19$m=65536,t=3,p=2$<salt>$<key>
//
// Verification always uses the parameters embedded in the stored hash, so the
// configured work factor can change without invalidating existing accounts.
package cryptox

import "fmt"

const (
	AlgorithmPBKDF2SHA256 = "pbkdf2-sha256"
	AlgorithmArgon2id     = "argon2id"
)

// Params configures hashing of new credentials.
//
// Iterations is the PBKDF2 round count or the Argon2id time cost.
// MemoryKiB and Parallelism are only used by Argon2id.
type Params struct {
	Algorithm   string
	Iterations  uint32
	MemoryKiB   uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// Work factor ceilings. New credentials are never hashed above them and
// stored hashes above them are refused, so any valid configuration can verify
// every hash it produced.
const (
	MaxPBKDF2Iterations   = 10_000_000
	MaxArgon2Iterations   = 64
	MinArgon2MemoryKiB    = 8 * 1024
	MaxArgon2MemoryKiB    = 1024 * 1024
	defaultArgon2TimeCost = 3
)

// DefaultParams returns PBKDF2-SHA256 with the OWASP recommended round count.
func DefaultParams() Params {
	return Params{
		Algorithm:   AlgorithmPBKDF2SHA256,
		Iterations:  600_000,
		MemoryKiB:   64 * 1024,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// DefaultParamsFor returns the default work factor for algorithm. Unknown
// algorithms get the PBKDF2 defaults with Algorithm set, so Validate reports
// them.
func DefaultParamsFor(algorithm string) Params {
	p := DefaultParams()
	p.Algorithm = algorithm
	if algorithm == AlgorithmArgon2id {
		p.Iterations = defaultArgon2TimeCost
	}
	return p
}

// Validate reports whether p can be used to hash new credentials.
func (p Params) Validate() error {
	switch p.Algorithm {
	case AlgorithmPBKDF2SHA256:
		if p.Iterations > MaxPBKDF2Iterations {
			return fmt.Errorf("%w: pbkdf2 iterations above %d", ErrInvalidParams, MaxPBKDF2Iterations)
		}
	case AlgorithmArgon2id:
		if p.MemoryKiB < MinArgon2MemoryKiB || p.MemoryKiB > MaxArgon2MemoryKiB {
			return fmt.Errorf("%w: argon2id memory out of range [%d..%d] KiB", ErrInvalidParams, MinArgon2MemoryKiB, MaxArgon2MemoryKiB)
		}
		if p.Iterations > MaxArgon2Iterations {
			return fmt.Errorf("%w: argon2id time cost above %d", ErrInvalidParams, MaxArgon2Iterations)
		}
		if p.Parallelism == 0 {
			return fmt.Errorf("%w: argon2id parallelism must be positive", ErrInvalidParams)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, p.Algorithm)
	}

	if p.Iterations == 0 {
		return fmt.Errorf("%w: iterations must be positive", ErrInvalidParams)
	}
	if p.SaltLength < 8 || p.SaltLength > 64 {
		return fmt.Errorf("%w: salt length out of range [8..64]", ErrInvalidParams)
	}
	if p.KeyLength < 16 || p.KeyLength > 128 {
		return fmt.Errorf("%w: key length out of range [16..128]", ErrInvalidParams)
	}
	return nil
}

// withinBounds refuses stored hashes above the absolute work factor ceilings,
// so a tampered hash cannot stall verification. The configured work factor is
// not consulted.
func withinBounds(got Params) bool {
	switch got.Algorithm {
	case AlgorithmPBKDF2SHA256:
		if got.Iterations == 0 || got.Iterations > MaxPBKDF2Iterations {
			return false
		}
	case AlgorithmArgon2id:
		if got.Iterations == 0 || got.Iterations > MaxArgon2Iterations {
			return false
		}
		if got.MemoryKiB > MaxArgon2MemoryKiB {
			return false
		}
	default:
		return false
	}

	if got.SaltLength < 8 || got.SaltLength > 64 {
		return false
	}
	if got.KeyLength < 16 || got.KeyLength > 128 {
		return false
	}
	return true
}
