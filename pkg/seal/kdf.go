package seal

import (
	"crypto/sha256"

	"github.com/pkg/errors"
	"golang.org/x/crypto/pbkdf2"
)

// KeySize is the length of derived keys, selecting AES-256.
const KeySize = sha256.Size

// DefaultPBKDF2Iterations is used when PBKDF2.Iterations is zero.
const DefaultPBKDF2Iterations = 20000

// KeyDeriver turns the application secret into key material. Derivation must
// be deterministic: the same secret always yields the same key.
type KeyDeriver interface {
	DeriveKey(secret string) ([]byte, error)
}

// SHA256 uses the SHA-256 digest of the secret's UTF-8 bytes as the key.
type SHA256 struct{}

func (SHA256) DeriveKey(secret string) ([]byte, error) {
	sum := sha256.Sum256([]byte(secret))
	return sum[:], nil
}

// PBKDF2 derives the key with PBKDF2-HMAC-SHA256 over a fixed salt. Data
// sealed with it cannot be opened with SHA256 and vice versa.
type PBKDF2 struct {
	Salt       []byte
	Iterations int
}

func (p PBKDF2) DeriveKey(secret string) ([]byte, error) {
	if len(p.Salt) == 0 {
		return nil, errors.Wrap(ErrInvalidKey, "pbkdf2 salt is empty")
	}
	iter := p.Iterations
	if iter == 0 {
		iter = DefaultPBKDF2Iterations
	}
	if iter < 0 {
		return nil, errors.Wrapf(ErrInvalidKey, "pbkdf2 iterations must be positive, got %d", iter)
	}
	return pbkdf2.Key([]byte(secret), p.Salt, iter, KeySize, sha256.New), nil
}
