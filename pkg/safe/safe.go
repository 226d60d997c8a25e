// Package safe stores short secrets such as access tokens and API keys
// encrypted at rest in a secrets.Store.
//
// Every non-empty stored value is the base64 text of an AES-CBC ciphertext
// under a key derived from the application secret. An empty stored value
// means no secret. The IV is fixed, so the same plaintext stored in two slots
// gives the same stored text; see package seal.
package safe

import (
	"fmt"
	"unicode/utf8"

	"github.com/m3o/safe/pkg/logging"
	"github.com/m3o/safe/pkg/seal"
	"github.com/m3o/safe/pkg/secrets"
)

var logger = logging.Component("pkg/safe")

// Config holds what is needed to derive the encryption key.
type Config struct {
	// Secret is the application wide secret the key is derived from.
	Secret string
	// KeyDeriver defaults to seal.SHA256.
	KeyDeriver seal.KeyDeriver
}

// Safe encrypts values before handing them to the backing store. It holds no
// mutable state and is safe for concurrent use when the backing store is.
type Safe struct {
	store secrets.Store
	key   []byte
}

// New derives the key once and returns a Safe writing to store.
func New(store secrets.Store, cfg Config) (*Safe, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: no backing store", ErrConfiguration)
	}
	if cfg.Secret == "" {
		return nil, fmt.Errorf("%w: application secret is empty", ErrConfiguration)
	}
	kd := cfg.KeyDeriver
	if kd == nil {
		kd = seal.SHA256{}
	}
	key, err := kd.DeriveKey(cfg.Secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if err := seal.ValidateKey(key); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return &Safe{store: store, key: key}, nil
}

// Store encrypts plaintext into slot. An empty plaintext clears the slot.
func (s *Safe) Store(slot Slot, plaintext string) error {
	if slot.Key() == "" {
		return fmt.Errorf("%w: %v", ErrUnknownSlot, slot)
	}
	return s.StoreKey(slot.Key(), plaintext)
}

// StoreKey is Store for an arbitrary slot key. On failure the previously
// stored value is left in place.
func (s *Safe) StoreKey(key, plaintext string) error {
	if key == "" {
		return ErrEmptySlot
	}

	value := ""
	if plaintext != "" {
		ciphertext, err := seal.Encrypt(s.key, []byte(plaintext))
		if err != nil {
			logger.Errorf("Failed to encrypt value for slot %s: %v", key, err)
			return fmt.Errorf("%w: slot %s: %v", ErrConfiguration, key, err)
		}
		value = seal.EncodeText(ciphertext)
	}

	if err := s.store.Set(key, value); err != nil {
		logger.Errorf("Failed to write slot %s: %v", key, err)
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	if value == "" {
		logger.Debugf("Cleared slot %s", key)
	} else {
		logger.Debugf("Stored slot %s", key)
	}
	return nil
}

// Retrieve returns the plaintext in slot, or "" when nothing is stored.
func (s *Safe) Retrieve(slot Slot) (string, error) {
	if slot.Key() == "" {
		return "", fmt.Errorf("%w: %v", ErrUnknownSlot, slot)
	}
	return s.RetrieveKey(slot.Key())
}

// RetrieveKey is Retrieve for an arbitrary slot key. A value that cannot be
// decrypted yields an error wrapping ErrDecryption, never "".
func (s *Safe) RetrieveKey(key string) (string, error) {
	if key == "" {
		return "", ErrEmptySlot
	}

	raw, _, err := s.store.Get(key)
	if err != nil {
		return "", fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	if raw == "" {
		return "", nil
	}

	ciphertext, err := seal.DecodeText(raw)
	if err != nil {
		logger.Warnf("Slot %s holds undecodable data: %v", key, err)
		return "", fmt.Errorf("%w: slot %s: %v", ErrDecryption, key, err)
	}
	plaintext, err := seal.Decrypt(s.key, ciphertext)
	if err != nil {
		logger.Warnf("Slot %s could not be decrypted: %v", key, err)
		return "", fmt.Errorf("%w: slot %s: %v", ErrDecryption, key, err)
	}
	if !utf8.Valid(plaintext) {
		logger.Warnf("Slot %s decrypted to invalid UTF-8", key)
		return "", fmt.Errorf("%w: slot %s: plaintext is not valid UTF-8", ErrDecryption, key)
	}
	return string(plaintext), nil
}

func (s *Safe) StoreAccessToken(token string) error {
	return s.Store(AccessToken, token)
}

func (s *Safe) StoreUserID(userID string) error {
	return s.Store(UserID, userID)
}

func (s *Safe) StoreAPIKey(apiKey string) error {
	return s.Store(APIKey, apiKey)
}

func (s *Safe) AccessToken() (string, error) {
	return s.Retrieve(AccessToken)
}

func (s *Safe) UserID() (string, error) {
	return s.Retrieve(UserID)
}

func (s *Safe) APIKey() (string, error) {
	return s.Retrieve(APIKey)
}
