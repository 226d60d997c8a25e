package secrets

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// DefaultKeyringService groups stored values in the OS keyring.
const DefaultKeyringService = "Safe"

// KeyringSecretStore keeps each key as a separate OS keyring entry under a
// single service name.
type KeyringSecretStore struct {
	Service string
}

func NewKeyringSecretStore(service string) *KeyringSecretStore {
	if service == "" {
		service = DefaultKeyringService
	}
	return &KeyringSecretStore{Service: service}
}

func (k *KeyringSecretStore) Get(key string) (string, bool, error) {
	val, err := keyring.Get(k.Service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("keyring get %s/%s: %w", k.Service, key, err)
	}
	return val, true, nil
}

func (k *KeyringSecretStore) Set(key, value string) error {
	if err := keyring.Set(k.Service, key, value); err != nil {
		if errors.Is(err, keyring.ErrSetDataTooBig) {
			return fmt.Errorf("keyring set %s/%s: %w", k.Service, key, ErrValueTooLarge)
		}
		return fmt.Errorf("keyring set %s/%s: %w", k.Service, key, err)
	}
	return nil
}
