package secrets

import "sync"

type InMemorySecretStore struct {
	mu      sync.RWMutex
	secrets map[string]string
}

func NewInMemorySecretStore() *InMemorySecretStore {
	return &InMemorySecretStore{
		secrets: make(map[string]string),
	}
}

func (i *InMemorySecretStore) Get(key string) (string, bool, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	val, ok := i.secrets[key]
	return val, ok, nil
}

func (i *InMemorySecretStore) Set(key, value string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.secrets[key] = value
	return nil
}
