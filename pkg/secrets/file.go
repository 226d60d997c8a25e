package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/m3o/safe/pkg/logging"
	"gopkg.in/yaml.v3"
)

var logger = logging.Component("pkg/secrets")

// FileSecretStore keeps all keys in a single YAML document. Every Set rewrites
// the document atomically before returning.
type FileSecretStore struct {
	path    string
	mu      sync.RWMutex
	secrets map[string]string
}

// OpenFileSecretStore loads the store at path. A missing file is treated as an
// empty store and is created on the first Set.
func OpenFileSecretStore(path string) (*FileSecretStore, error) {
	fs := &FileSecretStore{
		path:    path,
		secrets: make(map[string]string),
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debugf("Secret file %s does not exist yet", path)
			return fs, nil
		}
		return nil, fmt.Errorf("failed to read secret file: %w", err)
	}
	if err := yaml.Unmarshal(data, &fs.secrets); err != nil {
		return nil, fmt.Errorf("failed to parse secret file %s: %w", path, err)
	}
	if fs.secrets == nil {
		fs.secrets = make(map[string]string)
	}
	return fs, nil
}

func (f *FileSecretStore) Path() string {
	return f.path
}

func (f *FileSecretStore) Get(key string) (string, bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	val, ok := f.secrets[key]
	return val, ok, nil
}

func (f *FileSecretStore) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	next := make(map[string]string, len(f.secrets)+1)
	for k, v := range f.secrets {
		next[k] = v
	}
	next[key] = value

	if err := f.save(next); err != nil {
		return err
	}
	f.secrets = next
	return nil
}

func (f *FileSecretStore) save(secrets map[string]string) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create secret directory: %w", err)
	}

	data, err := yaml.Marshal(secrets)
	if err != nil {
		return fmt.Errorf("failed to encode secrets: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempName := tempFile.Name()
	defer func() {
		if tempFile != nil {
			tempFile.Close()
			os.Remove(tempName)
		}
	}()

	if err := tempFile.Chmod(0600); err != nil {
		return err
	}
	if _, err := tempFile.Write(data); err != nil {
		return err
	}
	if err := tempFile.Sync(); err != nil {
		return err
	}
	if err := tempFile.Close(); err != nil {
		return err
	}

	// Ensure we don't try to close or remove it in defer if successful
	tempFile = nil

	if err := os.Rename(tempName, f.path); err != nil {
		os.Remove(tempName) // cleanup on rename failure
		return fmt.Errorf("failed to replace secret file: %w", err)
	}
	return nil
}
