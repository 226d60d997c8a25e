package support

import (
	"fmt"
	"path/filepath"

	"github.com/m3o/safe/pkg/config"
	"github.com/m3o/safe/pkg/safe"
	"github.com/m3o/safe/pkg/seal"
	"github.com/m3o/safe/pkg/secrets"
)

const (
	BackendFile    = "file"
	BackendKeyring = "keyring"
	BackendMemory  = "memory"

	DefaultSecretFile = "Safe.yaml"

	// Keyring entry holding the application secret when --use-keyring is set.
	CipherPasswordService = "safe"
	CipherPasswordUser    = "cipher-password"
)

type Options struct {
	ConfigDir      string
	StateDir       string
	ConfigFile     string
	Backend        string
	UseKeyring     bool
	NonInteractive bool
}

// OpenSafe loads configuration, opens the configured backing store and
// returns a Safe on top of it.
func OpenSafe(opts Options) (*safe.Safe, error) {
	configDir, stateDir := GetPaths(opts.ConfigDir, opts.StateDir)
	logger.Debugf("Config dir: %s, state dir: %s", configDir, stateDir)
	cfg := LoadMergedConfig(configDir, opts.ConfigFile, logger)

	backendType := opts.Backend
	if backendType == "" {
		backendType = cfg.Get(KeyBackend, BackendFile)
	}
	store, err := OpenBackend(cfg, backendType, stateDir)
	if err != nil {
		return nil, err
	}

	kd, err := KeyDeriverFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	secret, err := ResolveSecret(cfg, opts.UseKeyring, opts.NonInteractive)
	if err != nil {
		return nil, err
	}

	return safe.New(store, safe.Config{Secret: secret, KeyDeriver: kd})
}

func OpenBackend(cfg config.Config, backendType, stateDir string) (secrets.Store, error) {
	logger.Debugf("Using %s backend", backendType)
	switch backendType {
	case BackendFile:
		path := cfg.Get(KeyFile, filepath.Join(stateDir, DefaultSecretFile))
		return secrets.OpenFileSecretStore(path)
	case BackendKeyring:
		ks := secrets.NewKeyringSecretStore(cfg.Get(KeyKeyringService, secrets.DefaultKeyringService))
		return secrets.NewRetryStore(ks, cfg.GetDuration(KeyRetryMaxElapsed, secrets.DefaultRetryMaxElapsed)), nil
	case BackendMemory:
		logger.Warn("Memory backend selected, values are lost when the process exits")
		return secrets.NewInMemorySecretStore(), nil
	}
	return nil, fmt.Errorf("unsupported backend: %s", backendType)
}

func KeyDeriverFromConfig(cfg config.Config) (seal.KeyDeriver, error) {
	switch kdf := cfg.Get(KeyKDF, "sha256"); kdf {
	case "sha256":
		return seal.SHA256{}, nil
	case "pbkdf2":
		salt := cfg.Get(KeyKDFSalt, "")
		if salt == "" {
			return nil, fmt.Errorf("%s is required when %s=pbkdf2", KeyKDFSalt, KeyKDF)
		}
		return seal.PBKDF2{
			Salt:       []byte(salt),
			Iterations: cfg.GetInt(KeyKDFIterations, seal.DefaultPBKDF2Iterations),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported key derivation: %s", kdf)
	}
}

// ResolveSecret finds the application secret in the config, then the OS
// keyring, then by prompting.
func ResolveSecret(cfg config.Config, useKeyring, nonInteractive bool) (string, error) {
	if secret := cfg.Get(KeyCipherPassword, ""); secret != "" {
		return secret, nil
	}

	if useKeyring {
		logger.Debug("Attempting to get cipher password from keyring")
		ks := secrets.NewKeyringSecretStore(CipherPasswordService)
		secret, found, err := ks.Get(CipherPasswordUser)
		if err != nil {
			logger.Warnf("Keyring lookup failed: %v", err)
		} else if found && secret != "" {
			return secret, nil
		}
	}

	if nonInteractive {
		return "", fmt.Errorf("cipher password missing (set %s or use --use-keyring)", KeyCipherPassword)
	}
	secret, err := ReadPassword("Enter cipher password: ")
	if err != nil {
		return "", fmt.Errorf("failed to read cipher password: %w", err)
	}
	if secret == "" {
		return "", fmt.Errorf("cipher password is required")
	}
	return secret, nil
}
