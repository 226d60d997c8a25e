package support

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m3o/safe/pkg/config"
	"github.com/m3o/safe/pkg/seal"
	"github.com/m3o/safe/pkg/secrets"
	"github.com/zalando/go-keyring"
)

func TestOpenSafeFileBackend(t *testing.T) {
	configDir := t.TempDir()
	stateDir := t.TempDir()
	t.Setenv(KeyCipherPassword, "test-secret")

	opts := Options{ConfigDir: configDir, StateDir: stateDir, NonInteractive: true}
	s, err := OpenSafe(opts)
	if err != nil {
		t.Fatalf("OpenSafe failed: %v", err)
	}
	if err := s.StoreAccessToken("token"); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(stateDir, DefaultSecretFile)); err != nil {
		t.Errorf("Expected secret file in state dir: %v", err)
	}

	reopened, err := OpenSafe(opts)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	got, err := reopened.AccessToken()
	if err != nil || got != "token" {
		t.Errorf("Expected token, got %q, %v", got, err)
	}
}

func TestOpenSafeMissingSecret(t *testing.T) {
	t.Setenv(KeyCipherPassword, "")
	_, err := OpenSafe(Options{ConfigDir: t.TempDir(), StateDir: t.TempDir(), Backend: BackendMemory, NonInteractive: true})
	if err == nil {
		t.Errorf("Expected error without cipher password in non-interactive mode")
	}
}

func TestLoadMergedConfigPriority(t *testing.T) {
	configDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(configDir, DefaultConfigFile), []byte("SAFE_BACKEND=keyring\nSAFE_KDF=pbkdf2\nSAFE_KDF_SALT=from-default\n"), 0600); err != nil {
		t.Fatal(err)
	}
	explicit := filepath.Join(t.TempDir(), "custom.env")
	if err := os.WriteFile(explicit, []byte("SAFE_BACKEND=memory\nSAFE_KDF_SALT=from-file\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(KeyKDFSalt, "from-env")

	cfg := LoadMergedConfig(configDir, explicit, logger)

	if got := cfg.Get(KeyKDFSalt, ""); got != "from-env" {
		t.Errorf("Expected env to win, got %s", got)
	}
	if got := cfg.Get(KeyBackend, ""); got != BackendMemory {
		t.Errorf("Expected explicit file to win over default, got %s", got)
	}
	if got := cfg.Get(KeyKDF, ""); got != "pbkdf2" {
		t.Errorf("Expected default file value, got %s", got)
	}
}

func TestOpenBackend(t *testing.T) {
	stateDir := t.TempDir()

	store, err := OpenBackend(config.Config{}, BackendFile, stateDir)
	if err != nil {
		t.Fatalf("OpenBackend failed: %v", err)
	}
	fs, ok := store.(*secrets.FileSecretStore)
	if !ok {
		t.Fatalf("Expected file store, got %T", store)
	}
	if fs.Path() != filepath.Join(stateDir, DefaultSecretFile) {
		t.Errorf("Unexpected default path %s", fs.Path())
	}

	custom := filepath.Join(t.TempDir(), "prefs.yaml")
	store, err = OpenBackend(config.Config{KeyFile: custom}, BackendFile, stateDir)
	if err != nil {
		t.Fatalf("OpenBackend failed: %v", err)
	}
	if store.(*secrets.FileSecretStore).Path() != custom {
		t.Errorf("Expected custom path %s", custom)
	}

	store, err = OpenBackend(config.Config{}, BackendKeyring, stateDir)
	if err != nil {
		t.Fatalf("OpenBackend failed: %v", err)
	}
	rs, ok := store.(*secrets.RetryStore)
	if !ok {
		t.Fatalf("Expected retrying keyring store, got %T", store)
	}
	if ks, ok := rs.Inner.(*secrets.KeyringSecretStore); !ok || ks.Service != secrets.DefaultKeyringService {
		t.Errorf("Unexpected inner store %#v", rs.Inner)
	}

	if _, err := OpenBackend(config.Config{}, "sqlite", stateDir); err == nil {
		t.Errorf("Expected error for unsupported backend")
	}
}

func TestKeyDeriverFromConfig(t *testing.T) {
	kd, err := KeyDeriverFromConfig(config.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := kd.(seal.SHA256); !ok {
		t.Errorf("Expected SHA256 default, got %T", kd)
	}

	kd, err = KeyDeriverFromConfig(config.Config{KeyKDF: "pbkdf2", KeyKDFSalt: "salt", KeyKDFIterations: "1000"})
	if err != nil {
		t.Fatal(err)
	}
	p, ok := kd.(seal.PBKDF2)
	if !ok || string(p.Salt) != "salt" || p.Iterations != 1000 {
		t.Errorf("Unexpected deriver %#v", kd)
	}

	if _, err := KeyDeriverFromConfig(config.Config{KeyKDF: "pbkdf2"}); err == nil {
		t.Errorf("Expected error for pbkdf2 without salt")
	}
	if _, err := KeyDeriverFromConfig(config.Config{KeyKDF: "md5"}); err == nil {
		t.Errorf("Expected error for unknown kdf")
	}
}

func TestResolveSecretFromKeyring(t *testing.T) {
	keyring.MockInit()
	if err := keyring.Set(CipherPasswordService, CipherPasswordUser, "from-keyring"); err != nil {
		t.Fatal(err)
	}

	secret, err := ResolveSecret(config.Config{}, true, true)
	if err != nil {
		t.Fatalf("ResolveSecret failed: %v", err)
	}
	if secret != "from-keyring" {
		t.Errorf("Expected keyring secret, got %q", secret)
	}

	secret, err = ResolveSecret(config.Config{KeyCipherPassword: "from-config"}, true, true)
	if err != nil || secret != "from-config" {
		t.Errorf("Expected config to win, got %q, %v", secret, err)
	}

	if _, err := ResolveSecret(config.Config{}, false, true); err == nil {
		t.Errorf("Expected error without keyring and prompt")
	}
}
