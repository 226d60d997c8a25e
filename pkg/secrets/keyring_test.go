package secrets

import (
	"errors"
	"testing"

	"github.com/zalando/go-keyring"
)

func TestKeyringSecretStore(t *testing.T) {
	keyring.MockInit()

	ss := NewKeyringSecretStore("")
	if ss.Service != DefaultKeyringService {
		t.Errorf("Expected default service %s, got %s", DefaultKeyringService, ss.Service)
	}

	_, found, err := ss.Get("access_token")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Errorf("Expected missing entry to be absent")
	}

	if err := ss.Set("access_token", "c2VjcmV0"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	val, found, err := ss.Get("access_token")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !found || val != "c2VjcmV0" {
		t.Errorf("Expected stored value, got %q (found=%v)", val, found)
	}

	other := NewKeyringSecretStore("other")
	if _, found, _ := other.Get("access_token"); found {
		t.Errorf("Entries leaked across keyring services")
	}
}

func TestKeyringSecretStoreError(t *testing.T) {
	boom := errors.New("dbus unavailable")
	keyring.MockInitWithError(boom)
	defer keyring.MockInit()

	ss := NewKeyringSecretStore("Safe")
	if _, _, err := ss.Get("key"); !errors.Is(err, boom) {
		t.Errorf("Expected wrapped keyring error, got %v", err)
	}
	if err := ss.Set("key", "v"); !errors.Is(err, boom) {
		t.Errorf("Expected wrapped keyring error, got %v", err)
	}
}
