package safe

import "errors"

var (
	// ErrConfiguration indicates the cipher could not be set up from the
	// supplied configuration, so nothing was encrypted or stored.
	ErrConfiguration = errors.New("secret store misconfigured")

	// ErrDecryption indicates a stored value could not be decoded or decrypted.
	// Corrupt data, tampering and a changed application secret all end here.
	ErrDecryption = errors.New("failed to decrypt stored secret")

	// ErrEmptySlot indicates an empty slot key.
	ErrEmptySlot = errors.New("slot key is empty")

	// ErrUnknownSlot indicates a slot name that is not predefined.
	ErrUnknownSlot = errors.New("unknown slot")
)
