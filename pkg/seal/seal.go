// Package seal implements the symmetric encryption used for values at rest:
// AES in CBC mode with PKCS#7 padding under a fixed all-zero IV, and a
// base64 text encoding of the result.
//
// The IV never changes, so equal plaintexts under the same key always give
// equal ciphertexts. Values written by earlier releases depend on this.
package seal

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"strings"

	"github.com/pkg/errors"
)

// IVSize is the length of the initialization vector, one AES block.
const IVSize = aes.BlockSize

var (
	// ErrInvalidKey is returned when the key does not fit the cipher.
	ErrInvalidKey = errors.New("invalid key")

	// ErrInvalidCiphertext is returned when the ciphertext cannot be decoded or
	// is not a whole number of blocks.
	ErrInvalidCiphertext = errors.New("invalid ciphertext")

	// ErrInvalidPadding is returned when the decrypted data has broken padding,
	// which usually means the wrong key was used.
	ErrInvalidPadding = errors.New("invalid padding")
)

func newBlock(key []byte) (cipher.Block, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidKey, "cannot create aes block cipher: %v", err)
	}
	return block, nil
}

// ValidateKey reports whether key can be used with Encrypt and Decrypt.
func ValidateKey(key []byte) error {
	_, err := newBlock(key)
	return err
}

// Encrypt pads plaintext and encrypts it with AES-CBC under the zero IV.
func Encrypt(key, plaintext []byte) ([]byte, error) {
	block, err := newBlock(key)
	if err != nil {
		return nil, err
	}
	padded := Pad(plaintext, block.BlockSize())
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, make([]byte, IVSize)).CryptBlocks(ciphertext, padded)
	return ciphertext, nil
}

// Decrypt reverses Encrypt.
func Decrypt(key, ciphertext []byte) ([]byte, error) {
	block, err := newBlock(key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) == 0 || len(ciphertext)%block.BlockSize() != 0 {
		return nil, errors.Wrapf(ErrInvalidCiphertext, "length %d is not a multiple of the block size", len(ciphertext))
	}
	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, make([]byte, IVSize)).CryptBlocks(plaintext, ciphertext)
	return Unpad(plaintext, block.BlockSize())
}

// Pad appends PKCS#7 padding. A full block is added when data is already
// block aligned.
func Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(append(make([]byte, 0, len(data)+n), data...), bytes.Repeat([]byte{byte(n)}, n)...)
}

// Unpad strips and validates PKCS#7 padding.
func Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errors.Wrap(ErrInvalidPadding, "data is not block aligned")
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, errors.Wrapf(ErrInvalidPadding, "bad pad length %d", n)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, errors.Wrap(ErrInvalidPadding, "inconsistent pad bytes")
		}
	}
	return data[:len(data)-n], nil
}

// EncodeText encodes ciphertext with the standard padded base64 alphabet.
func EncodeText(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeText decodes base64 text produced by EncodeText. Line breaks are
// ignored so that text wrapped at 76 columns decodes too.
func DecodeText(text string) ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r':
			return -1
		}
		return r
	}, text)
	data, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidCiphertext, "cannot decode base64: %v", err)
	}
	return data, nil
}
