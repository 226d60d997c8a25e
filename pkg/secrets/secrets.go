// Package secrets provides the durable string-keyed, string-valued maps that
// encrypted values are persisted in.
package secrets

import "errors"

// ErrValueTooLarge is returned by Set when the medium cannot hold the value.
// Retrying does not help.
var ErrValueTooLarge = errors.New("value too large for secret store")

// Store is a durable key/value map. Set commits before returning, and a Get
// after a Set in the same process observes the written value.
type Store interface {
	// Get returns the value for key. found is false when key was never set.
	Get(key string) (value string, found bool, err error)
	Set(key, value string) error
}
