package secrets

import (
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// DefaultRetryMaxElapsed bounds how long RetryStore keeps retrying a call.
const DefaultRetryMaxElapsed = 5 * time.Second

// RetryStore retries failed calls to a store whose medium can be briefly
// unavailable, such as an OS keyring behind a session bus.
type RetryStore struct {
	Inner Store
	// NewBackOff returns the policy for a single call.
	NewBackOff func() backoff.BackOff
}

func NewRetryStore(inner Store, maxElapsed time.Duration) *RetryStore {
	if maxElapsed <= 0 {
		maxElapsed = DefaultRetryMaxElapsed
	}
	return &RetryStore{
		Inner: inner,
		NewBackOff: func() backoff.BackOff {
			expBackoff := backoff.NewExponentialBackOff()
			expBackoff.InitialInterval = 100 * time.Millisecond
			expBackoff.MaxElapsedTime = maxElapsed
			return expBackoff
		},
	}
}

func (r *RetryStore) Get(key string) (string, bool, error) {
	var (
		val   string
		found bool
	)
	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		var err error
		val, found, err = r.Inner.Get(key)
		if err != nil {
			logger.Debugf("Retrying get of %s, attempt %d, error: %v", key, attempt, err)
		}
		return err
	}, r.NewBackOff())
	if err != nil {
		return "", false, err
	}
	return val, found, nil
}

func (r *RetryStore) Set(key, value string) error {
	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := r.Inner.Set(key, value)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrValueTooLarge) {
			return backoff.Permanent(err)
		}
		logger.Debugf("Retrying set of %s, attempt %d, error: %v", key, attempt, err)
		return err
	}, r.NewBackOff())
}
