package repositories

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
)

// readRetryBackoff is the pause before the single retry of an idempotent read.
var readRetryBackoff = 100 * time.Millisecond

// withReadRetry runs an idempotent read, retrying once after a short backoff
// when the failure is infrastructural. Expected outcomes (no rows, constraint
// conflicts) are returned as-is. Writes must never pass through here.
func withReadRetry(op, key string, fn func() error) error {
	err := fn()
	if err == nil || !transientReadError(err) {
		return err
	}

	time.Sleep(readRetryBackoff)
	if err = fn(); err != nil && transientReadError(err) {
		log.Printf("%s failed after retry (key=%s): %v", op, key, err)
	}
	return err
}

// transientReadError separates infrastructure failures from expected lookup
// outcomes, which must surface immediately.
func transientReadError(err error) bool {
	return !errors.Is(err, gorm.ErrRecordNotFound) &&
		!errors.Is(err, gorm.ErrDuplicatedKey)
}
