package repositories

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestWithReadRetryRecoversOnSecondAttempt(t *testing.T) {
	prev := readRetryBackoff
	readRetryBackoff = time.Millisecond
	defer func() { readRetryBackoff = prev }()

	calls := 0
	err := withReadRetry("get post", "post-1", func() error {
		calls++
		if calls == 1 {
			return errors.New("connection reset by peer")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestWithReadRetryDoesNotRetryNotFound(t *testing.T) {
	calls := 0
	err := withReadRetry("get post", "post-1", func() error {
		calls++
		return gorm.ErrRecordNotFound
	})

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Equal(t, 1, calls)
}

func TestWithReadRetryDoesNotRetryConstraintConflicts(t *testing.T) {
	calls := 0
	err := withReadRetry("get user", "user-1", func() error {
		calls++
		return gorm.ErrDuplicatedKey
	})

	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.Equal(t, 1, calls)
}

func TestWithReadRetryGivesUpAfterOneRetry(t *testing.T) {
	prev := readRetryBackoff
	readRetryBackoff = time.Millisecond
	defer func() { readRetryBackoff = prev }()

	calls := 0
	transient := errors.New("connection refused")
	err := withReadRetry("get deal", "deal-1", func() error {
		calls++
		return transient
	})

	assert.ErrorIs(t, err, transient)
	assert.Equal(t, 2, calls)
}
