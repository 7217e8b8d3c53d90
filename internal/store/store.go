// Package store wraps the embedded database behind small, typed
// accessors. All methods take a context and either complete or fail
// fast; no store call holds a lock across user think-time.
package store

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
