package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicate detects a unique-constraint violation. gorm translates
// the postgres error when TranslateError is on; the string check covers
// drivers that surface the raw pq message.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key")
}
