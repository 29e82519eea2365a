package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// nextCode generates the next sequential code for a prefix by parsing
// the numeric suffix of the highest code assigned so far. An empty or
// unparsable last code restarts the sequence at 1. Codes are assigned
// exactly once and never reused.
func nextCode(prefix, last string) string {
	number := 1
	if last != "" {
		idx := strings.LastIndex(last, "-")
		if idx >= 0 {
			if n, err := strconv.Atoi(last[idx+1:]); err == nil {
				number = n + 1
			}
		}
	}
	return fmt.Sprintf("%s-%06d", prefix, number)
}

// fallbackCode is used when a generated code loses a uniqueness race:
// a random suffix instead of a sequence number.
func fallbackCode(prefix string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return fmt.Sprintf("%s-%s", prefix, suffix)
}
