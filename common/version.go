package common

import (
	"errors"
	"fmt"
)

const (
	major = 1
	minor = 0
	patch = 0

	// Version is the packed contract version written to storage at
	// initialization and checked when an existing store is reopened.
	Version = major*1_000_000 + minor*1_000 + patch
)

// ErrVersionMismatch is returned by CheckVersion when the stored layout is
// newer than this code understands.
var ErrVersionMismatch = errors.New("contract version mismatch")

// CheckVersion verifies that a stored contract state can be served by this
// build. Older stored versions are accepted (layouts are append-only so far),
// newer ones are not.
func CheckVersion(stored uint64) error {
	if stored > Version {
		return fmt.Errorf("%w: stored %d, supported %d", ErrVersionMismatch, stored, Version)
	}
	return nil
}
