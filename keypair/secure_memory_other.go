//go:build !linux

package keypair

import "errors"

const secureMemory = false

var errNoSecureMemory = errors.New("locked memory is not supported on this platform")

func mapRegion(int) ([]byte, error) { return nil, errNoSecureMemory }

func lockRegion([]byte) error { return errNoSecureMemory }

func unlockRegion([]byte) error { return nil }

func unmapRegion([]byte) error { return nil }
