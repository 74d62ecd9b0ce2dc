package keypair

import "golang.org/x/sys/unix"

const secureMemory = true

// mapRegion allocates whole pages outside the Go heap for size bytes.
func mapRegion(size int) ([]byte, error) {
	pageSize := unix.Getpagesize()
	length := (size + pageSize - 1) / pageSize * pageSize
	return unix.Mmap(-1, 0, length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
}

func lockRegion(region []byte) error {
	if err := unix.Mlock(region); err != nil {
		return err
	}
	// MADV_DONTDUMP is missing on old kernels; the swap lock still holds.
	_ = unix.Madvise(region, unix.MADV_DONTDUMP)
	return nil
}

func unlockRegion(region []byte) error { return unix.Munlock(region) }

func unmapRegion(region []byte) error { return unix.Munmap(region) }
