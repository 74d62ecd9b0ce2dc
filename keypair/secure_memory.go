package keypair

import (
	"runtime"

	"github.com/lyrechain/LyreWallet/secret"
)

// privateBuffer holds a private seed. Where the platform allows it the
// seed sits in its own anonymous mapping, locked against swap and
// excluded from core dumps. Memory locks are per page and do not nest, so
// every buffer gets a dedicated mapping; releasing one key never unlocks
// another.
type privateBuffer struct {
	bytes  []byte // first KeySize bytes of region
	region []byte
	mapped bool
	locked bool
}

func newPrivateBuffer() *privateBuffer {
	logger := NewLogger("newPrivateBuffer")

	buf := &privateBuffer{}
	if secureMemory {
		region, err := mapRegion(KeySize)
		if err != nil {
			logger.WithError(err, "mmap", "mapRegion").
				Warn("Could not map private key memory, falling back to the heap")
		} else {
			buf.region = region
			buf.mapped = true
		}
	}
	if !buf.mapped {
		buf.region = make([]byte, KeySize)
	}
	buf.bytes = buf.region[:KeySize]

	if buf.mapped {
		if err := lockRegion(buf.region); err != nil {
			logger.WithError(err, "mlock", "lockRegion").
				Warn("Could not lock private key memory, continuing unlocked")
		} else {
			buf.locked = true
		}
	}

	runtime.SetFinalizer(buf, (*privateBuffer).release)
	return buf
}

// release wipes the seed, then unlocks and unmaps its region. It runs from
// Destroy and from the finalizer, and does nothing the second time.
func (b *privateBuffer) release() {
	if b.region == nil {
		return
	}
	secret.Wipe(b.bytes)
	if b.locked {
		_ = unlockRegion(b.region)
		b.locked = false
	}
	if b.mapped {
		_ = unmapRegion(b.region)
		b.mapped = false
	}
	b.bytes = nil
	b.region = nil
}
