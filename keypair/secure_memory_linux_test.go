package keypair

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lockedKB returns the "Locked:" size of the mapping containing addr, as
// reported by /proc/self/smaps.
func lockedKB(t *testing.T, addr uintptr) int {
	t.Helper()
	f, err := os.Open("/proc/self/smaps")
	if err != nil {
		t.Skipf("smaps unavailable: %v", err)
	}
	defer f.Close()

	inMapping := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if bounds := strings.SplitN(fields[0], "-", 2); len(bounds) == 2 && !strings.HasSuffix(fields[0], ":") {
			start, errStart := strconv.ParseUint(bounds[0], 16, 64)
			end, errEnd := strconv.ParseUint(bounds[1], 16, 64)
			if errStart == nil && errEnd == nil {
				inMapping = uint64(addr) >= start && uint64(addr) < end
				continue
			}
		}
		if inMapping && fields[0] == "Locked:" && len(fields) >= 2 {
			kb, err := strconv.Atoi(fields[1])
			require.NoError(t, err)
			return kb
		}
	}
	require.NoError(t, scanner.Err())
	t.Fatalf("no mapping found for %#x", addr)
	return 0
}

func regionAddr(kp *KeyPair) uintptr {
	return uintptr(unsafe.Pointer(&kp.private.region[0]))
}

func TestPrivateBuffersUseSeparateMappings(t *testing.T) {
	a, err := Generate()
	require.NoError(t, err)
	defer a.Destroy()
	b, err := Generate()
	require.NoError(t, err)
	defer b.Destroy()

	require.True(t, a.private.mapped)
	require.True(t, b.private.mapped)

	pageSize := uintptr(os.Getpagesize())
	assert.NotEqual(t, regionAddr(a)/pageSize, regionAddr(b)/pageSize)
	assert.Len(t, a.private.bytes, KeySize)
	assert.Equal(t, 0, len(a.private.region)%os.Getpagesize())
}

func TestDestroyKeepsOtherKeysLocked(t *testing.T) {
	a, err := Generate()
	require.NoError(t, err)
	b, err := Generate()
	require.NoError(t, err)
	defer b.Destroy()

	if !a.private.locked || !b.private.locked {
		t.Skip("mlock not permitted (RLIMIT_MEMLOCK)")
	}
	bAddr := regionAddr(b)
	require.Positive(t, lockedKB(t, bAddr))

	bPrivate := b.ExposePrivateKey().Expose()
	a.Destroy()

	assert.True(t, b.private.locked)
	assert.Positive(t, lockedKB(t, bAddr), fmt.Sprintf("mapping at %#x unlocked by another key's Destroy", bAddr))
	assert.Equal(t, bPrivate, b.ExposePrivateKey().Expose())
	assert.True(t, b.Consistent())
}

func TestReleaseIsIdempotent(t *testing.T) {
	buf := newPrivateBuffer()
	buf.bytes[0] = 0x7F

	buf.release()
	assert.Nil(t, buf.region)
	assert.False(t, buf.locked)
	assert.False(t, buf.mapped)

	buf.release()
}
