package secret

import (
	"crypto/subtle"
	"fmt"
	"runtime"
)

// Size is the length of every secret held by a Key.
const Size = 32

// Redacted is printed in place of secret bytes.
const Redacted = "REDACTED"

// Key is a 32-byte secret whose formatted representation is always
// redacted. The zero value behaves as 32 zero bytes.
//
// Formatting methods use value receivers so that a copied Key is redacted
// as well; the bytes themselves live behind a pointer and are shared by
// copies.
type Key struct {
	bytes *[Size]byte
}

// NewKey copies value into a new Key. The caller still owns value and
// should wipe it if it is no longer needed.
func NewKey(value [Size]byte) *Key {
	buf := new([Size]byte)
	*buf = value
	runtime.SetFinalizer(buf, func(b *[Size]byte) { Wipe(b[:]) })
	return &Key{bytes: buf}
}

// Expose returns a copy of the secret bytes.
//
// This is a trust boundary: the returned array is ordinary memory and is
// no longer covered by redaction or wiping.
func (k Key) Expose() [Size]byte {
	if k.bytes == nil {
		return [Size]byte{}
	}
	return *k.bytes
}

// Destroy overwrites the secret with zeros. It is safe to call more than
// once.
func (k Key) Destroy() {
	if k.bytes == nil {
		return
	}
	Wipe(k.bytes[:])
}

// IsZero reports whether every byte of the secret is zero.
func (k Key) IsZero() bool {
	if k.bytes == nil {
		return true
	}
	return IsZero(k.bytes[:])
}

func (k Key) String() string   { return Redacted }
func (k Key) GoString() string { return "secret.Key{" + Redacted + "}" }

// Format implements fmt.Formatter so that no verb, including %x and %#v,
// reaches the underlying bytes.
func (k Key) Format(f fmt.State, verb rune) {
	if verb == 'v' && f.Flag('#') {
		fmt.Fprint(f, k.GoString())
		return
	}
	fmt.Fprint(f, Redacted)
}

func (k Key) MarshalText() ([]byte, error) { return []byte(Redacted), nil }
func (k Key) MarshalJSON() ([]byte, error) { return []byte(`"` + Redacted + `"`), nil }

// Wipe overwrites b with zeros.
//
//go:noinline
func Wipe(b []byte) {
	if len(b) == 0 {
		return
	}
	zeros := make([]byte, len(b))
	subtle.ConstantTimeCopy(1, b, zeros)
	runtime.KeepAlive(b)
}

// IsZero reports in constant time whether b is all zeros.
func IsZero(b []byte) bool {
	zeros := make([]byte, len(b))
	return subtle.ConstantTimeCompare(b, zeros) == 1
}
