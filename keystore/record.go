package keystore

import (
	"fmt"
	"io"

	"github.com/lyrechain/LyreWallet/keypair"
	"github.com/lyrechain/LyreWallet/secret"
)

// Record layout: [tag:1][private:32][public:32].
const (
	RecordSize    = 1 + 2*keypair.KeySize
	privateOffset = 1
	publicOffset  = privateOffset + keypair.KeySize
)

// Record is a decoded stored key record. PrivateField holds raw key bytes
// for PlainBytes and ciphertext for every other tag.
type Record struct {
	Cipher       Cipher
	Tag          byte
	PrivateField [keypair.KeySize]byte
	PublicKey    [keypair.KeySize]byte
}

// EncodeRecord lays out a record in its fixed 65-byte form.
func EncodeRecord(cipher Cipher, private, public [keypair.KeySize]byte) [RecordSize]byte {
	var buf [RecordSize]byte
	buf[0] = byte(cipher)
	copy(buf[privateOffset:publicOffset], private[:])
	copy(buf[publicOffset:], public[:])
	return buf
}

// DecodeRecord splits buf into a Record. buf must hold at least
// RecordSize bytes; anything past RecordSize is ignored. A short buffer
// fails with a FixedLengthConversion error.
func DecodeRecord(buf []byte) (Record, error) {
	var rec Record
	if len(buf) == 0 {
		return rec, newError("decode", "", KindFixedLengthConversion, "empty record", nil)
	}
	rec.Tag = buf[0]
	rec.Cipher = ParseCipher(buf[0])

	var err error
	if rec.PrivateField, err = toFixed(buf, privateOffset); err != nil {
		return Record{}, err
	}
	if rec.PublicKey, err = toFixed(buf, publicOffset); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// toFixed copies the key-sized field starting at offset, failing instead of
// panicking when buf is too short.
func toFixed(buf []byte, offset int) ([keypair.KeySize]byte, error) {
	var out [keypair.KeySize]byte
	end := offset + keypair.KeySize
	if len(buf) < end {
		return out, newError("decode", "", KindFixedLengthConversion,
			"record field truncated", nil)
	}
	copy(out[:], buf[offset:end])
	return out, nil
}

// Wipe zeroes the private field.
func (r *Record) Wipe() {
	secret.Wipe(r.PrivateField[:])
}

func (r Record) String() string {
	return fmt.Sprintf("Record{cipher: %s, privkey: %s, pubkey: %x}", r.Cipher, secret.Redacted, r.PublicKey[:])
}

// Format implements fmt.Formatter so the private field is never printed.
func (r Record) Format(f fmt.State, _ rune) {
	io.WriteString(f, r.String())
}
