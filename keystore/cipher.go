package keystore

import "fmt"

// XChaChaNonceSize is the extended 192-bit nonce length shared by the
// XChaCha tags.
const XChaChaNonceSize = 24

// Cipher identifies how the private key field of a stored record is
// encoded. It is the first byte of every record.
type Cipher uint8

const (
	// PlainBytes stores the private key unencrypted.
	PlainBytes Cipher = 0x00
	// Base58 stores the private key as base58 text.
	Base58 Cipher = 0x01
	// XChaCha20Blake3AEAD is XChaCha with 20 rounds and a BLAKE3 MAC.
	XChaCha20Blake3AEAD Cipher = 0x02
	// XChaCha12Blake3AEAD is XChaCha with 12 rounds and a BLAKE3 MAC.
	XChaCha12Blake3AEAD Cipher = 0x03
	// XChaCha8Blake3AEAD is XChaCha with 8 rounds and a BLAKE3 MAC.
	XChaCha8Blake3AEAD Cipher = 0x04
	// UnsupportedCipher stands for every tag byte not listed above.
	UnsupportedCipher Cipher = 0xFF
)

// ParseCipher maps a tag byte to a Cipher. Unknown bytes map to
// UnsupportedCipher.
func ParseCipher(tag byte) Cipher {
	switch c := Cipher(tag); c {
	case PlainBytes, Base58, XChaCha20Blake3AEAD, XChaCha12Blake3AEAD, XChaCha8Blake3AEAD:
		return c
	default:
		return UnsupportedCipher
	}
}

func (c Cipher) String() string {
	switch c {
	case PlainBytes:
		return "PlainBytes"
	case Base58:
		return "Base58"
	case XChaCha20Blake3AEAD:
		return "XChaCha20Blake3Aead"
	case XChaCha12Blake3AEAD:
		return "XChaCha12Blake3Aead"
	case XChaCha8Blake3AEAD:
		return "XChaCha8Blake3Aead"
	case UnsupportedCipher:
		return "UnsupportedCipher"
	default:
		return fmt.Sprintf("Cipher(0x%02x)", uint8(c))
	}
}

// Supported reports whether records with this tag can be decoded.
// Only PlainBytes is implemented.
func (c Cipher) Supported() bool {
	return c == PlainBytes
}

// IsAEAD reports whether c is one of the authenticated-encryption tags.
func (c Cipher) IsAEAD() bool {
	switch c {
	case XChaCha20Blake3AEAD, XChaCha12Blake3AEAD, XChaCha8Blake3AEAD:
		return true
	default:
		return false
	}
}

// NonceSize is the nonce length an AEAD tag uses, or 0 for non-AEAD tags.
func (c Cipher) NonceSize() int {
	if !c.IsAEAD() {
		return 0
	}
	return XChaChaNonceSize
}

// Rounds is the ChaCha round count of an AEAD tag, or 0 for non-AEAD tags.
func (c Cipher) Rounds() int {
	switch c {
	case XChaCha20Blake3AEAD:
		return 20
	case XChaCha12Blake3AEAD:
		return 12
	case XChaCha8Blake3AEAD:
		return 8
	default:
		return 0
	}
}

// Describe names the cipher with its tag byte and, for AEAD tags, the round
// count and nonce size.
func (c Cipher) Describe(tag byte) string {
	if c.IsAEAD() {
		return fmt.Sprintf("%s (0x%02x, %d rounds, %d-byte nonce)", c, tag, c.Rounds(), c.NonceSize())
	}
	return fmt.Sprintf("%s (0x%02x)", c, tag)
}
