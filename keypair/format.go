package keypair

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mr-tron/base58"
	"github.com/zeebo/blake3"

	"github.com/lyrechain/LyreWallet/secret"
)

// FingerprintSize is the number of BLAKE3 digest bytes kept in a
// fingerprint.
const FingerprintSize = 10

// PublicKeyBase58 returns the base58 form of the public key.
func (kp KeyPair) PublicKeyBase58() string {
	return base58.Encode(kp.public[:])
}

// Fingerprint returns a short hex BLAKE3 fingerprint of the public key,
// suitable for logs and prompts.
func (kp KeyPair) Fingerprint() string {
	return Fingerprint(kp.public)
}

// Fingerprint hashes a public key with BLAKE3 and truncates the digest to
// FingerprintSize bytes.
func Fingerprint(public [KeySize]byte) string {
	sum := blake3.Sum256(public[:])
	return hex.EncodeToString(sum[:FingerprintSize])
}

// String, GoString and Format use value receivers so that a KeyPair
// printed by value is redacted too.

func (kp KeyPair) String() string {
	return fmt.Sprintf("LyreKeyPair{privkey: %s, pubkey: %x}", secret.Redacted, kp.public[:])
}

func (kp KeyPair) GoString() string {
	return fmt.Sprintf("keypair.KeyPair{privkey: %q, pubkey: %#v}", secret.Redacted, kp.public)
}

// Format implements fmt.Formatter. Every verb prints the redacted form.
func (kp KeyPair) Format(f fmt.State, verb rune) {
	if verb == 'v' && f.Flag('#') {
		io.WriteString(f, kp.GoString())
		return
	}
	io.WriteString(f, kp.String())
}

// MarshalJSON emits the public key in hex and the redaction marker in
// place of the private key.
func (kp KeyPair) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		PrivateKey string `json:"privkey"`
		PublicKey  string `json:"pubkey"`
	}{
		PrivateKey: secret.Redacted,
		PublicKey:  hex.EncodeToString(kp.public[:]),
	})
}

// DangerousDebugPrint writes both keys, unredacted, to stdout.
//
// DANGEROUS: this leaks the private key. Debug builds and local
// experiments only.
func (kp *KeyPair) DangerousDebugPrint() {
	kp.DangerousDebugFprint(os.Stdout)
}

// DangerousDebugFprint writes both keys, unredacted, to w.
//
// DANGEROUS: see DangerousDebugPrint.
func (kp *KeyPair) DangerousDebugFprint(w io.Writer) {
	var private [KeySize]byte
	if kp.private != nil {
		private = [KeySize]byte(kp.private.bytes)
	}
	defer secret.Wipe(private[:])

	NewLogger("DangerousDebugFprint").WithFields(PublicKeyFields(kp.public)).
		Warn("Printing unredacted private key")
	fmt.Fprintf(w, "LyreKeyPair { privkey: %x, pubkey: %x }\n", private[:], kp.public[:])
}
