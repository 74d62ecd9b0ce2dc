package keypair

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"
	"runtime"

	"github.com/lyrechain/LyreWallet/secret"
)

// KeySize is the length of both the private seed and the public key.
const KeySize = 32

// entropy is the CSPRNG used for key generation. Tests replace it to
// exercise failure paths.
var entropy io.Reader = rand.Reader

// KeyPair is an ed25519 signing keypair.
//
// The private seed lives in a separately allocated buffer so that copies
// of a KeyPair value never duplicate it. See privateBuffer.
type KeyPair struct {
	private *privateBuffer
	public  [KeySize]byte
}

// Generate returns a new keypair drawn from the operating system CSPRNG.
func Generate() (*KeyPair, error) {
	kp := &KeyPair{}
	if err := kp.Regenerate(); err != nil {
		return nil, err
	}
	return kp, nil
}

// Regenerate replaces the contents of kp with a freshly generated keypair.
// The previous private key is wiped first, so an entropy failure leaves kp
// scrubbed. Entropy failures are never papered over with weaker randomness.
func (kp *KeyPair) Regenerate() error {
	logger := NewLogger("Regenerate")
	logger.Entry("generating ed25519 keypair")

	kp.ZeroPrivateKey()

	var seed [KeySize]byte
	defer secret.Wipe(seed[:])
	if _, err := io.ReadFull(entropy, seed[:]); err != nil {
		logger.WithError(err, "entropy", "read seed").Error("Key generation failed")
		return fmt.Errorf("failed to read key material from CSPRNG: %w", err)
	}

	expanded := ed25519.NewKeyFromSeed(seed[:])
	defer secret.Wipe(expanded)

	var public [KeySize]byte
	copy(public[:], expanded.Public().(ed25519.PublicKey))

	kp.set(seed, public)

	logger.WithFields(PublicKeyFields(kp.public)).Debug("Keypair generated")
	return nil
}

// FromParts builds a keypair from raw private and public halves without
// deriving one from the other. Use Consistent to check them.
func FromParts(private, public [KeySize]byte) *KeyPair {
	kp := &KeyPair{}
	kp.set(private, public)
	return kp
}

// Set overwrites kp with the given halves, wiping the previous private key.
func (kp *KeyPair) Set(private, public [KeySize]byte) {
	kp.ZeroPrivateKey()
	kp.set(private, public)
}

func (kp *KeyPair) set(private, public [KeySize]byte) {
	if kp.private == nil {
		kp.private = newPrivateBuffer()
	}
	copy(kp.private.bytes, private[:])
	kp.public = public
}

// PublicKey returns a copy of the public key.
func (kp *KeyPair) PublicKey() [KeySize]byte {
	return kp.public
}

// ExposePrivateKey returns a copy of the private key wrapped in a
// secret.Key.
//
// The caller takes responsibility for the copy: it must not be logged or
// persisted except through the keystore, and should be destroyed once
// used. An unpopulated keypair yields 32 zero bytes.
func (kp *KeyPair) ExposePrivateKey() *secret.Key {
	if kp.private == nil {
		return secret.NewKey([KeySize]byte{})
	}
	return secret.NewKey([KeySize]byte(kp.private.bytes))
}

// IsPopulated reports whether the private key holds non-zero material.
func (kp *KeyPair) IsPopulated() bool {
	return kp.private != nil && !secret.IsZero(kp.private.bytes[:])
}

// Consistent reports whether the public key is the ed25519 derivation of
// the private key. A scrubbed or unpopulated keypair is consistent.
func (kp *KeyPair) Consistent() bool {
	if !kp.IsPopulated() {
		return true
	}
	expanded := ed25519.NewKeyFromSeed(kp.private.bytes[:])
	defer secret.Wipe(expanded)
	derived := expanded.Public().(ed25519.PublicKey)
	return subtle.ConstantTimeCompare(derived, kp.public[:]) == 1
}

// Destroy wipes the private key and releases its memory lock. The public
// key is kept. Destroy is meant to be deferred at the end of the owning
// scope and is safe to call more than once.
func (kp *KeyPair) Destroy() {
	if kp.private == nil {
		return
	}
	buf := kp.private
	buf.release()
	runtime.SetFinalizer(buf, nil)
	kp.private = nil
}
