package keypair

import "github.com/lyrechain/LyreWallet/secret"

// ZeroOutcome is the result of scrubbing a private key.
type ZeroOutcome uint8

const (
	// ZeroingCompleted means the private buffer was observed all-zero
	// after the overwrite.
	ZeroingCompleted ZeroOutcome = iota
	// ZeroingFailed means the buffer still held non-zero bytes after the
	// overwrite.
	ZeroingFailed
)

func (o ZeroOutcome) String() string {
	switch o {
	case ZeroingCompleted:
		return "ZeroingPrivKeyComplete"
	case ZeroingFailed:
		return "ZeroingPrivKeyError"
	default:
		return "ZeroOutcome(unknown)"
	}
}

// wipe is the overwrite used by ZeroPrivateKey.
var wipe = secret.Wipe

// ZeroPrivateKey overwrites the private key with zeros in place and checks
// the buffer afterwards. The public key is deliberately left intact.
//
// Scrubbing is hygiene rather than a correctness step for the caller, so a
// failed verification is reported as ZeroingFailed instead of an error.
func (kp *KeyPair) ZeroPrivateKey() ZeroOutcome {
	logger := NewLogger("ZeroPrivateKey")

	if kp.private == nil {
		return ZeroingCompleted
	}

	wipe(kp.private.bytes[:])

	if !secret.IsZero(kp.private.bytes[:]) {
		logger.WithFields(PublicKeyFields(kp.public)).Error("Private key buffer not zero after wipe")
		return ZeroingFailed
	}

	logger.WithFields(PublicKeyFields(kp.public)).Debug("Private key zeroed")
	return ZeroingCompleted
}
