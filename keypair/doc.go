// Package keypair implements the LyreWallet signing keypair.
//
// A [KeyPair] owns a 32-byte ed25519 private seed and the 32-byte public
// point derived from it. The public half can be copied and logged freely.
// The private half stays inside the KeyPair and leaves it only through
// [KeyPair.ExposePrivateKey], which returns a redacting [secret.Key].
//
// # Lifecycle
//
// The zero value is an all-zero placeholder that is not yet a usable key:
//
//	kp, err := keypair.Generate()
//	if err != nil {
//	    return err
//	}
//	defer kp.Destroy()
//
// [KeyPair.ZeroPrivateKey] scrubs the private half in place and verifies
// the result; the public half is left intact. [KeyPair.Destroy] does the
// same and releases the memory lock. A finalizer wipes the private buffer
// if a KeyPair is dropped without Destroy.
//
// # Formatting
//
// Every fmt verb, String, GoString and JSON marshalling print the marker
// REDACTED in place of the private key. [KeyPair.DangerousDebugPrint] is
// the only path that prints it, and must never be called in production.
package keypair
