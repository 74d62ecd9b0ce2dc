// Package lyrewallet is the keypair core of LyreWallet.
//
// The module is split into three packages:
//
//   - secret: a redacting container for 32-byte secrets
//   - keypair: ed25519 keypair generation, scrubbing and safe formatting
//   - keystore: the 65-byte tagged record format and its file I/O
//
// A typical round trip:
//
//	kp, err := keypair.Generate()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer kp.Destroy()
//
//	if _, err := keystore.SavePlaintext(kp, "k1.bin"); err != nil {
//	    log.Fatal(err)
//	}
//
//	loaded, err := keystore.Load("k1.bin")
//
// The cmd/lyrewallet binary is a thin debugging driver over these packages.
package lyrewallet
