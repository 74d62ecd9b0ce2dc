// Package commands defines the lyrewallet CLI.
//
// Commands
//
//   - generate   Create a keypair and save it as a plaintext record
//   - show       Load a record and print the redacted keypair
//   - inspect    Print a record's cipher tag and public key only
//   - demo       Walk through the keypair lifecycle on stdout
//
// Plaintext records hold the private key unencrypted; the CLI is a
// debugging driver, not a wallet.
package commands
