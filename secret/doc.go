// Package secret provides a scoped container for 32-byte secret values.
//
// A [Key] never prints its contents. Every formatting path (fmt verbs,
// String, GoString, text and JSON marshalling) emits the fixed marker
// [Redacted], so a Key can be passed to a logger or a %v format without
// leaking. The only way to read the bytes is [Key.Expose], which returns a
// copy: once a caller exposes a key it owns that copy and is responsible
// for wiping it.
//
//	key := kp.ExposePrivateKey()
//	defer key.Destroy()
//
//	raw := key.Expose()
//	// ... use raw ...
//	secret.Wipe(raw[:])
package secret
