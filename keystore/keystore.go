package keystore

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/lyrechain/LyreWallet/keypair"
	"github.com/lyrechain/LyreWallet/secret"
)

// SaveOutcome reports how a keypair was persisted.
type SaveOutcome uint8

const (
	// SavedToDangerousStorage means the private key was written
	// unencrypted.
	SavedToDangerousStorage SaveOutcome = iota + 1
)

func (o SaveOutcome) String() string {
	if o == SavedToDangerousStorage {
		return "KeySavedToDangerousStorage"
	}
	return "SaveOutcome(unknown)"
}

// LoadOutcome reports the result of a successful load.
type LoadOutcome uint8

const (
	// LoadedKeyPair means the target keypair now holds the stored keys.
	LoadedKeyPair LoadOutcome = iota + 1
)

func (o LoadOutcome) String() string {
	if o == LoadedKeyPair {
		return "LoadedKeyPair"
	}
	return "LoadOutcome(unknown)"
}

// Options configures a KeyStore.
type Options struct {
	// FileMode is the permission set for newly created key files.
	FileMode os.FileMode
	// SyncOnSave fsyncs the file after the buffered write is flushed.
	SyncOnSave bool
}

// NewOptions returns the default options: owner-only files, synced on save.
func NewOptions() *Options {
	return &Options{
		FileMode:   0o600,
		SyncOnSave: true,
	}
}

// KeyStore reads and writes single-keypair record files.
//
// Each call owns its file handle from open to close. Saving never
// overwrites: a path can be written once, so one writer per path is
// enforced by the filesystem.
type KeyStore struct {
	options *Options
}

// NewKeyStore creates a KeyStore. A nil opts selects NewOptions().
func NewKeyStore(opts *Options) *KeyStore {
	if opts == nil {
		opts = NewOptions()
	}
	return &KeyStore{options: opts}
}

var defaultStore = NewKeyStore(nil)

// SavePlaintext saves kp with the default KeyStore.
func SavePlaintext(kp *keypair.KeyPair, path string) (SaveOutcome, error) {
	return defaultStore.SavePlaintext(kp, path)
}

// Load reads a keypair with the default KeyStore.
func Load(path string) (*keypair.KeyPair, error) {
	return defaultStore.Load(path)
}

// LoadInto reads a keypair into kp with the default KeyStore.
func LoadInto(path string, kp *keypair.KeyPair) (LoadOutcome, error) {
	return defaultStore.LoadInto(path, kp)
}

// SavePlaintext writes kp to a new file at path as a PlainBytes record.
//
// DANGEROUS: the private key is stored unencrypted. This is a debugging
// and low-assurance path, not production secret storage.
//
// The file is created exclusively; an existing path fails with
// KindAlreadyExists and is left untouched. The record is written with a
// single buffered write followed by an explicit flush.
func (ks *KeyStore) SavePlaintext(kp *keypair.KeyPair, path string) (SaveOutcome, error) {
	fields := logrus.Fields{
		"function": "SavePlaintext",
		"package":  "keystore",
		"path":     path,
	}
	if kp == nil {
		return 0, newError("save", path, KindInvalidInput, "nil keypair", nil)
	}
	for k, v := range keypair.PublicKeyFields(kp.PublicKey()) {
		fields[k] = v
	}
	logrus.WithFields(fields).Warn("Saving private key unencrypted")

	key := kp.ExposePrivateKey()
	defer key.Destroy()
	private := key.Expose()
	defer secret.Wipe(private[:])

	record := EncodeRecord(PlainBytes, private, kp.PublicKey())
	defer secret.Wipe(record[:])

	if err := ks.writeNew(path, record[:]); err != nil {
		logrus.WithFields(fields).WithField("error", err.Error()).Error("Failed to save keypair")
		return 0, err
	}

	logrus.WithFields(fields).Info("Keypair saved")
	return SavedToDangerousStorage, nil
}

// keyFile is the part of *os.File that writeNew needs.
type keyFile interface {
	io.Writer
	Sync() error
	Close() error
}

// createFile opens path for writing, failing if it exists. Tests replace it
// to inject write and sync failures.
var createFile = func(path string, mode os.FileMode) (keyFile, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
}

// writeNew creates path exclusively and writes data in one buffered write.
// If anything fails after creation the new file is removed.
func (ks *KeyStore) writeNew(path string, data []byte) (err error) {
	file, err := createFile(path, ks.options.FileMode)
	if err != nil {
		return mapOSError("create", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = mapOSError("close", path, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	w := bufio.NewWriterSize(file, len(data))
	n, err := w.Write(data)
	if err != nil {
		return mapOSError("write", path, err)
	}
	if n != len(data) {
		return newError("write", path, KindWriteZero,
			fmt.Sprintf("wrote %d of %d bytes", n, len(data)), nil)
	}
	if err := w.Flush(); err != nil {
		return mapOSError("flush", path, err)
	}
	if ks.options.SyncOnSave {
		if err := file.Sync(); err != nil {
			return mapOSError("sync", path, err)
		}
	}
	return nil
}

// Load reads the record at path into a new keypair.
func (ks *KeyStore) Load(path string) (*keypair.KeyPair, error) {
	kp := &keypair.KeyPair{}
	if _, err := ks.LoadInto(path, kp); err != nil {
		return nil, err
	}
	return kp, nil
}

// LoadInto reads the record at path into kp, replacing its contents. kp is
// only modified when the whole record decodes.
//
// Only PlainBytes records are supported. Every other tag, including the
// reserved encodings, fails with KindUnsupportedCipher. A record shorter
// than RecordSize fails with KindFixedLengthConversion.
//
// A plaintext record whose non-zero private key does not derive its public
// key fails with KindInvalidData. This is stricter than populating the
// keypair from whatever the record holds: a corrupted or tampered file is
// refused instead of yielding a keypair that breaks the derivation
// invariant.
func (ks *KeyStore) LoadInto(path string, kp *keypair.KeyPair) (LoadOutcome, error) {
	fields := logrus.Fields{
		"function": "LoadInto",
		"package":  "keystore",
		"path":     path,
	}
	if kp == nil {
		return 0, newError("load", path, KindInvalidInput, "nil keypair", nil)
	}

	rec, err := ks.readRecord(path)
	if err != nil {
		logrus.WithFields(fields).WithField("error", err.Error()).Error("Failed to read key record")
		return 0, err
	}
	defer rec.Wipe()
	fields["cipher"] = rec.Cipher.String()

	switch rec.Cipher {
	case PlainBytes:
		candidate := keypair.FromParts(rec.PrivateField, rec.PublicKey)
		consistent := candidate.Consistent()
		candidate.Destroy()
		if !consistent {
			err := newError("load", path, KindInvalidData,
				"public key does not match private key", nil)
			logrus.WithFields(fields).Error("Stored keypair is inconsistent")
			return 0, err
		}
		kp.Set(rec.PrivateField, rec.PublicKey)
	case Base58, XChaCha20Blake3AEAD, XChaCha12Blake3AEAD, XChaCha8Blake3AEAD, UnsupportedCipher:
		return 0, unsupportedCipher(path, rec.Cipher, rec.Tag, fields)
	default:
		// Unreachable: ParseCipher maps every byte onto the cases above.
		return 0, unsupportedCipher(path, rec.Cipher, rec.Tag, fields)
	}

	for k, v := range keypair.PublicKeyFields(kp.PublicKey()) {
		fields[k] = v
	}
	logrus.WithFields(fields).Info("Keypair loaded")
	return LoadedKeyPair, nil
}

// unsupportedCipher reports a record whose tag this store cannot decode.
func unsupportedCipher(path string, cipher Cipher, tag byte, fields logrus.Fields) error {
	logrus.WithFields(fields).WithField("tag", tag).Error("Unsupported cipher tag")
	return newError("load", path, KindUnsupportedCipher,
		fmt.Sprintf("tag %s cannot be decoded", cipher.Describe(tag)), nil)
}

// Inspect reads the record at path and returns it with the private field
// wiped. Tag keeps the raw byte for tags that map to UnsupportedCipher.
func (ks *KeyStore) Inspect(path string) (Record, error) {
	rec, err := ks.readRecord(path)
	if err != nil {
		return Record{}, err
	}
	rec.Wipe()
	return rec, nil
}

// readRecord opens path read-only and reads up to RecordSize bytes.
func (ks *KeyStore) readRecord(path string) (Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return Record{}, mapOSError("open", path, err)
	}
	defer file.Close()

	var buf [RecordSize]byte
	defer secret.Wipe(buf[:])

	n, err := io.ReadFull(file, buf[:])
	switch {
	case err == io.EOF || err == io.ErrUnexpectedEOF:
		return Record{}, newError("load", path, KindFixedLengthConversion,
			fmt.Sprintf("record is %d bytes, want %d", n, RecordSize), nil)
	case err != nil:
		return Record{}, mapOSError("read", path, err)
	}

	rec, err := DecodeRecord(buf[:n])
	if err != nil {
		if e, ok := err.(*Error); ok {
			e.Path = path
		}
		return Record{}, err
	}
	return rec, nil
}
