package keystore

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyrechain/LyreWallet/keypair"
)

func generate(t *testing.T) *keypair.KeyPair {
	t.Helper()
	kp, err := keypair.Generate()
	require.NoError(t, err)
	t.Cleanup(kp.Destroy)
	return kp
}

func writeRecord(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "record.bin")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestSavePlaintextLayout(t *testing.T) {
	kp := generate(t)
	path := filepath.Join(t.TempDir(), "k1.bin")

	outcome, err := SavePlaintext(kp, path)
	require.NoError(t, err)
	assert.Equal(t, SavedToDangerousStorage, outcome)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, data, RecordSize)
	assert.Equal(t, byte(0x00), data[0])

	private := kp.ExposePrivateKey().Expose()
	public := kp.PublicKey()
	assert.Equal(t, private[:], data[1:33])
	assert.Equal(t, public[:], data[33:65])

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	kp := generate(t)
	path := filepath.Join(t.TempDir(), "k1.bin")

	_, err := SavePlaintext(kp, path)
	require.NoError(t, err)

	loaded, err := Load(path)
	require.NoError(t, err)
	defer loaded.Destroy()

	assert.Equal(t, kp.PublicKey(), loaded.PublicKey())
	assert.Equal(t, kp.ExposePrivateKey().Expose(), loaded.ExposePrivateKey().Expose())
	assert.True(t, loaded.Consistent())
}

func TestLoadIntoReusesInstance(t *testing.T) {
	kp := generate(t)
	path := filepath.Join(t.TempDir(), "k1.bin")
	_, err := SavePlaintext(kp, path)
	require.NoError(t, err)

	target := generate(t)
	outcome, err := LoadInto(path, target)
	require.NoError(t, err)
	assert.Equal(t, LoadedKeyPair, outcome)
	assert.Equal(t, kp.PublicKey(), target.PublicKey())
	assert.Equal(t, kp.ExposePrivateKey().Expose(), target.ExposePrivateKey().Expose())
}

func TestSavePlaintextRefusesOverwrite(t *testing.T) {
	first := generate(t)
	second := generate(t)
	path := filepath.Join(t.TempDir(), "k1.bin")

	_, err := SavePlaintext(first, path)
	require.NoError(t, err)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = SavePlaintext(second, path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.Equal(t, KindAlreadyExists, KindOf(err))
	assert.ErrorIs(t, err, os.ErrExist, "underlying cause stays reachable")

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "existing file must not be touched")
}

func TestSavePlaintextNilKeyPair(t *testing.T) {
	_, err := SavePlaintext(nil, filepath.Join(t.TempDir(), "k.bin"))
	assert.Equal(t, KindInvalidInput, KindOf(err))
}

func TestSavePlaintextMissingDirectory(t *testing.T) {
	kp := generate(t)
	path := filepath.Join(t.TempDir(), "missing", "k.bin")

	_, err := SavePlaintext(kp, path)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.bin"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	var kerr *Error
	require.True(t, errors.As(err, &kerr))
	assert.Equal(t, "open", kerr.Op)
}

func TestLoadPermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores file permissions")
	}
	path := writeRecord(t, make([]byte, RecordSize))
	require.NoError(t, os.Chmod(path, 0o000))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestLoadShortRecord(t *testing.T) {
	kp := generate(t)
	private := kp.ExposePrivateKey().Expose()
	full := EncodeRecord(PlainBytes, private, kp.PublicKey())

	for _, size := range []int{0, 1, 20, 33, 40, RecordSize - 1} {
		path := writeRecord(t, full[:size])

		target := &keypair.KeyPair{}
		_, err := LoadInto(path, target)
		require.Error(t, err, "size %d", size)
		assert.ErrorIs(t, err, ErrFixedLengthConversion, "size %d", size)
		assert.False(t, target.IsPopulated(), "size %d", size)
	}
}

func TestLoadIgnoresTrailingBytes(t *testing.T) {
	kp := generate(t)
	record := EncodeRecord(PlainBytes, kp.ExposePrivateKey().Expose(), kp.PublicKey())
	path := writeRecord(t, append(record[:], 0xDE, 0xAD))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, kp.PublicKey(), loaded.PublicKey())
}

func TestLoadUnsupportedCiphers(t *testing.T) {
	kp := generate(t)
	record := EncodeRecord(PlainBytes, kp.ExposePrivateKey().Expose(), kp.PublicKey())

	for _, tag := range []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x7F, 0xFF} {
		data := record
		data[0] = tag
		path := writeRecord(t, data[:])

		target := &keypair.KeyPair{}
		outcome, err := LoadInto(path, target)
		require.Error(t, err, "tag 0x%02x", tag)
		assert.ErrorIs(t, err, ErrUnsupportedCipher, "tag 0x%02x", tag)
		assert.Zero(t, outcome)
		assert.False(t, target.IsPopulated(), "tag 0x%02x", tag)
		assert.Equal(t, [keypair.KeySize]byte{}, target.PublicKey(), "tag 0x%02x", tag)
	}
}

func TestLoadUnsupportedCipherLeavesTargetUntouched(t *testing.T) {
	kp := generate(t)
	record := EncodeRecord(XChaCha20Blake3AEAD, [keypair.KeySize]byte{1}, [keypair.KeySize]byte{2})
	path := writeRecord(t, record[:])

	before := kp.PublicKey()
	_, err := LoadInto(path, kp)
	require.Error(t, err)
	assert.Equal(t, before, kp.PublicKey())
	assert.True(t, kp.IsPopulated())
}

func TestLoadInconsistentRecord(t *testing.T) {
	kp := generate(t)
	public := kp.PublicKey()
	public[5] ^= 0x01
	record := EncodeRecord(PlainBytes, kp.ExposePrivateKey().Expose(), public)
	path := writeRecord(t, record[:])

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestLoadScrubbedRecord(t *testing.T) {
	kp := generate(t)
	kp.ZeroPrivateKey()
	path := filepath.Join(t.TempDir(), "scrubbed.bin")
	_, err := SavePlaintext(kp, path)
	require.NoError(t, err)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, kp.PublicKey(), loaded.PublicKey())
	assert.False(t, loaded.IsPopulated())
}

func TestInspect(t *testing.T) {
	kp := generate(t)
	record := EncodeRecord(Base58, [keypair.KeySize]byte{9}, kp.PublicKey())
	path := writeRecord(t, record[:])

	rec, err := NewKeyStore(nil).Inspect(path)
	require.NoError(t, err)
	assert.Equal(t, Base58, rec.Cipher)
	assert.Equal(t, byte(0x01), rec.Tag)
	assert.Equal(t, kp.PublicKey(), rec.PublicKey)
	assert.Equal(t, [keypair.KeySize]byte{}, rec.PrivateField, "private field is wiped")
}

func TestInspectKeepsUnknownTag(t *testing.T) {
	record := EncodeRecord(Cipher(0x07), [keypair.KeySize]byte{1}, [keypair.KeySize]byte{2})
	path := writeRecord(t, record[:])

	rec, err := NewKeyStore(nil).Inspect(path)
	require.NoError(t, err)
	assert.Equal(t, UnsupportedCipher, rec.Cipher)
	assert.Equal(t, byte(0x07), rec.Tag)
}

func TestLoadUnsupportedCipherMessage(t *testing.T) {
	aead := EncodeRecord(XChaCha12Blake3AEAD, [keypair.KeySize]byte{1}, [keypair.KeySize]byte{2})
	_, err := Load(writeRecord(t, aead[:]))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "XChaCha12Blake3Aead (0x03, 12 rounds, 24-byte nonce)")

	unknown := EncodeRecord(Cipher(0x07), [keypair.KeySize]byte{1}, [keypair.KeySize]byte{2})
	_, err = Load(writeRecord(t, unknown[:]))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UnsupportedCipher (0x07)")
}

// faultyFile wraps a real key file and fails the configured step.
type faultyFile struct {
	*os.File
	writeErr error
	syncErr  error
}

func (f *faultyFile) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	return f.File.Write(p)
}

func (f *faultyFile) Sync() error {
	if f.syncErr != nil {
		return f.syncErr
	}
	return f.File.Sync()
}

func withFaultyFiles(t *testing.T, writeErr, syncErr error) {
	t.Helper()
	prev := createFile
	createFile = func(path string, mode os.FileMode) (keyFile, error) {
		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
		if err != nil {
			return nil, err
		}
		return &faultyFile{File: file, writeErr: writeErr, syncErr: syncErr}, nil
	}
	t.Cleanup(func() { createFile = prev })
}

func TestSavePlaintextRemovesFileOnFailure(t *testing.T) {
	tests := []struct {
		name     string
		writeErr error
		syncErr  error
		wantKind ErrorKind
		wantOp   string
	}{
		{"flush fails", io.ErrShortWrite, nil, KindWriteZero, "flush"},
		{"write interrupted", syscall.EINTR, nil, KindInterrupted, "flush"},
		{"sync fails", nil, syscall.ENOSPC, KindOther, "sync"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withFaultyFiles(t, tt.writeErr, tt.syncErr)
			kp := generate(t)
			path := filepath.Join(t.TempDir(), "k1.bin")

			outcome, err := SavePlaintext(kp, path)
			require.Error(t, err)
			assert.Zero(t, outcome)

			var kerr *Error
			require.True(t, errors.As(err, &kerr))
			assert.Equal(t, tt.wantKind, kerr.Kind)
			assert.Equal(t, tt.wantOp, kerr.Op)
			assert.Equal(t, path, kerr.Path)

			assert.NoFileExists(t, path, "no partial record may remain")
		})
	}
}

func TestKeyStoreOptions(t *testing.T) {
	opts := NewOptions()
	assert.Equal(t, os.FileMode(0o600), opts.FileMode)
	assert.True(t, opts.SyncOnSave)

	ks := NewKeyStore(&Options{FileMode: 0o640})
	kp := generate(t)
	path := filepath.Join(t.TempDir(), "k.bin")
	_, err := ks.SavePlaintext(kp, path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640)&^currentUmask(t), info.Mode().Perm())
}

func currentUmask(t *testing.T) os.FileMode {
	t.Helper()
	scratch := filepath.Join(t.TempDir(), "scratch")
	require.NoError(t, os.WriteFile(scratch, nil, 0o777))
	info, err := os.Stat(scratch)
	require.NoError(t, err)
	return 0o777 &^ info.Mode().Perm()
}

func TestOutcomeStrings(t *testing.T) {
	assert.Equal(t, "KeySavedToDangerousStorage", SavedToDangerousStorage.String())
	assert.Equal(t, "LoadedKeyPair", LoadedKeyPair.String())
	assert.Equal(t, "SaveOutcome(unknown)", SaveOutcome(0).String())
	assert.Equal(t, "LoadOutcome(unknown)", LoadOutcome(0).String())
}
