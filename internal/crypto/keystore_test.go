package crypto

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyStore_GeneratesThenLoads(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".secmsg", "keys")
	store := NewKeyStore(dir)

	kp, generated, err := store.LoadOrGenerate()
	require.NoError(t, err)
	assert.True(t, generated)
	require.NoError(t, kp.Validate())

	info, err := os.Stat(filepath.Join(dir, "private"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	again, generated, err := store.LoadOrGenerate()
	require.NoError(t, err)
	assert.False(t, generated)
	assert.Equal(t, kp, again)
}

func TestKeyStore_RegeneratesWhenPublicMissing(t *testing.T) {
	dir := t.TempDir()
	store := NewKeyStore(dir)

	first, _, err := store.LoadOrGenerate()
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(dir, "public")))

	second, generated, err := store.LoadOrGenerate()
	require.NoError(t, err)
	assert.True(t, generated)
	assert.NotEqual(t, first.Private, second.Private)
}

func TestKeyStore_RejectsMalformedFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "private"), []byte("short"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "public"), make([]byte, 32), 0o644))

	_, _, err := NewKeyStore(dir).LoadOrGenerate()
	assert.ErrorIs(t, err, ErrInvalidKeyFile)
}

func TestKeyStore_RejectsMismatchedPair(t *testing.T) {
	dir := t.TempDir()
	a := mustKeyPair(t)
	b := mustKeyPair(t)
	require.NoError(t, NewKeyStore(dir).Save(KeyPair{Private: a.Private, Public: b.Public}))

	_, err := NewKeyStore(dir).Load()
	assert.ErrorIs(t, err, ErrInvalidKeyFile)
}

func TestPublicFromPrivate_MatchesGenerated(t *testing.T) {
	kp := mustKeyPair(t)
	pub, err := PublicFromPrivate(kp.Private)
	require.NoError(t, err)
	assert.Equal(t, kp.Public, pub)
}
