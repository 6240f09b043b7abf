package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-secmsg-directory/internal/logger"
	"github.com/MKhiriev/go-secmsg-directory/internal/store"
	"github.com/MKhiriev/go-secmsg-directory/internal/utils"
	"github.com/MKhiriev/go-secmsg-directory/internal/validators"
	"github.com/MKhiriev/go-secmsg-directory/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	keyA = models.Key{0xA}
	keyB = models.Key{0xB}
	keyC = models.Key{0xC}
)

func newTestDirectoryService(t *testing.T, hashKey string) (DirectoryService, store.Directory) {
	t.Helper()
	dir := store.NewDirectory(logger.Nop())
	svc := NewDirectoryService(dir, DirectoryOptions{
		ServerKey:         models.Key{0x5E},
		CredentialHashKey: hashKey,
		RelayHops:         DefaultRelayHops,
	}, logger.Nop())
	return svc, dir
}

func TestDirectoryService_RegisterEchoesObservedAddress(t *testing.T) {
	svc, _ := newTestDirectoryService(t, "")

	view, err := svc.Register(context.Background(), models.User{
		Handle: "alice", Credential: "pw1", Address: "10.0.0.1:5000", PublicKey: keyA,
	})
	require.NoError(t, err)
	assert.Equal(t, models.UserView{Handle: "alice", Address: "10.0.0.1:5000", PublicKey: keyA}, view)
}

func TestDirectoryService_EmptyHandleIsAnOrdinaryHandle(t *testing.T) {
	svc, dir := newTestDirectoryService(t, "")
	ctx := context.Background()

	_, err := svc.Login(ctx, models.User{Credential: "pw", Address: "10.0.0.1:5000"})
	assert.ErrorIs(t, err, store.ErrNoUserWasFound)

	view, err := svc.Register(ctx, models.User{Credential: "pw", Address: "10.0.0.1:5000", PublicKey: keyA})
	require.NoError(t, err)
	assert.Equal(t, "", view.Handle)
	assert.Equal(t, 1, dir.Len(ctx))

	_, err = svc.Register(ctx, models.User{Credential: "other", Address: "10.0.0.2:5000", PublicKey: keyB})
	assert.ErrorIs(t, err, store.ErrHandleInUse)
	assert.Equal(t, 1, dir.Len(ctx))

	view, err = svc.Login(ctx, models.User{Credential: "pw", Address: "10.0.0.3:5000"})
	require.NoError(t, err)
	assert.Equal(t, keyA, view.PublicKey)
}

func TestDirectoryService_RegisterRejectsMissingAddress(t *testing.T) {
	svc, dir := newTestDirectoryService(t, "")

	_, err := svc.Register(context.Background(), models.User{Handle: "alice", Credential: "pw"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorIs(t, err, validators.ErrEmptyAddress)
	assert.Zero(t, dir.Len(context.Background()))
}

func TestDirectoryService_DuplicateRegistration(t *testing.T) {
	svc, _ := newTestDirectoryService(t, "")
	ctx := context.Background()

	_, err := svc.Register(ctx, models.User{Handle: "alice", Credential: "pw1", Address: "10.0.0.1:5000", PublicKey: keyA})
	require.NoError(t, err)

	_, err = svc.Register(ctx, models.User{Handle: "alice", Credential: "pw2", Address: "10.0.0.2:5000", PublicKey: keyB})
	assert.ErrorIs(t, err, store.ErrHandleInUse)

	view, err := svc.Login(ctx, models.User{Handle: "alice", Credential: "pw1", Address: "10.0.0.1:5000"})
	require.NoError(t, err)
	assert.Equal(t, keyA, view.PublicKey)
}

func TestDirectoryService_LoginSubstitutesRequesterAddress(t *testing.T) {
	svc, _ := newTestDirectoryService(t, "")
	ctx := context.Background()

	_, err := svc.Register(ctx, models.User{Handle: "alice", Credential: "pw1", Address: "10.0.0.1:5000", PublicKey: keyA})
	require.NoError(t, err)

	view, err := svc.Login(ctx, models.User{Handle: "alice", Credential: "pw1", Address: "172.16.0.9:5000", PublicKey: keyB})
	require.NoError(t, err)
	assert.Equal(t, "172.16.0.9:5000", view.Address)
	assert.Equal(t, keyA, view.PublicKey, "login must return the server-known key")
}

func TestDirectoryService_LoginErrors(t *testing.T) {
	svc, _ := newTestDirectoryService(t, "")
	ctx := context.Background()

	_, err := svc.Register(ctx, models.User{Handle: "alice", Credential: "pw1", Address: "10.0.0.1:5000"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, models.User{Handle: "alice", Credential: "nope"})
	assert.ErrorIs(t, err, store.ErrWrongCredential)

	_, err = svc.Login(ctx, models.User{Handle: "bob", Credential: "pw1"})
	assert.ErrorIs(t, err, store.ErrNoUserWasFound)

	_, err = svc.Login(ctx, models.User{})
	assert.ErrorIs(t, err, store.ErrNoUserWasFound)
}

func TestDirectoryService_HashesCredentialsWhenKeyed(t *testing.T) {
	svc, dir := newTestDirectoryService(t, "pepper")
	ctx := context.Background()

	_, err := svc.Register(ctx, models.User{Handle: "alice", Credential: "pw1", Address: "10.0.0.1:5000"})
	require.NoError(t, err)

	// the directory holds the digest, not the raw credential
	_, err = dir.Login(ctx, "alice", "pw1")
	assert.ErrorIs(t, err, store.ErrWrongCredential)
	_, err = dir.Login(ctx, "alice", utils.HashString("pw1", "pepper"))
	assert.NoError(t, err)

	_, err = svc.Login(ctx, models.User{Handle: "alice", Credential: "pw1"})
	assert.NoError(t, err)
	_, err = svc.Login(ctx, models.User{Handle: "alice", Credential: "pw2"})
	assert.ErrorIs(t, err, store.ErrWrongCredential)
}

func TestDirectoryService_Connect(t *testing.T) {
	svc, _ := newTestDirectoryService(t, "")
	ctx := context.Background()

	for _, u := range []models.User{
		{Handle: "alice", Credential: "pw", Address: "10.0.0.1:5000", PublicKey: keyA},
		{Handle: "bob", Credential: "pw", Address: "10.0.0.2:5000", PublicKey: keyB},
		{Handle: "carol", Credential: "pw", Address: "10.0.0.3:5000", PublicKey: keyC},
	} {
		_, err := svc.Register(ctx, u)
		require.NoError(t, err)
	}

	route, err := svc.Connect(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, models.Route{
		{Address: "10.0.0.2:5000", PublicKey: keyB},
		{Address: "10.0.0.1:5000", PublicKey: keyA},
		{Address: "10.0.0.3:5000", PublicKey: keyC},
	}, route)

	again, err := svc.Connect(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, route, again)

	_, err = svc.Connect(ctx, "dave")
	assert.ErrorIs(t, err, store.ErrTargetNotFound)
}

func TestDirectoryService_PublicKey(t *testing.T) {
	svc, _ := newTestDirectoryService(t, "")
	assert.Equal(t, models.Key{0x5E}, svc.PublicKey(context.Background()))
}

func TestDirectoryService_Stats(t *testing.T) {
	svc, _ := newTestDirectoryService(t, "")
	ctx := context.Background()

	assert.Equal(t, models.DirectoryStats{}, svc.Stats(ctx))

	_, err := svc.Register(ctx, models.User{Handle: "alice", Credential: "pw", Address: "10.0.0.1:5000"})
	require.NoError(t, err)
	assert.Equal(t, models.DirectoryStats{Users: 1}, svc.Stats(ctx))
}

func TestDirectoryService_ZeroRelayHopsSelectsDefault(t *testing.T) {
	dir := store.NewDirectory(logger.Nop())
	svc := NewDirectoryService(dir, DirectoryOptions{}, logger.Nop())
	ctx := context.Background()

	for i, handle := range []string{"a", "b", "c", "d", "e"} {
		_, err := svc.Register(ctx, models.User{Handle: handle, Address: "10.0.0.1:5000", PublicKey: models.Key{byte(i + 1)}})
		require.NoError(t, err)
	}

	route, err := svc.Connect(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, route, 1+DefaultRelayHops)
}
