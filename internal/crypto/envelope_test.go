package crypto

import (
	"bytes"
	"testing"

	"github.com/MKhiriev/go-secmsg-directory/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustKeyPair(t *testing.T) KeyPair {
	t.Helper()
	kp, err := GenerateKeyPair()
	require.NoError(t, err)
	return kp
}

func TestOpen_DecryptsClientSealedRequest(t *testing.T) {
	server := mustKeyPair(t)
	client := mustKeyPair(t)
	cipher := NewEnvelopeCipher(server)

	req := models.NewLoginRequest("alice", "pw1", client.Public)
	data, err := SealForServer(req, server.Public)
	require.NoError(t, err)

	got, err := cipher.Open(data)
	require.NoError(t, err)
	assert.Equal(t, req, got)
}

func TestOpen_WrongServerKey(t *testing.T) {
	server := mustKeyPair(t)
	other := mustKeyPair(t)

	data, err := SealForServer(models.NewPublicKeyRequest(models.Key{}), other.Public)
	require.NoError(t, err)

	_, err = NewEnvelopeCipher(server).Open(data)
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestOpen_GarbageAndTampering(t *testing.T) {
	server := mustKeyPair(t)
	cipher := NewEnvelopeCipher(server)

	_, err := cipher.Open([]byte("not a box"))
	assert.ErrorIs(t, err, ErrDecrypt)

	_, err = cipher.Open(nil)
	assert.ErrorIs(t, err, ErrDecrypt)

	data, err := SealForServer(models.NewConnectRequest("bob", models.Key{}), server.Public)
	require.NoError(t, err)
	data[len(data)-1] ^= 0xFF

	_, err = cipher.Open(data)
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestOpen_AuthenticPlaintextThatIsNotAMessage(t *testing.T) {
	server := mustKeyPair(t)
	pub := [32]byte(server.Public)

	data, err := sealAnonymousRaw([]byte(`{"direction":"nowhere"}`), &pub)
	require.NoError(t, err)

	_, err = NewEnvelopeCipher(server).Open(data)
	assert.ErrorIs(t, err, models.ErrDecode)
	assert.NotErrorIs(t, err, ErrDecrypt)
}

func TestSeal_ReadableOnlyByRouteDestination(t *testing.T) {
	server := mustKeyPair(t)
	dest := mustKeyPair(t)
	relay := mustKeyPair(t)
	cipher := NewEnvelopeCipher(server)

	route := models.Route{
		{Address: "10.0.0.1:5000", PublicKey: dest.Public},
		{Address: "10.0.0.2:5000", PublicKey: relay.Public},
	}
	msg := models.NewServerResponse(models.ErrorOutcome("User does not exist."))

	env, err := cipher.Seal(msg, route)
	require.NoError(t, err)
	assert.Equal(t, route, env.Route)

	got, err := OpenFromServer(env.Data, server.Public, dest)
	require.NoError(t, err)
	assert.Equal(t, msg, got)

	_, err = OpenFromServer(env.Data, server.Public, relay)
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestSeal_FreshNonceEveryTime(t *testing.T) {
	server := mustKeyPair(t)
	dest := mustKeyPair(t)
	cipher := NewEnvelopeCipher(server)
	route := models.Route{{Address: "a", PublicKey: dest.Public}}
	msg := models.NewServerResponse(models.PublicKeyOutcome(server.Public))

	e1, err := cipher.Seal(msg, route)
	require.NoError(t, err)
	e2, err := cipher.Seal(msg, route)
	require.NoError(t, err)

	assert.False(t, bytes.Equal(e1.Data[:NonceSize], e2.Data[:NonceSize]))
}

func TestSeal_EmptyRoute(t *testing.T) {
	cipher := NewEnvelopeCipher(mustKeyPair(t))
	_, err := cipher.Seal(models.NewServerResponse(models.ErrorOutcome("x")), nil)
	assert.ErrorIs(t, err, ErrEmptyRoute)
}

func TestOpenFromServer_ShortInput(t *testing.T) {
	_, err := OpenFromServer([]byte{1, 2, 3}, models.Key{}, mustKeyPair(t))
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestCipher_PublicKey(t *testing.T) {
	server := mustKeyPair(t)
	assert.Equal(t, server.Public, NewEnvelopeCipher(server).PublicKey())
}
