package crypto

import "github.com/MKhiriev/go-secmsg-directory/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/envelope_cipher_mock.go -package=mock

// EnvelopeCipher is the server side of the encrypted envelope protocol.
// It owns the server key pair, which is immutable after construction, so
// one instance may be shared by all connection handlers.
type EnvelopeCipher interface {
	// Open decrypts an inbound frame payload with the server private key and
	// decodes the plaintext. It fails with ErrDecrypt when the ciphertext
	// does not authenticate and with models.ErrDecode when the plaintext is
	// not a protocol message.
	Open(data []byte) (models.MessageType, error)

	// Seal encodes msg and encrypts it for route[0], the final recipient of
	// the response.
	Seal(msg models.MessageType, route models.Route) (models.Envelope, error)

	// PublicKey returns the server long-lived public key.
	PublicKey() models.Key
}
