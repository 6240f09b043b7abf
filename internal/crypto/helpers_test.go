package crypto

import (
	"crypto/rand"

	"golang.org/x/crypto/nacl/box"
)

func sealAnonymousRaw(plain []byte, recipient *[32]byte) ([]byte, error) {
	return box.SealAnonymous(nil, plain, recipient, rand.Reader)
}
