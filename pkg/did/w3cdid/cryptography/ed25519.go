package cryptography

import (
	"crypto/ed25519"

	"github.com/pkg/errors"
	keys "github.com/tcfw/didanchor/pkg/cryptography"
)

func ValidateEd25519(pub []byte, sig []byte, msg []byte) (bool, error) {
	if len(pub) != ed25519.PublicKeySize {
		return false, errors.Wrapf(ErrInvalidPublicKeyLength, "ed25519 key of %d bytes", len(pub))
	}

	return ed25519.Verify(ed25519.PublicKey(pub), msg, sig), nil
}

func ValidateBls12381(pub []byte, sig []byte, msg []byte) (bool, error) {
	pk, err := keys.NewBls12381PublicKeyFromBytes(pub)
	if err != nil {
		return false, errors.Wrap(ErrInvalidPublicKey, err.Error())
	}

	return pk.Verify(sig, msg)
}

func ValidateEcdsaSecp256k1(pub []byte, sig []byte, msg []byte) (bool, error) {
	pk, err := keys.NewSecp256k1PublicKey(pub)
	if err != nil {
		return false, errors.Wrap(ErrInvalidPublicKey, err.Error())
	}

	return pk.Verify(sig, msg)
}
