package cryptography

import (
	"crypto/ed25519"
	"encoding/json"

	"github.com/pkg/errors"
	"gopkg.in/square/go-jose.v2"
)

// JWKPublicKeyBytes decodes a publicKeyJwk object into raw key bytes
func JWKPublicKeyBytes(jwk map[string]interface{}) ([]byte, error) {
	k, err := decodeJWK(jwk)
	if err != nil {
		return nil, err
	}

	switch t := k.Key.(type) {
	case ed25519.PublicKey:
		return []byte(t), nil
	case ed25519.PrivateKey:
		return []byte(t.Public().(ed25519.PublicKey)), nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedPublicKeyType, "jwk %T", t)
	}
}

// JWKPrivateKeyBytes decodes a privateKeyJwk object into an ed25519 seed
func JWKPrivateKeyBytes(jwk map[string]interface{}) ([]byte, error) {
	k, err := decodeJWK(jwk)
	if err != nil {
		return nil, err
	}

	sk, ok := k.Key.(ed25519.PrivateKey)
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedPublicKeyType, "jwk private %T", k.Key)
	}

	return sk.Seed(), nil
}

func Ed25519PublicJWK(pub []byte) (map[string]interface{}, error) {
	if len(pub) != ed25519.PublicKeySize {
		return nil, ErrInvalidPublicKeyLength
	}

	return encodeJWK(jose.JSONWebKey{Key: ed25519.PublicKey(pub)})
}

func Ed25519PrivateJWK(seed []byte) (map[string]interface{}, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, errors.New("invalid ed25519 seed length")
	}

	return encodeJWK(jose.JSONWebKey{Key: ed25519.NewKeyFromSeed(seed)})
}

func decodeJWK(jwk map[string]interface{}) (*jose.JSONWebKey, error) {
	if len(jwk) == 0 {
		return nil, ErrInvalidPublicKey
	}

	b, err := json.Marshal(jwk)
	if err != nil {
		return nil, errors.Wrap(err, "marshalling jwk")
	}

	k := &jose.JSONWebKey{}
	if err := k.UnmarshalJSON(b); err != nil {
		return nil, errors.Wrap(ErrInvalidPublicKey, err.Error())
	}

	return k, nil
}

func encodeJWK(k jose.JSONWebKey) (map[string]interface{}, error) {
	b, err := k.MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "marshalling jwk")
	}

	m := map[string]interface{}{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, errors.Wrap(err, "unmarshalling jwk")
	}

	return m, nil
}
