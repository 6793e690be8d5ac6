package cryptography

import (
	"crypto/ed25519"
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

const (
	derEd25519PrivatePrefix   = "302e020100300506032b657004220420"
	derSecp256k1PrivatePrefix = "3030020100300706052b8104000a04220420"
)

var (
	ErrInvalidPrivateKey = errors.New("invalid private key")
)

// ParsePrivateKey reads the hex text form of an Ed25519 signing key. The
// 32 byte seed, the 64 byte expanded key and the DER encoded seed are all
// accepted, optionally 0x prefixed.
func ParsePrivateKey(s string) (ed25519.PrivateKey, error) {
	h := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	h = strings.TrimPrefix(h, derEd25519PrivatePrefix)

	raw, err := hex.DecodeString(h)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidPrivateKey, "decoding hex: %s", err)
	}

	return Ed25519PrivateKeyFromBytes(raw)
}

// Ed25519PrivateKeyFromBytes accepts a raw 32 byte seed or 64 byte expanded key
func Ed25519PrivateKeyFromBytes(raw []byte) (ed25519.PrivateKey, error) {
	switch len(raw) {
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(raw), nil
	case ed25519.PrivateKeySize:
		sk := ed25519.PrivateKey(append([]byte(nil), raw...))
		if !sk.Public().(ed25519.PublicKey).Equal(ed25519.NewKeyFromSeed(sk.Seed()).Public()) {
			return nil, errors.Wrap(ErrInvalidPrivateKey, "public half does not match seed")
		}
		return sk, nil
	default:
		return nil, errors.Wrapf(ErrInvalidPrivateKey, "unexpected ed25519 key length %d", len(raw))
	}
}

// FormatPrivateKey is the DER hex text form read by ParsePrivateKey
func FormatPrivateKey(sk ed25519.PrivateKey) string {
	return derEd25519PrivatePrefix + hex.EncodeToString(sk.Seed())
}
