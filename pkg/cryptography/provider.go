package cryptography

import (
	"context"
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"strings"

	ethCrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

type KeyType uint8

const (
	KeyTypeUnknown KeyType = iota
	KeyTypeEd25519
	KeyTypeSecp256k1
)

func (k KeyType) String() string {
	switch k {
	case KeyTypeEd25519:
		return "ed25519"
	case KeyTypeSecp256k1:
		return "secp256k1"
	default:
		return "unknown"
	}
}

var (
	ErrUnsupportedKey = errors.New("unsupported signing key")

	_ KeyProvider              = DefaultKeyProvider{}
	_ Bls12381KeyPairGenerator = DefaultBls12381Generator{}
)

// KeyProvider derives public material from a signing key. Keys may be given
// as key values, their hex text form or raw Ed25519 seed bytes.
type KeyProvider interface {
	KeyType(sk crypto.PrivateKey) (KeyType, error)

	// DerivePublicKey returns the raw public key bytes
	DerivePublicKey(ctx context.Context, sk crypto.PrivateKey) ([]byte, error)

	// Bytes returns the deterministic byte form of the private key
	Bytes(ctx context.Context, sk crypto.PrivateKey) ([]byte, error)
}

type Bls12381KeyPairOptions struct {
	ID         string
	Controller string
	Seed       []byte
}

type Bls12381KeyPair struct {
	ID         string
	Controller string
	Type       string
	PublicKey  []byte
	PrivateKey []byte
}

type Bls12381KeyPairGenerator interface {
	Generate(ctx context.Context, opts Bls12381KeyPairOptions) (*Bls12381KeyPair, error)
}

// DefaultKeyProvider handles Ed25519 and secp256k1 keys
type DefaultKeyProvider struct{}

func (DefaultKeyProvider) normalise(sk crypto.PrivateKey) (crypto.PrivateKey, error) {
	switch t := sk.(type) {
	case string:
		return parseKeyText(t)
	case []byte:
		return Ed25519PrivateKeyFromBytes(t)
	case *ed25519.PrivateKey:
		if t == nil {
			return nil, ErrUnsupportedKey
		}
		return *t, nil
	case ed25519.PrivateKey:
		if len(t) != ed25519.PrivateKeySize {
			return nil, errors.Wrapf(ErrInvalidPrivateKey, "ed25519 key length %d", len(t))
		}
		return t, nil
	case *Secp256k1PrivateKey:
		if t == nil || t.PrivateKey == nil {
			return nil, ErrUnsupportedKey
		}
		return t, nil
	case *ecdsa.PrivateKey:
		if t == nil || t.Curve != ethCrypto.S256() {
			return nil, errors.Wrap(ErrUnsupportedKey, "ecdsa keys must be on secp256k1")
		}
		return &Secp256k1PrivateKey{t}, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedKey, "%T", sk)
	}
}

func parseKeyText(s string) (crypto.PrivateKey, error) {
	h := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	if strings.HasPrefix(h, derSecp256k1PrivatePrefix) {
		return ParseSecp256k1PrivateKey(h)
	}

	return ParsePrivateKey(h)
}

func (p DefaultKeyProvider) KeyType(sk crypto.PrivateKey) (KeyType, error) {
	k, err := p.normalise(sk)
	if err != nil {
		return KeyTypeUnknown, err
	}

	switch k.(type) {
	case ed25519.PrivateKey:
		return KeyTypeEd25519, nil
	default:
		return KeyTypeSecp256k1, nil
	}
}

func (p DefaultKeyProvider) DerivePublicKey(ctx context.Context, sk crypto.PrivateKey) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	k, err := p.normalise(sk)
	if err != nil {
		return nil, err
	}

	switch t := k.(type) {
	case ed25519.PrivateKey:
		return []byte(t.Public().(ed25519.PublicKey)), nil
	case *Secp256k1PrivateKey:
		return t.Public().(*Secp256k1PublicKey).Bytes()
	default:
		return nil, errors.Wrapf(ErrUnsupportedKey, "%T", k)
	}
}

func (p DefaultKeyProvider) Bytes(ctx context.Context, sk crypto.PrivateKey) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	k, err := p.normalise(sk)
	if err != nil {
		return nil, err
	}

	switch t := k.(type) {
	case ed25519.PrivateKey:
		return t.Seed(), nil
	case *Secp256k1PrivateKey:
		return t.Bytes()
	default:
		return nil, errors.Wrapf(ErrUnsupportedKey, "%T", k)
	}
}

// DefaultBls12381Generator derives BLS12-381 G2 key pairs from a seed
type DefaultBls12381Generator struct{}

func (DefaultBls12381Generator) Generate(ctx context.Context, opts Bls12381KeyPairOptions) (*Bls12381KeyPair, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sk, err := NewBls12381PrivateKeyFromSeed(opts.Seed)
	if err != nil {
		return nil, err
	}

	pub, err := sk.Public().(*Bls12381PublicKey).Bytes()
	if err != nil {
		return nil, errors.Wrap(err, "marshalling bls12381 public key")
	}

	priv, err := sk.Bytes()
	if err != nil {
		return nil, errors.Wrap(err, "marshalling bls12381 private key")
	}

	return &Bls12381KeyPair{
		ID:         opts.ID,
		Controller: opts.Controller,
		Type:       Bls12381G2KeyType,
		PublicKey:  pub,
		PrivateKey: priv,
	}, nil
}
