package cryptography

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"io"
	"strings"

	ethCrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

type Secp256k1PrivateKey struct {
	*ecdsa.PrivateKey
}

func NewEcdsaSecp256k1PrivateKey() (*Secp256k1PrivateKey, error) {
	pk, err := ecdsa.GenerateKey(ethCrypto.S256(), rand.Reader)
	if err != nil {
		return nil, errors.Wrap(err, "generating ecdsa key")
	}

	return &Secp256k1PrivateKey{pk}, nil
}

// ParseSecp256k1PrivateKey reads a hex encoded 32 byte secp256k1 key, with or
// without a 0x prefix or the DER header ledgers prefix ECDSA keys with
func ParseSecp256k1PrivateKey(s string) (*Secp256k1PrivateKey, error) {
	h := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	h = strings.TrimPrefix(h, derSecp256k1PrivatePrefix)

	pk, err := ethCrypto.HexToECDSA(h)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidPrivateKey, "secp256k1: %s", err)
	}

	return &Secp256k1PrivateKey{pk}, nil
}

// Bytes returns the 32 byte D value
func (p *Secp256k1PrivateKey) Bytes() ([]byte, error) {
	return ethCrypto.FromECDSA(p.PrivateKey), nil
}

// Sign signs the sha256 digest of msg when it is not already 32 bytes
func (p *Secp256k1PrivateKey) Sign(_ io.Reader, digest []byte, _ crypto.SignerOpts) ([]byte, error) {
	return ethCrypto.Sign(secp256k1Digest(digest), p.PrivateKey)
}

func (p *Secp256k1PrivateKey) Public() crypto.PublicKey {
	return &Secp256k1PublicKey{p.PublicKey}
}

func NewSecp256k1PublicKey(d []byte) (*Secp256k1PublicKey, error) {
	if len(d) == 33 {
		pub, err := ethCrypto.DecompressPubkey(d)
		if err != nil {
			return nil, errors.Wrap(err, "decompressing ecdsa pub key")
		}

		return &Secp256k1PublicKey{*pub}, nil
	}

	pub, err := ethCrypto.UnmarshalPubkey(d)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshalling ecdsa pub key")
	}

	return &Secp256k1PublicKey{*pub}, nil
}

type Secp256k1PublicKey struct {
	ecdsa.PublicKey
}

// Bytes returns the 33 byte compressed point
func (p *Secp256k1PublicKey) Bytes() ([]byte, error) {
	return ethCrypto.CompressPubkey(&p.PublicKey), nil
}

func (p *Secp256k1PublicKey) Verify(sig, msg []byte) (bool, error) {
	if len(sig) == 65 {
		//drop recovery id
		sig = sig[:64]
	}

	return ethCrypto.VerifySignature(
		ethCrypto.CompressPubkey(&p.PublicKey),
		secp256k1Digest(msg),
		sig,
	), nil
}

func secp256k1Digest(msg []byte) []byte {
	if len(msg) == 32 {
		return msg
	}

	h := sha256.Sum256(msg)
	return h[:]
}
