package cryptography

import (
	"crypto"
	"crypto/sha256"
	"io"

	"github.com/drand/kyber"
	bls "github.com/drand/kyber-bls12381"
	sig "github.com/drand/kyber/sign/bls"
	"github.com/drand/kyber/util/random"
	"github.com/pkg/errors"
	"golang.org/x/crypto/hkdf"
)

const (
	// Bls12381G2KeyType is the verification method type of keys produced
	// by the BLS12-381 key pair generator
	Bls12381G2KeyType = "Bls12381G2Key2020"

	blsKeyGenSalt = "BLS-SIG-KEYGEN-SALT-"

	//48 bytes of expanded seed keeps the mod r bias negligible
	blsSeedExpansion = 48
)

var (
	_ crypto.PrivateKey = (*Bls12381PrivateKey)(nil)
	_ crypto.PublicKey  = (*Bls12381PublicKey)(nil)

	ErrInvalidSeed = errors.New("invalid key seed")

	pairing = bls.NewBLS12381Suite()
)

func NewBls12381PrivateKey() *Bls12381PrivateKey {
	return &Bls12381PrivateKey{
		pairing.G1().Scalar().Pick(random.New()),
	}
}

// NewBls12381PrivateKeyFromSeed deterministically derives a key from seed.
// The same seed always yields the same key.
func NewBls12381PrivateKeyFromSeed(seed []byte) (*Bls12381PrivateKey, error) {
	if len(seed) == 0 {
		return nil, ErrInvalidSeed
	}

	r := hkdf.New(sha256.New, seed, []byte(blsKeyGenSalt), nil)
	okm := make([]byte, blsSeedExpansion)
	if _, err := io.ReadFull(r, okm); err != nil {
		return nil, errors.Wrap(err, "expanding seed")
	}

	sk := pairing.G1().Scalar().SetBytes(okm)
	if sk.Equal(pairing.G1().Scalar().Zero()) {
		return nil, ErrInvalidSeed
	}

	return &Bls12381PrivateKey{sk}, nil
}

func NewBls12381PrivateKeyFromBytes(b []byte) (*Bls12381PrivateKey, error) {
	sk := pairing.G1().Scalar()
	if err := sk.UnmarshalBinary(b); err != nil {
		return nil, errors.Wrap(err, "unmarshalling bls12381 scalar")
	}

	return &Bls12381PrivateKey{sk}, nil
}

func NewBls12381PublicKeyFromBytes(b []byte) (*Bls12381PublicKey, error) {
	pk := pairing.G2().Point()
	if err := pk.UnmarshalBinary(b); err != nil {
		return nil, errors.Wrap(err, "unmarshalling bls12381 G2 point")
	}

	return &Bls12381PublicKey{pk}, nil
}

type Bls12381PrivateKey struct {
	sk kyber.Scalar
}

// Sign signs digest on G1, keys live on G2
func (b *Bls12381PrivateKey) Sign(_ io.Reader, digest []byte, _ crypto.SignerOpts) (signature []byte, err error) {
	scheme := sig.NewSchemeOnG1(pairing)
	return scheme.Sign(b.sk, digest)
}

func (b *Bls12381PrivateKey) Public() crypto.PublicKey {
	pk := pairing.G2().Point().Mul(b.sk, nil)
	return &Bls12381PublicKey{pk}
}

func (b *Bls12381PrivateKey) Bytes() ([]byte, error) {
	return b.sk.MarshalBinary()
}

func (b *Bls12381PrivateKey) Equal(obls crypto.PrivateKey) bool {
	o, ok := obls.(*Bls12381PrivateKey)
	if !ok {
		return false
	}

	return b.sk.Equal(o.sk)
}

type Bls12381PublicKey struct {
	kyber.Point
}

func (b *Bls12381PublicKey) Bytes() ([]byte, error) {
	return b.Point.MarshalBinary()
}

func (b *Bls12381PublicKey) Verify(signature, msg []byte) (bool, error) {
	scheme := sig.NewSchemeOnG1(pairing)
	if err := scheme.Verify(b.Point, msg, signature); err != nil {
		return false, err
	}

	return true, nil
}
