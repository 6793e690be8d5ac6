package cryptography

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyBls12381(t *testing.T) {
	sk := NewBls12381PrivateKey()
	pk := sk.Public().(*Bls12381PublicKey)

	msg := []byte("abc")

	sig, err := sk.Sign(nil, msg, nil)
	if err != nil {
		t.Fatal(err)
	}

	ok, err := pk.Verify(sig, msg)
	if err != nil {
		t.Fatal(err)
	}
	assert.True(t, ok)

	ok, err = pk.Verify(sig, []byte("abd"))
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestBls12381FromSeedDeterministic(t *testing.T) {
	seed := []byte("0123456789abcdef0123456789abcdef")

	a, err := NewBls12381PrivateKeyFromSeed(seed)
	if err != nil {
		t.Fatal(err)
	}

	b, err := NewBls12381PrivateKeyFromSeed(seed)
	if err != nil {
		t.Fatal(err)
	}

	assert.True(t, a.Equal(b))

	c, err := NewBls12381PrivateKeyFromSeed([]byte("another seed"))
	if err != nil {
		t.Fatal(err)
	}

	assert.False(t, a.Equal(c))

	_, err = NewBls12381PrivateKeyFromSeed(nil)
	assert.ErrorIs(t, err, ErrInvalidSeed)
}

func TestBls12381BytesRoundTrip(t *testing.T) {
	sk := NewBls12381PrivateKey()

	skb, err := sk.Bytes()
	if err != nil {
		t.Fatal(err)
	}

	sk2, err := NewBls12381PrivateKeyFromBytes(skb)
	if err != nil {
		t.Fatal(err)
	}
	assert.True(t, sk.Equal(sk2))

	pkb, err := sk.Public().(*Bls12381PublicKey).Bytes()
	if err != nil {
		t.Fatal(err)
	}
	assert.Len(t, pkb, 96)

	pk2, err := NewBls12381PublicKeyFromBytes(pkb)
	if err != nil {
		t.Fatal(err)
	}
	assert.True(t, pk2.Equal(sk.Public().(*Bls12381PublicKey).Point))
}
