package hashing

import (
	"encoding/hex"
	"testing"

	"github.com/multiformats/go-multihash"
	"github.com/stretchr/testify/assert"
)

func TestSha256(t *testing.T) {
	d := Sha256String("abc")

	assert.Len(t, d, 32)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", hex.EncodeToString(d))
	assert.Equal(t, d, Sha256([]byte("abc")))
}

func TestBase58(t *testing.T) {
	tests := map[string][]byte{
		"":                  {},
		"1":                 {0},
		"2g":                {'a'},
		"ZiCa":              []byte("abc"),
		"11StV1DL6CwTryKyV": {0, 0, 'h', 'e', 'l', 'l', 'o', ' ', 'w', 'o', 'r', 'l', 'd'},
	}

	for enc, raw := range tests {
		t.Run(enc, func(t *testing.T) {
			assert.Equal(t, enc, Base58Encode(raw))

			dec, err := Base58Decode(enc)
			assert.NoError(t, err)
			assert.Equal(t, raw, dec)
		})
	}
}

func TestBase58BadAlphabet(t *testing.T) {
	_, err := Base58Decode("0OIl")
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestBase64(t *testing.T) {
	assert.Equal(t, "aGVsbG8=", Base64Encode([]byte("hello")))

	b, err := Base64Decode("aGVsbG8=")
	assert.NoError(t, err)
	assert.Equal(t, []byte("hello"), b)

	_, err = Base64Decode("!!")
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestFingerprint(t *testing.T) {
	f := Fingerprint([]byte("abc"))

	d, err := Base58Decode(f)
	assert.NoError(t, err)
	assert.Equal(t, Sha256String("abc"), d)
	assert.Equal(t, f, Fingerprint([]byte("abc")))
	assert.NotEqual(t, f, Fingerprint([]byte("abd")))
}

func TestMultibase(t *testing.T) {
	mb, err := EncodeMultibase([]byte("abc"))
	assert.NoError(t, err)
	assert.Equal(t, "zZiCa", mb)

	d, err := DecodeMultibase(mb)
	assert.NoError(t, err)
	assert.Equal(t, []byte("abc"), d)

	_, err = DecodeMultibase("?")
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestMultihash(t *testing.T) {
	mh, err := Multihash([]byte("abc"))
	assert.NoError(t, err)

	dec, err := multihash.Decode(mh)
	assert.NoError(t, err)
	assert.Equal(t, uint64(multihash.SHA2_256), dec.Code)
	assert.Equal(t, Sha256String("abc"), dec.Digest)
}
