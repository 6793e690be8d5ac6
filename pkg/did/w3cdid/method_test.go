package w3cdid

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tcfw/didanchor/pkg/did/w3cdid/cryptography"
	"github.com/tcfw/didanchor/pkg/hashing"
)

const testController = "did:hedera:testnet:" + testFingerprint

func testKey(t *testing.T) ed25519.PrivateKey {
	t.Helper()
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = byte(i)
	}
	return ed25519.NewKeyFromSeed(seed)
}

func TestParseVerificationMethod(t *testing.T) {
	raw := map[string]interface{}{
		"id":               testController + "#did-root-key",
		"type":             "Ed25519VerificationKey2018",
		"controller":       testController,
		"publicKeyBase58":  "ZiCa",
		"privateKeyBase58": "2g",
	}

	vm, err := ParseVerificationMethod(raw)
	require.NoError(t, err)

	assert.Equal(t, testController+"#did-root-key", vm.ID())
	assert.Equal(t, testController, vm.Controller())
	assert.Equal(t, cryptography.Ed25519VerificationKey2018, vm.Type())
	assert.Equal(t, "#did-root-key", vm.Name())
	assert.Equal(t, KeyEncodingBase58, vm.Encoding())
	assert.True(t, vm.HasPrivateKey())
	assert.Equal(t, "2g", vm.PrivateKey())

	pub, err := vm.PublicKeyBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), pub)
}

func TestParseVerificationMethodCopiesJwk(t *testing.T) {
	sk := testKey(t)

	pub, err := cryptography.Ed25519PublicJWK(sk.Public().(ed25519.PublicKey))
	require.NoError(t, err)
	priv, err := cryptography.Ed25519PrivateJWK(sk.Seed())
	require.NoError(t, err)

	x, d := pub["x"], priv["d"]

	vm, err := ParseVerificationMethod(map[string]interface{}{
		"id":            testController + "#jwk",
		"type":          "JsonWebKey2020",
		"controller":    testController,
		"publicKeyJwk":  pub,
		"privateKeyJwk": priv,
	})
	require.NoError(t, err)

	pub["x"] = "changed"
	priv["d"] = "changed"

	assert.Equal(t, x, vm.PublicKeyJwk()["x"])
	assert.Equal(t, d, vm.PrivateKey().(map[string]interface{})["d"])
}

func TestParseVerificationMethodInvalid(t *testing.T) {
	tests := map[string]interface{}{
		"not object":     "abc",
		"no id":          map[string]interface{}{"type": "x", "controller": "c", "publicKeyBase58": "ZiCa"},
		"no controller":  map[string]interface{}{"id": "a", "type": "x", "publicKeyBase58": "ZiCa"},
		"numeric type":   map[string]interface{}{"id": "a", "type": 1, "controller": "c", "publicKeyBase58": "ZiCa"},
		"no public key":  map[string]interface{}{"id": "a", "type": "x", "controller": "c"},
		"key not text":   map[string]interface{}{"id": "a", "type": "x", "controller": "c", "publicKeyBase58": 12},
		"jwk not object": map[string]interface{}{"id": "a", "type": "x", "controller": "c", "publicKeyJwk": "abc"},
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseVerificationMethod(raw)
			assert.ErrorIs(t, err, ErrInvalidMethodFormat)
		})
	}
}

func TestParseVerificationMethodIgnoresOrphanPrivateKey(t *testing.T) {
	vm, err := ParseVerificationMethod(map[string]interface{}{
		"id":                  "a",
		"type":                "x",
		"controller":          "c",
		"publicKeyBase58":     "ZiCa",
		"privateKeyMultibase": "zZiCa",
	})
	require.NoError(t, err)
	assert.False(t, vm.HasPrivateKey())
}

func TestVerificationMethodOmitsUnsetPrivateKeys(t *testing.T) {
	vm, err := NewVerificationMethod("a#k", "a", cryptography.Ed25519VerificationKey2018, KeyEncodingBase58, []byte("abc"))
	require.NoError(t, err)

	o := vm.ToObject(true)
	assert.Equal(t, []string{"id", "type", "controller", "publicKeyBase58"}, o.Keys())

	for _, k := range []string{"privateKeyBase58", "privateKeyMultibase", "privateKeyJwk"} {
		_, ok := o.Get(k)
		assert.False(t, ok, k)
	}
}

func TestVerificationMethodPrivateProjection(t *testing.T) {
	vm, err := NewVerificationMethod("a#k", "a", cryptography.Ed25519VerificationKey2018, KeyEncodingBase58, []byte("abc"))
	require.NoError(t, err)
	require.NoError(t, vm.SetPrivateKey([]byte{1}))

	pub := vm.ToObject(false)
	_, ok := pub.Get("privateKeyBase58")
	assert.False(t, ok)

	priv := vm.ToObject(true)
	v, ok := priv.Get("privateKeyBase58")
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	again, err := ParseVerificationMethod(priv)
	require.NoError(t, err)
	assert.True(t, vm.Compare(again))
	assert.Equal(t, vm.PrivateKey(), again.PrivateKey())
}

func TestVerificationMethodSetPrivateKey(t *testing.T) {
	b58, err := NewVerificationMethod("a#k", "a", cryptography.Ed25519VerificationKey2018, KeyEncodingBase58, []byte("abc"))
	require.NoError(t, err)

	mb, err := NewVerificationMethod("a#m", "a", cryptography.Ed25519VerificationKey2020, KeyEncodingMultibase, []byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, "zZiCa", mb.PublicKeyMultibase())

	pub := testKey(t).Public().(ed25519.PublicKey)
	jwk, err := NewVerificationMethod("a#j", "a", cryptography.JsonWebKey2020, KeyEncodingJwk, pub)
	require.NoError(t, err)

	assert.NoError(t, b58.SetPrivateKey("2g"))
	assert.Equal(t, "2g", b58.ToObject(true).Map()["privateKeyBase58"])

	assert.NoError(t, mb.SetPrivateKey("z2g"))
	assert.Equal(t, "z2g", mb.ToObject(true).Map()["privateKeyMultibase"])

	assert.ErrorIs(t, b58.SetPrivateKey(map[string]interface{}{"kty": "OKP"}), ErrInvalidArgument)
	assert.ErrorIs(t, jwk.SetPrivateKey("2g"), ErrInvalidArgument)
	assert.ErrorIs(t, b58.SetPrivateKey(""), ErrInvalidArgument)
	assert.ErrorIs(t, b58.SetPrivateKey(42), ErrInvalidArgument)
	assert.Equal(t, "2g", b58.PrivateKey())

	assert.NoError(t, jwk.SetPrivateKey([]byte(testKey(t).Seed())))
	seed, err := jwk.PrivateKeyBytes()
	require.NoError(t, err)
	assert.Equal(t, testKey(t).Seed(), seed)

	_, ok := jwk.ToObject(true).Get("privateKeyBase58")
	assert.False(t, ok)
}

func TestVerificationMethodCompare(t *testing.T) {
	a, _ := NewVerificationMethod("a#k", "a", cryptography.Ed25519VerificationKey2018, KeyEncodingBase58, []byte("abc"))
	b, _ := NewVerificationMethod("a#k", "a", cryptography.Ed25519VerificationKey2018, KeyEncodingBase58, []byte("abc"))
	c, _ := NewVerificationMethod("a#k", "a", cryptography.Ed25519VerificationKey2018, KeyEncodingBase58, []byte("abd"))

	assert.True(t, a.Compare(b))
	assert.False(t, a.Compare(c))
	assert.False(t, a.Compare(nil))

	require.NoError(t, b.SetPrivateKey("2g"))
	assert.True(t, a.Compare(b))
}

func TestGenerateSigningMethod(t *testing.T) {
	key := testKey(t)

	vm, err := GenerateSigningMethod(context.Background(), testController, key)
	require.NoError(t, err)

	assert.Equal(t, testController+RootKeyFragment, vm.ID())
	assert.Equal(t, cryptography.Ed25519VerificationKey2018, vm.Type())
	assert.Equal(t, hashing.Base58Encode(key.Public().(ed25519.PublicKey)), vm.PublicKeyBase58())
	assert.Equal(t, hashing.Base58Encode(key.Seed()), vm.PrivateKey())

	vm, err = GenerateSigningMethod(context.Background(), testController, key, WithoutPrivateKeys())
	require.NoError(t, err)
	assert.False(t, vm.HasPrivateKey())
}

func TestGenerateBls12381Method(t *testing.T) {
	key := testKey(t)

	vm, err := GenerateBls12381Method(context.Background(), testController, key)
	require.NoError(t, err)

	assert.Equal(t, testController+RootKeyBbsFragment, vm.ID())
	assert.Equal(t, cryptography.Bls12381G2Key2020, vm.Type())

	pub, err := vm.PublicKeyBytes()
	require.NoError(t, err)
	assert.Len(t, pub, 96)
	assert.True(t, vm.HasPrivateKey())

	again, err := GenerateBls12381Method(context.Background(), testController, key)
	require.NoError(t, err)
	assert.True(t, vm.Compare(again))
}

func TestGenerateMethodInvalidArgs(t *testing.T) {
	ctx := context.Background()

	_, err := GenerateSigningMethod(ctx, "", testKey(t))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = GenerateSigningMethod(ctx, testController, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = GenerateBls12381Method(ctx, testController, "")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = GenerateSigningMethod(ctx, testController, 42)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
