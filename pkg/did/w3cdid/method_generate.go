package w3cdid

import (
	"context"
	"crypto"

	"github.com/pkg/errors"
	keys "github.com/tcfw/didanchor/pkg/cryptography"
	"github.com/tcfw/didanchor/pkg/did/w3cdid/cryptography"
)

const (
	RootKeyFragment    = "#did-root-key"
	RootKeyBbsFragment = "#did-root-key-bbs"
)

func checkGenerateArgs(controller string, key crypto.PrivateKey) error {
	if controller == "" {
		return errors.Wrap(ErrInvalidArgument, "empty controller")
	}

	switch k := key.(type) {
	case nil:
		return errors.Wrap(ErrInvalidArgument, "no signing key")
	case string:
		if k == "" {
			return errors.Wrap(ErrInvalidArgument, "empty signing key")
		}
	case []byte:
		if len(k) == 0 {
			return errors.Wrap(ErrInvalidArgument, "empty signing key")
		}
	}

	return nil
}

// GenerateSigningMethod creates the primary #did-root-key method for
// controller, publishing the signing key's public half in base58
func GenerateSigningMethod(ctx context.Context, controller string, key crypto.PrivateKey, opts ...GenerateOption) (*VerificationMethod, error) {
	if err := checkGenerateArgs(controller, key); err != nil {
		return nil, err
	}

	o, err := buildGenerateOptions(opts)
	if err != nil {
		return nil, err
	}

	kt, err := o.keys.KeyType(key)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidArgument, err.Error())
	}

	var typ cryptography.VerificationMethodType
	switch kt {
	case keys.KeyTypeEd25519:
		typ = cryptography.Ed25519VerificationKey2018
	case keys.KeyTypeSecp256k1:
		typ = cryptography.EcdsaSecp256k1VerificationKey2019
	default:
		return nil, errors.Wrapf(ErrInvalidArgument, "unsupported key type %s", kt)
	}

	pub, err := o.keys.DerivePublicKey(ctx, key)
	if err != nil {
		return nil, errors.Wrap(err, "deriving public key")
	}

	vm, err := NewVerificationMethod(controller+RootKeyFragment, controller, typ, KeyEncodingBase58, pub)
	if err != nil {
		return nil, err
	}

	if o.withoutPrivate {
		return vm, nil
	}

	priv, err := o.keys.Bytes(ctx, key)
	if err != nil {
		return nil, errors.Wrap(err, "serialising private key")
	}

	if err := vm.SetPrivateKey(priv); err != nil {
		return nil, err
	}

	return vm, nil
}

// GenerateBls12381Method creates the #did-root-key-bbs method for
// controller. The BLS12-381 key pair is seeded with the signing key bytes so
// the same signing key always yields the same pair.
func GenerateBls12381Method(ctx context.Context, controller string, key crypto.PrivateKey, opts ...GenerateOption) (*VerificationMethod, error) {
	if err := checkGenerateArgs(controller, key); err != nil {
		return nil, err
	}

	o, err := buildGenerateOptions(opts)
	if err != nil {
		return nil, err
	}

	seed, err := o.keys.Bytes(ctx, key)
	if err != nil {
		return nil, errors.Wrap(err, "serialising signing key")
	}

	kp, err := o.bls.Generate(ctx, keys.Bls12381KeyPairOptions{
		ID:         controller + RootKeyBbsFragment,
		Controller: controller,
		Seed:       seed,
	})
	if err != nil {
		return nil, errors.Wrap(err, "generating bls12381 key pair")
	}

	typ := cryptography.VerificationMethodType(kp.Type)
	if typ == "" {
		typ = cryptography.Bls12381G2Key2020
	}

	vm, err := NewVerificationMethod(kp.ID, kp.Controller, typ, KeyEncodingBase58, kp.PublicKey)
	if err != nil {
		return nil, err
	}

	if o.withoutPrivate || len(kp.PrivateKey) == 0 {
		return vm, nil
	}

	if err := vm.SetPrivateKey(kp.PrivateKey); err != nil {
		return nil, err
	}

	return vm, nil
}
