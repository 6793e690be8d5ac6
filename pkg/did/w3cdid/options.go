package w3cdid

import (
	"github.com/pkg/errors"
	keys "github.com/tcfw/didanchor/pkg/cryptography"
)

type generateOptions struct {
	keys keys.KeyProvider
	bls  keys.Bls12381KeyPairGenerator

	withoutPrivate bool
}

type GenerateOption func(*generateOptions) error

// WithKeyProvider replaces the provider used to derive public keys
func WithKeyProvider(p keys.KeyProvider) GenerateOption {
	return func(o *generateOptions) error {
		if p == nil {
			return errors.Wrap(ErrInvalidArgument, "nil key provider")
		}
		o.keys = p
		return nil
	}
}

func WithBls12381Generator(g keys.Bls12381KeyPairGenerator) GenerateOption {
	return func(o *generateOptions) error {
		if g == nil {
			return errors.Wrap(ErrInvalidArgument, "nil bls12381 generator")
		}
		o.bls = g
		return nil
	}
}

// WithoutPrivateKeys leaves generated methods without private key material
func WithoutPrivateKeys() GenerateOption {
	return func(o *generateOptions) error {
		o.withoutPrivate = true
		return nil
	}
}

func buildGenerateOptions(opts []GenerateOption) (*generateOptions, error) {
	o := &generateOptions{
		keys: keys.DefaultKeyProvider{},
		bls:  keys.DefaultBls12381Generator{},
	}

	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	return o, nil
}
