package cryptography

import "errors"

type VerificationMethodType string

var (
	ErrInvalidPublicKey         = errors.New("invalid public key")
	ErrInvalidPublicKeyLength   = errors.New("invalid public key length")
	ErrInvalidPublicKeyType     = errors.New("invalid public key type")
	ErrUnsupportedPublicKeyType = errors.New("unsupported public key type")
)

const (
	Bls12381G1Key2020                 VerificationMethodType = "Bls12381G1Key2020"
	Bls12381G2Key2020                 VerificationMethodType = "Bls12381G2Key2020"
	EcdsaSecp256k1RecoveryMethod2020  VerificationMethodType = "EcdsaSecp256k1RecoveryMethod2020"
	EcdsaSecp256k1VerificationKey2019 VerificationMethodType = "EcdsaSecp256k1VerificationKey2019"
	Ed25519VerificationKey2018        VerificationMethodType = "Ed25519VerificationKey2018"
	Ed25519VerificationKey2020        VerificationMethodType = "Ed25519VerificationKey2020"
	JsonWebKey2020                    VerificationMethodType = "JsonWebKey2020"
	PgpVerificationkey2021            VerificationMethodType = "PgpVerificationkey2021"
	RsaVerificationKey2018            VerificationMethodType = "RsaVerificationKey2018"
	Verificationcondition2021         VerificationMethodType = "Verificationcondition2021"
	X25519KeyAgreementKey2019         VerificationMethodType = "X25519KeyAgreementKey2019"
)

// SignatureValidator checks sig over msg with the raw public key bytes
type SignatureValidator func(pub []byte, sig []byte, msg []byte) (bool, error)

var validators = map[VerificationMethodType]SignatureValidator{
	Ed25519VerificationKey2018:        ValidateEd25519,
	Ed25519VerificationKey2020:        ValidateEd25519,
	Bls12381G2Key2020:                 ValidateBls12381,
	EcdsaSecp256k1VerificationKey2019: ValidateEcdsaSecp256k1,
}

func Validator(t VerificationMethodType) (SignatureValidator, bool) {
	v, ok := validators[t]
	return v, ok
}
