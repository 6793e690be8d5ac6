package w3cdid

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/tcfw/didanchor/pkg/did/w3cdid/cryptography"
	"github.com/tcfw/didanchor/pkg/hashing"
)

const (
	jsonldController          = "controller"
	jsonldPublicKeyBase58     = "publicKeyBase58"
	jsonldPublicKeyMultibase  = "publicKeyMultibase"
	jsonldPublicKeyJwk        = "publicKeyJwk"
	jsonldPrivateKeyBase58    = "privateKeyBase58"
	jsonldPrivateKeyMultibase = "privateKeyMultibase"
	jsonldPrivateKeyJwk       = "privateKeyJwk"
)

// KeyEncoding names the slot a verification method publishes its key in
type KeyEncoding uint8

const (
	KeyEncodingNone KeyEncoding = iota
	KeyEncodingBase58
	KeyEncodingMultibase
	KeyEncodingJwk
)

// VerificationMethod is a key bearing record owned by a controller DID.
// Only the private key may be changed after construction.
type VerificationMethod struct {
	id         string
	controller string
	typ        cryptography.VerificationMethodType
	name       string

	publicKeyBase58    string
	publicKeyMultibase string
	publicKeyJwk       map[string]interface{}

	privateKeyBase58    string
	privateKeyMultibase string
	privateKeyJwk       map[string]interface{}
}

// PrivateKey is a private key entry of a document
type PrivateKey struct {
	ID   string
	Type cryptography.VerificationMethodType
	Key  interface{}
}

// NewVerificationMethod builds a method publishing pub in the given encoding
func NewVerificationMethod(id, controller string, typ cryptography.VerificationMethodType, enc KeyEncoding, pub []byte) (*VerificationMethod, error) {
	if id == "" || controller == "" || typ == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "id, controller and type are required")
	}
	if len(pub) == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "empty public key")
	}

	vm := &VerificationMethod{
		id:         id,
		controller: controller,
		typ:        typ,
		name:       strings.TrimPrefix(id, controller),
	}

	switch enc {
	case KeyEncodingBase58:
		vm.publicKeyBase58 = hashing.Base58Encode(pub)
	case KeyEncodingMultibase:
		mb, err := hashing.EncodeMultibase(pub)
		if err != nil {
			return nil, errors.Wrap(err, "encoding multibase")
		}
		vm.publicKeyMultibase = mb
	case KeyEncodingJwk:
		jwk, err := cryptography.Ed25519PublicJWK(pub)
		if err != nil {
			return nil, errors.Wrap(ErrInvalidArgument, err.Error())
		}
		vm.publicKeyJwk = jwk
	default:
		return nil, errors.Wrapf(ErrInvalidArgument, "unknown key encoding %d", enc)
	}

	return vm, nil
}

// ParseVerificationMethod reads a method from a decoded JSON object
func ParseVerificationMethod(raw interface{}) (*VerificationMethod, error) {
	m, ok := asMap(raw)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidMethodFormat, "method of type %T", raw)
	}

	id, idOk := m[jsonldID].(string)
	controller, cOk := m[jsonldController].(string)
	typ, tOk := m[jsonldType].(string)
	if !idOk || !cOk || !tOk || id == "" || controller == "" || typ == "" {
		return nil, errors.Wrap(ErrInvalidMethodFormat, "id, controller and type must be text")
	}

	vm := &VerificationMethod{
		id:         id,
		controller: controller,
		typ:        cryptography.VerificationMethodType(typ),
		name:       strings.TrimPrefix(id, controller),
	}

	var err error
	if vm.publicKeyBase58, err = optionalText(m, jsonldPublicKeyBase58); err != nil {
		return nil, err
	}
	if vm.publicKeyMultibase, err = optionalText(m, jsonldPublicKeyMultibase); err != nil {
		return nil, err
	}
	if vm.publicKeyJwk, err = optionalObject(m, jsonldPublicKeyJwk); err != nil {
		return nil, err
	}

	if vm.Encoding() == KeyEncodingNone {
		return nil, errors.Wrapf(ErrInvalidMethodFormat, "%s: no public key", id)
	}

	if vm.publicKeyBase58 != "" {
		if vm.privateKeyBase58, err = optionalText(m, jsonldPrivateKeyBase58); err != nil {
			return nil, err
		}
	}
	if vm.publicKeyMultibase != "" {
		if vm.privateKeyMultibase, err = optionalText(m, jsonldPrivateKeyMultibase); err != nil {
			return nil, err
		}
	}
	if vm.publicKeyJwk != nil {
		if vm.privateKeyJwk, err = optionalObject(m, jsonldPrivateKeyJwk); err != nil {
			return nil, err
		}
	}

	return vm, nil
}

func optionalText(m map[string]interface{}, k string) (string, error) {
	v, ok := m[k]
	if !ok || v == nil {
		return "", nil
	}

	s, ok := v.(string)
	if !ok {
		return "", errors.Wrapf(ErrInvalidMethodFormat, "%s of type %T", k, v)
	}

	return s, nil
}

func optionalObject(m map[string]interface{}, k string) (map[string]interface{}, error) {
	v, ok := m[k]
	if !ok || v == nil {
		return nil, nil
	}

	o, ok := asMap(v)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidMethodFormat, "%s of type %T", k, v)
	}

	return copyMap(o), nil
}

func (vm *VerificationMethod) ID() string         { return vm.id }
func (vm *VerificationMethod) Controller() string { return vm.controller }

func (vm *VerificationMethod) Type() cryptography.VerificationMethodType { return vm.typ }

// Name is the id without the controller prefix, usually the #fragment
func (vm *VerificationMethod) Name() string { return vm.name }

func (vm *VerificationMethod) PublicKeyBase58() string    { return vm.publicKeyBase58 }
func (vm *VerificationMethod) PublicKeyMultibase() string { return vm.publicKeyMultibase }

func (vm *VerificationMethod) PublicKeyJwk() map[string]interface{} {
	return copyMap(vm.publicKeyJwk)
}

// Encoding is the first populated public key slot
func (vm *VerificationMethod) Encoding() KeyEncoding {
	switch {
	case vm.publicKeyBase58 != "":
		return KeyEncodingBase58
	case vm.publicKeyMultibase != "":
		return KeyEncodingMultibase
	case len(vm.publicKeyJwk) != 0:
		return KeyEncodingJwk
	default:
		return KeyEncodingNone
	}
}

// PublicKeyBytes decodes the populated public key
func (vm *VerificationMethod) PublicKeyBytes() ([]byte, error) {
	switch vm.Encoding() {
	case KeyEncodingBase58:
		return hashing.Base58Decode(vm.publicKeyBase58)
	case KeyEncodingMultibase:
		return hashing.DecodeMultibase(vm.publicKeyMultibase)
	case KeyEncodingJwk:
		return cryptography.JWKPublicKeyBytes(vm.publicKeyJwk)
	default:
		return nil, cryptography.ErrInvalidPublicKey
	}
}

func (vm *VerificationMethod) HasPrivateKey() bool {
	return vm.privateKeyBase58 != "" || vm.privateKeyMultibase != "" || len(vm.privateKeyJwk) != 0
}

// PrivateKey returns the populated private key as text or a JWK object
func (vm *VerificationMethod) PrivateKey() interface{} {
	switch {
	case vm.privateKeyBase58 != "":
		return vm.privateKeyBase58
	case vm.privateKeyMultibase != "":
		return vm.privateKeyMultibase
	case len(vm.privateKeyJwk) != 0:
		return copyMap(vm.privateKeyJwk)
	default:
		return nil
	}
}

// PrivateKeyBytes decodes the populated private key
func (vm *VerificationMethod) PrivateKeyBytes() ([]byte, error) {
	switch {
	case vm.privateKeyBase58 != "":
		return hashing.Base58Decode(vm.privateKeyBase58)
	case vm.privateKeyMultibase != "":
		return hashing.DecodeMultibase(vm.privateKeyMultibase)
	case len(vm.privateKeyJwk) != 0:
		return cryptography.JWKPrivateKeyBytes(vm.privateKeyJwk)
	default:
		return nil, errors.Wrapf(ErrInvalidArgument, "%s has no private key", vm.id)
	}
}

// SetPrivateKey writes key into the private slot mirroring the populated
// public key. Text keys fit base58 and multibase methods, JWK objects fit
// JWK methods and raw bytes are encoded to whichever slot is populated.
// A key of the wrong shape for the slot is rejected and nothing is written.
func (vm *VerificationMethod) SetPrivateKey(key interface{}) error {
	enc := vm.Encoding()

	switch k := key.(type) {
	case string:
		if k == "" {
			return errors.Wrap(ErrInvalidArgument, "empty private key")
		}

		switch enc {
		case KeyEncodingBase58:
			vm.privateKeyBase58 = k
		case KeyEncodingMultibase:
			vm.privateKeyMultibase = k
		default:
			return errors.Wrapf(ErrInvalidArgument, "%s does not take a text private key", vm.id)
		}
	case map[string]interface{}, *Object:
		m, _ := asMap(k)
		if enc != KeyEncodingJwk || len(m) == 0 {
			return errors.Wrapf(ErrInvalidArgument, "%s does not take a jwk private key", vm.id)
		}
		vm.privateKeyJwk = copyMap(m)
	case []byte:
		if len(k) == 0 {
			return errors.Wrap(ErrInvalidArgument, "empty private key")
		}

		switch enc {
		case KeyEncodingBase58:
			vm.privateKeyBase58 = hashing.Base58Encode(k)
		case KeyEncodingMultibase:
			mb, err := hashing.EncodeMultibase(k)
			if err != nil {
				return errors.Wrap(err, "encoding multibase")
			}
			vm.privateKeyMultibase = mb
		case KeyEncodingJwk:
			jwk, err := cryptography.Ed25519PrivateJWK(k)
			if err != nil {
				return errors.Wrap(ErrInvalidArgument, err.Error())
			}
			vm.privateKeyJwk = jwk
		default:
			return errors.Wrapf(ErrInvalidArgument, "%s has no public key", vm.id)
		}
	default:
		return errors.Wrapf(ErrInvalidArgument, "private key of type %T", key)
	}

	return nil
}

// ToObject projects the method. Private keys are only emitted when asked
// for and only where the matching public key is populated.
func (vm *VerificationMethod) ToObject(includePrivate bool) *Object {
	o := NewObject().
		Set(jsonldID, vm.id).
		Set(jsonldType, string(vm.typ)).
		Set(jsonldController, vm.controller)

	if vm.publicKeyBase58 != "" {
		o.Set(jsonldPublicKeyBase58, vm.publicKeyBase58)
	}
	if vm.publicKeyMultibase != "" {
		o.Set(jsonldPublicKeyMultibase, vm.publicKeyMultibase)
	}
	if len(vm.publicKeyJwk) != 0 {
		o.Set(jsonldPublicKeyJwk, copyMap(vm.publicKeyJwk))
	}

	if !includePrivate {
		return o
	}

	if vm.publicKeyBase58 != "" && vm.privateKeyBase58 != "" {
		o.Set(jsonldPrivateKeyBase58, vm.privateKeyBase58)
	}
	if vm.publicKeyMultibase != "" && vm.privateKeyMultibase != "" {
		o.Set(jsonldPrivateKeyMultibase, vm.privateKeyMultibase)
	}
	if len(vm.publicKeyJwk) != 0 && len(vm.privateKeyJwk) != 0 {
		o.Set(jsonldPrivateKeyJwk, copyMap(vm.privateKeyJwk))
	}

	return o
}

// Compare reports structural equality of the public fields. It never
// fails, anything that cannot be compared is not equal.
func (vm *VerificationMethod) Compare(o *VerificationMethod) bool {
	if vm == nil || o == nil {
		return vm == o
	}

	if vm.id != o.id || vm.controller != o.controller || vm.typ != o.typ ||
		vm.publicKeyBase58 != o.publicKeyBase58 || vm.publicKeyMultibase != o.publicKeyMultibase {
		return false
	}

	if len(vm.publicKeyJwk) == 0 && len(o.publicKeyJwk) == 0 {
		return true
	}

	a, err := json.Marshal(vm.publicKeyJwk)
	if err != nil {
		return false
	}
	b, err := json.Marshal(o.publicKeyJwk)
	if err != nil {
		return false
	}

	return bytes.Equal(a, b)
}

func copyMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}

	c := make(map[string]interface{}, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
