// Package hashing holds the digest and text encodings used to derive DID
// fingerprints and document content hashes.
package hashing

import (
	"crypto/sha256"
	"encoding/base64"

	"github.com/mr-tron/base58"
	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"
	"github.com/pkg/errors"
)

var (
	ErrInvalidEncoding = errors.New("invalid encoding")
)

// Sha256 returns the 32 byte SHA-256 digest of b
func Sha256(b []byte) []byte {
	h := sha256.Sum256(b)
	return h[:]
}

// Sha256String digests the UTF-8 bytes of s
func Sha256String(s string) []byte {
	return Sha256([]byte(s))
}

func Base58Encode(b []byte) string {
	return base58.Encode(b)
}

// Base58Decode decodes bitcoin alphabet base58 text. Empty input decodes to
// an empty slice.
func Base58Decode(s string) ([]byte, error) {
	if s == "" {
		return []byte{}, nil
	}

	b, err := base58.Decode(s)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidEncoding, "base58: %s", err)
	}

	return b, nil
}

func Base64Encode(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

func Base64Decode(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidEncoding, "base64: %s", err)
	}

	return b, nil
}

// Fingerprint is the base58 encoded SHA-256 digest of b. It is used both as
// the key portion of a ledger DID and as a document credential hash.
func Fingerprint(b []byte) string {
	return Base58Encode(Sha256(b))
}

// EncodeMultibase encodes b as base58btc multibase ("z" prefixed)
func EncodeMultibase(b []byte) (string, error) {
	return multibase.Encode(multibase.Base58BTC, b)
}

// DecodeMultibase accepts any multibase encoding go-multibase recognises
func DecodeMultibase(mb string) ([]byte, error) {
	_, d, err := multibase.Decode(mb)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidEncoding, "multibase: %s", err)
	}

	return d, nil
}

// Multihash wraps the SHA-256 digest of b in a multihash
func Multihash(b []byte) (multihash.Multihash, error) {
	return multihash.Sum(b, multihash.SHA2_256, -1)
}
