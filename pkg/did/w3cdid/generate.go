package w3cdid

import (
	"context"
	"crypto"

	"github.com/pkg/errors"
)

// Generate creates a document under the default ledger method
func Generate(ctx context.Context, network string, key crypto.PrivateKey, topic *TopicID, opts ...GenerateOption) (*Document, error) {
	return Hedera.GenerateDocument(ctx, network, key, topic, opts...)
}

// GenerateForDID creates a document for an existing ledger DID
func GenerateForDID(ctx context.Context, did string, key crypto.PrivateKey, opts ...GenerateOption) (*Document, error) {
	return Hedera.GenerateDocumentForDID(ctx, did, key, opts...)
}

// GenerateDocument derives the DID from the signing key's public half and
// builds a document holding exactly the root key and the BLS12-381 key
func (m LedgerMethod) GenerateDocument(ctx context.Context, network string, key crypto.PrivateKey, topic *TopicID, opts ...GenerateOption) (*Document, error) {
	if network == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "empty network")
	}

	if err := checkGenerateArgs(network, key); err != nil {
		return nil, err
	}

	o, err := buildGenerateOptions(opts)
	if err != nil {
		return nil, err
	}

	pub, err := o.keys.DerivePublicKey(ctx, key)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidArgument, err.Error())
	}

	did, err := m.Generate(network, pub, topic)
	if err != nil {
		return nil, err
	}

	return generateForDID(ctx, did, key, opts)
}

func (m LedgerMethod) GenerateDocumentForDID(ctx context.Context, did string, key crypto.PrivateKey, opts ...GenerateOption) (*Document, error) {
	l, err := m.Parse(did)
	if err != nil {
		return nil, err
	}

	return generateForDID(ctx, l, key, opts)
}

func generateForDID(ctx context.Context, did *LedgerDID, key crypto.PrivateKey, opts []GenerateOption) (*Document, error) {
	doc, err := NewDocument(did)
	if err != nil {
		return nil, err
	}

	root, err := GenerateSigningMethod(ctx, did.String(), key, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "generating root key")
	}

	bbs, err := GenerateBls12381Method(ctx, did.String(), key, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "generating bbs key")
	}

	doc.verificationMethod = []*VerificationMethod{root, bbs}

	return doc, nil
}
