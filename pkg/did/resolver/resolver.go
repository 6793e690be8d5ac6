package resolver

import (
	"context"

	"github.com/pkg/errors"
	"github.com/tcfw/didanchor/internal/utils/logging"
	"github.com/tcfw/didanchor/pkg/did"
	"github.com/tcfw/didanchor/pkg/did/w3cdid"
	"github.com/tcfw/didanchor/pkg/storage"
)

var (
	ErrUnknownMethod  = errors.New("unknown did method")
	ErrMethodNotFound = errors.New("verification method not found")

	_ did.Resolver = (*Resolver)(nil)
)

// Resolver resolves ledger anchored DIDs from a document store
type Resolver struct {
	store  storage.DocumentStore
	method w3cdid.LedgerMethod
}

type Option func(*Resolver)

func WithMethod(m w3cdid.LedgerMethod) Option {
	return func(r *Resolver) {
		r.method = m
	}
}

func NewResolver(s storage.DocumentStore, opts ...Option) *Resolver {
	r := &Resolver{store: s, method: w3cdid.Hedera}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve looks up the document for a DID given in either textual form
func (r *Resolver) Resolve(ctx context.Context, id string) (*w3cdid.Document, error) {
	if !r.method.Implements(id) {
		return nil, errors.Wrapf(ErrUnknownMethod, "%s", w3cdid.URL(id).Method())
	}

	l, err := r.method.Parse(id)
	if err != nil {
		return nil, err
	}

	doc, err := r.store.Get(ctx, l.String())
	if err != nil {
		logging.Entry().WithField("did", l.String()).WithError(err).Debug("resolving did")
		return nil, errors.Wrap(err, "looking up document")
	}

	return doc, nil
}

// ResolveMethod resolves the verification method a DID URL points at
func (r *Resolver) ResolveMethod(ctx context.Context, u w3cdid.URL) (*w3cdid.VerificationMethod, error) {
	doc, err := r.Resolve(ctx, u.DID())
	if err != nil {
		return nil, err
	}

	ref := u.Relative()
	if ref == "" {
		return nil, errors.Wrapf(ErrMethodNotFound, "%s has no fragment", u)
	}

	if vm := doc.MethodByName(ref); vm != nil {
		return vm, nil
	}

	for _, rel := range w3cdid.Relationships {
		for _, e := range doc.Relationship(rel) {
			if e.IsInline() && (e.Method().Name() == ref || e.ID() == doc.ID()+ref) {
				return e.Method(), nil
			}
		}
	}

	return nil, errors.Wrapf(ErrMethodNotFound, "%s", u)
}
