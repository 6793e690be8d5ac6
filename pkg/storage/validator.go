package storage

import (
	"context"

	"github.com/pkg/errors"
	"github.com/tcfw/didanchor/pkg/tx"
)

type Validator interface {
	IsTxValid(context.Context, *tx.Tx) error
}

// Lookup reports whether a DID currently has a live document
type Lookup interface {
	Exists(context.Context, string) (bool, error)
}

// TxValidator checks operations against the state of a store before they
// are applied
type TxValidator struct {
	s Lookup
}

func NewTxValidator(s Lookup) *TxValidator {
	return &TxValidator{s}
}

func (v *TxValidator) IsTxValid(ctx context.Context, t *tx.Tx) error {
	if t.Version != tx.Version1 {
		return errors.Wrapf(ErrOpNotSupported, "tx version %d", t.Version)
	}

	d, ok := t.DID()
	if !ok || d.DID == "" {
		return errors.Wrap(ErrDIDInvalid, "tx carries no DID")
	}

	exists, err := v.s.Exists(ctx, d.DID)
	if err != nil {
		return errors.Wrap(err, "checking for preexisting did")
	}

	switch t.Type {
	case tx.TxType_DIDCreate:
		if exists {
			return errors.Wrap(ErrDIDAlreadyExists, d.DID)
		}
	case tx.TxType_DIDUpdate, tx.TxType_DIDDelete:
		if !exists {
			return errors.Wrap(ErrNotFound, d.DID)
		}
	default:
		return errors.Wrapf(ErrOpNotSupported, "tx type %d", t.Type)
	}

	if t.Type == tx.TxType_DIDDelete {
		return nil
	}

	return v.isDocumentValid(d)
}

func (v *TxValidator) isDocumentValid(d *tx.DID) error {
	doc, err := d.ParseDocument()
	if err != nil {
		if errors.Is(err, ErrHashMismatch) {
			return err
		}
		return errors.Wrap(ErrDIDInvalid, err.Error())
	}

	if doc.ID() != d.DID {
		return errors.Wrapf(ErrDIDInvalid, "document %s carried for %s", doc.ID(), d.DID)
	}

	if err := doc.IsValid(); err != nil {
		return errors.Wrap(ErrDIDInvalid, err.Error())
	}

	return nil
}
