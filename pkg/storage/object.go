package storage

import (
	"time"

	"github.com/ipfs/go-cid"
	"github.com/pkg/errors"
	"github.com/tcfw/didanchor/pkg/did/w3cdid"
	"github.com/tcfw/didanchor/pkg/hashing"
	"github.com/tcfw/didanchor/pkg/tx"
)

// ContentID addresses stored bytes by their sha2-256 multihash
func ContentID(b []byte) (cid.Cid, error) {
	mh, err := hashing.Multihash(b)
	if err != nil {
		return cid.Undef, errors.Wrap(err, "hashing object")
	}

	return cid.NewCidV1(CIDEncoding, mh), nil
}

// EncodeTx serialises t and returns its content id
func EncodeTx(t *tx.Tx) (cid.Cid, []byte, error) {
	b, err := t.Marshal()
	if err != nil {
		return cid.Undef, nil, err
	}

	id, err := ContentID(b)
	if err != nil {
		return cid.Undef, nil, err
	}

	return id, b, nil
}

func DecodeTx(b []byte) (*tx.Tx, error) {
	t := &tx.Tx{}
	if err := t.Unmarshal(b); err != nil {
		return nil, errors.Wrap(err, "unmarshalling tx")
	}

	return t, nil
}

// DocumentFromTx returns the document carried by a create or update
// operation. Deleted DIDs are reported as not found.
func DocumentFromTx(t *tx.Tx) (*w3cdid.Document, error) {
	d, ok := t.DID()
	if !ok {
		return nil, ErrOpNotSupported
	}

	if t.Type == tx.TxType_DIDDelete {
		return nil, errors.Wrapf(ErrNotFound, "%s deleted", d.DID)
	}

	return d.ParseDocument()
}

func newOperation(typ tx.TxType, doc *w3cdid.Document, now func() time.Time) (*tx.Tx, error) {
	if now == nil {
		now = time.Now
	}

	return tx.NewDIDTx(typ, doc, now())
}
