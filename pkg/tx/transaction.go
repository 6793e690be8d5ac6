package tx

import (
	"time"

	"github.com/ipfs/go-cid"
	"github.com/pkg/errors"
	"github.com/tcfw/didanchor/pkg/did/w3cdid"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	Version1 uint8 = 1
)

var (
	ErrUnknownType  = errors.New("unknown tx type")
	ErrHashMismatch = errors.New("document hash mismatch")
)

type TxType int8

const (
	TxType_DIDCreate TxType = iota + 1
	TxType_DIDUpdate
	TxType_DIDDelete
)

// Operation is the ledger message operation name
func (t TxType) Operation() string {
	switch t {
	case TxType_DIDCreate:
		return "create"
	case TxType_DIDUpdate:
		return "update"
	case TxType_DIDDelete:
		return "delete"
	default:
		return ""
	}
}

func ParseOperation(op string) (TxType, error) {
	for _, t := range []TxType{TxType_DIDCreate, TxType_DIDUpdate, TxType_DIDDelete} {
		if t.Operation() == op {
			return t, nil
		}
	}

	return 0, errors.Wrapf(ErrUnknownType, "operation %q", op)
}

type TxID cid.Cid

type Tx struct {
	Version uint8       `msgpack:"v"`
	Ts      int64       `msgpack:"t"`
	Type    TxType      `msgpack:"T"`
	Data    interface{} `msgpack:"d,noinline"`
}

type rawTx struct {
	Version uint8              `msgpack:"v"`
	Ts      int64              `msgpack:"t"`
	Type    TxType             `msgpack:"T"`
	Data    msgpack.RawMessage `msgpack:"d"`
}

// DID is the payload of a DID operation. Document holds the public
// document JSON for create and update operations.
type DID struct {
	DID      string `msgpack:"i"`
	Topic    string `msgpack:"p,omitempty"`
	Document []byte `msgpack:"d,omitempty"`
	Hash     string `msgpack:"h,omitempty"`
}

// NewDIDTx wraps a document operation
func NewDIDTx(typ TxType, doc *w3cdid.Document, ts time.Time) (*Tx, error) {
	if typ.Operation() == "" {
		return nil, ErrUnknownType
	}
	if doc == nil {
		return nil, errors.New("no document")
	}

	d := &DID{DID: doc.ID()}

	if topic, ok := doc.TopicID(); ok {
		d.Topic = topic.String()
	}

	if typ != TxType_DIDDelete {
		b, err := doc.MarshalJSON()
		if err != nil {
			return nil, errors.Wrap(err, "serialising document")
		}

		h, err := doc.CredentialHash()
		if err != nil {
			return nil, err
		}

		d.Document = b
		d.Hash = h
	}

	return &Tx{
		Version: Version1,
		Ts:      ts.Unix(),
		Type:    typ,
		Data:    d,
	}, nil
}

// ParseDocument decodes the carried document, checking it still hashes to
// the recorded credential hash
func (d *DID) ParseDocument() (*w3cdid.Document, error) {
	if len(d.Document) == 0 {
		return nil, errors.Errorf("%s: no document", d.DID)
	}

	doc, err := w3cdid.ParseDocument(d.Document)
	if err != nil {
		return nil, errors.Wrap(err, "parsing document")
	}

	if d.Hash != "" {
		h, err := doc.CredentialHash()
		if err != nil {
			return nil, err
		}

		if h != d.Hash {
			return nil, errors.Wrapf(ErrHashMismatch, "%s: expected %s got %s", d.DID, d.Hash, h)
		}
	}

	return doc, nil
}

func (t *Tx) DID() (*DID, bool) {
	d, ok := t.Data.(*DID)
	return d, ok
}

func (t *Tx) Marshal() ([]byte, error) {
	b, err := msgpack.Marshal(t)
	if err != nil {
		return nil, errors.Wrap(err, "mashaling tx")
	}

	return b, nil
}

func (t *Tx) Unmarshal(b []byte) error {
	raw := &rawTx{}
	if err := msgpack.Unmarshal(b, raw); err != nil {
		return err
	}

	t.Version = raw.Version
	t.Ts = raw.Ts
	t.Type = raw.Type

	switch t.Type {
	case TxType_DIDCreate, TxType_DIDUpdate, TxType_DIDDelete:
		d := &DID{}
		if err := msgpack.Unmarshal(raw.Data, d); err != nil {
			return errors.Wrap(err, "unmarshalling did data")
		}
		t.Data = d
	default:
		return ErrUnknownType
	}

	return nil
}
