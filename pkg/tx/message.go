package tx

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/tcfw/didanchor/pkg/did/w3cdid"
	"github.com/tcfw/didanchor/pkg/hashing"
)

// Message is the JSON message published to a DID's consensus topic
type Message struct {
	Operation string    `json:"operation"`
	DID       string    `json:"did"`
	Event     string    `json:"event,omitempty"`
	Hash      string    `json:"hash,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewMessage(typ TxType, doc *w3cdid.Document, ts time.Time) (*Message, error) {
	t, err := NewDIDTx(typ, doc, ts)
	if err != nil {
		return nil, err
	}

	return t.Message()
}

// Message converts a DID operation to its topic message form
func (t *Tx) Message() (*Message, error) {
	d, ok := t.DID()
	if !ok {
		return nil, errors.Wrapf(ErrUnknownType, "%T", t.Data)
	}

	m := &Message{
		Operation: t.Type.Operation(),
		DID:       d.DID,
		Hash:      d.Hash,
		Timestamp: time.Unix(t.Ts, 0).UTC(),
	}

	if len(d.Document) != 0 {
		m.Event = hashing.Base64Encode(d.Document)
	}

	return m, nil
}

func ParseMessage(b []byte) (*Message, error) {
	m := &Message{}
	if err := json.Unmarshal(b, m); err != nil {
		return nil, errors.Wrap(err, "unmarshalling message")
	}

	if _, err := ParseOperation(m.Operation); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Message) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

// Tx converts the message back into a DID operation
func (m *Message) Tx() (*Tx, error) {
	typ, err := ParseOperation(m.Operation)
	if err != nil {
		return nil, err
	}

	d := &DID{DID: m.DID, Hash: m.Hash}

	if m.Event != "" {
		if d.Document, err = hashing.Base64Decode(m.Event); err != nil {
			return nil, errors.Wrap(err, "decoding event")
		}
	}

	if l, err := w3cdid.ParseLedgerDID(m.DID); err == nil {
		if topic, ok := l.TopicID(); ok {
			d.Topic = topic.String()
		}
	}

	return &Tx{Version: Version1, Ts: m.Timestamp.Unix(), Type: typ, Data: d}, nil
}

// Document decodes the event payload
func (m *Message) Document() (*w3cdid.Document, error) {
	t, err := m.Tx()
	if err != nil {
		return nil, err
	}

	d, _ := t.DID()
	return d.ParseDocument()
}
