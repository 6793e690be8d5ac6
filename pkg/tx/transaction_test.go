package tx

import (
	"context"
	"crypto/ed25519"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tcfw/didanchor/pkg/did/w3cdid"
	"github.com/tcfw/didanchor/pkg/hashing"
)

func testDocument(t *testing.T) *w3cdid.Document {
	t.Helper()

	seed := make([]byte, ed25519.SeedSize)
	seed[0] = 1

	doc, err := w3cdid.Generate(context.Background(), "testnet", ed25519.NewKeyFromSeed(seed), &w3cdid.TopicID{Num: 42})
	if err != nil {
		t.Fatal(err)
	}

	return doc
}

func TestMarshal(t *testing.T) {
	tx, err := NewDIDTx(TxType_DIDCreate, testDocument(t), time.Now())
	if err != nil {
		t.Fatal(err)
	}

	b, err := tx.Marshal()
	if err != nil {
		t.Fatal(err)
	}

	txRB := &Tx{}

	if err := txRB.Unmarshal(b); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, tx, txRB)
}

func TestUnmarshalUnknownType(t *testing.T) {
	b, err := (&Tx{Version: Version1, Type: 99, Data: &DID{DID: "did:example:1"}}).Marshal()
	require.NoError(t, err)

	assert.ErrorIs(t, (&Tx{}).Unmarshal(b), ErrUnknownType)
}

func TestNewDIDTx(t *testing.T) {
	doc := testDocument(t)

	create, err := NewDIDTx(TxType_DIDCreate, doc, time.Unix(100, 0))
	require.NoError(t, err)

	d, ok := create.DID()
	require.True(t, ok)
	assert.Equal(t, doc.ID(), d.DID)
	assert.Equal(t, "0.0.42", d.Topic)
	assert.NotContains(t, string(d.Document), "privateKey")

	h, err := doc.CredentialHash()
	require.NoError(t, err)
	assert.Equal(t, h, d.Hash)

	again, err := d.ParseDocument()
	require.NoError(t, err)
	assert.Equal(t, doc.ID(), again.ID())

	del, err := NewDIDTx(TxType_DIDDelete, doc, time.Unix(100, 0))
	require.NoError(t, err)
	d, _ = del.DID()
	assert.Empty(t, d.Document)
	assert.Empty(t, d.Hash)

	_, err = NewDIDTx(0, doc, time.Now())
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestParseDocumentHashMismatch(t *testing.T) {
	tx, err := NewDIDTx(TxType_DIDUpdate, testDocument(t), time.Now())
	require.NoError(t, err)

	d, _ := tx.DID()
	d.Hash = hashing.Fingerprint([]byte("other"))

	_, err = d.ParseDocument()
	assert.ErrorIs(t, err, ErrHashMismatch)
}

func TestMessage(t *testing.T) {
	doc := testDocument(t)
	ts := time.Unix(1660000000, 0).UTC()

	m, err := NewMessage(TxType_DIDCreate, doc, ts)
	require.NoError(t, err)

	assert.Equal(t, "create", m.Operation)
	assert.Equal(t, doc.ID(), m.DID)
	assert.Equal(t, ts, m.Timestamp)

	pub, err := doc.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, hashing.Base64Encode(pub), m.Event)

	b, err := m.Marshal()
	require.NoError(t, err)

	m2, err := ParseMessage(b)
	require.NoError(t, err)
	assert.Equal(t, m, m2)

	again, err := m2.Document()
	require.NoError(t, err)

	h1, _ := doc.CredentialHash()
	h2, _ := again.CredentialHash()
	assert.Equal(t, h1, h2)

	tx, err := m2.Tx()
	require.NoError(t, err)
	d, _ := tx.DID()
	assert.Equal(t, "0.0.42", d.Topic)
	assert.Equal(t, ts.Unix(), tx.Ts)
}

func TestParseMessageInvalid(t *testing.T) {
	_, err := ParseMessage([]byte(`{"operation":"rename","did":"did:example:1"}`))
	assert.ErrorIs(t, err, ErrUnknownType)

	_, err = ParseMessage([]byte(`{`))
	assert.Error(t, err)

	m := &Message{Operation: "update", DID: "did:example:1", Event: "!!"}
	_, err = m.Document()
	assert.Error(t, err)
}

func TestOperation(t *testing.T) {
	for _, typ := range []TxType{TxType_DIDCreate, TxType_DIDUpdate, TxType_DIDDelete} {
		op, err := ParseOperation(typ.Operation())
		require.NoError(t, err)
		assert.Equal(t, typ, op)
	}

	assert.Equal(t, "", TxType(0).Operation())
}
