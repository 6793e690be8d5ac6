package storage

import (
	"context"
	"crypto/ed25519"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tcfw/didanchor/pkg/did/w3cdid"
	"github.com/tcfw/didanchor/pkg/tx"
)

func testDocument(t *testing.T, b byte, topic *w3cdid.TopicID) *w3cdid.Document {
	t.Helper()

	seed := make([]byte, ed25519.SeedSize)
	seed[0] = b

	doc, err := w3cdid.Generate(context.Background(), "testnet", ed25519.NewKeyFromSeed(seed), topic)
	if err != nil {
		t.Fatal(err)
	}

	return doc
}

func TestMemStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemStore()
	m.now = func() time.Time { return time.Unix(100, 0) }

	doc := testDocument(t, 1, &w3cdid.TopicID{Num: 7})

	id, err := m.Put(ctx, doc)
	if err != nil {
		t.Fatal(err)
	}
	assert.True(t, id.Defined())

	rb, err := m.Get(ctx, doc.ID())
	if err != nil {
		t.Fatal(err)
	}

	h1, _ := doc.CredentialHash()
	h2, _ := rb.CredentialHash()
	assert.Equal(t, h1, h2)
	assert.Empty(t, rb.PrivateKeys())

	exists, err := m.Exists(ctx, doc.ID())
	require.NoError(t, err)
	assert.True(t, exists)

	dids, err := m.ByTopic(ctx, w3cdid.TopicID{Num: 7})
	require.NoError(t, err)
	assert.Equal(t, []string{doc.ID()}, dids)

	require.NoError(t, doc.AddService(&w3cdid.Service{ID: doc.ID() + "#hub", Type: "Hub", ServiceEndpoint: "https://hub.example.com"}))
	_, err = m.Put(ctx, doc)
	require.NoError(t, err)

	rb, err = m.Get(ctx, doc.ID())
	require.NoError(t, err)
	assert.Len(t, rb.Services(), 1)

	require.NoError(t, m.Delete(ctx, doc.ID()))

	_, err = m.Get(ctx, doc.ID())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, m.Delete(ctx, doc.ID()), ErrNotFound)

	dids, err = m.ByTopic(ctx, w3cdid.TopicID{Num: 7})
	require.NoError(t, err)
	assert.Empty(t, dids)

	hist, err := m.History(ctx, doc.ID())
	require.NoError(t, err)
	if assert.Len(t, hist, 3) {
		assert.Equal(t, tx.TxType_DIDCreate, hist[0].Type)
		assert.Equal(t, tx.TxType_DIDUpdate, hist[1].Type)
		assert.Equal(t, tx.TxType_DIDDelete, hist[2].Type)
		assert.Equal(t, int64(100), hist[0].Ts)
	}
}

func TestMemStoreNotFound(t *testing.T) {
	ctx := context.Background()
	m := NewMemStore()

	_, err := m.Get(ctx, "did:hedera:testnet:abc")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.History(ctx, "did:hedera:testnet:abc")
	assert.ErrorIs(t, err, ErrNotFound)

	exists, err := m.Exists(ctx, "did:hedera:testnet:abc")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemStoreRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	m := NewMemStore()

	doc := testDocument(t, 2, nil)
	require.NoError(t, doc.AddRelationship(w3cdid.Authentication, w3cdid.Link("#missing")))

	_, err := m.Put(ctx, doc)
	assert.ErrorIs(t, err, ErrDIDInvalid)
}

func TestMemStoreApply(t *testing.T) {
	ctx := context.Background()
	m := NewMemStore()

	doc := testDocument(t, 3, nil)

	update, err := tx.NewDIDTx(tx.TxType_DIDUpdate, doc, time.Now())
	require.NoError(t, err)
	_, err = m.Apply(ctx, update)
	assert.ErrorIs(t, err, ErrNotFound)

	create, err := tx.NewDIDTx(tx.TxType_DIDCreate, doc, time.Now())
	require.NoError(t, err)
	_, err = m.Apply(ctx, create)
	require.NoError(t, err)

	_, err = m.Apply(ctx, create)
	assert.ErrorIs(t, err, ErrDIDAlreadyExists)

	d, _ := update.DID()
	d.Hash = "tampered"
	_, err = m.Apply(ctx, update)
	assert.ErrorIs(t, err, ErrHashMismatch)
}
