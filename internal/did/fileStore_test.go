package did

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tcfw/didanchor/pkg/did"
	"github.com/tcfw/didanchor/pkg/did/w3cdid"
)

func TestNewFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.yaml")

	f, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}

	_, sk, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	doc, err := w3cdid.Generate(context.Background(), "testnet", sk, nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := f.Add(doc); err != nil {
		t.Fatal(err)
	}

	rb, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}

	id, err := rb.Find(doc.ID())
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, doc.PrivateKeys(), id.Keys)

	public, err := w3cdid.ParseDocument(mustJSON(t, doc))
	if err != nil {
		t.Fatal(err)
	}
	assert.Empty(t, public.PrivateKeys())

	if err := rb.Apply(public); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, doc.PrivateKeys(), public.PrivateKeys())

	list, err := rb.List()
	if err != nil {
		t.Fatal(err)
	}
	assert.Len(t, list, 1)

	if err := rb.Add(doc); err != nil {
		t.Fatal(err)
	}
	list, _ = rb.List()
	assert.Len(t, list, 1)
}

func TestFileStoreErrors(t *testing.T) {
	f, err := NewFileStore(filepath.Join(t.TempDir(), "keys.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	_, err = f.Find("did:hedera:testnet:abc")
	assert.ErrorIs(t, err, did.ErrIdentityNotFound)

	_, sk, _ := ed25519.GenerateKey(rand.Reader)
	doc, err := w3cdid.Generate(context.Background(), "testnet", sk, nil, w3cdid.WithoutPrivateKeys())
	if err != nil {
		t.Fatal(err)
	}

	assert.ErrorIs(t, f.Add(doc), did.ErrNoPrivateKeys)
}

func mustJSON(t *testing.T, doc *w3cdid.Document) []byte {
	t.Helper()

	b, err := doc.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}

	return b
}
