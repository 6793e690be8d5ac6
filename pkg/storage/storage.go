package storage

import (
	"context"

	"github.com/ipfs/go-cid"
	"github.com/tcfw/didanchor/pkg/did/w3cdid"
	"github.com/tcfw/didanchor/pkg/tx"
)

const (
	CIDEncoding = cid.Raw
)

// DocumentStore keeps the latest version of each DID document along with
// the operations that produced it. Documents are stored in their public
// form only.
type DocumentStore interface {
	// Put creates or updates the document and returns the id of the
	// recorded operation
	Put(context.Context, *w3cdid.Document) (cid.Cid, error)

	// Apply records an operation received from a consensus topic
	Apply(context.Context, *tx.Tx) (cid.Cid, error)

	Get(context.Context, string) (*w3cdid.Document, error)
	Exists(context.Context, string) (bool, error)

	// History lists the operations applied to a DID, oldest first
	History(context.Context, string) ([]*tx.Tx, error)

	// ByTopic lists the live DIDs anchored to a topic
	ByTopic(context.Context, w3cdid.TopicID) ([]string, error)

	Delete(context.Context, string) error

	Close() error
}
