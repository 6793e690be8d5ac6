package did

import (
	"github.com/pkg/errors"
	"github.com/tcfw/didanchor/pkg/did/w3cdid"
)

var (
	ErrIdentityNotFound = errors.New("identity not found")
	ErrNoPrivateKeys    = errors.New("document has no private keys")
)

type IdentityStore interface {
	Add(*w3cdid.Document) error
	Find(did string) (*Identity, error)
	List() ([]*Identity, error)
}
