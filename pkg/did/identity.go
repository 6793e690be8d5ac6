package did

import "github.com/tcfw/didanchor/pkg/did/w3cdid"

// Identity is the private key material held for a locally minted DID
type Identity struct {
	DID  string
	Keys []w3cdid.PrivateKey
}

// NewIdentity collects the private keys of doc
func NewIdentity(doc *w3cdid.Document) *Identity {
	return &Identity{DID: doc.ID(), Keys: doc.PrivateKeys()}
}

// Apply attaches the identity's keys to the matching methods of doc
func (i *Identity) Apply(doc *w3cdid.Document) error {
	for _, k := range i.Keys {
		if err := doc.SetPrivateKey(k.ID, k.Key); err != nil {
			return err
		}
	}

	return nil
}
