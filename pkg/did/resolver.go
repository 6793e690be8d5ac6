package did

import (
	"context"

	"github.com/tcfw/didanchor/pkg/did/w3cdid"
)

// Resolver allows for a DID to be resolved agnostically any given source
type Resolver interface {
	Resolve(ctx context.Context, did string) (*w3cdid.Document, error)
	ResolveMethod(ctx context.Context, did w3cdid.URL) (*w3cdid.VerificationMethod, error)
}
