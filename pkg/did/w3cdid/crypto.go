package w3cdid

import (
	"github.com/pkg/errors"
	"github.com/tcfw/didanchor/internal/utils/logging"
	"github.com/tcfw/didanchor/pkg/did/w3cdid/cryptography"
)

var (
	ErrNoValidSignatures = errors.New("no valid signatures")
)

// Signed checks if the signature provided was signed
// by a verification method in the Document
func (d *Document) Signed(signature []byte, msg []byte) error {
	if len(d.verificationMethod) == 0 {
		return errors.New("no verification method specified")
	}

	for _, vm := range d.verificationMethod {
		validator, ok := cryptography.Validator(vm.Type())
		if !ok {
			logging.Entry().Debugf("unsupported verification type: %s", vm.Type())
			continue
		}

		pub, err := vm.PublicKeyBytes()
		if err != nil {
			logging.Entry().WithField("id", vm.ID()).WithError(err).Debug("decoding public key")
			continue
		}

		ok, err = validator(pub, signature, msg)
		if err != nil {
			logging.Entry().WithField("type", vm.Type()).WithError(err).Debug("validating signature")
			continue
		}

		if ok {
			return nil
		}
	}

	return ErrNoValidSignatures
}
