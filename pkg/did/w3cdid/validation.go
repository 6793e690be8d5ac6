package w3cdid

import "github.com/pkg/errors"

// IsValid checks the document is internally consistent: every verification
// method id is unique and every link resolves to a declared method
func (d *Document) IsValid() error {
	if d.did == nil {
		return errors.Wrap(ErrInvalidDocumentFormat, "missing id")
	}

	ids := map[string]struct{}{}
	for _, vm := range d.verificationMethod {
		if _, ok := ids[vm.ID()]; ok {
			return errors.Wrapf(ErrInvalidDocumentFormat, "duplicate verification method %s", vm.ID())
		}
		ids[vm.ID()] = struct{}{}
	}

	for _, rel := range Relationships {
		for _, e := range d.relationships[rel] {
			if e.IsInline() {
				continue
			}

			id := e.Link()
			if URL(id).DID() == "" {
				id = d.ID() + id
			}

			if _, ok := ids[id]; !ok {
				return errors.Wrapf(ErrInvalidDocumentFormat, "%s references unknown method %s", rel, e.Link())
			}
		}
	}

	for _, s := range d.service {
		if s.ID == "" || s.Type == "" {
			return errors.Wrap(ErrInvalidDocumentFormat, "service requires id and type")
		}
	}

	return nil
}
