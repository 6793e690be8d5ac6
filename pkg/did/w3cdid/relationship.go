package w3cdid

import "github.com/pkg/errors"

// Relationship names one of the verification relationship collections
type Relationship string

const (
	VerificationMethodProperty Relationship = "verificationMethod"
	Authentication             Relationship = "authentication"
	AssertionMethod            Relationship = "assertionMethod"
	KeyAgreement               Relationship = "keyAgreement"
	CapabilityInvocation       Relationship = "capabilityInvocation"
	CapabilityDelegation       Relationship = "capabilityDelegation"
)

// Relationships lists the collections that may hold inline methods or links
// in serialisation order
var Relationships = []Relationship{
	Authentication,
	AssertionMethod,
	KeyAgreement,
	CapabilityInvocation,
	CapabilityDelegation,
}

// RelationshipEntry is either an inline method or a link to a method
// declared elsewhere
type RelationshipEntry struct {
	method *VerificationMethod
	link   string
}

func Inline(vm *VerificationMethod) RelationshipEntry {
	return RelationshipEntry{method: vm}
}

func Link(id string) RelationshipEntry {
	return RelationshipEntry{link: id}
}

func (e RelationshipEntry) IsInline() bool {
	return e.method != nil
}

// Method is the inline method, nil for links
func (e RelationshipEntry) Method() *VerificationMethod {
	return e.method
}

// Link is the referenced method id, empty for inline entries
func (e RelationshipEntry) Link() string {
	return e.link
}

// ID is the id of the method the entry points to
func (e RelationshipEntry) ID() string {
	if e.method != nil {
		return e.method.ID()
	}
	return e.link
}

func (e RelationshipEntry) value(includePrivate bool) interface{} {
	if e.method != nil {
		return e.method.ToObject(includePrivate)
	}
	return e.link
}

type linkPolicy bool

const (
	inlineOnly   linkPolicy = false
	linksAllowed linkPolicy = true
)

// parseEntries converts a relationship array. Objects always parse as inline
// methods. Strings become links where links are allowed and are dropped
// otherwise.
func parseEntries(field Relationship, raw interface{}, policy linkPolicy) ([]RelationshipEntry, error) {
	var items []interface{}

	switch t := raw.(type) {
	case []interface{}:
		items = t
	case []string:
		items = make([]interface{}, len(t))
		for i, s := range t {
			items[i] = s
		}
	case []*Object:
		items = make([]interface{}, len(t))
		for i, o := range t {
			items[i] = o
		}
	default:
		return nil, errors.Wrapf(ErrInvalidDocumentFormat, "%s of type %T", field, raw)
	}

	entries := make([]RelationshipEntry, 0, len(items))

	for _, item := range items {
		switch t := item.(type) {
		case string:
			if policy == inlineOnly {
				continue
			}
			if t == "" {
				return nil, errors.Wrapf(ErrInvalidDocumentFormat, "%s: empty link", field)
			}
			entries = append(entries, Link(t))
		case map[string]interface{}, *Object:
			vm, err := ParseVerificationMethod(t)
			if err != nil {
				return nil, errors.Wrapf(err, "%s", field)
			}
			entries = append(entries, Inline(vm))
		default:
			return nil, errors.Wrapf(ErrInvalidDocumentFormat, "%s entry of type %T", field, item)
		}
	}

	return entries, nil
}
