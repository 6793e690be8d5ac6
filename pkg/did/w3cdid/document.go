package w3cdid

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/tcfw/didanchor/pkg/did/w3cdid/cryptography"
	"github.com/tcfw/didanchor/pkg/hashing"
)

const (
	jsonldContext     = "@context"
	jsonldAlsoKnownAs = "alsoKnownAs"
	jsonldService     = "service"
)

type DocumentKind uint8

const (
	GenericDocument DocumentKind = iota
	LedgerDocument
)

// Document is a DID document. The subject is either a generic DID or a
// ledger anchored one; the relationship collections other than
// verificationMethod may mix inline methods and links.
type Document struct {
	context *Context
	did     DID

	alsoKnownAs    []string
	controller     []string
	controllerList bool

	verificationMethod []*VerificationMethod
	relationships      map[Relationship][]RelationshipEntry
	service            []*Service
}

// NewDocument creates an empty document for did with the default context
func NewDocument(did DID) (*Document, error) {
	if did == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "nil did")
	}

	return &Document{
		context:       NewContext(DefaultContext),
		did:           did,
		relationships: map[Relationship][]RelationshipEntry{},
	}, nil
}

// FromObject parses a document from a decoded JSON object
func FromObject(raw interface{}) (*Document, error) {
	return Hedera.FromObject(raw)
}

// ParseDocument parses document JSON text
func ParseDocument(b []byte) (*Document, error) {
	return Hedera.ParseDocument(b)
}

func (m LedgerMethod) ParseDocument(b []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(ErrInvalidDocumentFormat, err.Error())
	}

	return m.FromObject(raw)
}

// FromObject parses a document whose subject is ledger anchored when it
// implements m and generic otherwise
func (m LedgerMethod) FromObject(raw interface{}) (*Document, error) {
	obj, ok := asMap(raw)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidDocumentFormat, "document of type %T", raw)
	}

	id, ok := obj[jsonldID].(string)
	if !ok || id == "" {
		return nil, errors.Wrap(ErrInvalidDocumentFormat, "id must be text")
	}

	did, err := m.ParseDID(id)
	if err != nil {
		return nil, err
	}

	d := &Document{
		did:           did,
		relationships: map[Relationship][]RelationshipEntry{},
	}

	if d.context, err = parseContext(obj[jsonldContext]); err != nil {
		return nil, err
	}

	switch aka := obj[jsonldAlsoKnownAs].(type) {
	case nil:
	case string:
		d.alsoKnownAs = []string{aka}
	case []string:
		d.alsoKnownAs = append([]string{}, aka...)
	case []interface{}:
		if d.alsoKnownAs, err = textList(jsonldAlsoKnownAs, aka); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Wrapf(ErrInvalidDocumentFormat, "%s of type %T", jsonldAlsoKnownAs, aka)
	}

	switch c := obj[jsonldController].(type) {
	case nil:
	case string:
		d.controller = []string{c}
	case []string:
		d.controller = append([]string{}, c...)
		d.controllerList = true
	case []interface{}:
		if d.controller, err = textList(jsonldController, c); err != nil {
			return nil, err
		}
		d.controllerList = true
	default:
		return nil, errors.Wrapf(ErrInvalidDocumentFormat, "%s of type %T", jsonldController, c)
	}

	if raw, ok := obj[string(VerificationMethodProperty)]; ok && raw != nil {
		entries, err := parseEntries(VerificationMethodProperty, raw, inlineOnly)
		if err != nil {
			return nil, err
		}

		d.verificationMethod = make([]*VerificationMethod, 0, len(entries))
		for _, e := range entries {
			d.verificationMethod = append(d.verificationMethod, e.Method())
		}
	}

	for _, rel := range Relationships {
		raw, ok := obj[string(rel)]
		if !ok || raw == nil {
			continue
		}

		entries, err := parseEntries(rel, raw, linksAllowed)
		if err != nil {
			return nil, err
		}
		d.relationships[rel] = entries
	}

	if raw, ok := obj[jsonldService]; ok && raw != nil {
		items, ok := raw.([]interface{})
		if !ok {
			return nil, errors.Wrapf(ErrInvalidDocumentFormat, "service of type %T", raw)
		}

		d.service = make([]*Service, 0, len(items))
		for _, item := range items {
			s, err := ParseService(item)
			if err != nil {
				return nil, err
			}
			d.service = append(d.service, s)
		}
	}

	return d, nil
}

func textList(field string, l []interface{}) ([]string, error) {
	s := make([]string, 0, len(l))
	for _, e := range l {
		t, ok := e.(string)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidDocumentFormat, "%s entry of type %T", field, e)
		}
		s = append(s, t)
	}
	return s, nil
}

func (d *Document) DID() DID {
	return d.did
}

func (d *Document) ID() string {
	return d.did.String()
}

func (d *Document) Kind() DocumentKind {
	if _, ok := d.did.(*LedgerDID); ok {
		return LedgerDocument
	}
	return GenericDocument
}

// LedgerDID returns the subject when the document is ledger anchored
func (d *Document) LedgerDID() (*LedgerDID, bool) {
	l, ok := d.did.(*LedgerDID)
	return l, ok
}

// TopicID is the consensus topic the document is anchored to
func (d *Document) TopicID() (TopicID, bool) {
	l, ok := d.LedgerDID()
	if !ok {
		return TopicID{}, false
	}
	return l.TopicID()
}

func (d *Document) Context() *Context {
	return NewContext(d.context.Items()...)
}

func (d *Document) AddContext(uri string) {
	if d.context == nil {
		d.context = NewContext()
	}
	d.context.Add(uri)
}

func (d *Document) AlsoKnownAs() []string {
	return append([]string(nil), d.alsoKnownAs...)
}

func (d *Document) SetAlsoKnownAs(ids ...string) {
	d.alsoKnownAs = append([]string{}, ids...)
}

func (d *Document) Controller() []string {
	return append([]string(nil), d.controller...)
}

// SetController sets the controllers. A single controller serialises as a
// bare string.
func (d *Document) SetController(ids ...string) {
	d.controller = append([]string{}, ids...)
	d.controllerList = len(ids) > 1
}

func (d *Document) VerificationMethods() []*VerificationMethod {
	return append([]*VerificationMethod(nil), d.verificationMethod...)
}

func (d *Document) AddVerificationMethod(vm *VerificationMethod) error {
	if vm == nil {
		return errors.Wrap(ErrInvalidArgument, "nil verification method")
	}

	for _, e := range d.verificationMethod {
		if e.ID() == vm.ID() {
			return errors.Wrapf(ErrInvalidArgument, "duplicate verification method %s", vm.ID())
		}
	}

	d.verificationMethod = append(d.verificationMethod, vm)
	return nil
}

// Relationship returns the entries of rel, nil when it is absent
func (d *Document) Relationship(rel Relationship) []RelationshipEntry {
	if rel == VerificationMethodProperty {
		if d.verificationMethod == nil {
			return nil
		}

		l := make([]RelationshipEntry, len(d.verificationMethod))
		for i, vm := range d.verificationMethod {
			l[i] = Inline(vm)
		}
		return l
	}

	e, ok := d.relationships[rel]
	if !ok {
		return nil
	}
	return append([]RelationshipEntry{}, e...)
}

// AddRelationship appends an entry to one of the five relationship
// collections. Use AddVerificationMethod for verificationMethod.
func (d *Document) AddRelationship(rel Relationship, e RelationshipEntry) error {
	if !isRelationship(rel) {
		return errors.Wrapf(ErrInvalidArgument, "unknown relationship %s", rel)
	}

	if e.ID() == "" {
		return errors.Wrapf(ErrInvalidArgument, "%s: empty entry", rel)
	}

	d.relationships[rel] = append(d.relationships[rel], e)
	return nil
}

func isRelationship(rel Relationship) bool {
	for _, r := range Relationships {
		if r == rel {
			return true
		}
	}
	return false
}

func (d *Document) Services() []*Service {
	return append([]*Service(nil), d.service...)
}

func (d *Document) AddService(s *Service) error {
	if s == nil || s.ID == "" || s.Type == "" {
		return errors.Wrap(ErrInvalidArgument, "service requires id and type")
	}

	d.service = append(d.service, s)
	return nil
}

// MethodByType returns the first verification method of type t
func (d *Document) MethodByType(t cryptography.VerificationMethodType) *VerificationMethod {
	for _, vm := range d.verificationMethod {
		if vm.Type() == t {
			return vm
		}
	}
	return nil
}

// MethodByName returns the first verification method whose name or id
// matches name
func (d *Document) MethodByName(name string) *VerificationMethod {
	for _, vm := range d.verificationMethod {
		if vm.Name() == name || vm.ID() == name {
			return vm
		}
	}
	return nil
}

// SetPrivateKey attaches key to the verification method with id. An
// unknown id is a no-op.
func (d *Document) SetPrivateKey(id string, key interface{}) error {
	for _, vm := range d.verificationMethod {
		if vm.ID() == id {
			return vm.SetPrivateKey(key)
		}
	}

	return nil
}

func (d *Document) PrivateKeys() []PrivateKey {
	var keys []PrivateKey

	for _, vm := range d.verificationMethod {
		if !vm.HasPrivateKey() {
			continue
		}

		keys = append(keys, PrivateKey{ID: vm.ID(), Type: vm.Type(), Key: vm.PrivateKey()})
	}

	return keys
}

// ToObject projects the document in a fixed field order
func (d *Document) ToObject(includePrivate bool) *Object {
	o := NewObject()

	if d.context.Len() > 0 {
		o.Set(jsonldContext, d.context.Value())
	}

	o.Set(jsonldID, d.ID())

	if d.alsoKnownAs != nil {
		o.Set(jsonldAlsoKnownAs, d.AlsoKnownAs())
	}

	if d.controller != nil {
		if d.controllerList || len(d.controller) != 1 {
			o.Set(jsonldController, d.Controller())
		} else {
			o.Set(jsonldController, d.controller[0])
		}
	}

	if d.verificationMethod != nil {
		l := make([]interface{}, len(d.verificationMethod))
		for i, vm := range d.verificationMethod {
			l[i] = vm.ToObject(includePrivate)
		}
		o.Set(string(VerificationMethodProperty), l)
	}

	for _, rel := range Relationships {
		entries, ok := d.relationships[rel]
		if !ok {
			continue
		}

		l := make([]interface{}, len(entries))
		for i, e := range entries {
			l[i] = e.value(includePrivate)
		}
		o.Set(string(rel), l)
	}

	if d.service != nil {
		l := make([]interface{}, len(d.service))
		for i, s := range d.service {
			l[i] = s.ToObject()
		}
		o.Set(jsonldService, l)
	}

	return o
}

func (d *Document) PublicDocument() *Object {
	return d.ToObject(false)
}

func (d *Document) PrivateDocument() *Object {
	return d.ToObject(true)
}

// MarshalJSON serialises the public projection
func (d *Document) MarshalJSON() ([]byte, error) {
	return encodeJSON(d.PublicDocument())
}

func (d *Document) PrivateJSON() ([]byte, error) {
	return encodeJSON(d.PrivateDocument())
}

// CredentialHash is base58(sha256(public document JSON)), used to detect
// changes to what the network can see
func (d *Document) CredentialHash() (string, error) {
	b, err := d.MarshalJSON()
	if err != nil {
		return "", errors.Wrap(err, "serialising document")
	}

	return hashing.Fingerprint(b), nil
}
