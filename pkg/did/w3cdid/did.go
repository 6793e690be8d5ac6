package w3cdid

import (
	"strings"

	"github.com/pkg/errors"
)

const (
	Prefix = "did"

	MethodSeparator = ":"
	TopicSeparator  = "_"
	ParamSeparator  = ";"
)

// DID is either a *GenericDID or a *LedgerDID
type DID interface {
	Prefix() string
	Method() string
	Identifier() string
	String() string

	isDID()
}

var (
	_ DID = (*GenericDID)(nil)
	_ DID = (*LedgerDID)(nil)
)

// GenericDID is a did:<method>:<identifier> of any method. The identifier
// may itself contain the method separator.
type GenericDID struct {
	method     string
	identifier string
}

func NewGenericDID(method, identifier string) (*GenericDID, error) {
	if method == "" || identifier == "" || strings.Contains(method, MethodSeparator) {
		return nil, errors.Wrapf(ErrMalformedDid, "method %q identifier %q", method, identifier)
	}

	return &GenericDID{method: method, identifier: identifier}, nil
}

// ImplementsGeneric reports whether s carries the did prefix and a method
func ImplementsGeneric(s string) bool {
	p := strings.SplitN(s, MethodSeparator, 3)
	return len(p) == 3 && p[0] == Prefix && p[1] != ""
}

func ParseGeneric(s string) (*GenericDID, error) {
	if s == "" {
		return nil, errors.Wrap(ErrMalformedDid, "empty did")
	}

	p := strings.Split(s, MethodSeparator)
	if len(p) < 3 {
		return nil, errors.Wrapf(ErrMalformedDid, "%q: expected at least 3 parts", s)
	}

	if p[0] != Prefix {
		return nil, errors.Wrapf(ErrMalformedDid, "%q: missing did prefix", s)
	}

	return NewGenericDID(p[1], strings.Join(p[2:], MethodSeparator))
}

func (d *GenericDID) Prefix() string     { return Prefix }
func (d *GenericDID) Method() string     { return d.method }
func (d *GenericDID) Identifier() string { return d.identifier }

func (d *GenericDID) String() string {
	return Prefix + MethodSeparator + d.method + MethodSeparator + d.identifier
}

func (d *GenericDID) isDID() {}
