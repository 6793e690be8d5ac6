package w3cdid

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/tcfw/didanchor/pkg/hashing"
)

const (
	DefaultLedgerMethod = "hedera"

	legacyTopicParam = "tid"
)

// Hedera is the ledger method used by the package level helpers
var Hedera = NewLedgerMethod(DefaultLedgerMethod)

// LedgerMethod parses and mints DIDs anchored to a consensus topic under
// a single method name
type LedgerMethod struct {
	name string
}

func NewLedgerMethod(name string) LedgerMethod {
	return LedgerMethod{name: name}
}

func (m LedgerMethod) Name() string {
	return m.name
}

// LedgerDID is did:<method>:<network>:<fingerprint>[_<topic>]
type LedgerDID struct {
	method     string
	network    string
	identifier string
	topic      *TopicID
}

// Implements is a cheap structural test of the prefix and method name. It
// never fails, malformed input reports false.
func (m LedgerMethod) Implements(s string) bool {
	return m.name != "" && strings.HasPrefix(s, Prefix+MethodSeparator+m.name+MethodSeparator)
}

// New builds a ledger DID from already derived parts
func (m LedgerMethod) New(network, identifier string, topic *TopicID) (*LedgerDID, error) {
	if network == "" || identifier == "" {
		return nil, errors.Wrap(ErrMalformedDid, "network and identifier are required")
	}

	if strings.ContainsAny(network, MethodSeparator+TopicSeparator+ParamSeparator) ||
		strings.ContainsAny(identifier, MethodSeparator+TopicSeparator+ParamSeparator) {
		return nil, errors.Wrapf(ErrMalformedDid, "reserved separator in %q or %q", network, identifier)
	}

	d := &LedgerDID{method: m.name, network: network, identifier: identifier}
	if topic != nil {
		t := *topic
		d.topic = &t
	}

	return d, nil
}

// Generate mints a DID for publicKey. The fingerprint is always
// base58(sha256(publicKey)).
func (m LedgerMethod) Generate(network string, publicKey []byte, topic *TopicID) (*LedgerDID, error) {
	if len(publicKey) == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "empty public key")
	}
	if network == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "empty network")
	}

	return m.New(network, hashing.Fingerprint(publicKey), topic)
}

// Parse reads both the current form and the legacy parameter form
func (m LedgerMethod) Parse(s string) (*LedgerDID, error) {
	if s == "" {
		return nil, errors.Wrap(ErrMalformedDid, "empty did")
	}

	if strings.Contains(s, ParamSeparator) {
		return m.parseLegacy(s)
	}

	seg := strings.Split(s, TopicSeparator)
	if len(seg) > 2 {
		return nil, errors.Wrapf(ErrMalformedDid, "%q: more than one topic separator", s)
	}

	network, identifier, err := m.parseBase(seg[0])
	if err != nil {
		return nil, err
	}

	var topic *TopicID
	if len(seg) == 2 {
		t, err := ParseTopicID(seg[1])
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedDid, "%q: %s", s, err)
		}
		topic = &t
	}

	return m.New(network, identifier, topic)
}

func (m LedgerMethod) parseBase(s string) (string, string, error) {
	p := strings.Split(s, MethodSeparator)
	if len(p) != 4 {
		return "", "", errors.Wrapf(ErrMalformedDid, "%q: expected 4 parts, got %d", s, len(p))
	}

	if p[0] != Prefix {
		return "", "", errors.Wrapf(ErrMalformedDid, "%q: missing did prefix", s)
	}

	if p[1] != m.name {
		return "", "", errors.Wrapf(ErrMalformedDid, "%q: method is not %s", s, m.name)
	}

	return p[2], p[3], nil
}

// parseLegacy handles did:<method>:<network>:<fingerprint>;<ns>:<network>:tid=<topic>
func (m LedgerMethod) parseLegacy(s string) (*LedgerDID, error) {
	seg := strings.Split(s, ParamSeparator)

	network, identifier, err := m.parseBase(seg[0])
	if err != nil {
		return nil, err
	}

	var topic *TopicID

	for _, param := range seg[1:] {
		parts := strings.Split(param, MethodSeparator)
		kv := strings.SplitN(parts[len(parts)-1], "=", 2)
		if len(kv) != 2 || kv[0] == "" {
			return nil, errors.Wrapf(ErrMalformedDid, "%q: unparsable parameter %q", s, param)
		}

		if kv[0] != legacyTopicParam {
			continue
		}

		if topic != nil {
			return nil, errors.Wrapf(ErrMalformedDid, "%q: duplicate %s parameter", s, legacyTopicParam)
		}

		t, err := ParseTopicID(kv[1])
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedDid, "%q: %s", s, err)
		}
		topic = &t
	}

	return m.New(network, identifier, topic)
}

// ParseDID parses s as a ledger DID of this method when it implements it,
// otherwise as a generic DID
func (m LedgerMethod) ParseDID(s string) (DID, error) {
	if m.Implements(s) {
		return m.Parse(s)
	}

	return ParseGeneric(s)
}

func ParseLedgerDID(s string) (*LedgerDID, error) {
	return Hedera.Parse(s)
}

func ImplementsLedger(s string) bool {
	return Hedera.Implements(s)
}

func ParseDID(s string) (DID, error) {
	return Hedera.ParseDID(s)
}

func (d *LedgerDID) Prefix() string { return Prefix }
func (d *LedgerDID) Method() string { return d.method }

// Identifier is the key fingerprint
func (d *LedgerDID) Identifier() string { return d.identifier }
func (d *LedgerDID) Network() string    { return d.network }

func (d *LedgerDID) TopicID() (TopicID, bool) {
	if d.topic == nil {
		return TopicID{}, false
	}

	return *d.topic, true
}

// WithTopic returns a copy of d anchored to topic
func (d *LedgerDID) WithTopic(topic TopicID) *LedgerDID {
	c := *d
	c.topic = &topic
	return &c
}

// Base is the DID without the topic suffix
func (d *LedgerDID) Base() string {
	return strings.Join([]string{Prefix, d.method, d.network, d.identifier}, MethodSeparator)
}

// String builds the current textual form. It never re-derives the fingerprint.
func (d *LedgerDID) String() string {
	if d.topic == nil {
		return d.Base()
	}

	return d.Base() + TopicSeparator + d.topic.String()
}

// LegacyString builds the parameter form older identifiers were issued in
func (d *LedgerDID) LegacyString() string {
	if d.topic == nil {
		return d.Base()
	}

	return d.Base() + ParamSeparator + d.method + MethodSeparator + d.network + MethodSeparator +
		legacyTopicParam + "=" + d.topic.String()
}

func (d *LedgerDID) Equal(o *LedgerDID) bool {
	if d == nil || o == nil {
		return d == o
	}

	return d.String() == o.String()
}

func (d *LedgerDID) isDID() {}
