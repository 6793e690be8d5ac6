package w3cdid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tcfw/didanchor/pkg/hashing"
)

const (
	testFingerprint = "9SJ1HnbT4Sm3Lx9QBtoTpDhh4ZjhvPAtTm4WjKfnZKq8"
)

func TestParseGeneric(t *testing.T) {
	tests := map[string]struct {
		method     string
		identifier string
	}{
		"did:example:1234":               {"example", "1234"},
		"did:example:1234:abc":           {"example", "1234:abc"},
		"did:web:example.com:user:alice": {"web", "example.com:user:alice"},
	}

	for in, test := range tests {
		t.Run(in, func(t *testing.T) {
			d, err := ParseGeneric(in)
			if assert.NoError(t, err) {
				assert.Equal(t, "did", d.Prefix())
				assert.Equal(t, test.method, d.Method())
				assert.Equal(t, test.identifier, d.Identifier())
				assert.Equal(t, in, d.String())
			}
		})
	}
}

func TestParseGenericMalformed(t *testing.T) {
	for _, in := range []string{"", "did", "did:example", "abc:example:1234", "did::1234", "did:example:"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseGeneric(in)
			assert.ErrorIs(t, err, ErrMalformedDid)
		})
	}
}

func TestImplements(t *testing.T) {
	assert.True(t, ImplementsGeneric("did:example:1234"))
	assert.False(t, ImplementsGeneric("did:example"))
	assert.False(t, ImplementsGeneric("foo:example:1234"))

	assert.True(t, ImplementsLedger("did:hedera:testnet:abc"))
	assert.True(t, ImplementsLedger("did:hedera:"))
	assert.False(t, ImplementsLedger("did:hederas:testnet:abc"))
	assert.False(t, ImplementsLedger("did:example:testnet:abc"))
	assert.False(t, ImplementsLedger(""))

	m := NewLedgerMethod("method")
	assert.True(t, m.Implements("did:method:mainnet:abc"))
	assert.False(t, NewLedgerMethod("").Implements("did::"))
}

func TestParseLedgerCurrent(t *testing.T) {
	m := NewLedgerMethod("method")
	in := "did:method:mainnet:" + testFingerprint + "_0.0.1234"

	d, err := m.Parse(in)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "did", d.Prefix())
	assert.Equal(t, "method", d.Method())
	assert.Equal(t, "mainnet", d.Network())
	assert.Equal(t, testFingerprint, d.Identifier())

	topic, ok := d.TopicID()
	assert.True(t, ok)
	assert.Equal(t, "0.0.1234", topic.String())

	assert.Equal(t, in, d.String())
}

func TestParseLedgerNoTopic(t *testing.T) {
	d, err := ParseLedgerDID("did:hedera:testnet:" + testFingerprint)
	if err != nil {
		t.Fatal(err)
	}

	_, ok := d.TopicID()
	assert.False(t, ok)
	assert.Equal(t, "did:hedera:testnet:"+testFingerprint, d.String())
	assert.Equal(t, d.String(), d.LegacyString())
}

func TestParseLedgerMalformed(t *testing.T) {
	tests := map[string]string{
		"empty":          "",
		"two topics":     "did:hedera:testnet:abc_0.0.1_0.0.2",
		"too few parts":  "did:hedera:abc_0.0.1",
		"too many parts": "did:hedera:testnet:extra:abc_0.0.1",
		"wrong method":   "did:other:testnet:abc_0.0.1",
		"wrong prefix":   "dod:hedera:testnet:abc_0.0.1",
		"bad topic":      "did:hedera:testnet:abc_0.0",
		"empty topic":    "did:hedera:testnet:abc_",
		"padded topic":   "did:hedera:mainnet:9SJKq8_0.0.01234",
		"empty network":  "did:hedera::abc_0.0.1",
		"legacy no kv":   "did:hedera:testnet:abc;hedera:testnet:tid",
		"legacy bad tid": "did:hedera:testnet:abc;hedera:testnet:tid=abc",
		"legacy dup tid": "did:hedera:testnet:abc;hedera:testnet:tid=0.0.1;hedera:testnet:tid=0.0.2",
		"legacy base":    "did:hedera:abc;hedera:testnet:tid=0.0.1",
	}

	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseLedgerDID(in)
			assert.ErrorIs(t, err, ErrMalformedDid)
		})
	}
}

func TestLegacyFormatEquivalence(t *testing.T) {
	current, err := ParseLedgerDID("did:hedera:testnet:" + testFingerprint + "_0.0.1234")
	if err != nil {
		t.Fatal(err)
	}

	legacy, err := ParseLedgerDID("did:hedera:testnet:" + testFingerprint + ";hedera:testnet:fid=0.0.99;hedera:testnet:tid=0.0.1234")
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, current.Network(), legacy.Network())
	assert.Equal(t, current.Identifier(), legacy.Identifier())
	ct, _ := current.TopicID()
	lt, _ := legacy.TopicID()
	assert.Equal(t, ct, lt)
	assert.True(t, current.Equal(legacy))

	again, err := ParseLedgerDID(current.LegacyString())
	if err != nil {
		t.Fatal(err)
	}
	assert.True(t, current.Equal(again))
}

func TestGenerateLedgerRoundTrip(t *testing.T) {
	pub := []byte("public key bytes")
	topic := TopicID{Shard: 0, Realm: 0, Num: 1234}

	d, err := Hedera.Generate("testnet", pub, &topic)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, hashing.Base58Encode(hashing.Sha256(pub)), d.Identifier())

	p, err := ParseLedgerDID(d.String())
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, d.Network(), p.Network())
	assert.Equal(t, d.Identifier(), p.Identifier())
	pt, ok := p.TopicID()
	assert.True(t, ok)
	assert.Equal(t, topic, pt)

	_, err = Hedera.Generate("testnet", nil, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Hedera.Generate("", pub, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestWithTopicCopies(t *testing.T) {
	d, err := Hedera.New("testnet", testFingerprint, nil)
	if err != nil {
		t.Fatal(err)
	}

	a := d.WithTopic(TopicID{Num: 5})
	_, ok := d.TopicID()
	assert.False(t, ok)
	assert.Equal(t, "did:hedera:testnet:"+testFingerprint+"_0.0.5", a.String())
}

func TestParseDIDVariants(t *testing.T) {
	d, err := ParseDID("did:hedera:testnet:" + testFingerprint + "_0.0.1")
	if assert.NoError(t, err) {
		_, ok := d.(*LedgerDID)
		assert.True(t, ok)
	}

	d, err = ParseDID("did:key:z6MkhaXgBZDvotDkL5257faiztiGiC2QtKLGpbnnEGta2doK")
	if assert.NoError(t, err) {
		_, ok := d.(*GenericDID)
		assert.True(t, ok)
		assert.Equal(t, "key", d.Method())
	}

	_, err = ParseDID("did:hedera:testnet")
	assert.ErrorIs(t, err, ErrMalformedDid)
}

func TestTopicID(t *testing.T) {
	tid, err := ParseTopicID("1.2.345")
	assert.NoError(t, err)
	assert.Equal(t, TopicID{Shard: 1, Realm: 2, Num: 345}, tid)
	assert.Equal(t, "1.2.345", tid.String())

	tid, err = ParseTopicID("0.0.0")
	assert.NoError(t, err)
	assert.Equal(t, "0.0.0", tid.String())

	for _, in := range []string{"", "1.2", "1.2.3.4", "a.b.c", "-1.0.0", "+1.0.0", "1..2", "0.0.01234", "00.0.1", " 1.0.0"} {
		_, err := ParseTopicID(in)
		assert.ErrorIs(t, err, ErrInvalidTopicID, in)
	}
}
