package w3cdid

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

var (
	_ json.Marshaler = (*Object)(nil)
)

// Object is a JSON object that keeps the order keys were set in. Documents
// are projected into Objects so their serialised form, and therefore their
// credential hash, does not depend on map iteration.
type Object struct {
	keys   []string
	values map[string]interface{}
}

func NewObject() *Object {
	return &Object{values: map[string]interface{}{}}
}

// Set adds or replaces k. Replacing keeps the original position.
func (o *Object) Set(k string, v interface{}) *Object {
	if _, ok := o.values[k]; !ok {
		o.keys = append(o.keys, k)
	}
	o.values[k] = v

	return o
}

func (o *Object) Get(k string) (interface{}, bool) {
	v, ok := o.values[k]
	return v, ok
}

func (o *Object) Keys() []string {
	k := make([]string, len(o.keys))
	copy(k, o.keys)
	return k
}

func (o *Object) Len() int {
	return len(o.keys)
}

// Map converts o, and any nested Objects, into plain maps
func (o *Object) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(o.keys))
	for _, k := range o.keys {
		m[k] = plain(o.values[k])
	}

	return m
}

func plain(v interface{}) interface{} {
	switch t := v.(type) {
	case *Object:
		return t.Map()
	case []*Object:
		l := make([]interface{}, len(t))
		for i, e := range t {
			l[i] = e.Map()
		}
		return l
	case []interface{}:
		l := make([]interface{}, len(t))
		for i, e := range t {
			l[i] = plain(e)
		}
		return l
	default:
		return v
	}
}

// cloneValue deep copies decoded JSON maps and lists
func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, e := range t {
			m[k] = cloneValue(e)
		}
		return m
	case []interface{}:
		l := make([]interface{}, len(t))
		for i, e := range t {
			l[i] = cloneValue(e)
		}
		return l
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}

func (o *Object) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte('{')

	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		kb, err := encodeJSON(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')

		vb, err := encodeJSON(o.values[k])
		if err != nil {
			return nil, errors.Wrapf(err, "encoding %s", k)
		}
		buf.Write(vb)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// encodeJSON marshals without HTML escaping or a trailing newline
func encodeJSON(v interface{}) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
