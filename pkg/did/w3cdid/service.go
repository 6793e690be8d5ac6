package w3cdid

import "github.com/pkg/errors"

const (
	jsonldID              = "id"
	jsonldType            = "type"
	jsonldServiceEndpoint = "serviceEndpoint"
)

// Service is a service endpoint record. ServiceEndpoint is passed through
// untouched and may be a string, a list of strings, an object or a list of
// objects.
type Service struct {
	ID              string
	Type            string
	ServiceEndpoint interface{}
}

func ParseService(raw interface{}) (*Service, error) {
	m, ok := asMap(raw)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidDocumentFormat, "service of type %T", raw)
	}

	id, _ := m[jsonldID].(string)
	typ, _ := m[jsonldType].(string)
	if id == "" || typ == "" {
		return nil, errors.Wrap(ErrInvalidDocumentFormat, "service requires id and type")
	}

	s := &Service{ID: id, Type: typ}

	switch ep := m[jsonldServiceEndpoint].(type) {
	case nil:
	case string, []string, []interface{}, map[string]interface{}:
		s.ServiceEndpoint = cloneValue(ep)
	case *Object:
		s.ServiceEndpoint = ep.Map()
	default:
		return nil, errors.Wrapf(ErrInvalidDocumentFormat, "serviceEndpoint of type %T", ep)
	}

	return s, nil
}

func (s *Service) ToObject() *Object {
	o := NewObject().
		Set(jsonldID, s.ID).
		Set(jsonldType, s.Type)

	if s.ServiceEndpoint != nil {
		o.Set(jsonldServiceEndpoint, s.ServiceEndpoint)
	}

	return o
}

// asMap accepts decoded JSON objects and projected Objects
func asMap(raw interface{}) (map[string]interface{}, bool) {
	switch t := raw.(type) {
	case map[string]interface{}:
		return t, t != nil
	case *Object:
		if t == nil {
			return nil, false
		}
		return t.Map(), true
	default:
		return nil, false
	}
}
