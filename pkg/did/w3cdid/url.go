package w3cdid

import (
	"net/url"
	"strings"
)

// URL is a DID URL, a DID optionally followed by a path, query and fragment
type URL string

func (u URL) Scheme() string {
	return Prefix
}

func (u URL) Method() string {
	uri, _ := url.Parse(string(u))
	if uri == nil {
		return ""
	}
	p := strings.SplitN(uri.Opaque, MethodSeparator, 2)
	return p[0]
}

func (u URL) Id() string {
	uri, _ := url.Parse(string(u))
	if uri == nil {
		return ""
	}
	p := strings.SplitN(uri.Opaque, MethodSeparator, 2)
	if len(p) < 2 {
		return ""
	}

	return p[1]
}

func (u URL) Query() string {
	uri, _ := url.Parse(string(u))
	if uri == nil {
		return ""
	}
	return uri.RawQuery
}

func (u URL) Fragment() string {
	uri, _ := url.Parse(string(u))
	if uri == nil {
		return ""
	}
	return uri.Fragment
}

// DID strips any path, query or fragment
func (u URL) DID() string {
	s := string(u)
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}

	return s
}

// Relative reports the path, query and fragment following the DID
func (u URL) Relative() string {
	return strings.TrimPrefix(string(u), u.DID())
}
