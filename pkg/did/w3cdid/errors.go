package w3cdid

import "github.com/pkg/errors"

var (
	ErrMalformedDid          = errors.New("malformed did")
	ErrInvalidTopicID        = errors.New("invalid topic id")
	ErrInvalidDocumentFormat = errors.New("invalid did document format")
	ErrInvalidMethodFormat   = errors.New("invalid verification method format")
	ErrInvalidArgument       = errors.New("invalid argument")
)
