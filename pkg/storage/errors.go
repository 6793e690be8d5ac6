package storage

import (
	"github.com/pkg/errors"
	"github.com/tcfw/didanchor/pkg/tx"
)

var (
	ErrNotFound = errors.New("not found")

	ErrDIDAlreadyExists = errors.New("DID already exists")
	ErrDIDInvalid       = errors.New("DID is invalid")
	ErrHashMismatch     = tx.ErrHashMismatch

	ErrOpNotSupported = errors.New("tx operation not supported on tx type")
)
