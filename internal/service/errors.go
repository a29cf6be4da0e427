package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/atcommodities/erp/internal/auth"
	"github.com/atcommodities/erp/internal/calculator"
	"github.com/atcommodities/erp/internal/storage"
)

// errInvalid marks request validation failures raised inside this package.
var errInvalid = errors.New("invalid argument")

// toConnectError maps domain errors onto Connect codes.
func toConnectError(err error) *connect.Error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	switch {
	case errors.Is(err, calculator.ErrInvalidInput),
		errors.Is(err, errInvalid),
		errors.Is(err, auth.ErrWeakPassword):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrConflict),
		errors.Is(err, auth.ErrEmailExists):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, storage.ErrAlreadyCheckedOut):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, auth.ErrInvalidCredentials):
		return connect.NewError(connect.CodeUnauthenticated, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
