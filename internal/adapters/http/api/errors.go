package api

import "errors"

// ErrBadRequest marks a request the API cannot interpret.
var ErrBadRequest = errors.New("bad request")
