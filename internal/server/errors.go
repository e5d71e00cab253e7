package server

import "errors"

var (
	// errNoHTTPHandler means the handler layer produced no HTTP router.
	errNoHTTPHandler = errors.New("no http handler to serve")
	// errNoHTTPAddress means the server section has no listen address.
	errNoHTTPAddress = errors.New("no http address to listen on")
)
