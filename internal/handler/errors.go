package handler

import "errors"

// errHTTPAddressNotSet aborts startup: without a listen address there is
// nothing to mount the auth routes on.
var errHTTPAddressNotSet = errors.New("http handler requires SERVER_ADDRESS")
