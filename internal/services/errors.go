package services

import "errors"

// ErrUnsupportedRequest is returned by Dispatch for request types outside the closed set
var ErrUnsupportedRequest = errors.New("unsupported dashboard request")
