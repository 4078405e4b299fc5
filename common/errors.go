package common

import "errors"

var ErrInvalidRequirement = errors.New("invalid requirement")
var ErrInvalidInput = errors.New("bad input")
var ErrResourceNotBound = errors.New("resource not bound")
var ErrPolicyNotFound = errors.New("policy not found")
