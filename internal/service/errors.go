package service

import "errors"

// ErrInvalidQuery marks request parameters the service rejects
var ErrInvalidQuery = errors.New("invalid query")
