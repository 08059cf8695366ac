package membership

import "errors"

var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("not_found")
	ErrAlreadyMember = errors.New("already a member of this tenant")
)
