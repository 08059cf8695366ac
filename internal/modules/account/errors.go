package account

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrIdentityOrphaned means the profile batch committed but the
	// credential record could not be removed. Operators must resolve it;
	// retrying reauthentication against a deleted profile is unsafe.
	ErrIdentityOrphaned = errors.New("identity deletion failed after data cleanup")
)
