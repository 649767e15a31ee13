package birthday

import "errors"

var (
	ErrAlreadyExists     = errors.New("birthday with this name already exists")
	ErrDoesNotExist      = errors.New("birthday does not exist")
	ErrInvalidServiceTag = errors.New("service must be either whatsapp or telegram")
)
