package storage

import "errors"

var (
	ErrTileNotAvailable     = errors.New("the requested tile is not available in the store")
	ErrHashIndexUnavailable = errors.New("requested stored hash index not available")
	ErrDataTileUnsupported  = errors.New("this store does not serve data tiles")
	ErrTileHeightMismatch   = errors.New("the requested tile height does not match the store")
	ErrCheckpointMalformed  = errors.New("the checkpoint data is malformed")
	ErrNotALogIdentity      = errors.New("log identities have the form 'log/uuid'")
)
