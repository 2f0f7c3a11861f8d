package engine

import (
	"errors"

	"github.com/okian/vibematch/internal/domain/scoring"
	"github.com/okian/vibematch/internal/domain/types"
)

// Engine errors. A failed RecordEvent leaves the session log untouched.
var (
	ErrInvalidContentType   = scoring.ErrInvalidContentType
	ErrInvalidAction        = types.ErrInvalidAction
	ErrNegativeDwell        = scoring.ErrNegativeDwell
	ErrInvalidEventOrdering = errors.New("event out of order")
	ErrNilSession           = errors.New("nil session")
)
