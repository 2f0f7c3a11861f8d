package scoring

import (
	"errors"

	"github.com/okian/vibematch/internal/domain/types"
)

// Scoring errors.
var (
	ErrInvalidContentType = types.ErrInvalidContentType
	ErrInvalidAction      = types.ErrInvalidAction
	ErrNegativeDwell      = errors.New("dwell must not be negative")
)
