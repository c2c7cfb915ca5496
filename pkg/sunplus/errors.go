package sunplus

import "errors"

// Structural errors raised while parsing standalone headers.
var (
	ErrMagicMismatch  = errors.New("sunplus: magic mismatch")
	ErrUnknownName    = errors.New("sunplus: unknown header name")
	ErrUnknownFlag    = errors.New("sunplus: unknown header flag")
	ErrUnknownVariant = errors.New("sunplus: unknown header variant")
)

// Errors raised while navigating a ROM container.
var (
	ErrContainerMagicMismatch = errors.New("sunplus: container magic mismatch")
	ErrIndexOutOfRange        = errors.New("sunplus: index out of range")
	ErrUnorderedOffsets       = errors.New("sunplus: file offsets not ascending")
	ErrReservedNotZero        = errors.New("sunplus: reserved bytes not zero")
	ErrContainerTooLarge      = errors.New("sunplus: container table too large")
)

// ErrTruncatedRead is returned when fewer bytes are available than a
// structure or record requires.
var ErrTruncatedRead = errors.New("sunplus: truncated read")

// IsStructural reports whether err means "these bytes are not a standalone
// header". Only such errors let Detect fall back to the compact layout;
// anything else (a failing disk, a closed file) is passed to the caller.
func IsStructural(err error) bool {
	switch {
	case errors.Is(err, ErrMagicMismatch),
		errors.Is(err, ErrUnknownName),
		errors.Is(err, ErrUnknownFlag),
		errors.Is(err, ErrUnknownVariant),
		errors.Is(err, ErrTruncatedRead):
		return true
	}
	return false
}
