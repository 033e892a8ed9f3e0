package format

import "errors"

var (
	// ErrUnknownCode indicates a field type character has no entry in the
	// type mapping table.
	ErrUnknownCode = errors.New("format: unknown type code")

	// ErrShortBuffer indicates a field unpack read past the end of the
	// available bytes.
	ErrShortBuffer = errors.New("format: short buffer")
)
