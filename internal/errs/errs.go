// Package errs holds the sentinel errors shared across the engine's
// internal packages, so the public vrope package can re-export a single
// canonical value per error kind instead of each layer declaring its own
// near-duplicate.
package errs

import "errors"

var (
	ErrOutOfMemory     = errors.New("vrope: memory registry exhausted")
	ErrOutOfBounds     = errors.New("vrope: position out of bounds")
	ErrInvalidCursor   = errors.New("vrope: invalid cursor")
	ErrInvalidMemID    = errors.New("vrope: invalid memory id")
	ErrInvalidID       = errors.New("vrope: invalid link id")
	ErrWrongGeneration = errors.New("vrope: wrong generation")
	ErrURLTooLong      = errors.New("vrope: url exceeds slot capacity")
	ErrInvalidSplit    = errors.New("vrope: invalid split request")
)
