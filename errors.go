package vrope

import "github.com/vrope/vrope/internal/errs"

// Contract errors indicate caller misuse (wrong id, wrong cursor, wrong
// generation). They are returned unchanged; the engine never retries or
// repairs them.
var (
	// ErrOutOfBounds is returned when a row/col or byte offset falls outside
	// the buffer's current extent.
	ErrOutOfBounds = errs.ErrOutOfBounds

	// ErrInvalidCursor is returned when a cursor does not resolve to a valid
	// offset in the buffer (e.g. after concurrent structural change).
	ErrInvalidCursor = errs.ErrInvalidCursor

	// ErrInvalidMemID is returned by the memory registry for an id that was
	// never registered or has since been unregistered.
	ErrInvalidMemID = errs.ErrInvalidMemID

	// ErrInvalidID is returned by the link pool for an id outside the
	// allocated range.
	ErrInvalidID = errs.ErrInvalidID

	// ErrWrongGeneration is returned by the link pool when an id's stamped
	// generation no longer matches the slot's current generation.
	ErrWrongGeneration = errs.ErrWrongGeneration

	// ErrURLTooLong is returned when a link pool allocation exceeds the
	// per-slot byte budget.
	ErrURLTooLong = errs.ErrURLTooLong

	// ErrInvalidSplit is a hard contract error: the rope asked a splitter to
	// divide a segment that cannot be split (a non-Text leaf, or a weight
	// outside [1, width-1]). Per spec this path is unreachable given correct
	// weight arithmetic; detecting it returns an error instead of corrupting
	// the tree.
	ErrInvalidSplit = errs.ErrInvalidSplit
)

// Resource errors are propagated with the buffer left in its pre-call state.
var (
	// ErrOutOfMemory is returned by the memory registry when all 255 slots
	// are in use.
	ErrOutOfMemory = errs.ErrOutOfMemory
)
