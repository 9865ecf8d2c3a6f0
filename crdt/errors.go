package crdt

import "errors"

// Timestamp accessor errors. Querying a timestamp for an element the set
// has never seen is a contract violation on the caller's side; guard with
// AddExist/RemoveExist first.
var (
	ErrElementNotAdded   = errors.New("crdt: element was never added")
	ErrElementNotRemoved = errors.New("crdt: element was never removed")
)
