package engine

import "errors"

// ErrPopulationExtinct ends a run when aging leaves nobody alive. It is a
// normal termination, not a fault; I/O failures surface as
// *history.PersistError instead.
var ErrPopulationExtinct = errors.New("population extinct")
