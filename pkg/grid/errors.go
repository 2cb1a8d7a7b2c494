package grid

import "fmt"

// ErrCellOccupied is returned by ClaimNode when any cell of the requested
// rectangle is already taken.
type ErrCellOccupied struct {
	X, Y int
}

func (e *ErrCellOccupied) Error() string {
	return fmt.Sprintf("grid: cell (%d,%d) already occupied", e.X, e.Y)
}

// ErrNodeCell is returned by PutEdgeCell when the target cell is a NODE
// cell — those may never be overwritten (spec §4.1).
type ErrNodeCell struct {
	X, Y int
}

func (e *ErrNodeCell) Error() string {
	return fmt.Sprintf("grid: (%d,%d) is a node cell, cannot place an edge there", e.X, e.Y)
}

// ErrReentry is returned by PutEdgeCell when the same edge tries to occupy
// a cell it already owns, whatever the orientation — spec §4.1 calls this
// "a re-entry bug (fail hard)", not a recoverable routing failure.
type ErrReentry struct {
	X, Y int
}

func (e *ErrReentry) Error() string {
	return fmt.Sprintf("grid: (%d,%d) re-entered by the same edge", e.X, e.Y)
}
