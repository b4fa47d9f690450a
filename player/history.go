package player

import "iter"

// HistoryComponent is a bounded, insertion ordered buffer of the most recent moves of a player. The
// newest move is always the one being evaluated.
type HistoryComponent interface {
	// Push records a new move and returns it. The oldest move is evicted once the buffer is full.
	Push(from, to ResolvedLocation, model string, tick, now int64) *MoveRecord
	// Current returns the newest move, or the sentinel invalid move.
	Current() *MoveRecord
	// FirstPast returns the move before the newest one, or the sentinel invalid move.
	FirstPast() *MoveRecord
	// LatestValid returns the newest move with a valid destination, or the sentinel invalid move.
	LatestValid() *MoveRecord
	// Past yields the moves before the newest one, newest first, that are at most maxAge ticks older
	// than the newest move.
	Past(maxAge int64) iter.Seq[*MoveRecord]
	// Invalidate marks the destination of the newest move as invalid, so no momentum is inherited from it.
	Invalidate()
	Len() int
	Clear()
}
