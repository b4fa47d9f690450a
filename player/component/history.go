package component

import (
	"iter"

	"github.com/oomph-ac/moveguard/player"
	"github.com/oomph-ac/moveguard/utils"
)

// HistoryComponent keeps the most recent moves of a player in a circular queue.
type HistoryComponent struct {
	moves          *utils.CircularQueue[*player.MoveRecord]
	lostGroundStep float64
}

// NewHistoryComponent returns a history holding at most size moves.
func NewHistoryComponent(size int, lostGroundStep float64) *HistoryComponent {
	if size < 2 {
		size = 2
	}
	return &HistoryComponent{
		moves:          utils.NewCircularQueue[*player.MoveRecord](size),
		lostGroundStep: lostGroundStep,
	}
}

func (h *HistoryComponent) Push(from, to player.ResolvedLocation, model string, tick, now int64) *player.MoveRecord {
	m := player.NewMoveRecord(from, to, model, h.lostGroundStep, tick, now)
	// The capacity is never zero.
	_ = h.moves.Append(m)
	return m
}

func (h *HistoryComponent) Current() *player.MoveRecord {
	return h.newest(0)
}

func (h *HistoryComponent) FirstPast() *player.MoveRecord {
	return h.newest(1)
}

func (h *HistoryComponent) LatestValid() *player.MoveRecord {
	for i := 0; i < h.moves.Len(); i++ {
		if m := h.newest(i); m.ToIsValid {
			return m
		}
	}
	return player.InvalidMove()
}

func (h *HistoryComponent) Past(maxAge int64) iter.Seq[*player.MoveRecord] {
	return func(yield func(*player.MoveRecord) bool) {
		current := h.Current()
		for i := 1; i < h.moves.Len(); i++ {
			m := h.newest(i)
			if current.Tick-m.Tick > maxAge || !yield(m) {
				return
			}
		}
	}
}

func (h *HistoryComponent) Invalidate() {
	if m, ok := h.moves.Newest(0); ok {
		m.ToIsValid = false
	}
}

func (h *HistoryComponent) Len() int {
	return h.moves.Len()
}

func (h *HistoryComponent) Clear() {
	h.moves.Clear()
}

func (h *HistoryComponent) newest(i int) *player.MoveRecord {
	if m, ok := h.moves.Newest(i); ok {
		return m
	}
	return player.InvalidMove()
}
