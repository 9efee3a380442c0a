package engine

import "github.com/threecheck/engine/internal/board"

// Move ordering priorities layered on top of the packed static score
// movegen already assigned each board.Move (the 4-bit ordering field
// packed into the move itself): the transposition table's remembered
// best move goes first, then killer quiets that caused a cutoff at this
// ply, then the static MVV-LVA/check score baked into the move itself.
const (
	ttMoveScore  = 1 << 20
	killerScore1 = 1 << 16
	killerScore2 = 1 << 15
)

// MoveOrderer tracks killer moves across a search. It carries no
// history/countermove/capture-history heuristics: this fixed-depth
// single-threaded search has no use for tables that only pay off across
// many worker threads or very deep iterative deepening.
type MoveOrderer struct {
	killers [MaxPly][2]board.Move
}

// NewMoveOrderer creates an empty orderer.
func NewMoveOrderer() *MoveOrderer {
	return &MoveOrderer{}
}

// Clear resets killer moves for a new search.
func (mo *MoveOrderer) Clear() {
	for i := range mo.killers {
		mo.killers[i][0] = board.NoMove
		mo.killers[i][1] = board.NoMove
	}
}

// ScoreMoves returns a parallel slice of ordering keys for list, layering
// the TT move and this ply's killers over each move's packed static score.
func (mo *MoveOrderer) ScoreMoves(list *board.MoveList, ply int, ttMove board.Move) []int {
	scores := make([]int, list.Len())
	for i := 0; i < list.Len(); i++ {
		m := list.Get(i)
		switch {
		case ttMove != board.NoMove && board.SameMove(m, ttMove):
			scores[i] = ttMoveScore
		case !m.IsCapture() && ply < MaxPly && board.SameMove(m, mo.killers[ply][0]):
			scores[i] = killerScore1
		case !m.IsCapture() && ply < MaxPly && board.SameMove(m, mo.killers[ply][1]):
			scores[i] = killerScore2
		default:
			scores[i] = m.Score()
		}
	}
	return scores
}

// UpdateKillers records m as a killer at ply, if it isn't already the top
// killer there. Only quiet moves are tracked: a capture that cuts off is
// already ordered early by its static score.
func (mo *MoveOrderer) UpdateKillers(m board.Move, ply int) {
	if ply >= MaxPly || m.IsCapture() {
		return
	}
	if board.SameMove(mo.killers[ply][0], m) {
		return
	}
	mo.killers[ply][1] = mo.killers[ply][0]
	mo.killers[ply][0] = m
}

// PickMove finds the best-scoring move at or after index and swaps it
// into index, so the caller can iterate moves best-first without a full
// upfront sort.
func PickMove(list *board.MoveList, scores []int, index int) {
	best := index
	for j := index + 1; j < list.Len(); j++ {
		if scores[j] > scores[best] {
			best = j
		}
	}
	if best != index {
		list.Swap(index, best)
		scores[index], scores[best] = scores[best], scores[index]
	}
}
