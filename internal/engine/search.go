package engine

import (
	"sync/atomic"
	"time"

	"github.com/threecheck/engine/internal/board"
)

// Search bounds.
const (
	Infinity  = 30000
	MateScore = 29000
	MaxPly    = 128
)

// startDepth is iterative deepening's first completed depth: the engine
// always finishes at least this deep before time management can cut a
// search short.
const startDepth = 6

// Searcher runs a single-threaded, explicit MIN/MAX (not negamax)
// fail-hard alpha-beta search over copy-make BoardState clones: each
// recursive call receives its own cloned BoardState instead of an undo
// stack, and no goroutines or worker pool are spawned.
type Searcher struct {
	tt      *TranspositionTable
	orderer *MoveOrderer

	nodes    uint64
	stopFlag atomic.Bool
}

// NewSearcher creates a searcher sharing tt across successive searches.
func NewSearcher(tt *TranspositionTable) *Searcher {
	return &Searcher{tt: tt, orderer: NewMoveOrderer()}
}

// Stop signals the running search to return as soon as it next checks.
func (s *Searcher) Stop() { s.stopFlag.Store(true) }

// Nodes returns the number of nodes visited by the most recent search.
func (s *Searcher) Nodes() uint64 { return s.nodes }

func (s *Searcher) reset() {
	s.stopFlag.Store(false)
	s.nodes = 0
	s.orderer.Clear()
}

// timeUp reports whether the configured per-move deadline has passed: a
// search allotted moveTimeMs is cut off once 5/20ths of that budget has
// elapsed, expressed directly as moveTimeMs/20*5 rather than a reduced
// fraction so integer rounding matches exactly.
func timeUp(start time.Time, moveTimeMs int) bool {
	if moveTimeMs <= 0 {
		return false
	}
	elapsed := time.Since(start).Milliseconds()
	return elapsed >= int64(moveTimeMs/20*5)
}

// IterativeDeepen searches pos with iterative deepening up to maxDepth,
// or until moveTimeMs elapses past startDepth. It always completes
// startDepth before time can cut the search short, and always returns a
// legal move when one exists.
func (s *Searcher) IterativeDeepen(pos *board.BoardState, maxDepth, moveTimeMs int) (board.Move, int, uint64) {
	s.reset()
	start := time.Now()

	var best board.Move
	var bestScore int

	depth := startDepth
	if maxDepth < depth {
		depth = maxDepth
	}
	for d := depth; d <= maxDepth; d++ {
		if d > startDepth && timeUp(start, moveTimeMs) {
			break
		}
		move, score, ok := s.searchRoot(pos, d)
		if !ok {
			break
		}
		best, bestScore = move, score
		if d >= depth && d > startDepth && timeUp(start, moveTimeMs) {
			break
		}
	}

	return best, bestScore, s.nodes
}

// searchRoot runs one full-depth search and returns the best move found,
// falling back to the first legal move generated if no move ever
// improves on the starting bound (-Infinity for White, +Infinity for
// Black; can only happen if the search is stopped before
// completing a single move, e.g. depth 0 edge case).
func (s *Searcher) searchRoot(pos *board.BoardState, depth int) (board.Move, int, bool) {
	var list board.MoveList
	pos.GenerateAllMoves(&list)
	if list.Len() == 0 {
		return board.NoMove, 0, false
	}

	_, ttMove, _, _ := s.probeTT(pos.Hash())
	scores := s.orderer.ScoreMoves(&list, 0, ttMove)

	alpha, beta := -Infinity, Infinity
	var bestMove board.Move
	bestScore := -Infinity
	foundLegal := false
	maximizing := pos.Side() == board.White
	if !maximizing {
		bestScore = Infinity
	}

	for i := 0; i < list.Len(); i++ {
		PickMove(&list, scores, i)
		m := list.Get(i)

		child := pos.Clone()
		if !child.MakeMove(m) {
			continue
		}
		if !foundLegal {
			// First-legal-move fallback: guarantees a move even if the
			// search below is cut short before finishing move 0.
			bestMove = m
			foundLegal = true
		}

		var score int
		if maximizing {
			score = s.minNode(&child, depth-1, 1, alpha, beta)
		} else {
			score = s.maxNode(&child, depth-1, 1, alpha, beta)
		}
		if s.stopFlag.Load() {
			break
		}

		better := (maximizing && score > bestScore) || (!maximizing && score < bestScore)
		if i == 0 || better {
			bestScore = score
			bestMove = m
		}
		if maximizing && bestScore > alpha {
			alpha = bestScore
		}
		if !maximizing && bestScore < beta {
			beta = bestScore
		}
	}

	if !foundLegal {
		return board.NoMove, 0, false
	}

	flag := BestMove
	s.tt.Store(pos.Hash(), bestMove, AdjustScoreToTT(bestScore, 0), depth, flag)
	return bestMove, bestScore, true
}

// maxNode is the explicit maximizing half of the fail-hard alpha-beta
// search: the side to move at this node wants the highest score.
func (s *Searcher) maxNode(pos *board.BoardState, depth, ply, alpha, beta int) int {
	if s.nodes&4095 == 0 && s.stopFlag.Load() {
		return alpha
	}
	s.nodes++

	if result := pos.GetResult(); result != board.ResultOngoing {
		return terminalScore(result, ply)
	}
	if pos.NoCaptureCount() >= 100 {
		return 0
	}

	if cached, move, cdepth, flag := s.probeTT(pos.Hash()); flag != Ignore && cdepth >= depth {
		score := AdjustScoreFromTT(cached, ply)
		switch flag {
		case BestMove:
			return score
		case GoodMove:
			if score > alpha {
				alpha = score
			}
		}
		_ = move
		if alpha >= beta {
			return beta
		}
	}

	if depth <= 0 {
		return s.quiescence(pos, ply, alpha, beta, true)
	}

	var list board.MoveList
	pos.GenerateAllMoves(&list)
	if list.Len() == 0 {
		if pos.InCheck() {
			return -MateScore + ply
		}
		return 0
	}

	_, ttMove, _, _ := s.probeTT(pos.Hash())
	scores := s.orderer.ScoreMoves(&list, ply, ttMove)

	best := -Infinity
	bestMove := board.NoMove
	legal := false
	for i := 0; i < list.Len(); i++ {
		PickMove(&list, scores, i)
		m := list.Get(i)
		child := pos.Clone()
		if !child.MakeMove(m) {
			continue
		}
		legal = true

		score := s.minNode(&child, depth-1, ply+1, alpha, beta)
		if score > best {
			best = score
			bestMove = m
		}
		if best >= beta {
			s.tt.Store(pos.Hash(), bestMove, AdjustScoreToTT(best, ply), depth, GoodMove)
			if !m.IsCapture() {
				s.orderer.UpdateKillers(m, ply)
			}
			return beta
		}
		if best > alpha {
			alpha = best
		}
	}
	if !legal {
		return 0
	}

	s.tt.Store(pos.Hash(), bestMove, AdjustScoreToTT(best, ply), depth, BestMove)
	return best
}

// minNode is the explicit minimizing half: the side to move at this node
// wants the lowest score.
func (s *Searcher) minNode(pos *board.BoardState, depth, ply, alpha, beta int) int {
	if s.nodes&4095 == 0 && s.stopFlag.Load() {
		return beta
	}
	s.nodes++

	if result := pos.GetResult(); result != board.ResultOngoing {
		return terminalScore(result, ply)
	}
	if pos.NoCaptureCount() >= 100 {
		return 0
	}

	if cached, move, cdepth, flag := s.probeTT(pos.Hash()); flag != Ignore && cdepth >= depth {
		score := AdjustScoreFromTT(cached, ply)
		switch flag {
		case BestMove:
			return score
		case GoodMove:
			if score < beta {
				beta = score
			}
		}
		_ = move
		if alpha >= beta {
			return alpha
		}
	}

	if depth <= 0 {
		return s.quiescence(pos, ply, alpha, beta, false)
	}

	var list board.MoveList
	pos.GenerateAllMoves(&list)
	if list.Len() == 0 {
		if pos.InCheck() {
			return MateScore - ply
		}
		return 0
	}

	_, ttMove, _, _ := s.probeTT(pos.Hash())
	scores := s.orderer.ScoreMoves(&list, ply, ttMove)

	best := Infinity
	bestMove := board.NoMove
	legal := false
	for i := 0; i < list.Len(); i++ {
		PickMove(&list, scores, i)
		m := list.Get(i)
		child := pos.Clone()
		if !child.MakeMove(m) {
			continue
		}
		legal = true

		score := s.maxNode(&child, depth-1, ply+1, alpha, beta)
		if score < best {
			best = score
			bestMove = m
		}
		if best <= alpha {
			s.tt.Store(pos.Hash(), bestMove, AdjustScoreToTT(best, ply), depth, GoodMove)
			if !m.IsCapture() {
				s.orderer.UpdateKillers(m, ply)
			}
			return alpha
		}
		if best < beta {
			beta = best
		}
	}
	if !legal {
		return 0
	}

	s.tt.Store(pos.Hash(), bestMove, AdjustScoreToTT(best, ply), depth, BestMove)
	return best
}

// terminalScore converts a 3-check win into an absolute, White-relative
// mate-style score (closer to the root is worth more), matching the
// convention pos.Evaluate() uses everywhere else in this search.
func terminalScore(result board.Result, ply int) int {
	if result == board.ResultWhiteWinsByChecks {
		return MateScore - ply
	}
	return -MateScore + ply
}

// quiescence extends the search through captures only, to avoid
// misjudging a position mid-exchange. maximizing mirrors maxNode/minNode:
// true when White is to move (maximizing the White-relative evaluation),
// false when Black is (minimizing it).
func (s *Searcher) quiescence(pos *board.BoardState, ply int, alpha, beta int, maximizing bool) int {
	s.nodes++

	// maxNode/minNode both compare against pos.Evaluate() directly (always
	// White-relative); maximizing tells us which side's preference applies.
	standPat := pos.Evaluate()

	if maximizing {
		if standPat >= beta {
			return beta
		}
		if standPat > alpha {
			alpha = standPat
		}
		if standPat+QueenValue < alpha {
			return alpha
		}
	} else {
		if standPat <= alpha {
			return alpha
		}
		if standPat < beta {
			beta = standPat
		}
		if standPat-QueenValue > beta {
			return beta
		}
	}

	var list board.MoveList
	pos.GenerateCaptureMoves(&list)
	scores := s.orderer.ScoreMoves(&list, ply, board.NoMove)

	if maximizing {
		best := standPat
		for i := 0; i < list.Len(); i++ {
			PickMove(&list, scores, i)
			m := list.Get(i)
			child := pos.Clone()
			if !child.MakeMove(m) {
				continue
			}
			score := s.quiescence(&child, ply+1, alpha, beta, false)
			if score > best {
				best = score
			}
			if best >= beta {
				return beta
			}
			if best > alpha {
				alpha = best
			}
		}
		return best
	}

	best := standPat
	for i := 0; i < list.Len(); i++ {
		PickMove(&list, scores, i)
		m := list.Get(i)
		child := pos.Clone()
		if !child.MakeMove(m) {
			continue
		}
		score := s.quiescence(&child, ply+1, alpha, beta, true)
		if score < best {
			best = score
		}
		if best <= alpha {
			return alpha
		}
		if best < beta {
			beta = best
		}
	}
	return best
}

func (s *Searcher) probeTT(hash uint64) (int, board.Move, int, EntryFlag) {
	move, score, depth, flag := s.tt.Probe(hash)
	return score, move, depth, flag
}
