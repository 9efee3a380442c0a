package engine

import (
	"fmt"
	"log"
	"time"

	"github.com/threecheck/engine/internal/board"
	"github.com/threecheck/engine/internal/ttstore"
)

func init() {
	board.InitZobristTable(0x5EED)
}

// SearchInfo reports diagnostics about the move the engine just chose.
type SearchInfo struct {
	Depth    int
	Score    int
	Nodes    uint64
	Time     time.Duration
	HashFull int
	HitRate  float64
}

// Engine wires a Searcher and TranspositionTable together behind the
// small API a front-end needs: choose the engine's move, apply the
// player's, and report diagnostics. There is no worker pool, opening
// book, tablebase, or NNUE network - this engine's search is strictly
// single-threaded.
type Engine struct {
	tt       *TranspositionTable
	searcher *Searcher

	difficulty Difficulty

	OnInfo func(SearchInfo)
}

// NewEngine creates an engine with a transposition table sized in MB.
func NewEngine(ttSizeMB int) *Engine {
	tt := NewTranspositionTable(ttSizeMB)
	e := &Engine{
		tt:         tt,
		searcher:   NewSearcher(tt),
		difficulty: Medium,
	}
	log.Printf("[Engine] created (tt=%dMB, difficulty=%v)", ttSizeMB, e.difficulty)
	return e
}

// SetDifficulty changes the engine's per-move time/depth budget.
func (e *Engine) SetDifficulty(d Difficulty) {
	e.difficulty = d
}

// SearchMove runs iterative deepening from pos at the engine's configured
// difficulty and returns the selected move plus diagnostics, mutating
// nothing: callers apply the move themselves via pos.MakeMove once they've
// decided to accept it. This is the struct-returning form a front-end that
// wants nodes/score/hashfull uses directly; ChooseEngineMove below is the
// plain text entry point a GUI front-end consumes.
func (e *Engine) SearchMove(pos *board.BoardState) (board.Move, SearchInfo) {
	settings := DifficultySettings[e.difficulty]
	return e.searchMove(pos, settings.MoveTimeMs, settings.MaxDepth)
}

func (e *Engine) searchMove(pos *board.BoardState, timeMs, maxDepth int) (board.Move, SearchInfo) {
	start := time.Now()

	move, score, nodes := e.searcher.IterativeDeepen(pos, maxDepth, timeMs)

	info := SearchInfo{
		Score:    score,
		Nodes:    nodes,
		Time:     time.Since(start),
		HashFull: e.tt.HashFull(),
		HitRate:  e.tt.HitRate(),
	}
	if e.OnInfo != nil {
		e.OnInfo(info)
	}
	log.Printf("[Engine] chose %s (score=%d nodes=%d time=%s hashfull=%d%%)",
		move, score, nodes, info.Time, info.HashFull/10)
	return move, info
}

// ChooseEngineMove is the engine's half of the protocol contract: given a
// time budget in milliseconds and a maximum ply depth, it searches
// pos (without mutating it — the front-end applies the chosen move itself)
// and renders the result as one of the three textual outcomes a GUI expects:
// "move <from><to>\n", the stalemate string, or a mate string naming the
// winner when the engine has no legal reply.
func (e *Engine) ChooseEngineMove(pos *board.BoardState, timeBudgetMs, maxDepth int) string {
	if pos.NoCaptureCount() >= 100 {
		return stalemateText
	}
	if !pos.HasLegalMove() {
		return terminalText(pos)
	}

	move, _ := e.searchMove(pos, timeBudgetMs, maxDepth)
	if move == board.NoMove {
		return terminalText(pos)
	}
	return fmt.Sprintf("move %s%s\n", move.Src(), move.Dest())
}

const stalemateText = "1/2-1/2 {Stalemate}\n"

// terminalText renders the mate/stalemate string for a position where the
// side to move has no legal move: a stalemate if it isn't in check, or a
// mate crediting whichever side just delivered it otherwise.
func terminalText(pos *board.BoardState) string {
	if !pos.InCheck() {
		return stalemateText
	}
	if pos.Side() == board.White {
		return "0-1 {Black Mates}\n"
	}
	return "1-0 {White Mates}\n"
}

// ApplyPlayerMove is the front-end's half of the protocol contract: m is
// an already-encoded move (the wire format is the packed 32-bit word
// itself — parsing human or UCI notation is a front-end concern, see
// board.ParseMove/ApplyPlayerMoveUCI for that convenience). If forcing, m
// is applied unconditionally, never rolling back, even when the result
// leaves the mover's own king in check. Otherwise castling through an
// attacked square and moves leaving the mover's own king attacked are
// both rejected and pos is left unchanged.
func (e *Engine) ApplyPlayerMove(pos *board.BoardState, m board.Move, forcing bool) bool {
	if forcing {
		pos.MakeMove(m)
		return true
	}

	if m.IsCastle() && !castlePathSafe(pos, m) {
		return false
	}

	trial := pos.Clone()
	if !trial.MakeMove(m) {
		return false
	}
	*pos = trial
	return true
}

// castlePathSafe reports whether none of the squares the king crosses while
// castling (its start square, the square it passes through, and its
// destination) are attacked by the opponent. MakeMove itself only rejects a
// king left in check on the destination square; the intermediate square is
// a rule of castling specifically, checked here instead.
func castlePathSafe(pos *board.BoardState, m board.Move) bool {
	them := pos.Side().Other()
	src, dest := m.Src(), m.Dest()
	for _, sq := range []board.Square{src, dest} {
		if pos.IsAttacked(sq, them) {
			return false
		}
	}
	for sq := board.Between(src, dest); sq != 0; {
		s := sq.PopLSB()
		if pos.IsAttacked(s, them) {
			return false
		}
	}
	return true
}

// ApplyPlayerMoveUCI is a convenience wrapper for front-ends that still
// receive moves as UCI-style coordinate text ("e2e4"): it parses the move
// against pos with board.ParseMove and delegates to ApplyPlayerMove with
// forcing=false.
func (e *Engine) ApplyPlayerMoveUCI(pos *board.BoardState, moveStr string) error {
	m, err := board.ParseMove(pos, moveStr)
	if err != nil {
		return err
	}
	if !e.ApplyPlayerMove(pos, m, false) {
		return fmt.Errorf("engine: illegal move %q", moveStr)
	}
	return nil
}

// GetState renders a diagnostic snapshot of pos: board, side to move,
// check counts, and the engine's own hash-table occupancy. Intended for
// logging and manual inspection, not for the search hot path.
func (e *Engine) GetState(pos *board.BoardState) string {
	return fmt.Sprintf("%s\nhashfull=%d%% hitrate=%.1f%%\n", pos, e.tt.HashFull()/10, e.tt.HitRate())
}

// WarmStartFromDisk loads a previously saved transposition table
// snapshot from dir, if one exists. A missing or empty snapshot is not
// an error: the engine simply starts with a cold table.
func (e *Engine) WarmStartFromDisk(dir string) error {
	store, err := ttstore.Open(dir)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.LoadSnapshot()
	if err != nil {
		return err
	}
	e.tt.LoadSnapshot(records)
	log.Printf("[Engine] warm-started transposition table with %d entries", len(records))
	return nil
}

// SaveToDisk snapshots the current transposition table to dir, for the
// next process to warm-start from.
func (e *Engine) SaveToDisk(dir string) error {
	store, err := ttstore.Open(dir)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.SaveSnapshot(e.tt.Snapshot())
}
