package engine

import (
	"testing"

	"github.com/threecheck/engine/internal/board"
)

func init() {
	board.InitZobristTable(0xC0FFEE)
}

func TestEngineChoosesLegalMoveFromStart(t *testing.T) {
	pos, err := board.ParseFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	e := NewEngine(4)
	e.SetDifficulty(Easy)

	move, info := e.SearchMove(pos)
	if move == board.NoMove {
		t.Fatal("expected a move from the starting position")
	}
	if info.Nodes == 0 {
		t.Error("expected search to visit at least one node")
	}

	trial := pos.Clone()
	if !trial.MakeMove(move) {
		t.Errorf("engine chose illegal move %s", move)
	}
}

func TestChooseEngineMoveReturnsMoveText(t *testing.T) {
	pos, err := board.ParseFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	e := NewEngine(4)

	result := e.ChooseEngineMove(pos, 200, 8)
	if len(result) < 6 || result[:5] != "move " {
		t.Fatalf("expected a %q-prefixed result, got %q", "move ", result)
	}
}

func TestApplyPlayerMoveRejectsIllegal(t *testing.T) {
	pos, err := board.ParseFEN(board.StartFEN)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	e := NewEngine(1)

	if err := e.ApplyPlayerMoveUCI(pos, "e2e5"); err == nil {
		t.Error("expected e2e5 to be rejected as illegal from the start position")
	}
	if err := e.ApplyPlayerMoveUCI(pos, "e2e4"); err != nil {
		t.Errorf("expected e2e4 to be legal, got %v", err)
	}
	if pos.Side() != board.Black {
		t.Error("side to move should flip to black after e2e4")
	}
}

// TestChooseEngineMoveReturnsStalemateTextAfterFiftyMoves checks that with
// legal moves available but the no-capture clock already at 100 half-moves,
// ChooseEngineMove returns the stalemate string without searching.
func TestChooseEngineMoveReturnsStalemateTextAfterFiftyMoves(t *testing.T) {
	pos, err := board.ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 100 1 +0+0")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	e := NewEngine(1)

	result := e.ChooseEngineMove(pos, 200, 8)
	if result != "1/2-1/2 {Stalemate}\n" {
		t.Errorf("ChooseEngineMove = %q, want the stalemate string", result)
	}
}

func TestApplyPlayerMoveForcingBypassesLegality(t *testing.T) {
	// Black rook on a2 rakes the second rank; walking the white king from
	// e1 to e2 is pseudo-legal (a plain king step) but leaves it in check.
	pos, err := board.ParseFEN("8/8/8/8/8/8/r7/4K3 w - - 0 1 +0+0")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	e := NewEngine(1)

	m, err := board.ParseMove(pos, "e1e2")
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}

	nonForcing := pos.Clone()
	if e.ApplyPlayerMove(&nonForcing, m, false) {
		t.Fatal("expected non-forcing king move into check to be rejected")
	}
	if nonForcing.Side() != board.White {
		t.Error("rejected move must not mutate the position")
	}

	forcing := pos.Clone()
	if !e.ApplyPlayerMove(&forcing, m, true) {
		t.Fatal("expected forcing to report success")
	}
	if forcing.Side() != board.Black {
		t.Error("forcing should apply the move unconditionally, flipping side to move")
	}
}

func TestTranspositionTableRoundTrip(t *testing.T) {
	tt := NewTranspositionTable(1)
	tt.Store(0x1234, board.NoMove, 55, 4, BestMove)

	move, score, depth, flag := tt.Probe(0x1234)
	if flag != BestMove {
		t.Fatalf("expected BestMove flag, got %v", flag)
	}
	if score != 55 || depth != 4 {
		t.Errorf("got score=%d depth=%d, want 55/4", score, depth)
	}
	_ = move

	if _, _, _, flag := tt.Probe(0xDEAD); flag != Ignore {
		t.Error("expected a miss to report Ignore")
	}
}

func TestTranspositionTableSnapshotRoundTrip(t *testing.T) {
	tt := NewTranspositionTable(1)
	tt.Store(42, board.NoMove, 10, 3, BestMove)
	tt.Store(43, board.NoMove, -5, 2, GoodMove)

	snap := tt.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected 2 snapshot records, got %d", len(snap))
	}

	fresh := NewTranspositionTable(1)
	fresh.LoadSnapshot(snap)
	if _, score, _, flag := fresh.Probe(42); flag == Ignore || score != 10 {
		t.Errorf("snapshot entry for hash 42 missing after reload")
	}
}
