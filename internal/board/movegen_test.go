package board

import "testing"

func init() {
	InitZobristTable(0xC0FFEE)
}

func startPosition() *BoardState {
	b := &BoardState{}
	b.Reset()
	return b
}

// TestStartingMoveCount checks the well-known 20-legal-move count for the
// initial position.
func TestStartingMoveCount(t *testing.T) {
	b := startPosition()
	var list MoveList
	b.GenerateAllMoves(&list)

	legal := 0
	for i := 0; i < list.Len(); i++ {
		child := b.Clone()
		if child.MakeMove(list.Get(i)) {
			legal++
		}
	}
	if legal != 20 {
		t.Errorf("legal moves from start = %d, want 20", legal)
	}
}

func perft(b *BoardState, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var list MoveList
	b.GenerateAllMoves(&list)
	var nodes uint64
	for i := 0; i < list.Len(); i++ {
		child := b.Clone()
		if !child.MakeMove(list.Get(i)) {
			continue
		}
		nodes += perft(&child, depth-1)
	}
	return nodes
}

// TestPerftDepth1To3 checks the standard published perft counts for the
// initial position at shallow depth. Depth 3 is included since it is still
// fast and is the first depth that exercises castling-rights loss and
// en-passant capture generation together; deeper depths are left to a
// manual perft run rather than the regular test suite, since a naive
// copy-make perft at that depth is multiple seconds of work.
func TestPerftDepth1To3(t *testing.T) {
	b := startPosition()
	if got := perft(b, 1); got != 20 {
		t.Errorf("perft(1) = %d, want 20", got)
	}
	if got := perft(b, 2); got != 400 {
		t.Errorf("perft(2) = %d, want 400", got)
	}
	if got := perft(b, 3); got != 8902 {
		t.Errorf("perft(3) = %d, want 8902", got)
	}
}

func TestRollingEvaluateMatchesStatic(t *testing.T) {
	b := startPosition()
	var list MoveList
	b.GenerateAllMoves(&list)
	for i := 0; i < list.Len(); i++ {
		child := b.Clone()
		if !child.MakeMove(list.Get(i)) {
			continue
		}
		if got, want := child.Evaluate(), child.StaticEvaluate(); got != want {
			t.Errorf("move %s: rolling Evaluate = %d, StaticEvaluate = %d", list.Get(i), got, want)
		}
	}
}

func TestHashMatchesFromScratch(t *testing.T) {
	b := startPosition()
	if got, want := b.Hash(), HashState(b); got != want {
		t.Errorf("start position rolling hash = %x, want %x", got, want)
	}

	var list MoveList
	b.GenerateAllMoves(&list)
	for i := 0; i < list.Len(); i++ {
		child := b.Clone()
		if !child.MakeMove(list.Get(i)) {
			continue
		}
		if got, want := child.Hash(), HashState(&child); got != want {
			t.Errorf("move %s: rolling hash = %x, want %x", list.Get(i), got, want)
		}
	}
}

func TestCastlingRightsLostOnKingMove(t *testing.T) {
	fen := "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1 +0+0"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m, err := ParseMove(b, "e1e2")
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if !b.MakeMove(m) {
		t.Fatal("e1e2 should be legal")
	}
	if b.CanCastle(White, true) || b.CanCastle(White, false) {
		t.Error("white should lose both castling rights after moving the king")
	}
	if !b.CanCastle(Black, true) || !b.CanCastle(Black, false) {
		t.Error("black castling rights should be unaffected")
	}
}

func TestCastleMovesRookToo(t *testing.T) {
	fen := "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1 +0+0"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m, err := ParseMove(b, "e1g1")
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if !m.IsCastle() {
		t.Fatal("e1g1 should be detected as castling")
	}
	if !b.MakeMove(m) {
		t.Fatal("kingside castle should be legal")
	}
	f1, _ := ParseSquare("f1")
	g1, _ := ParseSquare("g1")
	if b.PieceAt(g1).Type != King {
		t.Error("king should be on g1 after castling")
	}
	if b.PieceAt(f1).Type != Rook {
		t.Error("rook should be on f1 after castling")
	}
}

// TestGamestageNondecreasing checks that across any sequence of applied
// moves, gamestage never drops, and a capture strictly increases it by
// the victim's weight.
func TestGamestageNondecreasing(t *testing.T) {
	fen := "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 1 +0+0"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	before := b.Gamestage()
	if before != 0 {
		t.Fatalf("gamestage before any capture = %d, want 0", before)
	}

	m, err := ParseMove(b, "e4d5")
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if !m.IsCapture() {
		t.Fatal("e4d5 should capture the pawn on d5")
	}
	if !b.MakeMove(m) {
		t.Fatal("e4d5 should be legal")
	}
	if got, want := b.Gamestage(), before+1; got != want {
		t.Errorf("gamestage after capturing a pawn = %d, want %d", got, want)
	}
}

// TestDoublePushSetsEnPassantTarget checks that from the starting position,
// e2e4 flips the side to move but leaves no en-passant target, since no
// black pawn is adjacent to e4.
func TestDoublePushSetsEnPassantTarget(t *testing.T) {
	b := startPosition()
	m, err := ParseMove(b, "e2e4")
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if !b.MakeMove(m) {
		t.Fatal("e2e4 should be legal from the starting position")
	}
	if b.EnPassantSquare() != NoSquare {
		t.Errorf("en-passant target = %s, want none: no black pawn is adjacent to e4", b.EnPassantSquare())
	}
	if b.Side() != Black {
		t.Error("side to move should flip to black after e2e4")
	}
}

// TestDoublePushSetsEnPassantTargetWithAdjacentPawn checks that a double
// push sets the en-passant target when an enemy pawn is actually adjacent
// to the destination square, able to capture it.
func TestDoublePushSetsEnPassantTargetWithAdjacentPawn(t *testing.T) {
	b, err := ParseFEN("4k3/8/8/8/3p4/8/4P3/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m, err := ParseMove(b, "e2e4")
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if !b.MakeMove(m) {
		t.Fatal("e2e4 should be legal")
	}
	e3, _ := ParseSquare("e3")
	if b.EnPassantSquare() != e3 {
		t.Errorf("en-passant target = %s, want e3: black pawn on d4 can capture there", b.EnPassantSquare())
	}
}

func TestThreeCheckWin(t *testing.T) {
	b := &BoardState{enpassant: NoSquare}
	b.flags.addCheck(White)
	b.flags.addCheck(White)
	if got := b.GetResult(); got != ResultOngoing {
		t.Errorf("result after 2 checks = %v, want ResultOngoing", got)
	}
	b.flags.addCheck(White)
	if got := b.GetResult(); got != ResultWhiteWinsByChecks {
		t.Errorf("result after 3 checks = %v, want ResultWhiteWinsByChecks", got)
	}
}

// TestThirdCheckEndsGameOnRealMove checks against an actually-applied move
// rather than synthetic flags: white has already delivered two checks, and
// a plain queen move down the open e-file delivers the third, ending the
// game immediately.
func TestThirdCheckEndsGameOnRealMove(t *testing.T) {
	fen := "4k3/8/8/8/8/8/8/3Q3K w - - 0 1 +2+0"
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if got := b.GetResult(); got != ResultOngoing {
		t.Fatalf("result before the third check = %v, want ResultOngoing", got)
	}

	m, err := ParseMove(b, "d1e1")
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if !b.MakeMove(m) {
		t.Fatal("Qd1-e1 should be legal")
	}
	if !b.InCheck() {
		t.Fatal("black king should be in check on the open e-file")
	}
	if got := b.GetResult(); got != ResultWhiteWinsByChecks {
		t.Errorf("result after the third check = %v, want ResultWhiteWinsByChecks", got)
	}
}
