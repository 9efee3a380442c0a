package board

import "fmt"

// stateFlags packs castling rights and check counters into a single byte:
// bits 0-3 are "right lost" flags (white kingside, white queenside, black
// kingside, black queenside); bits 4-5 are white's check counter (0..3);
// bits 6-7 are black's check counter (0..3). A check counter reaching 3
// wins the game outright.
type stateFlags uint8

const (
	castleWhiteKing stateFlags = 1 << 0
	castleWhiteQueen stateFlags = 1 << 1
	castleBlackKing  stateFlags = 1 << 2
	castleBlackQueen stateFlags = 1 << 3

	checkShiftWhite = 4
	checkShiftBlack = 6
	checkMask       = 0x3
)

func (f stateFlags) castleIndex() int { return int(f & 0x0F) }
func (f stateFlags) checkIndex() int  { return int((f >> 4) & 0x0F) }

func (f stateFlags) hasRight(bit stateFlags) bool { return f&bit == 0 }

func (f *stateFlags) loseRight(bit stateFlags) { *f |= bit }

func (f stateFlags) checks(c Color) int {
	if c == White {
		return int(f>>checkShiftWhite) & checkMask
	}
	return int(f>>checkShiftBlack) & checkMask
}

func (f *stateFlags) addCheck(c Color) {
	n := f.checks(c)
	if n >= 3 {
		return
	}
	n++
	if c == White {
		*f = (*f &^ (checkMask << checkShiftWhite)) | stateFlags(n<<checkShiftWhite)
	} else {
		*f = (*f &^ (checkMask << checkShiftBlack)) | stateFlags(n<<checkShiftBlack)
	}
}

// BoardState is the complete mutable position: piece placement, side to
// move, castling/check flags, en-passant target, and the rolling
// incremental values (hash, material/PSQT accumulators) that MakeMove
// updates in place. It is an all-value type (no pointers or slices), so a
// plain struct assignment is a full, independent clone — the copy-make
// discipline search uses instead of an undo stack.
type BoardState struct {
	pieces        [2][6]Bitboard
	occupiedColor [2]Bitboard
	occupied      Bitboard

	side      Color
	flags     stateFlags
	enpassant Square

	noCaptureCount int
	ply            int

	midgame   int
	endgame   int
	gamestage int

	hash uint64
}

// Clone returns an independent copy of b; mutating the result never
// affects b.
func (b *BoardState) Clone() BoardState { return *b }

// rookStartSquare returns the home square of the kingside (true) or
// queenside (false) rook for color.
func rookStartSquare(color Color, kingSide bool) Square {
	rank := 0
	if color == Black {
		rank = 7
	}
	if kingSide {
		return NewSquare(0, rank) // h-file in the reversed-file convention
	}
	return NewSquare(7, rank) // a-file
}

// kingStartSquare returns color's home king square.
func kingStartSquare(color Color) Square {
	rank := 0
	if color == Black {
		rank = 7
	}
	return NewSquare(3, rank) // e-file
}

func castleRightBit(color Color, kingSide bool) stateFlags {
	switch {
	case color == White && kingSide:
		return castleWhiteKing
	case color == White && !kingSide:
		return castleWhiteQueen
	case color == Black && kingSide:
		return castleBlackKing
	default:
		return castleBlackQueen
	}
}

// PieceAt returns the piece occupying sq, or NoPiece if empty.
func (b *BoardState) PieceAt(sq Square) Piece {
	if !b.occupied.IsSet(sq) {
		return NoPiece
	}
	for c := White; c <= Black; c++ {
		if !b.occupiedColor[c].IsSet(sq) {
			continue
		}
		for pt := Pawn; pt <= King; pt++ {
			if b.pieces[c][pt].IsSet(sq) {
				return Piece{Type: pt, Color: c}
			}
		}
	}
	return NoPiece
}

// Side returns the side to move.
func (b *BoardState) Side() Color { return b.side }

// EnPassantSquare returns the current en-passant target square, or
// NoSquare if none.
func (b *BoardState) EnPassantSquare() Square { return b.enpassant }

// Hash returns the position's current Zobrist hash.
func (b *BoardState) Hash() uint64 { return b.hash }

// NoCaptureCount returns the half-move count since the last capture or
// pawn move, for fifty-move-rule style draw detection.
func (b *BoardState) NoCaptureCount() int { return b.noCaptureCount }

// Checks returns color's accumulated check count (0..3).
func (b *BoardState) Checks(color Color) int { return b.flags.checks(color) }

// Gamestage returns the raw (unclamped) gamestage accumulator: the summed
// weight of every piece captured so far. Evaluate/
// StaticEvaluate clamp this to gamestageMax themselves before interpolating.
func (b *BoardState) Gamestage() int { return b.gamestage }

// CanCastle reports whether color still holds the kingside/queenside
// castling right (independent of whether castling is legal right now).
func (b *BoardState) CanCastle(color Color, kingSide bool) bool {
	return b.flags.hasRight(castleRightBit(color, kingSide))
}

func (b *BoardState) addPiece(c Color, pt PieceType, sq Square) {
	b.pieces[c][pt] = b.pieces[c][pt].Set(sq)
	b.occupiedColor[c] = b.occupiedColor[c].Set(sq)
	b.occupied = b.occupied.Set(sq)
	b.hash ^= zobristPiece[c][pt][sq]
	mg, eg := pieceSquareValue(c, pt, sq)
	b.midgame += mg
	b.endgame += eg
}

func (b *BoardState) removePiece(c Color, pt PieceType, sq Square) {
	b.pieces[c][pt] = b.pieces[c][pt].Clear(sq)
	b.occupiedColor[c] = b.occupiedColor[c].Clear(sq)
	b.occupied = b.occupied.Clear(sq)
	b.hash ^= zobristPiece[c][pt][sq]
	mg, eg := pieceSquareValue(c, pt, sq)
	b.midgame -= mg
	b.endgame -= eg
}

// Reset sets b to the standard 3-check starting position: the ordinary
// chess array, zero checks for both sides, full castling rights, no
// en-passant target.
func (b *BoardState) Reset() {
	*b = BoardState{}
	b.enpassant = NoSquare
	b.flags = 0

	backRank := [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file := 0; file < 8; file++ {
		b.addPiece(White, backRank[file], NewSquare(file, 0))
		b.addPiece(White, Pawn, NewSquare(file, 1))
		b.addPiece(Black, Pawn, NewSquare(file, 6))
		b.addPiece(Black, backRank[file], NewSquare(file, 7))
	}

	b.side = White
	b.gamestage = 0
	b.hash ^= zobristCastle[b.flags.castleIndex()]
	b.hash ^= zobristCheck[b.flags.checkIndex()]
	b.hash ^= zobristEnPassant[enPassantKeyIndex(b.enpassant)]
}

// MakeMove applies m to b in place and reports whether the resulting
// position is legal (the side that just moved must not be left in check).
// Illegal applications still mutate b; callers must discard an already
// cloned BoardState on a false return rather than attempt to undo it
// This is copy-make: there is no unmake.
func (b *BoardState) MakeMove(m Move) bool {
	us := b.side
	them := us.Other()
	src, dest := m.Src(), m.Dest()
	moved := m.Moved()

	b.hash ^= zobristEnPassant[enPassantKeyIndex(b.enpassant)]
	b.hash ^= zobristCastle[b.flags.castleIndex()]

	if m.IsCapture() && !m.IsEnPassant() {
		victim := b.PieceAt(dest)
		if victim.Type != NoPieceType {
			b.removePiece(them, victim.Type, dest)
			b.loseCastlingRightsFor(them, dest)
			b.gamestage += gamePhaseValue[victim.Type]
		}
	}
	if m.IsCapture() && m.IsEnPassant() {
		capturedRank := dest.Rank() - 1
		if us == Black {
			capturedRank = dest.Rank() + 1
		}
		capturedSq := NewSquare(dest.File(), capturedRank)
		b.removePiece(them, Pawn, capturedSq)
		b.gamestage += gamePhaseValue[Pawn]
	}

	b.removePiece(us, moved, src)
	b.addPiece(us, m.Promoted(), dest)

	if m.IsCastle() {
		kingSide := dest.File() < src.File()
		rookFrom := rookStartSquare(us, kingSide)
		rookToFile := 4
		if kingSide {
			rookToFile = 2
		}
		rookTo := NewSquare(rookToFile, src.Rank())
		b.removePiece(us, Rook, rookFrom)
		b.addPiece(us, Rook, rookTo)
	}

	b.loseCastlingRightsFor(us, src)
	if moved == King {
		b.loseCastlingRightsFor(us, kingStartSquare(us))
	}

	b.enpassant = NoSquare
	if moved == Pawn && !m.IsCapture() && m.IsEnPassant() {
		epRank := (src.Rank() + dest.Rank()) / 2
		b.enpassant = NewSquare(src.File(), epRank)
	}

	if moved == Pawn || m.IsCapture() {
		b.noCaptureCount = 0
	} else {
		b.noCaptureCount++
	}

	b.side = them
	b.ply++

	b.hash ^= zobristCastle[b.flags.castleIndex()]
	b.hash ^= zobristEnPassant[enPassantKeyIndex(b.enpassant)]

	kingSq := b.pieces[us][King].LSB()
	if b.IsAttacked(kingSq, them) {
		return false
	}

	if b.IsAttacked(b.pieces[them][King].LSB(), us) {
		// us just delivered check to them: us's delivered-checks counter
		// advances, not them's: the checker's count wins at 3.
		b.hash ^= zobristCheck[b.flags.checkIndex()]
		b.flags.addCheck(us)
		b.hash ^= zobristCheck[b.flags.checkIndex()]
	}

	return true
}

func (b *BoardState) loseCastlingRightsFor(color Color, sq Square) {
	if sq == kingStartSquare(color) {
		b.flags.loseRight(castleRightBit(color, true))
		b.flags.loseRight(castleRightBit(color, false))
		return
	}
	if sq == rookStartSquare(color, true) {
		b.flags.loseRight(castleRightBit(color, true))
	} else if sq == rookStartSquare(color, false) {
		b.flags.loseRight(castleRightBit(color, false))
	}
}

// Result reports the game outcome from b's position, or ResultOngoing if
// no side has delivered three checks. It does not itself detect
// stalemate/checkmate beyond the check-counter win;
// callers combine it with "has a legal move" from movegen.
type Result int

const (
	ResultOngoing Result = iota
	ResultWhiteWinsByChecks
	ResultBlackWinsByChecks
)

// GetResult resolves the "whose counter reaches 3 wins" rule:
// whichever side has delivered three checks wins immediately, checked
// before any checkmate/stalemate determination.
func (b *BoardState) GetResult() Result {
	if b.flags.checks(White) >= 3 {
		return ResultWhiteWinsByChecks
	}
	if b.flags.checks(Black) >= 3 {
		return ResultBlackWinsByChecks
	}
	return ResultOngoing
}

// String renders a diagnostic ASCII board plus side-to-move, castling
// rights, check counts, en-passant target, half-move clock, and the
// rolling hash. Intended for logging and
// tests, not for the search hot path.
func (b *BoardState) String() string {
	s := ""
	for rank := 7; rank >= 0; rank-- {
		s += fmt.Sprintf("%d ", rank+1)
		for file := 7; file >= 0; file-- {
			p := b.PieceAt(NewSquare(file, rank))
			if p.Type == NoPieceType {
				s += ". "
			} else {
				s += string(p.Char()) + " "
			}
		}
		s += "\n"
	}
	s += "  a b c d e f g h\n"
	side := "white"
	if b.side == Black {
		side = "black"
	}
	rights := ""
	for _, r := range []struct {
		color    Color
		kingSide bool
		char     string
	}{{White, true, "K"}, {White, false, "Q"}, {Black, true, "k"}, {Black, false, "q"}} {
		if b.CanCastle(r.color, r.kingSide) {
			rights += r.char
		}
	}
	if rights == "" {
		rights = "-"
	}
	s += fmt.Sprintf("side=%s castling=%s checks=%d/%d ep=%s halfmove=%d hash=%016x\n",
		side, rights, b.flags.checks(White), b.flags.checks(Black), b.enpassant, b.noCaptureCount, b.hash)
	return s
}
