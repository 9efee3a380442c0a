package board

import "fmt"

// Move packs a move into 32 bits, laid out as:
//
//	bits 0-7    src square
//	bits 8-15   dest square
//	bits 16-19  moved piece type
//	bits 20-23  promoted piece type (equals moved piece if no promotion)
//	bit  24     CAPTURE
//	bit  25     CASTLE
//	bit  26     ENPASSANT
//	bit  27     UNCASTLE
//	bits 28-31  ordering score (0..15), not part of move identity
type Move uint32

const (
	flagCapture   Move = 1 << 24
	flagCastle    Move = 1 << 25
	flagEnPassant Move = 1 << 26
	flagUncastle  Move = 1 << 27

	scoreShift = 28
	// identityMask strips the ordering score so two moves that differ only
	// in search-assigned score still compare equal.
	identityMask Move = 0x0FFFFFFF
)

// NoMove is the null/absent move.
const NoMove Move = 0

// NewMove packs a move from its fields. score is clamped to 0..15.
func NewMove(src, dest Square, moved, promoted PieceType, capture, castle, enpassant, uncastle bool, score int) Move {
	m := Move(src) | Move(dest)<<8 | Move(moved)<<16 | Move(promoted)<<20
	if capture {
		m |= flagCapture
	}
	if castle {
		m |= flagCastle
	}
	if enpassant {
		m |= flagEnPassant
	}
	if uncastle {
		m |= flagUncastle
	}
	if score < 0 {
		score = 0
	}
	if score > 15 {
		score = 15
	}
	m |= Move(score) << scoreShift
	return m
}

func (m Move) Src() Square          { return Square(m & 0xFF) }
func (m Move) Dest() Square         { return Square((m >> 8) & 0xFF) }
func (m Move) Moved() PieceType     { return PieceType((m >> 16) & 0xF) }
func (m Move) Promoted() PieceType  { return PieceType((m >> 20) & 0xF) }
func (m Move) IsCapture() bool      { return m&flagCapture != 0 }
func (m Move) IsCastle() bool       { return m&flagCastle != 0 }
func (m Move) IsEnPassant() bool    { return m&flagEnPassant != 0 }
func (m Move) IsUncastle() bool     { return m&flagUncastle != 0 }
func (m Move) Score() int           { return int((m >> scoreShift) & 0xF) }
func (m Move) IsPromotion() bool    { return m.Promoted() != m.Moved() && m.Moved() == Pawn }

// SameMove compares two moves ignoring the ordering score.
func SameMove(a, b Move) bool { return a&identityMask == b&identityMask }

// String renders UCI-style coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.Src().String() + m.Dest().String()
	if m.IsPromotion() {
		s += string(m.Promoted().Char())
	}
	return s
}

// MoveList is a fixed-capacity move array; it never allocates on the hot
// path and its contents' lifetime is the enclosing call.
type MoveList struct {
	moves [128]Move
	count int
}

func (ml *MoveList) Add(m Move)         { ml.moves[ml.count] = m; ml.count++ }
func (ml *MoveList) Len() int           { return ml.count }
func (ml *MoveList) Get(i int) Move     { return ml.moves[i] }
func (ml *MoveList) Clear()             { ml.count = 0 }
func (ml *MoveList) Swap(i, j int)      { ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i] }

// SortByScore orders moves by descending packed ordering score (stable
// insertion sort - lists are short: at most 128 entries, usually under 40).
func (ml *MoveList) SortByScore() {
	for i := 1; i < ml.count; i++ {
		m := ml.moves[i]
		j := i - 1
		for j >= 0 && ml.moves[j].Score() < m.Score() {
			ml.moves[j+1] = ml.moves[j]
			j--
		}
		ml.moves[j+1] = m
	}
}

// ParseMove decodes a UCI-style move string against pos to recover the
// moved/promoted piece types and special-move flags. Used by front-ends
// applying a player's move; the core never parses human notation itself.
func ParseMove(pos *BoardState, s string) (Move, error) {
	if len(s) < 4 {
		return NoMove, fmt.Errorf("invalid move %q", s)
	}
	src, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	dest, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}
	piece := pos.PieceAt(src)
	if piece.Type == NoPieceType {
		return NoMove, fmt.Errorf("no piece on %s", src)
	}

	promoted := piece.Type
	if len(s) == 5 {
		p, ok := pieceFromChar(s[4])
		if !ok {
			return NoMove, fmt.Errorf("invalid promotion piece %q", s[4:5])
		}
		promoted = p.Type
	}

	capture := pos.PieceAt(dest).Type != NoPieceType
	enpassant := piece.Type == Pawn && dest == pos.EnPassantSquare() && !capture
	if enpassant {
		capture = true
	} else if piece.Type == Pawn && !capture && abs(int(dest.Rank())-int(src.Rank())) == 2 {
		them := pos.Side().Other()
		epSquare := NewSquare(src.File(), (src.Rank()+dest.Rank())/2)
		enpassant = pawnAttacks[pos.Side()][epSquare]&pos.pieces[them][Pawn] != 0
	}
	castle := piece.Type == King && abs(int(dest.File())-int(src.File())) == 2
	uncastle := piece.Type == King || isCornerRook(pos, src, piece) || isCornerRook(pos, dest, pos.PieceAt(dest))

	return NewMove(src, dest, piece.Type, promoted, capture, castle, enpassant, uncastle, 0), nil
}

func isCornerRook(pos *BoardState, sq Square, p Piece) bool {
	if p.Type != Rook {
		return false
	}
	return sq == rookStartSquare(p.Color, true) || sq == rookStartSquare(p.Color, false)
}
