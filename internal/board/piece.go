package board

// PieceType enumerates piece kinds in the order the move encoding's
// packed fields depend on (not the conventional P,N,B,R,Q,K order).
type PieceType uint8

const (
	Pawn PieceType = iota
	Bishop
	Knight
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

// Char returns the lowercase FEN letter for the piece type.
func (pt PieceType) Char() byte {
	chars := [7]byte{'p', 'b', 'n', 'r', 'q', 'k', ' '}
	if pt > King {
		return ' '
	}
	return chars[pt]
}

// Color is White or Black.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposing color.
func (c Color) Other() Color { return 1 - c }

// Piece combines a PieceType and a Color.
type Piece struct {
	Type  PieceType
	Color Color
}

// NoPiece marks an empty square.
var NoPiece = Piece{Type: NoPieceType, Color: NoColor}

// Char returns the FEN letter for the piece (uppercase for white).
func (p Piece) Char() byte {
	c := p.Type.Char()
	if p.Color == White && c != ' ' {
		c -= 'a' - 'A'
	}
	return c
}

// pieceFromChar converts a FEN piece letter to a Piece.
func pieceFromChar(c byte) (Piece, bool) {
	lower := c
	color := White
	if c >= 'a' && c <= 'z' {
		color = Black
	} else if c >= 'A' && c <= 'Z' {
		lower = c + ('a' - 'A')
	}
	for pt := Pawn; pt <= King; pt++ {
		if pt.Char() == lower {
			return Piece{Type: pt, Color: color}, true
		}
	}
	return NoPiece, false
}
