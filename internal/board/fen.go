package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the standard starting position, extended with lichess-style
// three-check counters ("+0+0": neither side has given a check yet).
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1 +0+0"

// ParseFEN builds a BoardState from a FEN string. The placement, active
// color, castling, en-passant, and halfmove-clock fields follow standard
// FEN; a trailing "+W+B" field (lichess's three-check convention) seeds
// each side's check counter, and defaults to "+0+0" if absent.
func ParseFEN(fen string) (*BoardState, error) {
	fields := strings.Fields(strings.TrimSpace(fen))
	if len(fields) < 4 {
		return nil, fmt.Errorf("board: invalid FEN %q: too few fields", fen)
	}

	b := &BoardState{enpassant: NoSquare}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("board: invalid FEN %q: expected 8 ranks", fen)
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 7 // FEN ranks run a..h; this package's file 7 is 'a'
		for _, ch := range rankStr {
			switch {
			case ch >= '1' && ch <= '8':
				file -= int(ch - '0')
			default:
				p, ok := pieceFromChar(byte(ch))
				if !ok {
					return nil, fmt.Errorf("board: invalid FEN %q: bad piece %q", fen, ch)
				}
				if file < 0 {
					return nil, fmt.Errorf("board: invalid FEN %q: rank overflow", fen)
				}
				b.addPiece(p.Color, p.Type, NewSquare(file, rank))
				file--
			}
		}
	}

	switch fields[1] {
	case "w":
		b.side = White
	case "b":
		b.side = Black
	default:
		return nil, fmt.Errorf("board: invalid FEN %q: bad active color %q", fen, fields[1])
	}

	// Every right starts lost; FEN's castling field clears the ones present.
	b.flags |= castleWhiteKing | castleWhiteQueen | castleBlackKing | castleBlackQueen
	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				b.flags &^= castleWhiteKing
			case 'Q':
				b.flags &^= castleWhiteQueen
			case 'k':
				b.flags &^= castleBlackKing
			case 'q':
				b.flags &^= castleBlackQueen
			default:
				return nil, fmt.Errorf("board: invalid FEN %q: bad castling char %q", fen, ch)
			}
		}
	}

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("board: invalid FEN %q: bad en-passant square: %w", fen, err)
		}
		b.enpassant = sq
	}

	if len(fields) >= 5 {
		n, err := strconv.Atoi(fields[4])
		if err == nil {
			b.noCaptureCount = n
		}
	}
	if len(fields) >= 6 {
		n, err := strconv.Atoi(fields[5])
		if err == nil && n > 0 {
			b.ply = (n - 1) * 2
			if b.side == Black {
				b.ply++
			}
		}
	}

	whiteChecks, blackChecks := 0, 0
	if len(fields) >= 7 {
		fmt.Sscanf(fields[6], "+%d+%d", &whiteChecks, &blackChecks)
	}
	for i := 0; i < whiteChecks; i++ {
		b.flags.addCheck(White)
	}
	for i := 0; i < blackChecks; i++ {
		b.flags.addCheck(Black)
	}

	b.gamestage = estimateGamestageFromMaterial(b)
	b.hash = HashState(b)

	return b, nil
}

// FEN serializes b back to the extended lichess-style three-check FEN.
func (b *BoardState) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 7; file >= 0; file-- {
			p := b.PieceAt(NewSquare(file, rank))
			if p.Type == NoPieceType {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(p.Char())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if b.side == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	rights := ""
	if b.CanCastle(White, true) {
		rights += "K"
	}
	if b.CanCastle(White, false) {
		rights += "Q"
	}
	if b.CanCastle(Black, true) {
		rights += "k"
	}
	if b.CanCastle(Black, false) {
		rights += "q"
	}
	if rights == "" {
		rights = "-"
	}
	sb.WriteString(rights)

	sb.WriteByte(' ')
	sb.WriteString(b.enpassant.String())

	fmt.Fprintf(&sb, " %d %d", b.noCaptureCount, b.ply/2+1)
	fmt.Fprintf(&sb, " +%d+%d", b.flags.checks(White), b.flags.checks(Black))

	return sb.String()
}
