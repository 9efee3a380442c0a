package board

// Piece-square evaluation, following the PeSTO tapered-eval approach:
// every piece has a midgame and an endgame score per square, and the two
// are blended by a gamestage that rises as material comes off the board.
// BoardState keeps midgame/endgame as rolling sums so Evaluate never has
// to rescan the board; StaticEvaluate recomputes from scratch for tests
// that check the rolling value stays consistent.

// gamePhaseValue is the weight assigned to each piece type when it is
// removed from the board: gamestage accumulates these on every capture, it
// is never a function of material still in play.
var gamePhaseValue = [6]int{
	Pawn:   1,
	Bishop: 1,
	Knight: 1,
	Rook:   2,
	Queen:  4,
	King:   0,
}

// gamestageMax is the interpolation cap ("stage = min(24, gamestage)"):
// gamestage itself may keep climbing past this as captures accumulate,
// but Evaluate clamps the stage it interpolates by.
const gamestageMax = 24

// totalPhaseWeight is the sum of gamePhaseValue over a full starting army
// (both colors), used only to estimate an initial gamestage for a position
// parsed from FEN, where no capture history is available.
const totalPhaseWeight = 2 * (8*1 + 2*1 + 2*1 + 2*2 + 1*4)

// pieceValue is the material score in centipawns, indexed by PieceType.
var pieceValue = [6]int{100, 330, 320, 500, 900, 0}

// PieceValue returns the material value of pt in centipawns.
func PieceValue(pt PieceType) int { return pieceValue[pt] }

// psqt holds [piece][square] midgame/endgame scores from White's
// perspective; square 63 is a8, square 0 is h1 in this package's
// reversed-file indexing, so tables are mirrored at load time from the
// usual a1=0 layout for readability in pesqtSourceA1.
var psqtMidgame [6][64]int
var psqtEndgame [6][64]int

// pesqtSourceA1 lists midgame/endgame pairs per piece in the conventional
// a1=0, a-file-first, rank-major order (PeSTO's own table layout), which
// init() remaps into this package's h1=0 reversed-file squares.
var pesqtSourceA1 = [6][64][2]int{
	Pawn: {
		{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0},
		{-35, 13}, {-1, 8}, {-20, 8}, {-23, 10}, {-15, 13}, {24, 0}, {38, 2}, {-22, -7},
		{-26, 4}, {-4, 7}, {-4, -6}, {-10, 1}, {3, 0}, {3, -5}, {33, -1}, {-12, -8},
		{-27, 13}, {-2, 9}, {-5, -3}, {12, -7}, {17, -7}, {6, -8}, {10, 3}, {-25, -1},
		{-14, 32}, {13, 24}, {6, 13}, {21, 5}, {23, -2}, {12, 4}, {17, 17}, {-23, 17},
		{-6, 94}, {7, 100}, {26, 85}, {31, 67}, {65, 56}, {56, 53}, {25, 82}, {-20, 84},
		{98, 178}, {134, 173}, {61, 158}, {95, 134}, {68, 147}, {126, 132}, {34, 165}, {-11, 187},
		{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0},
	},
	Knight: {
		{-105, -29}, {-21, -51}, {-58, -23}, {-33, -15}, {-17, -22}, {-28, -18}, {-19, -50}, {-23, -64},
		{-29, -42}, {-53, -20}, {-12, -10}, {-3, -5}, {-1, -2}, {18, -20}, {-14, -23}, {-19, -44},
		{-23, -23}, {-9, -3}, {12, -1}, {10, 15}, {19, 10}, {17, -3}, {25, -20}, {-16, -22},
		{-13, -18}, {4, -6}, {16, 16}, {13, 25}, {28, 16}, {19, 17}, {21, 4}, {-8, -18},
		{-9, -17}, {17, 3}, {19, 22}, {53, 22}, {37, 22}, {69, 11}, {18, 8}, {22, -18},
		{-47, -24}, {60, -20}, {37, 10}, {65, 9}, {84, -1}, {129, -9}, {73, -19}, {44, -41},
		{-73, -25}, {-41, -8}, {72, -25}, {36, -2}, {23, -9}, {62, -26}, {7, -24}, {-17, -52},
		{-167, -58}, {-89, -38}, {-34, -13}, {-49, -28}, {61, -31}, {-97, -27}, {-15, -63}, {-107, -99},
	},
	Bishop: {
		{-33, -23}, {-3, -9}, {-14, -23}, {-21, -5}, {-13, -9}, {-12, -16}, {-39, -5}, {-21, -17},
		{4, -14}, {15, -18}, {16, -7}, {0, -1}, {7, 4}, {21, -9}, {33, -15}, {1, -27},
		{0, -12}, {15, -3}, {15, 8}, {15, 10}, {14, 13}, {27, 3}, {18, -7}, {10, -15},
		{-6, -6}, {13, 3}, {13, 13}, {26, 19}, {34, 7}, {12, 10}, {10, -3}, {4, -9},
		{-4, -3}, {5, 9}, {19, 12}, {50, 9}, {37, 14}, {37, 10}, {7, 3}, {-2, 2},
		{-16, 2}, {37, -8}, {43, 0}, {40, -1}, {35, -2}, {50, 6}, {37, 0}, {-2, 4},
		{-26, -6}, {16, -13}, {-18, -3}, {-13, -1}, {30, -8}, {59, -15}, {18, -4}, {-47, -14},
		{-29, -14}, {4, -21}, {-82, -11}, {-37, -8}, {-25, -7}, {-42, -9}, {7, -17}, {-8, -24},
	},
	Rook: {
		{-19, -9}, {-13, 2}, {1, 3}, {17, -1}, {16, -5}, {7, -13}, {-37, 4}, {-26, -20},
		{-44, -6}, {-16, -6}, {-20, 0}, {-9, 2}, {-1, -9}, {11, -9}, {-6, -11}, {-71, -3},
		{-45, -4}, {-25, 0}, {-16, -5}, {-17, -1}, {3, -7}, {0, -12}, {-5, -8}, {-33, -16},
		{-36, 3}, {-26, 5}, {-12, 8}, {-1, 4}, {9, -5}, {-7, -6}, {6, -8}, {-23, -11},
		{-24, 4}, {-11, 3}, {7, 13}, {26, 1}, {24, 2}, {35, 1}, {-8, -1}, {-20, 2},
		{-5, 7}, {19, 7}, {26, 7}, {36, 5}, {17, 4}, {45, -3}, {61, -5}, {16, -3},
		{27, 11}, {32, 13}, {58, 13}, {62, 11}, {80, -3}, {67, 3}, {26, 8}, {44, 3},
		{32, 13}, {42, 10}, {32, 18}, {51, 15}, {63, 12}, {9, 12}, {31, 8}, {43, 5},
	},
	Queen: {
		{-1, -33}, {-18, -28}, {-9, -22}, {10, -43}, {-15, -5}, {-25, -32}, {-31, -20}, {-50, -41},
		{-35, -22}, {-8, -23}, {11, -30}, {2, -16}, {8, -16}, {15, -23}, {-3, -36}, {1, -32},
		{-14, -16}, {2, -27}, {-11, 15}, {-2, 6}, {-5, 9}, {2, 17}, {14, 10}, {5, 5},
		{-9, -18}, {-26, 28}, {-9, 19}, {-10, 47}, {-2, 31}, {-4, 34}, {3, 39}, {-3, 23},
		{-27, 3}, {-27, 22}, {-16, 24}, {-16, 45}, {-1, 57}, {17, 40}, {-2, 57}, {1, 36},
		{-13, 22}, {-17, 23}, {7, 35}, {8, 23}, {29, 43}, {56, 38}, {47, 19}, {57, 15},
		{-24, 22}, {-39, 21}, {-5, 31}, {1, 34}, {-16, 47}, {57, 10}, {28, 25}, {54, 17},
		{-28, -9}, {0, 22}, {29, 22}, {12, 27}, {59, 27}, {44, 19}, {43, 10}, {45, 20},
	},
	King: {
		{-15, -53}, {36, -34}, {12, -21}, {-54, -11}, {8, -28}, {-28, -14}, {24, -24}, {14, -43},
		{1, -27}, {7, -11}, {-8, 4}, {-64, 13}, {-43, 14}, {-16, 4}, {9, -5}, {8, -17},
		{-14, -19}, {-14, -3}, {-22, 11}, {-46, 21}, {-44, 23}, {-30, 16}, {-15, 7}, {-27, -9},
		{-49, -18}, {-1, -4}, {-27, 21}, {-39, 24}, {-46, 27}, {-44, 23}, {-33, 9}, {-51, -11},
		{-17, -8}, {-20, 22}, {-12, 24}, {-27, 27}, {-30, 26}, {-25, 33}, {-14, 26}, {-36, 3},
		{-9, 10}, {24, 17}, {2, 23}, {-16, 15}, {-20, 20}, {6, 45}, {22, 44}, {-22, 13},
		{29, -12}, {-1, 17}, {-20, 14}, {-7, 17}, {-8, 17}, {-4, 38}, {-38, 23}, {-29, 11},
		{-65, -74}, {23, -35}, {16, -18}, {-15, -18}, {-56, -11}, {-34, 15}, {2, 4}, {13, -17},
	},
}

func init() {
	for pt := Pawn; pt <= King; pt++ {
		for sqA1 := 0; sqA1 < 64; sqA1++ {
			fileA1 := sqA1 % 8
			rank := sqA1 / 8
			file := 7 - fileA1
			sq := NewSquare(file, rank)
			pair := pesqtSourceA1[pt][sqA1]
			psqtMidgame[pt][sq] = pair[0]
			psqtEndgame[pt][sq] = pair[1]
		}
	}
}

// pieceSquareValue returns the (midgame, endgame) contribution of placing
// color's piece pt on sq, from White's perspective (Black's squares are
// mirrored vertically and negated, per the usual tapered-eval idiom).
func pieceSquareValue(color Color, pt PieceType, sq Square) (int, int) {
	relSq := sq
	if color == Black {
		relSq = NewSquare(sq.File(), 7-sq.Rank())
	}
	mg := pieceValue[pt] + psqtMidgame[pt][relSq]
	eg := pieceValue[pt] + psqtEndgame[pt][relSq]
	if color == Black {
		return -mg, -eg
	}
	return mg, eg
}

// estimateGamestageFromMaterial derives a starting gamestage for a position
// with no known capture history (i.e. one built by ParseFEN rather than by
// playing moves from Reset): the weight of everything no longer on the
// board, relative to a full starting army. Reset itself needs no estimate -
// it always starts at 0, since nothing has been captured yet.
func estimateGamestageFromMaterial(b *BoardState) int {
	remaining := 0
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			remaining += b.pieces[c][pt].PopCount() * gamePhaseValue[pt]
		}
	}
	stage := totalPhaseWeight - remaining
	if stage < 0 {
		stage = 0
	}
	return stage
}

// clampedGamestage returns b.gamestage clamped to gamestageMax, the stage
// actually used to interpolate midgame/endgame ("stage =
// min(24, gamestage)"); the unclamped field itself keeps climbing with
// every capture so it stays monotonically nondecreasing.
func (b *BoardState) clampedGamestage() int {
	if b.gamestage > gamestageMax {
		return gamestageMax
	}
	return b.gamestage
}

// Evaluate returns the rolling, tapered static evaluation from White's
// perspective, interpolating the incrementally maintained midgame and
// endgame accumulators by gamestage:
// score = (mg*(24-stage) + eg*stage)/24.
func (b *BoardState) Evaluate() int {
	stage := b.clampedGamestage()
	return (b.midgame*(gamestageMax-stage) + b.endgame*stage) / gamestageMax
}

// StaticEvaluate recomputes the evaluation from scratch by rescanning
// every piece, ignoring the rolling accumulators entirely. Used by tests
// to check the rolling Evaluate never drifts from a from-scratch
// recomputation.
func (b *BoardState) StaticEvaluate() int {
	mg, eg := 0, 0
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			bb := b.pieces[c][pt]
			for bb != 0 {
				sq := bb.PopLSB()
				m, e := pieceSquareValue(c, pt, sq)
				mg += m
				eg += e
			}
		}
	}
	stage := b.clampedGamestage()
	return (mg*(gamestageMax-stage) + eg*stage) / gamestageMax
}
