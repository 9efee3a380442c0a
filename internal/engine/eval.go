package engine

import "github.com/threecheck/engine/internal/board"

// QueenValue is quiescence's delta-pruning margin: a capture that can't
// possibly recover a queen's worth of material is not worth searching.
var QueenValue = board.PieceValue(board.Queen)
