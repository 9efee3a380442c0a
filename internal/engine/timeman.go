package engine

// Difficulty selects a fixed per-move time budget and a maximum search
// depth. There is no UCI clock protocol to negotiate here, so a move
// gets a flat time budget rather than a time-left/increment allocation.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// DifficultySettings maps a difficulty to its search budget.
var DifficultySettings = map[Difficulty]struct {
	MaxDepth   int
	MoveTimeMs int
}{
	Easy:   {MaxDepth: 8, MoveTimeMs: 500},
	Medium: {MaxDepth: 16, MoveTimeMs: 2000},
	Hard:   {MaxDepth: 40, MoveTimeMs: 5000},
}
