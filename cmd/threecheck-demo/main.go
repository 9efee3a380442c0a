// Command threecheck-demo plays a three-check game between the engine
// and itself, printing each move and the final result. It exercises the
// same Engine API a GUI or UCI front-end would use, without any render
// loop or protocol parser.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/threecheck/engine/internal/board"
	"github.com/threecheck/engine/internal/engine"
)

func main() {
	fen := flag.String("fen", board.StartFEN, "starting position")
	maxMoves := flag.Int("moves", 80, "maximum plies before stopping")
	ttMB := flag.Int("tt", 32, "transposition table size in MB")
	difficulty := flag.String("difficulty", "medium", "easy|medium|hard")
	warmStartDir := flag.String("warmstart", "", "directory to load/save a transposition table snapshot (empty disables)")
	protocol := flag.Bool("protocol", false, "drive the game through the literal ApplyPlayerMove/ChooseEngineMove text contract instead of SearchMove")
	timeBudgetMs := flag.Int("movetime", 2000, "time budget in ms passed to ChooseEngineMove (only with -protocol)")
	maxDepth := flag.Int("depth", 16, "max ply depth passed to ChooseEngineMove (only with -protocol)")
	flag.Parse()

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		log.Fatalf("invalid FEN: %v", err)
	}

	e := engine.NewEngine(*ttMB)
	switch *difficulty {
	case "easy":
		e.SetDifficulty(engine.Easy)
	case "hard":
		e.SetDifficulty(engine.Hard)
	default:
		e.SetDifficulty(engine.Medium)
	}

	if *warmStartDir != "" {
		if err := e.WarmStartFromDisk(*warmStartDir); err != nil {
			log.Printf("warm start skipped: %v", err)
		}
	}

	fmt.Println(e.GetState(pos))

	if *protocol {
		runProtocol(e, pos, *maxMoves, *timeBudgetMs, *maxDepth)
	} else {
		runSelfPlay(e, pos, *maxMoves)
	}

	fmt.Println(e.GetState(pos))

	if *warmStartDir != "" {
		if err := e.SaveToDisk(*warmStartDir); err != nil {
			log.Printf("could not save transposition table: %v", err)
		}
	}
}

// runSelfPlay drives the game through SearchMove, the struct-returning
// convenience form a Go front-end would call directly when it wants
// nodes/score/hashfull diagnostics alongside the chosen move.
func runSelfPlay(e *engine.Engine, pos *board.BoardState, maxMoves int) {
	for ply := 0; ply < maxMoves; ply++ {
		if result := pos.GetResult(); result != board.ResultOngoing {
			fmt.Println("game over by three checks:", result)
			return
		}
		if !pos.HasLegalMove() {
			if pos.InCheck() {
				fmt.Println("checkmate")
			} else {
				fmt.Println("stalemate")
			}
			return
		}

		move, info := e.SearchMove(pos)
		if move == board.NoMove {
			fmt.Println("no move found, stopping")
			return
		}

		if !pos.MakeMove(move) {
			log.Fatalf("engine chose illegal move %s", move)
		}
		fmt.Printf("%d. %s (depth info: nodes=%d score=%d time=%s)\n", ply+1, move, info.Nodes, info.Score, info.Time)
	}
}

// runProtocol drives the same game through ChooseEngineMove's literal
// text contract, as a UCI-less GUI front-end would: it gets back exactly
// one of "move <from><to>\n", the stalemate string, or a mate string, and
// applies the engine's own move through ApplyPlayerMove(forcing=false) to
// exercise both halves of the front-end/engine boundary end to end.
func runProtocol(e *engine.Engine, pos *board.BoardState, maxMoves, timeBudgetMs, maxDepth int) {
	for ply := 0; ply < maxMoves; ply++ {
		if result := pos.GetResult(); result != board.ResultOngoing {
			fmt.Println("game over by three checks:", result)
			return
		}

		result := e.ChooseEngineMove(pos, timeBudgetMs, maxDepth)
		fmt.Printf("%d. %s", ply+1, result)

		if len(result) < 5 || result[:5] != "move " {
			return
		}

		uci := result[len("move ") : len(result)-1]
		m, err := board.ParseMove(pos, uci)
		if err != nil {
			log.Fatalf("engine returned unparseable move %q: %v", uci, err)
		}
		if !e.ApplyPlayerMove(pos, m, false) {
			log.Fatalf("engine chose illegal move %s", uci)
		}
	}
}
