package board

// captureScoreTable is MVV-LVA ordering: capture_score_table[victim][attacker],
// victims and attackers both indexed by PieceType excluding King (a king is
// never captured). Values are rescaled into the 0..15 packed score range
// move.go reserves.
var captureScoreTable = [5][5]int{
	// victim Pawn
	{10, 9, 9, 8, 7},
	// victim Bishop
	{12, 11, 11, 10, 9},
	// victim Knight
	{12, 11, 11, 10, 9},
	// victim Rook
	{14, 13, 13, 12, 11},
	// victim Queen
	{15, 15, 15, 14, 13},
}

func captureScore(victim, attacker PieceType) int {
	if victim > Queen {
		victim = Queen // victim off the tracked table (a king, or an empty square read in error) scores like the most valuable capture rather than indexing out of range
	}
	if attacker > Queen {
		attacker = Queen // king captures score like a queen capture: least valuable attacker we track
	}
	return captureScoreTable[victim][attacker]
}

// promotionScore and quietScore are flat scores for non-capture moves:
// queen promotions sort just under the best captures, checks above plain
// quiets, and everything else falls in behind.
const (
	promotionScore  = 13
	givesCheckScore = 6
	quietScore      = 0
)

// GenerateAllMoves appends every pseudo-legal move (captures and quiets)
// for the side to move into list.
func (b *BoardState) GenerateAllMoves(list *MoveList) {
	b.generateMoves(list, true)
}

// GenerateCaptureMoves appends only pseudo-legal captures (including
// en-passant and promotion-captures) into list; used by quiescence search.
func (b *BoardState) GenerateCaptureMoves(list *MoveList) {
	b.generateMoves(list, false)
}

func (b *BoardState) generateMoves(list *MoveList, includeQuiets bool) {
	us := b.side
	them := us.Other()
	ownOcc := b.occupiedColor[us]
	enemyOcc := b.occupiedColor[them]

	b.generatePawnMoves(list, includeQuiets)

	for pt := Bishop; pt <= King; pt++ {
		bb := b.pieces[us][pt]
		for bb != 0 {
			src := bb.PopLSB()
			targets := attacksTo(pt, us, src, b.occupied) &^ ownOcc
			captures := targets & enemyOcc
			quiets := targets &^ enemyOcc

			t := captures
			for t != 0 {
				dest := t.PopLSB()
				victim := b.PieceAt(dest)
				score := captureScore(victim.Type, pt)
				uncastle := pt == King || pt == Rook
				list.Add(NewMove(src, dest, pt, pt, true, false, false, uncastle, score))
			}
			if includeQuiets {
				q := quiets
				for q != 0 {
					dest := q.PopLSB()
					score := quietScore
					if b.givesCheck(pt, dest) {
						score = givesCheckScore
					}
					uncastle := pt == King || pt == Rook
					list.Add(NewMove(src, dest, pt, pt, false, false, false, uncastle, score))
				}
			}
		}
	}

	if includeQuiets {
		b.generateCastles(list)
	}
}

func (b *BoardState) givesCheck(pt PieceType, dest Square) bool {
	them := b.side.Other()
	enemyKing := b.pieces[them][King].LSB()
	return attacksTo(pt, b.side, dest, b.occupied)&SquareBB(enemyKing) != 0
}

var promotionTypes = [4]PieceType{Queen, Rook, Bishop, Knight}

func (b *BoardState) generatePawnMoves(list *MoveList, includeQuiets bool) {
	us := b.side
	them := us.Other()
	pawns := b.pieces[us][Pawn]
	enemyOcc := b.occupiedColor[them]

	forward := 1
	startRank := 1
	promoRank := 7
	doubleRank := 3
	if us == Black {
		forward = -1
		startRank = 6
		promoRank = 0
		doubleRank = 4
	}

	bb := pawns
	for bb != 0 {
		src := bb.PopLSB()
		file, rank := src.File(), src.Rank()

		for _, df := range [2]int{1, -1} {
			f := file + df
			r := rank + forward
			if !inRange(f) || !inRange(r) {
				continue
			}
			dest := NewSquare(f, r)
			isEnPassant := dest == b.enpassant
			if enemyOcc.IsSet(dest) || isEnPassant {
				if r == promoRank {
					for _, promo := range promotionTypes {
						score := captureScore(b.PieceAt(dest).Type, Pawn)
						if promo == Queen {
							score = 15
						}
						list.Add(NewMove(src, dest, Pawn, promo, true, false, false, false, score))
					}
				} else {
					score := captureScore(Pawn, Pawn)
					if !isEnPassant {
						score = captureScore(b.PieceAt(dest).Type, Pawn)
					}
					list.Add(NewMove(src, dest, Pawn, Pawn, true, false, isEnPassant, false, score))
				}
			}
		}

		if !includeQuiets {
			continue
		}

		r1 := rank + forward
		if inRange(r1) {
			dest := NewSquare(file, r1)
			if !b.occupied.IsSet(dest) {
				if r1 == promoRank {
					for _, promo := range promotionTypes {
						score := quietScore
						if promo == Queen {
							score = promotionScore
						}
						list.Add(NewMove(src, dest, Pawn, promo, false, false, false, false, score))
					}
				} else {
					score := quietScore
					if b.givesCheck(Pawn, dest) {
						score = givesCheckScore
					}
					list.Add(NewMove(src, dest, Pawn, Pawn, false, false, false, false, score))

					if rank == startRank {
						r2 := rank + 2*forward
						dest2 := NewSquare(file, r2)
						if r2 == doubleRank && !b.occupied.IsSet(dest2) {
							score2 := quietScore
							if b.givesCheck(Pawn, dest2) {
								score2 = givesCheckScore
							}
							adjacentEnemyPawn := pawnAttacks[us][dest]&b.pieces[them][Pawn] != 0
							list.Add(NewMove(src, dest2, Pawn, Pawn, false, false, adjacentEnemyPawn, false, score2))
						}
					}
				}
			}
		}
	}
}

func (b *BoardState) generateCastles(list *MoveList) {
	us := b.side
	them := us.Other()
	rank := 0
	if us == Black {
		rank = 7
	}
	kingSq := kingStartSquare(us)
	if !b.pieces[us][King].IsSet(kingSq) {
		return
	}
	if b.IsAttacked(kingSq, them) {
		return
	}

	if b.CanCastle(us, true) {
		passSquares := []Square{NewSquare(2, rank), NewSquare(1, rank)}
		emptyAndSafe := true
		for _, sq := range passSquares {
			if b.occupied.IsSet(sq) || b.IsAttacked(sq, them) {
				emptyAndSafe = false
				break
			}
		}
		rookSq := rookStartSquare(us, true)
		if emptyAndSafe && b.pieces[us][Rook].IsSet(rookSq) {
			dest := NewSquare(1, rank)
			list.Add(NewMove(kingSq, dest, King, King, false, true, false, true, 1))
		}
	}
	if b.CanCastle(us, false) {
		passSquares := []Square{NewSquare(4, rank), NewSquare(5, rank)}
		knightSquare := NewSquare(6, rank)
		emptyAndSafe := !b.occupied.IsSet(knightSquare)
		for _, sq := range passSquares {
			if b.occupied.IsSet(sq) || b.IsAttacked(sq, them) {
				emptyAndSafe = false
				break
			}
		}
		rookSq := rookStartSquare(us, false)
		if emptyAndSafe && b.pieces[us][Rook].IsSet(rookSq) {
			dest := NewSquare(5, rank)
			list.Add(NewMove(kingSq, dest, King, King, false, true, false, true, 1))
		}
	}
}

// HasLegalMove reports whether the side to move has at least one legal
// move, used to distinguish checkmate from stalemate once GetResult
// reports ResultOngoing.
func (b *BoardState) HasLegalMove() bool {
	var list MoveList
	b.GenerateAllMoves(&list)
	for i := 0; i < list.Len(); i++ {
		child := b.Clone()
		if child.MakeMove(list.Get(i)) {
			return true
		}
	}
	return false
}

// InCheck reports whether the side to move is currently in check.
func (b *BoardState) InCheck() bool {
	kingSq := b.pieces[b.side][King].LSB()
	return b.IsAttacked(kingSq, b.side.Other())
}
