package board

import "testing"

func TestSquareRoundTrip(t *testing.T) {
	cases := []string{"a1", "h1", "a8", "h8", "e4", "d5"}
	for _, s := range cases {
		sq, err := ParseSquare(s)
		if err != nil {
			t.Fatalf("ParseSquare(%q): %v", s, err)
		}
		if got := sq.String(); got != s {
			t.Errorf("Square(%q).String() = %q, want %q", s, got, s)
		}
	}
}

func TestSquareGeometry(t *testing.T) {
	h1, _ := ParseSquare("h1")
	a1, _ := ParseSquare("a1")
	h8, _ := ParseSquare("h8")
	if h1 != 0 {
		t.Errorf("h1 = %d, want 0", h1)
	}
	if a1 != 7 {
		t.Errorf("a1 = %d, want 7", a1)
	}
	if h8 != 56 {
		t.Errorf("h8 = %d, want 56", h8)
	}
}

func TestBitboardPopCount(t *testing.T) {
	var bb Bitboard
	for _, s := range []string{"a1", "e4", "h8"} {
		sq, _ := ParseSquare(s)
		bb = bb.Set(sq)
	}
	if got := bb.PopCount(); got != 3 {
		t.Errorf("PopCount = %d, want 3", got)
	}
}

func TestBitboardDirectionsStayOnBoard(t *testing.T) {
	h1, _ := ParseSquare("h1")
	bb := SquareBB(h1)
	if bb.East() != 0 {
		t.Error("h1.East() should stay empty: no wraparound past the h-file")
	}
	a1, _ := ParseSquare("a1")
	bb = SquareBB(a1)
	if bb.West() != 0 {
		t.Error("a1.West() should stay empty: no wraparound past the a-file")
	}
}

func TestPopLSB(t *testing.T) {
	e4, _ := ParseSquare("e4")
	h1, _ := ParseSquare("h1")
	bb := SquareBB(h1) | SquareBB(e4)
	first := bb.PopLSB()
	if first != h1 {
		t.Errorf("first PopLSB = %v, want h1", first)
	}
	second := bb.PopLSB()
	if second != e4 {
		t.Errorf("second PopLSB = %v, want e4", second)
	}
	if bb != 0 {
		t.Errorf("bitboard should be empty after popping both bits, got %v", bb)
	}
}
