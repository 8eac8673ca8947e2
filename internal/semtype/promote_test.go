package semtype

import "testing"

func TestRankOrdering(t *testing.T) {
	order := []Base{BaseBool, BaseInt, BaseHalf, BaseFloat, BaseDouble}
	for i := 1; i < len(order); i++ {
		if Rank(order[i-1]) >= Rank(order[i]) {
			t.Errorf("Rank(%s) should be below Rank(%s)", order[i-1], order[i])
		}
	}
	if Rank(BaseInt) != Rank(BaseUint) {
		t.Error("int and uint must share a rank")
	}
}

func TestCanPromote(t *testing.T) {
	tests := []struct {
		name     string
		from, to SemType
		want     bool
	}{
		{"identity", Vector(BaseFloat, 4), Vector(BaseFloat, 4), true},
		{"int to float", Scalar(BaseInt), Scalar(BaseFloat), true},
		{"float to int narrows", Scalar(BaseFloat), Scalar(BaseInt), false},
		{"scalar broadcast to vector", Scalar(BaseFloat), Vector(BaseFloat, 3), true},
		{"scalar broadcast to matrix", Scalar(BaseInt), Matrix(BaseFloat, 4, 4), true},
		{"vector to scalar", Vector(BaseFloat, 3), Scalar(BaseFloat), false},
		{"cross width permissive", Vector(BaseFloat, 3), Vector(BaseFloat, 4), true},
		{"resource never numeric", Resource("Texture2D"), Scalar(BaseFloat), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Permissive.CanPromote(tt.from, tt.to); got != tt.want {
				t.Fatalf("CanPromote(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestCanPromoteStrictWidths(t *testing.T) {
	strict := Policy{StrictWidths: true}
	if strict.CanPromote(Vector(BaseFloat, 3), Vector(BaseFloat, 4)) {
		t.Error("strict policy must reject cross-width vector promotion")
	}
	if !strict.CanPromote(Vector(BaseFloat, 4), Vector(BaseFloat, 4)) {
		t.Error("strict policy must keep same-width promotion")
	}
	if !strict.CanPromote(Scalar(BaseFloat), Vector(BaseFloat, 4)) {
		t.Error("strict policy must keep scalar broadcast")
	}
}

func TestPromoteBinary(t *testing.T) {
	tests := []struct {
		name string
		l, r SemType
		want SemType
		ok   bool
	}{
		{"same type", Vector(BaseFloat, 4), Vector(BaseFloat, 4), Vector(BaseFloat, 4), true},
		{"int meets float", Scalar(BaseInt), Scalar(BaseFloat), Scalar(BaseFloat), true},
		{"scalar broadcast", Scalar(BaseFloat), Vector(BaseInt, 3), Vector(BaseFloat, 3), true},
		{"width mismatch tolerated", Vector(BaseFloat, 2), Vector(BaseFloat, 4), Vector(BaseFloat, 4), true},
		{"matrix dims tolerated", Matrix(BaseFloat, 3, 3), Matrix(BaseFloat, 4, 4), Matrix(BaseFloat, 4, 4), true},
		{"vector meets matrix", Vector(BaseFloat, 2), Matrix(BaseFloat, 3, 3), Invalid(), false},
		{"invalid side loses", Invalid(), Vector(BaseFloat, 4), Vector(BaseFloat, 4), true},
		{"resource side loses", Resource("Texture2D"), Scalar(BaseFloat), Scalar(BaseFloat), true},
		{"both non-numeric", Resource("a"), Resource("b"), Invalid(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Permissive.PromoteBinary(tt.l, tt.r)
			if ok != tt.ok {
				t.Fatalf("PromoteBinary(%s, %s) ok = %v, want %v", tt.l, tt.r, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Fatalf("PromoteBinary(%s, %s) = %s, want %s", tt.l, tt.r, got, tt.want)
			}
		})
	}
}

func TestPromoteBinarySymmetric(t *testing.T) {
	pairs := [][2]SemType{
		{Scalar(BaseInt), Scalar(BaseFloat)},
		{Scalar(BaseFloat), Vector(BaseFloat, 3)},
		{Vector(BaseFloat, 2), Vector(BaseFloat, 4)},
		{Matrix(BaseFloat, 3, 3), Matrix(BaseHalf, 4, 4)},
		{Invalid(), Vector(BaseFloat, 4)},
	}
	for _, pair := range pairs {
		ab, okAB := Permissive.PromoteBinary(pair[0], pair[1])
		ba, okBA := Permissive.PromoteBinary(pair[1], pair[0])
		if okAB != okBA || !ab.Equal(ba) {
			t.Errorf("PromoteBinary not symmetric for (%s, %s): %s vs %s", pair[0], pair[1], ab, ba)
		}
	}
}

func TestPromoteBinaryStrictWidths(t *testing.T) {
	strict := Policy{StrictWidths: true}
	if _, ok := strict.PromoteBinary(Vector(BaseFloat, 2), Vector(BaseFloat, 4)); ok {
		t.Error("strict policy must reject cross-width binary promotion")
	}
	got, ok := strict.PromoteBinary(Vector(BaseFloat, 4), Vector(BaseInt, 4))
	if !ok || !got.Equal(Vector(BaseFloat, 4)) {
		t.Errorf("same-width promotion under strict policy = %s (ok=%v)", got, ok)
	}
}
