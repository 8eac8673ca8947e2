package semtype

// Rank orders base types for arithmetic promotion.
// bool < int/uint < half < float < double.
func Rank(b Base) int {
	switch b {
	case BaseBool:
		return 0
	case BaseInt, BaseUint:
		return 1
	case BaseHalf:
		return 2
	case BaseFloat:
		return 3
	case BaseDouble:
		return 4
	}
	return -1
}

// Policy gates the deliberately permissive promotion rules kept for
// legacy shader corpora. The zero value is the permissive default.
type Policy struct {
	// StrictWidths rejects cross-width vector/matrix promotion instead
	// of tolerating it the way the legacy toolchain did.
	StrictWidths bool
}

// Permissive is the default promotion policy.
var Permissive = Policy{}

// CanPromote reports whether a value of type from may be supplied where
// to is expected. Scalars broadcast to vectors and matrices.
func (p Policy) CanPromote(from, to SemType) bool {
	if from.Equal(to) {
		return true
	}
	if !from.Numeric() || !to.Numeric() {
		return false
	}
	if Rank(from.Base) > Rank(to.Base) {
		return false
	}
	switch from.Kind {
	case KindScalar:
		// Scalar broadcasts to any numeric shape.
		return true
	case KindVector:
		if to.Kind != KindVector {
			return false
		}
		return from.Width == to.Width || !p.StrictWidths
	case KindMatrix:
		if to.Kind != KindMatrix {
			return false
		}
		if from.Rows == to.Rows && from.Cols == to.Cols {
			return true
		}
		return !p.StrictWidths
	}
	return false
}

// PromoteBinary computes the common type of two operands of a binary
// arithmetic expression: the wider of the two shapes with the higher
// base rank. It fails only on structurally incompatible shapes; when
// one operand is non-numeric or unresolved the numeric side wins so a
// single bad subexpression does not cascade.
func (p Policy) PromoteBinary(l, r SemType) (SemType, bool) {
	if !l.Numeric() && !r.Numeric() {
		return Invalid(), false
	}
	if !l.Numeric() {
		return r, true
	}
	if !r.Numeric() {
		return l, true
	}

	base := l.Base
	if Rank(r.Base) > Rank(l.Base) {
		base = r.Base
	}

	// Scalars broadcast into the other operand's shape.
	if l.Kind == KindScalar {
		return withBase(r, base), true
	}
	if r.Kind == KindScalar {
		return withBase(l, base), true
	}

	if l.Kind != r.Kind {
		return Invalid(), false
	}

	switch l.Kind {
	case KindVector:
		if l.Width == r.Width {
			return Vector(base, l.Width), true
		}
		if p.StrictWidths {
			return Invalid(), false
		}
		return Vector(base, maxU8(l.Width, r.Width)), true
	case KindMatrix:
		if l.Rows == r.Rows && l.Cols == r.Cols {
			return Matrix(base, l.Rows, l.Cols), true
		}
		if p.StrictWidths {
			return Invalid(), false
		}
		return Matrix(base, maxU8(l.Rows, r.Rows), maxU8(l.Cols, r.Cols)), true
	}
	return Invalid(), false
}

func withBase(t SemType, base Base) SemType {
	t.Base = base
	return t
}

func maxU8(a, b uint8) uint8 {
	if a > b {
		return a
	}
	return b
}
