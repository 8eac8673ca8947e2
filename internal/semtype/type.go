package semtype

import (
	"fmt"
	"strings"
)

// Kind discriminates the shape variants of a SemType.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindScalar
	KindVector
	KindMatrix
	KindArray
	KindResource
	KindStream
	KindFunction
)

// Base is the element base type of a numeric shape.
type Base uint8

const (
	BaseVoid Base = iota
	BaseBool
	BaseInt
	BaseUint
	BaseHalf
	BaseFloat
	BaseDouble
)

func (b Base) String() string {
	switch b {
	case BaseVoid:
		return "void"
	case BaseBool:
		return "bool"
	case BaseInt:
		return "int"
	case BaseUint:
		return "uint"
	case BaseHalf:
		return "half"
	case BaseFloat:
		return "float"
	case BaseDouble:
		return "double"
	}
	return "void"
}

// SemType is the structured type assigned to syntax nodes and symbols.
// Instances are immutable; compare with Equal, not ==.
type SemType struct {
	Kind Kind

	Base       Base // scalar, vector, matrix
	Width      uint8
	Rows, Cols uint8

	Name string // resource and stream names

	Elem *SemType // array element, stream element

	Count int // array length, -1 when unsized

	Return *SemType // function
	Params []SemType
}

func Invalid() SemType { return SemType{} }

func Scalar(b Base) SemType { return SemType{Kind: KindScalar, Base: b} }

func Vector(b Base, width uint8) SemType {
	return SemType{Kind: KindVector, Base: b, Width: width}
}

func Matrix(b Base, rows, cols uint8) SemType {
	return SemType{Kind: KindMatrix, Base: b, Rows: rows, Cols: cols}
}

func Array(elem SemType, count int) SemType {
	return SemType{Kind: KindArray, Elem: &elem, Count: count}
}

func Resource(name string) SemType { return SemType{Kind: KindResource, Name: name} }

func Stream(name string, elem SemType) SemType {
	return SemType{Kind: KindStream, Name: name, Elem: &elem}
}

func Function(ret SemType, params []SemType) SemType {
	return SemType{Kind: KindFunction, Return: &ret, Params: params}
}

func Void() SemType { return Scalar(BaseVoid) }

// IsValid reports whether the type carries any shape at all.
func (t SemType) IsValid() bool { return t.Kind != KindInvalid }

// Numeric reports whether the type participates in arithmetic promotion.
// Only scalar, vector and matrix shapes are numeric; void is not.
func (t SemType) Numeric() bool {
	switch t.Kind {
	case KindScalar, KindVector, KindMatrix:
		return t.Base != BaseVoid
	}
	return false
}

func (t SemType) IsVoid() bool {
	return t.Kind == KindScalar && t.Base == BaseVoid
}

// ComponentCount returns how many scalar components the shape holds.
func (t SemType) ComponentCount() int {
	switch t.Kind {
	case KindScalar:
		return 1
	case KindVector:
		return int(t.Width)
	case KindMatrix:
		return int(t.Rows) * int(t.Cols)
	}
	return 0
}

// Equal performs structural value equality.
func (t SemType) Equal(other SemType) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KindScalar:
		return t.Base == other.Base
	case KindVector:
		return t.Base == other.Base && t.Width == other.Width
	case KindMatrix:
		return t.Base == other.Base && t.Rows == other.Rows && t.Cols == other.Cols
	case KindArray:
		return t.Count == other.Count && t.Elem.Equal(*other.Elem)
	case KindResource:
		return t.Name == other.Name
	case KindStream:
		return t.Name == other.Name && t.Elem.Equal(*other.Elem)
	case KindFunction:
		if !t.Return.Equal(*other.Return) || len(t.Params) != len(other.Params) {
			return false
		}
		for i := range t.Params {
			if !t.Params[i].Equal(other.Params[i]) {
				return false
			}
		}
		return true
	}
	return t.Kind == KindInvalid && other.Kind == KindInvalid
}

// String renders the canonical textual form, which is also the
// externally visible type string of the output model.
func (t SemType) String() string {
	switch t.Kind {
	case KindScalar:
		return t.Base.String()
	case KindVector:
		return fmt.Sprintf("%s%d", t.Base, t.Width)
	case KindMatrix:
		return fmt.Sprintf("%s%dx%d", t.Base, t.Rows, t.Cols)
	case KindArray:
		if t.Count < 0 {
			return t.Elem.String() + "[]"
		}
		return fmt.Sprintf("%s[%d]", t.Elem, t.Count)
	case KindResource:
		return t.Name
	case KindStream:
		return fmt.Sprintf("%s<%s>", t.Name, t.Elem)
	case KindFunction:
		params := make([]string, len(t.Params))
		for i := range t.Params {
			params[i] = t.Params[i].String()
		}
		return fmt.Sprintf("%s(%s)", t.Return, strings.Join(params, ","))
	}
	return "<invalid>"
}
