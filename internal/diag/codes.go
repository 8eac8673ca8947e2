package diag

import (
	"fmt"
)

type Code uint16

const (
	// Republished upstream parser diagnostics carry no code of their own.
	UpstreamCode Code = 1

	// Structural errors (1xxx)
	StructDuplicateFunction Code = 1001

	// Type errors (2xxx)
	TypeUnknownIdentifier   Code = 2001
	TypeBinaryMismatch      Code = 2002
	TypeIntrinsicMismatch   Code = 2003
	TypeConstructorMismatch Code = 2004
	TypeCallMismatch        Code = 2005
	TypeUnknownCallee       Code = 2006

	// Semantic / entry-point errors (3xxx)
	SemMissingEntryPoint     Code = 3001
	SemSystemValueTooEarly   Code = 3002
	SemDuplicateSemantic     Code = 3003
	SemMissingSemantic       Code = 3004
	SemInvalidReturnSemantic Code = 3005

	// FX structural errors (5xxx)
	FxTechniqueMissingName Code = 5001
	FxDuplicateTechnique   Code = 5002
	FxDuplicatePass        Code = 5003
	FxMissingVertexShader  Code = 5004
	FxMissingPixelShader   Code = 5005
	FxProfileStageMismatch Code = 5006

	// Driver I/O errors (9xxx)
	IOLoadFileError Code = 9001
)

var codeDescription = map[Code]string{
	UpstreamCode:             "Upstream parser diagnostic",
	StructDuplicateFunction:  "Duplicate function declaration",
	TypeUnknownIdentifier:    "Unknown identifier",
	TypeBinaryMismatch:       "Incompatible operands for binary operator",
	TypeIntrinsicMismatch:    "No matching intrinsic overload",
	TypeConstructorMismatch:  "Constructor component mismatch",
	TypeCallMismatch:         "Call argument mismatch",
	TypeUnknownCallee:        "Unknown callee",
	SemMissingEntryPoint:     "Entry point not found",
	SemSystemValueTooEarly:   "System-value semantic requires shader model 4 or later",
	SemDuplicateSemantic:     "Duplicate semantic",
	SemMissingSemantic:       "Missing semantic",
	SemInvalidReturnSemantic: "Invalid return semantic for stage",
	FxTechniqueMissingName:   "Technique is missing a name",
	FxDuplicateTechnique:     "Duplicate technique name",
	FxDuplicatePass:          "Duplicate pass name",
	FxMissingVertexShader:    "Pass is missing a vertex shader binding",
	FxMissingPixelShader:     "Pass is missing a pixel shader binding",
	FxProfileStageMismatch:   "Shader profile does not match binding stage",
	IOLoadFileError:          "Failed to load input file",
}

// DefaultSeverity returns the severity each code is published with.
// The assignments are intentionally uneven (see FxMissingPixelShader,
// SemSystemValueTooEarly): they reproduce the observed behavior of the
// reference toolchain rather than a uniform policy.
func (c Code) DefaultSeverity() Severity {
	switch c {
	case SemSystemValueTooEarly, FxMissingPixelShader:
		return SevWarning
	}
	return SevError
}

// ID renders the stable string identifier, e.g. "TYP2001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("STR%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("TYP%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("FX%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return fmt.Sprintf("E%04d", int(c))
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return "Unknown diagnostic"
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
