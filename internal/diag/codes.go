package diag

import "fmt"

// Code is a stable, TypeScript-compatible diagnostic code. The numbering
// matches tsc's own diagnostic space so that downstream tooling (editors,
// CI annotators) already keyed on "TSxxxx" strings works unmodified.
type Code uint16

const (
	// NoCode marks the absence of a diagnostic code; never emitted.
	NoCode Code = 0

	// Parse-adjacent (reused by the checker for malformed constructs it
	// must still report on, e.g. a strict-mode violation surfacing during
	// binding rather than parsing).
	TS1252 Code = 1252 // function declarations not allowed inside blocks in strict mode

	// Binder / name resolution.
	TS2304 Code = 2304 // cannot find name 'x'
	TS2318 Code = 2318 // cannot find global type 'x'

	// Core assignability and member access.
	TS2322 Code = 2322 // type 'x' is not assignable to type 'y'
	TS2339 Code = 2339 // property 'x' does not exist on type 'y'
	TS2345 Code = 2345 // argument of type 'x' is not assignable to parameter of type 'y'

	// Readonly / const violations.
	TS2540 Code = 2540 // cannot assign to 'x' because it is a read-only property

	// Call-site / overload / generic-argument errors.
	TS2769 Code = 2769 // no overload matches this call

	// File references.
	TS6053 Code = 6053 // file not found for a triple-slash reference path; no checker path emits it

	// Contextual-typing / inference fallbacks.
	TS7006 Code = 7006 // parameter 'x' implicitly has an 'any' type
	TS7053 Code = 7053 // element implicitly has an 'any' type because expression of type 'x' can't be used to index type 'y'

	// Engine-internal failure, never produced by a well-formed program;
	// reserved far outside tsc's numbering so it is unmistakable in logs.
	TSInternalError Code = 9999
)

var codeTitle = map[Code]string{
	NoCode:          "no diagnostic",
	TS1252:          "Function declarations are not allowed inside blocks in strict mode.",
	TS2304:          "Cannot find name.",
	TS2318:          "Cannot find global type.",
	TS2322:          "Type is not assignable to type.",
	TS2339:          "Property does not exist on type.",
	TS2345:          "Argument is not assignable to parameter of type.",
	TS2540:          "Cannot assign to because it is a read-only property.",
	TS2769:          "No overload matches this call.",
	TS6053:          "File not found.",
	TS7006:          "Parameter implicitly has an 'any' type.",
	TS7053:          "Element implicitly has an 'any' type because expression can't be used to index type.",
	TSInternalError: "An internal error occurred while type checking.",
}

// ID returns the stable "TSxxxx" identifier for the code.
func (c Code) ID() string {
	return fmt.Sprintf("TS%d", uint16(c))
}

// Title returns the short, code-independent category description.
func (c Code) Title() string {
	if t, ok := codeTitle[c]; ok {
		return t
	}
	return codeTitle[NoCode]
}

// String renders the code the way diagnostics are conventionally printed,
// e.g. "TS2322: Type is not assignable to type.".
func (c Code) String() string {
	return fmt.Sprintf("%s: %s", c.ID(), c.Title())
}

// IsError reports whether code always denotes an error-severity diagnostic
// family (as opposed to a code that can be raised at varying severities).
func (c Code) IsError() bool {
	switch c {
	case TS2304, TS2318, TS2322, TS2339, TS2345, TS2540, TS2769, TS6053, TS1252, TSInternalError:
		return true
	default:
		return false
	}
}
