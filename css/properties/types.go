// Package properties defines the computed values consumed by the layout.
//
// Values are already cascaded and computed: lengths are in pixels, except
// percentages which are kept until layout resolves them against their
// reference size, and keywords like "auto".
package properties

import (
	"fmt"
	"math"

	"github.com/benoitkugler/flexrender/utils"
)

type Fl = utils.Fl

type Float Fl

// Inf is used for unbounded sizes, like "max-width: none".
var Inf = Float(math.Inf(1))

// MaybeFloat is either a Float or AutoF.
type MaybeFloat interface {
	V() Float
}

func (f Float) V() Float { return f }

type auto struct{}

func (auto) V() Float { return 0 }

func (auto) String() string { return "auto" }

// AutoF is the used value for "auto" and for sizes depending on
// an indefinite reference.
var AutoF MaybeFloat = auto{}

func Min(x, y Float) Float {
	if x < y {
		return x
	}
	return y
}

func Max(x, y Float) Float {
	if x > y {
		return x
	}
	return y
}

// Unit is the unit of a Dimension. Scalar is used for unitless numbers,
// like "line-height: 1".
type Unit uint8

const (
	Scalar Unit = iota
	Px
	Perc
)

func (u Unit) String() string {
	switch u {
	case Scalar:
		return ""
	case Px:
		return "px"
	case Perc:
		return "%"
	default:
		return "<invalid unit>"
	}
}

// Dimension without unit is interpreted as float
type Dimension struct {
	Value Float
	Unit  Unit
}

func NewDim(v Float, u Unit) Dimension { return Dimension{v, u} }

func (d Dimension) String() string {
	return fmt.Sprintf("<%g %s>", d.Value, d.Unit)
}

func (d Dimension) ToValue() Value { return Value{Dimension: d} }

// ZeroPixels is the common "0px" value.
var ZeroPixels = Dimension{0, Px}

// Value is either a keyword (S is not empty) or a dimension.
type Value struct {
	S string
	Dimension
}

// SToV returns the keyword value s.
func SToV(s string) Value { return Value{S: s} }

// FToPx returns the length value v px.
func FToPx(v Float) Value { return Value{Dimension: Dimension{v, Px}} }

func (v Value) String() string {
	if v.S != "" {
		return v.S
	}
	return v.Dimension.String()
}

// IsAuto returns true for the "auto" keyword.
func (v Value) IsAuto() bool { return v.S == "auto" }

// IsPercentage returns true for percentage dimensions.
func (v Value) IsPercentage() bool { return v.S == "" && v.Unit == Perc }

// ResolvePercentage returns the used value of v, resolving percentages
// against referTo.
//
// Keywords and percentages of an indefinite (AutoF) reference both resolve
// to AutoF.
func ResolvePercentage(v Value, referTo MaybeFloat) MaybeFloat {
	if v.S != "" {
		return AutoF
	}
	switch v.Unit {
	case Perc:
		if referTo == AutoF {
			return AutoF
		}
		return v.Value * referTo.V() / 100
	default:
		return v.Value
	}
}
