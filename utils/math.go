// Package utils provides numeric helpers shared by the layout packages.
package utils

import (
	"math"
)

// Fl is the precision used for lengths.
type Fl = float32

// RoundPrec rounds f with n digits precision
func RoundPrec(f Fl, n int) Fl {
	n10 := math.Pow10(n)
	return Fl(math.Round(float64(f)*n10) / n10)
}
