package layout

import (
	pr "github.com/benoitkugler/flexrender/css/properties"
	bo "github.com/benoitkugler/flexrender/html/boxes"
)

// axes maps the logical main and cross axes of a flex container
// to the physical ones.
type axes struct {
	// isRow is true when the main axis is horizontal
	isRow bool
	// mainReversed is true when items are placed from the right
	// (rows) or from the bottom (columns)
	mainReversed bool
	// crossReversed is true when lines are placed from the right,
	// which happens for columns in right-to-left direction
	crossReversed bool
}

func resolveAxes(style *pr.Style) axes {
	rtl := style.Direction == pr.RTL
	out := axes{isRow: style.FlexDirection.IsRow()}
	if out.isRow {
		// rtl and row-reverse cancel each other
		out.mainReversed = rtl != (style.FlexDirection == pr.RowReverse)
	} else {
		out.mainReversed = style.FlexDirection == pr.ColumnReverse
		out.crossReversed = rtl
	}
	return out
}

// mainSides returns the physical sides of the start and end edges
// of the main axis.
func (a axes) mainSides() (start, end bo.Side) {
	if a.isRow {
		start, end = bo.SLeft, bo.SRight
	} else {
		start, end = bo.STop, bo.SBottom
	}
	if a.mainReversed {
		start, end = end, start
	}
	return start, end
}

func (a axes) crossSides() (start, end bo.Side) {
	if a.isRow {
		start, end = bo.STop, bo.SBottom
	} else {
		start, end = bo.SLeft, bo.SRight
	}
	if a.crossReversed {
		start, end = end, start
	}
	return start, end
}

// main returns the main component of a (width, height) pair.
func (a axes) main(width, height pr.Float) pr.Float {
	if a.isRow {
		return width
	}
	return height
}

func (a axes) cross(width, height pr.Float) pr.Float {
	if a.isRow {
		return height
	}
	return width
}

// physical returns the (width, height) pair of a (main, cross) pair.
func (a axes) physical(main, cross pr.Float) (width, height pr.Float) {
	if a.isRow {
		return main, cross
	}
	return cross, main
}

func (a axes) mainConstraint(width, height Constraint) Constraint {
	if a.isRow {
		return width
	}
	return height
}

func (a axes) crossConstraint(width, height Constraint) Constraint {
	if a.isRow {
		return height
	}
	return width
}

// mainSizes returns the size, min and max values of the model
// along the main axis.
func (a axes) mainSizes(m *BoxModel) (size, min pr.MaybeFloat, max pr.Float) {
	if a.isRow {
		return m.Width, m.MinWidth, m.MaxWidth
	}
	return m.Height, m.MinHeight, m.MaxHeight
}

func (a axes) crossSizes(m *BoxModel) (size, min pr.MaybeFloat, max pr.Float) {
	if a.isRow {
		return m.Height, m.MinHeight, m.MaxHeight
	}
	return m.Width, m.MinWidth, m.MaxWidth
}

// mainExtra returns the margins, borders and paddings along the main axis.
func (a axes) mainExtra(m *BoxModel) pr.Float {
	if a.isRow {
		return m.HorizontalExtra()
	}
	return m.VerticalExtra()
}

func (a axes) crossExtra(m *BoxModel) pr.Float {
	if a.isRow {
		return m.VerticalExtra()
	}
	return m.HorizontalExtra()
}

// place returns the physical offset of a box of size outer, starting at
// the logical offset, in a space of size total.
func place(offset, outer, total pr.Float, reversed bool) pr.Float {
	if reversed {
		return total - offset - outer
	}
	return offset
}

func margin(b *bo.BoxFields, side bo.Side) *pr.Float {
	switch side {
	case bo.STop:
		return &b.MarginTop
	case bo.SRight:
		return &b.MarginRight
	case bo.SBottom:
		return &b.MarginBottom
	default:
		return &b.MarginLeft
	}
}
