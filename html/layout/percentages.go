package layout

import (
	"fmt"

	pr "github.com/benoitkugler/flexrender/css/properties"
	bo "github.com/benoitkugler/flexrender/html/boxes"
	"github.com/benoitkugler/flexrender/utils/testutils/tracer"
)

// Resolve percentages into fixed values.

// BoxModel is the used box model of a box, before its layout.
//
// The embedded BoxFields store the margins, paddings and borders: its
// Width, Height and positions are not used.
type BoxModel struct {
	bo.BoxFields

	// Content sizes, AutoF when not definite.
	Width, Height pr.MaybeFloat

	// MinWidth and MinHeight are AutoF for "min-width: auto",
	// which is the automatic minimum for flex items and 0 otherwise.
	MinWidth, MinHeight pr.MaybeFloat
	MaxWidth, MaxHeight pr.Float

	// AutoMargins is indexed by bo.Side; the corresponding margin
	// in BoxFields is 0.
	AutoMargins [4]bool
}

// UsedMinWidth returns the minimum width, with "auto" as 0.
func (m *BoxModel) UsedMinWidth() pr.Float { return m.MinWidth.V() }

// UsedMinHeight returns the minimum height, with "auto" as 0.
func (m *BoxModel) UsedMinHeight() pr.Float { return m.MinHeight.V() }

// ClampWidth applies min-width and max-width, min winning over max.
func (m *BoxModel) ClampWidth(w pr.Float) pr.Float {
	return pr.Max(m.UsedMinWidth(), pr.Min(w, m.MaxWidth))
}

// ClampHeight applies min-height and max-height, min winning over max.
func (m *BoxModel) ClampHeight(h pr.Float) pr.Float {
	return pr.Max(m.UsedMinHeight(), pr.Min(h, m.MaxHeight))
}

// HorizontalExtra returns the sum of the horizontal margins, paddings and borders.
func (m *BoxModel) HorizontalExtra() pr.Float {
	return m.MarginLeft + m.MarginRight + m.PaddingLeft + m.PaddingRight + m.BorderLeftWidth + m.BorderRightWidth
}

// VerticalExtra returns the sum of the vertical margins, paddings and borders.
func (m *BoxModel) VerticalExtra() pr.Float {
	return m.MarginTop + m.MarginBottom + m.PaddingTop + m.PaddingBottom + m.BorderTopWidth + m.BorderBottomWidth
}

// Fragment returns a fragment for box, using the box model of m,
// with the given content size.
func (m *BoxModel) Fragment(box *bo.Box, width, height pr.Float) *bo.Fragment {
	out := bo.NewFragment(box)
	out.BoxFields = m.BoxFields
	out.PositionX, out.PositionY = 0, 0
	out.Width, out.Height = width, height
	return out
}

// resolveOnePercentage returns the used value of a length or percentage,
// where AutoF is returned for keywords and indefinite references.
func resolveOnePercentage(value pr.Value, propertyName string, referTo pr.MaybeFloat) pr.MaybeFloat {
	out := pr.ResolvePercentage(value, referTo)

	if traceMode {
		traceLogger.Dump(fmt.Sprintf("resolveOnePercentage %s: %s %s -> %s", propertyName,
			value, tracer.FormatMaybeFloat(referTo), tracer.FormatMaybeFloat(out)))
	}

	return out
}

// resolveSpacing resolves a margin or a padding: percentages always
// refer to the width of the containing block, and resolve to 0 if it is
// not known.
func resolveSpacing(value pr.Value, propertyName string, cbWidth pr.MaybeFloat) pr.Float {
	return resolveOnePercentage(value, propertyName, cbWidth).V()
}

// ResolveBoxModel computes the used values of the box model of a box
// whose containing block has the given size (each dimension possibly
// AutoF).
func ResolveBoxModel(style *pr.Style, cbWidth, cbHeight pr.MaybeFloat) BoxModel {
	if traceMode {
		traceLogger.Dump(fmt.Sprintf("ResolveBoxModel: %s %s",
			tracer.FormatMaybeFloat(cbWidth), tracer.FormatMaybeFloat(cbHeight)))
	}

	var box BoxModel
	box.AutoMargins = [4]bool{
		bo.STop:    style.MarginTop.IsAuto(),
		bo.SRight:  style.MarginRight.IsAuto(),
		bo.SBottom: style.MarginBottom.IsAuto(),
		bo.SLeft:   style.MarginLeft.IsAuto(),
	}
	box.MarginTop = resolveSpacing(style.MarginTop, "margin-top", cbWidth)
	box.MarginRight = resolveSpacing(style.MarginRight, "margin-right", cbWidth)
	box.MarginBottom = resolveSpacing(style.MarginBottom, "margin-bottom", cbWidth)
	box.MarginLeft = resolveSpacing(style.MarginLeft, "margin-left", cbWidth)
	box.PaddingTop = pr.Max(0, resolveSpacing(style.PaddingTop, "padding-top", cbWidth))
	box.PaddingRight = pr.Max(0, resolveSpacing(style.PaddingRight, "padding-right", cbWidth))
	box.PaddingBottom = pr.Max(0, resolveSpacing(style.PaddingBottom, "padding-bottom", cbWidth))
	box.PaddingLeft = pr.Max(0, resolveSpacing(style.PaddingLeft, "padding-left", cbWidth))

	// Used value == computed value
	box.BorderTopWidth = style.BorderTopWidth
	box.BorderRightWidth = style.BorderRightWidth
	box.BorderBottomWidth = style.BorderBottomWidth
	box.BorderLeftWidth = style.BorderLeftWidth

	box.Width = resolveOnePercentage(style.Width, "width", cbWidth)
	box.MinWidth = resolveOnePercentage(style.MinWidth, "min-width", cbWidth)
	box.MaxWidth = maxOrInf(resolveOnePercentage(style.MaxWidth, "max-width", cbWidth))
	box.Height = resolveOnePercentage(style.Height, "height", cbHeight)
	if style.MinHeight.IsPercentage() && cbHeight == pr.AutoF {
		box.MinHeight = pr.Float(0)
	} else {
		box.MinHeight = resolveOnePercentage(style.MinHeight, "min-height", cbHeight)
	}
	box.MaxHeight = maxOrInf(resolveOnePercentage(style.MaxHeight, "max-height", cbHeight))

	if !style.MinWidth.IsAuto() && box.MinWidth == pr.AutoF {
		box.MinWidth = pr.Float(0) // percentage of an intrinsic width
	}

	// Shrink *content* widths and heights according to box-sizing
	var horizontalDelta, verticalDelta pr.Float
	switch style.BoxSizing {
	case pr.BorderBox:
		horizontalDelta = box.PaddingLeft + box.PaddingRight + box.BorderLeftWidth + box.BorderRightWidth
		verticalDelta = box.PaddingTop + box.PaddingBottom + box.BorderTopWidth + box.BorderBottomWidth
	case pr.PaddingBox:
		horizontalDelta = box.PaddingLeft + box.PaddingRight
		verticalDelta = box.PaddingTop + box.PaddingBottom
	case pr.ContentBox:
	default:
		panic(fmt.Sprintf("invalid box sizing %s", style.BoxSizing))
	}

	// Keep at least min* >= 0 to prevent funny output in case box.Width or
	// box.Height become negative.
	if horizontalDelta > 0 {
		box.Width = shrinkMaybe(box.Width, horizontalDelta)
		box.MinWidth = shrinkMaybe(box.MinWidth, horizontalDelta)
		box.MaxWidth = pr.Max(0, box.MaxWidth-horizontalDelta)
	}
	if verticalDelta > 0 {
		box.Height = shrinkMaybe(box.Height, verticalDelta)
		box.MinHeight = shrinkMaybe(box.MinHeight, verticalDelta)
		box.MaxHeight = pr.Max(0, box.MaxHeight-verticalDelta)
	}
	return box
}

func maxOrInf(v pr.MaybeFloat) pr.Float {
	if v == pr.AutoF {
		return pr.Inf
	}
	return v.V()
}

func shrinkMaybe(v pr.MaybeFloat, delta pr.Float) pr.MaybeFloat {
	if v == pr.AutoF {
		return v
	}
	return pr.Max(0, v.V()-delta)
}

// IntrinsicWidth returns the min-content or max-content contribution
// of box (including its margins, borders and paddings), using its box
// model when its width is definite.
func IntrinsicWidth(ctx *Context, box *bo.Box, model BoxModel, mode SizingMode) pr.Float {
	var width pr.Float
	if model.Width != pr.AutoF {
		width = model.Width.V()
	} else {
		resp := ctx.LayoutContent(Request{
			Box: box, Model: model,
			Width: Constraint{Mode: mode}, Height: MaybeFixed(model.Height),
			MaxExtent: pr.Inf,
		})
		width = resp.Width
	}
	return model.ClampWidth(width) + model.HorizontalExtra()
}
