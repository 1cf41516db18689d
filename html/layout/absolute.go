package layout

import (
	pr "github.com/benoitkugler/flexrender/css/properties"
	bo "github.com/benoitkugler/flexrender/html/boxes"
)

// ---------------------- Absolutely positioned boxes management. ----------------

// AbsoluteLayout lays out the absolutely positioned box, whose containing
// block is the rectangle (cbX, cbY, cbWidth, cbHeight). (staticX, staticY)
// is the position the box would have had in the normal flow, used when
// its offsets are "auto".
// Absolutely positioned boxes are never broken across pages.
func AbsoluteLayout(ctx *Context, box *bo.Box, cbX, cbY, cbWidth, cbHeight, staticX, staticY pr.Float) *bo.Fragment {
	style := box.Style
	model := ResolveBoxModel(style, cbWidth, cbHeight)
	left := resolveOnePercentage(style.Left, "left", cbWidth)
	right := resolveOnePercentage(style.Right, "right", cbWidth)
	top := resolveOnePercentage(style.Top, "top", cbHeight)
	bottom := resolveOnePercentage(style.Bottom, "bottom", cbHeight)

	extraX, extraY := model.HorizontalExtra(), model.VerticalExtra()

	var width pr.Float
	switch {
	case model.Width != pr.AutoF:
		width = model.Width.V()
	case left != pr.AutoF && right != pr.AutoF:
		width = cbWidth - left.V() - right.V() - extraX
	default: // shrink-to-fit
		available := cbWidth - left.V() - right.V() - extraX
		minContent := IntrinsicWidth(ctx, box, model, MinContent) - extraX
		maxContent := IntrinsicWidth(ctx, box, model, MaxContent) - extraX
		width = pr.Min(pr.Max(minContent, available), maxContent)
	}
	width = model.ClampWidth(pr.Max(0, width))

	heightConstraint := MaybeFixed(model.Height)
	if model.Height == pr.AutoF && top != pr.AutoF && bottom != pr.AutoF {
		heightConstraint = Fixed(model.ClampHeight(pr.Max(0, cbHeight-top.V()-bottom.V()-extraY)))
	}

	resp := ctx.LayoutContent(Request{
		Box: box, Model: model,
		Width: Fixed(width), Height: heightConstraint,
		MaxExtent: pr.Inf, PageIsEmpty: true,
	})
	height := resp.Height
	if heightConstraint.IsDefinite() {
		height = heightConstraint.Size
	}
	height = model.ClampHeight(height)

	frag := model.Fragment(box, width, height)
	switch {
	case left != pr.AutoF:
		frag.PositionX = cbX + left.V()
	case right != pr.AutoF:
		frag.PositionX = cbX + cbWidth - right.V() - frag.MarginWidth()
	default:
		frag.PositionX = staticX
	}
	switch {
	case top != pr.AutoF:
		frag.PositionY = cbY + top.V()
	case bottom != pr.AutoF:
		frag.PositionY = cbY + cbHeight - bottom.V() - frag.MarginHeight()
	default:
		frag.PositionY = staticY
	}
	if resp.Baseline != pr.AutoF {
		frag.Baseline = frag.MarginTop + frag.BorderTopWidth + frag.PaddingTop + resp.Baseline.V()
	}

	frag.Children = resp.Children
	for _, child := range frag.Children {
		child.Translate(frag.ContentBoxX(), frag.ContentBoxY())
	}
	return frag
}
