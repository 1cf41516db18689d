package layout

import (
	"fmt"
	"sort"

	pr "github.com/benoitkugler/flexrender/css/properties"
	bo "github.com/benoitkugler/flexrender/html/boxes"
)

// Layout for flex containers and flex items.

// FlexLayout lays out the flex container box, whose margin box is placed
// at (0, 0).
// If resume is not nil, only the content remaining from a previous page
// is laid out.
// The returned stack is not nil if the container has been broken before
// the end of its content.
func FlexLayout(ctx *Context, box *bo.Box, cs Constraints, resume ResumeStack) (*bo.Fragment, ResumeStack) {
	model := ResolveBoxModel(box.Style, cs.ContainingWidth, cs.ContainingHeight)
	if resume != nil {
		model.RemoveDecoration(true, false)
	}

	var width pr.Float
	switch {
	case model.Width != pr.AutoF:
		width = model.Width.V()
	case cs.WidthMode == Definite:
		width = cs.ContainingWidth - model.HorizontalExtra()
	case cs.WidthMode == MinContent || cs.WidthMode == MaxContent:
		width = flexIntrinsicWidth(ctx, box, model, cs.WidthMode)
	default: // shrink-to-fit
		available := cs.ContainingWidth - model.HorizontalExtra()
		minContent := flexIntrinsicWidth(ctx, box, model, MinContent)
		maxContent := flexIntrinsicWidth(ctx, box, model, MaxContent)
		width = pr.Min(pr.Max(minContent, available), maxContent)
	}
	width = model.ClampWidth(pr.Max(0, width))

	// auto horizontal margins center the block-level containers
	if cs.WidthMode == Definite {
		remaining := cs.ContainingWidth - width - model.HorizontalExtra()
		left, right := model.AutoMargins[bo.SLeft], model.AutoMargins[bo.SRight]
		switch {
		case remaining <= 0:
		case left && right:
			model.MarginLeft, model.MarginRight = remaining/2, remaining/2
		case left:
			model.MarginLeft = remaining
		case right:
			model.MarginRight = remaining
		}
	}

	top := model.MarginTop + model.BorderTopWidth + model.PaddingTop
	resp := FlexContent(ctx, Request{
		Box: box, Model: model,
		Width: Fixed(width), Height: MaybeFixed(model.Height),
		MaxExtent: cs.PageExtent - top, PageIsEmpty: cs.PageIsEmpty,
		Resume: resume,
	})

	frag := model.Fragment(box, resp.Width, resp.Height)
	frag.Children = resp.Children
	for _, child := range frag.Children {
		child.Translate(frag.ContentBoxX(), frag.ContentBoxY())
	}
	if resp.Baseline != pr.AutoF {
		frag.Baseline = top + resp.Baseline.V()
	}
	if resp.Resume != nil {
		frag.RemoveDecoration(false, true)
	}

	if traceMode {
		traceLogger.DumpTree(frag, fmt.Sprintf("FlexLayout (resume %s)", resp.Resume))
	}

	return frag, resp.Resume
}

// FlexContent lays out the content of the flex container req.Box.
// It is meant to be used by implementations of SubLayout, for flex
// containers nested in other boxes.
func FlexContent(ctx *Context, req Request) Response {
	switch req.Width.Mode {
	case MinContent, MaxContent:
		minContent := flexIntrinsicWidth(ctx, req.Box, req.Model, MinContent)
		width := minContent
		if req.Width.Mode == MaxContent {
			width = flexIntrinsicWidth(ctx, req.Box, req.Model, MaxContent)
		}
		// the height is needed for the automatic minimum of columns
		req.Width = Fixed(width)
		resp := flexContent(ctx, req)
		resp.MinContent = minContent
		return resp
	case Indefinite:
		req.Width = Fixed(req.Model.ClampWidth(flexIntrinsicWidth(ctx, req.Box, req.Model, MaxContent)))
	}
	return flexContent(ctx, req)
}

func flexContent(ctx *Context, req Request) Response {
	fc := newFlexContainer(ctx, req)
	fc.collectItems(req.Resume)
	fc.layout()

	placed, resume := fc.paginate(req.MaxExtent, req.PageIsEmpty)

	width, height := fc.axes.physical(fc.innerMain, fc.innerCross)
	if resume != nil {
		// a broken container fills the page
		height = pr.Max(0, req.MaxExtent)
	}

	out := Response{
		Width:    width,
		Height:   height,
		Baseline: fc.firstBaseline(placed),
		Resume:   resume,
	}

	// children are returned in document order
	order := make(map[*bo.Box]int, len(fc.box.Children))
	for i, child := range fc.box.Children {
		order[child] = i
	}
	for _, p := range placed {
		out.Children = append(out.Children, p.frag)
	}
	for _, child := range fc.absolutes {
		m := &fc.model
		out.Children = append(out.Children, AbsoluteLayout(ctx, child,
			-m.PaddingLeft, -m.PaddingTop, width+m.PaddingLeft+m.PaddingRight, height+m.PaddingTop+m.PaddingBottom,
			0, 0))
	}
	sort.SliceStable(out.Children, func(i, j int) bool {
		return order[out.Children[i].Box] < order[out.Children[j].Box]
	})
	return out
}

// layout runs the flex layout algorithm: it resolves the size and
// the position of every item, without laying out their content.
func (fc *flexContainer) layout() {
	fc.resolveBaseSizes()

	main := fc.mainConstraint()
	if main.IsDefinite() {
		fc.innerMain = main.Size
	} else {
		// the main size of the container is given by its items
		_, minMain, maxMain := fc.axes.mainSizes(&fc.model)
		fc.innerMain = pr.Max(minMain.V(), pr.Min(fc.sumOuterHypothetical(fc.ordered), maxMain))
	}

	fc.buildLines(fc.innerMain)
	for li := range fc.lines {
		fc.resolveFlexibleLengths(&fc.lines[li], fc.innerMain)
	}
	fc.resolveHypotheticalCross()
	fc.resolveLineCrossSizes()
	fc.resolveContainerCross()
	fc.alignContent()
	fc.alignItems()
	fc.justifyContent()

	if traceMode {
		traceLogger.Dump(fmt.Sprintf("flex layout of %s: main %g, cross %g, %d lines",
			fc.box, fc.innerMain, fc.innerCross, len(fc.lines)))
	}
}

// firstBaseline returns the baseline of the first line, which is the
// baseline of its baseline aligned items or of its first item with
// a baseline.
func (fc *flexContainer) firstBaseline(placed []placedItem) pr.MaybeFloat {
	firstLine := -1
	for _, p := range placed {
		if firstLine == -1 || p.item.line < firstLine {
			firstLine = p.item.line
		}
	}
	if firstLine == -1 {
		return pr.AutoF
	}
	var fallback pr.MaybeFloat = pr.AutoF
	for _, p := range placed {
		if p.item.line != firstLine || p.frag.Baseline == pr.AutoF {
			continue
		}
		baseline := p.frag.PositionY + p.frag.Baseline.V()
		if _, ok := fc.baselineAscent(p.item); ok {
			return baseline
		}
		if fallback == pr.AutoF {
			fallback = baseline
		}
	}
	return fallback
}

// flexIntrinsicWidth returns the min-content or max-content width of the
// content box of a flex container.
func flexIntrinsicWidth(ctx *Context, box *bo.Box, model BoxModel, mode SizingMode) pr.Float {
	style := box.Style
	var (
		contributions []pr.Float
		count         int
	)
	for _, child := range box.Children {
		if !child.IsInFlow() || (child.Kind == bo.ElementBox && child.Style.Display == pr.DisplayNone) {
			continue
		}
		childModel := ResolveBoxModel(child.Style, pr.AutoF, pr.AutoF)
		contributions = append(contributions, IntrinsicWidth(ctx, child, childModel, mode))
		count++
	}

	columnGap := resolveOnePercentage(style.ColumnGap, "column-gap", pr.AutoF).V()
	var out pr.Float
	if style.FlexDirection.IsRow() && (mode == MaxContent || style.FlexWrap == pr.NoWrap) {
		for _, c := range contributions {
			out += c
		}
		out += gaps(count, columnGap)
	} else {
		// column containers, and the min-content of multi-line rows
		for _, c := range contributions {
			out = pr.Max(out, c)
		}
	}
	return out
}
