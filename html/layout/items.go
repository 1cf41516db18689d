package layout

import (
	"fmt"
	"sort"

	pr "github.com/benoitkugler/flexrender/css/properties"
	"github.com/benoitkugler/flexrender/css/properties/keywords"
	bo "github.com/benoitkugler/flexrender/html/boxes"
)

// flexItem stores the state of one flex item during a layout pass.
type flexItem struct {
	box *bo.Box
	// index among the in-flow children, in document order
	index int
	model BoxModel
	// content remaining from a previous page, or nil
	resume ResumeStack

	grow, shrink pr.Float

	minMain, maxMain   pr.Float
	minCross, maxCross pr.Float

	baseSize     pr.Float
	hypothetical pr.Float
	// target is the main size, once flexible lengths are resolved
	target pr.Float
	frozen bool

	// cross content size, hypothetical then used
	crossSize pr.Float
	// distance from the top of the margin box to the first baseline
	baseline  pr.MaybeFloat
	alignSelf keywords.Keyword
	stretched bool

	// logical offsets of the margin box, relative
	// to the main-start and cross-start edges of the content box
	mainOffset, crossOffset pr.Float
	// index into the container lines, from cross-start to cross-end
	line int
	// index of the line in the order lines are built, which differs
	// from line for wrap-reverse containers
	builtLine int

	// width used to measure the content of column items
	measureWidth pr.MaybeFloat
}

func (it *flexItem) autoMargin(side bo.Side) bool { return it.model.AutoMargins[side] }

func (it *flexItem) avoidBreak() bool { return it.box.Style.BreakInside == pr.BreakInsideAvoid }

// flexContainer stores the state of a flex container
// during a layout pass.
type flexContainer struct {
	ctx   *Context
	box   *bo.Box
	style *pr.Style
	axes  axes
	model BoxModel

	// constraints on the content box
	width, height Constraint

	mainGap, crossGap pr.Float

	// arena of items, in document order
	items []flexItem
	// indices into items, sorted by the "order" property
	ordered []int
	lines   []flexLine

	// absolutely positioned children
	absolutes []*bo.Box

	innerMain, innerCross pr.Float
}

func newFlexContainer(ctx *Context, req Request) *flexContainer {
	fc := &flexContainer{
		ctx:    ctx,
		box:    req.Box,
		style:  req.Box.Style,
		axes:   resolveAxes(req.Box.Style),
		model:  req.Model,
		width:  req.Width,
		height: req.Height,
	}
	// gaps percentages refer to the content box
	columnGap := resolveOnePercentage(fc.style.ColumnGap, "column-gap", fc.width.Value()).V()
	rowGap := resolveOnePercentage(fc.style.RowGap, "row-gap", fc.height.Value()).V()
	if fc.axes.isRow {
		fc.mainGap, fc.crossGap = columnGap, rowGap
	} else {
		fc.mainGap, fc.crossGap = rowGap, columnGap
	}
	return fc
}

func (fc *flexContainer) mainConstraint() Constraint {
	return fc.axes.mainConstraint(fc.width, fc.height)
}

func (fc *flexContainer) crossConstraint() Constraint {
	return fc.axes.crossConstraint(fc.width, fc.height)
}

// collectItems builds the item arena from the in-flow children.
// If resume is not nil, only the children it names are retained.
func (fc *flexContainer) collectItems(resume ResumeStack) {
	var inFlow []*bo.Box
	for _, child := range fc.box.Children {
		if child.Kind == bo.ElementBox && child.Style.Display == pr.DisplayNone {
			continue
		}
		if !child.IsInFlow() {
			if resume == nil {
				fc.absolutes = append(fc.absolutes, child)
			}
			continue
		}
		inFlow = append(inFlow, child)
	}

	for _, key := range resume.Keys() {
		if key < 0 || key >= len(inFlow) {
			panic(&MalformedResumeError{Box: fc.box, Index: key, Count: len(inFlow)})
		}
	}

	for index, child := range inFlow {
		var childResume ResumeStack
		if resume != nil {
			sub, ok := resume[index]
			if !ok {
				continue // already laid out
			}
			childResume = sub
		}
		fc.items = append(fc.items, fc.newItem(child, index, childResume))
	}

	fc.ordered = make([]int, len(fc.items))
	for i := range fc.ordered {
		fc.ordered[i] = i
	}
	sort.SliceStable(fc.ordered, func(i, j int) bool {
		return fc.items[fc.ordered[i]].box.Style.Order < fc.items[fc.ordered[j]].box.Style.Order
	})
}

func (fc *flexContainer) newItem(box *bo.Box, index int, resume ResumeStack) flexItem {
	style := box.Style
	it := flexItem{
		box:       box,
		index:     index,
		resume:    resume,
		grow:      pr.Max(0, style.FlexGrow),
		shrink:    pr.Max(0, style.FlexShrink),
		alignSelf: style.UsedAlignSelf(fc.style.AlignItems),
		line:      -1,
		builtLine: -1,
		baseline:  pr.AutoF,
	}
	it.model = ResolveBoxModel(style, fc.width.Value(), fc.height.Value())
	if resume != nil {
		// the top edge has been drawn on a previous page
		it.model.RemoveDecoration(true, false)
	}
	crossSize, minCross, maxCross := fc.axes.crossSizes(&it.model)
	it.minCross, it.maxCross = minCross.V(), maxCross
	crossStart, crossEnd := fc.axes.crossSides()
	if stretchable(it.alignSelf) && crossSize == pr.AutoF && !it.autoMargin(crossStart) && !it.autoMargin(crossEnd) {
		it.stretched = true
	}
	return it
}

func stretchable(k keywords.Keyword) bool { return k == keywords.Stretch || k == keywords.Normal }

// measure lays out the content of the item with the given constraints,
// ignoring pagination.
func (fc *flexContainer) measure(it *flexItem, width, height Constraint) Response {
	return fc.ctx.LayoutContent(Request{
		Box: it.box, Model: it.model,
		Width: width, Height: height,
		MaxExtent: pr.Inf, PageIsEmpty: true,
		Resume: it.resume,
	})
}

// columnMeasureWidth returns the width used to lay out the content of
// an item of a column container: its width if definite, the stretched
// width if the container is single-line with a definite width, or its
// fit-content width.
func (fc *flexContainer) columnMeasureWidth(it *flexItem) pr.Float {
	if it.measureWidth != nil {
		return it.measureWidth.V()
	}
	m := &it.model
	var width pr.Float
	switch {
	case m.Width != pr.AutoF:
		width = m.Width.V()
	case it.stretched && fc.width.IsDefinite() && fc.style.FlexWrap == pr.NoWrap:
		width = fc.width.Size - m.HorizontalExtra()
	default:
		available := pr.Inf
		if fc.width.IsDefinite() {
			available = fc.width.Size - m.HorizontalExtra()
		}
		resp := fc.measure(it, Constraint{Mode: MaxContent}, MaybeFixed(m.Height))
		width = resp.Width
		if width > available {
			width = pr.Max(resp.MinContent, available)
		}
	}
	width = m.ClampWidth(pr.Max(0, width))
	it.measureWidth = width
	return width
}

// contentMainSize returns the main size of the content
// (max-content width for rows, content height for columns).
// The min-content size is also returned for rows.
func (fc *flexContainer) contentMainSize(it *flexItem) (size, minContent pr.Float) {
	if fc.axes.isRow {
		resp := fc.measure(it, Constraint{Mode: MaxContent}, MaybeFixed(it.model.Height))
		return resp.Width, resp.MinContent
	}
	resp := fc.measure(it, Fixed(fc.columnMeasureWidth(it)), Constraint{})
	return resp.Height, resp.Height
}

// resolveBaseSizes computes the flex base size, the hypothetical main
// size and the min and max main sizes of every item.
func (fc *flexContainer) resolveBaseSizes() {
	availableMain := fc.mainConstraint().Value()
	mainStart, mainEnd := fc.axes.mainSides()
	for i := range fc.items {
		it := &fc.items[i]
		style := it.box.Style
		size, minSize, maxSize := fc.axes.mainSizes(&it.model)

		var (
			content, minContent pr.Float
			hasContent          bool
		)
		contentSize := func() (pr.Float, pr.Float) {
			if !hasContent {
				content, minContent = fc.contentMainSize(it)
				hasContent = true
			}
			return content, minContent
		}

		// flex-basis
		var base pr.MaybeFloat
		switch basis := style.FlexBasis; basis.S {
		case "auto":
			base = size
		case "content":
			base = pr.AutoF
		default:
			base = resolveOnePercentage(basis, "flex-basis", availableMain)
			if base != pr.AutoF {
				base = pr.Max(0, base.V()-fc.boxSizingDelta(it))
			}
		}
		if base == pr.AutoF {
			base, _ = contentSize()
		}
		it.baseSize = base.V()

		// automatic minimum size
		if minSize == pr.AutoF {
			if style.Overflow == pr.OverflowVisible {
				_, autoMin := contentSize()
				if size != pr.AutoF {
					autoMin = pr.Min(autoMin, size.V())
				}
				it.minMain = pr.Min(autoMin, maxSize)
			} else {
				it.minMain = 0
			}
		} else {
			it.minMain = minSize.V()
		}
		it.maxMain = maxSize

		it.hypothetical = it.clampMain(it.baseSize)

		// auto margins are treated as zero until justification
		if it.autoMargin(mainStart) {
			*margin(&it.model.BoxFields, mainStart) = 0
		}
		if it.autoMargin(mainEnd) {
			*margin(&it.model.BoxFields, mainEnd) = 0
		}

		if traceMode {
			traceLogger.Dump(fmt.Sprintf("item %d: base %g, hypothetical %g, min %g, max %g",
				it.index, it.baseSize, it.hypothetical, it.minMain, it.maxMain))
		}
	}
}

// boxSizingDelta returns the paddings and borders along the main axis
// included in a definite flex-basis.
func (fc *flexContainer) boxSizingDelta(it *flexItem) pr.Float {
	m := &it.model
	var paddings, borders pr.Float
	if fc.axes.isRow {
		paddings, borders = m.PaddingLeft+m.PaddingRight, m.BorderLeftWidth+m.BorderRightWidth
	} else {
		paddings, borders = m.PaddingTop+m.PaddingBottom, m.BorderTopWidth+m.BorderBottomWidth
	}
	switch it.box.Style.BoxSizing {
	case pr.BorderBox:
		return paddings + borders
	case pr.PaddingBox:
		return paddings
	default:
		return 0
	}
}

// clampMain applies the min and max main sizes, min winning over max.
func (it *flexItem) clampMain(size pr.Float) pr.Float {
	return pr.Max(0, pr.Max(it.minMain, pr.Min(size, it.maxMain)))
}

func (it *flexItem) clampCross(size pr.Float) pr.Float {
	return pr.Max(0, pr.Max(it.minCross, pr.Min(size, it.maxCross)))
}

// outerHypothetical returns the hypothetical main size of the margin box.
func (fc *flexContainer) outerHypothetical(it *flexItem) pr.Float {
	return it.hypothetical + fc.axes.mainExtra(&it.model)
}

// resolveHypotheticalCross computes the cross size of each item,
// once its main size is known.
func (fc *flexContainer) resolveHypotheticalCross() {
	for i := range fc.items {
		it := &fc.items[i]
		crossSize, _, _ := fc.axes.crossSizes(&it.model)
		if fc.axes.isRow {
			resp := fc.measure(it, Fixed(it.target), MaybeFixed(it.model.Height))
			if crossSize != pr.AutoF {
				it.crossSize = crossSize.V()
			} else {
				it.crossSize = resp.Height
			}
			if resp.Baseline != pr.AutoF {
				it.baseline = it.model.MarginTop + it.model.BorderTopWidth + it.model.PaddingTop + resp.Baseline.V()
			}
		} else {
			it.crossSize = fc.columnMeasureWidth(it)
		}
		it.crossSize = it.clampCross(it.crossSize)
	}
}

// outerCross returns the cross size of the margin box.
func (fc *flexContainer) outerCross(it *flexItem) pr.Float {
	return it.crossSize + fc.axes.crossExtra(&it.model)
}

// size returns the physical size of the content box of the item.
func (fc *flexContainer) size(it *flexItem) (width, height pr.Float) {
	return fc.axes.physical(it.target, it.crossSize)
}
