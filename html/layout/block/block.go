// Package block implements the layout of the content of block
// containers: block-level children stacked vertically, and inline content
// broken into lines.
//
// It is the SubLayout used for flex items, and the formatting context
// of the root of the documents.
//
// Only a subset of CSS 2 is supported: there is no margin collapsing,
// floats do not shorten the line boxes and atomic inline-level boxes are
// placed on their own line.
package block

import (
	pr "github.com/benoitkugler/flexrender/css/properties"
	bo "github.com/benoitkugler/flexrender/html/boxes"
	"github.com/benoitkugler/flexrender/html/layout"
)

// Layout lays out block and flex content.
// It has no state, and may be used concurrently.
type Layout struct{}

var _ layout.SubLayout = Layout{}

// NewContext returns a layout context whose sub-layout is a Layout.
func NewContext() *layout.Context { return &layout.Context{Sub: Layout{}} }

// LayoutContent implements layout.SubLayout.
func (Layout) LayoutContent(ctx *layout.Context, req layout.Request) layout.Response {
	if req.Box.IsFlexContainer() {
		return layout.FlexContent(ctx, req)
	}
	return flowContent(ctx, req)
}

// RootLayout lays out the root box of a document in a page area of
// the given size. resume is the stack returned for the previous page,
// or nil for the first one.
func RootLayout(ctx *layout.Context, root *bo.Box, width, height pr.Float, resume layout.ResumeStack) (*bo.Fragment, layout.ResumeStack) {
	if root.IsFlexContainer() {
		return layout.FlexLayout(ctx, root, layout.Constraints{
			ContainingWidth: width, ContainingHeight: height,
			WidthMode:  layout.Definite,
			PageExtent: height, PageIsEmpty: true,
		}, resume)
	}
	return blockBox(ctx, root, width, height, height, true, resume)
}

// flowItem is either a block-level box or a run of inline-level boxes.
type flowItem struct {
	box    *bo.Box   // block-level
	inline []*bo.Box // inline-level
}

// flowItems groups the children of box. Runs of inline-level boxes
// among block-level siblings holding only collapsible white space
// are ignored.
func flowItems(box *bo.Box) []flowItem {
	var (
		out     []flowItem
		current []*bo.Box
	)
	hasBlock := false
	for _, child := range box.Children {
		hasBlock = hasBlock || isBlockLevel(child)
	}
	flush := func() {
		if len(current) != 0 && (!hasBlock || !isWhiteSpace(current)) {
			out = append(out, flowItem{inline: current})
		}
		current = nil
	}
	for _, child := range box.Children {
		if child.Kind == bo.ElementBox && child.Style.Display == pr.DisplayNone {
			continue
		}
		if isBlockLevel(child) {
			flush()
			out = append(out, flowItem{box: child})
		} else {
			current = append(current, child)
		}
	}
	flush()
	return out
}

// isBlockLevel returns true for the children laid out outside of line
// boxes: block-level boxes, floats and absolutely positioned boxes.
func isBlockLevel(b *bo.Box) bool {
	if b.Kind != bo.ElementBox {
		return false
	}
	if b.Style.Float != pr.FloatNone || b.Style.Position.IsAbsolute() {
		return true
	}
	switch b.Style.Display {
	case pr.DisplayBlock, pr.DisplayFlex:
		return true
	default:
		return false
	}
}

func isWhiteSpace(boxes []*bo.Box) bool {
	for _, b := range boxes {
		switch b.Kind {
		case bo.TextBox:
			for _, r := range b.Text {
				if r != ' ' && r != '\n' && r != '\t' && r != '\r' && r != '\f' {
					return false
				}
			}
		case bo.LineBreak:
			return false
		default:
			if !isWhiteSpace(b.Children) || b.Style.Display != pr.DisplayInline {
				return false
			}
		}
	}
	return true
}

// intrinsicWidth returns the min-content and max-content widths of the
// content of box.
func intrinsicWidth(ctx *layout.Context, box *bo.Box) (minContent, maxContent pr.Float) {
	for _, item := range flowItems(box) {
		var minC, maxC pr.Float
		if item.box != nil {
			if item.box.Style.Position.IsAbsolute() {
				continue
			}
			model := layout.ResolveBoxModel(item.box.Style, pr.AutoF, pr.AutoF)
			minC = layout.IntrinsicWidth(ctx, item.box, model, layout.MinContent)
			maxC = layout.IntrinsicWidth(ctx, item.box, model, layout.MaxContent)
		} else {
			minC, maxC = inlineIntrinsicWidth(ctx, box, item.inline)
		}
		minContent = pr.Max(minContent, minC)
		maxContent = pr.Max(maxContent, maxC)
	}
	return minContent, maxContent
}

// hasPercentageWidth returns true if the width of a block-level child
// depends on the width of box.
func hasPercentageWidth(box *bo.Box) bool {
	for _, child := range box.Children {
		if isBlockLevel(child) && !child.Style.Position.IsAbsolute() && child.Style.Width.IsPercentage() {
			return true
		}
	}
	return false
}

// flowContent lays out the children of a block container.
func flowContent(ctx *layout.Context, req layout.Request) layout.Response {
	box := req.Box
	var out layout.Response

	width := req.Width.Size
	if req.Width.Mode != layout.Definite {
		minContent, maxContent := intrinsicWidth(ctx, box)
		out.MinContent = minContent
		if req.Width.Mode == layout.MinContent {
			width = minContent
		} else {
			width = maxContent
		}
		if req.Width.Mode != layout.Indefinite && hasPercentageWidth(box) {
			out.Circular = pr.PWidth
		}
	}
	out.Width = width

	f := flow{
		ctx:         ctx,
		box:         box,
		width:       width,
		height:      req.Height.Value(),
		maxExtent:   req.MaxExtent,
		pageIsEmpty: req.PageIsEmpty,
		baseline:    pr.AutoF,
	}
	f.layout(req.Resume)

	out.Height = f.y
	if req.Height.IsDefinite() {
		out.Height = req.Height.Size
	} else {
		out.Height = req.Model.ClampHeight(out.Height)
	}
	if f.resume != nil {
		out.Height = pr.Max(0, req.MaxExtent)
	}
	out.Resume = f.resume
	out.Baseline = f.baseline

	// absolutely positioned children use the padding box
	m := &req.Model
	for _, abs := range f.absolutes {
		f.children[abs.index] = layout.AbsoluteLayout(ctx, abs.box,
			-m.PaddingLeft, -m.PaddingTop, width+m.PaddingLeft+m.PaddingRight, out.Height+m.PaddingTop+m.PaddingBottom,
			0, abs.staticY)
	}
	out.Children = f.children
	return out
}

type absolutePlaceholder struct {
	box     *bo.Box
	index   int // in children
	staticY pr.Float
}

// flow stores the state of the layout of a block container content.
type flow struct {
	ctx *layout.Context
	box *bo.Box

	width  pr.Float
	height pr.MaybeFloat // for percentages

	maxExtent   pr.Float
	pageIsEmpty bool

	// current position
	y        pr.Float
	children []*bo.Fragment
	// placeholders in children
	absolutes []absolutePlaceholder
	// something has been placed on the page
	placed bool

	baseline pr.MaybeFloat
	resume   layout.ResumeStack
}

func (f *flow) pageEmpty() bool { return f.pageIsEmpty && !f.placed }

func (f *flow) layout(resume layout.ResumeStack) {
	items := flowItems(f.box)
	start, childResume := 0, layout.ResumeStack(nil)
	if resume != nil {
		start, childResume = resume.Unpack()
	}
	for i := start; i < len(items); i++ {
		item := items[i]
		var sub layout.ResumeStack
		if i == start {
			sub = childResume
		}
		var stop bool
		if item.box != nil {
			stop = f.layoutBlockLevel(i, item.box, sub)
		} else {
			stop = f.layoutInline(i, item.inline, sub)
		}
		if stop {
			return
		}
	}
}

// layoutBlockLevel places a block-level child, returning true if the
// page is full.
func (f *flow) layoutBlockLevel(index int, child *bo.Box, resume layout.ResumeStack) bool {
	switch {
	case child.Style.Position.IsAbsolute():
		f.absolutes = append(f.absolutes, absolutePlaceholder{box: child, index: len(f.children), staticY: f.y})
		f.children = append(f.children, nil) // replaced once the height is known
		return false
	case child.Style.Float != pr.FloatNone:
		f.children = append(f.children, f.layoutFloat(child))
		return false
	}

	if f.y >= f.maxExtent && !f.pageEmpty() {
		f.resume = layout.ResumeStack{index: resume}
		return true
	}

	var (
		frag *bo.Fragment
		sub  layout.ResumeStack
	)
	if child.IsFlexContainer() {
		frag, sub = layout.FlexLayout(f.ctx, child, layout.Constraints{
			ContainingWidth: f.width, ContainingHeight: f.height,
			WidthMode:  layout.Definite,
			PageExtent: f.maxExtent - f.y, PageIsEmpty: f.pageEmpty(),
		}, resume)
	} else {
		frag, sub = blockBox(f.ctx, child, f.width, f.height, f.maxExtent-f.y, f.pageEmpty(), resume)
	}

	if sub == nil && f.y+frag.MarginHeight() > f.maxExtent && !f.pageEmpty() {
		// does not fit, and can't be broken: push it to the next page
		f.resume = layout.ResumeStack{index: resume}
		return true
	}

	frag.Translate(0, f.y)
	f.addBaseline(frag)
	f.children = append(f.children, frag)
	f.y += frag.MarginHeight()
	f.placed = true
	if sub != nil {
		f.resume = layout.ResumeStack{index: sub}
		return true
	}
	return false
}

func (f *flow) addBaseline(frag *bo.Fragment) {
	if f.baseline == pr.AutoF && frag.Baseline != pr.AutoF {
		f.baseline = frag.PositionY + frag.Baseline.V()
	}
}

// blockBox lays out a block-level, non flex, box whose margin box is
// placed at (0, 0).
func blockBox(ctx *layout.Context, box *bo.Box, cbWidth pr.Float, cbHeight pr.MaybeFloat,
	extent pr.Float, pageIsEmpty bool, resume layout.ResumeStack,
) (*bo.Fragment, layout.ResumeStack) {
	model := layout.ResolveBoxModel(box.Style, cbWidth, cbHeight)
	if resume != nil {
		model.RemoveDecoration(true, false)
	}
	var width pr.Float
	if model.Width != pr.AutoF {
		width = model.Width.V()
	} else {
		width = cbWidth - model.HorizontalExtra()
	}
	width = model.ClampWidth(pr.Max(0, width))

	// auto margins center the box
	remaining := cbWidth - width - model.HorizontalExtra()
	left, right := model.AutoMargins[bo.SLeft], model.AutoMargins[bo.SRight]
	if remaining > 0 {
		switch {
		case left && right:
			model.MarginLeft, model.MarginRight = remaining/2, remaining/2
		case left:
			model.MarginLeft = remaining
		case right:
			model.MarginRight = remaining
		}
	}

	top := model.MarginTop + model.BorderTopWidth + model.PaddingTop
	resp := ctx.LayoutContent(layout.Request{
		Box: box, Model: model,
		Width: layout.Fixed(width), Height: layout.MaybeFixed(model.Height),
		MaxExtent: extent - top, PageIsEmpty: pageIsEmpty,
		Resume: resume,
	})
	frag := model.Fragment(box, width, resp.Height)
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
	return frag, resp.Resume
}

// layoutFloat places a floated child at the left or right edge of the
// content box, at the current position. Floats are not broken.
func (f *flow) layoutFloat(child *bo.Box) *bo.Fragment {
	frag := shrinkToFit(f.ctx, child, f.width, f.height)
	x := pr.Float(0)
	if child.Style.Float == pr.FloatRight {
		x = f.width - frag.MarginWidth()
	}
	frag.Translate(x, f.y)
	return frag
}

// shrinkToFit lays out a box whose margin box is placed at (0, 0),
// using its width if definite, or its shrink-to-fit width.
func shrinkToFit(ctx *layout.Context, box *bo.Box, cbWidth pr.Float, cbHeight pr.MaybeFloat) *bo.Fragment {
	model := layout.ResolveBoxModel(box.Style, cbWidth, cbHeight)
	var width pr.Float
	if model.Width != pr.AutoF {
		width = model.Width.V()
	} else {
		extra := model.HorizontalExtra()
		available := cbWidth - extra
		minContent := layout.IntrinsicWidth(ctx, box, model, layout.MinContent) - extra
		maxContent := layout.IntrinsicWidth(ctx, box, model, layout.MaxContent) - extra
		width = pr.Min(pr.Max(minContent, available), maxContent)
	}
	width = model.ClampWidth(pr.Max(0, width))

	resp := ctx.LayoutContent(layout.Request{
		Box: box, Model: model,
		Width: layout.Fixed(width), Height: layout.MaybeFixed(model.Height),
		MaxExtent: pr.Inf, PageIsEmpty: true,
	})
	height := resp.Height
	if model.Height == pr.AutoF {
		height = model.ClampHeight(height)
	}
	frag := model.Fragment(box, width, height)
	frag.Children = resp.Children
	for _, c := range frag.Children {
		c.Translate(frag.ContentBoxX(), frag.ContentBoxY())
	}
	if resp.Baseline != pr.AutoF {
		frag.Baseline = frag.MarginTop + frag.BorderTopWidth + frag.PaddingTop + resp.Baseline.V()
	}
	return frag
}
