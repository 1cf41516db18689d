package layout

import (
	pr "github.com/benoitkugler/flexrender/css/properties"
	bo "github.com/benoitkugler/flexrender/html/boxes"
)

// contentSize describes the content of a leaf box for fakeContent.
type contentSize struct {
	minContent, maxContent pr.Float
	height                 pr.Float
	baseline               pr.MaybeFloat // nil for no baseline
	// breakable content may be split at any position,
	// or only at multiples of step if it is not zero
	breakable bool
	step      pr.Float
	// circular asks for a second layout with an indefinite width
	circular bool
}

// fakeContent is a SubLayout for leaf boxes with known sizes.
// Flex containers are laid out with FlexContent.
type fakeContent struct {
	sizes map[*bo.Box]contentSize
	calls int
}

func newFake() *fakeContent { return &fakeContent{sizes: map[*bo.Box]contentSize{}} }

func (f *fakeContent) context() *Context { return &Context{Sub: f} }

// leaf returns a new block box with the given content.
func (f *fakeContent) leaf(c contentSize, setup func(s *pr.Style)) *bo.Box {
	s := pr.InitialStyle()
	if setup != nil {
		setup(s)
	}
	box := bo.NewBlockBox("div", s)
	f.sizes[box] = c
	return box
}

func (f *fakeContent) LayoutContent(ctx *Context, req Request) Response {
	f.calls++
	if req.Box.IsFlexContainer() {
		return FlexContent(ctx, req)
	}
	c := f.sizes[req.Box]
	if c.circular && req.Width.IsDefinite() {
		return Response{Circular: pr.PWidth}
	}

	// already laid out extent
	consumed := 0
	if req.Resume != nil {
		consumed, _ = req.Resume.Unpack()
	}

	out := Response{MinContent: c.minContent, Baseline: c.baseline}
	if out.Baseline == nil {
		out.Baseline = pr.AutoF
	}
	switch req.Width.Mode {
	case Definite:
		out.Width = req.Width.Size
	case MinContent:
		out.Width = c.minContent
	default:
		out.Width = c.maxContent
	}
	height := c.height - pr.Float(consumed)
	if req.Height.IsDefinite() {
		height = req.Height.Size
	}
	if c.breakable && height > req.MaxExtent {
		fits := req.MaxExtent
		if c.step > 0 {
			fits = pr.Float(int(fits/c.step)) * c.step
		}
		out.Height = req.MaxExtent
		out.Resume = ResumeStack{consumed + int(fits): nil}
		if fits > 0 {
			line := &bo.Fragment{IsLine: true, Line: -1, Baseline: pr.AutoF}
			line.Width, line.Height = out.Width, fits
			out.Children = []*bo.Fragment{line}
		}
		return out
	}
	out.Height = height
	return out
}

// flexBox returns a flex container.
func flexBox(setup func(s *pr.Style), children ...*bo.Box) *bo.Box {
	s := pr.InitialStyle()
	s.Display = pr.DisplayFlex
	if setup != nil {
		setup(s)
	}
	return bo.NewBlockBox("article", s, children...)
}

// blockLevel returns the constraints of a block-level container in
// a containing block of the given width, without pagination.
func blockLevel(width pr.Float) Constraints {
	return Constraints{
		ContainingWidth: width, ContainingHeight: pr.AutoF,
		WidthMode:  Definite,
		PageExtent: pr.Inf, PageIsEmpty: true,
	}
}

func paged(width, extent pr.Float) Constraints {
	out := blockLevel(width)
	out.PageExtent = extent
	return out
}

type rect struct{ x, y, w, h pr.Float }

func rects(frags []*bo.Fragment) []rect {
	out := make([]rect, len(frags))
	for i, f := range frags {
		out[i] = rect{f.PositionX, f.PositionY, f.Width, f.Height}
	}
	return out
}

func px(v pr.Float) pr.Value { return pr.FToPx(v) }
