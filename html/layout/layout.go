// Package layout implements the flexible box layout: it turns a flex
// container and its items into positioned and sized fragments.
//
// The content of each flex item is laid out by an external SubLayout,
// which is also queried for the intrinsic sizes of the items. A container
// may be broken across pages: the remaining content is then described by
// a ResumeStack, given back to the next invocation.
//
// Layout is a pure function of its input: no state is kept between
// invocations.
package layout

import (
	"os"
	"path/filepath"

	pr "github.com/benoitkugler/flexrender/css/properties"
	bo "github.com/benoitkugler/flexrender/html/boxes"
	"github.com/benoitkugler/flexrender/logger"
	"github.com/benoitkugler/flexrender/utils/testutils/tracer"
)

const (
	// if true, print debug information into a temporary file
	traceMode = false
)

var traceLogger tracer.Tracer // used only when traceMode is true

func init() {
	if traceMode {
		traceLogger = tracer.NewTracer(filepath.Join(os.TempDir(), "trace_flex.txt"))
	}
}

// SizingMode describes how a dimension of a box is constrained.
type SizingMode uint8

const (
	// Indefinite means the size depends on the content.
	Indefinite SizingMode = iota
	// Definite means the size is fixed to Constraint.Size.
	Definite
	// MinContent asks for the smallest size the content can take
	// without overflowing.
	MinContent
	// MaxContent asks for the size of the content with no wrapping.
	MaxContent
)

func (m SizingMode) String() string {
	switch m {
	case Indefinite:
		return "indefinite"
	case Definite:
		return "definite"
	case MinContent:
		return "min-content"
	case MaxContent:
		return "max-content"
	default:
		return "<invalid sizing mode>"
	}
}

// Constraint is the constraint on one dimension of a content box.
type Constraint struct {
	Mode SizingMode
	Size pr.Float // for Definite
}

// Fixed returns a definite constraint.
func Fixed(size pr.Float) Constraint { return Constraint{Mode: Definite, Size: size} }

// MaybeFixed returns a definite constraint for f, or an indefinite
// one for AutoF.
func MaybeFixed(f pr.MaybeFloat) Constraint {
	if f == pr.AutoF {
		return Constraint{}
	}
	return Fixed(f.V())
}

// IsDefinite returns true for a Definite constraint.
func (c Constraint) IsDefinite() bool { return c.Mode == Definite }

// Value returns the size of a definite constraint, or AutoF.
func (c Constraint) Value() pr.MaybeFloat {
	if c.Mode == Definite {
		return c.Size
	}
	return pr.AutoF
}

// Request asks a SubLayout for the content of a box.
type Request struct {
	Box *bo.Box
	// Model is the resolved box model of Box.
	Model BoxModel

	// Width and Height constrain the content box.
	Width, Height Constraint

	// MaxExtent is the block extent remaining on the page,
	// measured from the top of the content box. It is Inf when
	// no page break may occur.
	MaxExtent   pr.Float
	PageIsEmpty bool

	// Resume is not nil when the content of Box has been
	// started on a previous page.
	Resume ResumeStack
}

// Response is the result of a Request.
type Response struct {
	// Width and Height are the used sizes of the content box.
	// For MinContent and MaxContent width requests, Width is the
	// intrinsic width.
	Width, Height pr.Float

	// MinContent is the min-content width of the content.
	MinContent pr.Float

	// Baseline is the position of the first baseline, from the top
	// of the content box, or AutoF.
	Baseline pr.MaybeFloat

	// Children are positioned relatively to the content box.
	Children []*bo.Fragment

	// Resume is not nil if the content is not finished on this page.
	Resume ResumeStack

	// Circular is either pr.PWidth or pr.PHeight when the content
	// size along this dimension depends on the size being computed.
	Circular pr.KnownProp
}

// SubLayout lays out the content of a box.
// It must be safe to call LayoutContent again from within a call,
// for nested layouts.
type SubLayout interface {
	LayoutContent(ctx *Context, req Request) Response
}

// Context stores the collaborators of the layout.
type Context struct {
	Sub SubLayout
}

// LayoutContent calls the sub-layout, retrying once with the offending
// dimension set as indefinite when a circular size is reported.
// A box whose content is finished (see [ResumeStack]) is not given to the
// sub-layout.
func (ctx *Context) LayoutContent(req Request) Response {
	if req.Resume != nil && len(req.Resume) == 0 {
		return finishedContent(req)
	}
	resp := ctx.Sub.LayoutContent(ctx, req)
	switch resp.Circular {
	case pr.PWidth:
		logger.ProgressLogger.Debugf("circular width for %s: layout again with indefinite width", req.Box)
		req.Width = Constraint{}
	case pr.PHeight:
		logger.ProgressLogger.Debugf("circular height for %s: layout again with indefinite height", req.Box)
		req.Height = Constraint{}
	default:
		return resp
	}
	resp = ctx.Sub.LayoutContent(ctx, req)
	resp.Circular = 0
	return resp
}

// finishedContent returns the layout of a box without content.
func finishedContent(req Request) Response {
	out := Response{Baseline: pr.AutoF}
	if req.Width.IsDefinite() {
		out.Width = req.Width.Size
	}
	if req.Height.IsDefinite() {
		out.Height = req.Height.Size
	}
	return out
}

// Constraints are the constraints on a flex container given by its parent.
type Constraints struct {
	// ContainingWidth is the width of the containing block.
	ContainingWidth pr.Float
	// ContainingHeight is the height of the containing block, or AutoF.
	ContainingHeight pr.MaybeFloat

	// WidthMode is Definite for block-level containers filling their
	// containing block, Indefinite for shrink-to-fit containers, and
	// MinContent or MaxContent for intrinsic queries.
	WidthMode SizingMode

	// PageExtent is the block extent remaining on the page, from
	// the top of the margin box. Inf disables pagination.
	PageExtent  pr.Float
	PageIsEmpty bool
}
