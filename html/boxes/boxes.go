// Package boxes defines the box tree given to the layout,
// and the fragment tree it returns.
//
// A Box is a styled node of the document: it is owned by the tree
// and never modified by the layout. Each layout pass produces new
// Fragments, referencing (not owning) the Box they come from.
package boxes

import (
	"fmt"
	"strings"

	pr "github.com/benoitkugler/flexrender/css/properties"
)

// Kind distinguishes the nodes of the box tree.
type Kind uint8

const (
	// ElementBox is a box generated by an element, whose formatting is
	// given by its Style.Display.
	ElementBox Kind = iota
	// TextBox holds a run of text, and no children.
	TextBox
	// LineBreak is a forced line break (<br>).
	LineBreak
)

// Box is a node of the styled box tree.
type Box struct {
	Style    *pr.Style
	Tag      string // element name, empty for anonymous boxes
	ID       string
	Text     string // for TextBox
	Children []*Box
	Kind     Kind
}

// NewBlockBox returns an element box with the given style and children.
func NewBlockBox(tag string, style *pr.Style, children ...*Box) *Box {
	return &Box{Kind: ElementBox, Tag: tag, Style: style, Children: children}
}

// NewTextBox returns a text run, inheriting from parent.
func NewTextBox(parent *pr.Style, text string) *Box {
	return &Box{Kind: TextBox, Style: parent.InheritFrom(), Text: text}
}

// IsFlexContainer returns true for flex and inline-flex boxes.
func (b *Box) IsFlexContainer() bool {
	return b.Kind == ElementBox && b.Style.Display.IsFlex()
}

// IsInFlow returns false for boxes taken out of the normal flow,
// and for boxes not rendered at all.
func (b *Box) IsInFlow() bool {
	if b.Kind != ElementBox {
		return true
	}
	return !b.Style.Position.IsAbsolute() && b.Style.Display != pr.DisplayNone
}

// IsInlineLevel returns true for text runs, line breaks and
// inline elements, which are laid out in line boxes.
func (b *Box) IsInlineLevel() bool {
	return b.Kind != ElementBox || b.Style.Display == pr.DisplayInline
}

func (b *Box) String() string {
	switch b.Kind {
	case TextBox:
		return fmt.Sprintf("Text(%q)", b.Text)
	case LineBreak:
		return "Br"
	default:
		return fmt.Sprintf("<%s %s>", b.Tag, b.Style.Display)
	}
}

// Side is one of the four sides of a box.
type Side uint8

const (
	STop Side = iota
	SRight
	SBottom
	SLeft
)

// BoxFields stores the used values of the box model.
//
// PositionX and PositionY are the coordinates of the top left
// corner of the margin box; Width and Height are the content sizes.
type BoxFields struct {
	PositionX, PositionY pr.Float
	Width, Height        pr.Float

	MarginTop, MarginRight, MarginBottom, MarginLeft     pr.Float
	PaddingTop, PaddingRight, PaddingBottom, PaddingLeft pr.Float

	BorderTopWidth, BorderRightWidth, BorderBottomWidth, BorderLeftWidth pr.Float
}

func (box *BoxFields) PaddingWidth() pr.Float {
	return box.Width + box.PaddingLeft + box.PaddingRight
}

func (box *BoxFields) PaddingHeight() pr.Float {
	return box.Height + box.PaddingTop + box.PaddingBottom
}

func (box *BoxFields) BorderWidth() pr.Float {
	return box.PaddingWidth() + box.BorderLeftWidth + box.BorderRightWidth
}

func (box *BoxFields) BorderHeight() pr.Float {
	return box.PaddingHeight() + box.BorderTopWidth + box.BorderBottomWidth
}

func (box *BoxFields) MarginWidth() pr.Float {
	return box.BorderWidth() + box.MarginLeft + box.MarginRight
}

func (box *BoxFields) MarginHeight() pr.Float {
	return box.BorderHeight() + box.MarginTop + box.MarginBottom
}

// BorderBoxX returns the x coordinate of the left border edge.
func (box *BoxFields) BorderBoxX() pr.Float { return box.PositionX + box.MarginLeft }

// BorderBoxY returns the y coordinate of the top border edge.
func (box *BoxFields) BorderBoxY() pr.Float { return box.PositionY + box.MarginTop }

func (box *BoxFields) ContentBoxX() pr.Float {
	return box.PositionX + box.MarginLeft + box.PaddingLeft + box.BorderLeftWidth
}

func (box *BoxFields) ContentBoxY() pr.Float {
	return box.PositionY + box.MarginTop + box.PaddingTop + box.BorderTopWidth
}

// RemoveDecoration sets to zero the margin, border and padding of the top
// side (if start is true) and of the bottom side (if end is true), as
// required when a box is split across pages.
func (box *BoxFields) RemoveDecoration(start, end bool) {
	if start {
		box.MarginTop = 0
		box.PaddingTop = 0
		box.BorderTopWidth = 0
	}
	if end {
		box.MarginBottom = 0
		box.PaddingBottom = 0
		box.BorderBottomWidth = 0
	}
}

// Fragment is the laid out version of (a part of) a Box.
type Fragment struct {
	Box *Box

	// Baseline is the distance between the top of the margin box and
	// the first baseline, or nil if the fragment has none.
	Baseline pr.MaybeFloat

	// Text is set for line fragments.
	Text string

	Children []*Fragment

	BoxFields

	// Line is the index of the flex line containing a flex item,
	// or -1 if the fragment is not a flex item. Lines are numbered in
	// the order they are filled, also for wrap-reverse containers.
	Line int

	// IsLine is true for the line boxes generated by inline content.
	IsLine bool
}

// NewFragment returns a fragment for box, not part of a flex line.
func NewFragment(box *Box) *Fragment {
	return &Fragment{Box: box, Line: -1, Baseline: pr.AutoF}
}

// Translate moves the fragment and its descendants.
func (f *Fragment) Translate(dx, dy pr.Float) {
	if dx == 0 && dy == 0 {
		return
	}
	f.PositionX += dx
	f.PositionY += dy
	for _, child := range f.Children {
		child.Translate(dx, dy)
	}
}

// Lines returns the text of the line fragments found in f,
// in tree order.
func (f *Fragment) Lines() []string {
	var out []string
	var walk func(*Fragment)
	walk = func(f *Fragment) {
		if f.IsLine {
			out = append(out, f.Text)
			return
		}
		for _, c := range f.Children {
			walk(c)
		}
	}
	walk(f)
	return out
}

// InFlowChildren returns the children which are not line fragments.
func (f *Fragment) InFlowChildren() []*Fragment {
	var out []*Fragment
	for _, c := range f.Children {
		if !c.IsLine {
			out = append(out, c)
		}
	}
	return out
}

func (f *Fragment) String() string {
	var s strings.Builder
	if f.IsLine {
		fmt.Fprintf(&s, "Line(%q)", f.Text)
	} else {
		s.WriteString(f.Box.String())
	}
	fmt.Fprintf(&s, " %g %g %g %g", f.PositionX, f.PositionY, f.Width, f.Height)
	return s.String()
}
