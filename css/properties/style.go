package properties

import "github.com/benoitkugler/flexrender/css/properties/keywords"

// Style stores the computed values of the properties
// used by the layout. Lengths are in pixels.
type Style struct {
	Display  Display
	Position Position
	Float    FloatSide

	Direction Direction

	FlexDirection  FlexDirection
	FlexWrap       FlexWrap
	JustifyContent keywords.Keyword
	AlignItems     keywords.Keyword
	AlignContent   keywords.Keyword
	AlignSelf      keywords.Keyword
	Order          int
	FlexGrow       Float
	FlexShrink     Float
	FlexBasis      Value // "auto", "content" or a dimension

	// "normal" is stored as 0px
	RowGap, ColumnGap Value

	Width, Height       Value // "auto" or dimension
	MinWidth, MinHeight Value // "auto" or dimension
	MaxWidth, MaxHeight Value // "none" is stored as Inf px

	MarginTop, MarginRight, MarginBottom, MarginLeft     Value
	PaddingTop, PaddingRight, PaddingBottom, PaddingLeft Value

	BorderTopWidth, BorderRightWidth, BorderBottomWidth, BorderLeftWidth Float

	Top, Right, Bottom, Left Value

	BoxSizing   BoxSizing
	Overflow    Overflow
	BreakInside BreakInside

	FontSize   Float
	LineHeight Value // "normal", a Scalar factor or a length
}

// InitialStyle returns the initial values of every property.
func InitialStyle() *Style {
	return &Style{
		JustifyContent: keywords.Normal,
		AlignItems:     keywords.Normal,
		AlignContent:   keywords.Normal,
		AlignSelf:      keywords.Auto,
		FlexShrink:     1,
		FlexBasis:      SToV("auto"),
		RowGap:         ZeroPixels.ToValue(),
		ColumnGap:      ZeroPixels.ToValue(),
		Width:          SToV("auto"),
		Height:         SToV("auto"),
		MinWidth:       SToV("auto"),
		MinHeight:      SToV("auto"),
		MaxWidth:       FToPx(Inf),
		MaxHeight:      FToPx(Inf),
		MarginTop:      ZeroPixels.ToValue(),
		MarginRight:    ZeroPixels.ToValue(),
		MarginBottom:   ZeroPixels.ToValue(),
		MarginLeft:     ZeroPixels.ToValue(),
		PaddingTop:     ZeroPixels.ToValue(),
		PaddingRight:   ZeroPixels.ToValue(),
		PaddingBottom:  ZeroPixels.ToValue(),
		PaddingLeft:    ZeroPixels.ToValue(),
		Top:            SToV("auto"),
		Right:          SToV("auto"),
		Bottom:         SToV("auto"),
		Left:           SToV("auto"),
		FontSize:       16,
		LineHeight:     SToV("normal"),
	}
}

// Copy returns a shallow copy.
func (s *Style) Copy() *Style {
	out := *s
	return &out
}

// InheritFrom returns a new style with the initial values,
// except for the inherited properties, copied from parent.
func (s *Style) InheritFrom() *Style {
	out := InitialStyle()
	out.Direction = s.Direction
	out.FontSize = s.FontSize
	out.LineHeight = s.LineHeight
	return out
}

// UsedLineHeight returns the height of one line of text.
// "normal" is one em, which is the metric of the square glyphs
// used by the text package.
func (s *Style) UsedLineHeight() Float {
	lh := s.LineHeight
	switch {
	case lh.S == "normal":
		return s.FontSize
	case lh.Unit == Scalar:
		return lh.Value * s.FontSize
	case lh.Unit == Perc:
		return lh.Value * s.FontSize / 100
	default:
		return lh.Value
	}
}

// UsedAlignSelf resolves "auto" and "normal" against the
// container align-items value.
func (s *Style) UsedAlignSelf(alignItems keywords.Keyword) keywords.Keyword {
	out := s.AlignSelf
	if out == keywords.Auto || out == 0 {
		out = alignItems
	}
	if out == keywords.Normal || out == 0 {
		out = keywords.Stretch
	}
	return out
}
