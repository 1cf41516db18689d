package properties

// KnownProp efficiently encode a known CSS property
type KnownProp uint8

const (
	_ KnownProp = iota
	PWidth
	PHeight
)

func (p KnownProp) String() string {
	switch p {
	case PWidth:
		return "width"
	case PHeight:
		return "height"
	default:
		return "<unknown property>"
	}
}

// Display is the computed "display" value, limited to the
// formatting contexts known by the layout.
type Display uint8

const (
	DisplayBlock Display = iota
	DisplayInline
	DisplayInlineBlock
	DisplayFlex
	DisplayInlineFlex
	DisplayNone
)

var displayNames = [...]string{"block", "inline", "inline-block", "flex", "inline-flex", "none"}

func (d Display) String() string { return displayNames[d] }

// IsFlex returns true for "flex" and "inline-flex".
func (d Display) IsFlex() bool { return d == DisplayFlex || d == DisplayInlineFlex }

// Position is the computed "position" value.
type Position uint8

const (
	PositionStatic Position = iota
	PositionRelative
	PositionAbsolute
	PositionFixed
)

var positionNames = [...]string{"static", "relative", "absolute", "fixed"}

func (p Position) String() string { return positionNames[p] }

// IsAbsolute returns true for boxes taken out of flow.
func (p Position) IsAbsolute() bool { return p == PositionAbsolute || p == PositionFixed }

// FloatSide is the computed "float" value.
type FloatSide uint8

const (
	FloatNone FloatSide = iota
	FloatLeft
	FloatRight
)

var floatNames = [...]string{"none", "left", "right"}

func (f FloatSide) String() string { return floatNames[f] }

// Direction is the inline base direction.
type Direction uint8

const (
	LTR Direction = iota
	RTL
)

var directionNames = [...]string{"ltr", "rtl"}

func (d Direction) String() string { return directionNames[d] }

type FlexDirection uint8

const (
	Row FlexDirection = iota
	RowReverse
	Column
	ColumnReverse
)

var flexDirectionNames = [...]string{"row", "row-reverse", "column", "column-reverse"}

func (f FlexDirection) String() string { return flexDirectionNames[f] }

// IsRow returns true for "row" and "row-reverse".
func (f FlexDirection) IsRow() bool { return f == Row || f == RowReverse }

// IsReverse returns true for "row-reverse" and "column-reverse".
func (f FlexDirection) IsReverse() bool { return f == RowReverse || f == ColumnReverse }

type FlexWrap uint8

const (
	NoWrap FlexWrap = iota
	Wrap
	WrapReverse
)

var flexWrapNames = [...]string{"nowrap", "wrap", "wrap-reverse"}

func (f FlexWrap) String() string { return flexWrapNames[f] }

type BoxSizing uint8

const (
	ContentBox BoxSizing = iota
	PaddingBox
	BorderBox
)

var boxSizingNames = [...]string{"content-box", "padding-box", "border-box"}

func (b BoxSizing) String() string { return boxSizingNames[b] }

type Overflow uint8

const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowScroll
	OverflowAuto
)

var overflowNames = [...]string{"visible", "hidden", "scroll", "auto"}

func (o Overflow) String() string { return overflowNames[o] }

type BreakInside uint8

const (
	BreakInsideAuto BreakInside = iota
	BreakInsideAvoid
)

var breakInsideNames = [...]string{"auto", "avoid"}

func (b BreakInside) String() string { return breakInsideNames[b] }

func lookup(names []string, s string) (int, bool) {
	for i, name := range names {
		if name == s {
			return i, true
		}
	}
	return 0, false
}

func NewDisplay(s string) (Display, bool) {
	i, ok := lookup(displayNames[:], s)
	return Display(i), ok
}

func NewPosition(s string) (Position, bool) {
	i, ok := lookup(positionNames[:], s)
	return Position(i), ok
}

func NewFloatSide(s string) (FloatSide, bool) {
	i, ok := lookup(floatNames[:], s)
	return FloatSide(i), ok
}

func NewDirection(s string) (Direction, bool) {
	i, ok := lookup(directionNames[:], s)
	return Direction(i), ok
}

func NewFlexDirection(s string) (FlexDirection, bool) {
	i, ok := lookup(flexDirectionNames[:], s)
	return FlexDirection(i), ok
}

func NewFlexWrap(s string) (FlexWrap, bool) {
	i, ok := lookup(flexWrapNames[:], s)
	return FlexWrap(i), ok
}

func NewBoxSizing(s string) (BoxSizing, bool) {
	i, ok := lookup(boxSizingNames[:], s)
	return BoxSizing(i), ok
}

func NewOverflow(s string) (Overflow, bool) {
	i, ok := lookup(overflowNames[:], s)
	return Overflow(i), ok
}

func NewBreakInside(s string) (BreakInside, bool) {
	if s == "avoid-page" {
		return BreakInsideAvoid, true
	}
	i, ok := lookup(breakInsideNames[:], s)
	return BreakInside(i), ok
}
