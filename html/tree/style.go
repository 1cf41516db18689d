package tree

import (
	"fmt"
	"strconv"
	"strings"

	pr "github.com/benoitkugler/flexrender/css/properties"
	"github.com/benoitkugler/flexrender/css/properties/keywords"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/multierr"
)

// ignoredProperties are accepted, but have no effect on the layout.
var ignoredProperties = map[string]bool{
	"font-family":      true,
	"font-weight":      true,
	"font-style":       true,
	"color":            true,
	"background":       true,
	"background-color": true,
	"border-style":     true,
	"border-color":     true,
	"text-align":       true,
	"text-decoration":  true,
	"outline":          true,
}

// computer stores the style being computed.
type computer struct {
	style  *pr.Style
	parent *pr.Style // nil for the root element

	// fontPass is true while the font size is resolved: only the
	// font properties are applied.
	fontPass bool
}

// computeStyle applies the declarations, in order, to the style inherited
// from parent. Invalid declarations are ignored and reported.
func computeStyle(parent *pr.Style, declarations []declaration) (*pr.Style, error) {
	c := computer{parent: parent}
	if parent == nil {
		c.style = pr.InitialStyle()
	} else {
		c.style = parent.InheritFrom()
	}

	var errs error
	// lengths in em depend on the font size, which is resolved first
	c.fontPass = true
	invalidFonts := map[int]bool{}
	for i, d := range declarations {
		if d.name == "font-size" || d.name == "font" {
			if err := c.apply(d); err != nil {
				errs = multierr.Append(errs, err)
				invalidFonts[i] = true
			}
		}
	}
	c.fontPass = false
	for i, d := range declarations {
		if d.name == "font-size" || invalidFonts[i] {
			continue
		}
		errs = multierr.Append(errs, c.apply(d))
	}

	c.blockify()
	return c.style, errs
}

// blockify implements the interactions between display, position and float,
// see http://www.w3.org/TR/CSS21/visuren.html#dis-pos-flo
func (c *computer) blockify() {
	s := c.style
	if s.Position.IsAbsolute() {
		s.Float = pr.FloatNone
	}
	if s.Position.IsAbsolute() || s.Float != pr.FloatNone || c.parent == nil {
		switch s.Display {
		case pr.DisplayInline, pr.DisplayInlineBlock:
			s.Display = pr.DisplayBlock
		case pr.DisplayInlineFlex:
			s.Display = pr.DisplayFlex
		}
	}
}

func (c *computer) apply(d declaration) error {
	if ignoredProperties[d.name] {
		return nil
	}
	if len(d.values) == 0 {
		return fmt.Errorf("empty value for %s", d.name)
	}
	if setter, ok := shorthands[d.name]; ok {
		if err := setter(c, d.values); err != nil {
			return fmt.Errorf("invalid declaration %s: %s", d, err)
		}
		return nil
	}
	setter, ok := longhands[d.name]
	if !ok {
		return fmt.Errorf("unsupported property %s", d.name)
	}
	if len(d.values) != 1 && !multiTokens[d.name] {
		return fmt.Errorf("invalid declaration %s: expected one value", d)
	}
	if err := setter(c, d.values); err != nil {
		return fmt.Errorf("invalid declaration %s: %s", d, err)
	}
	return nil
}

type setter = func(c *computer, values []css.Token) error

// multiTokens are the longhands accepting more than one token
var multiTokens = map[string]bool{
	"justify-content": true,
	"align-items":     true,
	"align-content":   true,
	"align-self":      true,
}

var longhands map[string]setter

func init() {
	longhands = map[string]setter{
		"display": enum(pr.NewDisplay, func(s *pr.Style, v pr.Display) { s.Display = v }),
		"position": enum(pr.NewPosition, func(s *pr.Style, v pr.Position) {
			s.Position = v
		}),
		"float":          enum(pr.NewFloatSide, func(s *pr.Style, v pr.FloatSide) { s.Float = v }),
		"direction":      enum(pr.NewDirection, func(s *pr.Style, v pr.Direction) { s.Direction = v }),
		"flex-direction": enum(pr.NewFlexDirection, func(s *pr.Style, v pr.FlexDirection) { s.FlexDirection = v }),
		"flex-wrap":      enum(pr.NewFlexWrap, func(s *pr.Style, v pr.FlexWrap) { s.FlexWrap = v }),
		"box-sizing":     enum(pr.NewBoxSizing, func(s *pr.Style, v pr.BoxSizing) { s.BoxSizing = v }),
		"overflow":       enum(pr.NewOverflow, func(s *pr.Style, v pr.Overflow) { s.Overflow = v }),
		"break-inside":   enum(pr.NewBreakInside, func(s *pr.Style, v pr.BreakInside) { s.BreakInside = v }),

		"justify-content": alignment(func(s *pr.Style, k keywords.Keyword) { s.JustifyContent = k }, "normal", "flex-start", "flex-end", "center", "space-between", "space-around", "space-evenly", "stretch", "start", "end", "left", "right"),
		"align-content":   alignment(func(s *pr.Style, k keywords.Keyword) { s.AlignContent = k }, "normal", "flex-start", "flex-end", "center", "space-between", "space-around", "space-evenly", "stretch", "start", "end", "baseline"),
		"align-items":     alignment(func(s *pr.Style, k keywords.Keyword) { s.AlignItems = k }, "normal", "flex-start", "flex-end", "center", "stretch", "start", "end", "self-start", "self-end", "baseline"),
		"align-self":      alignment(func(s *pr.Style, k keywords.Keyword) { s.AlignSelf = k }, "auto", "normal", "flex-start", "flex-end", "center", "stretch", "start", "end", "self-start", "self-end", "baseline"),

		"order": func(c *computer, values []css.Token) error {
			v, err := integer(values[0])
			c.style.Order = v
			return err
		},
		"flex-grow": func(c *computer, values []css.Token) error {
			v, err := nonNegative(values[0])
			c.style.FlexGrow = v
			return err
		},
		"flex-shrink": func(c *computer, values []css.Token) error {
			v, err := nonNegative(values[0])
			c.style.FlexShrink = v
			return err
		},
		"flex-basis": length(func(s *pr.Style) *pr.Value { return &s.FlexBasis }, "auto", "content"),

		"row-gap":    gap(func(s *pr.Style) *pr.Value { return &s.RowGap }),
		"column-gap": gap(func(s *pr.Style) *pr.Value { return &s.ColumnGap }),

		"width":      length(func(s *pr.Style) *pr.Value { return &s.Width }, "auto"),
		"height":     length(func(s *pr.Style) *pr.Value { return &s.Height }, "auto"),
		"min-width":  length(func(s *pr.Style) *pr.Value { return &s.MinWidth }, "auto"),
		"min-height": length(func(s *pr.Style) *pr.Value { return &s.MinHeight }, "auto"),
		"max-width":  maxLength(func(s *pr.Style) *pr.Value { return &s.MaxWidth }),
		"max-height": maxLength(func(s *pr.Style) *pr.Value { return &s.MaxHeight }),

		"margin-top":     length(func(s *pr.Style) *pr.Value { return &s.MarginTop }, "auto"),
		"margin-right":   length(func(s *pr.Style) *pr.Value { return &s.MarginRight }, "auto"),
		"margin-bottom":  length(func(s *pr.Style) *pr.Value { return &s.MarginBottom }, "auto"),
		"margin-left":    length(func(s *pr.Style) *pr.Value { return &s.MarginLeft }, "auto"),
		"padding-top":    length(func(s *pr.Style) *pr.Value { return &s.PaddingTop }),
		"padding-right":  length(func(s *pr.Style) *pr.Value { return &s.PaddingRight }),
		"padding-bottom": length(func(s *pr.Style) *pr.Value { return &s.PaddingBottom }),
		"padding-left":   length(func(s *pr.Style) *pr.Value { return &s.PaddingLeft }),

		"border-top-width":    borderWidth(func(s *pr.Style) *pr.Float { return &s.BorderTopWidth }),
		"border-right-width":  borderWidth(func(s *pr.Style) *pr.Float { return &s.BorderRightWidth }),
		"border-bottom-width": borderWidth(func(s *pr.Style) *pr.Float { return &s.BorderBottomWidth }),
		"border-left-width":   borderWidth(func(s *pr.Style) *pr.Float { return &s.BorderLeftWidth }),

		"top":    length(func(s *pr.Style) *pr.Value { return &s.Top }, "auto"),
		"right":  length(func(s *pr.Style) *pr.Value { return &s.Right }, "auto"),
		"bottom": length(func(s *pr.Style) *pr.Value { return &s.Bottom }, "auto"),
		"left":   length(func(s *pr.Style) *pr.Value { return &s.Left }, "auto"),

		"font-size":   fontSize,
		"line-height": lineHeight,
	}
}

func enum[T any](parse func(string) (T, bool), set func(*pr.Style, T)) setter {
	return func(c *computer, values []css.Token) error {
		v, ok := parse(ident(values[0]))
		if !ok {
			return fmt.Errorf("unknown keyword %s", values[0].Data)
		}
		set(c.style, v)
		return nil
	}
}

// alignment accepts one of the allowed keywords, possibly
// prefixed by "safe" or "unsafe" (which have no effect), and
// "first baseline".
func alignment(set func(*pr.Style, keywords.Keyword), allowed ...string) setter {
	return func(c *computer, values []css.Token) error {
		var words []string
		for _, v := range values {
			if v.TokenType != css.IdentToken {
				return fmt.Errorf("unexpected token %s", v.Data)
			}
			words = append(words, ident(v))
		}
		if len(words) == 2 && (words[0] == "safe" || words[0] == "unsafe") {
			words = words[1:]
		}
		if len(words) == 2 && words[0] == "first" && words[1] == "baseline" {
			words = words[1:]
		}
		if len(words) != 1 || !contains(allowed, words[0]) {
			return fmt.Errorf("unsupported alignment %s", strings.Join(words, " "))
		}
		set(c.style, keywords.NewKeyword(words[0]))
		return nil
	}
}

// length accepts a length, a percentage, or one of the given keywords.
func length(field func(*pr.Style) *pr.Value, allowed ...string) setter {
	return func(c *computer, values []css.Token) error {
		v, err := c.lengthOrPercentage(values[0], allowed...)
		if err != nil {
			return err
		}
		*field(c.style) = v
		return nil
	}
}

// maxLength stores "none" as an infinite length.
func maxLength(field func(*pr.Style) *pr.Value) setter {
	return func(c *computer, values []css.Token) error {
		v, err := c.lengthOrPercentage(values[0], "none")
		if err != nil {
			return err
		}
		if v.S == "none" {
			v = pr.FToPx(pr.Inf)
		}
		*field(c.style) = v
		return nil
	}
}

// gap stores "normal" as 0px.
func gap(field func(*pr.Style) *pr.Value) setter {
	return func(c *computer, values []css.Token) error {
		v, err := c.lengthOrPercentage(values[0], "normal")
		if err != nil {
			return err
		}
		if v.S == "normal" {
			v = pr.ZeroPixels.ToValue()
		}
		*field(c.style) = v
		return nil
	}
}

var borderWidthKeywords = map[string]pr.Float{"thin": 1, "medium": 3, "thick": 5}

func borderWidth(field func(*pr.Style) *pr.Float) setter {
	return func(c *computer, values []css.Token) error {
		if w, ok := borderWidthKeywords[ident(values[0])]; ok {
			*field(c.style) = w
			return nil
		}
		v, err := c.lengthOrPercentage(values[0])
		if err != nil {
			return err
		}
		if v.Unit == pr.Perc {
			return fmt.Errorf("percentages are not allowed")
		}
		*field(c.style) = v.Value
		return nil
	}
}

func fontSize(c *computer, values []css.Token) error {
	v, err := c.fontSize(values[0])
	if err != nil {
		return err
	}
	c.style.FontSize = v
	return nil
}

func (c *computer) parentFontSize() pr.Float {
	if c.parent == nil {
		return pr.InitialStyle().FontSize
	}
	return c.parent.FontSize
}

func (c *computer) fontSize(token css.Token) (pr.Float, error) {
	if fs, ok := pr.FontSizeKeywords[ident(token)]; ok {
		return fs, nil
	}
	parentFontSize := c.parentFontSize()
	switch ident(token) {
	case "larger":
		return parentFontSize * 1.2, nil
	case "smaller":
		return parentFontSize * 0.8, nil
	}
	v, err := c.dimension(token, parentFontSize)
	if err != nil {
		return 0, err
	}
	if v.Unit == pr.Perc {
		return v.Value * parentFontSize / 100, nil
	}
	if v.Value < 0 {
		return 0, fmt.Errorf("negative font size")
	}
	return v.Value, nil
}

func lineHeight(c *computer, values []css.Token) error {
	token := values[0]
	switch {
	case ident(token) == "normal":
		c.style.LineHeight = pr.SToV("normal")
	case token.TokenType == css.NumberToken:
		v, err := number(token)
		if err != nil {
			return err
		}
		c.style.LineHeight = pr.Dimension{Value: v, Unit: pr.Scalar}.ToValue()
	default:
		v, err := c.lengthOrPercentage(token)
		if err != nil {
			return err
		}
		if v.Unit == pr.Perc {
			v = pr.FToPx(v.Value * c.style.FontSize / 100)
		}
		c.style.LineHeight = v
	}
	return nil
}

// lengthOrPercentage parses a token into a keyword (among the given ones),
// a percentage, or a length converted to pixels.
func (c *computer) lengthOrPercentage(token css.Token, allowed ...string) (pr.Value, error) {
	if token.TokenType == css.IdentToken {
		if kw := ident(token); contains(allowed, kw) {
			return pr.SToV(kw), nil
		}
		return pr.Value{}, fmt.Errorf("unknown keyword %s", token.Data)
	}
	d, err := c.dimension(token, c.style.FontSize)
	if err != nil {
		return pr.Value{}, err
	}
	return d.ToValue(), nil
}

// dimension converts a length to pixels, using fontSize for em units.
// Unitless numbers are only accepted for 0.
func (c *computer) dimension(token css.Token, fontSize pr.Float) (pr.Dimension, error) {
	switch token.TokenType {
	case css.PercentageToken:
		v, err := strconv.ParseFloat(strings.TrimSuffix(string(token.Data), "%"), 64)
		if err != nil {
			return pr.Dimension{}, err
		}
		return pr.Dimension{Value: pr.Float(v), Unit: pr.Perc}, nil
	case css.NumberToken:
		v, err := number(token)
		if err != nil {
			return pr.Dimension{}, err
		}
		if v != 0 {
			return pr.Dimension{}, fmt.Errorf("missing unit for %s", token.Data)
		}
		return pr.ZeroPixels, nil
	case css.DimensionToken:
		v, unit := splitDimension(string(token.Data))
		switch unit {
		case "em":
			return pr.Dimension{Value: v * fontSize, Unit: pr.Px}, nil
		case "rem":
			return pr.Dimension{Value: v * pr.InitialStyle().FontSize, Unit: pr.Px}, nil
		}
		factor, ok := pr.LengthsToPixels[unit]
		if !ok {
			return pr.Dimension{}, fmt.Errorf("unsupported unit %s", unit)
		}
		return pr.Dimension{Value: v * factor, Unit: pr.Px}, nil
	default:
		return pr.Dimension{}, fmt.Errorf("expected a length, got %s", token.Data)
	}
}

// splitDimension returns the number and the (lower case) unit of a dimension token.
func splitDimension(s string) (pr.Float, string) {
	end := 0
	for i, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '+' {
			end = i + 1
		} else if (r == 'e' || r == 'E') && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '9' {
			end = i + 1
		} else {
			break
		}
	}
	v, _ := strconv.ParseFloat(s[:end], 64)
	return pr.Float(v), strings.ToLower(s[end:])
}

func number(token css.Token) (pr.Float, error) {
	if token.TokenType != css.NumberToken {
		return 0, fmt.Errorf("expected a number, got %s", token.Data)
	}
	v, err := strconv.ParseFloat(string(token.Data), 64)
	return pr.Float(v), err
}

func nonNegative(token css.Token) (pr.Float, error) {
	v, err := number(token)
	if err == nil && v < 0 {
		err = fmt.Errorf("negative value %s", token.Data)
	}
	return v, err
}

func integer(token css.Token) (int, error) {
	if token.TokenType != css.NumberToken {
		return 0, fmt.Errorf("expected an integer, got %s", token.Data)
	}
	return strconv.Atoi(string(token.Data))
}

func ident(token css.Token) string {
	if token.TokenType != css.IdentToken {
		return ""
	}
	return strings.ToLower(string(token.Data))
}
