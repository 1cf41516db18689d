package tree

import (
	"fmt"

	pr "github.com/benoitkugler/flexrender/css/properties"
	"github.com/tdewolff/parse/v2/css"
)

// Expanders for shorthand properties: each one calls the
// setters of the longhands it covers.

var shorthands map[string]setter

func init() {
	shorthands = map[string]setter{
		"margin":        expandFourSides("margin-%s"),
		"padding":       expandFourSides("padding-%s"),
		"border-width":  expandFourSides("border-%s-width"),
		"border":        expandBorder("top", "right", "bottom", "left"),
		"border-top":    expandBorder("top"),
		"border-right":  expandBorder("right"),
		"border-bottom": expandBorder("bottom"),
		"border-left":   expandBorder("left"),
		"flex":          expandFlex,
		"flex-flow":     expandFlexFlow,
		"gap":           expandGap,
		"font":          expandFont,
		"inset":         expandFourSides("%s"),
	}
}

func setLonghand(c *computer, name string, values ...css.Token) error {
	return longhands[name](c, values)
}

// expandFourSides expands properties with one to four values,
// in the top, right, bottom, left order.
func expandFourSides(pattern string) setter {
	return func(c *computer, values []css.Token) error {
		var sides [4]css.Token
		switch len(values) {
		case 1:
			sides = [4]css.Token{values[0], values[0], values[0], values[0]}
		case 2:
			sides = [4]css.Token{values[0], values[1], values[0], values[1]}
		case 3:
			sides = [4]css.Token{values[0], values[1], values[2], values[1]}
		case 4:
			sides = [4]css.Token{values[0], values[1], values[2], values[3]}
		default:
			return fmt.Errorf("expected 1 to 4 values, got %d", len(values))
		}
		for i, side := range [4]string{"top", "right", "bottom", "left"} {
			if err := setLonghand(c, fmt.Sprintf(pattern, side), sides[i]); err != nil {
				return err
			}
		}
		return nil
	}
}

var borderStyles = map[string]bool{
	"none": true, "hidden": true, "dotted": true, "dashed": true, "solid": true,
	"double": true, "groove": true, "ridge": true, "inset": true, "outset": true,
}

// expandBorder only retains the width: the style and the color are
// parsed but have no effect on the layout.
func expandBorder(sides ...string) setter {
	return func(c *computer, values []css.Token) error {
		width := css.Token{TokenType: css.IdentToken, Data: []byte("medium")}
		var hasWidth, hasStyle bool
		for _, v := range values {
			switch {
			case v.TokenType == css.DimensionToken || v.TokenType == css.NumberToken || borderWidthKeywords[ident(v)] != 0:
				if hasWidth {
					return fmt.Errorf("duplicated border width")
				}
				width, hasWidth = v, true
			case borderStyles[ident(v)]:
				if hasStyle {
					return fmt.Errorf("duplicated border style")
				}
				hasStyle = true
				if ident(v) == "none" || ident(v) == "hidden" {
					width = css.Token{TokenType: css.NumberToken, Data: []byte("0")}
					hasWidth = true
				}
			}
			// anything else is a color
		}
		for _, side := range sides {
			if err := setLonghand(c, "border-"+side+"-width", width); err != nil {
				return err
			}
		}
		return nil
	}
}

// expandFlex sets flex-grow, flex-shrink and flex-basis, where an
// omitted basis is 0.
func expandFlex(c *computer, values []css.Token) error {
	if len(values) == 1 {
		switch ident(values[0]) {
		case "none":
			c.style.FlexGrow, c.style.FlexShrink, c.style.FlexBasis = 0, 0, pr.SToV("auto")
			return nil
		case "auto":
			c.style.FlexGrow, c.style.FlexShrink, c.style.FlexBasis = 1, 1, pr.SToV("auto")
			return nil
		case "initial":
			c.style.FlexGrow, c.style.FlexShrink, c.style.FlexBasis = 0, 1, pr.SToV("auto")
			return nil
		}
	}

	var (
		factors []css.Token
		basis   []css.Token
	)
	for _, v := range values {
		// a unitless zero is a flex factor, unless both factors are given
		if v.TokenType == css.NumberToken && !(len(factors) == 2 && len(basis) == 0) {
			if len(factors) == 2 || (len(basis) != 0 && len(factors) != 0) {
				return fmt.Errorf("unexpected number %s", v.Data)
			}
			factors = append(factors, v)
			continue
		}
		if len(basis) != 0 {
			return fmt.Errorf("duplicated flex basis")
		}
		basis = append(basis, v)
	}
	if len(factors) == 0 && len(basis) == 0 {
		return fmt.Errorf("empty flex value")
	}

	grow, shrink := pr.Float(1), pr.Float(1)
	basisValue := pr.ZeroPixels.ToValue()
	if len(factors) >= 1 {
		v, err := nonNegative(factors[0])
		if err != nil {
			return err
		}
		grow = v
	}
	if len(factors) == 2 {
		v, err := nonNegative(factors[1])
		if err != nil {
			return err
		}
		shrink = v
	}
	if len(basis) == 1 {
		v, err := c.lengthOrPercentage(basis[0], "auto", "content")
		if err != nil {
			return err
		}
		basisValue = v
	}
	c.style.FlexGrow, c.style.FlexShrink, c.style.FlexBasis = grow, shrink, basisValue
	return nil
}

// expandFlexFlow accepts flex-direction and flex-wrap in any order.
func expandFlexFlow(c *computer, values []css.Token) error {
	if len(values) > 2 {
		return fmt.Errorf("expected 1 or 2 values, got %d", len(values))
	}
	var hasDirection, hasWrap bool
	for _, v := range values {
		if d, ok := pr.NewFlexDirection(ident(v)); ok && !hasDirection {
			c.style.FlexDirection, hasDirection = d, true
		} else if w, ok := pr.NewFlexWrap(ident(v)); ok && !hasWrap {
			c.style.FlexWrap, hasWrap = w, true
		} else {
			return fmt.Errorf("unexpected value %s", v.Data)
		}
	}
	return nil
}

// expandGap sets row-gap, then column-gap.
func expandGap(c *computer, values []css.Token) error {
	switch len(values) {
	case 1:
		values = []css.Token{values[0], values[0]}
	case 2:
	default:
		return fmt.Errorf("expected 1 or 2 values, got %d", len(values))
	}
	if err := setLonghand(c, "row-gap", values[0]); err != nil {
		return err
	}
	return setLonghand(c, "column-gap", values[1])
}

var fontPrefixKeywords = map[string]bool{
	"normal": true, "italic": true, "oblique": true, "small-caps": true,
	"bold": true, "bolder": true, "lighter": true,
	"condensed": true, "expanded": true,
}

// expandFont only retains the font size and the line height,
// which is reset to normal when omitted. The font size is only
// set during the font pass, and the line height after it.
func expandFont(c *computer, values []css.Token) error {
	i := 0
	for i < len(values) && (fontPrefixKeywords[ident(values[i])] || values[i].TokenType == css.NumberToken) {
		i++ // style, variant, weight and stretch
	}
	if i == len(values) {
		return fmt.Errorf("missing font size")
	}
	size, err := c.fontSize(values[i])
	if err != nil {
		return err
	}
	i++
	lineHeightValue := []css.Token{{TokenType: css.IdentToken, Data: []byte("normal")}}
	if i+1 < len(values) && values[i].TokenType == css.DelimToken && string(values[i].Data) == "/" {
		lineHeightValue = values[i+1 : i+2]
		i += 2
	}
	if i == len(values) {
		return fmt.Errorf("missing font family")
	}
	if c.fontPass {
		c.style.FontSize = size
		return nil
	}
	return lineHeight(c, lineHeightValue)
}
