// Package tree builds the styled box tree of an HTML document.
//
// Only the subset of HTML and CSS needed to describe layout fixtures is
// supported: <style> elements and style attributes, type, class and id
// selectors, and the properties consumed by the layout.
// Unsupported input is ignored, with a warning.
package tree

import (
	_ "embed"
	"fmt"
	"strings"

	pr "github.com/benoitkugler/flexrender/css/properties"
	bo "github.com/benoitkugler/flexrender/html/boxes"
	"github.com/benoitkugler/flexrender/logger"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/multierr"
	"golang.org/x/net/html"
)

var (
	//go:embed tests_ua.css
	testsUAContent []byte

	// testUAStylesheet is the user agent stylesheet: it has no
	// default margins.
	testUAStylesheet stylesheet
)

func init() {
	var err error
	testUAStylesheet, err = parseStylesheet(testsUAContent)
	if err != nil {
		panic(fmt.Sprintf("invalid embedded stylesheet: %s", err))
	}
}

// Document is a styled box tree, with its page setup.
type Document struct {
	// Root is the box generated by the <html> element.
	Root *bo.Box

	// PageWidth and PageHeight are the page size, in pixels.
	PageWidth, PageHeight pr.Float
	// PageMargins are indexed by [bo.Side].
	PageMargins [4]pr.Float

	// Warnings lists the ignored input, combined with multierr.
	// Each warning is also logged.
	Warnings error
}

// PageContentSize returns the size of the page area.
func (doc *Document) PageContentSize() (width, height pr.Float) {
	m := doc.PageMargins
	return pr.Max(0, doc.PageWidth-m[bo.SLeft]-m[bo.SRight]),
		pr.Max(0, doc.PageHeight-m[bo.STop]-m[bo.SBottom])
}

// Parse builds the styled box tree of the given HTML document.
// An error is only returned when the document has no root element.
func Parse(content string) (*Document, error) {
	logger.ProgressLogger.Debug("Step 1 - Parsing HTML and stylesheets")

	root, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("invalid html input: %s", err)
	}
	htmlNode := findElement(root, "html")
	if htmlNode == nil {
		return nil, fmt.Errorf("invalid html input: missing root element")
	}

	var b builder
	b.ua = testUAStylesheet
	b.author = b.authorStylesheet(htmlNode)

	out := &Document{PageWidth: pr.A4[0], PageHeight: pr.A4[1]}
	b.pageSetup(out)

	logger.ProgressLogger.Debug("Step 2 - Building the box tree")
	out.Root = b.element(htmlNode, nil)
	if out.Root == nil {
		// "display: none" on the root element
		out.Root = bo.NewBlockBox("html", pr.InitialStyle())
	}
	out.Warnings = b.warnings
	return out, nil
}

func findElement(node *html.Node, tag string) *html.Node {
	if node.Type == html.ElementNode && node.Data == tag {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := findElement(child, tag); found != nil {
			return found
		}
	}
	return nil
}

type builder struct {
	ua, author stylesheet
	warnings   error
}

// warn logs and stores each error combined in err, with the given prefix.
func (b *builder) warn(prefix string, err error) {
	for _, e := range multierr.Errors(err) {
		if prefix != "" {
			e = fmt.Errorf("%s: %w", prefix, e)
		}
		logger.WarningLogger.Warn(e.Error())
		b.warnings = multierr.Append(b.warnings, e)
	}
}

// authorStylesheet collects the <style> elements, in document order.
func (b *builder) authorStylesheet(root *html.Node) stylesheet {
	var out stylesheet
	var walk func(node *html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == "style" {
			var content strings.Builder
			for child := node.FirstChild; child != nil; child = child.NextSibling {
				if child.Type == html.TextNode {
					content.WriteString(child.Data)
				}
			}
			sheet, err := parseStylesheet([]byte(content.String()))
			b.warn("", err)
			for _, r := range sheet.rules {
				r.order = len(out.rules)
				out.rules = append(out.rules, r)
			}
			out.page = append(out.page, sheet.page...)
			return
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return out
}

// pageSetup applies the @page declarations, the author ones last.
func (b *builder) pageSetup(doc *Document) {
	// page margins are resolved with the initial font size
	c := computer{style: pr.InitialStyle()}
	for _, d := range append(append([]declaration(nil), b.ua.page...), b.author.page...) {
		var err error
		switch d.name {
		case "size":
			err = c.pageSize(doc, d.values)
		case "margin", "margin-top", "margin-right", "margin-bottom", "margin-left":
			err = c.apply(d)
		default:
			err = fmt.Errorf("unsupported page property %s", d.name)
		}
		if err != nil {
			b.warn("@page", err)
		}
	}
	s := c.style
	for side, v := range [4]pr.Value{bo.STop: s.MarginTop, bo.SRight: s.MarginRight, bo.SBottom: s.MarginBottom, bo.SLeft: s.MarginLeft} {
		ref := doc.PageHeight
		if bo.Side(side) == bo.SLeft || bo.Side(side) == bo.SRight {
			ref = doc.PageWidth
		}
		doc.PageMargins[side] = pr.ResolvePercentage(v, ref).V()
	}
}

// pageSize accepts one or two lengths, or a page name, optionally
// followed by an orientation.
func (c *computer) pageSize(doc *Document, values []css.Token) error {
	if len(values) == 0 || len(values) > 2 {
		return fmt.Errorf("invalid size")
	}
	if values[0].TokenType != css.IdentToken {
		width, err := c.lengthOrPercentage(values[0])
		if err != nil {
			return err
		}
		height := width
		if len(values) == 2 {
			if height, err = c.lengthOrPercentage(values[1]); err != nil {
				return err
			}
		}
		if width.Unit == pr.Perc || height.Unit == pr.Perc {
			return fmt.Errorf("percentages are not allowed for page size")
		}
		doc.PageWidth, doc.PageHeight = width.Value, height.Value
		return nil
	}

	size, orientation := pr.A4, ""
	for _, v := range values {
		name := ident(v)
		if s, ok := pr.PageSizes[name]; ok {
			size = s
		} else if name == "portrait" || name == "landscape" || name == "auto" {
			orientation = name
		} else {
			return fmt.Errorf("unknown page size %s", v.Data)
		}
	}
	if orientation == "landscape" {
		size[0], size[1] = size[1], size[0]
	}
	doc.PageWidth, doc.PageHeight = size[0], size[1]
	return nil
}

// element returns the box generated by node, or nil if it
// generates none.
func (b *builder) element(node *html.Node, parent *pr.Style) *bo.Box {
	style, err := computeStyle(parent, matchingDeclarations(b.ua, b.author, node))
	if err != nil {
		b.warn("<"+node.Data+">", err)
	}
	if style.Display == pr.DisplayNone {
		return nil
	}
	if node.Data == "br" {
		return &bo.Box{Kind: bo.LineBreak, Tag: node.Data, Style: style}
	}

	box := bo.NewBlockBox(node.Data, style)
	box.ID = attribute(node, "id")
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.TextNode:
			box.Children = append(box.Children, bo.NewTextBox(style, child.Data))
		case html.ElementNode:
			if childBox := b.element(child, style); childBox != nil {
				box.Children = append(box.Children, childBox)
			}
		}
	}

	if box.IsFlexContainer() {
		box.Children = flexItems(box)
	}
	return box
}

// flexItems wraps the text runs in anonymous block boxes (dropping the
// white space only ones) and blockifies the element children.
func flexItems(container *bo.Box) []*bo.Box {
	var out []*bo.Box
	for _, child := range container.Children {
		switch child.Kind {
		case bo.TextBox:
			if strings.TrimSpace(child.Text) == "" {
				continue
			}
			style := container.Style.InheritFrom()
			out = append(out, bo.NewBlockBox("", style, child))
		case bo.LineBreak:
			// a forced break alone generates no flex item
		default:
			if child.IsInFlow() {
				blockifyItem(child.Style)
			}
			out = append(out, child)
		}
	}
	return out
}

func blockifyItem(style *pr.Style) {
	switch style.Display {
	case pr.DisplayInline, pr.DisplayInlineBlock:
		style.Display = pr.DisplayBlock
	case pr.DisplayInlineFlex:
		style.Display = pr.DisplayFlex
	}
	// floats do not apply to flex items
	style.Float = pr.FloatNone
}
