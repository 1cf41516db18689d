package tree

import (
	"strings"
	"testing"

	pr "github.com/benoitkugler/flexrender/css/properties"
	"github.com/benoitkugler/flexrender/css/properties/keywords"
	bo "github.com/benoitkugler/flexrender/html/boxes"
	tu "github.com/benoitkugler/flexrender/utils/testutils"
	"go.uber.org/multierr"
)

func parseNoWarnings(t *testing.T, content string) *Document {
	t.Helper()
	doc, err := Parse(content)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Warnings != nil {
		t.Fatalf("unexpected warnings: %s", doc.Warnings)
	}
	return doc
}

func findByID(box *bo.Box, id string) *bo.Box {
	if box.ID == id {
		return box
	}
	for _, child := range box.Children {
		if found := findByID(child, id); found != nil {
			return found
		}
	}
	return nil
}

func styleOf(t *testing.T, content string) *pr.Style {
	t.Helper()
	doc := parseNoWarnings(t, content)
	box := findByID(doc.Root, "t")
	if box == nil {
		t.Fatal("missing #t element")
	}
	return box.Style
}

func TestRootStructure(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	doc := parseNoWarnings(t, `<p>text</p>`)
	tu.AssertEqual(t, doc.Root.Tag, "html")
	var tags []string
	for _, child := range doc.Root.Children {
		if child.Kind == bo.ElementBox {
			tags = append(tags, child.Tag)
		}
	}
	// <head> is not rendered
	tu.AssertEqual(t, tags, []string{"body"})
	body := doc.Root.Children[len(doc.Root.Children)-1]
	tu.AssertEqual(t, body.Children[0].Tag, "p")
	tu.AssertEqual(t, body.Children[0].Children[0].Text, "text")
}

func TestCascade(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	for _, test := range []struct {
		html  string
		width pr.Value
	}{
		{`<style>#t { width: 3px } div { width: 1px } .b { width: 2px }</style><div id="t" class="b"></div>`, pr.FToPx(3)},
		{`<style>div { width: 1px } .b { width: 2px }</style><div id="t" class="b"></div>`, pr.FToPx(2)},
		{`<style>div { width: 1px } div { width: 2px }</style><div id="t"></div>`, pr.FToPx(2)},
		{`<style>.b { width: 2px }</style><div id="t" class="b" style="width: 4px"></div>`, pr.FToPx(4)},
		{`<style>article div { width: 5px }</style><article><section><div id="t"></div></section></article>`, pr.FToPx(5)},
		{`<style>article > div { width: 5px }</style><article><section><div id="t"></div></section></article>`, pr.SToV("auto")},
		{`<style>article, div { width: 10% }</style><div id="t"></div>`, pr.Dimension{Value: 10, Unit: pr.Perc}.ToValue()},
		{`<style>div.a.b { width: 6px }</style><div id="t" class="b a"></div>`, pr.FToPx(6)},
	} {
		tu.AssertEqual(t, styleOf(t, test.html).Width, test.width)
	}
}

func TestLengths(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	style := styleOf(t, `<article style="font-size: 2px"><div id="t" style="width: 3em; height: 1in; margin-left: -1px; font-size: 200%; line-height: 50%"></div></article>`)
	tu.AssertEqual(t, style.FontSize, pr.Float(4))
	tu.AssertEqual(t, style.Width, pr.FToPx(12))
	tu.AssertEqual(t, style.Height, pr.FToPx(96))
	tu.AssertEqual(t, style.MarginLeft, pr.FToPx(-1))
	tu.AssertEqual(t, style.LineHeight, pr.FToPx(2))
	tu.AssertEqual(t, style.UsedLineHeight(), pr.Float(2))

	style = styleOf(t, `<div id="t" style="max-width: none; min-height: auto; line-height: 1.5; row-gap: normal"></div>`)
	tu.AssertEqual(t, style.MaxWidth, pr.FToPx(pr.Inf))
	tu.AssertEqual(t, style.MinHeight, pr.SToV("auto"))
	tu.AssertEqual(t, style.LineHeight, pr.Dimension{Value: 1.5, Unit: pr.Scalar}.ToValue())
	tu.AssertEqual(t, style.RowGap, pr.ZeroPixels.ToValue())
}

func TestInheritance(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	doc := parseNoWarnings(t, `<article style="direction: rtl; font-size: 3px; width: 10px"><div id="t">a</div></article>`)
	div := findByID(doc.Root, "t")
	tu.AssertEqual(t, div.Style.Direction, pr.RTL)
	tu.AssertEqual(t, div.Style.FontSize, pr.Float(3))
	tu.AssertEqual(t, div.Style.Width, pr.SToV("auto"))
	tu.AssertEqual(t, div.Children[0].Style.FontSize, pr.Float(3))
}

func TestFlexShorthand(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	for _, test := range []struct {
		value        string
		grow, shrink pr.Float
		basis        pr.Value
	}{
		{"none", 0, 0, pr.SToV("auto")},
		{"auto", 1, 1, pr.SToV("auto")},
		{"initial", 0, 1, pr.SToV("auto")},
		{"1", 1, 1, pr.ZeroPixels.ToValue()},
		{"2 3", 2, 3, pr.ZeroPixels.ToValue()},
		{"1 1 0", 1, 1, pr.ZeroPixels.ToValue()},
		{"2 3 10px", 2, 3, pr.FToPx(10)},
		{"10px", 1, 1, pr.FToPx(10)},
		{"2 content", 2, 1, pr.SToV("content")},
		{"0 0 50%", 0, 0, pr.Dimension{Value: 50, Unit: pr.Perc}.ToValue()},
	} {
		style := styleOf(t, `<div id="t" style="flex: `+test.value+`"></div>`)
		tu.AssertEqual(t, [3]interface{}{style.FlexGrow, style.FlexShrink, style.FlexBasis},
			[3]interface{}{test.grow, test.shrink, test.basis})
	}
}

func TestShorthands(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	style := styleOf(t, `<div id="t" style="flex-flow: wrap column-reverse; gap: 1px 2px;
		margin: 1px 2px 3px; padding: 4px; border: 1px solid black; border-left: none"></div>`)
	tu.AssertEqual(t, style.FlexDirection, pr.ColumnReverse)
	tu.AssertEqual(t, style.FlexWrap, pr.Wrap)
	tu.AssertEqual(t, [2]pr.Value{style.RowGap, style.ColumnGap}, [2]pr.Value{pr.FToPx(1), pr.FToPx(2)})
	tu.AssertEqual(t, [4]pr.Value{style.MarginTop, style.MarginRight, style.MarginBottom, style.MarginLeft},
		[4]pr.Value{pr.FToPx(1), pr.FToPx(2), pr.FToPx(3), pr.FToPx(2)})
	tu.AssertEqual(t, style.PaddingBottom, pr.FToPx(4))
	tu.AssertEqual(t, [4]pr.Float{style.BorderTopWidth, style.BorderRightWidth, style.BorderBottomWidth, style.BorderLeftWidth},
		[4]pr.Float{1, 1, 1, 0})

	style = styleOf(t, `<div id="t" style="font: bold 2px/3px weasyprint"></div>`)
	tu.AssertEqual(t, style.FontSize, pr.Float(2))
	tu.AssertEqual(t, style.LineHeight, pr.FToPx(3))

	style = styleOf(t, `<div id="t" style="line-height: 4px; font: 2px weasyprint"></div>`)
	tu.AssertEqual(t, style.LineHeight, pr.SToV("normal"))
}

func TestAlignmentKeywords(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	style := styleOf(t, `<div id="t" style="justify-content: safe center; align-items: first baseline;
		align-content: space-evenly; align-self: end"></div>`)
	tu.AssertEqual(t, style.JustifyContent, keywords.Center)
	tu.AssertEqual(t, style.AlignItems, keywords.Baseline)
	tu.AssertEqual(t, style.AlignContent, keywords.SpaceEvenly)
	tu.AssertEqual(t, style.AlignSelf, keywords.End)
}

func TestPageSize(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	for _, test := range []struct {
		css           string
		width, height pr.Float
	}{
		{"", pr.A4[0], pr.A4[1]},
		{"@page { size: 8px 7px }", 8, 7},
		{"@page {size: 20px}", 20, 20},
		{"@page { size: a4 landscape }", pr.A4[1], pr.A4[0]},
	} {
		doc := parseNoWarnings(t, "<style>"+test.css+"</style>")
		tu.AssertEqual(t, [2]pr.Float{doc.PageWidth, doc.PageHeight}, [2]pr.Float{test.width, test.height})
		tu.AssertEqual(t, doc.PageMargins, [4]pr.Float{})
	}

	doc := parseNoWarnings(t, "<style>@page { size: 10px 20px; margin: 1px 10% }</style>")
	tu.AssertEqual(t, doc.PageMargins, [4]pr.Float{bo.STop: 1, bo.SRight: 1, bo.SBottom: 1, bo.SLeft: 1})
	w, h := doc.PageContentSize()
	tu.AssertEqual(t, [2]pr.Float{w, h}, [2]pr.Float{8, 18})
}

func TestWarnings(t *testing.T) {
	capture := tu.CaptureLogs()
	doc, err := Parse(`<style>div:hover { width: 1px } @media print { div { width: 2px } }</style>
		<div id="t" style="width: 3; colour: red; display: grid; height: 2px"></div>`)
	if err != nil {
		t.Fatal(err)
	}
	capture.CheckEqual([]string{
		"unsupported selector",
		"unsupported at-rule @media",
		"missing unit",
		"unsupported property colour",
		"unknown keyword grid",
	}, t)
	tu.AssertEqual(t, len(multierr.Errors(doc.Warnings)), 5)

	// invalid declarations are ignored
	style := findByID(doc.Root, "t").Style
	tu.AssertEqual(t, style.Width, pr.SToV("auto"))
	tu.AssertEqual(t, style.Height, pr.FToPx(2))
	tu.AssertEqual(t, style.Display, pr.DisplayBlock)
}

func TestFlexItems(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	doc := parseNoWarnings(t, `
	<article id="t" style="display: flex">
		text
		<span>inline</span>
		<div style="float: left">float</div>
		<p style="display: inline-flex"></p>
		<div style="position: absolute">abs</div>
	</article>`)
	article := findByID(doc.Root, "t")
	var displays []pr.Display
	for _, child := range article.Children {
		tu.AssertEqual(t, child.Kind, bo.ElementBox)
		tu.AssertEqual(t, child.Style.Float, pr.FloatNone)
		displays = append(displays, child.Style.Display)
	}
	tu.AssertEqual(t, displays, []pr.Display{pr.DisplayBlock, pr.DisplayBlock, pr.DisplayBlock, pr.DisplayFlex, pr.DisplayBlock})

	// the text run is wrapped in an anonymous block
	anonymous := article.Children[0]
	tu.AssertEqual(t, anonymous.Tag, "")
	tu.AssertEqual(t, strings.TrimSpace(anonymous.Children[0].Text), "text")
	tu.AssertEqual(t, article.Children[4].IsInFlow(), false)
}

func TestLineBreak(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	doc := parseNoWarnings(t, `<p id="t">a<br>b</p>`)
	p := findByID(doc.Root, "t")
	var kinds []bo.Kind
	for _, child := range p.Children {
		kinds = append(kinds, child.Kind)
	}
	tu.AssertEqual(t, kinds, []bo.Kind{bo.TextBox, bo.LineBreak, bo.TextBox})
}
