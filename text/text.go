// Package text measures and breaks the text of inline content.
//
// It implements the metrics of a square glyph font, like the
// "weasyprint" test font: each narrow glyph (including spaces) is one em
// wide, each wide or fullwidth East Asian glyph two em. The normal line
// height is one em and the ascent is 0.8 em.
//
// Line breaking opportunities follow UAX #14.
package text

import (
	"strings"
	"unicode"

	"github.com/go-text/typesetting/segmenter"
	"golang.org/x/text/width"

	pr "github.com/benoitkugler/flexrender/css/properties"
)

// AscentRatio is the ratio between the ascent of the font and its size.
const AscentRatio = 0.8

// Run is a piece of text sharing the same font.
type Run struct {
	Text       string
	FontSize   pr.Float
	LineHeight pr.Float
}

// Line is one line of text, as returned by SplitLines.
type Line struct {
	Text  string
	Width pr.Float
	// Height is the largest line height of the runs
	// in the line, or the strut height.
	Height pr.Float
	// Baseline is the distance between the top of the line
	// and the baseline.
	Baseline pr.Float
}

// RuneAdvance returns the advance of r in a font of the given size.
func RuneAdvance(r rune, fontSize pr.Float) pr.Float {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2 * fontSize
	default:
		return fontSize
	}
}

// Width returns the advance of s, without the trailing spaces.
func Width(s string, fontSize pr.Float) pr.Float {
	var out pr.Float
	for _, r := range strings.TrimRightFunc(s, unicode.IsSpace) {
		out += RuneAdvance(r, fontSize)
	}
	return out
}

// Baseline returns the position of the baseline in a line of
// the given height.
func Baseline(lineHeight, fontSize pr.Float) pr.Float {
	return (lineHeight-fontSize)/2 + AscentRatio*fontSize
}

// paragraph is the white-space collapsed content of runs,
// with the font of each rune.
type paragraph struct {
	text  []rune
	fonts []int // index in runs
	runs  []Run
}

func newParagraph(runs []Run) paragraph {
	out := paragraph{runs: runs}
	lastIsSpace := true // strip leading spaces
	for i, run := range runs {
		for _, r := range run.Text {
			isSpace := unicode.IsSpace(r)
			if isSpace {
				if lastIsSpace {
					continue
				}
				r = ' '
			}
			out.text = append(out.text, r)
			out.fonts = append(out.fonts, i)
			lastIsSpace = isSpace
		}
	}
	// strip trailing space
	if n := len(out.text); n != 0 && out.text[n-1] == ' ' {
		out.text, out.fonts = out.text[:n-1], out.fonts[:n-1]
	}
	return out
}

// segment is an unbreakable piece of text : a break opportunity
// is found after it.
type segment struct {
	start, end int // in runes
	width      pr.Float
	// width without the trailing spaces
	trimmedWidth pr.Float
}

func (p paragraph) segments() []segment {
	if len(p.text) == 0 {
		return nil
	}
	var (
		seg segmenter.Segmenter
		out []segment
	)
	seg.Init(p.text)
	iter := seg.LineIterator()
	for iter.Next() {
		line := iter.Line()
		s := segment{start: line.Offset, end: line.Offset + len(line.Text)}
		trailing := true
		for i := s.end - 1; i >= s.start; i-- {
			adv := RuneAdvance(p.text[i], p.runs[p.fonts[i]].FontSize)
			s.width += adv
			if trailing && p.text[i] == ' ' {
				continue
			}
			trailing = false
			s.trimmedWidth += adv
		}
		out = append(out, s)
	}
	return out
}

func (p paragraph) line(start, end int, width pr.Float, strut Run) Line {
	out := Line{
		Text:     strings.TrimRight(string(p.text[start:end]), " "),
		Width:    width,
		Height:   strut.LineHeight,
		Baseline: Baseline(strut.LineHeight, strut.FontSize),
	}
	for i := start; i < end; i++ {
		run := p.runs[p.fonts[i]]
		if run.LineHeight > out.Height {
			out.Height = run.LineHeight
			out.Baseline = Baseline(run.LineHeight, run.FontSize)
		}
	}
	return out
}

// SplitLines lays out the runs in lines of at most maxWidth,
// which may be Inf for no wrapping, or 0 to break at each opportunity.
// The strut gives the minimum height of each line.
// A line holding a single segment may overflow.
//
// An empty input returns one empty line, so that forced line breaks
// are honored.
func SplitLines(runs []Run, maxWidth pr.Float, strut Run) []Line {
	p := newParagraph(runs)
	segments := p.segments()
	if len(segments) == 0 {
		return []Line{p.line(0, 0, 0, strut)}
	}

	var (
		out        []Line
		lineStart  = segments[0].start
		lineWidth  pr.Float // including trailing spaces of the last segment
		lineLength pr.Float // without trailing spaces
		lineEnd    int
	)
	for _, s := range segments {
		if lineEnd > lineStart && lineWidth+s.trimmedWidth > maxWidth {
			out = append(out, p.line(lineStart, lineEnd, lineLength, strut))
			lineStart, lineWidth, lineLength = s.start, 0, 0
		}
		lineLength = lineWidth + s.trimmedWidth
		lineWidth += s.width
		lineEnd = s.end
	}
	out = append(out, p.line(lineStart, lineEnd, lineLength, strut))
	return out
}

// MinContentWidth returns the width of the widest unbreakable
// segment of runs.
func MinContentWidth(runs []Run) pr.Float {
	var out pr.Float
	for _, s := range newParagraph(runs).segments() {
		out = pr.Max(out, s.trimmedWidth)
	}
	return out
}

// MaxContentWidth returns the width of runs laid out on one line.
func MaxContentWidth(runs []Run) pr.Float {
	lines := SplitLines(runs, pr.Inf, Run{})
	return lines[0].Width
}
