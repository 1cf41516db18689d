package block

import (
	pr "github.com/benoitkugler/flexrender/css/properties"
	bo "github.com/benoitkugler/flexrender/html/boxes"
	"github.com/benoitkugler/flexrender/html/layout"
	"github.com/benoitkugler/flexrender/text"
)

// inlinePiece is either a paragraph of text, or an atomic
// inline-level box.
type inlinePiece struct {
	runs   []text.Run
	atomic *bo.Box
}

func isAtomic(b *bo.Box) bool {
	return b.Kind == bo.ElementBox && (b.Style.Display == pr.DisplayInlineBlock || b.Style.Display == pr.DisplayInlineFlex)
}

// collectPieces splits the inline content at forced line breaks
// and atomic boxes.
func collectPieces(run []*bo.Box) []inlinePiece {
	var (
		out     []inlinePiece
		current []text.Run
	)
	closeParagraph := func(forced bool) {
		// white space only paragraphs are kept for forced breaks
		if forced || !isBlankRuns(current) {
			out = append(out, inlinePiece{runs: current})
		}
		current = nil
	}
	var walk func(boxes []*bo.Box)
	walk = func(boxes []*bo.Box) {
		for _, b := range boxes {
			switch {
			case b.Kind == bo.TextBox:
				current = append(current, text.Run{
					Text:       b.Text,
					FontSize:   b.Style.FontSize,
					LineHeight: b.Style.UsedLineHeight(),
				})
			case b.Kind == bo.LineBreak:
				closeParagraph(true)
			case b.Style.Display == pr.DisplayNone:
			case isAtomic(b):
				closeParagraph(false)
				out = append(out, inlinePiece{atomic: b})
			default: // inline element
				walk(b.Children)
			}
		}
	}
	walk(run)
	closeParagraph(false)
	return out
}

func isBlankRuns(runs []text.Run) bool {
	for _, r := range runs {
		if text.Width(r.Text, 1) != 0 {
			return false
		}
	}
	return true
}

func strut(box *bo.Box) text.Run {
	return text.Run{FontSize: box.Style.FontSize, LineHeight: box.Style.UsedLineHeight()}
}

// inlineIntrinsicWidth returns the min-content and max-content widths
// of the inline content.
func inlineIntrinsicWidth(ctx *layout.Context, box *bo.Box, run []*bo.Box) (minContent, maxContent pr.Float) {
	for _, piece := range collectPieces(run) {
		var minC, maxC pr.Float
		if piece.atomic != nil {
			model := layout.ResolveBoxModel(piece.atomic.Style, pr.AutoF, pr.AutoF)
			minC = layout.IntrinsicWidth(ctx, piece.atomic, model, layout.MinContent)
			maxC = layout.IntrinsicWidth(ctx, piece.atomic, model, layout.MaxContent)
		} else {
			minC, maxC = text.MinContentWidth(piece.runs), text.MaxContentWidth(piece.runs)
		}
		minContent = pr.Max(minContent, minC)
		maxContent = pr.Max(maxContent, maxC)
	}
	return minContent, maxContent
}

// lines returns the line fragments of the inline content, positioned
// relatively to the top of the first line.
func (f *flow) lines(run []*bo.Box) []*bo.Fragment {
	var out []*bo.Fragment
	rtl := f.box.Style.Direction == pr.RTL
	for _, piece := range collectPieces(run) {
		if piece.atomic != nil {
			frag := f.layoutAtomic(piece.atomic)
			if rtl {
				frag.Translate(f.width-frag.MarginWidth(), 0)
			}
			out = append(out, frag)
			continue
		}
		for _, line := range text.SplitLines(piece.runs, f.width, strut(f.box)) {
			frag := bo.NewFragment(f.box)
			frag.IsLine = true
			frag.Text = line.Text
			frag.Width, frag.Height = line.Width, line.Height
			frag.Baseline = line.Baseline
			if rtl {
				frag.PositionX = f.width - line.Width
			}
			out = append(out, frag)
		}
	}
	return out
}

// layoutInline places the lines of an inline run, starting at the line
// given by resume. It returns true if the page is full.
func (f *flow) layoutInline(index int, run []*bo.Box, resume layout.ResumeStack) bool {
	start := 0
	if resume != nil {
		start, _ = resume.Unpack()
	}
	lines := f.lines(run)
	for i := start; i < len(lines); i++ {
		line := lines[i]
		height := line.MarginHeight()
		if f.y+height > f.maxExtent && !f.pageEmpty() {
			f.resume = layout.ResumeStack{index: layout.ResumeStack{i: nil}}
			return true
		}
		line.Translate(0, f.y)
		f.addBaseline(line)
		f.children = append(f.children, line)
		f.y += height
		f.placed = true
	}
	return false
}

// layoutAtomic lays out an inline-block or inline-flex box,
// with a shrink-to-fit width.
func (f *flow) layoutAtomic(box *bo.Box) *bo.Fragment {
	var frag *bo.Fragment
	if box.IsFlexContainer() {
		frag, _ = layout.FlexLayout(f.ctx, box, layout.Constraints{
			ContainingWidth: f.width, ContainingHeight: f.height,
			WidthMode:  layout.Indefinite,
			PageExtent: pr.Inf, PageIsEmpty: true,
		}, nil)
	} else {
		frag = shrinkToFit(f.ctx, box, f.width, f.height)
	}
	if frag.Baseline == pr.AutoF {
		// the bottom margin edge is used
		frag.Baseline = frag.MarginHeight()
	}
	return frag
}
