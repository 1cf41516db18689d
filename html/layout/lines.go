package layout

import pr "github.com/benoitkugler/flexrender/css/properties"

// flexLine is a group of items, as indices into the item arena,
// in main axis order.
type flexLine struct {
	items []int

	crossSize   pr.Float
	crossOffset pr.Float // logical, from the cross-start edge
	// largest distance between the cross-start margin edge
	// and the baseline, for baseline aligned items
	maxAscent pr.Float
}

// buildLines collects the items into flex lines: a single line for
// nowrap containers, or as many lines as needed to fit availableMain.
func (fc *flexContainer) buildLines(availableMain pr.Float) {
	fc.lines = nil
	if len(fc.ordered) == 0 {
		return
	}
	if fc.style.FlexWrap == pr.NoWrap {
		fc.lines = []flexLine{{items: append([]int(nil), fc.ordered...)}}
	} else {
		fc.wrapLines(availableMain)
	}

	reversed := fc.style.FlexWrap == pr.WrapReverse
	for li, line := range fc.lines {
		built := li
		if reversed {
			built = len(fc.lines) - 1 - li
		}
		for _, index := range line.items {
			fc.items[index].line = li
			fc.items[index].builtLine = built
		}
	}
}

// gaps returns the space taken by the gaps between n items or lines.
func gaps(n int, gap pr.Float) pr.Float {
	if n <= 1 {
		return 0
	}
	return pr.Float(n-1) * gap
}

// sumOuterHypothetical returns the main size of the line, with
// the items at their hypothetical main size.
func (fc *flexContainer) sumOuterHypothetical(items []int) pr.Float {
	var sum pr.Float
	for _, index := range items {
		sum += fc.outerHypothetical(&fc.items[index])
	}
	return sum + gaps(len(items), fc.mainGap)
}

func (fc *flexContainer) wrapLines(availableMain pr.Float) {
	var (
		current flexLine
		used    pr.Float
	)
	for _, index := range fc.ordered {
		outer := fc.outerHypothetical(&fc.items[index])
		if len(current.items) != 0 {
			// with the gap between the items
			if used+fc.mainGap+outer > availableMain {
				fc.lines = append(fc.lines, current)
				current, used = flexLine{}, 0
			} else {
				used += fc.mainGap
			}
		}
		current.items = append(current.items, index)
		used += outer
	}
	fc.lines = append(fc.lines, current)

	if fc.style.FlexWrap == pr.WrapReverse {
		for left, right := 0, len(fc.lines)-1; left < right; left, right = left+1, right-1 {
			fc.lines[left], fc.lines[right] = fc.lines[right], fc.lines[left]
		}
	}
}
