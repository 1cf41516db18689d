package layout

import (
	pr "github.com/benoitkugler/flexrender/css/properties"
	"github.com/benoitkugler/flexrender/css/properties/keywords"
	bo "github.com/benoitkugler/flexrender/html/boxes"
)

// distribute returns the offset of the first of n slots and the
// extra space between two slots, for a content distribution keyword
// and the given free space.
func distribute(align keywords.Keyword, freeSpace pr.Float, n int) (start, between pr.Float) {
	if freeSpace < 0 {
		switch align {
		case keywords.SpaceBetween:
			align = keywords.FlexStart
		case keywords.SpaceAround, keywords.SpaceEvenly:
			align = keywords.Center
		}
	}
	switch align {
	case keywords.FlexEnd, keywords.End, keywords.Right:
		return freeSpace, 0
	case keywords.Center:
		return freeSpace / 2, 0
	case keywords.SpaceBetween:
		if n <= 1 {
			return 0, 0
		}
		return 0, freeSpace / pr.Float(n-1)
	case keywords.SpaceAround:
		if n == 0 {
			return 0, 0
		}
		return freeSpace / pr.Float(n) / 2, freeSpace / pr.Float(n)
	case keywords.SpaceEvenly:
		return freeSpace / pr.Float(n+1), freeSpace / pr.Float(n+1)
	default: // flex-start, start, left, stretch, normal
		return 0, 0
	}
}

// resolveLineCrossSizes computes the cross size of each line.
func (fc *flexContainer) resolveLineCrossSizes() {
	cross := fc.crossConstraint()
	singleLine := fc.style.FlexWrap == pr.NoWrap
	for li := range fc.lines {
		line := &fc.lines[li]
		if singleLine && cross.IsDefinite() {
			line.crossSize = cross.Size
			fc.collectAscent(line)
			continue
		}
		var maxOuter, maxDescent pr.Float
		for _, index := range line.items {
			it := &fc.items[index]
			outer := fc.outerCross(it)
			if ascent, ok := fc.baselineAscent(it); ok {
				line.maxAscent = pr.Max(line.maxAscent, ascent)
				maxDescent = pr.Max(maxDescent, outer-ascent)
			} else {
				maxOuter = pr.Max(maxOuter, outer)
			}
		}
		line.crossSize = pr.Max(maxOuter, line.maxAscent+maxDescent)
	}
	if singleLine && !cross.IsDefinite() && len(fc.lines) == 1 {
		_, minCross, maxCross := fc.axes.crossSizes(&fc.model)
		line := &fc.lines[0]
		line.crossSize = pr.Max(minCross.V(), pr.Min(line.crossSize, maxCross))
	}
}

func (fc *flexContainer) collectAscent(line *flexLine) {
	for _, index := range line.items {
		if ascent, ok := fc.baselineAscent(&fc.items[index]); ok {
			line.maxAscent = pr.Max(line.maxAscent, ascent)
		}
	}
}

// baselineAscent returns the distance between the cross-start margin
// edge and the baseline, for items participating in baseline alignment.
// Only row containers align items on their baseline.
func (fc *flexContainer) baselineAscent(it *flexItem) (pr.Float, bool) {
	if !fc.axes.isRow || it.alignSelf != keywords.Baseline || it.baseline == pr.AutoF {
		return 0, false
	}
	if it.autoMargin(bo.STop) || it.autoMargin(bo.SBottom) {
		return 0, false
	}
	return it.baseline.V(), true
}

// resolveContainerCross sets the inner cross size of the container.
func (fc *flexContainer) resolveContainerCross() {
	cross := fc.crossConstraint()
	if cross.IsDefinite() {
		fc.innerCross = cross.Size
		return
	}
	var sum pr.Float
	for _, line := range fc.lines {
		sum += line.crossSize
	}
	sum += gaps(len(fc.lines), fc.crossGap)
	_, minCross, maxCross := fc.axes.crossSizes(&fc.model)
	fc.innerCross = pr.Max(minCross.V(), pr.Min(sum, maxCross))
}

// alignContent places the lines along the cross axis.
func (fc *flexContainer) alignContent() {
	var sum pr.Float
	for _, line := range fc.lines {
		sum += line.crossSize
	}
	n := len(fc.lines)
	extra := fc.innerCross - sum - gaps(n, fc.crossGap)

	align := fc.style.AlignContent
	if fc.style.FlexWrap == pr.NoWrap {
		// align-content only applies to multi-line containers
		align = keywords.FlexStart
	}

	var start, between pr.Float
	switch align {
	case keywords.Stretch, keywords.Normal:
		if extra > 0 {
			for li := range fc.lines {
				fc.lines[li].crossSize += extra / pr.Float(n)
			}
		}
	default:
		start, between = distribute(align, extra, n)
	}

	offset := start
	for li := range fc.lines {
		line := &fc.lines[li]
		line.crossOffset = offset
		offset += line.crossSize + fc.crossGap + between
	}
}

// alignItems sets the cross size and the cross offset of each item
// within its line, resolving stretching and cross auto margins.
func (fc *flexContainer) alignItems() {
	crossStart, crossEnd := fc.axes.crossSides()
	for li := range fc.lines {
		line := &fc.lines[li]
		for _, index := range line.items {
			it := &fc.items[index]
			if it.stretched {
				it.crossSize = it.clampCross(line.crossSize - fc.axes.crossExtra(&it.model))
			}
			outer := fc.outerCross(it)
			slack := line.crossSize - outer

			startAuto, endAuto := it.autoMargin(crossStart), it.autoMargin(crossEnd)
			var offset pr.Float
			switch {
			case startAuto || endAuto:
				slack = pr.Max(0, slack)
				switch {
				case startAuto && endAuto:
					*margin(&it.model.BoxFields, crossStart) = slack / 2
					*margin(&it.model.BoxFields, crossEnd) = slack / 2
				case startAuto:
					*margin(&it.model.BoxFields, crossStart) = slack
				default:
					*margin(&it.model.BoxFields, crossEnd) = slack
				}
			default:
				offset = fc.selfOffset(it, line, slack)
			}
			it.crossOffset = line.crossOffset + offset
		}
	}
}

// selfOffset returns the offset of the item in its line,
// for its align-self value.
func (fc *flexContainer) selfOffset(it *flexItem, line *flexLine, slack pr.Float) pr.Float {
	switch it.alignSelf {
	case keywords.FlexEnd, keywords.End, keywords.SelfEnd:
		return slack
	case keywords.Center:
		return slack / 2
	case keywords.Baseline:
		if ascent, ok := fc.baselineAscent(it); ok {
			return line.maxAscent - ascent
		}
		return 0
	default: // stretch, flex-start, start, self-start
		return 0
	}
}

// justifyContent distributes the free space of each line along the
// main axis, resolving main auto margins first.
func (fc *flexContainer) justifyContent() {
	mainStart, mainEnd := fc.axes.mainSides()
	for li := range fc.lines {
		line := &fc.lines[li]
		n := len(line.items)
		freeSpace := fc.innerMain - gaps(n, fc.mainGap)
		autoMargins := 0
		for _, index := range line.items {
			it := &fc.items[index]
			freeSpace -= it.target + fc.axes.mainExtra(&it.model)
			if it.autoMargin(mainStart) {
				autoMargins++
			}
			if it.autoMargin(mainEnd) {
				autoMargins++
			}
		}

		var start, between pr.Float
		if autoMargins != 0 {
			if freeSpace > 0 {
				share := freeSpace / pr.Float(autoMargins)
				for _, index := range line.items {
					it := &fc.items[index]
					if it.autoMargin(mainStart) {
						*margin(&it.model.BoxFields, mainStart) = share
					}
					if it.autoMargin(mainEnd) {
						*margin(&it.model.BoxFields, mainEnd) = share
					}
				}
			}
		} else {
			start, between = distribute(fc.style.JustifyContent, freeSpace, n)
		}

		offset := start
		for _, index := range line.items {
			it := &fc.items[index]
			it.mainOffset = offset
			offset += it.target + fc.axes.mainExtra(&it.model) + fc.mainGap + between
		}
	}
}

// position returns the physical position of the margin box of it,
// relative to the content box of the container.
func (fc *flexContainer) position(it *flexItem) (x, y pr.Float) {
	outerMain := it.target + fc.axes.mainExtra(&it.model)
	outerCross := fc.outerCross(it)
	main := place(it.mainOffset, outerMain, fc.innerMain, fc.axes.mainReversed)
	cross := place(it.crossOffset, outerCross, fc.innerCross, fc.axes.crossReversed)
	if fc.axes.isRow {
		return main, cross
	}
	return cross, main
}
