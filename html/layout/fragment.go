package layout

import (
	"fmt"
	"sort"
	"strings"

	pr "github.com/benoitkugler/flexrender/css/properties"
	bo "github.com/benoitkugler/flexrender/html/boxes"
)

// ResumeStack stores the position where the layout of a box should
// resume on the next page.
//
// Keys are indices of children: for flex containers, the index (in
// document order, among the in-flow children) of every item with content
// not yet laid out; for block containers, the index of the first child
// to lay out. The value is the stack of the child, or nil if the child
// has not been started. An empty, non nil stack is used for a flex item
// whose content is finished but whose box continues on the next page.
type ResumeStack map[int]ResumeStack

// Unpack returns the only key of the stack, and its value.
// It panics if the stack has not exactly one element.
func (s ResumeStack) Unpack() (int, ResumeStack) {
	if len(s) != 1 {
		panic(fmt.Sprintf("expected one element in resume stack, got %v", s))
	}
	for k, v := range s {
		return k, v
	}
	return 0, nil
}

// Keys returns the sorted indices of the stack.
func (s ResumeStack) Keys() []int {
	out := make([]int, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

func (s ResumeStack) String() string {
	if s == nil {
		return "nil"
	}
	var chunks []string
	for _, k := range s.Keys() {
		chunks = append(chunks, fmt.Sprintf("%d: %s", k, s[k]))
	}
	return "{" + strings.Join(chunks, ", ") + "}"
}

// MalformedResumeError is raised (with panic) when the stack given to
// resume the layout of a flex container does not refer to one of its
// items. It is a programming error of the caller.
type MalformedResumeError struct {
	Box   *bo.Box
	Index int // invalid index
	Count int // number of in-flow children
}

func (e *MalformedResumeError) Error() string {
	return fmt.Sprintf("invalid resume index %d for %s, with %d in-flow children", e.Index, e.Box, e.Count)
}

// placedItem is an item fragment contributing to the current page.
type placedItem struct {
	item *flexItem
	frag *bo.Fragment
}

// paginate lays out the content of the items, breaking the container
// if it does not fit in maxExtent.
// It returns the fragments of the items on this page, and the items
// remaining for the next pages, or nil.
func (fc *flexContainer) paginate(maxExtent pr.Float, pageIsEmpty bool) ([]placedItem, ResumeStack) {
	_, height := fc.axes.physical(fc.innerMain, fc.innerCross)
	if height <= maxExtent {
		out := make([]placedItem, len(fc.items))
		for i := range fc.items {
			out[i] = fc.placeItem(&fc.items[i])
		}
		return out, nil
	}

	resume := ResumeStack{}
	var placed []placedItem
	if fc.axes.isRow {
		placed = fc.breakLines(maxExtent, pageIsEmpty, resume)
	} else {
		placed = fc.breakItems(maxExtent, pageIsEmpty, resume)
	}
	if len(resume) == 0 {
		return placed, nil
	}
	return placed, resume
}

// breakLines breaks a row container between its lines, splitting
// the items of the line crossing the end of the page.
func (fc *flexContainer) breakLines(maxExtent pr.Float, pageIsEmpty bool, resume ResumeStack) []placedItem {
	var (
		out    []placedItem
		broken bool
	)
	for li := range fc.lines {
		line := &fc.lines[li]
		if broken {
			fc.pushItems(line.items, resume)
			continue
		}
		top, bottom := line.crossOffset, line.crossOffset+line.crossSize
		if bottom <= maxExtent {
			for _, index := range line.items {
				out = append(out, fc.placeItem(&fc.items[index]))
			}
			continue
		}

		broken = true
		pageEmpty := pageIsEmpty && len(out) == 0
		if top >= maxExtent || fc.lineAvoidsBreak(line) {
			if !pageEmpty {
				fc.pushItems(line.items, resume)
				continue
			}
			// always accept one line on an empty page
			for _, index := range line.items {
				out = append(out, fc.placeItem(&fc.items[index]))
			}
			continue
		}
		start, continued := len(out), false
		for _, index := range line.items {
			it := &fc.items[index]
			if p, ok := fc.splitItem(it, maxExtent, pageEmpty, resume); ok {
				out = append(out, p)
			}
			if _, ok := resume[it.index]; ok {
				continued = true
			}
		}
		if !continued {
			continue
		}
		// stretched items continue with the line
		for _, p := range out[start:] {
			if _, ok := resume[p.item.index]; ok || !p.item.stretched {
				continue
			}
			if cutFragment(p.frag, maxExtent) {
				resume[p.item.index] = ResumeStack{}
			}
		}
	}
	return out
}

// breakItems breaks each line of a column container between its
// items, or inside the item crossing the end of the page.
func (fc *flexContainer) breakItems(maxExtent pr.Float, pageIsEmpty bool, resume ResumeStack) []placedItem {
	var out []placedItem
	for li := range fc.lines {
		// top to bottom, which is the reverse of the main axis order
		// for column-reverse
		items := append([]int(nil), fc.lines[li].items...)
		if fc.axes.mainReversed {
			for left, right := 0, len(items)-1; left < right; left, right = left+1, right-1 {
				items[left], items[right] = items[right], items[left]
			}
		}

		broken, placedInLine := false, false
		for _, index := range items {
			it := &fc.items[index]
			if broken {
				resume[it.index] = it.resume
				continue
			}
			_, top := fc.position(it)
			bottom := top + it.target + it.model.VerticalExtra()
			if bottom <= maxExtent {
				out = append(out, fc.placeItem(it))
				placedInLine = true
				continue
			}

			broken = true
			pageEmpty := pageIsEmpty && !placedInLine
			if top >= maxExtent || it.avoidBreak() {
				if !pageEmpty {
					resume[it.index] = it.resume
					continue
				}
				// always accept one item on an empty page
				out = append(out, fc.placeItem(it))
				continue
			}
			if p, ok := fc.splitItem(it, maxExtent, pageEmpty, resume); ok {
				out = append(out, p)
			}
		}
	}
	return out
}

func (fc *flexContainer) lineAvoidsBreak(line *flexLine) bool {
	for _, index := range line.items {
		if fc.items[index].avoidBreak() {
			return true
		}
	}
	return false
}

// pushItems defers the items to the next page, keeping their
// progress if they were started on a previous page.
func (fc *flexContainer) pushItems(items []int, resume ResumeStack) {
	for _, index := range items {
		it := &fc.items[index]
		resume[it.index] = it.resume
	}
}

// placeItem lays out the whole content of the item.
func (fc *flexContainer) placeItem(it *flexItem) placedItem {
	frag, _ := fc.itemFragment(it, pr.Inf, true)
	return placedItem{item: it, frag: frag}
}

// splitItem lays out the content of the item up to maxExtent,
// measured from the top of the container content box.
// If the item is not finished, it fills the remaining extent and its
// remaining content is stored in resume. If none of its content fits
// on a page which is not empty, the item is pushed to the next page
// and false is returned.
func (fc *flexContainer) splitItem(it *flexItem, maxExtent pr.Float, pageIsEmpty bool, resume ResumeStack) (placedItem, bool) {
	_, top := fc.position(it)
	contentTop := top + it.model.MarginTop + it.model.BorderTopWidth + it.model.PaddingTop
	if top+fc.outerHeight(it) <= maxExtent {
		return fc.placeItem(it), true
	}
	frag, sub := fc.itemFragment(it, maxExtent-contentTop, pageIsEmpty)
	if sub != nil && len(frag.Children) == 0 && !pageIsEmpty {
		resume[it.index] = it.resume
		return placedItem{}, false
	}
	if sub != nil {
		resume[it.index] = sub
	}
	return placedItem{item: it, frag: frag}, true
}

// cutFragment reduces the height of frag so that its margin box ends
// at maxExtent, removing its bottom decoration.
// It returns false if frag already fits.
func cutFragment(frag *bo.Fragment, maxExtent pr.Float) bool {
	if frag.PositionY+frag.MarginHeight() <= maxExtent {
		return false
	}
	frag.RemoveDecoration(false, true)
	frag.Height = pr.Max(0, maxExtent-frag.ContentBoxY())
	return true
}

func (fc *flexContainer) outerHeight(it *flexItem) pr.Float {
	_, height := fc.size(it)
	return height + it.model.VerticalExtra()
}

// itemFragment lays out the content of the item with its final size,
// returning a fragment positioned relatively to the container content box.
func (fc *flexContainer) itemFragment(it *flexItem, maxExtent pr.Float, pageIsEmpty bool) (*bo.Fragment, ResumeStack) {
	width, height := fc.size(it)
	heightConstraint := Fixed(height)
	if fc.axes.isRow && !it.stretched && it.model.Height == pr.AutoF {
		heightConstraint = Constraint{}
	}
	resp := fc.ctx.LayoutContent(Request{
		Box: it.box, Model: it.model,
		Width: Fixed(width), Height: heightConstraint,
		MaxExtent: maxExtent, PageIsEmpty: pageIsEmpty,
		Resume: it.resume,
	})

	frag := it.model.Fragment(it.box, width, height)
	frag.PositionX, frag.PositionY = fc.position(it)
	frag.Line = it.builtLine
	if resp.Resume != nil {
		frag.Height = pr.Max(0, maxExtent)
		frag.RemoveDecoration(false, true)
	}
	if resp.Baseline != pr.AutoF {
		frag.Baseline = frag.MarginTop + frag.BorderTopWidth + frag.PaddingTop + resp.Baseline.V()
	}
	frag.Children = resp.Children
	for _, child := range frag.Children {
		child.Translate(frag.ContentBoxX(), frag.ContentBoxY())
	}
	return frag, resp.Resume
}
