package layout

import (
	"fmt"

	pr "github.com/benoitkugler/flexrender/css/properties"
)

// resolveFlexibleLengths sets the target main size of the items of line,
// growing or shrinking them to fill availableMain.
func (fc *flexContainer) resolveFlexibleLengths(line *flexLine, availableMain pr.Float) {
	items := line.items
	grow := fc.sumOuterHypothetical(items) < availableMain

	// size inflexible items
	for _, index := range items {
		it := &fc.items[index]
		it.frozen = false
		it.target = it.hypothetical
		factor := it.shrink
		if grow {
			factor = it.grow
		}
		if factor == 0 ||
			(grow && it.baseSize > it.hypothetical) ||
			(!grow && it.baseSize < it.hypothetical) {
			it.frozen = true
		}
	}

	// the loop is bounded: each iteration freezes at least one item
	for iteration := 0; iteration <= len(items); iteration++ {
		freeSpace := availableMain - gaps(len(items), fc.mainGap)
		var (
			unfrozen  []int
			factorSum pr.Float
		)
		for _, index := range items {
			it := &fc.items[index]
			extra := fc.axes.mainExtra(&it.model)
			if it.frozen {
				freeSpace -= it.target + extra
				continue
			}
			freeSpace -= it.baseSize + extra
			unfrozen = append(unfrozen, index)
			if grow {
				factorSum += it.grow
			} else {
				factorSum += it.shrink * it.baseSize
			}
		}
		if len(unfrozen) == 0 {
			break
		}

		if factorSum == 0 || freeSpace == 0 {
			// nothing to distribute
			for _, index := range unfrozen {
				it := &fc.items[index]
				it.target = it.clampMain(it.baseSize)
				it.frozen = true
			}
			break
		}

		// distribute the free space, then clamp
		anyClamped := false
		for _, index := range unfrozen {
			it := &fc.items[index]
			if grow {
				it.target = it.baseSize + freeSpace*it.grow/factorSum
			} else {
				it.target = it.baseSize + freeSpace*(it.shrink*it.baseSize)/factorSum
			}
			if clamped := it.clampMain(it.target); clamped != it.target {
				it.target = clamped
				it.frozen = true
				anyClamped = true
			}
		}

		if traceMode {
			traceLogger.Dump(fmt.Sprintf("flexible lengths, iteration %d: free space %g, %d unfrozen, clamped %v",
				iteration, freeSpace, len(unfrozen), anyClamped))
		}

		if !anyClamped {
			break
		}
	}
}
