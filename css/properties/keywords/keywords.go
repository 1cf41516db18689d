// Package keywords stores the alignment keywords used by
// justify-content, align-content, align-items and align-self.
package keywords

// Keyword efficiently stores CSS keywords
type Keyword uint8

const (
	_ Keyword = iota
	Auto
	Baseline
	Center
	End
	FlexEnd
	FlexStart
	Left
	Normal
	Right
	SelfEnd
	SelfStart
	SpaceAround
	SpaceBetween
	SpaceEvenly
	Start
	Stretch
)

var names = [...]string{
	Auto:         "auto",
	Baseline:     "baseline",
	Center:       "center",
	End:          "end",
	FlexEnd:      "flex-end",
	FlexStart:    "flex-start",
	Left:         "left",
	Normal:       "normal",
	Right:        "right",
	SelfEnd:      "self-end",
	SelfStart:    "self-start",
	SpaceAround:  "space-around",
	SpaceBetween: "space-between",
	SpaceEvenly:  "space-evenly",
	Start:        "start",
	Stretch:      "stretch",
}

func (k Keyword) String() string {
	if int(k) < len(names) && names[k] != "" {
		return names[k]
	}
	return "<invalid keyword>"
}

// NewKeyword returns 0 for unknown keywords.
func NewKeyword(s string) Keyword {
	switch s {
	case "auto":
		return Auto
	case "baseline", "first baseline":
		return Baseline
	case "center":
		return Center
	case "end":
		return End
	case "flex-end":
		return FlexEnd
	case "flex-start":
		return FlexStart
	case "left":
		return Left
	case "normal":
		return Normal
	case "right":
		return Right
	case "self-end":
		return SelfEnd
	case "self-start":
		return SelfStart
	case "space-around":
		return SpaceAround
	case "space-between":
		return SpaceBetween
	case "space-evenly":
		return SpaceEvenly
	case "start":
		return Start
	case "stretch":
		return Stretch
	}
	return 0
}

// Distributed returns true for the keywords spreading free space
// between the alignment subjects.
func (k Keyword) Distributed() bool {
	return k == SpaceBetween || k == SpaceAround || k == SpaceEvenly
}
