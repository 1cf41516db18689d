// Package tracer provides a function to dump the current layout tree,
// which may be used in debug mode.
package tracer

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	pr "github.com/benoitkugler/flexrender/css/properties"
	bo "github.com/benoitkugler/flexrender/html/boxes"
	"github.com/benoitkugler/flexrender/utils"
)

type Tracer struct {
	out io.Writer
}

// NewTracer panics if an error occurs.
func NewTracer(outFile string) Tracer {
	f, err := os.Create(outFile)
	if err != nil {
		panic(err)
	}

	return Tracer{out: f}
}

// NewWriterTracer dumps into w.
func NewWriterTracer(w io.Writer) Tracer { return Tracer{out: w} }

func FormatMaybeFloat(v pr.MaybeFloat) string {
	if v, ok := v.(pr.Float); ok {
		return strconv.FormatFloat(float64(utils.RoundPrec(float32(v), 3)), 'g', -1, 32)
	}
	return fmt.Sprintf("%v", v)
}

func (t Tracer) Dump(line string) {
	fmt.Fprintln(t.out, line)
}

func (t Tracer) DumpTree(frag *bo.Fragment, context string) {
	fmt.Fprintln(t.out, context)

	var printer func(frag *bo.Fragment, indent int)
	printer = func(frag *bo.Fragment, indent int) {
		fmt.Fprint(t.out, strings.Repeat(" ", indent))
		name := "line"
		if !frag.IsLine {
			name = frag.Box.String()
		}
		fmt.Fprintf(t.out, "%s: %s %s %s %s", name,
			FormatMaybeFloat(frag.PositionX),
			FormatMaybeFloat(frag.PositionY),
			FormatMaybeFloat(frag.Width),
			FormatMaybeFloat(frag.Height),
		)
		if frag.Line >= 0 {
			fmt.Fprintf(t.out, " (flex line %d)", frag.Line)
		}
		fmt.Fprintln(t.out)
		if frag.IsLine {
			fmt.Fprintln(t.out, strings.Repeat(" ", indent+1)+frag.Text)
		}

		for _, child := range frag.Children {
			printer(child, indent+1)
		}
	}

	printer(frag, 0)

	fmt.Fprintln(t.out)
}
