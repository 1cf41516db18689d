package main

import (
	"fmt"
	"io"

	yaml "gopkg.in/yaml.v3"

	pr "github.com/benoitkugler/flexrender/css/properties"
	bo "github.com/benoitkugler/flexrender/html/boxes"
	"github.com/benoitkugler/flexrender/html/document"
	"github.com/benoitkugler/flexrender/utils/testutils/tracer"
)

const (
	formatYAML = "yaml"
	formatText = "text"
)

var formats = []string{formatYAML, formatText}

func isFormat(s string) bool {
	for _, f := range formats {
		if f == s {
			return true
		}
	}
	return false
}

type (
	fragmentOutput struct {
		Tag  string `yaml:"tag,omitempty"`
		ID   string `yaml:"id,omitempty"`
		Line bool   `yaml:"line,omitempty"`
		Text string `yaml:"text,omitempty"`

		X      pr.Float `yaml:"x"`
		Y      pr.Float `yaml:"y"`
		Width  pr.Float `yaml:"width"`
		Height pr.Float `yaml:"height"`

		// FlexLine is only set for flex items
		FlexLine *int `yaml:"flex_line,omitempty"`

		Children []fragmentOutput `yaml:"children,omitempty"`
	}

	pageOutput struct {
		Width  pr.Float       `yaml:"width"`
		Height pr.Float       `yaml:"height"`
		Root   fragmentOutput `yaml:"root"`
	}

	output struct {
		Pages []pageOutput `yaml:"pages"`
	}
)

func newFragmentOutput(frag *bo.Fragment) fragmentOutput {
	out := fragmentOutput{
		Line: frag.IsLine,
		Text: frag.Text,
		X:    frag.PositionX, Y: frag.PositionY,
		Width: frag.Width, Height: frag.Height,
	}
	if !frag.IsLine {
		out.Tag, out.ID = frag.Box.Tag, frag.Box.ID
	}
	if frag.Line >= 0 {
		line := frag.Line
		out.FlexLine = &line
	}
	for _, child := range frag.Children {
		out.Children = append(out.Children, newFragmentOutput(child))
	}
	return out
}

func newOutput(pages []document.Page) output {
	out := output{Pages: make([]pageOutput, len(pages))}
	for i, page := range pages {
		out.Pages[i] = pageOutput{
			Width:  page.Width,
			Height: page.Height,
			Root:   newFragmentOutput(page.Root),
		}
	}
	return out
}

// writePages serializes the geometry of pages to w.
func writePages(w io.Writer, format string, pages []document.Page) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newOutput(pages)); err != nil {
			return fmt.Errorf("unable to encode pages: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("unable to encode pages: %w", err)
		}
	case formatText:
		t := tracer.NewWriterTracer(w)
		for i, page := range pages {
			t.DumpTree(page.Root, fmt.Sprintf("page %d (%g x %g)", i+1, page.Width, page.Height))
		}
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
	return nil
}
