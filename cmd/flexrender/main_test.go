package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
	yaml "gopkg.in/yaml.v3"

	pr "github.com/benoitkugler/flexrender/css/properties"
	"github.com/benoitkugler/flexrender/logger"
	tu "github.com/benoitkugler/flexrender/utils/testutils"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, cfg, defaultConfig())

	path := writeFile(t, "config.toml", `
log_level = "debug"
format = "text"

[page]
size = "100px 50px"
font_size = "2px"
`)
	cfg, err = loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, cfg, Config{
		LogLevel: "debug",
		Format:   formatText,
		Page:     PageConfig{Size: "100px 50px", FontSize: "2px"},
	})
}

func TestLoadConfigErrors(t *testing.T) {
	path := writeFile(t, "config.toml", `
log_level = "loud"
format = "pdf"
`)
	_, err := loadConfig(path)
	tu.AssertEqual(t, len(multierr.Errors(err)), 2)

	path = writeFile(t, "config.toml", `
colour = "red"
[page]
landscape = true
`)
	_, err = loadConfig(path)
	tu.AssertEqual(t, len(multierr.Errors(err)), 2)

	path = writeFile(t, "config.toml", `format = `)
	if _, err = loadConfig(path); err == nil {
		t.Fatal("expected error for invalid TOML")
	}
}

func TestPageStylesheet(t *testing.T) {
	tu.AssertEqual(t, PageConfig{}.stylesheet(), "")
	tu.AssertEqual(t, PageConfig{Size: "A5", Margin: "1px"}.stylesheet(), "<style>@page { size: A5; margin: 1px }</style>")
	tu.AssertEqual(t, PageConfig{FontSize: "2px"}.stylesheet(), "<style>html { font-size: 2px }</style>")
}

// runApp runs the command line with args, returning its output.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	defer logger.SetLevel(zapcore.InfoLevel)

	app := newApp()
	var out bytes.Buffer
	app.Writer = &out
	app.Reader = strings.NewReader("")
	err := app.Run(context.Background(), append([]string{"flexrender"}, args...))
	return out.String(), err
}

const sample = `<article style="display: flex"><div id="a" style="width: 10px; height: 5px"></div><div id="b" style="flex: 1"></div></article>`

func TestRunYAML(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	config := writeFile(t, "config.toml", "[page]\nsize = \"100px 50px\"\n")
	source := writeFile(t, "sample.html", sample)
	content, err := runApp(t, "-c", config, source)
	if err != nil {
		t.Fatal(err)
	}

	var got output
	if err = yaml.Unmarshal([]byte(content), &got); err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, len(got.Pages), 1)
	page := got.Pages[0]
	tu.AssertEqual(t, [2]pr.Float{page.Width, page.Height}, [2]pr.Float{100, 50})
	tu.AssertEqual(t, page.Root.Tag, "html")
	body := page.Root.Children[0]
	tu.AssertEqual(t, body.Tag, "body")
	article := body.Children[0]
	tu.AssertEqual(t, article.Tag, "article")
	tu.AssertEqual(t, article.FlexLine, (*int)(nil))

	zero := 0
	tu.AssertEqual(t, article.Children, []fragmentOutput{
		{Tag: "div", ID: "a", X: 0, Y: 0, Width: 10, Height: 5, FlexLine: &zero},
		{Tag: "div", ID: "b", X: 10, Y: 0, Width: 90, Height: 5, FlexLine: &zero},
	})
}

func TestRunText(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	dest := writeFile(t, "out.txt", "")
	source := writeFile(t, "sample.html", sample)
	content, err := runApp(t, "--format", "text", "-o", dest, source)
	if err != nil {
		t.Fatal(err)
	}
	tu.AssertEqual(t, content, "")

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "page 1") || !strings.Contains(string(data), "(flex line 0)") {
		t.Fatalf("unexpected output %s", data)
	}
}

func TestRunStdin(t *testing.T) {
	defer logger.SetLevel(zapcore.InfoLevel)
	defer tu.CaptureLogs().AssertNoLogs(t)

	app := newApp()
	var out bytes.Buffer
	app.Writer = &out
	app.Reader = strings.NewReader(sample)
	if err := app.Run(context.Background(), []string{"flexrender", "-"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "id: b") {
		t.Fatalf("unexpected output %s", out.String())
	}
}

func TestRunErrors(t *testing.T) {
	capture := tu.CaptureLogs()
	source := writeFile(t, "sample.html", `<div style="colour: red"></div>`)
	if _, err := runApp(t, "--strict", source); err == nil || !strings.Contains(err.Error(), "unsupported property colour") {
		t.Fatalf("unexpected error %v", err)
	}
	capture.CheckEqual([]string{"unsupported property colour"}, t)

	if _, err := runApp(t, "--format", "pdf", source); err == nil {
		t.Fatal("expected error for invalid format")
	}
	if _, err := runApp(t, filepath.Join(t.TempDir(), "missing.html")); err == nil {
		t.Fatal("expected error for missing source")
	}
}
