// Command flexrender lays out an HTML document and prints the geometry
// of its pages.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"

	"github.com/benoitkugler/flexrender/html/document"
	"github.com/benoitkugler/flexrender/html/tree"
	"github.com/benoitkugler/flexrender/logger"
	"github.com/benoitkugler/flexrender/version"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:            "flexrender",
		Usage:           "lays out an HTML document and prints the geometry of its pages",
		Version:         version.VersionString,
		HideHelpCommand: true,
		ArgsUsage:       "[SOURCE]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (TOML)"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "output `TYPE` (yaml or text), overrides the configuration"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write the pages to `FILE` instead of STDOUT"},
			&cli.BoolFlag{Name: "verbose", Usage: "log the layout steps"},
			&cli.BoolFlag{Name: "strict", Usage: "fail when some input is ignored"},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) (err error) {
	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.IsSet("format") {
		cfg.Format = cmd.String("format")
	}
	if cmd.Bool("verbose") {
		cfg.LogLevel = "debug"
	}
	if err = cfg.validate(); err != nil {
		return fmt.Errorf("unable to prepare configuration: %w", err)
	}
	level, _ := logger.ParseLevel(cfg.LogLevel)
	logger.SetLevel(level)

	source := cmd.Args().First()
	content, err := readSource(source, cmd.Reader)
	if err != nil {
		return err
	}

	doc, err := tree.Parse(cfg.Page.stylesheet() + content)
	if err != nil {
		return fmt.Errorf("unable to parse %s: %w", sourceName(source), err)
	}
	if doc.Warnings != nil && cmd.Bool("strict") {
		return fmt.Errorf("ignored input in %s: %w", sourceName(source), doc.Warnings)
	}
	pages := document.Render(doc)

	out := cmd.Writer
	if path := cmd.String("output"); path != "" {
		f, er := os.Create(path)
		if er != nil {
			return fmt.Errorf("unable to create output: %w", er)
		}
		defer func() {
			if er := f.Close(); er != nil {
				err = multierr.Append(err, fmt.Errorf("unable to close output: %w", er))
			}
		}()
		out = f
	}
	return writePages(out, cfg.Format, pages)
}

func sourceName(source string) string {
	if source == "" || source == "-" {
		return "STDIN"
	}
	return source
}

// readSource reads the file at source, or stdin if source is empty or "-".
func readSource(source string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if source == "" || source == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return "", fmt.Errorf("unable to read %s: %w", sourceName(source), err)
	}
	return string(data), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newApp().Run(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
