// Command toon converts between JSON and toon text.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/toon-format/toon-go"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

var (
	verbose = cli.BoolFlag{
		Name:  "verbose",
		Usage: "Log debug information to stderr",
	}
	logFile = cli.StringFlag{
		Name:  "log-file",
		Usage: "Also write logs to this file, rotating it as it grows",
	}

	indent = cli.IntFlag{
		Name:  "indent",
		Usage: "Spaces per nesting level",
		Value: toon.DefaultIndent,
	}
	inline = cli.BoolFlag{
		Name:  "inline",
		Usage: "Write lists of scalars on a single line",
	}
	compact = cli.BoolFlag{
		Name:  "compact",
		Usage: "Write JSON without indentation",
	}
	output = cli.StringFlag{
		Name:  "output, o",
		Usage: "Write to this file instead of stdout",
	}
)

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// newApp builds the command line application. Input is read from stdin and
// results are written to stdout unless files are named.
func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	var log *zap.Logger

	app := cli.NewApp()
	app.Name = "toon"
	app.Version = "v0.1.0"
	app.Usage = "Convert between JSON and toon text"
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Flags = []cli.Flag{verbose, logFile}

	app.Before = func(c *cli.Context) error {
		log = newLogger(c.Bool(verbose.Name), c.String(logFile.Name), stderr)
		return nil
	}
	app.After = func(c *cli.Context) error {
		if log != nil {
			_ = log.Sync()
		}
		return nil
	}

	run := func(dir direction) func(c *cli.Context) error {
		return func(c *cli.Context) error {
			if c.NArg() > 1 {
				return errors.New("expected at most one input file")
			}
			if c.Int(indent.Name) < 0 {
				return errors.Errorf("invalid --indent %d: must not be negative", c.Int(indent.Name))
			}
			p := &processor{
				dir:     dir,
				inf:     c.Args().First(),
				outf:    c.String("output"),
				indent:  c.Int(indent.Name),
				inline:  c.Bool(inline.Name),
				compact: c.Bool(compact.Name),
				log:     log,
			}
			return p.run(stdin, stdout)
		}
	}

	app.Commands = []cli.Command{
		{
			Name:      "encode",
			Usage:     "Convert JSON to toon text",
			ArgsUsage: "[FILE]",
			Flags:     []cli.Flag{indent, inline, output},
			Action:    run(toToon),
		},
		{
			Name:      "decode",
			Usage:     "Convert toon text to JSON",
			ArgsUsage: "[FILE]",
			Flags:     []cli.Flag{indent, compact, output},
			Action:    run(toJSON),
		},
	}

	return app
}
