// Command tomldoc inspects and edits TOML files without disturbing their
// comments or layout.
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

const version = "0.1.0"

// CLI defines the command-line interface for tomldoc.
type CLI struct {
	Verbose bool `short:"v" help:"Log debug output to stderr"`

	Check   CheckCmd   `cmd:"" help:"Parse files and verify they print back unchanged"`
	Ls      LsCmd      `cmd:"" help:"List the entries of a file"`
	Get     GetCmd     `cmd:"" help:"Print the raw value of a dotted key"`
	Rm      RmCmd      `cmd:"" help:"Remove an entry by index"`
	Add     AddCmd     `cmd:"" help:"Add a key/value pair"`
	Dump    DumpCmd    `cmd:"" help:"Print the data of a file as YAML"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// Env carries the streams and logger every command writes to.
type Env struct {
	Stdout io.Writer
	Stderr io.Writer
	Log    *slog.Logger
	Paint  *painter
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// run parses args and executes the selected command. It returns the
// process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	var cli CLI
	status := -1
	parser, err := kong.New(&cli,
		kong.Name("tomldoc"),
		kong.Description("Lossless TOML inspection and editing"),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { status = code }),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	if err != nil {
		panic(err)
	}
	ctx, err := parser.Parse(args)
	if status >= 0 {
		return status
	}
	if err != nil {
		parser.Errorf("%s", err)
		return 2
	}

	env := &Env{
		Stdout: stdout,
		Stderr: stderr,
		Log:    newLogger(stderr, cli.Verbose),
		Paint:  newPainter(stderr),
	}
	if err := ctx.Run(env); err != nil {
		if err != errReported {
			env.Paint.errorf("error: %s", err)
		}
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
