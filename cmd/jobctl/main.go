// Command jobctl is a terminal client for the Hireboard job board. Each
// sub-command is one screen: it mounts a controller from the SDK, applies the
// user's action and prints the resulting state.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/Abraxas-365/hireboard/internal/config"
	"github.com/Abraxas-365/hireboard/pkg/errx"
	"github.com/Abraxas-365/hireboard/pkg/formx"
	"github.com/Abraxas-365/hireboard/pkg/listx"
	"github.com/Abraxas-365/hireboard/pkg/logx"
	"github.com/spf13/pflag"
)

const version = "0.4.0"

var out io.Writer = os.Stdout

// command is one screen of the CLI
type command struct {
	summary string
	run     func(ctx context.Context, app *Container, args []string) error
}

var commands = map[string]command{}

func register(name, summary string, run func(ctx context.Context, app *Container, args []string) error) {
	commands[name] = command{summary: summary, run: run}
}

func main() {
	flags := pflag.NewFlagSet("jobctl", pflag.ContinueOnError)
	flags.SetInterspersed(false)
	envFile := flags.String("env", ".env", "dotenv file to load")
	apiURL := flags.String("api-url", "", "API root (default HIREBOARD_API_URL)")
	yes := flags.BoolP("yes", "y", false, "answer yes to every confirmation")
	verbose := flags.BoolP("verbose", "v", false, "debug logging")
	flags.Usage = func() { usage(flags) }
	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	args := flags.Args()
	if len(args) == 0 {
		usage(flags)
		os.Exit(2)
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
		usage(flags)
		os.Exit(2)
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *apiURL != "" {
		cfg.API.BaseURL = *apiURL
	}
	logx.SetOutput(os.Stderr, true)
	logx.SetLevel(logx.ParseLevel(cfg.LogLevel))
	if *verbose {
		logx.SetLevel(logx.LevelDebug)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	confirmer := promptConfirmer(os.Stdin, os.Stderr)
	if *yes {
		confirmer = listx.AlwaysConfirm
	}

	app, err := NewContainer(ctx, cfg, confirmer)
	if err != nil {
		logx.Fatalf("Startup failed: %v", err)
	}
	defer app.Close()

	if err := cmd.run(ctx, app, args[1:]); err != nil {
		report(err)
		app.Close()
		stop()
		os.Exit(1)
	}
}

func usage(flags *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, "jobctl %s\n\nUsage: jobctl [flags] <command> [args]\n\nCommands:\n", version)
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %-22s %s\n", name, commands[name].summary)
	}
	fmt.Fprintf(os.Stderr, "\nFlags:\n%s", flags.FlagUsages())
}

// report prints err the way a screen would show it: field errors one per
// line, otherwise the server's message or a generic one
func report(err error) {
	logx.Debugf("command failed: %v", err)
	if errors.Is(err, listx.ErrNotConfirmed) {
		fmt.Fprintln(os.Stderr, "Cancelled.")
		return
	}

	e, ok := errx.As(err)
	switch {
	case !ok:
		fmt.Fprintln(os.Stderr, err)
	case errx.IsCode(err, formx.CodeInvalid):
		fmt.Fprintln(os.Stderr, e.Message+":")
		fields, _ := e.Details["fields"].([]formx.FieldError)
		for _, f := range fields {
			fmt.Fprintf(os.Stderr, "  - %s\n", f.Error())
		}
	case e.FromServer() || e.Type == errx.TypeExternal:
		fmt.Fprintln(os.Stderr, errx.UserMessage(err, "Something went wrong. Please try again."))
	default:
		fmt.Fprintln(os.Stderr, e.Message)
	}
}

// newFlags returns a flag set for a sub-command
func newFlags(name string) *pflag.FlagSet {
	return pflag.NewFlagSet(name, pflag.ContinueOnError)
}

// needArg returns the first positional argument or a usage error
func needArg(fs *pflag.FlagSet, what string) (string, error) {
	if fs.NArg() < 1 {
		return "", fmt.Errorf("missing %s", what)
	}
	return fs.Arg(0), nil
}
