package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/tuannm99/tinysql/internal"
	"github.com/tuannm99/tinysql/internal/sql/executor"
	"github.com/tuannm99/tinysql/sqlclient"
)

// backend executes a script and returns one result per executed statement.
// *sqlclient.Client satisfies it directly.
type backend interface {
	Exec(script string) ([]*executor.Result, error)
	Close() error
}

type localBackend struct {
	ex *executor.Executor
}

func (b localBackend) Exec(script string) ([]*executor.Result, error) {
	return b.ex.ExecScript(script)
}

func (localBackend) Close() error { return nil }

// runScript executes script and prints every result produced before a
// failure, then returns the failure.
func runScript(w io.Writer, p *executor.Printer, b backend, script string) error {
	results, err := b.Exec(script)
	return p.Report(w, results, err)
}

func main() {
	var (
		cfgPath  = flag.String("config", "", "path to YAML config file")
		command  = flag.String("c", "", "execute the given script and exit")
		addr     = flag.String("addr", "", "run against a tinysql server instead of an in-process database")
		timeout  = flag.Duration("timeout", 3*time.Second, "dial timeout for -addr")
		histPath = flag.String("history", defaultHistoryPath(), "REPL history file path")
		histMax  = flag.Int("history-max", 2000, "max history lines loaded into memory")
	)
	flag.Parse()

	if err := run(*cfgPath, *command, *addr, *timeout, *histPath, *histMax, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

func run(cfgPath, command, addr string, timeout time.Duration, histPath string, histMax int, args []string) error {
	cfg, err := internal.LoadConfig(cfgPath)
	if err != nil {
		return err
	}
	lvl, _ := cfg.LogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))

	var b backend
	if addr != "" {
		c, err := sqlclient.Dial(addr, timeout)
		if err != nil {
			return fmt.Errorf("dial %s: %w", addr, err)
		}
		b = c
	} else {
		b = localBackend{ex: cfg.NewSession()}
	}
	defer func() { _ = b.Close() }()

	p := executor.NewPrinter(cfg.Output.ColumnWidth)

	switch {
	case strings.TrimSpace(command) != "":
		return runScript(os.Stdout, p, b, command)
	case len(args) > 0:
		src, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		return runScript(os.Stdout, p, b, string(src))
	default:
		return repl(b, p, cfg.AppName, addr, histPath, histMax)
	}
}
