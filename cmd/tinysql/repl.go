package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"

	"github.com/tuannm99/tinysql/internal/sql/executor"
)

const (
	promptMain = "tinysql> "
	promptCont = "...> "
)

var (
	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7C3AED")).
			Bold(true)
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444"))
	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))
)

const helpText = `meta commands:
  \q | quit | exit       quit
  \tables                list tables
  \history               print history
  \help                  show help

sql:
  statements end with ';'
  multiline is supported (input is buffered until ';')`

func repl(b backend, p *executor.Printer, appName, addr, histPath string, histMax int) error {
	h := NewHistory(histPath)
	if err := h.Load(histMax); err != nil {
		fmt.Fprintln(os.Stderr, hintStyle.Render("history: "+err.Error()))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          promptMain,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer func() { _ = rl.Close() }()

	for _, line := range h.lines {
		_ = rl.SaveHistory(line)
	}

	out := rl.Stdout()
	where := "in-memory database"
	if addr != "" {
		where = addr
	}
	fmt.Fprintln(out, bannerStyle.Render(fmt.Sprintf("%s (%s)", appName, where)))
	fmt.Fprintln(out, hintStyle.Render(`type \help for help`))

	var buf strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			// Ctrl+C drops the pending statement.
			if buf.Len() > 0 {
				buf.Reset()
				rl.SetPrompt(promptMain)
			}
			continue
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if buf.Len() == 0 && isMetaCommand(line) {
			if quit := runMeta(out, b, p, h, line); quit {
				return nil
			}
			continue
		}

		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(line)

		if !statementComplete(buf.String()) {
			rl.SetPrompt(promptCont)
			continue
		}

		script := buf.String()
		buf.Reset()
		rl.SetPrompt(promptMain)

		_ = h.Append(script)
		_ = rl.SaveHistory(compactOneLine(script))

		if err := runScript(out, p, b, script); err != nil {
			fmt.Fprintln(out, errorStyle.Render("error: "+err.Error()))
		}
	}
}

// runMeta handles a backslash command and reports whether the REPL should exit.
func runMeta(w io.Writer, b backend, p *executor.Printer, h *History, line string) bool {
	switch line {
	case `\q`, "quit", "exit":
		return true
	case `\help`:
		fmt.Fprintln(w, helpText)
	case `\tables`:
		if err := runScript(w, p, b, "SHOW TABLES;"); err != nil {
			fmt.Fprintln(w, errorStyle.Render("error: "+err.Error()))
		}
	case `\history`:
		h.Print(w, 50)
	default:
		fmt.Fprintln(w, errorStyle.Render("unknown command: "+line))
	}
	return false
}
