package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/mattn/go-shellwords"
)

type access int

const (
	anyone access = iota
	loggedIn
	adminOnly
)

type command struct {
	name   string
	usage  string
	help   string
	access access
	run    func(a *App, ctx context.Context, args []string) error
}

// commands lists every REPL command in help order.
var commands = []command{
	{name: "register", help: "create an account", access: anyone, run: (*App).Register},
	{name: "login", usage: "[username]", help: "start a session", access: anyone, run: (*App).Login},
	{name: "logout", help: "end the session", access: loggedIn, run: (*App).Logout},
	{name: "whoami", help: "show the current session", access: anyone, run: (*App).WhoAmI},
	{name: "list", usage: "[query]", help: "list notes, optionally filtered by name", access: loggedIn, run: (*App).List},
	{name: "show", usage: "<id> <out-path>", help: "save a note to a file", access: loggedIn, run: (*App).Show},
	{name: "usage", help: "show storage usage", access: loggedIn, run: (*App).Usage},
	{name: "upload", usage: "<path>", help: "upload a PDF", access: adminOnly, run: (*App).Upload},
	{name: "delete", usage: "<id>", help: "delete a note", access: adminOnly, run: (*App).Delete},
	{name: "prune", help: "repair index and content divergence", access: adminOnly, run: (*App).Prune},
	{name: "admins", help: "list administrators", access: adminOnly, run: (*App).Admins},
	{name: "promote", usage: "<username>", help: "grant administrator rights", access: adminOnly, run: (*App).Promote},
	{name: "revoke", usage: "<username>", help: "remove administrator rights", access: adminOnly, run: (*App).Revoke},
}

func findCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

// errUsage makes the REPL print the command's usage line.
var errUsage = errors.New("usage")

// runREPL reads commands from a.reader until "exit", "quit" or end of
// input. Command errors are printed and the loop goes on.
func runREPL(ctx context.Context, a *App) {
	for {
		fmt.Fprintf(a.out, "notes (%s)> ", a.status())
		line, err := readLine(a.reader)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				a.logger.Error(ctx, "error reading input", "error", err)
			}
			a.println()
			return
		}

		parts, err := splitLine(line)
		if err != nil {
			a.println("Error:", err.Error())
			continue
		}
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "exit", "quit":
			a.println("Bye!")
			return
		case "help":
			a.printHelp()
			continue
		}

		cmd, ok := findCommand(name)
		if !ok {
			a.println("Unknown command:", name)
			continue
		}
		if err := a.dispatch(ctx, cmd, args); err != nil {
			if errors.Is(err, errUsage) {
				a.println("Usage:", strings.TrimSpace(cmd.name+" "+cmd.usage))
				continue
			}
			a.println("Error:", err.Error())
		}
	}
}

// splitLine breaks a command line into words. Single or double quotes keep
// a path with spaces together.
func splitLine(line string) ([]string, error) {
	parts, err := shellwords.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("cannot parse command line: %w", err)
	}
	return parts, nil
}

func (a *App) dispatch(ctx context.Context, cmd command, args []string) error {
	switch cmd.access {
	case loggedIn:
		if !a.isLoggedIn() {
			return fmt.Errorf("%w: please log in first", common.ErrorUnauthorized)
		}
	case adminOnly:
		if !a.isAdmin() {
			return fmt.Errorf("%w: administrator rights required", common.ErrorUnauthorized)
		}
	}
	return cmd.run(a, ctx, args)
}

func (a *App) printHelp() {
	a.println("Available commands:")
	for _, c := range commands {
		if !a.allowed(c) {
			continue
		}
		a.printf("  %-28s %s\n", strings.TrimSpace(c.name+" "+c.usage), c.help)
	}
	a.printf("  %-28s %s\n", "help", "show this list")
	a.printf("  %-28s %s\n", "exit", "leave the program")
}

func (a *App) allowed(c command) bool {
	switch c.access {
	case loggedIn:
		return a.isLoggedIn()
	case adminOnly:
		return a.isAdmin()
	default:
		return true
	}
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
