package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// promptFn prints the REPL prompt without a trailing newline.
var promptFn = fmt.Print

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Add(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Sync(ctx context.Context) error
	Refresh(ctx context.Context) error
	Queued(ctx context.Context) error
	Settings(ctx context.Context, args []string) error
	Vehicles(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
}

const helpText = `Available commands:
  (a)dd                  record a fill-up
  (l)ist                 show history, newest first
  show <id>              show one entry
  (s)ync                 send queued entries
  refresh                fetch history from the sheet
  queued                 number of queued entries
  settings [url <url> | test | reset]
  vehicles [add <label>]
  export [path] [upload] write an XLSX file, optionally upload it
  exit | quit`

// runREPL starts a simple read–eval–print loop for the fuel log CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Command handlers read their own prompts from
// the same reader. The loop exits on EOF, on "exit"/"quit", or when ctx is
// done.
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, showPrompt bool) {
	for {
		if ctx.Err() != nil {
			return
		}
		if showPrompt {
			promptFn(fmt.Sprintf("fuel %s> ", statusFn()))
		}

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help", "?":
			printlnFn(helpText)

		case "a", "add":
			_ = a.Add(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "show":
			_ = a.Show(ctx, args)

		case "s", "sync":
			_ = a.Sync(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "queued":
			_ = a.Queued(ctx)

		case "settings":
			_ = a.Settings(ctx, args)

		case "vehicles":
			_ = a.Vehicles(ctx, args)

		case "export":
			_ = a.Export(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
