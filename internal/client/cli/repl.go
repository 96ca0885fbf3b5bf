package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Upload(ctx context.Context, path string, opt ...string) error
	History(ctx context.Context) error
	Download(ctx context.Context, path string) error
	Logout(ctx context.Context) error
}

// runREPL reads commands line by line from scanner and dispatches them to a.
// The loop exits on EOF or on "exit"/"quit".
//
//	Not logged in:
//	  help, register, login, exit
//
//	Logged in:
//	  help, upload <file> [branch] [subject], history, download <out.pdf>,
//	  logout, exit
//
// Handler errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("sn> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: upload <file> [branch] [subject], history, download <out.pdf>, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "upload", "history", "download", "logout":
			if !a.isLoggedIn() {
				printlnFn("Please login first")
				continue
			}
			switch cmd {
			case "upload":
				if len(args) == 0 {
					printlnFn("Usage: upload <file> [branch] [subject]")
					continue
				}
				err = a.Upload(ctx, args[0], args[1:]...)
			case "history":
				err = a.History(ctx)
			case "download":
				if len(args) != 1 {
					printlnFn("Usage: download <out.pdf>")
					continue
				}
				err = a.Download(ctx, args[0])
			default:
				err = a.Logout(ctx)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}
