package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/studynotes/internal/client/client"
	"github.com/dmitrijs2005/studynotes/internal/client/config"
	"github.com/dmitrijs2005/studynotes/internal/common"
)

var ErrUsage = errors.New("usage: studynotes [flags] [register | login | upload <file> [branch] [subject] | history | download <out.pdf>]")

type App struct {
	config   *config.Config
	api      client.Client
	reader   *bufio.Reader
	out      io.Writer
	email    string
	loggedIn bool
}

func NewApp(c *config.Config) (*App, error) {
	api, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}
	return newApp(c, api, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, api client.Client, in io.Reader, out io.Writer) *App {
	return &App{config: c, api: api, reader: bufio.NewReader(in), out: out, email: c.Email}
}

// Run executes the command named in the positional arguments, or starts the
// interactive shell when there is none.
func (a *App) Run(ctx context.Context) error {
	if len(a.config.Args) == 0 {
		if err := a.api.Ping(ctx); err != nil {
			fmt.Fprintf(a.out, "Warning: %v\n", err)
		}
		runREPL(ctx, a, a.status, bufio.NewScanner(a.reader))
		return nil
	}
	return a.runCommand(ctx, a.config.Args)
}

func (a *App) runCommand(ctx context.Context, args []string) error {
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "upload", "history", "download":
	default:
		return ErrUsage
	}

	if err := a.Login(ctx); err != nil {
		return err
	}

	switch cmd {
	case "upload":
		if len(rest) == 0 {
			return ErrUsage
		}
		return a.Upload(ctx, rest[0], rest[1:]...)
	case "history":
		return a.History(ctx)
	default:
		if len(rest) != 1 {
			return ErrUsage
		}
		return a.Download(ctx, rest[0])
	}
}

func (a *App) isLoggedIn() bool {
	return a.loggedIn
}

func (a *App) status() string {
	if a.loggedIn {
		return a.email
	}
	return "not logged in"
}

// credentials prompts for whatever is not configured yet. The caller wipes the
// returned password.
func (a *App) credentials() (string, []byte, error) {
	email := a.email
	if email == "" {
		var err error
		email, err = GetSimpleText(a.reader, "Enter email", a.out)
		if err != nil {
			return "", nil, err
		}
	}
	pw, err := GetPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return email, pw, nil
}

func (a *App) Register(ctx context.Context) error {
	email, pw, err := a.credentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	if err := a.api.Register(ctx, email, pw); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	a.email = email
	a.loggedIn = true
	fmt.Fprintf(a.out, "Registered and logged in as %s\n", email)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, pw, err := a.credentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	if err := a.api.Login(ctx, email, pw); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	a.email = email
	a.loggedIn = true
	fmt.Fprintf(a.out, "Logged in as %s\n", email)
	return nil
}

// Upload sends a .pdf or .txt file for processing. Branch and subject are
// taken from opt when given and prompted for otherwise.
func (a *App) Upload(ctx context.Context, path string, opt ...string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	labels := []string{"Enter branch", "Enter subject"}
	values := make([]string, len(labels))
	for i, prompt := range labels {
		if i < len(opt) {
			values[i] = opt[i]
			continue
		}
		if values[i], err = GetSimpleText(a.reader, prompt, a.out); err != nil {
			return err
		}
	}

	res, err := a.api.Upload(ctx, filepath.Base(path), f, values[0], values[1])
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	fmt.Fprintf(a.out, "Summary:\n%s\n", res.Summary)
	if len(res.Questions) > 0 {
		fmt.Fprintln(a.out, "Questions:")
		for i, q := range res.Questions {
			fmt.Fprintf(a.out, "%d. %s\n", i+1, q)
		}
	}
	return nil
}

func (a *App) History(ctx context.Context) error {
	items, err := a.api.History(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No uploads yet")
		return nil
	}

	for _, h := range items {
		fmt.Fprintf(a.out, "%s  %-20s %-20s %s\n", h.CreatedAt.Local().Format("2006-01-02 15:04"), h.Branch, h.Subject, h.Filename)
		if s := strings.TrimSpace(h.Summary); s != "" {
			fmt.Fprintf(a.out, "    %s\n", s)
		}
	}
	return nil
}

// Download saves the latest report to path. The file is only created once
// the server confirms there is a report.
func (a *App) Download(ctx context.Context, path string) error {
	var buf bytes.Buffer
	if _, err := a.api.DownloadReport(ctx, &buf); err != nil {
		if errors.Is(err, client.ErrNoData) {
			fmt.Fprintln(a.out, "No data available")
			return nil
		}
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Report saved to %s\n", path)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.api.Logout(ctx); err != nil {
		return err
	}
	a.loggedIn = false
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
