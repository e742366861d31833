package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/poiesic/smartfind"
	"github.com/poiesic/smartfind/batch"
	"github.com/poiesic/smartfind/dom"
	"github.com/poiesic/smartfind/finder"
	"github.com/poiesic/smartfind/highlight"
	"github.com/poiesic/smartfind/host"
	"github.com/poiesic/smartfind/toolbar"
	"github.com/urfave/cli/v2"
	"golang.org/x/net/html"
)

// contextWidth is how many characters of text are shown on each side of a match.
const contextWidth = 40

const browseHelp = `Commands:
  /toggle        open or close the search toolbar
  search [WORD]  search for WORD (or the toolbar input) and related terms
  n, next        go to the next match
  p, prev        go to the previous match
  status         show the toolbar status
  close          close the toolbar and remove highlights
  save PATH      write the page with its highlights to PATH
  quit           leave`

var (
	matchStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	promptText = lipgloss.NewStyle().Faint(true).Render("smartfind> ")
)

// statusStyle colors a status line the way the toolbar does.
func statusStyle(s toolbar.Status) lipgloss.Style {
	style := lipgloss.NewStyle()
	if color := s.Kind.Color(); color != "" {
		style = style.Foreground(lipgloss.Color(color))
	}
	if s.Kind == toolbar.KindError {
		style = style.Bold(true)
	}
	return style
}

func browseCommand(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return errors.New("exactly one file is required")
	}
	path := c.Args().First()

	doc, err := batch.ReadDocument(path)
	if err != nil {
		return err
	}

	svc, err := openService(c, false)
	if err != nil {
		return err
	}
	defer svc.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	b, err := newBrowser(svc, doc.Root, "file://"+abs, c.App.Writer)
	if err != nil {
		return err
	}
	return b.run(c.Context, c.App.Reader)
}

// browser is an interactive session over one page.
type browser struct {
	registry *host.Registry
	host     *host.Host
	tab      host.Tab
	out      io.Writer
}

func newBrowser(svc *smartfind.Service, doc *html.Node, url string, out io.Writer) (*browser, error) {
	b := &browser{
		registry: host.NewRegistry(),
		tab:      host.Tab{ID: 1, URL: url},
		out:      out,
	}
	b.registry.Open(b.tab, doc)

	viewport := highlight.ViewportFunc(func(el *html.Node, _ highlight.ScrollOptions) {
		fmt.Fprintf(b.out, "  %s\n", matchContext(el, contextWidth))
	})
	h, err := svc.NewHost(b.registry, []finder.Option{finder.WithViewport(viewport)})
	if err != nil {
		return nil, err
	}
	b.host = h
	return b, nil
}

// finder returns the page's finder once the toolbar has been toggled on.
func (b *browser) finder() (*finder.Finder, bool) {
	f, ok := b.registry.Listener(b.tab.ID).(*finder.Finder)
	return f, ok
}

func (b *browser) run(ctx context.Context, in io.Reader) error {
	fmt.Fprintln(b.out, browseHelp)
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(b.out, promptText)
		if !scanner.Scan() {
			break
		}
		quit, err := b.exec(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintln(b.out, statusStyle(toolbar.Error("")).Render(err.Error()))
		}
		if quit {
			break
		}
	}
	if f, ok := b.finder(); ok {
		f.Unload()
	}
	return scanner.Err()
}

// exec runs one command line and reports whether the session should end.
func (b *browser) exec(ctx context.Context, line string) (bool, error) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "":
		return false, nil
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		fmt.Fprintln(b.out, browseHelp)
		return false, nil
	case "/toggle", "toggle":
		if err := b.host.HandleCommand(ctx, host.CommandTriggerSearch); err != nil {
			return false, err
		}
		if f, ok := b.finder(); ok && f.State().Open {
			b.printStatus(f.State().Status)
		} else {
			fmt.Fprintln(b.out, "Search closed")
		}
		return false, nil
	}

	f, ok := b.finder()
	if !ok {
		return false, errors.New("search is not active, type /toggle first")
	}

	switch cmd {
	case "search", "s", "/":
		var err error
		if arg == "" {
			_, err = f.Submit(ctx)
		} else {
			_, err = f.Search(ctx, arg)
		}
		if errors.Is(err, finder.ErrNotOpen) {
			return false, errors.New("search is not active, type /toggle first")
		}
		b.printStatus(f.State().Status)
	case "n", "next":
		f.Next()
		b.printStatus(f.State().Status)
	case "p", "prev":
		f.Previous()
		b.printStatus(f.State().Status)
	case "status":
		state := f.State()
		b.printStatus(state.Status)
		if len(state.Terms) > 0 {
			fmt.Fprintf(b.out, "  terms: %s\n", strings.Join(state.Terms, ", "))
		}
	case "close":
		f.Close()
		fmt.Fprintln(b.out, "Search closed")
	case "save":
		if arg == "" {
			return false, errors.New("save needs a path")
		}
		if err := os.WriteFile(arg, []byte(f.Render()), 0o644); err != nil {
			return false, fmt.Errorf("failed to save page: %w", err)
		}
		fmt.Fprintf(b.out, "Saved %s\n", arg)
	default:
		return false, fmt.Errorf("unknown command %q, type help", cmd)
	}
	return false, nil
}

func (b *browser) printStatus(s toolbar.Status) {
	if s.Text == "" {
		return
	}
	fmt.Fprintln(b.out, statusStyle(s).Render(s.Text))
}

// matchContext renders the text around a marked element on one line.
func matchContext(el *html.Node, width int) string {
	block := dom.Closest(el.Parent, func(n *html.Node) bool {
		return !dom.HasClass(n, highlight.WrapperClass)
	})
	if block == nil {
		return matchStyle.Render(dom.TextContent(el))
	}

	var before, after strings.Builder
	seen := false
	for t := range dom.TextNodes(block, dom.NonContent) {
		switch {
		case t.Parent == el:
			seen = true
		case !seen:
			before.WriteString(t.Data)
		default:
			after.WriteString(t.Data)
		}
	}
	return lastRunes(oneLine(before.String()), width) +
		matchStyle.Render(dom.TextContent(el)) +
		firstRunes(oneLine(after.String()), width)
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

func oneLine(s string) string {
	return lineBreaks.Replace(s)
}

func firstRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "…"
}

func lastRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return "…" + string(r[len(r)-n:])
}
