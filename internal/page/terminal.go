package page

import (
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
)

// Terminal renders pages to a terminal and asks questions with promptui.
type Terminal struct {
	in     io.ReadCloser
	out    io.WriteCloser
	styles Styles

	path    string
	list    []Entry
	details *Details
	message string
}

// NewTerminal returns a Terminal starting at path.
func NewTerminal(in io.ReadCloser, out io.WriteCloser, color bool, path string) *Terminal {
	return &Terminal{
		in:     in,
		out:    out,
		styles: NewStyles(out, color),
		path:   path,
	}
}

func (t *Terminal) Path() string { return t.path }

func (t *Terminal) Navigate(path string) {
	t.path = path
	t.list = nil
	t.details = nil
	t.message = ""
	if path != "" {
		fmt.Fprintln(t.out, t.styles.Nav.Render("→ "+path))
	}
}

func (t *Terminal) Alert(msg string) {
	fmt.Fprintln(t.out, t.styles.Alert.Render("! "+msg))
}

func (t *Terminal) Prompt(label string) (string, bool) {
	return t.ask(label, 0)
}

func (t *Terminal) Secret(label string) (string, bool) {
	return t.ask(label, '*')
}

func (t *Terminal) ask(label string, mask rune) (string, bool) {
	p := promptui.Prompt{
		Label:  strings.TrimSuffix(label, ":"),
		Mask:   mask,
		Stdin:  t.in,
		Stdout: t.out,
	}
	v, err := p.Run()
	if err != nil {
		return "", false
	}
	return v, true
}

func (t *Terminal) Confirm(label string) bool {
	p := promptui.Prompt{
		Label:     strings.TrimSuffix(label, "?"),
		IsConfirm: true,
		Stdin:     t.in,
		Stdout:    t.out,
	}
	_, err := p.Run()
	return err == nil
}

func (t *Terminal) Choose(label string, options []string) (int, bool) {
	s := promptui.Select{
		Label:  label,
		Items:  options,
		Size:   10,
		Stdin:  t.in,
		Stdout: t.out,
	}
	idx, _, err := s.Run()
	if err != nil {
		return 0, false
	}
	return idx, true
}

func (t *Terminal) RenderList(entries []Entry) {
	t.list = entries
	fmt.Fprintln(t.out, t.styles.Heading.Render("Books"))
	if len(entries) == 0 {
		fmt.Fprintln(t.out, t.styles.ID.Render("  (no books yet)"))
		return
	}
	for _, e := range entries {
		fmt.Fprintf(t.out, "  • %s %s\n", t.styles.Entry.Render(e.Label), t.styles.ID.Render("["+e.ID+"]"))
	}
}

func (t *Terminal) RenderDetails(d Details) {
	t.details = &d
	body := strings.Join([]string{
		t.styles.Heading.Render(d.Title),
		"Author: " + d.Author,
		fmt.Sprintf("Reviews: %d", d.Reviews),
	}, "\n")
	fmt.Fprintln(t.out, t.styles.Card.Render(body))
}

func (t *Terminal) SetMessage(text string) {
	t.message = text
	fmt.Fprintln(t.out, t.styles.Message.Render(text))
}

func (t *Terminal) List() []Entry { return t.list }
