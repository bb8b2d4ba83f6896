// Package page is the surface the catalog handlers render into.
//
// A Page owns the elements of one screen (the book list, the details pane,
// the message line) and provides the browser's blocking dialogs. Navigate
// replaces the whole page: every element is cleared and Path changes.
package page

// Paths of the catalog screens.
const (
	PathLogin    = "/login"
	PathRegister = "/register"
	PathBooks    = "/books"
)

// Entry is one rendered line of the book list. ID is the book the
// "View Details" action is bound to.
type Entry struct {
	ID    string
	Label string
}

// Details is the content of the book details pane.
type Details struct {
	ID      string
	Title   string
	Author  string
	Reviews int
}

// Page is implemented by Terminal for interactive use and by Script in tests.
type Page interface {
	// Path is the screen currently shown.
	Path() string
	// Navigate performs a full page navigation.
	Navigate(path string)

	// Alert shows a blocking message.
	Alert(msg string)
	// Prompt asks for a line of text. ok is false when the user cancels.
	Prompt(label string) (value string, ok bool)
	// Secret is Prompt with masked input.
	Secret(label string) (value string, ok bool)
	// Confirm asks a yes/no question.
	Confirm(label string) bool
	// Choose offers a menu. ok is false when the user cancels.
	Choose(label string, options []string) (index int, ok bool)

	// RenderList replaces the book list element.
	RenderList(entries []Entry)
	// RenderDetails replaces the details pane.
	RenderDetails(d Details)
	// SetMessage replaces the text of the message element.
	SetMessage(text string)
	// List returns the entries last rendered on this page.
	List() []Entry
}

// Outcome reports what a handler did with a user action.
type Outcome int

const (
	// Done means the request was made and succeeded.
	Done Outcome = iota
	// Failed means the request was made and failed.
	Failed
	// Aborted means no request was made.
	Aborted
)

func (o Outcome) String() string {
	switch o {
	case Done:
		return "done"
	case Failed:
		return "failed"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}
