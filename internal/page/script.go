package page

// Script is a Page driven by canned answers. It records everything a
// handler does so tests can assert on it.
type Script struct {
	// Answers feed Prompt and Secret in order; an exhausted queue cancels.
	Answers []string
	// Confirms feed Confirm in order; an exhausted queue declines.
	Confirms []bool
	// Choices feed Choose in order; an exhausted queue cancels.
	Choices []int

	Alerts      []string
	Prompts     []string
	Navigations []string
	Messages    []string
	Details     *Details
	ListRenders int

	path string
	list []Entry
}

// NewScript returns a Script starting at path.
func NewScript(path string) *Script {
	return &Script{path: path}
}

func (s *Script) Path() string { return s.path }

func (s *Script) Navigate(path string) {
	s.path = path
	s.list = nil
	s.Details = nil
	s.Navigations = append(s.Navigations, path)
}

func (s *Script) Alert(msg string) { s.Alerts = append(s.Alerts, msg) }

func (s *Script) Prompt(label string) (string, bool) {
	s.Prompts = append(s.Prompts, label)
	if len(s.Answers) == 0 {
		return "", false
	}
	v := s.Answers[0]
	s.Answers = s.Answers[1:]
	return v, true
}

func (s *Script) Secret(label string) (string, bool) { return s.Prompt(label) }

func (s *Script) Confirm(label string) bool {
	s.Prompts = append(s.Prompts, label)
	if len(s.Confirms) == 0 {
		return false
	}
	v := s.Confirms[0]
	s.Confirms = s.Confirms[1:]
	return v
}

func (s *Script) Choose(label string, options []string) (int, bool) {
	s.Prompts = append(s.Prompts, label)
	if len(s.Choices) == 0 {
		return 0, false
	}
	v := s.Choices[0]
	s.Choices = s.Choices[1:]
	if v < 0 || v >= len(options) {
		return 0, false
	}
	return v, true
}

func (s *Script) RenderList(entries []Entry) {
	s.list = entries
	s.ListRenders++
}

func (s *Script) RenderDetails(d Details) { s.Details = &d }

func (s *Script) SetMessage(text string) { s.Messages = append(s.Messages, text) }

func (s *Script) List() []Entry { return s.list }

// LastAlert returns the most recent alert, or "".
func (s *Script) LastAlert() string {
	if len(s.Alerts) == 0 {
		return ""
	}
	return s.Alerts[len(s.Alerts)-1]
}
