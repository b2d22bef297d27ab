package screens

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/organize-files/internal/config"
	"github.com/joe/organize-files/internal/organizer"
	"github.com/joe/organize-files/internal/tui/shared"
)

// Form fields, in focus order.
const (
	FieldSource = iota
	FieldDest
	FieldPattern
	FieldDelimiter
	FieldPolicy
	fieldCount
)

// textFieldCount is the number of fields backed by a text input.
const textFieldCount = FieldPolicy

//nolint:gochecknoglobals // Fixed cycle order for the policy selector
var policyCycle = []config.ConflictPolicy{config.Ask, config.Skip, config.Rename, config.Overwrite}

// InputScreen collects the folders and options for a run
type InputScreen struct {
	config          *config.Config
	inputs          [textFieldCount]textinput.Model
	policy          config.ConflictPolicy
	focusIndex      int
	completions     []string
	completionIndex int
	showCompletions bool
	validationError string
}

// NewInputScreen creates a new input screen prefilled from cfg
func NewInputScreen(cfg *config.Config) *InputScreen {
	s := &InputScreen{config: cfg, policy: cfg.Policy}

	placeholders := [textFieldCount]string{
		"/path/to/source or sftp://user@host/path",
		"/path/to/destination",
		config.DefaultPattern,
		config.DefaultDelimiter,
	}
	values := [textFieldCount]string{cfg.SourcePath, cfg.DestPath, cfg.Pattern, cfg.Delimiter}

	for i := range s.inputs {
		input := textinput.New()
		input.Placeholder = placeholders[i]
		input.Prompt = shared.PromptBlank
		input.SetValue(values[i])
		s.inputs[i] = input
	}

	s.inputs[FieldSource].Focus()
	s.inputs[FieldSource].Prompt = shared.PromptArrow

	return s
}

// Focused returns the index of the focused field (for testing)
func (s InputScreen) Focused() int {
	return s.focusIndex
}

// Policy returns the selected conflict policy (for testing)
func (s InputScreen) Policy() config.ConflictPolicy {
	return s.policy
}

// ValidationError returns the current validation message (for testing)
func (s InputScreen) ValidationError() string {
	return s.validationError
}

// Value returns the text of a field (for testing)
func (s InputScreen) Value(field int) string {
	if field == FieldPolicy {
		return s.policy.String()
	}

	return s.inputs[field].Value()
}

// Init implements tea.Model
func (s InputScreen) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (s InputScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		width := max(msg.Width-shared.InputWidthMargin, shared.MinInputWidth)
		for i := range s.inputs {
			s.inputs[i].Width = width
		}

		return s, nil
	case tea.KeyMsg:
		return s.handleKeyMsg(msg)
	}

	return s.updateFocused(msg)
}

// View implements tea.Model
func (s InputScreen) View() string {
	labels := [fieldCount]string{"Source Folder:", "Destination Folder:", "File Pattern:", "Delimiter:", "If a file exists:"}

	var builder strings.Builder

	builder.WriteString(shared.RenderTitle("File Organizer"))
	builder.WriteString("\n")
	builder.WriteString(shared.RenderSubtitle("Files are copied into folders named after the parts of their names"))
	builder.WriteString("\n")

	for i := range s.inputs {
		builder.WriteString(shared.RenderLabel(labels[i]) + "\n" + s.inputs[i].View() + "\n")

		if i == s.focusIndex && s.isPathField() && s.showCompletions && len(s.completions) > 0 {
			builder.WriteString(formatCompletionList(s.completions, s.completionIndex) + "\n")
		}

		builder.WriteString("\n")
	}

	builder.WriteString(shared.RenderLabel(labels[FieldPolicy]) + "\n" + s.renderPolicySelector() + "\n")

	if s.validationError != "" {
		builder.WriteString("\n" + shared.RenderError("Error: "+s.validationError) + "\n")
	}

	builder.WriteString("\n" + shared.RenderSubtitle(
		"Tab to complete folders • ↑↓ to switch fields • ←→ to change policy • Enter to continue • Esc to clear field • Ctrl+C to exit")) //nolint:lll // Help text with keyboard shortcuts

	return shared.RenderBox(builder.String())
}

func (s InputScreen) applyCompletion(completion string) InputScreen {
	s.inputs[s.focusIndex].SetValue(completion)
	s.inputs[s.focusIndex].CursorEnd()

	return s
}

func (s InputScreen) handleEnter() (tea.Model, tea.Cmd) {
	s.showCompletions = false

	if s.focusIndex != FieldPolicy {
		return s.moveFocus(1)
	}

	return s.submit()
}

//nolint:cyclop // Key dispatch table
func (s InputScreen) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case shared.KeyCtrlC:
		return s, tea.Quit
	case "esc":
		if s.focusIndex != FieldPolicy {
			s.inputs[s.focusIndex].SetValue("")
		}

		s.showCompletions = false
		s.validationError = ""

		return s, nil
	case "down", "ctrl+n":
		return s.moveFocus(1)
	case "up", "ctrl+p":
		return s.moveFocus(-1)
	case "tab":
		if s.isPathField() {
			return s.handleTabCompletion(), nil
		}

		return s.moveFocus(1)
	case "shift+tab":
		if s.isPathField() && s.showCompletions {
			return s.cycleCompletion(-1), nil
		}

		return s.moveFocus(-1)
	case "right":
		if s.focusIndex == FieldPolicy {
			return s.cyclePolicy(1), nil
		}

		if s.showCompletions && len(s.completions) > 0 {
			return s.acceptCompletion(), nil
		}
	case "left":
		if s.focusIndex == FieldPolicy {
			return s.cyclePolicy(-1), nil
		}
	case " ":
		if s.focusIndex == FieldPolicy {
			return s.cyclePolicy(1), nil
		}
	case "enter":
		return s.handleEnter()
	}

	s.showCompletions = false
	s.validationError = ""

	return s.updateFocused(msg)
}

// acceptCompletion takes the highlighted folder and lists its subfolders.
func (s InputScreen) acceptCompletion() InputScreen {
	current := s.completions[s.completionIndex]
	s = s.applyCompletion(current)
	s.showCompletions = false

	s.completions = getFolderCompletions(current)
	if len(s.completions) > 0 {
		s.completionIndex = 0
		s.showCompletions = true
		s = s.applyCompletion(s.completions[0])
	}

	return s
}

func (s InputScreen) cycleCompletion(step int) InputScreen {
	if len(s.completions) == 0 {
		return s
	}

	s.completionIndex = (s.completionIndex + step + len(s.completions)) % len(s.completions)

	return s.applyCompletion(s.completions[s.completionIndex])
}

func (s InputScreen) cyclePolicy(step int) InputScreen {
	idx := 0

	for i, p := range policyCycle {
		if p == s.policy {
			idx = i
			break
		}
	}

	s.policy = policyCycle[(idx+step+len(policyCycle))%len(policyCycle)]
	s.validationError = ""

	return s
}

func (s InputScreen) handleTabCompletion() InputScreen {
	if s.showCompletions {
		return s.cycleCompletion(1)
	}

	s.completions = getFolderCompletions(s.inputs[s.focusIndex].Value())
	s.completionIndex = 0
	s.showCompletions = true

	// A single match completes immediately
	if len(s.completions) == 1 {
		s = s.applyCompletion(s.completions[0])
		s.showCompletions = false
	}

	return s
}

func (s InputScreen) isPathField() bool {
	return s.focusIndex == FieldSource || s.focusIndex == FieldDest
}

func (s InputScreen) moveFocus(step int) (tea.Model, tea.Cmd) {
	next := s.focusIndex + step
	if next < 0 || next >= fieldCount {
		return s, nil
	}

	if s.focusIndex != FieldPolicy {
		s.inputs[s.focusIndex].Blur()
		s.inputs[s.focusIndex].Prompt = shared.PromptBlank
	}

	s.focusIndex = next
	s.showCompletions = false
	s.validationError = ""

	if next == FieldPolicy {
		return s, nil
	}

	s.inputs[next].Prompt = shared.PromptArrow

	return s, s.inputs[next].Focus()
}

func (s InputScreen) renderPolicySelector() string {
	parts := make([]string, 0, len(policyCycle))

	for _, p := range policyCycle {
		if p == s.policy {
			parts = append(parts, shared.CompletionSelectedStyle().Render("["+p.String()+"]"))
		} else {
			parts = append(parts, shared.CompletionStyle().Render(" "+p.String()+" "))
		}
	}

	prompt := shared.PromptBlank
	if s.focusIndex == FieldPolicy {
		prompt = shared.PromptArrow
	}

	return prompt + strings.Join(parts, " ")
}

// submit copies the form into the config, validates it and starts a run.
func (s InputScreen) submit() (tea.Model, tea.Cmd) {
	cfg := s.config
	cfg.SourcePath = strings.TrimSpace(s.inputs[FieldSource].Value())
	cfg.DestPath = strings.TrimSpace(s.inputs[FieldDest].Value())
	cfg.Pattern = s.inputs[FieldPattern].Value()
	cfg.Delimiter = s.inputs[FieldDelimiter].Value()
	cfg.Policy = s.policy
	cfg.Conflict = s.policy.String()

	if cfg.Pattern == "" {
		cfg.Pattern = config.DefaultPattern
	}

	if cfg.SourcePath == "" || cfg.DestPath == "" {
		s.validationError = "please select both source and destination folders"
		return s, nil
	}

	if err := cfg.ValidateOptions(); err != nil {
		s.validationError = err.Error()
		return s, nil
	}

	if err := cfg.ValidatePaths(); err != nil {
		s.validationError = err.Error()
		return s, nil
	}

	req := organizer.Request{
		SourceRoot: cfg.SourcePath,
		DestRoot:   cfg.DestPath,
		Pattern:    cfg.Pattern,
		Delimiter:  cfg.Delimiter,
		Policy:     cfg.Policy,
	}

	return s, func() tea.Msg {
		return shared.StartRunMsg{Request: req}
	}
}

func (s InputScreen) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if s.focusIndex == FieldPolicy {
		return s, nil
	}

	var cmd tea.Cmd
	s.inputs[s.focusIndex], cmd = s.inputs[s.focusIndex].Update(msg)

	return s, cmd
}
