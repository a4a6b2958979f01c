package installer

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ModelStep collects the model name for the chosen provider. Leaving it
// empty keeps the built-in default.
type ModelStep struct {
	input    textinput.Model
	provider string
	ready    bool
}

func NewModelStep() Step {
	return &ModelStep{}
}

func (s *ModelStep) Init() tea.Cmd {
	return nil
}

func (s *ModelStep) initProvider(state *InstallState) {
	s.provider = state.Provider()

	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40

	switch s.provider {
	case "openai":
		ti.Placeholder = "gpt-4o-mini"
	case "openrouter":
		ti.Placeholder = "google/gemini-2.0-flash-exp:free"
	default:
		ti.Placeholder = "gemini-2.0-flash-exp"
	}

	s.input = ti
	s.ready = true
}

func (s *ModelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if !s.ready {
		s.initProvider(state)
		return s, textinput.Blink
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			if value := s.input.Value(); value != "" {
				switch s.provider {
				case "openai":
					state.Settings.OpenAIModel = value
				case "openrouter":
					state.Settings.OpenRouterModel = value
				default:
					state.Settings.GeminiModel = value
				}
			}
			return nil, nil
		}
	}
	return s, cmd
}

func (s *ModelStep) View(state *InstallState) string {
	if !s.ready {
		s.initProvider(state)
	}

	return fmt.Sprintf("Enter the model name for %s:\n\n%s\n\n(press enter to confirm, empty keeps the default)\n",
		s.provider, s.input.View())
}
