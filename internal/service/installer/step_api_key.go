package installer

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func newKeyInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.Placeholder = placeholder
	return ti
}

// GeminiKeyStep collects the Gemini API key. It always runs because
// the passage index uses Gemini embeddings whatever provider answers.
type GeminiKeyStep struct {
	input textinput.Model
}

func NewGeminiKeyStep() Step {
	return &GeminiKeyStep{input: newKeyInput("AIza...")}
}

func (s *GeminiKeyStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *GeminiKeyStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			state.Settings.GeminiAPIKey = s.input.Value()
			return nil, nil
		}
	}
	return s, cmd
}

func (s *GeminiKeyStep) View(state *InstallState) string {
	return "Enter your Gemini API Key (used for embeddings):\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}

// ProviderKeyStep collects the answer provider's API key. Skipped when
// the provider is Gemini since that key is already collected.
type ProviderKeyStep struct {
	input    textinput.Model
	provider string
	title    string
}

func NewProviderKeyStep() Step {
	return &ProviderKeyStep{}
}

func (s *ProviderKeyStep) Init() tea.Cmd {
	return nil
}

func (s *ProviderKeyStep) initProvider(state *InstallState) bool {
	s.provider = state.Provider()

	switch s.provider {
	case "openai":
		s.title = "OpenAI API Key"
		s.input = newKeyInput("sk-...")
	case "openrouter":
		s.title = "OpenRouter API Key"
		s.input = newKeyInput("sk-or-v1-...")
	default:
		return false
	}
	return true
}

func (s *ProviderKeyStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.provider == "" {
		if !s.initProvider(state) {
			return nil, nil
		}
		return s, textinput.Blink
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			switch s.provider {
			case "openai":
				state.Settings.OpenAIAPIKey = s.input.Value()
			case "openrouter":
				state.Settings.OpenRouterAPIKey = s.input.Value()
			}
			return nil, nil
		}
	}
	return s, cmd
}

func (s *ProviderKeyStep) View(state *InstallState) string {
	if s.provider == "" {
		if !s.initProvider(state) {
			return "Loading..."
		}
	}

	return fmt.Sprintf("Enter your %s:\n\n%s\n\n(press enter to confirm)\n",
		s.title, s.input.View())
}
