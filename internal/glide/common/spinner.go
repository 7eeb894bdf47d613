package common

import (
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glidekit/glide-cli/internal/glide/util"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type Spinner interface {
	// Update changes the spinner's displayed message.
	Update(message string)

	// Stop terminates the spinner and waits for it to finish.
	Stop()
}

// NewSpinner returns a [Spinner] for displaying animated status messages. A
// nil or discarded output gets a no-op spinner; a terminal gets a bubbletea
// program that redraws in place; anything else gets plain per-line messages.
func NewSpinner(output io.Writer, message string) Spinner {
	if output == nil || output == io.Discard {
		return nopSpinner{}
	}
	if util.IsTerminal(output) {
		return newAnimatedSpinner(output, message)
	}
	return newPlainSpinner(output, message)
}

type nopSpinner struct{}

func (nopSpinner) Update(message string) {}
func (nopSpinner) Stop()                 {}

type animatedSpinner struct {
	program *tea.Program
}

func newAnimatedSpinner(output io.Writer, message string) *animatedSpinner {
	program := tea.NewProgram(
		spinnerModel{message: message},
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithoutSignalHandler(),
	)

	go func() {
		if _, err := program.Run(); err != nil {
			fmt.Fprintf(output, "Error displaying output: %s\n", err)
		}
	}()

	return &animatedSpinner{program: program}
}

func (s *animatedSpinner) Update(message string) {
	s.program.Send(updateMsg(message))
}

func (s *animatedSpinner) Stop() {
	s.program.Quit()
	s.program.Wait()
}

// plainSpinner prints each distinct message on its own line, for non-TTY
// output.
type plainSpinner struct {
	output  io.Writer
	message string
}

func newPlainSpinner(output io.Writer, message string) *plainSpinner {
	s := &plainSpinner{output: output, message: message}
	fmt.Fprintln(s.output, s.message)
	return s
}

func (s *plainSpinner) Update(message string) {
	if message == s.message {
		return
	}
	s.message = message
	fmt.Fprintln(s.output, s.message)
}

func (s *plainSpinner) Stop() {}

type (
	tickMsg   struct{}
	updateMsg string
)

type spinnerModel struct {
	message string
	frame   int
}

func (m spinnerModel) Init() tea.Cmd {
	return m.tick()
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.frame = (m.frame + 1) % len(spinnerFrames)
		return m, m.tick()
	case updateMsg:
		m.message = string(msg)
	}
	return m, nil
}

func (m spinnerModel) View() string {
	return fmt.Sprintf("%s %s", spinnerFrames[m.frame], m.message)
}

func (m spinnerModel) tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}
