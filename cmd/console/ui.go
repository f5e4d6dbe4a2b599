package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/hide-and-seek/pkg/game"
	"github.com/jwebster45206/hide-and-seek/pkg/house"
	"github.com/muesli/reflow/wordwrap"
)

const PlaceHolderText = "North, check, save mygame..."

// turn is one command and what came of it.
type turn struct {
	prompt string
	input  string
	result string
	hint   string
}

// ConsoleUI is the BubbleTea model that runs the game.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	ctx            context.Context
	controller     *game.Controller
	logger         *slog.Logger
	chatViewport   viewport.Model
	statusViewport viewport.Model
	textarea       textarea.Model
	turns          []turn
	notice         string
	ready          bool
	width          int
	height         int

	showQuitModal bool
}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	statusPanelStyle = lipgloss.NewStyle().
				PaddingTop(2).
				PaddingBottom(0).
				PaddingLeft(0).
				PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

func NewConsoleUI(ctx context.Context, controller *game.Controller, logger *slog.Logger) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	statusVp := viewport.New(20, 20)

	return ConsoleUI{
		ctx:            ctx,
		controller:     controller,
		logger:         logger,
		textarea:       ta,
		chatViewport:   chatVp,
		statusViewport: statusVp,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

// submit runs one command through the controller and records the turn.
func (m *ConsoleUI) submit(input string) {
	t := turn{
		prompt: m.controller.Prompt(),
		input:  input,
		result: m.controller.ParseInput(m.ctx, input),
	}
	if t.result == game.MsgInvalidDirection {
		if d, ok := house.SuggestDirection(input); ok {
			t.hint = fmt.Sprintf("Did you mean %s?", d)
		}
	}
	m.turns = append(m.turns, t)
	m.notice = ""
}

func (m *ConsoleUI) copyStatus() {
	if err := clipboard.WriteAll(m.controller.Status()); err != nil {
		m.logger.Warn("Failed to copy status to clipboard", "error", err)
		m.notice = "Could not copy to the clipboard."
		return
	}
	m.notice = "Status copied to the clipboard."
}

// writeChatContent rebuilds the transcript for the current viewport width.
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6
	if chatWidth < 20 {
		chatWidth = 20
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("HIDE AND SEEK") + "\n\n")
	content.WriteString(wordwrap.String(fmt.Sprintf(
		"%d opponents are hiding somewhere in the house. Move by typing a direction, type 'check' to search a hiding place, or 'save'/'load' followed by a name.",
		len(m.controller.Opponents())), chatWidth) + "\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", chatWidth)) + "\n\n")

	for _, t := range m.turns {
		content.WriteString(promptStyle.Render(strings.TrimSpace(t.prompt)) + " " + userStyle.Render(t.input) + "\n")
		content.WriteString(resultStyle.Render(wordwrap.String(t.result, chatWidth)) + "\n")
		if t.hint != "" {
			content.WriteString(hintStyle.Render(t.hint) + "\n")
		}
		content.WriteString("\n")
	}

	if m.controller.GameOver() {
		content.WriteString(winStyle.Render(fmt.Sprintf("You won the game in %d moves!", m.controller.MoveNumber())) + "\n")
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func (m ConsoleUI) writeStatus() string {
	width := m.statusViewport.Width
	if width < 10 {
		width = 10
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("STATUS") + "\n\n")
	content.WriteString(wordwrap.String(m.controller.Status(), width) + "\n\n")
	content.WriteString(fmt.Sprintf("Move: %d\n\n", m.controller.MoveNumber()))

	if m.notice != "" {
		content.WriteString(hintStyle.Render(m.notice) + "\n\n")
	}

	content.WriteString("Commands:\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• Ctrl+Y: Copy status\n")
	content.WriteString("• Esc: Quit\n")
	return content.String()
}

func (m *ConsoleUI) refresh() {
	m.writeChatContent()
	m.statusViewport.SetContent(m.writeStatus())
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		chatWidth := int(float64(m.width)*0.65) - 4
		statusWidth := m.width - chatWidth - 6

		m.chatViewport.Width = chatWidth - 2
		m.chatViewport.Height = m.height - 7
		m.statusViewport.Width = statusWidth - 2
		m.statusViewport.Height = m.height - 4
		m.textarea.SetWidth(chatWidth - 4)

		m.ready = true
		m.refresh()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyCtrlY:
			m.copyStatus()
			m.refresh()
			return m, nil
		case tea.KeyEnter:
			input := strings.TrimSpace(m.textarea.Value())
			m.textarea.Reset()
			if input == "" {
				return m, nil
			}
			m.submit(input)
			m.refresh()
			return m, nil
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd)
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Unsaved progress will be lost. Type 'save <name>' first to keep it.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.65) - 4
	statusWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(chatWidth-4, 0))),
			m.textarea.View(),
		),
	)

	statusPanel := statusPanelStyle.Width(statusWidth).Height(m.height - 2).Render(
		m.statusViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, statusPanel)
}
