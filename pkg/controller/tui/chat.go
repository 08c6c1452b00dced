package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/secmon-lab/reportingbot/pkg/domain/model"
	"github.com/secmon-lab/reportingbot/pkg/domain/types"
)

// Bot answers chat messages; satisfied by usecase.ChatUseCase
type Bot interface {
	Reply(text string) model.Reply
	TypingDelay() time.Duration
	QuickQuestions() []string
}

// replyMsg delivers a bot reply once its typing delay elapsed. Replies of
// an earlier generation were scheduled before a reset and are dropped.
type replyMsg struct {
	generation int
	reply      model.Reply
}

// Chat is the compliance assistant conversation
type Chat struct {
	bot        Bot
	welcome    string
	conv       *model.Conversation
	input      textinput.Model
	spinner    spinner.Model
	generation int
	now        func() time.Time
	quit       bool
}

// NewChat starts a conversation greeted by welcome
func NewChat(bot Bot, welcome string) *Chat {
	input := textinput.New()
	input.Placeholder = "Ask about regulatory reporting… (1-4 for quick questions)"
	input.CharLimit = 500
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Chat{
		bot:     bot,
		welcome: welcome,
		conv:    model.NewConversation(welcome, time.Now()),
		input:   input,
		spinner: sp,
		now:     time.Now,
	}
}

// Conversation returns the messages so far
func (m *Chat) Conversation() *model.Conversation {
	return m.conv
}

func (m *Chat) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Chat) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quit = true
			return m, tea.Quit
		case "ctrl+r":
			m.reset()
			return m, nil
		case "enter":
			return m, m.send(m.input.Value())
		}

		// Digits pick a quick question while the input is empty
		if m.input.Value() == "" && len(msg.Runes) == 1 {
			quick := m.bot.QuickQuestions()
			if idx := int(msg.Runes[0] - '1'); idx >= 0 && idx < len(quick) {
				return m, m.send(quick[idx])
			}
		}

	case replyMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		m.conv.AppendReply(msg.reply, m.now())
		return m, nil

	case spinner.TickMsg:
		if !m.conv.Pending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// send appends the visitor message and schedules the typed reply
func (m *Chat) send(text string) tea.Cmd {
	text = strings.TrimSpace(text)
	m.input.SetValue("")
	if text == "" {
		return nil
	}

	wasPending := m.conv.Pending()
	m.conv.AppendUser(text, m.now())

	generation := m.generation
	reply := m.bot.Reply(text)
	deliver := tea.Tick(m.bot.TypingDelay(), func(time.Time) tea.Msg {
		return replyMsg{generation: generation, reply: reply}
	})
	if wasPending {
		return deliver
	}
	return tea.Batch(deliver, m.spinner.Tick)
}

func (m *Chat) reset() {
	m.generation++
	m.conv = model.NewConversation(m.welcome, m.now())
	m.input.SetValue("")
}

func (m *Chat) View() string {
	if m.quit {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Compliance Bot"))
	b.WriteString("\n\n")

	for _, msg := range m.conv.Messages {
		b.WriteString(renderMessage(msg))
		b.WriteString("\n")
	}
	if m.conv.Pending() {
		b.WriteString(hintStyle.Render(m.spinner.View() + " Compliance Bot is typing…"))
		b.WriteString("\n")
	}

	if len(m.conv.Messages) <= 1 {
		b.WriteString("\n" + hintStyle.Render("Quick questions:") + "\n")
		for i, q := range m.bot.QuickQuestions() {
			b.WriteString(hintStyle.Render(fmt.Sprintf("  %d. %s", i+1, q)) + "\n")
		}
	}

	b.WriteString("\n" + m.input.View() + "\n")
	b.WriteString(hintStyle.Render("enter send · ctrl+r clear · esc quit"))
	return b.String()
}

func renderMessage(msg model.ChatMessage) string {
	if msg.Role == types.ChatRoleUser {
		return "  " + userStyle.Render(msg.Content)
	}

	lines := []string{botStyle.Render(msg.Content)}
	for _, extra := range msg.Extras {
		switch extra.Kind {
		case types.ExtraChecklist:
			for _, item := range extra.Items {
				lines = append(lines, selectedStyle.Render("  ✓ ")+item)
			}
		case types.ExtraWarning:
			for _, item := range extra.Items {
				lines = append(lines, warningStyle.Render("  ⚠ "+item))
			}
		case types.ExtraDownload:
			lines = append(lines, cursorStyle.Render("  ⬇ "+extra.Label))
		}
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}
