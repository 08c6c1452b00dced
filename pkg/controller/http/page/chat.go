package page

import (
	"github.com/secmon-lab/reportingbot/pkg/domain/model"
	"github.com/secmon-lab/reportingbot/pkg/domain/types"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Chat renders the compliance assistant conversation
func Chat(c *model.Conversation, quick []string) g.Node {
	return Section(
		ID("chat"),
		Div(
			Class("container chat"),
			sectionHeading("Compliance Bot", "Ask about filing obligations, Basel III, deadlines or sample reports."),
			Ul(
				Class("messages"),
				g.Group(g.Map(c.Messages, chatMessage)),
				g.If(c.Pending(), Li(Class("bot typing"), g.Text("Compliance Bot is typing…"))),
			),
			Div(
				Class("quick"),
				g.Group(g.Map(quick, func(q string) g.Node {
					return postButton("/chat/send", "message", q, "", false, g.Text(q))
				})),
			),
			Form(
				Method("post"),
				Action("/chat/send"),
				Input(
					Type("text"),
					Name("message"),
					Placeholder("Ask about regulatory reporting…"),
					AutoComplete("off"),
					Aria("label", "Message"),
				),
				Button(Type("submit"), Class("primary"), g.Text("Send")),
			),
			postButton("/chat/reset", "", "", "", false, g.Text("Clear conversation")),
		),
	)
}

func chatMessage(m model.ChatMessage) g.Node {
	return Li(
		Class(m.Role.String()),
		P(g.Text(m.Content)),
		g.Group(g.Map(m.Extras, chatExtra)),
	)
}

func chatExtra(e model.ChatExtra) g.Node {
	switch e.Kind {
	case types.ExtraChecklist:
		return Ul(g.Group(g.Map(e.Items, func(item string) g.Node {
			return Li(g.Text("✓ " + item))
		})))
	case types.ExtraWarning:
		return g.Group(g.Map(e.Items, func(item string) g.Node {
			return P(Class("extra-warning"), g.Text("⚠ "+item))
		}))
	case types.ExtraDownload:
		return Span(Class("extra-download"), g.Text("⬇ "+e.Label))
	default:
		return g.Group(nil)
	}
}
