package model

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/secmon-lab/reportingbot/pkg/domain/types"
)

// MessageID is a UUID-based identifier for ChatMessage
type MessageID string

// NewMessageID generates a new UUID v4 MessageID
func NewMessageID() MessageID {
	return MessageID(uuid.New().String())
}

// ChatExtra is an attachment rendered below a bot reply
type ChatExtra struct {
	Kind  types.ExtraKind `yaml:"type" json:"type"`
	Items []string        `yaml:"items,omitempty" json:"items,omitempty"`
	Label string          `yaml:"label,omitempty" json:"label,omitempty"`
}

// ChatMessage is one entry of a conversation
type ChatMessage struct {
	ID        MessageID
	Role      types.ChatRole
	Content   string
	Extras    []ChatExtra
	CreatedAt time.Time
}

// Conversation is an append-only message log with a count of replies still being "typed"
type Conversation struct {
	Messages       []ChatMessage
	PendingReplies int
}

// NewConversation starts a conversation with the bot's welcome message
func NewConversation(welcome string, now time.Time) *Conversation {
	c := &Conversation{}
	if welcome != "" {
		c.Messages = append(c.Messages, ChatMessage{
			ID:        NewMessageID(),
			Role:      types.ChatRoleBot,
			Content:   welcome,
			CreatedAt: now,
		})
	}
	return c
}

// Pending reports whether at least one bot reply is scheduled
func (c *Conversation) Pending() bool {
	return c.PendingReplies > 0
}

// AppendUser records a visitor message and marks a reply as pending
func (c *Conversation) AppendUser(text string, now time.Time) ChatMessage {
	msg := ChatMessage{
		ID:        NewMessageID(),
		Role:      types.ChatRoleUser,
		Content:   text,
		CreatedAt: now,
	}
	c.Messages = append(c.Messages, msg)
	c.PendingReplies++
	return msg
}

// AppendReply records a bot reply and settles one pending reply
func (c *Conversation) AppendReply(reply Reply, now time.Time) ChatMessage {
	msg := ChatMessage{
		ID:        NewMessageID(),
		Role:      types.ChatRoleBot,
		Content:   reply.Text,
		Extras:    cloneExtras(reply.Extras),
		CreatedAt: now,
	}
	c.Messages = append(c.Messages, msg)
	if c.PendingReplies > 0 {
		c.PendingReplies--
	}
	return msg
}

// Clone returns a deep copy
func (c *Conversation) Clone() *Conversation {
	if c == nil {
		return nil
	}
	copied := &Conversation{
		Messages:       make([]ChatMessage, len(c.Messages)),
		PendingReplies: c.PendingReplies,
	}
	for i, m := range c.Messages {
		m.Extras = cloneExtras(m.Extras)
		copied.Messages[i] = m
	}
	return copied
}

func cloneExtras(extras []ChatExtra) []ChatExtra {
	if extras == nil {
		return nil
	}
	copied := make([]ChatExtra, len(extras))
	for i, e := range extras {
		e.Items = slices.Clone(e.Items)
		copied[i] = e
	}
	return copied
}

// Reply is a canned bot answer
type Reply struct {
	Text   string      `yaml:"text" json:"text"`
	Extras []ChatExtra `yaml:"extras,omitempty" json:"extras,omitempty"`
}

// ReplyRule matches when the input contains every All keyword and, if Any
// is non-empty, at least one Any keyword. Matching is case-insensitive.
type ReplyRule struct {
	Name  string   `yaml:"name"`
	All   []string `yaml:"all,omitempty"`
	Any   []string `yaml:"any,omitempty"`
	Reply Reply    `yaml:"reply"`
}

// Matches checks the rule against already lower-cased input
func (r ReplyRule) Matches(lowered string) bool {
	for _, kw := range r.All {
		if !strings.Contains(lowered, strings.ToLower(kw)) {
			return false
		}
	}
	if len(r.Any) == 0 {
		return len(r.All) > 0
	}
	for _, kw := range r.Any {
		if strings.Contains(lowered, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// Responder picks the first matching canned reply
type Responder struct {
	rules    []ReplyRule
	fallback Reply
}

// NewResponder creates a Responder evaluating rules in order
func NewResponder(rules []ReplyRule, fallback Reply) *Responder {
	return &Responder{
		rules:    rules,
		fallback: fallback,
	}
}

// Reply returns the canned answer for input
func (r *Responder) Reply(input string) Reply {
	lowered := strings.ToLower(input)
	for _, rule := range r.rules {
		if rule.Matches(lowered) {
			return rule.Reply
		}
	}
	return r.fallback
}
