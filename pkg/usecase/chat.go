package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/reportingbot/pkg/domain/model"
	"github.com/secmon-lab/reportingbot/pkg/utils/async"
	"github.com/secmon-lab/reportingbot/pkg/utils/logging"
)

// ChatUseCase runs the compliance assistant demo. Bot replies land after a
// simulated typing delay through the scheduler.
type ChatUseCase struct {
	uc        *UseCases
	responder *model.Responder
}

// chatLog keeps visitor text out of logs unless redaction is disabled
type chatLog struct {
	SessionID model.SessionID `json:"session_id"`
	Text      string          `json:"text" masq:"secret"`
}

// Get returns the conversation of the session
func (c *ChatUseCase) Get(ctx context.Context, id model.SessionID) (*model.Conversation, error) {
	sess, err := c.uc.repo.Session().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get session", goerr.V(SessionIDKey, id))
	}
	return sess.Chat, nil
}

// QuickQuestions returns the canned prompts offered as one-click sends
func (c *ChatUseCase) QuickQuestions() []string {
	return c.uc.content.Chat.QuickQuestions
}

// Reply answers text immediately, without any session or delay
func (c *ChatUseCase) Reply(text string) model.Reply {
	return c.responder.Reply(text)
}

// TypingDelay returns the delay before the next bot reply
func (c *ChatUseCase) TypingDelay() time.Duration {
	return c.uc.chatDelay + c.uc.jitter(c.uc.chatJitter)
}

// Send appends the visitor message and schedules the bot reply. Blank text
// is ignored. Sending again while a reply is pending is allowed; every
// message gets its own reply.
func (c *ChatUseCase) Send(ctx context.Context, id model.SessionID, text string) (*model.Conversation, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return c.Get(ctx, id)
	}

	reply := c.responder.Reply(text)
	delay := c.TypingDelay()
	key := schedulerKey(id, chatSchedulerScope)

	sess, err := c.uc.update(ctx, id, func(s *model.Session) error {
		now := c.uc.now()
		s.Chat.AppendUser(text, now)

		// Scheduling inside the update orders it against a concurrent reset
		scheduled := c.uc.scheduler.Schedule(ctx, key, delay, func(ctx context.Context, task async.Task) error {
			return c.deliver(ctx, id, task, reply)
		})
		if !scheduled {
			s.Chat.AppendReply(reply, now)
		}
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to send chat message", goerr.V(SessionIDKey, id))
	}

	logging.From(ctx).Info("chat message received",
		slog.Any("message", chatLog{SessionID: id, Text: text}),
		slog.Duration("delay", delay),
	)
	return sess.Chat, nil
}

func (c *ChatUseCase) deliver(ctx context.Context, id model.SessionID, task async.Task, reply model.Reply) error {
	_, err := c.uc.update(ctx, id, func(s *model.Session) error {
		if !task.Claim() {
			return goerr.Wrap(async.ErrCancelled, "chat reply cancelled")
		}
		s.Chat.AppendReply(reply, c.uc.now())
		return nil
	})
	if errors.Is(err, model.ErrSessionNotFound) {
		logging.From(ctx).Debug("chat reply dropped for expired session", "session_id", id)
		return nil
	}
	return err
}

// Reset starts a new conversation and cancels pending replies
func (c *ChatUseCase) Reset(ctx context.Context, id model.SessionID) (*model.Conversation, error) {
	sess, err := c.uc.update(ctx, id, func(s *model.Session) error {
		c.uc.scheduler.Cancel(schedulerKey(id, chatSchedulerScope))
		s.Chat = model.NewConversation(c.uc.content.Chat.Welcome, c.uc.now())
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to reset chat", goerr.V(SessionIDKey, id))
	}
	return sess.Chat, nil
}
