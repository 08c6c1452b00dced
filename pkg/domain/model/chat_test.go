package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/reportingbot/pkg/domain/model"
	"github.com/secmon-lab/reportingbot/pkg/domain/types"
)

func testResponder() *model.Responder {
	return model.NewResponder([]model.ReplyRule{
		{Name: "filings", All: []string{"report"}, Any: []string{"need", "file", "bank"}, Reply: model.Reply{Text: "filings"}},
		{Name: "basel", Any: []string{"basel", "capital"}, Reply: model.Reply{Text: "basel"}},
		{Name: "deadlines", Any: []string{"deadline", "corep", "submission"}, Reply: model.Reply{Text: "deadlines"}},
		{Name: "sample", Any: []string{"liquidity", "sample", "generate"}, Reply: model.Reply{Text: "sample"}},
	}, model.Reply{Text: "fallback"})
}

func TestResponder_Reply(t *testing.T) {
	r := testResponder()

	tests := []struct {
		input string
		want  string
	}{
		{input: "What regulatory reports does my bank need to file?", want: "filings"},
		{input: "What are the Basel III reporting requirements?", want: "basel"},
		{input: "When is the next COREP submission deadline?", want: "deadlines"},
		{input: "Generate a sample liquidity report", want: "sample"},
		{input: "report", want: "fallback"},
		{input: "CAPITAL buffers", want: "basel"},
		{input: "hello there", want: "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			gt.Value(t, r.Reply(tt.input).Text).Equal(tt.want)
		})
	}
}

func TestReplyRule_WithoutKeywordsNeverMatches(t *testing.T) {
	gt.Bool(t, model.ReplyRule{}.Matches("anything")).False()
}

func TestConversation(t *testing.T) {
	now := time.Date(2026, 2, 8, 9, 0, 0, 0, time.UTC)
	c := model.NewConversation("Welcome", now)
	gt.Array(t, c.Messages).Length(1)
	gt.Value(t, c.Messages[0].Role).Equal(types.ChatRoleBot)
	gt.Bool(t, c.Pending()).False()

	c.AppendUser("first", now)
	c.AppendUser("second", now)
	gt.Value(t, c.PendingReplies).Equal(2)

	c.AppendReply(model.Reply{
		Text:   "answer",
		Extras: []model.ChatExtra{{Kind: types.ExtraChecklist, Items: []string{"a"}}},
	}, now)
	gt.Bool(t, c.Pending()).True()
	c.AppendReply(model.Reply{Text: "answer"}, now)
	gt.Bool(t, c.Pending()).False()
	gt.Array(t, c.Messages).Length(5)

	// an unexpected reply never drives the counter negative
	c.AppendReply(model.Reply{Text: "late"}, now)
	gt.Value(t, c.PendingReplies).Equal(0)
}

func TestConversation_CloneIsDeep(t *testing.T) {
	now := time.Now()
	c := model.NewConversation("Welcome", now)
	c.AppendReply(model.Reply{
		Text:   "answer",
		Extras: []model.ChatExtra{{Kind: types.ExtraChecklist, Items: []string{"a"}}},
	}, now)

	copied := c.Clone()
	copied.Messages[1].Extras[0].Items[0] = "changed"
	copied.AppendUser("more", now)

	gt.Value(t, c.Messages[1].Extras[0].Items[0]).Equal("a")
	gt.Array(t, c.Messages).Length(2)
}
