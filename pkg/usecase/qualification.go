package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/reportingbot/pkg/domain/model"
	"github.com/secmon-lab/reportingbot/pkg/utils/async"
	"github.com/secmon-lab/reportingbot/pkg/utils/logging"
)

// QualificationUseCase drives the call-to-action stepper
type QualificationUseCase struct {
	uc *UseCases
}

// QualificationState is the stepper plus the current question
type QualificationState struct {
	Qualification *model.Qualification
	Question      *model.Question
	Total         int
	Summary       string
}

func (q *QualificationUseCase) state(st *model.Qualification) *QualificationState {
	questions := q.uc.content.CTA.Questions
	result := &QualificationState{
		Qualification: st,
		Total:         len(questions),
	}
	if !st.ResultVisible && st.Step >= 0 && st.Step < len(questions) {
		question := questions[st.Step]
		result.Question = &question
	}
	if st.ResultVisible {
		result.Summary = summarize(st)
	}
	return result
}

func summarize(st *model.Qualification) string {
	return fmt.Sprintf("Based on your profile as a %s filing %s reports per quarter, we've prepared a tailored compliance package.",
		st.Answered(0), st.Answered(2))
}

// Get returns the stepper of the session
func (q *QualificationUseCase) Get(ctx context.Context, id model.SessionID) (*QualificationState, error) {
	sess, err := q.uc.repo.Session().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get session", goerr.V(SessionIDKey, id))
	}
	return q.state(sess.Qualification), nil
}

// Start shows the first question
func (q *QualificationUseCase) Start(ctx context.Context, id model.SessionID) (*QualificationState, error) {
	sess, err := q.uc.update(ctx, id, func(s *model.Session) error {
		s.Qualification.Start()
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to start qualification", goerr.V(SessionIDKey, id))
	}
	return q.state(sess.Qualification), nil
}

// Answer records option for the current question. The stepper moves on
// after the processing delay; answers while it is pending are ignored.
func (q *QualificationUseCase) Answer(ctx context.Context, id model.SessionID, option string) (*QualificationState, error) {
	questions := q.uc.content.CTA.Questions
	key := schedulerKey(id, ctaSchedulerScope)

	sess, err := q.uc.update(ctx, id, func(s *model.Session) error {
		accepted, err := s.Qualification.Answer(option, questions)
		if err != nil || !accepted {
			return err
		}

		scheduled := q.uc.scheduler.Schedule(ctx, key, q.uc.ctaDelay, func(ctx context.Context, task async.Task) error {
			return q.proceed(ctx, id, task)
		})
		if !scheduled {
			s.Qualification.Proceed(len(questions))
		}
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to answer qualification",
			goerr.V(SessionIDKey, id), goerr.V(model.OptionKey, option))
	}

	logging.From(ctx).Debug("qualification answered", "session_id", id, "step", sess.Qualification.Step)
	return q.state(sess.Qualification), nil
}

func (q *QualificationUseCase) proceed(ctx context.Context, id model.SessionID, task async.Task) error {
	_, err := q.uc.update(ctx, id, func(s *model.Session) error {
		if !task.Claim() {
			return goerr.Wrap(async.ErrCancelled, "qualification step cancelled")
		}
		s.Qualification.Proceed(len(q.uc.content.CTA.Questions))
		return nil
	})
	if errors.Is(err, model.ErrSessionNotFound) {
		return nil
	}
	return err
}

// Reset cancels any pending step and returns to the not-started state
func (q *QualificationUseCase) Reset(ctx context.Context, id model.SessionID) (*QualificationState, error) {
	sess, err := q.uc.update(ctx, id, func(s *model.Session) error {
		q.uc.scheduler.Cancel(schedulerKey(id, ctaSchedulerScope))
		s.Qualification.Reset()
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to reset qualification", goerr.V(SessionIDKey, id))
	}
	return q.state(sess.Qualification), nil
}
