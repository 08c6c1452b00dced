package http

import (
	"net/http"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/reportingbot/pkg/controller/http/page"
	"github.com/secmon-lab/reportingbot/pkg/domain/types"
	"github.com/secmon-lab/reportingbot/pkg/usecase"
	"github.com/secmon-lab/reportingbot/pkg/utils/errutil"
	"github.com/secmon-lab/reportingbot/pkg/utils/logging"
)

func healthHandler(uc *usecase.UseCases) http.HandlerFunc {
	type response struct {
		Status   string `json:"status"`
		Sessions int    `json:"sessions"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := uc.Session.Count(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, response{Status: "ok", Sessions: n})
	}
}

func pageQuery(r *http.Request) page.Query {
	q := r.URL.Query()
	return page.Query{
		Region:   q.Get("region"),
		Delay:    q.Get("delay") == "1",
		Coverage: q.Get("coverage"),
	}
}

func (s *Server) landingHandler(w http.ResponseWriter, r *http.Request) {
	s.renderLanding(w, r, http.StatusOK, "")
}

// formRejected is shown above the page when a form post carried input the page never offers
const formRejected = "That action could not be applied. Please choose one of the offered options."

func (s *Server) renderLanding(w http.ResponseWriter, r *http.Request, status int, flash string) {
	ctx := r.Context()
	id := sessionIDFrom(ctx)
	q := pageQuery(r)

	checker, err := s.uc.Checker.Get(ctx, id)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, statusOf(err))
		return
	}
	chat, err := s.uc.Chat.Get(ctx, id)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, statusOf(err))
		return
	}
	cta, err := s.uc.CTA.Get(ctx, id)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, statusOf(err))
		return
	}
	dashboard, err := s.uc.Dashboard.Get(ctx, id)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, statusOf(err))
		return
	}

	view := &page.View{
		Query:          q,
		Flash:          flash,
		Site:           s.uc.Content.Site(),
		Checker:        checker,
		Chat:           chat,
		QuickQuestions: s.uc.Chat.QuickQuestions(),
		CTA:            cta,
		Dashboard:      dashboard,
		FormatMetric:   s.uc.Dashboard.FormatMetric,
		FormatRatio:    s.uc.Dashboard.FormatRatio,
		Timeline:       s.uc.Content.Timeline(q.Region, q.Delay),
		Coverage:       s.uc.Content.Coverage(q.Coverage),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := page.Landing(view).Render(w); err != nil {
		errutil.Handle(ctx, goerr.Wrap(err, "failed to render landing page"), "render error")
	}
}

// formDone answers a form post: back to the section on success. Bad input
// re-renders the page with a flash message and status 400.
func (s *Server) formDone(w http.ResponseWriter, r *http.Request, anchor string, err error) {
	if err == nil {
		http.Redirect(w, r, "/#"+anchor, http.StatusSeeOther)
		return
	}
	if !usecase.IsValidationError(err) {
		errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
		return
	}

	logging.From(r.Context()).Info("form input rejected", "section", anchor, "error", err)
	s.renderLanding(w, r, http.StatusBadRequest, formRejected)
}

func (s *Server) checkerAnswerForm(w http.ResponseWriter, r *http.Request) {
	step, err := strconv.Atoi(r.PostFormValue("step"))
	if err != nil {
		s.formDone(w, r, "checker", goerr.Wrap(usecase.ErrInvalidInput, "step is not a number", goerr.V("step", r.PostFormValue("step"))))
		return
	}
	_, err = s.uc.Checker.Select(r.Context(), sessionIDFrom(r.Context()), types.WizardStep(step), r.PostFormValue("value"))
	s.formDone(w, r, "checker", err)
}

func (s *Server) checkerNextForm(w http.ResponseWriter, r *http.Request) {
	_, err := s.uc.Checker.Next(r.Context(), sessionIDFrom(r.Context()))
	s.formDone(w, r, "checker", err)
}

func (s *Server) checkerBackForm(w http.ResponseWriter, r *http.Request) {
	_, err := s.uc.Checker.Back(r.Context(), sessionIDFrom(r.Context()))
	s.formDone(w, r, "checker", err)
}

func (s *Server) checkerResetForm(w http.ResponseWriter, r *http.Request) {
	_, err := s.uc.Checker.Reset(r.Context(), sessionIDFrom(r.Context()))
	s.formDone(w, r, "checker", err)
}

func (s *Server) chatSendForm(w http.ResponseWriter, r *http.Request) {
	_, err := s.uc.Chat.Send(r.Context(), sessionIDFrom(r.Context()), r.PostFormValue("message"))
	s.formDone(w, r, "chat", err)
}

func (s *Server) chatResetForm(w http.ResponseWriter, r *http.Request) {
	_, err := s.uc.Chat.Reset(r.Context(), sessionIDFrom(r.Context()))
	s.formDone(w, r, "chat", err)
}

func (s *Server) ctaStartForm(w http.ResponseWriter, r *http.Request) {
	_, err := s.uc.CTA.Start(r.Context(), sessionIDFrom(r.Context()))
	s.formDone(w, r, "cta", err)
}

func (s *Server) ctaAnswerForm(w http.ResponseWriter, r *http.Request) {
	_, err := s.uc.CTA.Answer(r.Context(), sessionIDFrom(r.Context()), r.PostFormValue("option"))
	s.formDone(w, r, "cta", err)
}

func (s *Server) ctaResetForm(w http.ResponseWriter, r *http.Request) {
	_, err := s.uc.CTA.Reset(r.Context(), sessionIDFrom(r.Context()))
	s.formDone(w, r, "cta", err)
}

func (s *Server) dashboardModeForm(w http.ResponseWriter, r *http.Request) {
	_, err := s.uc.Dashboard.SetMode(r.Context(), sessionIDFrom(r.Context()), r.PostFormValue("mode"))
	s.formDone(w, r, "dashboard", err)
}
