package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/reportingbot/pkg/domain/types"
	"github.com/secmon-lab/reportingbot/pkg/usecase"
	"github.com/secmon-lab/reportingbot/pkg/utils/safe"
)

// maxBodySize bounds JSON request bodies
const maxBodySize = 64 << 10

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	defer safe.Close(r.Context(), body)

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return goerr.Wrap(usecase.ErrInvalidInput, "malformed JSON body", goerr.V("cause", err.Error()))
	}
	return nil
}

func (s *Server) respondChecker(w http.ResponseWriter, r *http.Request, st *usecase.CheckerState, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toCheckerResponse(st))
}

func (s *Server) apiChecker(w http.ResponseWriter, r *http.Request) {
	st, err := s.uc.Checker.Get(r.Context(), sessionIDFrom(r.Context()))
	s.respondChecker(w, r, st, err)
}

func (s *Server) apiCheckerAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Step  *int   `json:"step"`
		Value string `json:"value"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Step == nil {
		writeError(w, r, goerr.Wrap(usecase.ErrInvalidInput, "step is required"))
		return
	}

	st, err := s.uc.Checker.Select(r.Context(), sessionIDFrom(r.Context()), types.WizardStep(*req.Step), req.Value)
	s.respondChecker(w, r, st, err)
}

func (s *Server) apiCheckerNext(w http.ResponseWriter, r *http.Request) {
	st, err := s.uc.Checker.Next(r.Context(), sessionIDFrom(r.Context()))
	s.respondChecker(w, r, st, err)
}

func (s *Server) apiCheckerBack(w http.ResponseWriter, r *http.Request) {
	st, err := s.uc.Checker.Back(r.Context(), sessionIDFrom(r.Context()))
	s.respondChecker(w, r, st, err)
}

func (s *Server) apiCheckerReset(w http.ResponseWriter, r *http.Request) {
	st, err := s.uc.Checker.Reset(r.Context(), sessionIDFrom(r.Context()))
	s.respondChecker(w, r, st, err)
}

func (s *Server) apiAssess(w http.ResponseWriter, r *http.Request) {
	var answers usecase.Answers
	if err := decodeJSON(w, r, &answers); err != nil {
		writeError(w, r, err)
		return
	}
	st, err := s.uc.Checker.Assess(r.Context(), answers)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toAssessmentResponse(st.Assessment))
}

func (s *Server) apiChat(w http.ResponseWriter, r *http.Request) {
	c, err := s.uc.Chat.Get(r.Context(), sessionIDFrom(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toConversationResponse(c))
}

func (s *Server) apiChatSend(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := s.uc.Chat.Send(r.Context(), sessionIDFrom(r.Context()), req.Message)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusAccepted, toConversationResponse(c))
}

func (s *Server) apiChatReset(w http.ResponseWriter, r *http.Request) {
	c, err := s.uc.Chat.Reset(r.Context(), sessionIDFrom(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toConversationResponse(c))
}

func (s *Server) respondCTA(w http.ResponseWriter, r *http.Request, st *usecase.QualificationState, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toQualificationResponse(st))
}

func (s *Server) apiCTA(w http.ResponseWriter, r *http.Request) {
	st, err := s.uc.CTA.Get(r.Context(), sessionIDFrom(r.Context()))
	s.respondCTA(w, r, st, err)
}

func (s *Server) apiCTAStart(w http.ResponseWriter, r *http.Request) {
	st, err := s.uc.CTA.Start(r.Context(), sessionIDFrom(r.Context()))
	s.respondCTA(w, r, st, err)
}

func (s *Server) apiCTAAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Option string `json:"option"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	st, err := s.uc.CTA.Answer(r.Context(), sessionIDFrom(r.Context()), req.Option)
	s.respondCTA(w, r, st, err)
}

func (s *Server) apiCTAReset(w http.ResponseWriter, r *http.Request) {
	st, err := s.uc.CTA.Reset(r.Context(), sessionIDFrom(r.Context()))
	s.respondCTA(w, r, st, err)
}

// apiDashboard returns the session's dashboard; a mode parameter switches it first
func (s *Server) apiDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := sessionIDFrom(ctx)

	var (
		view *usecase.DashboardView
		err  error
	)
	if mode := r.URL.Query().Get("mode"); mode != "" {
		view, err = s.uc.Dashboard.SetMode(ctx, id, mode)
	} else {
		view, err = s.uc.Dashboard.Get(ctx, id)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toDashboardResponse(view, s.uc.Dashboard.FormatMetric))
}

func (s *Server) apiTimeline(w http.ResponseWriter, r *http.Request) {
	q := pageQuery(r)
	writeJSON(w, r, http.StatusOK, toTimelineResponse(s.uc.Content.Timeline(q.Region, q.Delay)))
}

func (s *Server) apiCoverage(w http.ResponseWriter, r *http.Request) {
	v := s.uc.Content.Coverage(r.URL.Query().Get("region"))
	resp := coverageResponse{
		Selected: toCoverageRegion(v.Selected),
		Regions:  make([]coverageRegionResponse, len(v.Regions)),
	}
	for i, region := range v.Regions {
		resp.Regions[i] = toCoverageRegion(region)
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) apiComparison(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, toComparisonResponse(s.uc.Content.Comparison()))
}
