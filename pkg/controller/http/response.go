package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/secmon-lab/reportingbot/pkg/domain/model"
	"github.com/secmon-lab/reportingbot/pkg/usecase"
	"github.com/secmon-lab/reportingbot/pkg/utils/errutil"
	"github.com/secmon-lab/reportingbot/pkg/utils/safe"
)

type errorResponse struct {
	Error string `json:"error"`
}

// statusOf maps a use case error to its HTTP status
func statusOf(err error) int {
	switch {
	case usecase.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrSessionNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.EncodeJSON(r.Context(), w, v)
}

// writeError answers an API call. Client errors carry their message, server
// errors only the status text.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		errutil.Handle(r.Context(), err, "API request failed")
		writeJSON(w, r, status, errorResponse{Error: http.StatusText(status)})
		return
	}
	writeJSON(w, r, status, errorResponse{Error: err.Error()})
}

type checkerResponse struct {
	Step            int                 `json:"step"`
	StepLabel       string              `json:"step_label"`
	InstitutionType string              `json:"institution_type,omitempty"`
	Jurisdiction    string              `json:"jurisdiction,omitempty"`
	ReportingPeriod string              `json:"reporting_period,omitempty"`
	DataCategories  []string            `json:"data_categories"`
	ResultsVisible  bool                `json:"results_visible"`
	CanProceed      bool                `json:"can_proceed"`
	Moved           bool                `json:"moved"`
	Assessment      *assessmentResponse `json:"assessment,omitempty"`
}

type assessmentResponse struct {
	Score     int      `json:"score"`
	Band      string   `json:"band"`
	BandLabel string   `json:"band_label"`
	Missing   []string `json:"missing"`
	RiskNotes []string `json:"risk_notes"`
	NextSteps []string `json:"next_steps"`
}

func toCheckerResponse(st *usecase.CheckerState) checkerResponse {
	w := st.Wizard
	return checkerResponse{
		Step:            int(w.Step),
		StepLabel:       w.Step.Label(),
		InstitutionType: string(w.InstitutionType),
		Jurisdiction:    string(w.Jurisdiction),
		ReportingPeriod: string(w.ReportingPeriod),
		DataCategories:  categoryNames(w.DataCategories),
		ResultsVisible:  w.ResultsVisible,
		CanProceed:      st.CanProceed,
		Moved:           st.Moved,
		Assessment:      toAssessmentResponse(st.Assessment),
	}
}

func toAssessmentResponse(a *model.Assessment) *assessmentResponse {
	if a == nil {
		return nil
	}
	return &assessmentResponse{
		Score:     a.Score,
		Band:      a.Band.String(),
		BandLabel: a.Band.Label(),
		Missing:   categoryNames(a.Missing),
		RiskNotes: a.RiskNotes,
		NextSteps: a.NextSteps,
	}
}

func categoryNames(categories []model.DataCategory) []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.String()
	}
	return names
}

type conversationResponse struct {
	Messages []messageResponse `json:"messages"`
	Pending  bool              `json:"pending"`
}

type messageResponse struct {
	ID        string            `json:"id"`
	Role      string            `json:"role"`
	Content   string            `json:"content"`
	Extras    []model.ChatExtra `json:"extras,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

func toConversationResponse(c *model.Conversation) conversationResponse {
	resp := conversationResponse{
		Messages: make([]messageResponse, len(c.Messages)),
		Pending:  c.Pending(),
	}
	for i, m := range c.Messages {
		resp.Messages[i] = messageResponse{
			ID:        string(m.ID),
			Role:      m.Role.String(),
			Content:   m.Content,
			Extras:    m.Extras,
			CreatedAt: m.CreatedAt,
		}
	}
	return resp
}

type qualificationResponse struct {
	Started       bool            `json:"started"`
	Step          int             `json:"step"`
	Total         int             `json:"total"`
	Answers       []string        `json:"answers"`
	Pending       bool            `json:"pending"`
	ResultVisible bool            `json:"result_visible"`
	Question      *model.Question `json:"question,omitempty"`
	Summary       string          `json:"summary,omitempty"`
}

func toQualificationResponse(st *usecase.QualificationState) qualificationResponse {
	q := st.Qualification
	answers := q.Answers
	if answers == nil {
		answers = []string{}
	}
	return qualificationResponse{
		Started:       q.Started(),
		Step:          q.Step,
		Total:         st.Total,
		Answers:       answers,
		Pending:       q.Pending,
		ResultVisible: q.ResultVisible,
		Question:      st.Question,
		Summary:       st.Summary,
	}
}

type dashboardResponse struct {
	Mode            string           `json:"mode"`
	ModeLabel       string           `json:"mode_label"`
	Banner          bannerResponse   `json:"banner"`
	CapitalAdequacy []metricResponse `json:"capital_adequacy"`
	Liquidity       []metricResponse `json:"liquidity"`
	Exposures       []metricResponse `json:"exposures"`
	Errors          int              `json:"errors"`
	PrepTime        string           `json:"prep_time"`
	Accuracy        string           `json:"accuracy"`
	Ratios          []ratioResponse  `json:"ratios"`
}

type bannerResponse struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Speed  string `json:"speed"`
}

type metricResponse struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

type ratioResponse struct {
	Name         string  `json:"name"`
	Value        float64 `json:"value"`
	Min          float64 `json:"min"`
	MeetsMinimum bool    `json:"meets_minimum"`
}

func toDashboardResponse(v *usecase.DashboardView, format func(model.Metric) string) dashboardResponse {
	ds := v.Dataset
	metrics := func(ms []model.Metric) []metricResponse {
		resp := make([]metricResponse, len(ms))
		for i, m := range ms {
			resp[i] = metricResponse{Key: m.Key, Label: m.Label, Value: m.Value, Display: format(m)}
		}
		return resp
	}

	resp := dashboardResponse{
		Mode:            v.Mode.String(),
		ModeLabel:       v.Mode.Label(),
		Banner:          bannerResponse(ds.Banner),
		CapitalAdequacy: metrics(ds.CapitalAdequacy),
		Liquidity:       metrics(ds.Liquidity),
		Exposures:       metrics(ds.Exposures),
		Errors:          ds.Errors,
		PrepTime:        ds.PrepTime,
		Accuracy:        ds.Accuracy,
		Ratios:          make([]ratioResponse, len(ds.Ratios)),
	}
	for i, p := range ds.Ratios {
		resp.Ratios[i] = ratioResponse{Name: p.Name, Value: p.Value, Min: p.Min, MeetsMinimum: p.MeetsMinimum()}
	}
	return resp
}

type timelineResponse struct {
	Region        string           `json:"region"`
	RegionLabel   string           `json:"region_label"`
	SimulateDelay bool             `json:"simulate_delay"`
	Regions       []regionResponse `json:"regions"`
	Events        []eventResponse  `json:"events"`
	NextDeadline  string           `json:"next_deadline"`
}

type regionResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type eventResponse struct {
	ID            string `json:"id"`
	Report        string `json:"report"`
	Regulator     string `json:"regulator"`
	Deadline      string `json:"deadline"`
	DaysRemaining int    `json:"days_remaining"`
	Frequency     string `json:"frequency"`
	PenaltyRisk   string `json:"penalty_risk"`
	Description   string `json:"description"`
	Late          bool   `json:"late"`
	Risk          string `json:"risk"`
	Badge         string `json:"badge"`
	NoticeTitle   string `json:"notice_title"`
	Notice        string `json:"notice"`
}

func toTimelineResponse(v *usecase.TimelineView) timelineResponse {
	resp := timelineResponse{
		Region:        v.Region.Key,
		RegionLabel:   v.Region.Label,
		SimulateDelay: v.SimulateDelay,
		Regions:       make([]regionResponse, len(v.Regions)),
		Events:        make([]eventResponse, len(v.Events)),
		NextDeadline:  v.NextDeadline,
	}
	for i, r := range v.Regions {
		resp.Regions[i] = regionResponse{Key: r.Key, Label: r.Label}
	}
	for i, e := range v.Events {
		resp.Events[i] = eventResponse{
			ID:            e.ID,
			Report:        e.Report,
			Regulator:     e.Regulator,
			Deadline:      e.Deadline,
			DaysRemaining: e.DaysRemaining,
			Frequency:     e.Frequency,
			PenaltyRisk:   string(e.PenaltyRisk),
			Description:   e.Description,
			Late:          e.Late,
			Risk:          string(e.Risk),
			Badge:         e.Badge,
			NoticeTitle:   e.Notice.Title,
			Notice:        e.Notice.Text,
		}
	}
	return resp
}

type coverageResponse struct {
	Selected coverageRegionResponse   `json:"selected"`
	Regions  []coverageRegionResponse `json:"regions"`
}

type coverageRegionResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Flag       string   `json:"flag"`
	Regulators []string `json:"regulators"`
	Reports    []string `json:"reports"`
}

func toCoverageRegion(r model.CoverageRegion) coverageRegionResponse {
	return coverageRegionResponse{
		ID:         r.ID,
		Name:       r.Name,
		Flag:       r.Flag,
		Regulators: r.Regulators,
		Reports:    r.Reports,
	}
}

type comparisonResponse struct {
	Columns []string                `json:"columns"`
	Rows    []comparisonRowResponse `json:"rows"`
}

type comparisonRowResponse struct {
	Category string                   `json:"category"`
	Cells    []comparisonCellResponse `json:"cells"`
}

type comparisonCellResponse struct {
	Value string `json:"value"`
	Score string `json:"score"`
}

func toComparisonResponse(c model.Comparison) comparisonResponse {
	resp := comparisonResponse{
		Columns: c.Columns,
		Rows:    make([]comparisonRowResponse, len(c.Rows)),
	}
	for i, row := range c.Rows {
		cells := row.Cells()
		shape := comparisonRowResponse{Category: row.Category, Cells: make([]comparisonCellResponse, len(cells))}
		for j, cell := range cells {
			shape.Cells[j] = comparisonCellResponse{Value: cell.Value, Score: string(cell.Score)}
		}
		resp.Rows[i] = shape
	}
	return resp
}
