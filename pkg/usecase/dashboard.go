package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/reportingbot/pkg/domain/model"
	"github.com/secmon-lab/reportingbot/pkg/domain/types"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// percentMetrics are shown as ratios; every other metric is an amount in billions of euro
var percentMetrics = map[string]bool{
	"cet1":     true,
	"tier1":    true,
	"total":    true,
	"leverage": true,
	"lcr":      true,
	"nsfr":     true,
}

// DashboardUseCase switches the report dashboard between its datasets
type DashboardUseCase struct {
	uc      *UseCases
	printer *message.Printer
}

func newDashboardUseCase(uc *UseCases) *DashboardUseCase {
	return &DashboardUseCase{
		uc:      uc,
		printer: message.NewPrinter(uc.locale),
	}
}

// DashboardView is the dataset of the selected mode
type DashboardView struct {
	Mode    types.DashboardMode
	Dataset model.DashboardDataset
}

// View returns the dataset of mode without touching any session
func (d *DashboardUseCase) View(mode types.DashboardMode) *DashboardView {
	if !mode.IsValid() {
		mode = types.DefaultDashboardMode
	}
	return &DashboardView{
		Mode:    mode,
		Dataset: d.uc.content.Dashboard.Dataset(mode),
	}
}

// Get returns the dataset selected by the session
func (d *DashboardUseCase) Get(ctx context.Context, id model.SessionID) (*DashboardView, error) {
	sess, err := d.uc.repo.Session().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get session", goerr.V(SessionIDKey, id))
	}
	return d.View(sess.DashboardMode), nil
}

// SetMode switches the session's dashboard to raw ("manual" or "bot")
func (d *DashboardUseCase) SetMode(ctx context.Context, id model.SessionID, raw string) (*DashboardView, error) {
	mode, err := types.ParseDashboardMode(raw)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, err.Error(), goerr.V(ModeKey, raw))
	}

	sess, err := d.uc.update(ctx, id, func(s *model.Session) error {
		s.DashboardMode = mode
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to set dashboard mode", goerr.V(SessionIDKey, id))
	}
	return d.View(sess.DashboardMode), nil
}

// FormatMetric renders a metric value for display: "10.2%" for ratios, "€2.1B" for amounts
func (d *DashboardUseCase) FormatMetric(m model.Metric) string {
	value := number.Decimal(m.Value, number.MaxFractionDigits(1))
	if percentMetrics[m.Key] {
		return d.printer.Sprintf("%v%%", value)
	}
	return d.printer.Sprintf("€%vB", value)
}

// FormatRatio renders a chart value as a percentage
func (d *DashboardUseCase) FormatRatio(v float64) string {
	return d.printer.Sprintf("%v%%", number.Decimal(v, number.MaxFractionDigits(1)))
}
