package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-erp-auth/internal/logger"
	"github.com/MKhiriev/go-erp-auth/internal/store"
	"github.com/MKhiriev/go-erp-auth/internal/utils"
	"github.com/MKhiriev/go-erp-auth/models"
)

const (
	defaultSummaryDays = 7
	maxSummaryDays     = 366
	maxVisitPathLength = 512

	dayLayout = "2006-01-02"
)

type analyticsService struct {
	storage store.Storage
	ids     IDGenerator
	now     func() time.Time

	logger *logger.Logger
}

func NewAnalyticsService(deps Deps, logger *logger.Logger) AnalyticsService {
	deps = deps.withDefaults()

	return &analyticsService{
		storage: deps.Storage,
		ids:     deps.IDs,
		now:     deps.Now,
		logger:  logger,
	}
}

// TrackVisit records a page view of the caller found in ctx. An empty path
// is recorded as "/".
func (a *analyticsService) TrackVisit(ctx context.Context, req models.TrackVisitRequest) error {
	path := strings.TrimSpace(req.Path)
	if path == "" {
		path = "/"
	}
	if len(path) > maxVisitPathLength {
		path = path[:maxVisitPathLength]
	}

	info := utils.GetClientInfoFromContext(ctx)
	visit := models.Visit{
		ID:        a.ids.Generate(),
		Path:      path,
		IP:        info.IP,
		UserAgent: utils.TruncateUserAgent(info.UserAgent),
		Timestamp: a.now(),
	}

	if err := a.storage.Repos().Visits.CreateVisit(ctx, visit); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*analyticsService.TrackVisit").Msg("visit tracking failed")
		return dependency(err)
	}
	return nil
}

// Summary counts visits per UTC calendar day. Days are ascending and days
// without visits are reported with a zero count.
func (a *analyticsService) Summary(ctx context.Context, days int) (models.VisitSummary, error) {
	log := logger.FromContext(ctx)

	if days == 0 {
		days = defaultSummaryDays
	}
	if days < 0 || days > maxSummaryDays {
		return models.VisitSummary{}, fmt.Errorf("%w: days must be between 1 and %d", ErrValidation, maxSummaryDays)
	}

	now := a.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	since := today.AddDate(0, 0, -(days - 1))

	total, err := a.storage.Repos().Visits.CountVisits(ctx)
	if err != nil {
		log.Err(err).Str("func", "*analyticsService.Summary").Msg("visit count failed")
		return models.VisitSummary{}, dependency(err)
	}

	timestamps, err := a.storage.Repos().Visits.VisitTimestampsSince(ctx, since)
	if err != nil {
		log.Err(err).Str("func", "*analyticsService.Summary").Msg("visit listing failed")
		return models.VisitSummary{}, dependency(err)
	}

	perDay := make(map[string]int, days)
	for _, ts := range timestamps {
		perDay[ts.UTC().Format(dayLayout)]++
	}

	summary := models.VisitSummary{
		Total:       total,
		PeriodTotal: len(timestamps),
		Days:        make([]models.DailyVisits, 0, days),
	}
	for d := since; !d.After(today); d = d.AddDate(0, 0, 1) {
		day := d.Format(dayLayout)
		summary.Days = append(summary.Days, models.DailyVisits{Day: day, Count: perDay[day]})
	}

	return summary, nil
}
