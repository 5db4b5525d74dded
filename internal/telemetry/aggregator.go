// internal/telemetry/aggregator.go
package telemetry

import (
	"context"
	"fmt"
	"sort"
	"time"

	apperrors "leadops/internal/common/errors"
	"leadops/internal/common/logger"
	"leadops/internal/models"
	"leadops/internal/store"
)

// ManualTemplateLabel groups touches written without a template name, i.e.
// operator sends from the console.
const ManualTemplateLabel = "Manual Execution Override"

// Classification labels. Presentation heuristics, not statistics.
const (
	LabelWinner     = "Winner"
	LabelSuboptimal = "Suboptimal"
)

// Config carries the display thresholds and the trailing window.
type Config struct {
	Window              time.Duration
	WinnerReplyRate     float64
	SuboptimalReplyRate float64
	SuboptimalMinVolume int
}

// CampaignStat is one channel+template group with funnel counts and derived
// rates, ready for display.
type CampaignStat struct {
	Campaign  string `json:"campaign"`
	Channel   string `json:"channel"`
	Template  string `json:"template_name"`
	Total     int    `json:"total"`
	Delivered int    `json:"delivered"`
	Opened    int    `json:"opened"`
	Replied   int    `json:"replied"`
	Bookings  int    `json:"bookings"`
	OpenRate  string `json:"open_rate"`
	ReplyRate string `json:"reply_rate"`
	Label     string `json:"label,omitempty"`
}

// Aggregate reduces a flat touch list into per-template campaign statistics.
// Each row stores only the terminal funnel stage it reached, so a later stage
// implies every earlier one: booking counts as replied, opened, and
// delivered too. Dropping the cascade would undercount intermediate stages.
func Aggregate(touches []models.OutboundTouch, cfg Config) []CampaignStat {
	type bucket struct {
		channel, template                            string
		total, delivered, opened, replied, bookings int
	}
	buckets := make(map[string]*bucket)

	for _, t := range touches {
		template := ManualTemplateLabel
		if t.TemplateName != nil && *t.TemplateName != "" {
			template = *t.TemplateName
		}
		key := t.Channel + "·" + template

		b, ok := buckets[key]
		if !ok {
			b = &bucket{channel: t.Channel, template: template}
			buckets[key] = b
		}

		b.total++
		switch t.Status {
		case models.StatusBooking:
			b.bookings++
			b.replied++
			b.opened++
			b.delivered++
		case models.StatusReplied:
			b.replied++
			b.opened++
			b.delivered++
		case models.StatusOpened, models.StatusRead:
			b.opened++
			b.delivered++
		case models.StatusDelivered:
			b.delivered++
		}
	}

	stats := make([]CampaignStat, 0, len(buckets))
	for key, b := range buckets {
		replyRate := percentage(b.replied, b.total)

		stat := CampaignStat{
			Campaign:  key,
			Channel:   b.channel,
			Template:  b.template,
			Total:     b.total,
			Delivered: b.delivered,
			Opened:    b.opened,
			Replied:   b.replied,
			Bookings:  b.bookings,
			ReplyRate: fmt.Sprintf("%.1f%%", replyRate),
		}

		// SMS delivery receipts carry no reliable open telemetry.
		if b.channel == models.ChannelSMS {
			stat.OpenRate = "N/A"
		} else {
			stat.OpenRate = fmt.Sprintf("%.1f%%", percentage(b.opened, b.total))
		}

		switch {
		case replyRate > cfg.WinnerReplyRate:
			stat.Label = LabelWinner
		case replyRate < cfg.SuboptimalReplyRate && b.total >= cfg.SuboptimalMinVolume:
			stat.Label = LabelSuboptimal
		}

		stats = append(stats, stat)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Total != stats[j].Total {
			return stats[i].Total > stats[j].Total
		}
		return stats[i].Campaign < stats[j].Campaign
	})

	return stats
}

func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// Service fetches the windowed touch rows and aggregates them. No
// persistence; the report is recomputed fully on every call.
type Service struct {
	touches *store.TouchStore
	cfg     Config
	logger  logger.Logger
}

func NewService(touches *store.TouchStore, cfg Config, log logger.Logger) *Service {
	return &Service{
		touches: touches,
		cfg:     cfg,
		logger:  log.WithFields(map[string]interface{}{"component": "telemetry"}),
	}
}

func (s *Service) Report(ctx context.Context) ([]CampaignStat, error) {
	since := time.Now().UTC().Add(-s.cfg.Window)
	touches, err := s.touches.ListOutboundSince(ctx, since)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("campaign_telemetry", err)
	}

	stats := Aggregate(touches, s.cfg)
	s.logger.Debug("campaign report computed", map[string]interface{}{
		"rows":   len(touches),
		"groups": len(stats),
	})
	return stats, nil
}
