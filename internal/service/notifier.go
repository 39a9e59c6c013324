package service

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/metrics"
)

// Mailer sends one rendered message. *mail.Sender implements it.
type Mailer interface {
	Send(ctx context.Context, msg domain.Message) error
}

// Notifier fans messages out to a Mailer and joins the results.
type Notifier struct {
	mailer  Mailer
	limit   int
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewNotifier returns a Notifier sending at most limit messages at once.
// A limit below 1 means one at a time. log and m may be nil.
func NewNotifier(mailer Mailer, limit int, log *slog.Logger, m *metrics.Metrics) *Notifier {
	if limit < 1 {
		limit = 1
	}
	if log == nil {
		log = slog.Default()
	}
	return &Notifier{mailer: mailer, limit: limit, log: log, metrics: m}
}

// Deliver sends every message and waits for all of them to settle, whatever
// the individual outcomes. The report holds one result per message, in the
// order given. kind labels the metrics.
func (n *Notifier) Deliver(ctx context.Context, kind string, msgs []domain.Message) domain.DeliveryReport {
	report := domain.DeliveryReport{Results: make([]domain.DeliveryResult, len(msgs))}

	var g errgroup.Group
	g.SetLimit(n.limit)
	for i, msg := range msgs {
		g.Go(func() error {
			err := n.mailer.Send(ctx, msg)
			report.Results[i] = domain.DeliveryResult{
				ParticipantID: msg.ParticipantID,
				Recipient:     recipients(msg),
				Err:           err,
			}
			n.metrics.ObserveDelivery(kind, err)
			if err != nil {
				n.log.WarnContext(ctx, "email delivery failed",
					"kind", kind,
					"recipient", recipients(msg),
					"participant_id", msg.ParticipantID,
					"error", err,
				)
			}
			// Never fail the group: one bad address must not cancel the others.
			return nil
		})
	}
	_ = g.Wait()

	return report
}

func recipients(msg domain.Message) string {
	addrs := make([]string, len(msg.To))
	for i, r := range msg.To {
		addrs[i] = r.Address
	}
	return strings.Join(addrs, ",")
}
