package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/Raviram02/HostelBite/internal/infra/events"
	"github.com/Raviram02/HostelBite/internal/metrics"
	repo "github.com/Raviram02/HostelBite/internal/repository"
)

type IDGenerator interface {
	NewID() string
}

type Clock interface {
	Now() time.Time
}

type EventPublisher interface {
	Publish(ctx context.Context, subject string, ev events.OrderEvent)
}

// attempts per order write before a version conflict is reported
const maxWriteAttempts = 3

// retryOnConflict reruns fn while the order store reports a stale version.
// fn must re-read the order each time.
func retryOnConflict(m *metrics.Metrics, fn func() error) error {
	var err error
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		err = fn()
		if !errors.Is(err, repo.ErrVersionConflict) {
			return err
		}
		m.VersionConflicts.Inc()
	}
	return err
}
