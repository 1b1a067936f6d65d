package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

//go:generate go run github.com/golang/mock/mockgen -source=sweeper.go -destination=mocks/mock.go

// ReservationExpirer writes the EXPIRED status and releases held stock for
// reservations past their window.
type ReservationExpirer interface {
	ExpireDueReservations(ctx context.Context) (int, error)
}

// Sweeper periodically expires lapsed reservations. It runs independently
// of request handling and relies on the repository's per-book guarded
// updates for serialization.
type Sweeper struct {
	svc      ReservationExpirer
	interval time.Duration
	log      *zap.Logger
}

func NewSweeper(svc ReservationExpirer, interval time.Duration, log *zap.Logger) *Sweeper {
	return &Sweeper{
		svc:      svc,
		interval: interval,
		log:      log.Named("sweeper"),
	}
}

// Run blocks until ctx is done. One sweep fires immediately so restarts do
// not delay stock release by a full interval.
func (w *Sweeper) Run(ctx context.Context) error {
	w.sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.sweep(ctx)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *Sweeper) sweep(ctx context.Context) {
	expired, err := w.svc.ExpireDueReservations(ctx)
	if err != nil {
		w.log.Error("sweep failed", zap.Error(err))
		return
	}
	w.log.Debug("sweep done", zap.Int("expired", expired))
}
