package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/aolivares/school-library-service/internal/errs"
	"github.com/aolivares/school-library-service/internal/events"
	"github.com/aolivares/school-library-service/internal/model"
)

func (s *Service) CreateReservation(ctx context.Context, req model.CreateReservationRequest) (model.Reservation, error) {
	days := model.CeilDays(req.ReservedDate.Time, req.ExpirationDate.Time)
	if days < reservationWindowMinDays || days > reservationWindowMaxDays {
		return model.Reservation{}, errors.Wrapf(errs.ErrInvalidRange,
			"expiration must be %d..%d days after reservation, got %d", reservationWindowMinDays, reservationWindowMaxDays, days)
	}

	rsv, err := s.repo.CreateReservation(ctx, req)
	if err != nil {
		return model.Reservation{}, err
	}
	s.pub.Publish(events.Event{Type: events.TypeReservationCreated, EntityUid: rsv.ReservationUid, StudentUid: rsv.StudentUid})
	return rsv, nil
}

func (s *Service) GetReservation(ctx context.Context, reservationUid string) (model.Reservation, error) {
	return s.repo.GetReservation(ctx, reservationUid)
}

func (s *Service) ListReservations(ctx context.Context, studentUid string, status model.ReservationStatus, page, size int) ([]model.Reservation, error) {
	return s.repo.ListReservations(ctx, studentUid, status, page, size)
}

func (s *Service) CancelReservation(ctx context.Context, reservationUid string) (model.Reservation, error) {
	rsv, err := s.repo.CancelReservation(ctx, reservationUid)
	if err != nil {
		return model.Reservation{}, err
	}
	s.pub.Publish(events.Event{Type: events.TypeReservationClosed, EntityUid: rsv.ReservationUid, StudentUid: rsv.StudentUid})
	return rsv, nil
}

// FulfillReservation hands the held copy out as a loan; the loan window
// rules apply to the new loan.
func (s *Service) FulfillReservation(ctx context.Context, reservationUid string, req model.FulfillReservationRequest) (model.Loan, error) {
	days := model.CeilDays(req.CheckoutDate.Time, req.ExpectedReturnDate.Time)
	if days < loanWindowMinDays || days > loanWindowMaxDays {
		return model.Loan{}, errors.Wrapf(errs.ErrInvalidRange,
			"expected return must be %d..%d days after checkout, got %d", loanWindowMinDays, loanWindowMaxDays, days)
	}

	loan, err := s.repo.FulfillReservation(ctx, reservationUid, req.CheckoutDate, req.ExpectedReturnDate)
	if err != nil {
		return model.Loan{}, err
	}
	s.pub.Publish(events.Event{Type: events.TypeReservationClosed, EntityUid: reservationUid, StudentUid: loan.StudentUid})
	s.pub.Publish(events.Event{Type: events.TypeLoanCreated, EntityUid: loan.LoanUid, StudentUid: loan.StudentUid})
	return loan, nil
}

// ExpireDueReservations releases stock held by lapsed reservations; the
// worker calls it on a schedule.
func (s *Service) ExpireDueReservations(ctx context.Context) (int, error) {
	expired, err := s.repo.ExpireDueReservations(ctx)
	if err != nil {
		return 0, err
	}
	if expired > 0 {
		s.log.Info("expired reservations swept", zap.Int("count", expired))
	}
	return expired, nil
}
