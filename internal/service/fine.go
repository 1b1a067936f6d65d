package service

import (
	"context"

	"github.com/pkg/errors"

	"github.com/aolivares/school-library-service/internal/errs"
	"github.com/aolivares/school-library-service/internal/events"
	"github.com/aolivares/school-library-service/internal/model"
)

func (s *Service) CreateFine(ctx context.Context, req model.CreateFineRequest) (model.Fine, error) {
	if req.Amount <= 0 {
		return model.Fine{}, errors.Wrapf(errs.ErrInvalidArgument, "amount %.2f must be positive", req.Amount)
	}

	fine, err := s.repo.CreateFine(ctx, model.Fine{
		StudentUid: req.StudentUid,
		Amount:     req.Amount,
		Reason:     req.Reason,
	}, req.LoanUid)
	if err != nil {
		return model.Fine{}, err
	}
	s.pub.Publish(events.Event{Type: events.TypeFineIssued, EntityUid: fine.FineUid, StudentUid: fine.StudentUid})
	return fine, nil
}

func (s *Service) GetFine(ctx context.Context, fineUid string) (model.Fine, error) {
	return s.repo.GetFine(ctx, fineUid)
}

func (s *Service) ListFines(ctx context.Context, studentUid string, status model.FineStatus, page, size int) ([]model.Fine, error) {
	return s.repo.ListFines(ctx, studentUid, status, page, size)
}

// PayFine is one-way; a mistaken payment is compensated manually, not
// reversed here.
func (s *Service) PayFine(ctx context.Context, fineUid string) (model.Fine, error) {
	fine, err := s.repo.PayFine(ctx, fineUid)
	if err != nil {
		return model.Fine{}, err
	}
	s.pub.Publish(events.Event{Type: events.TypeFinePaid, EntityUid: fine.FineUid, StudentUid: fine.StudentUid})
	return fine, nil
}
