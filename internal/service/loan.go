package service

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/aolivares/school-library-service/internal/errs"
	"github.com/aolivares/school-library-service/internal/events"
	"github.com/aolivares/school-library-service/internal/model"
)

func (s *Service) CreateLoan(ctx context.Context, req model.CreateLoanRequest) (model.Loan, error) {
	days := model.CeilDays(req.CheckoutDate.Time, req.ExpectedReturnDate.Time)
	if days < loanWindowMinDays || days > loanWindowMaxDays {
		return model.Loan{}, errors.Wrapf(errs.ErrInvalidRange,
			"expected return must be %d..%d days after checkout, got %d", loanWindowMinDays, loanWindowMaxDays, days)
	}

	loan, err := s.repo.CreateLoan(ctx, req)
	if err != nil {
		return model.Loan{}, err
	}
	s.pub.Publish(events.Event{Type: events.TypeLoanCreated, EntityUid: loan.LoanUid, StudentUid: loan.StudentUid})
	return loan, nil
}

func (s *Service) GetLoan(ctx context.Context, loanUid string) (model.Loan, error) {
	return s.repo.GetLoan(ctx, loanUid)
}

func (s *Service) ListLoans(ctx context.Context, status model.LoanStatus, page, size int) ([]model.Loan, error) {
	return s.repo.ListLoans(ctx, status, page, size)
}

// RecordReturn closes a loan: lateness is computed against the expected
// return date with a floor at zero, and a fine is issued automatically when
// the return is late or the copy comes back damaged.
func (s *Service) RecordReturn(ctx context.Context, loanUid string, req model.CreateReturnRequest) (model.Return, error) {
	loan, err := s.repo.GetLoan(ctx, loanUid)
	if err != nil {
		return model.Return{}, err
	}
	if loan.Status != model.LoanActive {
		return model.Return{}, errors.Wrapf(errs.ErrConflict, "loan %s already returned", loanUid)
	}

	lateDays := model.LateDays(loan.ExpectedReturnDate.Time, req.ActualReturnDate.Time)
	ret := model.Return{
		ActualReturnDate: req.ActualReturnDate,
		Condition:        req.Condition,
		LateDays:         lateDays,
		Notes:            req.Notes,
	}

	fine := s.fineFor(loan, lateDays, req.Condition)
	ret, err = s.repo.CreateReturn(ctx, loan, ret, fine)
	if err != nil {
		return model.Return{}, err
	}

	s.pub.Publish(events.Event{Type: events.TypeLoanReturned, EntityUid: loan.LoanUid, StudentUid: loan.StudentUid})
	if fine != nil {
		s.log.Info("fine issued on return",
			zap.String("loan", loan.LoanUid),
			zap.Int("lateDays", lateDays),
			zap.Float64("amount", fine.Amount))
		s.pub.Publish(events.Event{Type: events.TypeFineIssued, EntityUid: fine.FineUid, StudentUid: loan.StudentUid})
	}
	return ret, nil
}

// fineFor derives the automatic fine, nil when nothing is owed.
func (s *Service) fineFor(loan model.Loan, lateDays int, condition model.Condition) *model.Fine {
	var amount float64
	var reason string
	if lateDays > 0 {
		amount = s.policy.DayRate * float64(lateDays)
		reason = fmt.Sprintf("returned %d day(s) late", lateDays)
	}
	if condition == model.ConditionDamaged {
		amount += s.policy.DamageFee
		if reason != "" {
			reason += ", book damaged"
		} else {
			reason = "book damaged"
		}
	}
	if amount <= 0 {
		return nil
	}
	return &model.Fine{
		StudentID:  loan.StudentID,
		StudentUid: loan.StudentUid,
		LoanUid:    &loan.LoanUid,
		Amount:     amount,
		Reason:     reason,
	}
}

func (s *Service) GetReturn(ctx context.Context, returnUid string) (model.Return, error) {
	return s.repo.GetReturn(ctx, returnUid)
}

func (s *Service) ListReturns(ctx context.Context, page, size int) ([]model.Return, error) {
	return s.repo.ListReturns(ctx, page, size)
}
