package service_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aolivares/school-library-service/internal/errs"
	"github.com/aolivares/school-library-service/internal/events"
	"github.com/aolivares/school-library-service/internal/model"
	repo_mocks "github.com/aolivares/school-library-service/internal/repository/mocks"
	"github.com/aolivares/school-library-service/internal/service"
)

var testPolicy = service.FinePolicy{DayRate: 0.50, DamageFee: 10.00}

func newTestService(t *testing.T) (*service.Service, *repo_mocks.MockRepository) {
	t.Helper()
	c := gomock.NewController(t)
	repo := repo_mocks.NewMockRepository(c)
	svc := service.NewService(repo, testPolicy, events.NewNopPublisher(), zap.NewExample().Named("test"))
	return svc, repo
}

func TestService_CreateLoan(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *repo_mocks.MockRepository, req model.CreateLoanRequest)

	req := func(checkout, expectedReturn model.Date) model.CreateLoanRequest {
		return model.CreateLoanRequest{
			StudentUid:         "3f9b6c1e-9d2a-4c53-8f10-6a1f1b2c3d4e",
			BookUid:            "b7a2e8d4-1c5f-4a6b-9e3d-2f8c7a6b5e4d",
			CheckoutDate:       checkout,
			ExpectedReturnDate: expectedReturn,
		}
	}

	var tests = []struct {
		name         string
		req          model.CreateLoanRequest
		mockBehavior mockBehavior
		wantErr      error
	}{
		{
			name: "ok max window",
			req:  req(model.NewDate(2024, 3, 1), model.NewDate(2024, 3, 16)),
			mockBehavior: func(r *repo_mocks.MockRepository, req model.CreateLoanRequest) {
				r.EXPECT().CreateLoan(context.Background(), req).
					Return(model.Loan{LoanUid: "l1", Status: model.LoanActive}, nil)
			},
		},
		{
			name: "ok min window",
			req:  req(model.NewDate(2024, 3, 1), model.NewDate(2024, 3, 2)),
			mockBehavior: func(r *repo_mocks.MockRepository, req model.CreateLoanRequest) {
				r.EXPECT().CreateLoan(context.Background(), req).
					Return(model.Loan{LoanUid: "l2", Status: model.LoanActive}, nil)
			},
		},
		{
			name:         "window too short",
			req:          req(model.NewDate(2024, 3, 1), model.NewDate(2024, 3, 1)),
			mockBehavior: func(r *repo_mocks.MockRepository, req model.CreateLoanRequest) {},
			wantErr:      errs.ErrInvalidRange,
		},
		{
			name:         "window too long",
			req:          req(model.NewDate(2024, 3, 1), model.NewDate(2024, 3, 17)),
			mockBehavior: func(r *repo_mocks.MockRepository, req model.CreateLoanRequest) {},
			wantErr:      errs.ErrInvalidRange,
		},
		{
			name:         "checkout after return",
			req:          req(model.NewDate(2024, 3, 16), model.NewDate(2024, 3, 1)),
			mockBehavior: func(r *repo_mocks.MockRepository, req model.CreateLoanRequest) {},
			wantErr:      errs.ErrInvalidRange,
		},
		{
			name: "last copy contention",
			req:  req(model.NewDate(2024, 3, 1), model.NewDate(2024, 3, 8)),
			mockBehavior: func(r *repo_mocks.MockRepository, req model.CreateLoanRequest) {
				r.EXPECT().CreateLoan(context.Background(), req).
					Return(model.Loan{}, errors.Wrap(errs.ErrOutOfStock, "book id 7"))
			},
			wantErr: errs.ErrOutOfStock,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, repo := newTestService(t)
			tt.mockBehavior(repo, tt.req)

			loan, err := svc.CreateLoan(context.Background(), tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, model.LoanActive, loan.Status)
		})
	}
}

func TestService_RecordReturn(t *testing.T) {
	t.Parallel()

	const loanUid = "5d1e8f3a-7b2c-4d6e-9a0f-1b2c3d4e5f6a"
	activeLoan := model.Loan{
		ID:                 11,
		LoanUid:            loanUid,
		StudentID:          3,
		StudentUid:         "3f9b6c1e-9d2a-4c53-8f10-6a1f1b2c3d4e",
		CheckoutDate:       model.NewDate(2024, 4, 1),
		ExpectedReturnDate: model.NewDate(2024, 4, 10),
		Status:             model.LoanActive,
	}

	type mockBehavior func(r *repo_mocks.MockRepository, req model.CreateReturnRequest)

	var tests = []struct {
		name         string
		req          model.CreateReturnRequest
		mockBehavior mockBehavior
		wantLateDays int
		wantErr      error
	}{
		{
			name: "on expected date no fine",
			req: model.CreateReturnRequest{
				ActualReturnDate: model.NewDate(2024, 4, 10),
				Condition:        model.ConditionGood,
			},
			mockBehavior: func(r *repo_mocks.MockRepository, req model.CreateReturnRequest) {
				r.EXPECT().GetLoan(context.Background(), loanUid).Return(activeLoan, nil)
				r.EXPECT().
					CreateReturn(context.Background(), activeLoan, gomock.Any(), gomock.Nil()).
					DoAndReturn(func(_ context.Context, _ model.Loan, ret model.Return, _ *model.Fine) (model.Return, error) {
						ret.ReturnUid = "r1"
						ret.LoanUid = loanUid
						return ret, nil
					})
			},
			wantLateDays: 0,
		},
		{
			name: "five days late issues one fine",
			req: model.CreateReturnRequest{
				ActualReturnDate: model.NewDate(2024, 4, 15),
				Condition:        model.ConditionFair,
			},
			mockBehavior: func(r *repo_mocks.MockRepository, req model.CreateReturnRequest) {
				r.EXPECT().GetLoan(context.Background(), loanUid).Return(activeLoan, nil)
				r.EXPECT().
					CreateReturn(context.Background(), activeLoan, gomock.Any(), fineWith(2.50, "returned 5 day(s) late")).
					DoAndReturn(func(_ context.Context, _ model.Loan, ret model.Return, _ *model.Fine) (model.Return, error) {
						ret.ReturnUid = "r2"
						ret.LoanUid = loanUid
						return ret, nil
					})
			},
			wantLateDays: 5,
		},
		{
			name: "damaged on time fined the damage fee",
			req: model.CreateReturnRequest{
				ActualReturnDate: model.NewDate(2024, 4, 9),
				Condition:        model.ConditionDamaged,
			},
			mockBehavior: func(r *repo_mocks.MockRepository, req model.CreateReturnRequest) {
				r.EXPECT().GetLoan(context.Background(), loanUid).Return(activeLoan, nil)
				r.EXPECT().
					CreateReturn(context.Background(), activeLoan, gomock.Any(), fineWith(10.00, "book damaged")).
					DoAndReturn(func(_ context.Context, _ model.Loan, ret model.Return, _ *model.Fine) (model.Return, error) {
						ret.ReturnUid = "r3"
						ret.LoanUid = loanUid
						return ret, nil
					})
			},
			wantLateDays: 0,
		},
		{
			name: "late and damaged accumulate",
			req: model.CreateReturnRequest{
				ActualReturnDate: model.NewDate(2024, 4, 12),
				Condition:        model.ConditionDamaged,
			},
			mockBehavior: func(r *repo_mocks.MockRepository, req model.CreateReturnRequest) {
				r.EXPECT().GetLoan(context.Background(), loanUid).Return(activeLoan, nil)
				r.EXPECT().
					CreateReturn(context.Background(), activeLoan, gomock.Any(), fineWith(11.00, "returned 2 day(s) late, book damaged")).
					DoAndReturn(func(_ context.Context, _ model.Loan, ret model.Return, _ *model.Fine) (model.Return, error) {
						ret.ReturnUid = "r4"
						ret.LoanUid = loanUid
						return ret, nil
					})
			},
			wantLateDays: 2,
		},
		{
			name: "already returned",
			req: model.CreateReturnRequest{
				ActualReturnDate: model.NewDate(2024, 4, 10),
				Condition:        model.ConditionGood,
			},
			mockBehavior: func(r *repo_mocks.MockRepository, req model.CreateReturnRequest) {
				returned := activeLoan
				returned.Status = model.LoanReturned
				r.EXPECT().GetLoan(context.Background(), loanUid).Return(returned, nil)
			},
			wantErr: errs.ErrConflict,
		},
		{
			name: "loan not found",
			req: model.CreateReturnRequest{
				ActualReturnDate: model.NewDate(2024, 4, 10),
				Condition:        model.ConditionGood,
			},
			mockBehavior: func(r *repo_mocks.MockRepository, req model.CreateReturnRequest) {
				r.EXPECT().GetLoan(context.Background(), loanUid).
					Return(model.Loan{}, errors.Wrap(errs.ErrNotFound, "loan"))
			},
			wantErr: errs.ErrNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, repo := newTestService(t)
			tt.mockBehavior(repo, tt.req)

			ret, err := svc.RecordReturn(context.Background(), loanUid, tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantLateDays, ret.LateDays)
		})
	}
}

// fineWith matches the automatic fine by amount and reason.
func fineWith(amount float64, reason string) gomock.Matcher {
	return fineMatcher{amount: amount, reason: reason}
}

type fineMatcher struct {
	amount float64
	reason string
}

func (m fineMatcher) Matches(x interface{}) bool {
	fine, ok := x.(*model.Fine)
	if !ok || fine == nil {
		return false
	}
	return fine.Amount == m.amount && fine.Reason == m.reason
}

func (m fineMatcher) String() string {
	return "fine matcher"
}
