package service_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/aolivares/school-library-service/internal/errs"
	"github.com/aolivares/school-library-service/internal/model"
	repo_mocks "github.com/aolivares/school-library-service/internal/repository/mocks"
)

func TestService_CreateReservation(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *repo_mocks.MockRepository, req model.CreateReservationRequest)

	req := func(reserved, expiration model.Date) model.CreateReservationRequest {
		return model.CreateReservationRequest{
			StudentUid:     "3f9b6c1e-9d2a-4c53-8f10-6a1f1b2c3d4e",
			BookUid:        "b7a2e8d4-1c5f-4a6b-9e3d-2f8c7a6b5e4d",
			ReservedDate:   reserved,
			ExpirationDate: expiration,
		}
	}

	var tests = []struct {
		name         string
		req          model.CreateReservationRequest
		mockBehavior mockBehavior
		wantErr      error
	}{
		{
			name: "ok max window",
			req:  req(model.NewDate(2024, 6, 1), model.NewDate(2024, 6, 8)),
			mockBehavior: func(r *repo_mocks.MockRepository, req model.CreateReservationRequest) {
				r.EXPECT().CreateReservation(context.Background(), req).
					Return(model.Reservation{ReservationUid: "rv1", Status: model.ReservationActive}, nil)
			},
		},
		{
			name:         "window too long",
			req:          req(model.NewDate(2024, 6, 1), model.NewDate(2024, 6, 9)),
			mockBehavior: func(r *repo_mocks.MockRepository, req model.CreateReservationRequest) {},
			wantErr:      errs.ErrInvalidRange,
		},
		{
			name:         "expiration before reservation",
			req:          req(model.NewDate(2024, 6, 8), model.NewDate(2024, 6, 1)),
			mockBehavior: func(r *repo_mocks.MockRepository, req model.CreateReservationRequest) {},
			wantErr:      errs.ErrInvalidRange,
		},
		{
			name: "no copies to hold",
			req:  req(model.NewDate(2024, 6, 1), model.NewDate(2024, 6, 4)),
			mockBehavior: func(r *repo_mocks.MockRepository, req model.CreateReservationRequest) {
				r.EXPECT().CreateReservation(context.Background(), req).
					Return(model.Reservation{}, errors.Wrap(errs.ErrOutOfStock, "book id 9"))
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

			rsv, err := svc.CreateReservation(context.Background(), tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, model.ReservationActive, rsv.Status)
		})
	}
}

func TestService_CancelReservation(t *testing.T) {
	t.Parallel()

	const reservationUid = "0c1d2e3f-4a5b-4c6d-8e9f-0a1b2c3d4e5f"

	t.Run("ok", func(t *testing.T) {
		t.Parallel()
		svc, repo := newTestService(t)
		repo.EXPECT().CancelReservation(context.Background(), reservationUid).
			Return(model.Reservation{ReservationUid: reservationUid, Status: model.ReservationCancelled}, nil)

		rsv, err := svc.CancelReservation(context.Background(), reservationUid)
		require.NoError(t, err)
		require.Equal(t, model.ReservationCancelled, rsv.Status)
	})

	t.Run("already terminal", func(t *testing.T) {
		t.Parallel()
		svc, repo := newTestService(t)
		repo.EXPECT().CancelReservation(context.Background(), reservationUid).
			Return(model.Reservation{}, errors.Wrap(errs.ErrInvalidState, "reservation is FULFILLED"))

		_, err := svc.CancelReservation(context.Background(), reservationUid)
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestService_FulfillReservation(t *testing.T) {
	t.Parallel()

	const reservationUid = "0c1d2e3f-4a5b-4c6d-8e9f-0a1b2c3d4e5f"

	t.Run("ok", func(t *testing.T) {
		t.Parallel()
		svc, repo := newTestService(t)
		checkout := model.NewDate(2024, 6, 3)
		expectedReturn := model.NewDate(2024, 6, 13)
		repo.EXPECT().FulfillReservation(context.Background(), reservationUid, checkout, expectedReturn).
			Return(model.Loan{LoanUid: "l1", Status: model.LoanActive}, nil)

		loan, err := svc.FulfillReservation(context.Background(), reservationUid, model.FulfillReservationRequest{
			CheckoutDate:       checkout,
			ExpectedReturnDate: expectedReturn,
		})
		require.NoError(t, err)
		require.Equal(t, model.LoanActive, loan.Status)
	})

	t.Run("loan window applies", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)
		_, err := svc.FulfillReservation(context.Background(), reservationUid, model.FulfillReservationRequest{
			CheckoutDate:       model.NewDate(2024, 6, 3),
			ExpectedReturnDate: model.NewDate(2024, 6, 30),
		})
		require.ErrorIs(t, err, errs.ErrInvalidRange)
	})
}

func TestService_ExpireDueReservations(t *testing.T) {
	t.Parallel()
	svc, repo := newTestService(t)
	repo.EXPECT().ExpireDueReservations(context.Background()).Return(3, nil)

	expired, err := svc.ExpireDueReservations(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, expired)
}
