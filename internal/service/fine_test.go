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

func TestService_CreateFine(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *repo_mocks.MockRepository, req model.CreateFineRequest)

	const studentUid = "3f9b6c1e-9d2a-4c53-8f10-6a1f1b2c3d4e"

	var tests = []struct {
		name         string
		req          model.CreateFineRequest
		mockBehavior mockBehavior
		wantErr      error
	}{
		{
			name: "ok",
			req:  model.CreateFineRequest{StudentUid: studentUid, Amount: 3.75, Reason: "lost library card"},
			mockBehavior: func(r *repo_mocks.MockRepository, req model.CreateFineRequest) {
				r.EXPECT().
					CreateFine(context.Background(), model.Fine{
						StudentUid: req.StudentUid,
						Amount:     req.Amount,
						Reason:     req.Reason,
					}, "").
					Return(model.Fine{FineUid: "f1", Amount: req.Amount, Status: model.FinePending}, nil)
			},
		},
		{
			name:         "zero amount",
			req:          model.CreateFineRequest{StudentUid: studentUid, Amount: 0},
			mockBehavior: func(r *repo_mocks.MockRepository, req model.CreateFineRequest) {},
			wantErr:      errs.ErrInvalidArgument,
		},
		{
			name:         "negative amount",
			req:          model.CreateFineRequest{StudentUid: studentUid, Amount: -1.50},
			mockBehavior: func(r *repo_mocks.MockRepository, req model.CreateFineRequest) {},
			wantErr:      errs.ErrInvalidArgument,
		},
		{
			name: "unknown student",
			req:  model.CreateFineRequest{StudentUid: studentUid, Amount: 2},
			mockBehavior: func(r *repo_mocks.MockRepository, req model.CreateFineRequest) {
				r.EXPECT().
					CreateFine(context.Background(), model.Fine{
						StudentUid: req.StudentUid,
						Amount:     req.Amount,
					}, "").
					Return(model.Fine{}, errors.Wrap(errs.ErrNotFound, "student"))
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

			fine, err := svc.CreateFine(context.Background(), tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, model.FinePending, fine.Status)
		})
	}
}

func TestService_PayFine(t *testing.T) {
	t.Parallel()

	const fineUid = "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"

	t.Run("ok", func(t *testing.T) {
		t.Parallel()
		svc, repo := newTestService(t)
		repo.EXPECT().PayFine(context.Background(), fineUid).
			Return(model.Fine{FineUid: fineUid, Status: model.FinePaid}, nil)

		fine, err := svc.PayFine(context.Background(), fineUid)
		require.NoError(t, err)
		require.Equal(t, model.FinePaid, fine.Status)
	})

	t.Run("already paid", func(t *testing.T) {
		t.Parallel()
		svc, repo := newTestService(t)
		repo.EXPECT().PayFine(context.Background(), fineUid).
			Return(model.Fine{}, errors.Wrap(errs.ErrInvalidState, "fine already PAID"))

		_, err := svc.PayFine(context.Background(), fineUid)
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})
}
