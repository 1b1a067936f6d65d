package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aolivares/school-library-service/internal/errs"
	"github.com/aolivares/school-library-service/internal/handler"
	"github.com/aolivares/school-library-service/internal/model"
	"github.com/aolivares/school-library-service/pkg/validate"

	service_mocks "github.com/aolivares/school-library-service/internal/handler/mocks"
)

func TestHandler_CreateLoan(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockServices)

	const body = `{"studentUid":"3f9b6c1e-9d2a-4c53-8f10-6a1f1b2c3d4e","bookUid":"b7a2e8d4-1c5f-4a6b-9e3d-2f8c7a6b5e4d","checkoutDate":"2024-03-01","expectedReturnDate":"2024-03-15"}`

	req := model.CreateLoanRequest{
		StudentUid:         "3f9b6c1e-9d2a-4c53-8f10-6a1f1b2c3d4e",
		BookUid:            "b7a2e8d4-1c5f-4a6b-9e3d-2f8c7a6b5e4d",
		CheckoutDate:       model.NewDate(2024, 3, 1),
		ExpectedReturnDate: model.NewDate(2024, 3, 15),
	}

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
		wantErr      bool
	}{
		{
			name: "ok",
			body: body,
			mockBehavior: func(r *service_mocks.MockServices) {
				r.EXPECT().
					CreateLoan(context.Background(), req).
					Return(model.Loan{
						LoanUid:            "5d1e8f3a-7b2c-4d6e-9a0f-1b2c3d4e5f6a",
						StudentUid:         req.StudentUid,
						BookUid:            req.BookUid,
						CheckoutDate:       req.CheckoutDate,
						ExpectedReturnDate: req.ExpectedReturnDate,
						Status:             model.LoanActive,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"loanUid":"5d1e8f3a-7b2c-4d6e-9a0f-1b2c3d4e5f6a","studentUid":"3f9b6c1e-9d2a-4c53-8f10-6a1f1b2c3d4e","bookUid":"b7a2e8d4-1c5f-4a6b-9e3d-2f8c7a6b5e4d","checkoutDate":"2024-03-01","expectedReturnDate":"2024-03-15","status":"ACTIVE"}`,
			},
			wantErr: false,
		},
		{
			name:         "err. bookUid required",
			body:         `{"studentUid":"3f9b6c1e-9d2a-4c53-8f10-6a1f1b2c3d4e","checkoutDate":"2024-03-01","expectedReturnDate":"2024-03-15"}`,
			mockBehavior: func(r *service_mocks.MockServices) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
			wantErr: true,
		},
		{
			name: "err. window too long",
			body: `{"studentUid":"3f9b6c1e-9d2a-4c53-8f10-6a1f1b2c3d4e","bookUid":"b7a2e8d4-1c5f-4a6b-9e3d-2f8c7a6b5e4d","checkoutDate":"2024-03-01","expectedReturnDate":"2024-03-20"}`,
			mockBehavior: func(r *service_mocks.MockServices) {
				r.EXPECT().
					CreateLoan(context.Background(), gomock.Any()).
					Return(model.Loan{}, errors.Wrap(errs.ErrInvalidRange, "expected return must be 1..15 days after checkout, got 19"))
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"expected return must be 1..15 days after checkout, got 19: date window out of range"}`,
			},
			wantErr: true,
		},
		{
			name: "err. no copies",
			body: body,
			mockBehavior: func(r *service_mocks.MockServices) {
				r.EXPECT().
					CreateLoan(context.Background(), req).
					Return(model.Loan{}, errors.Wrap(errs.ErrOutOfStock, "book id 7"))
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"book id 7: no available copies"}`,
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockServices(c)
			log := zap.NewExample().Named("test")
			h := handler.New(svc, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/loans", h.CreateLoan)

			r := httptest.NewRequest(http.MethodPost, "/loans", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_PayFine(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockServices, fineUid string)

	const fineUid = "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		response     response
		wantErr      bool
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockServices, fineUid string) {
				r.EXPECT().
					PayFine(context.Background(), fineUid).
					Return(model.Fine{
						FineUid:    fineUid,
						StudentUid: "3f9b6c1e-9d2a-4c53-8f10-6a1f1b2c3d4e",
						Amount:     2.5,
						Reason:     "returned 5 day(s) late",
						Status:     model.FinePaid,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"fineUid":"9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d","studentUid":"3f9b6c1e-9d2a-4c53-8f10-6a1f1b2c3d4e","amount":2.5,"reason":"returned 5 day(s) late","issuedAt":"0001-01-01T00:00:00Z","status":"PAID"}`,
			},
			wantErr: false,
		},
		{
			name: "err. already paid",
			mockBehavior: func(r *service_mocks.MockServices, fineUid string) {
				r.EXPECT().
					PayFine(context.Background(), fineUid).
					Return(model.Fine{}, errors.Wrapf(errs.ErrInvalidState, "fine %s is already PAID", fineUid))
			},
			response: response{
				expectedCode: http.StatusConflict,
			},
			wantErr: true,
		},
		{
			name: "err. not found",
			mockBehavior: func(r *service_mocks.MockServices, fineUid string) {
				r.EXPECT().
					PayFine(context.Background(), fineUid).
					Return(model.Fine{}, errors.Wrapf(errs.ErrNotFound, "fine %s", fineUid))
			},
			response: response{
				expectedCode: http.StatusNotFound,
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockServices(c)
			log := zap.NewExample().Named("test")
			h := handler.New(svc, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/fines/:fineUid/pay", h.PayFine)

			r := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/fines/%s/pay", fineUid), http.NoBody)
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc, fineUid)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_UpdateCategory(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockServices, categoryUid string)

	const categoryUid = "1a2b3c4d-5e6f-4a7b-8c9d-0e1f2a3b4c5d"

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
		wantErr      bool
	}{
		{
			name: "ok",
			body: `{"code":"SCI","name":"Science"}`,
			mockBehavior: func(r *service_mocks.MockServices, categoryUid string) {
				r.EXPECT().
					UpdateCategory(context.Background(), categoryUid, model.UpdateCategoryRequest{
						Code: "SCI",
						Name: "Science",
					}).
					Return(model.Category{
						CategoryUid: categoryUid,
						Code:        "SCI",
						Name:        "Science",
						Description: "natural sciences",
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"categoryUid":"1a2b3c4d-5e6f-4a7b-8c9d-0e1f2a3b4c5d","code":"SCI","name":"Science","description":"natural sciences"}`,
			},
			wantErr: false,
		},
		{
			name:         "err. name too short",
			body:         `{"name":"ab"}`,
			mockBehavior: func(r *service_mocks.MockServices, categoryUid string) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
			wantErr: true,
		},
		{
			name: "err. code taken",
			body: `{"code":"SCI"}`,
			mockBehavior: func(r *service_mocks.MockServices, categoryUid string) {
				r.EXPECT().
					UpdateCategory(context.Background(), categoryUid, model.UpdateCategoryRequest{Code: "SCI"}).
					Return(model.Category{}, errors.Wrap(errs.ErrConflict, "code SCI already taken"))
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"code SCI already taken: conflict"}`,
			},
			wantErr: true,
		},
		{
			name: "err. not found",
			body: `{"name":"Science"}`,
			mockBehavior: func(r *service_mocks.MockServices, categoryUid string) {
				r.EXPECT().
					UpdateCategory(context.Background(), categoryUid, gomock.Any()).
					Return(model.Category{}, errors.Wrapf(errs.ErrNotFound, "category %s", categoryUid))
			},
			response: response{
				expectedCode: http.StatusNotFound,
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockServices(c)
			h := handler.New(svc, zap.NewExample().Named("test"))

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.PUT("/categories/:categoryUid", h.UpdateCategory)

			r := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/categories/%s", categoryUid), strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc, categoryUid)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_UpdateUser(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockServices, userUid string)

	const userUid = "7e6d5c4b-3a2f-4e1d-9c8b-7a6f5e4d3c2b"

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
		wantErr      bool
	}{
		{
			name: "ok",
			body: `{"role":"ADMIN","status":"ACTIVE"}`,
			mockBehavior: func(r *service_mocks.MockServices, userUid string) {
				r.EXPECT().
					UpdateUser(context.Background(), userUid, model.UpdateUserRequest{
						Role:   "ADMIN",
						Status: model.UserActive,
					}).
					Return(model.User{
						UserUid:  userUid,
						Username: "librarian",
						Email:    "librarian@example.com",
						Role:     "ADMIN",
						Status:   model.UserActive,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"userUid":"7e6d5c4b-3a2f-4e1d-9c8b-7a6f5e4d3c2b","username":"librarian","email":"librarian@example.com","role":"ADMIN","status":"ACTIVE"}`,
			},
			wantErr: false,
		},
		{
			name:         "err. role unknown",
			body:         `{"role":"ROOT"}`,
			mockBehavior: func(r *service_mocks.MockServices, userUid string) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
			wantErr: true,
		},
		{
			name: "err. not found",
			body: `{"status":"INACTIVE"}`,
			mockBehavior: func(r *service_mocks.MockServices, userUid string) {
				r.EXPECT().
					UpdateUser(context.Background(), userUid, model.UpdateUserRequest{Status: model.UserInactive}).
					Return(model.User{}, errors.Wrapf(errs.ErrNotFound, "user %s", userUid))
			},
			response: response{
				expectedCode: http.StatusNotFound,
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockServices(c)
			h := handler.New(svc, zap.NewExample().Named("test"))

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.PUT("/users/:userUid", h.UpdateUser)

			r := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/users/%s", userUid), strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc, userUid)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_ListLoans_pageValidation(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		name         string
		query        string
		expectCall   bool
		expectedCode int
	}{
		{name: "ok. defaults", query: "", expectCall: true, expectedCode: http.StatusOK},
		{name: "ok. explicit page", query: "?page=2&size=10", expectCall: true, expectedCode: http.StatusOK},
		{name: "err. negative page", query: "?page=-1&size=10", expectedCode: http.StatusBadRequest},
		{name: "err. negative size", query: "?page=1&size=-5", expectedCode: http.StatusBadRequest},
		{name: "err. page not a number", query: "?page=abc", expectedCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockServices(c)
			h := handler.New(svc, zap.NewExample().Named("test"))

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.GET("/loans", h.ListLoans)

			if tt.expectCall {
				svc.EXPECT().
					ListLoans(context.Background(), model.LoanStatus(""), gomock.Any(), gomock.Any()).
					Return([]model.Loan{}, nil)
			}

			r := httptest.NewRequest(http.MethodGet, "/loans"+tt.query, http.NoBody)
			w := httptest.NewRecorder()

			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestHandler_CancelReservation(t *testing.T) {
	t.Parallel()

	const reservationUid = "0c1d2e3f-4a5b-4c6d-8e9f-0a1b2c3d4e5f"

	c := gomock.NewController(t)
	defer c.Finish()
	svc := service_mocks.NewMockServices(c)
	h := handler.New(svc, zap.NewExample().Named("test"))

	e := echo.New()
	e.Validator = validate.NewCustomValidator()
	e.POST("/reservations/:reservationUid/cancel", h.CancelReservation)

	svc.EXPECT().
		CancelReservation(context.Background(), reservationUid).
		Return(model.Reservation{
			ReservationUid: reservationUid,
			StudentUid:     "3f9b6c1e-9d2a-4c53-8f10-6a1f1b2c3d4e",
			BookUid:        "b7a2e8d4-1c5f-4a6b-9e3d-2f8c7a6b5e4d",
			ReservedDate:   model.NewDate(2024, 6, 1),
			ExpirationDate: model.NewDate(2024, 6, 8),
			Status:         model.ReservationCancelled,
		}, nil)

	r := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/reservations/%s/cancel", reservationUid), http.NoBody)
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w := httptest.NewRecorder()

	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t,
		`{"reservationUid":"0c1d2e3f-4a5b-4c6d-8e9f-0a1b2c3d4e5f","studentUid":"3f9b6c1e-9d2a-4c53-8f10-6a1f1b2c3d4e","bookUid":"b7a2e8d4-1c5f-4a6b-9e3d-2f8c7a6b5e4d","reservedDate":"2024-06-01","expirationDate":"2024-06-08","status":"CANCELLED"}`,
		strings.Trim(w.Body.String(), "\n"))
}
