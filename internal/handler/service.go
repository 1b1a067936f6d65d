package handler

import (
	"context"

	"github.com/aolivares/school-library-service/internal/model"
	"github.com/aolivares/school-library-service/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type Services interface {
	LoanService
	FineService
	ReservationService
	CatalogService
	AuthService
}

type LoanService interface {
	CreateLoan(ctx context.Context, req model.CreateLoanRequest) (model.Loan, error)
	GetLoan(ctx context.Context, loanUid string) (model.Loan, error)
	ListLoans(ctx context.Context, status model.LoanStatus, page, size int) ([]model.Loan, error)
	RecordReturn(ctx context.Context, loanUid string, req model.CreateReturnRequest) (model.Return, error)
	GetReturn(ctx context.Context, returnUid string) (model.Return, error)
	ListReturns(ctx context.Context, page, size int) ([]model.Return, error)
}

type FineService interface {
	CreateFine(ctx context.Context, req model.CreateFineRequest) (model.Fine, error)
	GetFine(ctx context.Context, fineUid string) (model.Fine, error)
	ListFines(ctx context.Context, studentUid string, status model.FineStatus, page, size int) ([]model.Fine, error)
	PayFine(ctx context.Context, fineUid string) (model.Fine, error)
}

type ReservationService interface {
	CreateReservation(ctx context.Context, req model.CreateReservationRequest) (model.Reservation, error)
	GetReservation(ctx context.Context, reservationUid string) (model.Reservation, error)
	ListReservations(ctx context.Context, studentUid string, status model.ReservationStatus, page, size int) ([]model.Reservation, error)
	CancelReservation(ctx context.Context, reservationUid string) (model.Reservation, error)
	FulfillReservation(ctx context.Context, reservationUid string, req model.FulfillReservationRequest) (model.Loan, error)
}

type CatalogService interface {
	CreateStudent(ctx context.Context, req model.CreateStudentRequest) (model.Student, error)
	GetStudent(ctx context.Context, studentUid string) (model.Student, error)
	ListStudents(ctx context.Context, page, size int) (model.ListStudents, error)
	UpdateStudent(ctx context.Context, studentUid string, req model.UpdateStudentRequest) (model.Student, error)
	DeleteStudent(ctx context.Context, studentUid string) error

	CreateCategory(ctx context.Context, req model.CreateCategoryRequest) (model.Category, error)
	GetCategory(ctx context.Context, categoryUid string) (model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	UpdateCategory(ctx context.Context, categoryUid string, req model.UpdateCategoryRequest) (model.Category, error)
	DeleteCategory(ctx context.Context, categoryUid string) error

	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	GetBook(ctx context.Context, bookUid string) (model.Book, error)
	ListBooks(ctx context.Context, categoryUid string, showAll bool, page, size int) (model.ListBooks, error)
	UpdateBook(ctx context.Context, bookUid string, req model.UpdateBookRequest) (model.Book, error)
	DeleteBook(ctx context.Context, bookUid string) error
	AdjustAvailable(ctx context.Context, bookUid string, delta int) (model.Book, error)
}

type AuthService interface {
	RegisterUser(ctx context.Context, req model.UserCreateRequest) (model.User, error)
	Authorize(ctx context.Context, req model.AuthRequest) (model.AuthResponse, error)
	ChangePassword(ctx context.Context, username string, req model.ChangePasswordRequest) error
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, userUid string, req model.UpdateUserRequest) (model.User, error)
	DeleteUser(ctx context.Context, userUid string) error
}

var (
	_ LoanService        = (*service.Service)(nil)
	_ FineService        = (*service.Service)(nil)
	_ ReservationService = (*service.Service)(nil)
	_ CatalogService     = (*service.Service)(nil)
	_ AuthService        = (*service.Service)(nil)
)
