package service

import (
	"context"

	"github.com/aolivares/school-library-service/internal/model"
)

func (s *Service) CreateStudent(ctx context.Context, req model.CreateStudentRequest) (model.Student, error) {
	return s.repo.CreateStudent(ctx, req)
}

func (s *Service) GetStudent(ctx context.Context, studentUid string) (model.Student, error) {
	return s.repo.GetStudent(ctx, studentUid)
}

func (s *Service) ListStudents(ctx context.Context, page, size int) (model.ListStudents, error) {
	return s.repo.ListStudents(ctx, page, size)
}

func (s *Service) UpdateStudent(ctx context.Context, studentUid string, req model.UpdateStudentRequest) (model.Student, error) {
	return s.repo.UpdateStudent(ctx, studentUid, req)
}

func (s *Service) DeleteStudent(ctx context.Context, studentUid string) error {
	return s.repo.DeleteStudent(ctx, studentUid)
}

func (s *Service) CreateCategory(ctx context.Context, req model.CreateCategoryRequest) (model.Category, error) {
	return s.repo.CreateCategory(ctx, req)
}

func (s *Service) GetCategory(ctx context.Context, categoryUid string) (model.Category, error) {
	return s.repo.GetCategory(ctx, categoryUid)
}

func (s *Service) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) UpdateCategory(ctx context.Context, categoryUid string, req model.UpdateCategoryRequest) (model.Category, error) {
	return s.repo.UpdateCategory(ctx, categoryUid, req)
}

func (s *Service) DeleteCategory(ctx context.Context, categoryUid string) error {
	return s.repo.DeleteCategory(ctx, categoryUid)
}

func (s *Service) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	return s.repo.CreateBook(ctx, req)
}

func (s *Service) GetBook(ctx context.Context, bookUid string) (model.Book, error) {
	return s.repo.GetBook(ctx, bookUid)
}

func (s *Service) ListBooks(ctx context.Context, categoryUid string, showAll bool, page, size int) (model.ListBooks, error) {
	return s.repo.ListBooks(ctx, categoryUid, showAll, page, size)
}

func (s *Service) UpdateBook(ctx context.Context, bookUid string, req model.UpdateBookRequest) (model.Book, error) {
	return s.repo.UpdateBook(ctx, bookUid, req)
}

func (s *Service) DeleteBook(ctx context.Context, bookUid string) error {
	return s.repo.DeleteBook(ctx, bookUid)
}

func (s *Service) AdjustAvailable(ctx context.Context, bookUid string, delta int) (model.Book, error) {
	return s.repo.AdjustAvailable(ctx, bookUid, delta)
}
