package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/aolivares/school-library-service/internal/errs"
	"github.com/aolivares/school-library-service/internal/model"
)

type StudentRepository interface {
	CreateStudent(ctx context.Context, req model.CreateStudentRequest) (model.Student, error)
	GetStudent(ctx context.Context, studentUid string) (model.Student, error)
	ListStudents(ctx context.Context, page, size int) (model.ListStudents, error)
	UpdateStudent(ctx context.Context, studentUid string, req model.UpdateStudentRequest) (model.Student, error)
	DeleteStudent(ctx context.Context, studentUid string) error
}

func (r *repository) CreateStudent(ctx context.Context, req model.CreateStudentRequest) (model.Student, error) {
	student := model.Student{
		StudentUid: uuid.NewString(),
		Enrollment: req.Enrollment,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Grade:      req.Grade,
		Section:    req.Section,
		Status:     model.StudentActive,
	}
	q, args, err := qb.Insert(studentTableName).
		Columns("student_uid", "enrollment", "first_name", "last_name", "email", "phone", "grade", "section", "status").
		Values(student.StudentUid, student.Enrollment, student.FirstName, student.LastName,
			student.Email, student.Phone, student.Grade, student.Section, student.Status).
		Suffix("returning id").
		ToSql()
	if err != nil {
		return model.Student{}, err
	}
	if err := r.db.QueryRow(ctx, q, args...).Scan(&student.ID); err != nil {
		if uniqueViolation(err) {
			return model.Student{}, errors.Wrapf(errs.ErrConflict, "enrollment %s already registered", req.Enrollment)
		}
		return model.Student{}, err
	}
	return student, nil
}

func (r *repository) GetStudent(ctx context.Context, studentUid string) (model.Student, error) {
	query, args, err := studentSelect().
		Where(sq.Eq{"student_uid": studentUid}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Student{}, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.Student{}, err
	}
	defer rows.Close()

	student, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Student])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Student{}, errors.Wrapf(errs.ErrNotFound, "student %s", studentUid)
		}
		return model.Student{}, err
	}
	return student, nil
}

func (r *repository) ListStudents(ctx context.Context, page, size int) (model.ListStudents, error) {
	query, args, err := paginate(studentSelect(), page, size).OrderBy("id").ToSql()
	if err != nil {
		return model.ListStudents{}, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.ListStudents{}, err
	}
	defer rows.Close()

	students, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Student])
	if err != nil {
		return model.ListStudents{}, err
	}

	return model.ListStudents{
		Paging: model.Paging{
			Page:          page,
			PageSize:      size,
			TotalElements: len(students),
		},
		Items: students,
	}, nil
}

func (r *repository) UpdateStudent(ctx context.Context, studentUid string, req model.UpdateStudentRequest) (model.Student, error) {
	upd := qb.Update(studentTableName).Where(sq.Eq{"student_uid": studentUid})
	changed := false
	set := func(col string, v any) {
		upd = upd.Set(col, v)
		changed = true
	}
	if req.FirstName != "" {
		set("first_name", req.FirstName)
	}
	if req.LastName != "" {
		set("last_name", req.LastName)
	}
	if req.Email != "" {
		set("email", req.Email)
	}
	if req.Phone != "" {
		set("phone", req.Phone)
	}
	if req.Grade != "" {
		set("grade", req.Grade)
	}
	if req.Section != "" {
		set("section", req.Section)
	}
	if req.Status != "" {
		set("status", req.Status)
	}
	if changed {
		query, args, err := upd.ToSql()
		if err != nil {
			return model.Student{}, err
		}
		ct, err := r.db.Exec(ctx, query, args...)
		if err != nil {
			return model.Student{}, err
		}
		if ct.RowsAffected() == 0 {
			return model.Student{}, errors.Wrapf(errs.ErrNotFound, "student %s", studentUid)
		}
	}
	return r.GetStudent(ctx, studentUid)
}

func (r *repository) DeleteStudent(ctx context.Context, studentUid string) error {
	ct, err := r.db.Exec(ctx, `delete from students where student_uid = $1`, studentUid)
	if err != nil {
		if fkViolation(err) {
			return errors.Wrapf(errs.ErrConflict, "student %s has loans, fines or reservations", studentUid)
		}
		return err
	}
	if ct.RowsAffected() == 0 {
		return errors.Wrapf(errs.ErrNotFound, "student %s", studentUid)
	}
	return nil
}

func studentSelect() sq.SelectBuilder {
	return qb.Select("id", "student_uid", "enrollment", "first_name", "last_name",
		"email", "phone", "grade", "section", "status").
		From(studentTableName)
}
