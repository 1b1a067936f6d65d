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

type CategoryRepository interface {
	CreateCategory(ctx context.Context, req model.CreateCategoryRequest) (model.Category, error)
	GetCategory(ctx context.Context, categoryUid string) (model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	UpdateCategory(ctx context.Context, categoryUid string, req model.UpdateCategoryRequest) (model.Category, error)
	DeleteCategory(ctx context.Context, categoryUid string) error
}

func (r *repository) CreateCategory(ctx context.Context, req model.CreateCategoryRequest) (model.Category, error) {
	category := model.Category{
		CategoryUid: uuid.NewString(),
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
	}
	q, args, err := qb.Insert(categoryTableName).
		Columns("category_uid", "code", "name", "description").
		Values(category.CategoryUid, category.Code, category.Name, category.Description).
		Suffix("returning id").
		ToSql()
	if err != nil {
		return model.Category{}, err
	}
	if err := r.db.QueryRow(ctx, q, args...).Scan(&category.ID); err != nil {
		if uniqueViolation(err) {
			return model.Category{}, errors.Wrapf(errs.ErrConflict, "category code %s already exists", req.Code)
		}
		return model.Category{}, err
	}
	return category, nil
}

func (r *repository) GetCategory(ctx context.Context, categoryUid string) (model.Category, error) {
	query, args, err := qb.Select("id", "category_uid", "code", "name", "description").
		From(categoryTableName).
		Where(sq.Eq{"category_uid": categoryUid}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Category{}, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.Category{}, err
	}
	defer rows.Close()

	category, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Category])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Category{}, errors.Wrapf(errs.ErrNotFound, "category %s", categoryUid)
		}
		return model.Category{}, err
	}
	return category, nil
}

func (r *repository) ListCategories(ctx context.Context) ([]model.Category, error) {
	query, args, err := qb.Select("id", "category_uid", "code", "name", "description").
		From(categoryTableName).
		OrderBy("code").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return pgx.CollectRows(rows, pgx.RowToStructByName[model.Category])
}

func (r *repository) UpdateCategory(ctx context.Context, categoryUid string, req model.UpdateCategoryRequest) (model.Category, error) {
	upd := qb.Update(categoryTableName).Where(sq.Eq{"category_uid": categoryUid})
	changed := false
	set := func(col string, v any) {
		upd = upd.Set(col, v)
		changed = true
	}
	if req.Code != "" {
		set("code", req.Code)
	}
	if req.Name != "" {
		set("name", req.Name)
	}
	if req.Description != "" {
		set("description", req.Description)
	}
	if changed {
		query, args, err := upd.ToSql()
		if err != nil {
			return model.Category{}, err
		}
		ct, err := r.db.Exec(ctx, query, args...)
		if err != nil {
			if uniqueViolation(err) {
				return model.Category{}, errors.Wrapf(errs.ErrConflict, "code %s already taken", req.Code)
			}
			return model.Category{}, err
		}
		if ct.RowsAffected() == 0 {
			return model.Category{}, errors.Wrapf(errs.ErrNotFound, "category %s", categoryUid)
		}
	}
	return r.GetCategory(ctx, categoryUid)
}

func (r *repository) DeleteCategory(ctx context.Context, categoryUid string) error {
	ct, err := r.db.Exec(ctx, `delete from categories where category_uid = $1`, categoryUid)
	if err != nil {
		if fkViolation(err) {
			return errors.Wrapf(errs.ErrConflict, "category %s is referenced by books", categoryUid)
		}
		return err
	}
	if ct.RowsAffected() == 0 {
		return errors.Wrapf(errs.ErrNotFound, "category %s", categoryUid)
	}
	return nil
}
