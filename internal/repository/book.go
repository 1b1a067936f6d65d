package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/aolivares/school-library-service/internal/errs"
	"github.com/aolivares/school-library-service/internal/model"
)

type BookRepository interface {
	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	GetBook(ctx context.Context, bookUid string) (model.Book, error)
	ListBooks(ctx context.Context, categoryUid string, showAll bool, page, size int) (model.ListBooks, error)
	UpdateBook(ctx context.Context, bookUid string, req model.UpdateBookRequest) (model.Book, error)
	DeleteBook(ctx context.Context, bookUid string) error
	AdjustAvailable(ctx context.Context, bookUid string, delta int) (model.Book, error)
}

func (r *repository) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	bookUid := uuid.NewString()
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		var categoryID int
		err := tx.QueryRow(ctx, `select id from categories where category_uid = $1`, req.CategoryUid).
			Scan(&categoryID)
		if errors.Is(err, pgx.ErrNoRows) {
			return errors.Wrapf(errs.ErrNotFound, "category %s", req.CategoryUid)
		}
		if err != nil {
			return err
		}

		q, args, err := qb.Insert(bookTableName).
			Columns("book_uid", "isbn", "title", "author", "publisher", "year",
				"category_id", "location", "description", "total_count", "available_count").
			Values(bookUid, req.ISBN, req.Title, req.Author, req.Publisher, req.Year,
				categoryID, req.Location, req.Description, req.Total, req.Total).
			ToSql()
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, q, args...)
		return err
	})
	if err != nil {
		return model.Book{}, err
	}
	return r.GetBook(ctx, bookUid)
}

func (r *repository) GetBook(ctx context.Context, bookUid string) (model.Book, error) {
	query, args, err := bookSelect().
		Where(sq.Eq{"book_uid": bookUid}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.Book{}, err
	}
	defer rows.Close()

	book, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Book])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Book{}, errors.Wrapf(errs.ErrNotFound, "book %s", bookUid)
		}
		return model.Book{}, err
	}
	return book, nil
}

func (r *repository) ListBooks(ctx context.Context, categoryUid string, showAll bool, page, size int) (model.ListBooks, error) {
	q := bookSelect()
	if categoryUid != "" {
		q = q.Where(sq.Eq{"c.category_uid": categoryUid})
	}
	if !showAll {
		q = q.Where(sq.Gt{"available_count": 0})
	}
	query, args, err := paginate(q, page, size).OrderBy("b.id").ToSql()
	if err != nil {
		return model.ListBooks{}, err
	}
	r.log.Debug("ListBooks", zap.String("query", query), zap.Any("args", args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.ListBooks{}, err
	}
	defer rows.Close()

	books, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Book])
	if err != nil {
		return model.ListBooks{}, err
	}

	return model.ListBooks{
		Paging: model.Paging{
			Page:          page,
			PageSize:      size,
			TotalElements: len(books),
		},
		Items: books,
	}, nil
}

func (r *repository) UpdateBook(ctx context.Context, bookUid string, req model.UpdateBookRequest) (model.Book, error) {
	upd := qb.Update(bookTableName).Where(sq.Eq{"book_uid": bookUid})
	changed := false
	set := func(col string, v any) {
		upd = upd.Set(col, v)
		changed = true
	}
	if req.Title != "" {
		set("title", req.Title)
	}
	if req.Author != "" {
		set("author", req.Author)
	}
	if req.Publisher != "" {
		set("publisher", req.Publisher)
	}
	if req.Year != 0 {
		set("year", req.Year)
	}
	if req.Location != "" {
		set("location", req.Location)
	}
	if req.Description != "" {
		set("description", req.Description)
	}

	err := r.inTx(ctx, func(tx pgx.Tx) error {
		if req.CategoryUid != "" {
			var categoryID int
			err := tx.QueryRow(ctx, `select id from categories where category_uid = $1`, req.CategoryUid).
				Scan(&categoryID)
			if errors.Is(err, pgx.ErrNoRows) {
				return errors.Wrapf(errs.ErrNotFound, "category %s", req.CategoryUid)
			}
			if err != nil {
				return err
			}
			set("category_id", categoryID)
		}
		if !changed {
			return nil
		}
		query, args, err := upd.ToSql()
		if err != nil {
			return err
		}
		ct, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			return errors.Wrapf(errs.ErrNotFound, "book %s", bookUid)
		}
		return nil
	})
	if err != nil {
		return model.Book{}, err
	}
	return r.GetBook(ctx, bookUid)
}

func (r *repository) DeleteBook(ctx context.Context, bookUid string) error {
	ct, err := r.db.Exec(ctx, `delete from books where book_uid = $1`, bookUid)
	if err != nil {
		if fkViolation(err) {
			return errors.Wrapf(errs.ErrConflict, "book %s is referenced by loans or reservations", bookUid)
		}
		return err
	}
	if ct.RowsAffected() == 0 {
		return errors.Wrapf(errs.ErrNotFound, "book %s", bookUid)
	}
	return nil
}

// AdjustAvailable is the external delta contract over availability; all
// internal mutations go through the same guarded update.
func (r *repository) AdjustAvailable(ctx context.Context, bookUid string, delta int) (model.Book, error) {
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		bookID, err := r.bookIDByUid(ctx, tx, bookUid)
		if err != nil {
			return err
		}
		return adjustAvailable(ctx, tx, bookID, delta)
	})
	if err != nil {
		return model.Book{}, err
	}
	return r.GetBook(ctx, bookUid)
}

func bookSelect() sq.SelectBuilder {
	return qb.Select("b.id", "b.book_uid", "b.isbn", "b.title", "b.author", "b.publisher",
		"b.year", "c.category_uid", "b.location", "b.description", "b.total_count", "b.available_count").
		From(bookTableName + " b").
		Join("categories c on c.id = b.category_id")
}
