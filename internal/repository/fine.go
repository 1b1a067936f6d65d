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

type FineRepository interface {
	CreateFine(ctx context.Context, fine model.Fine, loanUid string) (model.Fine, error)
	GetFine(ctx context.Context, fineUid string) (model.Fine, error)
	ListFines(ctx context.Context, studentUid string, status model.FineStatus, page, size int) ([]model.Fine, error)
	PayFine(ctx context.Context, fineUid string) (model.Fine, error)
}

func insertFine(ctx context.Context, tx pgx.Tx, fine *model.Fine, loanID *int) error {
	fine.FineUid = uuid.NewString()
	fine.Status = model.FinePending

	q, args, err := qb.Insert(fineTableName).
		Columns("fine_uid", "student_id", "loan_id", "amount", "reason", "status").
		Values(fine.FineUid, fine.StudentID, loanID, fine.Amount, fine.Reason, fine.Status).
		Suffix("returning id, issued_at").
		ToSql()
	if err != nil {
		return err
	}
	return tx.QueryRow(ctx, q, args...).Scan(&fine.ID, &fine.IssuedAt)
}

func (r *repository) CreateFine(ctx context.Context, fine model.Fine, loanUid string) (model.Fine, error) {
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		var err error
		if fine.StudentID, err = r.studentIDByUid(ctx, tx, fine.StudentUid); err != nil {
			return err
		}
		var loanID *int
		if loanUid != "" {
			var id int
			err := tx.QueryRow(ctx, `select id from loans where loan_uid = $1`, loanUid).Scan(&id)
			if errors.Is(err, pgx.ErrNoRows) {
				return errors.Wrapf(errs.ErrNotFound, "loan %s", loanUid)
			}
			if err != nil {
				return err
			}
			loanID = &id
			fine.LoanUid = &loanUid
		}
		return insertFine(ctx, tx, &fine, loanID)
	})
	if err != nil {
		return model.Fine{}, err
	}
	return fine, nil
}

func (r *repository) GetFine(ctx context.Context, fineUid string) (model.Fine, error) {
	query, args, err := fineSelect().
		Where(sq.Eq{"fine_uid": fineUid}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Fine{}, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.Fine{}, err
	}
	defer rows.Close()

	fine, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Fine])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Fine{}, errors.Wrapf(errs.ErrNotFound, "fine %s", fineUid)
		}
		return model.Fine{}, err
	}
	return fine, nil
}

func (r *repository) ListFines(ctx context.Context, studentUid string, status model.FineStatus, page, size int) ([]model.Fine, error) {
	q := fineSelect()
	if studentUid != "" {
		q = q.Where(sq.Eq{"s.student_uid": studentUid})
	}
	if status != "" {
		q = q.Where(sq.Eq{"f.status": status})
	}
	query, args, err := paginate(q, page, size).OrderBy("f.id desc").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return pgx.CollectRows(rows, pgx.RowToStructByName[model.Fine])
}

// PayFine transitions PENDING -> PAID exactly once; the conditional update
// makes a concurrent double pay lose with ErrInvalidState.
func (r *repository) PayFine(ctx context.Context, fineUid string) (model.Fine, error) {
	ct, err := r.db.Exec(ctx,
		`update fines set status = $1 where fine_uid = $2 and status = $3`,
		model.FinePaid, fineUid, model.FinePending)
	if err != nil {
		return model.Fine{}, err
	}
	if ct.RowsAffected() == 0 {
		fine, err := r.GetFine(ctx, fineUid)
		if err != nil {
			return model.Fine{}, err
		}
		return model.Fine{}, errors.Wrapf(errs.ErrInvalidState, "fine %s is already %s", fineUid, fine.Status)
	}
	return r.GetFine(ctx, fineUid)
}

func fineSelect() sq.SelectBuilder {
	return qb.Select("f.id", "f.fine_uid", "f.student_id", "s.student_uid",
		"l.loan_uid", "f.amount", "f.reason", "f.issued_at", "f.status").
		From(fineTableName + " f").
		Join("students s on s.id = f.student_id").
		LeftJoin("loans l on l.id = f.loan_id")
}
