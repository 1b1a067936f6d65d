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

type LoanRepository interface {
	CreateLoan(ctx context.Context, req model.CreateLoanRequest) (model.Loan, error)
	GetLoan(ctx context.Context, loanUid string) (model.Loan, error)
	ListLoans(ctx context.Context, status model.LoanStatus, page, size int) ([]model.Loan, error)
	CreateReturn(ctx context.Context, loan model.Loan, ret model.Return, fine *model.Fine) (model.Return, error)
	GetReturn(ctx context.Context, returnUid string) (model.Return, error)
	ListReturns(ctx context.Context, page, size int) ([]model.Return, error)
}

// CreateLoan checks out a copy: the stock decrement and the loan insert land
// in one transaction, so two checkouts of the last copy cannot both succeed.
func (r *repository) CreateLoan(ctx context.Context, req model.CreateLoanRequest) (model.Loan, error) {
	loan := model.Loan{
		LoanUid:            uuid.NewString(),
		StudentUid:         req.StudentUid,
		BookUid:            req.BookUid,
		CheckoutDate:       req.CheckoutDate,
		ExpectedReturnDate: req.ExpectedReturnDate,
		Status:             model.LoanActive,
	}
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		var err error
		if loan.StudentID, err = r.studentIDByUid(ctx, tx, req.StudentUid); err != nil {
			return err
		}
		if loan.BookID, err = r.bookIDByUid(ctx, tx, req.BookUid); err != nil {
			return err
		}
		if err = adjustAvailable(ctx, tx, loan.BookID, -1); err != nil {
			return err
		}
		q, args, err := qb.Insert(loanTableName).
			Columns("loan_uid", "student_id", "book_id", "checkout_date", "expected_return_date", "status").
			Values(loan.LoanUid, loan.StudentID, loan.BookID, loan.CheckoutDate, loan.ExpectedReturnDate, loan.Status).
			Suffix("returning id").
			ToSql()
		if err != nil {
			return err
		}
		return tx.QueryRow(ctx, q, args...).Scan(&loan.ID)
	})
	if err != nil {
		return model.Loan{}, err
	}
	return loan, nil
}

func (r *repository) GetLoan(ctx context.Context, loanUid string) (model.Loan, error) {
	query, args, err := loanSelect().
		Where(sq.Eq{"loan_uid": loanUid}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.Loan{}, err
	}
	defer rows.Close()

	loan, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Loan])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Loan{}, errors.Wrapf(errs.ErrNotFound, "loan %s", loanUid)
		}
		return model.Loan{}, err
	}
	return loan, nil
}

func (r *repository) ListLoans(ctx context.Context, status model.LoanStatus, page, size int) ([]model.Loan, error) {
	q := loanSelect()
	if status != "" {
		q = q.Where(sq.Eq{"l.status": status})
	}
	query, args, err := paginate(q, page, size).OrderBy("l.id desc").ToSql()
	if err != nil {
		return nil, err
	}
	r.log.Debug("ListLoans", zap.String("query", query), zap.Any("args", args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return pgx.CollectRows(rows, pgx.RowToStructByName[model.Loan])
}

// CreateReturn applies the whole return as one unit: return insert, loan
// transition, stock increment and the optional fine either all land or none
// do. The unique index on returns.loan_id rejects a second return.
func (r *repository) CreateReturn(ctx context.Context, loan model.Loan, ret model.Return, fine *model.Fine) (model.Return, error) {
	ret.ReturnUid = uuid.NewString()
	ret.LoanID = loan.ID
	ret.LoanUid = loan.LoanUid

	err := r.inTx(ctx, func(tx pgx.Tx) error {
		q, args, err := qb.Insert(returnTableName).
			Columns("return_uid", "loan_id", "actual_return_date", "condition", "late_days", "notes").
			Values(ret.ReturnUid, ret.LoanID, ret.ActualReturnDate, ret.Condition, ret.LateDays, ret.Notes).
			Suffix("returning id").
			ToSql()
		if err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, q, args...).Scan(&ret.ID); err != nil {
			if uniqueViolation(err) {
				return errors.Wrapf(errs.ErrConflict, "loan %s already returned", loan.LoanUid)
			}
			return err
		}

		ct, err := tx.Exec(ctx,
			`update loans set status = $1 where id = $2 and status = $3`,
			model.LoanReturned, loan.ID, model.LoanActive)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			return errors.Wrapf(errs.ErrInvalidState, "loan %s is not active", loan.LoanUid)
		}

		if err := adjustAvailable(ctx, tx, loan.BookID, 1); err != nil {
			return err
		}

		if fine != nil {
			return insertFine(ctx, tx, fine, &loan.ID)
		}
		return nil
	})
	if err != nil {
		return model.Return{}, err
	}
	return ret, nil
}

func (r *repository) GetReturn(ctx context.Context, returnUid string) (model.Return, error) {
	query, args, err := returnSelect().
		Where(sq.Eq{"return_uid": returnUid}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Return{}, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.Return{}, err
	}
	defer rows.Close()

	ret, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Return])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Return{}, errors.Wrapf(errs.ErrNotFound, "return %s", returnUid)
		}
		return model.Return{}, err
	}
	return ret, nil
}

func (r *repository) ListReturns(ctx context.Context, page, size int) ([]model.Return, error) {
	query, args, err := paginate(returnSelect(), page, size).OrderBy("rt.id desc").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return pgx.CollectRows(rows, pgx.RowToStructByName[model.Return])
}

func loanSelect() sq.SelectBuilder {
	return qb.Select("l.id", "l.loan_uid", "l.student_id", "s.student_uid",
		"l.book_id", "b.book_uid", "l.checkout_date", "l.expected_return_date", "l.status").
		From(loanTableName + " l").
		Join("students s on s.id = l.student_id").
		Join("books b on b.id = l.book_id")
}

func returnSelect() sq.SelectBuilder {
	return qb.Select("rt.id", "rt.return_uid", "rt.loan_id", "l.loan_uid",
		"rt.actual_return_date", "rt.condition", "rt.late_days", "rt.notes").
		From(returnTableName + " rt").
		Join("loans l on l.id = rt.loan_id")
}
