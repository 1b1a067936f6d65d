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

type ReservationRepository interface {
	CreateReservation(ctx context.Context, req model.CreateReservationRequest) (model.Reservation, error)
	GetReservation(ctx context.Context, reservationUid string) (model.Reservation, error)
	ListReservations(ctx context.Context, studentUid string, status model.ReservationStatus, page, size int) ([]model.Reservation, error)
	CancelReservation(ctx context.Context, reservationUid string) (model.Reservation, error)
	FulfillReservation(ctx context.Context, reservationUid string, checkout, expectedReturn model.Date) (model.Loan, error)
	ExpireDueReservations(ctx context.Context) (int, error)
}

// A reservation holds stock exactly like a loan, so creation decrements
// availability in the same transaction as the insert.
func (r *repository) CreateReservation(ctx context.Context, req model.CreateReservationRequest) (model.Reservation, error) {
	rsv := model.Reservation{
		ReservationUid: uuid.NewString(),
		StudentUid:     req.StudentUid,
		BookUid:        req.BookUid,
		ReservedDate:   req.ReservedDate,
		ExpirationDate: req.ExpirationDate,
		Status:         model.ReservationActive,
	}
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		var err error
		if rsv.StudentID, err = r.studentIDByUid(ctx, tx, req.StudentUid); err != nil {
			return err
		}
		if rsv.BookID, err = r.bookIDByUid(ctx, tx, req.BookUid); err != nil {
			return err
		}
		if err = adjustAvailable(ctx, tx, rsv.BookID, -1); err != nil {
			return err
		}
		q, args, err := qb.Insert(reservationTableName).
			Columns("reservation_uid", "student_id", "book_id", "reserved_date", "expiration_date", "status").
			Values(rsv.ReservationUid, rsv.StudentID, rsv.BookID, rsv.ReservedDate, rsv.ExpirationDate, rsv.Status).
			Suffix("returning id").
			ToSql()
		if err != nil {
			return err
		}
		return tx.QueryRow(ctx, q, args...).Scan(&rsv.ID)
	})
	if err != nil {
		return model.Reservation{}, err
	}
	return rsv, nil
}

func (r *repository) GetReservation(ctx context.Context, reservationUid string) (model.Reservation, error) {
	query, args, err := reservationSelect().
		Where(sq.Eq{"reservation_uid": reservationUid}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Reservation{}, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.Reservation{}, err
	}
	defer rows.Close()

	rsv, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Reservation])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Reservation{}, errors.Wrapf(errs.ErrNotFound, "reservation %s", reservationUid)
		}
		return model.Reservation{}, err
	}
	return rsv, nil
}

func (r *repository) ListReservations(ctx context.Context, studentUid string, status model.ReservationStatus, page, size int) ([]model.Reservation, error) {
	q := reservationSelect()
	if studentUid != "" {
		q = q.Where(sq.Eq{"s.student_uid": studentUid})
	}
	if status != "" {
		q = q.Where(sq.Expr(derivedStatusExpr+" = ?", status))
	}
	query, args, err := paginate(q, page, size).OrderBy("rv.id desc").ToSql()
	if err != nil {
		return nil, err
	}
	r.log.Debug("ListReservations", zap.String("query", query), zap.Any("args", args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return pgx.CollectRows(rows, pgx.RowToStructByName[model.Reservation])
}

func (r *repository) CancelReservation(ctx context.Context, reservationUid string) (model.Reservation, error) {
	var rsv model.Reservation
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
update reservations
    set status = $1
where reservation_uid = $2
  and status = $3
  and expiration_date >= current_date
returning id, book_id`,
			model.ReservationCancelled, reservationUid, model.ReservationActive).
			Scan(&rsv.ID, &rsv.BookID)
		if errors.Is(err, pgx.ErrNoRows) {
			return r.reservationConflict(ctx, tx, reservationUid)
		}
		if err != nil {
			return err
		}
		return adjustAvailable(ctx, tx, rsv.BookID, 1)
	})
	if err != nil {
		return model.Reservation{}, err
	}
	return r.GetReservation(ctx, reservationUid)
}

// FulfillReservation converts an active hold into a loan. The copy stays
// off the shelf, so availability is untouched.
func (r *repository) FulfillReservation(ctx context.Context, reservationUid string, checkout, expectedReturn model.Date) (model.Loan, error) {
	loan := model.Loan{
		LoanUid:            uuid.NewString(),
		CheckoutDate:       checkout,
		ExpectedReturnDate: expectedReturn,
		Status:             model.LoanActive,
	}
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
update reservations
    set status = $1
where reservation_uid = $2
  and status = $3
  and expiration_date >= current_date
returning student_id, book_id`,
			model.ReservationFulfilled, reservationUid, model.ReservationActive).
			Scan(&loan.StudentID, &loan.BookID)
		if errors.Is(err, pgx.ErrNoRows) {
			return r.reservationConflict(ctx, tx, reservationUid)
		}
		if err != nil {
			return err
		}

		if err := tx.QueryRow(ctx, `select student_uid from students where id = $1`, loan.StudentID).
			Scan(&loan.StudentUid); err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, `select book_uid from books where id = $1`, loan.BookID).
			Scan(&loan.BookUid); err != nil {
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

// ExpireDueReservations is the sweep behind the read-time EXPIRED view: it
// writes the terminal status and releases the held stock.
func (r *repository) ExpireDueReservations(ctx context.Context) (int, error) {
	var expired int
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
update reservations
    set status = $1
where status = $2 and expiration_date < current_date
returning book_id`,
			model.ReservationExpired, model.ReservationActive)
		if err != nil {
			return err
		}
		bookIDs, err := pgx.CollectRows(rows, pgx.RowTo[int])
		if err != nil {
			return err
		}
		for _, bookID := range bookIDs {
			if err := adjustAvailable(ctx, tx, bookID, 1); err != nil {
				return err
			}
		}
		expired = len(bookIDs)
		return nil
	})
	return expired, err
}

// reservationConflict distinguishes a missing reservation from one in a
// terminal (or logically expired) state.
func (r *repository) reservationConflict(ctx context.Context, tx pgx.Tx, reservationUid string) error {
	var status model.ReservationStatus
	err := tx.QueryRow(ctx, `select `+derivedStatusExpr+` from reservations rv where reservation_uid = $1`, reservationUid).
		Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return errors.Wrapf(errs.ErrNotFound, "reservation %s", reservationUid)
	}
	if err != nil {
		return err
	}
	return errors.Wrapf(errs.ErrInvalidState, "reservation %s is %s", reservationUid, status)
}

// ACTIVE rows past their expiration read as EXPIRED until the sweep
// performs the actual write.
const derivedStatusExpr = `case when rv.status = 'ACTIVE' and rv.expiration_date < current_date then 'EXPIRED' else rv.status end`

func reservationSelect() sq.SelectBuilder {
	return qb.Select("rv.id", "rv.reservation_uid", "rv.student_id", "s.student_uid",
		"rv.book_id", "b.book_uid", "rv.reserved_date", "rv.expiration_date",
		derivedStatusExpr+" as status").
		From(reservationTableName + " rv").
		Join("students s on s.id = rv.student_id").
		Join("books b on b.id = rv.book_id")
}
