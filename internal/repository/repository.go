package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/aolivares/school-library-service/internal/errs"
)

//go:generate go run github.com/golang/mock/mockgen -destination=mocks/mock.go github.com/aolivares/school-library-service/internal/repository Repository

type Repository interface {
	StudentRepository
	CategoryRepository
	BookRepository
	LoanRepository
	FineRepository
	ReservationRepository
	UserRepository
}

type repository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewRepository(db *pgxpool.Pool, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	studentTableName     = `students`
	categoryTableName    = `categories`
	bookTableName        = `books`
	loanTableName        = `loans`
	returnTableName      = `returns`
	fineTableName        = `fines`
	reservationTableName = `reservations`
	userTableName        = `users`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// adjustAvailable applies the availability delta contract: the update only
// lands while 0 <= available + delta <= total, which serializes contending
// writers on the book row. Zero rows affected means the stock guard refused.
func adjustAvailable(ctx context.Context, tx pgx.Tx, bookID, delta int) error {
	q := `
update books
    set available_count = available_count + @delta
where id = @book_id
  and available_count + @delta between 0 and total_count`
	args := pgx.NamedArgs{
		"book_id": bookID,
		"delta":   delta,
	}
	ct, err := tx.Exec(ctx, q, args)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		if delta < 0 {
			return errors.Wrapf(errs.ErrOutOfStock, "book id %d", bookID)
		}
		return errors.Wrapf(errs.ErrConflict, "book id %d availability above total", bookID)
	}
	return nil
}

func (r *repository) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func isPgErr(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

func uniqueViolation(err error) bool {
	return isPgErr(err, pgerrcode.UniqueViolation)
}

func fkViolation(err error) bool {
	return isPgErr(err, pgerrcode.ForeignKeyViolation)
}

func paginate(q sq.SelectBuilder, page, size int) sq.SelectBuilder {
	if page > 0 && size > 0 {
		q = q.Limit(uint64(size)).Offset(uint64((page - 1) * size))
	}
	return q
}

func (r *repository) studentIDByUid(ctx context.Context, tx pgx.Tx, uid string) (int, error) {
	var id int
	err := tx.QueryRow(ctx, `select id from students where student_uid = $1`, uid).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, errors.Wrapf(errs.ErrNotFound, "student %s", uid)
	}
	return id, err
}

func (r *repository) bookIDByUid(ctx context.Context, tx pgx.Tx, uid string) (int, error) {
	var id int
	err := tx.QueryRow(ctx, `select id from books where book_uid = $1`, uid).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, errors.Wrapf(errs.ErrNotFound, "book %s", uid)
	}
	return id, err
}

var _ Repository = (*repository)(nil)
