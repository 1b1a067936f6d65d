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

type UserRepository interface {
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	GetUserByUsername(ctx context.Context, username string) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, userUid string, req model.UpdateUserRequest) (model.User, error)
	UpdatePassword(ctx context.Context, username, passwordHash string) error
	DeleteUser(ctx context.Context, userUid string) error
}

func (r *repository) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	user.UserUid = uuid.NewString()
	user.Status = model.UserActive

	q, args, err := qb.Insert(userTableName).
		Columns("user_uid", "username", "email", "password_hash", "role", "status").
		Values(user.UserUid, user.Username, user.Email, user.PasswordHash, user.Role, user.Status).
		Suffix("returning id").
		ToSql()
	if err != nil {
		return model.User{}, err
	}
	if err := r.db.QueryRow(ctx, q, args...).Scan(&user.ID); err != nil {
		if uniqueViolation(err) {
			return model.User{}, errors.Wrapf(errs.ErrConflict, "username %s already taken", user.Username)
		}
		return model.User{}, err
	}
	return user, nil
}

func (r *repository) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	query, args, err := userSelect().
		Where(sq.Eq{"username": username}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.User{}, err
	}
	defer rows.Close()

	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, errors.Wrapf(errs.ErrNotFound, "user %s", username)
		}
		return model.User{}, err
	}
	return user, nil
}

func (r *repository) ListUsers(ctx context.Context) ([]model.User, error) {
	query, args, err := userSelect().OrderBy("username").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return pgx.CollectRows(rows, pgx.RowToStructByName[model.User])
}

func (r *repository) UpdateUser(ctx context.Context, userUid string, req model.UpdateUserRequest) (model.User, error) {
	upd := qb.Update(userTableName).Where(sq.Eq{"user_uid": userUid})
	changed := false
	set := func(col string, v any) {
		upd = upd.Set(col, v)
		changed = true
	}
	if req.Email != "" {
		set("email", req.Email)
	}
	if req.Role != "" {
		set("role", req.Role)
	}
	if req.Status != "" {
		set("status", req.Status)
	}
	if changed {
		query, args, err := upd.ToSql()
		if err != nil {
			return model.User{}, err
		}
		ct, err := r.db.Exec(ctx, query, args...)
		if err != nil {
			return model.User{}, err
		}
		if ct.RowsAffected() == 0 {
			return model.User{}, errors.Wrapf(errs.ErrNotFound, "user %s", userUid)
		}
	}

	query, args, err := userSelect().Where(sq.Eq{"user_uid": userUid}).Limit(1).ToSql()
	if err != nil {
		return model.User{}, err
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.User{}, err
	}
	defer rows.Close()

	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, errors.Wrapf(errs.ErrNotFound, "user %s", userUid)
		}
		return model.User{}, err
	}
	return user, nil
}

func (r *repository) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	ct, err := r.db.Exec(ctx,
		`update users set password_hash = $1 where username = $2`, passwordHash, username)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errors.Wrapf(errs.ErrNotFound, "user %s", username)
	}
	return nil
}

func (r *repository) DeleteUser(ctx context.Context, userUid string) error {
	ct, err := r.db.Exec(ctx, `delete from users where user_uid = $1`, userUid)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errors.Wrapf(errs.ErrNotFound, "user %s", userUid)
	}
	return nil
}

func userSelect() sq.SelectBuilder {
	return qb.Select("id", "user_uid", "username", "email", "password_hash", "role", "status").
		From(userTableName)
}
