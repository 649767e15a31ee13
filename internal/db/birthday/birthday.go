package birthday

import (
	domain "birthdaybot/internal/core/domain/birthday"
	"birthdaybot/internal/core/domain/dates"
	e "birthdaybot/internal/core/domain/errors"
	"birthdaybot/internal/db"
	"context"
	"errors"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const uniqueViolationCode = "23505"

type PgxBirthdayRepository struct {
	db db.DBTX
}

func NewPgxBirthdayRepository(dbtx db.DBTX) *PgxBirthdayRepository {
	if dbtx == nil {
		panic(e.NewNilArgumentError("dbtx"))
	}
	return &PgxBirthdayRepository{db: dbtx}
}

const createQuery = `
INSERT INTO birthday (owner_chat_id, name, birth_date, service, handle, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, owner_chat_id, name, birth_date, service, handle, created_at`

func (r *PgxBirthdayRepository) Create(
	ctx context.Context,
	input domain.CreateInput,
) (rec domain.Record, err error) {
	row := r.db.QueryRow(
		ctx,
		createQuery,
		int64(input.Owner),
		input.Name,
		encodeDate(input.Date),
		input.Service.String(),
		input.Handle,
		input.CreatedAt,
	)
	rec, err = decodeRecord(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return rec, domain.ErrAlreadyExists
		}
		return rec, err
	}
	return rec, nil
}

const getByNameQuery = `
SELECT id, owner_chat_id, name, birth_date, service, handle, created_at
FROM birthday
WHERE owner_chat_id = $1 AND name = $2`

func (r *PgxBirthdayRepository) GetByName(
	ctx context.Context,
	owner domain.ChatID,
	name string,
) (rec domain.Record, err error) {
	row := r.db.QueryRow(ctx, getByNameQuery, int64(owner), name)
	rec, err = decodeRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return rec, domain.ErrDoesNotExist
	}
	return rec, err
}

const listQuery = `
SELECT id, owner_chat_id, name, birth_date, service, handle, created_at
FROM birthday
WHERE owner_chat_id = $1
ORDER BY id`

func (r *PgxBirthdayRepository) List(ctx context.Context, owner domain.ChatID) ([]domain.Record, error) {
	rows, err := r.db.Query(ctx, listQuery, int64(owner))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return decodeRecords(rows)
}

const listByDayQuery = `
SELECT id, owner_chat_id, name, birth_date, service, handle, created_at
FROM birthday
WHERE owner_chat_id = $1
  AND date_part('day', birth_date) = $2
  AND date_part('month', birth_date) = $3
ORDER BY id`

func (r *PgxBirthdayRepository) ListByDay(
	ctx context.Context,
	owner domain.ChatID,
	day int,
	month int,
) ([]domain.Record, error) {
	rows, err := r.db.Query(ctx, listByDayQuery, int64(owner), day, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return decodeRecords(rows)
}

const deleteQuery = `
DELETE FROM birthday
WHERE owner_chat_id = $1 AND name = $2`

func (r *PgxBirthdayRepository) Delete(ctx context.Context, owner domain.ChatID, name string) error {
	tag, err := r.db.Exec(ctx, deleteQuery, int64(owner), name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDoesNotExist
	}
	return nil
}

const ownersQuery = `
SELECT DISTINCT owner_chat_id
FROM birthday`

func (r *PgxBirthdayRepository) Owners(ctx context.Context) ([]domain.ChatID, error) {
	rows, err := r.db.Query(ctx, ownersQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	owners := make([]domain.ChatID, 0)
	for rows.Next() {
		var owner int64
		if err := rows.Scan(&owner); err != nil {
			return nil, err
		}
		owners = append(owners, domain.ChatID(owner))
	}
	return owners, rows.Err()
}

func encodeDate(d dates.Date) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

func decodeRecord(row pgx.Row) (rec domain.Record, err error) {
	var (
		id        int64
		owner     int64
		birthDate time.Time
		service   string
	)
	err = row.Scan(&id, &owner, &rec.Name, &birthDate, &service, &rec.Handle, &rec.CreatedAt)
	if err != nil {
		return rec, err
	}
	rec.ID = domain.ID(id)
	rec.Owner = domain.ChatID(owner)
	rec.Date = dates.Date{Day: birthDate.Day(), Month: int(birthDate.Month()), Year: birthDate.Year()}
	rec.Service = domain.DecodeServiceTag(service)
	return rec, nil
}

func decodeRecords(rows pgx.Rows) ([]domain.Record, error) {
	records := make([]domain.Record, 0)
	for rows.Next() {
		rec, err := decodeRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
