package profile

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) FindByID(ctx context.Context, id int64) (Profile, error) {
	const query = `
	SELECT id, name, age, sex, date_of_birth, height, weight, unit_system, created_at, updated_at
	FROM profiles
	WHERE id = $1
	LIMIT 1
	`
	var p Profile
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, id).Scan(
		&p.ID, &p.Name, &p.Age, &p.Sex, &p.DateOfBirth,
		&p.Height, &p.Weight, &p.Units, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	return p, nil
}

// Save upserts p by id. The unit system column defaults to METRIC when the
// caller leaves it empty; created_at survives overwrites.
func (r *PostgresRepo) Save(ctx context.Context, p *Profile) error {
	const query = `
	INSERT INTO profiles (id, name, age, sex, date_of_birth, height, weight, unit_system)
	VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE(NULLIF($8, ''), 'METRIC'))
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		age = EXCLUDED.age,
		sex = EXCLUDED.sex,
		date_of_birth = EXCLUDED.date_of_birth,
		height = EXCLUDED.height,
		weight = EXCLUDED.weight,
		unit_system = EXCLUDED.unit_system,
		updated_at = now()
	RETURNING unit_system, created_at, updated_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.QueryRow(timeoutCtx, query,
		p.ID,
		p.Name,
		p.Age,
		p.Sex,
		p.DateOfBirth,
		p.Height,
		p.Weight,
		string(p.Units),
	).Scan(&p.Units, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PostgresRepo) FindAll(ctx context.Context) ([]Profile, error) {
	const query = `
	SELECT id, name, age, sex, date_of_birth, height, weight, unit_system, created_at, updated_at
	FROM profiles
	ORDER BY id
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Age, &p.Sex, &p.DateOfBirth,
			&p.Height, &p.Weight, &p.Units, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
