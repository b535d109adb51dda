package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/advocate-directory-api/internal/models"
)

const advocateSchema = `CREATE TABLE IF NOT EXISTS advocates (
    id SERIAL PRIMARY KEY,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    city TEXT NOT NULL,
    degree TEXT NOT NULL,
    specialties TEXT[] NOT NULL DEFAULT '{}',
    years_of_experience INTEGER NOT NULL,
    phone_number BIGINT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const (
	listAdvocatesQuery = `SELECT id, first_name, last_name, city, degree, specialties, years_of_experience, phone_number, created_at
        FROM advocates ORDER BY id`
	insertAdvocateQuery = `INSERT INTO advocates (first_name, last_name, city, degree, specialties, years_of_experience, phone_number)
        VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at`
)

type advocateRow struct {
	ID                int64          `db:"id"`
	FirstName         string         `db:"first_name"`
	LastName          string         `db:"last_name"`
	City              string         `db:"city"`
	Degree            string         `db:"degree"`
	Specialties       pq.StringArray `db:"specialties"`
	YearsOfExperience int            `db:"years_of_experience"`
	PhoneNumber       int64          `db:"phone_number"`
	CreatedAt         time.Time      `db:"created_at"`
}

func (r advocateRow) toModel() models.Advocate {
	id := r.ID
	createdAt := r.CreatedAt.UTC()
	specialties := []string(r.Specialties)
	if specialties == nil {
		specialties = []string{}
	}
	return models.Advocate{
		ID:                &id,
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		City:              r.City,
		Degree:            models.Degree(r.Degree),
		Specialties:       specialties,
		YearsOfExperience: r.YearsOfExperience,
		PhoneNumber:       r.PhoneNumber,
		CreatedAt:         &createdAt,
	}
}

// AdvocateRepository manages persistence for advocate records in PostgreSQL.
type AdvocateRepository struct {
	db *sqlx.DB
}

// NewAdvocateRepository constructs an AdvocateRepository.
func NewAdvocateRepository(db *sqlx.DB) *AdvocateRepository {
	return &AdvocateRepository{db: db}
}

// EnsureSchema creates the advocates table when it does not exist.
func (r *AdvocateRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, advocateSchema); err != nil {
		return fmt.Errorf("ensure advocates schema: %w", err)
	}
	return nil
}

// ListAll returns every stored advocate ordered by id.
func (r *AdvocateRepository) ListAll(ctx context.Context) ([]models.Advocate, error) {
	var rows []advocateRow
	if err := r.db.SelectContext(ctx, &rows, listAdvocatesQuery); err != nil {
		return nil, fmt.Errorf("list advocates: %w", err)
	}
	advocates := make([]models.Advocate, 0, len(rows))
	for _, row := range rows {
		advocates = append(advocates, row.toModel())
	}
	return advocates, nil
}

// ReplaceAll deletes every stored advocate and inserts the given ones in one transaction.
// It returns the inserted advocates with their generated id and creation time.
func (r *AdvocateRepository) ReplaceAll(ctx context.Context, advocates []models.Advocate) (inserted []models.Advocate, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin replace advocates: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM advocates"); err != nil {
		return nil, fmt.Errorf("clear advocates: %w", err)
	}

	inserted = make([]models.Advocate, 0, len(advocates))
	for _, advocate := range advocates {
		var (
			id        int64
			createdAt time.Time
		)
		row := tx.QueryRowxContext(ctx, insertAdvocateQuery,
			advocate.FirstName,
			advocate.LastName,
			advocate.City,
			string(advocate.Degree),
			pq.Array(advocate.Specialties),
			advocate.YearsOfExperience,
			advocate.PhoneNumber,
		)
		if err = row.Scan(&id, &createdAt); err != nil {
			return nil, fmt.Errorf("insert advocate %s: %w", advocate.FullName(), err)
		}
		createdAt = createdAt.UTC()
		advocate.ID = &id
		advocate.CreatedAt = &createdAt
		inserted = append(inserted, advocate)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit replace advocates: %w", err)
	}
	return inserted, nil
}

// Ping checks database connectivity.
func (r *AdvocateRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
