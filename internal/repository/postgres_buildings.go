package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Saifr72000/airsense-platform/internal/domain"
)

type PostgresBuildingsRepo struct {
	db *sql.DB
}

func NewPostgresBuildingsRepo(db *sql.DB) *PostgresBuildingsRepo {
	return &PostgresBuildingsRepo{db: db}
}

const buildingColumns = `id, name, code, address, user_id, created_at, updated_at`

func (r *PostgresBuildingsRepo) ListBuildings(ctx context.Context) ([]*domain.Building, error) {
	query := `SELECT ` + buildingColumns + ` FROM buildings ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list buildings: %w", err)
	}
	defer rows.Close()

	buildings := []*domain.Building{}
	for rows.Next() {
		b, err := scanBuilding(rows)
		if err != nil {
			return nil, err
		}
		buildings = append(buildings, b)
	}
	return buildings, rows.Err()
}

func (r *PostgresBuildingsRepo) GetBuilding(ctx context.Context, buildingID string) (*domain.Building, error) {
	query := `SELECT ` + buildingColumns + ` FROM buildings WHERE id = $1`
	b, err := scanBuilding(r.db.QueryRowContext(ctx, query, buildingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *PostgresBuildingsRepo) CreateBuilding(ctx context.Context, building *domain.Building) (*domain.Building, error) {
	id := building.ID
	if id == "" {
		id = uuid.NewString()
	}
	now := time.Now().UTC()

	query := `
		INSERT INTO buildings (id, name, code, address, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING ` + buildingColumns
	b, err := scanBuilding(r.db.QueryRowContext(ctx, query,
		id, building.Name, building.Code, building.Address, building.UserID, now,
	))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, fmt.Errorf("building code %q already exists: %w", building.Code, ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to create building: %w", err)
	}
	return b, nil
}

func (r *PostgresBuildingsRepo) UpdateBuilding(ctx context.Context, buildingID string, update BuildingUpdate) (*domain.Building, error) {
	set := "updated_at = $1"
	args := []any{time.Now().UTC()}
	argN := 2

	if update.Name != nil {
		set += fmt.Sprintf(", name = $%d", argN)
		args = append(args, *update.Name)
		argN++
	}
	if update.Address != nil {
		set += fmt.Sprintf(", address = $%d", argN)
		args = append(args, *update.Address)
		argN++
	}
	args = append(args, buildingID)

	query := fmt.Sprintf(
		`UPDATE buildings SET %s WHERE id = $%d RETURNING %s`,
		set, argN, buildingColumns,
	)
	b, err := scanBuilding(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update building: %w", err)
	}
	return b, nil
}

func (r *PostgresBuildingsRepo) DeleteBuilding(ctx context.Context, buildingID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM buildings WHERE id = $1`, buildingID)
	if err != nil {
		return fmt.Errorf("failed to delete building: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// rowScanner lets scanBuilding work for both QueryRow and Query rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBuilding(row rowScanner) (*domain.Building, error) {
	var b domain.Building
	var address sql.NullString
	if err := row.Scan(
		&b.ID, &b.Name, &b.Code, &address, &b.UserID, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if address.Valid {
		b.Address = &address.String
	}
	return &b, nil
}
