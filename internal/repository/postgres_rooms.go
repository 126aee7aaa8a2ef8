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

type PostgresRoomsRepo struct {
	db *sql.DB
}

func NewPostgresRoomsRepo(db *sql.DB) *PostgresRoomsRepo {
	return &PostgresRoomsRepo{db: db}
}

const roomColumns = `id, name, room_code, building_id, sensor_id, user_id, created_at, updated_at`

func (r *PostgresRoomsRepo) ListRooms(ctx context.Context) ([]*domain.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms ORDER BY created_at DESC`
	return r.queryRooms(ctx, query)
}

func (r *PostgresRoomsRepo) ListRoomsByBuilding(ctx context.Context, buildingID string) ([]*domain.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE building_id = $1 ORDER BY created_at DESC`
	return r.queryRooms(ctx, query, buildingID)
}

func (r *PostgresRoomsRepo) queryRooms(ctx context.Context, query string, args ...any) ([]*domain.Room, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	rooms := []*domain.Room{}
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (r *PostgresRoomsRepo) GetRoom(ctx context.Context, roomID string) (*domain.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`
	room, err := scanRoom(r.db.QueryRowContext(ctx, query, roomID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return room, nil
}

func (r *PostgresRoomsRepo) GetRoomBySensorID(ctx context.Context, sensorID string) (*domain.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE sensor_id = $1`
	room, err := scanRoom(r.db.QueryRowContext(ctx, query, sensorID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return room, nil
}

func (r *PostgresRoomsRepo) CreateRoom(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	id := room.ID
	if id == "" {
		id = uuid.NewString()
	}
	now := time.Now().UTC()

	query := `
		INSERT INTO rooms (id, name, room_code, building_id, sensor_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING ` + roomColumns
	created, err := scanRoom(r.db.QueryRowContext(ctx, query,
		id, room.Name, room.RoomCode, room.BuildingID, room.SensorID, room.UserID, now,
	))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, fmt.Errorf("room code %q already exists: %w", room.RoomCode, ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	return created, nil
}

func (r *PostgresRoomsRepo) UpdateRoom(ctx context.Context, roomID string, update RoomUpdate) (*domain.Room, error) {
	set := "updated_at = $1"
	args := []any{time.Now().UTC()}
	argN := 2

	if update.Name != nil {
		set += fmt.Sprintf(", name = $%d", argN)
		args = append(args, *update.Name)
		argN++
	}
	if update.SensorID != nil {
		set += fmt.Sprintf(", sensor_id = $%d", argN)
		if *update.SensorID == "" {
			args = append(args, nil)
		} else {
			args = append(args, *update.SensorID)
		}
		argN++
	}
	args = append(args, roomID)

	query := fmt.Sprintf(
		`UPDATE rooms SET %s WHERE id = $%d RETURNING %s`,
		set, argN, roomColumns,
	)
	room, err := scanRoom(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update room: %w", err)
	}
	return room, nil
}

func (r *PostgresRoomsRepo) DeleteRoom(ctx context.Context, roomID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, roomID)
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
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

func scanRoom(row rowScanner) (*domain.Room, error) {
	var room domain.Room
	var sensorID sql.NullString
	if err := row.Scan(
		&room.ID, &room.Name, &room.RoomCode, &room.BuildingID,
		&sensorID, &room.UserID, &room.CreatedAt, &room.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if sensorID.Valid {
		room.SensorID = &sensorID.String
	}
	return &room, nil
}
