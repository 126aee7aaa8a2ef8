package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Saifr72000/airsense-platform/internal/domain"
)

func roomRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "room_code", "building_id", "sensor_id", "user_id", "created_at", "updated_at",
	})
}

func TestGetRoomBySensorID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresRoomsRepo(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT .+ FROM rooms WHERE sensor_id = \$1`).
		WithArgs("esp32-001").
		WillReturnRows(roomRows().
			AddRow("r-1", "Lab A", "A-101", "b-1", "esp32-001", "u-1", now, now))

	room, err := repo.GetRoomBySensorID(context.Background(), "esp32-001")

	require.NoError(t, err)
	assert.Equal(t, "r-1", room.ID)
	require.NotNil(t, room.SensorID)
	assert.Equal(t, "esp32-001", *room.SensorID)
}

func TestGetRoomBySensorID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresRoomsRepo(db)

	mock.ExpectQuery(`SELECT .+ FROM rooms WHERE sensor_id = \$1`).
		WithArgs("unknown").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetRoomBySensorID(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListRoomsByBuilding(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresRoomsRepo(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT .+ FROM rooms WHERE building_id = \$1 ORDER BY created_at DESC`).
		WithArgs("b-1").
		WillReturnRows(roomRows().
			AddRow("r-1", "Lab A", "A-101", "b-1", "esp32-001", "u-1", now, now).
			AddRow("r-2", "Lab B", "A-102", "b-1", nil, "u-1", now, now))

	rooms, err := repo.ListRoomsByBuilding(context.Background(), "b-1")

	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.NotNil(t, rooms[0].SensorID)
	// Unbound rooms come back with a nil sensor
	assert.Nil(t, rooms[1].SensorID)
}

func TestCreateRoom_DuplicateCode(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresRoomsRepo(db)

	mock.ExpectQuery(`INSERT INTO rooms`).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.CreateRoom(context.Background(), &domain.Room{
		Name:       "Lab A",
		RoomCode:   "A-101",
		BuildingID: "b-1",
		UserID:     "u-1",
	})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUpdateRoom_UnbindSensor(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresRoomsRepo(db)

	now := time.Now()
	empty := ""

	// Empty-string sensor_id is stored as NULL
	mock.ExpectQuery(`UPDATE rooms SET updated_at = \$1, sensor_id = \$2 WHERE id = \$3`).
		WithArgs(sqlmock.AnyArg(), nil, "r-1").
		WillReturnRows(roomRows().
			AddRow("r-1", "Lab A", "A-101", "b-1", nil, "u-1", now, now))

	room, err := repo.UpdateRoom(context.Background(), "r-1", RoomUpdate{SensorID: &empty})

	require.NoError(t, err)
	assert.Nil(t, room.SensorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRoom_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgresRoomsRepo(db)

	mock.ExpectExec(`DELETE FROM rooms WHERE id = \$1`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.DeleteRoom(context.Background(), "missing"), ErrNotFound)
}
