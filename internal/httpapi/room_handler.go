package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Saifr72000/airsense-platform/internal/repository"
	"github.com/Saifr72000/airsense-platform/internal/service"
)

// RoomHandler 房间管理 Handler
type RoomHandler struct {
	roomService service.RoomService
	authService service.AuthService
	logger      *zap.Logger
}

// NewRoomHandler 创建房间管理 Handler
func NewRoomHandler(roomService service.RoomService, authService service.AuthService, logger *zap.Logger) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
		authService: authService,
		logger:      logger,
	}
}

// ServeHTTP 实现 http.Handler 接口
func (h *RoomHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/rooms")
	rest = strings.Trim(rest, "/")

	switch {
	case rest == "" && r.Method == http.MethodGet:
		h.ListRooms(w, r)
	case rest == "" && r.Method == http.MethodPost:
		h.CreateRoom(w, r)
	case strings.HasSuffix(rest, "/display") && r.Method == http.MethodGet:
		h.GetRoomDisplay(w, r, strings.TrimSuffix(rest, "/display"))
	case strings.HasSuffix(rest, "/readings/export") && r.Method == http.MethodGet:
		h.ExportRoomReadings(w, r, strings.TrimSuffix(rest, "/readings/export"))
	case !strings.Contains(rest, "/") && r.Method == http.MethodGet:
		h.GetRoom(w, r, rest)
	case !strings.Contains(rest, "/") && r.Method == http.MethodPatch:
		h.UpdateRoom(w, r, rest)
	case !strings.Contains(rest, "/") && r.Method == http.MethodDelete:
		h.DeleteRoom(w, r, rest)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// ListRooms 查询房间列表（含各房间最新读数）
func (h *RoomHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.roomService.ListRooms(r.Context())
	if err != nil {
		h.logger.Error("failed to list rooms", zap.Error(err))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rooms)
}

// GetRoom 查询单个房间
func (h *RoomHandler) GetRoom(w http.ResponseWriter, r *http.Request, id string) {
	room, err := h.roomService.GetRoom(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

// GetRoomDisplay 查询房间展示数据（实时优先，落库兜底）
func (h *RoomHandler) GetRoomDisplay(w http.ResponseWriter, r *http.Request, id string) {
	room, resolution, err := h.roomService.ResolveDisplay(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"room":    room,
		"source":  resolution.Source,
		"live":    resolution.Live,
		"stored":  resolution.Stored,
		"quality": resolution.Quality,
	})
}

// CreateRoom 创建房间
func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.CurrentUser(r.Context(), sessionToken(r))
	if err != nil {
		writeError(w, err)
		return
	}

	var req struct {
		Name       string  `json:"name"`
		RoomCode   string  `json:"room_code"`
		BuildingID string  `json:"building_id"`
		SensorID   *string `json:"sensor_id"`
	}
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	room, err := h.roomService.CreateRoom(r.Context(), user.ID, req.Name, req.RoomCode, req.BuildingID, req.SensorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

// UpdateRoom 更新房间（sensor_id 传空字符串表示解绑）
func (h *RoomHandler) UpdateRoom(w http.ResponseWriter, r *http.Request, id string) {
	user, err := h.authService.CurrentUser(r.Context(), sessionToken(r))
	if err != nil {
		writeError(w, err)
		return
	}

	var req struct {
		Name     *string `json:"name"`
		SensorID *string `json:"sensor_id"`
	}
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	room, err := h.roomService.UpdateRoom(r.Context(), user.ID, id, repository.RoomUpdate{
		Name:     req.Name,
		SensorID: req.SensorID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

// DeleteRoom 删除房间（读数随级联外键一并删除）
func (h *RoomHandler) DeleteRoom(w http.ResponseWriter, r *http.Request, id string) {
	user, err := h.authService.CurrentUser(r.Context(), sessionToken(r))
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.roomService.DeleteRoom(r.Context(), user.ID, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
