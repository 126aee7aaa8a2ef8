package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Saifr72000/airsense-platform/internal/repository"
	"github.com/Saifr72000/airsense-platform/internal/service"
)

// BuildingHandler 楼栋管理 Handler
type BuildingHandler struct {
	buildingService service.BuildingService
	authService     service.AuthService
	logger          *zap.Logger
}

// NewBuildingHandler 创建楼栋管理 Handler
func NewBuildingHandler(buildingService service.BuildingService, authService service.AuthService, logger *zap.Logger) *BuildingHandler {
	return &BuildingHandler{
		buildingService: buildingService,
		authService:     authService,
		logger:          logger,
	}
}

// ServeHTTP 实现 http.Handler 接口
func (h *BuildingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/buildings")
	id = strings.Trim(id, "/")

	switch {
	case id == "" && r.Method == http.MethodGet:
		h.ListBuildings(w, r)
	case id == "" && r.Method == http.MethodPost:
		h.CreateBuilding(w, r)
	case id != "" && !strings.Contains(id, "/") && r.Method == http.MethodGet:
		h.GetBuilding(w, r, id)
	case id != "" && !strings.Contains(id, "/") && r.Method == http.MethodPatch:
		h.UpdateBuilding(w, r, id)
	case id != "" && !strings.Contains(id, "/") && r.Method == http.MethodDelete:
		h.DeleteBuilding(w, r, id)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// ListBuildings 查询楼栋列表
func (h *BuildingHandler) ListBuildings(w http.ResponseWriter, r *http.Request) {
	buildings, err := h.buildingService.ListBuildings(r.Context())
	if err != nil {
		h.logger.Error("failed to list buildings", zap.Error(err))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, buildings)
}

// GetBuilding 查询单个楼栋（含房间及其最新读数）
func (h *BuildingHandler) GetBuilding(w http.ResponseWriter, r *http.Request, id string) {
	building, err := h.buildingService.GetBuilding(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, building)
}

// CreateBuilding 创建楼栋
func (h *BuildingHandler) CreateBuilding(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.CurrentUser(r.Context(), sessionToken(r))
	if err != nil {
		writeError(w, err)
		return
	}

	var req struct {
		Name    string  `json:"name"`
		Code    string  `json:"code"`
		Address *string `json:"address"`
	}
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	building, err := h.buildingService.CreateBuilding(r.Context(), user.ID, req.Name, req.Code, req.Address)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, building)
}

// UpdateBuilding 更新楼栋
func (h *BuildingHandler) UpdateBuilding(w http.ResponseWriter, r *http.Request, id string) {
	user, err := h.authService.CurrentUser(r.Context(), sessionToken(r))
	if err != nil {
		writeError(w, err)
		return
	}

	var req struct {
		Name    *string `json:"name"`
		Address *string `json:"address"`
	}
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	building, err := h.buildingService.UpdateBuilding(r.Context(), user.ID, id, repository.BuildingUpdate{
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, building)
}

// DeleteBuilding 删除楼栋（级联删除房间）
func (h *BuildingHandler) DeleteBuilding(w http.ResponseWriter, r *http.Request, id string) {
	user, err := h.authService.CurrentUser(r.Context(), sessionToken(r))
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.buildingService.DeleteBuilding(r.Context(), user.ID, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
