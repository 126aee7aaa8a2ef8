package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router 使用标准库 http.ServeMux（避免引入第三方路由依赖）
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.logger.Debug("http request",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
	)
	r.mux.ServeHTTP(w, req)
}

// RegisterAuthRoutes 注册认证路由
func (r *Router) RegisterAuthRoutes(h *AuthHandler) {
	r.Handle("/api/v1/auth/signup", h.Signup)
	r.Handle("/api/v1/auth/login", h.Login)
	r.Handle("/api/v1/auth/logout", h.Logout)
	r.Handle("/api/v1/auth/me", h.Me)
}

// RegisterBuildingRoutes 注册楼栋路由
func (r *Router) RegisterBuildingRoutes(h *BuildingHandler) {
	r.Handle("/api/v1/buildings", h.ServeHTTP)
	r.Handle("/api/v1/buildings/", h.ServeHTTP)
}

// RegisterRoomRoutes 注册房间路由（含 display/export 子路由）
func (r *Router) RegisterRoomRoutes(h *RoomHandler) {
	r.Handle("/api/v1/rooms", h.ServeHTTP)
	r.Handle("/api/v1/rooms/", h.ServeHTTP)
}

// RegisterSensorDataRoutes 注册传感器数据摄取路由
func (r *Router) RegisterSensorDataRoutes(h *SensorDataHandler) {
	r.Handle("/api/v1/sensor-data", h.ServeHTTP)
}

// RegisterHealthRoute 注册健康检查
func (r *Router) RegisterHealthRoute() {
	r.Handle("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}
