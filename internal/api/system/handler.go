package system

import (
	"net/http"
	"time"

	"farminventory/internal/pkg/logger"
	"farminventory/internal/pkg/response"
)

// StateReader expõe o estado atual da conexão com o banco.
type StateReader interface {
	IsConnected() bool
}

// Endpoints lista as rotas públicas, usada na raiz e no 404.
var Endpoints = []string{
	"GET /",
	"GET /health",
	"GET /api/items",
	"GET /api/items/low-stock",
	"GET /api/items/:id",
	"POST /api/items",
	"PUT /api/items/:id",
	"DELETE /api/items/:id",
}

// RootResponse é o corpo de GET /.
type RootResponse struct {
	Message     string   `json:"message" example:"Farm Inventory API"`
	Status      string   `json:"status" example:"ok"`
	Timestamp   string   `json:"timestamp" example:"2024-05-01T12:00:00Z"`
	Environment string   `json:"environment" example:"development"`
	Endpoints   []string `json:"endpoints"`
}

// HealthResponse é o corpo de GET /health.
type HealthResponse struct {
	Uptime    float64 `json:"uptime" example:"12.5"`
	Message   string  `json:"message" example:"OK"`
	Timestamp int64   `json:"timestamp" example:"1714564800000"`
	Database  string  `json:"database" example:"connected"`
}

// NotFoundResponse é o corpo de qualquer rota inexistente.
type NotFoundResponse struct {
	Error           string   `json:"error" example:"Not Found"`
	Message         string   `json:"message"`
	AvailableRoutes []string `json:"availableRoutes"`
}

// Handler atende as rotas que não dependem do banco.
type Handler struct {
	DB          StateReader
	Environment string
	Logger      logger.Logger
	started     time.Time
	now         func() time.Time
}

// NewHandler cria o Handler; o uptime é contado a partir daqui.
func NewHandler(db StateReader, environment string, log logger.Logger) *Handler {
	now := time.Now
	return &Handler{
		DB:          db,
		Environment: environment,
		Logger:      log,
		started:     now(),
		now:         now,
	}
}

func (h *Handler) write(w http.ResponseWriter, status int, body interface{}) {
	if err := response.JSON(w, status, body); err != nil {
		h.Logger.Error("Falha ao codificar JSON de resposta", err)
	}
}

// Root lida com GET /.
// @Summary Informações do serviço
// @Tags system
// @Produce json
// @Success 200 {object} system.RootResponse
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	h.write(w, http.StatusOK, RootResponse{
		Message:     "Farm Inventory API",
		Status:      "ok",
		Timestamp:   h.now().UTC().Format(time.RFC3339),
		Environment: h.Environment,
		Endpoints:   Endpoints,
	})
}

// Health lida com GET /health. Nunca passa pelo gate: reporta o estado do banco.
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} system.HealthResponse
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	database := "disconnected"
	if h.DB.IsConnected() {
		database = "connected"
	}
	now := h.now()
	h.write(w, http.StatusOK, HealthResponse{
		Uptime:    now.Sub(h.started).Seconds(),
		Message:   "OK",
		Timestamp: now.UnixMilli(),
		Database:  database,
	})
}

// NotFound responde 404 para rotas e métodos não registrados.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.write(w, http.StatusNotFound, NotFoundResponse{
		Error:           "Not Found",
		Message:         "Route " + r.Method + " " + r.URL.Path + " not found",
		AvailableRoutes: Endpoints,
	})
}
