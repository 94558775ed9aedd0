package handler

import (
	"net/http"

	"github.com/ecostock/ecostock-api/internal/database"
	"github.com/ecostock/ecostock-api/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthHandler serves liveness and database checks
type HealthHandler struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewHealthHandler creates a new health handler instance
func NewHealthHandler(db *gorm.DB, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

// Live answers as long as the process serves HTTP
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Servidor OK"))
}

// Root identifies the backend
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Backend EcoStock funcionando!"))
}

// Database reports connection pool statistics, 503 when the database does not answer
func (h *HealthHandler) Database(w http.ResponseWriter, r *http.Request) {
	stats, err := database.HealthCheckWithStats(r.Context(), h.db)
	if err != nil {
		h.logger.Error("Database health check failed", zap.Error(err))
		respondJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":  "unhealthy",
			"error":   err.Error(),
			"service": "database",
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "database",
		"stats": map[string]interface{}{
			"max_open_connections": stats.MaxOpenConnections,
			"open_connections":     stats.OpenConnections,
			"in_use":               stats.InUse,
			"idle":                 stats.Idle,
			"wait_count":           stats.WaitCount,
			"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
		},
	})
}

// DBTest asks the database for its clock
func (h *HealthHandler) DBTest(w http.ResponseWriter, r *http.Request) {
	now, err := database.ServerTime(r.Context(), h.db)
	if err != nil {
		h.logger.Error("Database connectivity test failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Erro ao conectar ao banco de dados")
		return
	}

	respondJSON(w, http.StatusOK, domain.DBTestResponse{
		Message:    "Conexão com PostgreSQL bem-sucedida!",
		ServerTime: now,
	})
}
