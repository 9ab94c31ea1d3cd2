package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/turnera-api/internal/audit"
	"github.com/BruksfildServices01/turnera-api/internal/httperr"
	"github.com/BruksfildServices01/turnera-api/internal/httpresp"
	"github.com/BruksfildServices01/turnera-api/internal/logger"
)

// LogsHandler exposes the application log file to admins.
type LogsHandler struct {
	path     string
	archiver *logger.Archiver
	audit    *audit.Dispatcher
}

func NewLogsHandler(path string, archiver *logger.Archiver, d *audit.Dispatcher) *LogsHandler {
	return &LogsHandler{path: path, archiver: archiver, audit: d}
}

var errArchiveDisabled = httperr.ErrInvalid("log_archive_disabled", "No hay bucket configurado para archivar logs.")

// Tail returns the last ?limit= lines, 100 by default.
func (h *LogsHandler) Tail(c *gin.Context) {
	n, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(logger.DefaultTailLines)))
	if err != nil || n <= 0 {
		n = logger.DefaultTailLines
	}

	lines, err := logger.Tail(h.path, n)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, lines)
}

func (h *LogsHandler) Archive(c *gin.Context) {
	key, err := h.archiver.Upload(c.Request.Context(), h.path)
	if err != nil {
		if errors.Is(err, logger.ErrArchiveDisabled) {
			httperr.Respond(c, errArchiveDisabled)
			return
		}
		httperr.Respond(c, err)
		return
	}

	log.Info().Str("key", key).Msg("log file archived")
	writeAudit(h.audit, c, "logs_archived", "logs", key, nil)

	httpresp.Created(c, gin.H{"key": key})
}
