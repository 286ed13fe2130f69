package importer

import (
	"errors"

	"table-importer/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for table discovery.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the importer routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/tables")
	group.Get("/", h.HandleListTables)
}

// HandleListTables returns the descriptors of every discovered table.
// @Summary List Discovered Tables
// @Description Scans the configured data root and returns the table-import descriptors. Pass refresh=true to bypass the cache.
// @Tags tables
// @Produce json
// @Param refresh query bool false "Rescan even if a cached result exists"
// @Success 200 {array} importer.TableImport "Table descriptors"
// @Failure 400 {object} map[string]string "Invalid importer configuration"
// @Failure 422 {object} map[string]string "Malformed spreadsheet"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /tables [get]
func (h *Handler) HandleListTables(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if c.QueryBool("refresh") {
		h.service.Invalidate()
	}

	tables, err := h.service.Tables(c.Context())
	if err != nil {
		l.Error("Table discovery failed", zap.Error(err))
		return c.Status(StatusCode(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	l.Info("Table discovery completed", zap.Int("tables", len(tables)))
	return c.JSON(tables)
}

// StatusCode maps a discovery error to an HTTP status.
func StatusCode(err error) int {
	var cfgErr *ConfigError
	var malformed *MalformedDocumentError
	switch {
	case errors.As(err, &cfgErr):
		return fiber.StatusBadRequest
	case errors.As(err, &malformed):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}
