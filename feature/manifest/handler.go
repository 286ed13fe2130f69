package manifest

import (
	"errors"

	"table-importer/core/logger"
	"table-importer/feature/importer"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for manifests.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the manifest routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/manifest")
	group.Get("/", h.HandleGetManifest)
	group.Get("/history", h.HandleHistory)
}

// HandleGetManifest returns the manifest of the configured data root.
// @Summary Get Manifest
// @Description Discovers the tables of the data root and returns them as an encoded manifest.
// @Tags manifest
// @Produce json
// @Produce application/yaml
// @Produce application/toml
// @Param format query string false "json, yaml or toml (default json)"
// @Success 200 {object} manifest.Manifest "Manifest"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 422 {object} map[string]string "Malformed spreadsheet"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /manifest [get]
func (h *Handler) HandleGetManifest(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	format, err := ParseFormat(c.Query("format", h.service.cfg.Format))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	m, err := h.service.Build(c.Context(), true)
	if err != nil {
		l.Error("Manifest build failed", zap.Error(err))
		return c.Status(importer.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}

	data, err := Encode(m, format)
	if err != nil {
		l.Error("Manifest encoding failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, format.ContentType())
	return c.Send(data)
}

// HandleHistory lists stored discovery runs.
// @Summary List Runs
// @Description Lists the most recent discovery runs stored in the history database.
// @Tags manifest
// @Produce json
// @Param limit query int false "Maximum number of runs"
// @Success 200 {array} manifest.RunSummary "Runs"
// @Failure 503 {object} map[string]string "History disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /manifest/history [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	runs, err := h.service.History(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		if errors.Is(err, ErrHistoryDisabled) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("History lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(runs)
}
