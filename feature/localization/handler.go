package localization

import (
	"errors"

	"locale-manager/core/exchange"
	"locale-manager/core/extract"
	"locale-manager/core/logger"
	"locale-manager/core/reconcile"
	"locale-manager/core/record"
	"locale-manager/core/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for localization records.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the localization routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/localization/:app")
	group.Get("/records", h.HandleRecords)
	group.Get("/stats", h.HandleStats)
	group.Get("/export", h.HandleExport)
	group.Post("/import", h.HandleImport)
	group.Post("/sync", h.HandleSync)
	group.Post("/publish", h.HandlePublish)
}

// SyncRequest is the body of a sync request.
type SyncRequest struct {
	Items []extract.Item `json:"items"`
}

// statusFor maps a service error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, exchange.ErrInvalidHeader):
		return fiber.StatusBadRequest
	case errors.Is(err, reconcile.ErrDuplicateKeyInBatch):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, store.ErrKeyConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func options(c *fiber.Ctx) reconcile.Options {
	return reconcile.Options{
		DryRun:    c.QueryBool("dry_run", false),
		Confirmed: true,
	}
}

func filter(c *fiber.Ctx) reconcile.Filter {
	f := reconcile.Filter{
		AppID: c.Params("app"),
		Lang:  c.Query("lang"),
	}
	if c.Context().QueryArgs().Has("territory") {
		f.Territory = c.Query("territory")
		f.HasTerritory = true
	}
	return f
}

// HandleRecords lists stored records.
// @Summary List Records
// @Description Lists the stored records of an application, optionally restricted to a language and territory.
// @Tags localization
// @Produce json
// @Param app path string true "Application ID"
// @Param lang query string false "Language"
// @Param territory query string false "Territory, empty for none"
// @Success 200 {array} record.Record
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /localization/{app}/records [get]
func (h *Handler) HandleRecords(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	records, err := h.service.Records(c.Context(), filter(c))
	if err != nil {
		l.Error("Listing records failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	if records == nil {
		records = []record.Record{}
	}
	return c.JSON(records)
}

// HandleStats returns per-locale counts.
// @Summary Record Statistics
// @Tags localization
// @Produce json
// @Param app path string true "Application ID"
// @Success 200 {array} store.PartitionStats
// @Router /localization/{app}/stats [get]
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	stats, err := h.service.Stats(c.Context(), c.Params("app"))
	if err != nil {
		l.Error("Stats failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	if stats == nil {
		stats = []store.PartitionStats{}
	}
	return c.JSON(stats)
}

// HandleExport returns an exchange file.
// @Summary Export Exchange File
// @Description Exports records awaiting translation as CSV. With all=true every record is exported.
// @Tags localization
// @Produce text/csv
// @Param app path string true "Application ID"
// @Param all query boolean false "Export every record"
// @Router /localization/{app}/export [get]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	data, count, err := h.service.Export(c.Context(), filter(c), !c.QueryBool("all", false))
	if err != nil {
		l.Error("Export failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Exported records", zap.String("app", c.Params("app")), zap.Int("rows", count))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+c.Params("app")+`.csv"`)
	return c.Send(data)
}

// HandleImport applies an exchange file.
// @Summary Import Exchange File
// @Description Applies translated texts from a CSV body. Unknown keys are rejected per row.
// @Tags localization
// @Accept text/csv
// @Produce json
// @Param app path string true "Application ID"
// @Param dry_run query boolean false "Do not write"
// @Failure 400 {object} map[string]string "Invalid header"
// @Router /localization/{app}/import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	opts := options(c)

	outcome, err := h.service.Import(c.Context(), c.Params("app"), c.Body(), opts)
	if err != nil {
		l.Error("Import failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"dry_run":  opts.DryRun,
		"received": outcome.Received,
		"skipped":  outcome.Skipped,
		"applied":  len(outcome.Applied),
		"written":  outcome.Written,
		"errors":   outcome.ErrorMessages(),
	})
}

// HandleSync reconciles extracted source items.
// @Summary Sync Source Items
// @Description Fans the posted source items out to the target locales and reconciles them with the stored set.
// @Tags localization
// @Accept json
// @Produce json
// @Param app path string true "Application ID"
// @Param dry_run query boolean false "Do not write"
// @Failure 422 {object} map[string]string "Duplicate key"
// @Failure 409 {object} map[string]string "Key conflict"
// @Router /localization/{app}/sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	opts := options(c)

	var req SyncRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	plan, err := h.service.Sync(c.Context(), c.Params("app"), extract.Static(req.Items), opts)
	if err != nil {
		l.Error("Sync failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"dry_run":  opts.DryRun,
		"existing": plan.ExistingCount,
		"incoming": plan.IncomingCount,
		"merged":   len(plan.Merged),
		"pending":  len(plan.NeedsTranslation),
		"report":   plan.Report,
	})
}

// HandlePublish uploads exchange files to the hand-off bucket.
// @Summary Publish Exchange Files
// @Tags localization
// @Produce json
// @Param app path string true "Application ID"
// @Param all query boolean false "Publish every record"
// @Router /localization/{app}/publish [post]
func (h *Handler) HandlePublish(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	keys, err := h.service.Publish(c.Context(), c.Params("app"), !c.QueryBool("all", false))
	if err != nil {
		l.Error("Publish failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	if keys == nil {
		keys = []string{}
	}
	return c.JSON(fiber.Map{"objects": keys})
}
