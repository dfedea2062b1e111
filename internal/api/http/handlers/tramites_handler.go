package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tramites-portal/internal/api/dto"
	"github.com/spec-kit/tramites-portal/internal/domain"
	"github.com/spec-kit/tramites-portal/internal/export"
	"github.com/spec-kit/tramites-portal/internal/service"
	"github.com/spec-kit/tramites-portal/internal/view"
)

// TramitesHandler exposes the trámite screens.
type TramitesHandler struct {
	procedures *service.ProcedureService
}

// NewTramitesHandler constructs handler.
func NewTramitesHandler(procedures *service.ProcedureService) *TramitesHandler {
	return &TramitesHandler{procedures: procedures}
}

func tramiteFields(p domain.Procedure) []string {
	return []string{p.Solicitante, p.Tipo, p.Departamento, p.Email, string(p.Estado)}
}

// List handles GET /tramites.
func (h *TramitesHandler) List(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	items, err := h.procedures.List(c.Context(), user)
	if err != nil {
		return err
	}

	params := parseListParams(c)
	page := view.Apply(items, params.Query, tramiteFields, params.Page, params.PageSize)

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"tramites": page.Items,
			"meta":     listMeta(page, params.Query),
		},
	})
}

// Create handles POST /tramites.
func (h *TramitesHandler) Create(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.TramiteCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	input := service.ProcedureCreateInput{
		Solicitante:  req.Solicitante,
		Tipo:         req.Tipo,
		Departamento: req.Departamento,
		Email:        req.Email,
		Telefono:     req.Telefono,
		Descripcion:  req.Descripcion,
	}
	if req.FechaLimite != nil {
		input.FechaLimite = *req.FechaLimite
	}

	proc, err := h.procedures.Create(c.Context(), user, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"tramite": proc}})
}

// Get handles GET /tramites/:id.
func (h *TramitesHandler) Get(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	proc, err := h.procedures.Get(c.Context(), user, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"tramite": proc}})
}

// Review handles PUT /tramites/:id.
func (h *TramitesHandler) Review(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.TramiteReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	proc, err := h.procedures.Review(c.Context(), user, c.Params("id"), domain.ProcedureStatus(req.Estado), req.Etapa)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"tramite": proc}})
}

// Delete handles DELETE /tramites/:id.
func (h *TramitesHandler) Delete(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.procedures.Delete(c.Context(), user, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}

// Export handles GET /tramites/export, exporting the currently filtered rows.
func (h *TramitesHandler) Export(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	format, err := exportFormat(c)
	if err != nil {
		return err
	}

	items, err := h.procedures.List(c.Context(), user)
	if err != nil {
		return err
	}
	query := c.Query("q")
	filtered := view.Filter(items, query, tramiteFields)

	dataset := exportDataset(export.DatasetTramites, query)
	var doc *export.Document
	if format == "pdf" {
		doc, err = export.PDF(dataset, filtered, time.Now())
	} else {
		doc, err = export.Excel(dataset, filtered, time.Now())
	}
	if err != nil {
		return err
	}
	return sendDocument(c, doc)
}
