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

// FuncionariosHandler exposes the staff admin screen: list with filter and
// pagination, modal-based create/edit/delete, and export.
type FuncionariosHandler struct {
	staff *service.StaffService
}

// NewFuncionariosHandler constructs handler.
func NewFuncionariosHandler(staff *service.StaffService) *FuncionariosHandler {
	return &FuncionariosHandler{staff: staff}
}

func funcionarioFields(s domain.Staff) []string {
	return []string{s.NombreCompleto, s.ApellidoCompleto, s.Email, s.Cargo}
}

// List handles GET /funcionarios.
func (h *FuncionariosHandler) List(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	items, err := h.staff.List(c.Context(), user)
	if err != nil {
		return err
	}

	params := parseListParams(c)
	page := view.Apply(items, params.Query, funcionarioFields, params.Page, params.PageSize)

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"funcionarios": page.Items,
			"meta":         listMeta(page, params.Query),
		},
	})
}

// Create handles POST /funcionarios.
func (h *FuncionariosHandler) Create(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.FuncionarioRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	staff, err := h.staff.Create(c.Context(), user, staffInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"funcionario": staff}})
}

// Update handles PUT /funcionarios/:id.
func (h *FuncionariosHandler) Update(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.FuncionarioRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	staff, err := h.staff.Update(c.Context(), user, c.Params("id"), staffInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"funcionario": staff}})
}

// Delete handles DELETE /funcionarios/:id.
func (h *FuncionariosHandler) Delete(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.staff.Delete(c.Context(), user, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}

// Export handles GET /funcionarios/export.
func (h *FuncionariosHandler) Export(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	format, err := exportFormat(c)
	if err != nil {
		return err
	}

	items, err := h.staff.List(c.Context(), user)
	if err != nil {
		return err
	}
	query := c.Query("q")
	filtered := view.Filter(items, query, funcionarioFields)

	dataset := exportDataset(export.DatasetFuncionarios, query)
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

func staffInput(req dto.FuncionarioRequest) service.StaffInput {
	return service.StaffInput{
		NombreCompleto:   req.NombreCompleto,
		ApellidoCompleto: req.ApellidoCompleto,
		Email:            req.Email,
		Telefono:         req.Telefono,
		Cargo:            req.Cargo,
		Estado:           req.Estado,
	}
}
