package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tramites-portal/internal/api/dto"
	"github.com/spec-kit/tramites-portal/internal/domain"
	"github.com/spec-kit/tramites-portal/internal/export"
	"github.com/spec-kit/tramites-portal/internal/service"
	"github.com/spec-kit/tramites-portal/internal/view"
)

// UsuariosHandler exposes the admin account directory.
type UsuariosHandler struct {
	users *service.UserService
}

// NewUsuariosHandler constructs handler.
func NewUsuariosHandler(users *service.UserService) *UsuariosHandler {
	return &UsuariosHandler{users: users}
}

func usuarioFields(u domain.User) []string {
	return []string{u.DisplayName, u.Email, string(u.Role)}
}

// List handles GET /usuarios.
func (h *UsuariosHandler) List(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	items, err := h.users.List(c.Context(), user)
	if err != nil {
		return err
	}

	params := parseListParams(c)
	page := view.Apply(items, params.Query, usuarioFields, params.Page, params.PageSize)

	responses := make([]dto.UserResponse, 0, len(page.Items))
	for i := range page.Items {
		responses = append(responses, dto.NewUserResponse(&page.Items[i]))
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"usuarios": responses,
			"meta":     listMeta(page, params.Query),
		},
	})
}

// Export handles GET /usuarios/export.
func (h *UsuariosHandler) Export(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	format, err := exportFormat(c)
	if err != nil {
		return err
	}

	items, err := h.users.List(c.Context(), user)
	if err != nil {
		return err
	}
	query := c.Query("q")
	filtered := view.Filter(items, query, usuarioFields)

	dataset := exportDataset(export.DatasetUsuarios, query)
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
