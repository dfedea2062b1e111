package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/tramites-portal/internal/api/dto"
	"github.com/spec-kit/tramites-portal/internal/auth"
	"github.com/spec-kit/tramites-portal/internal/domain"
	"github.com/spec-kit/tramites-portal/internal/export"
	"github.com/spec-kit/tramites-portal/internal/view"
)

const defaultPageSize = 10

// clientIDHeader carries the browser-tab identity used as the resume-token
// key; a fresh id is minted when the client does not send one.
const clientIDHeader = "X-Client-Id"

type listParams struct {
	Query    string
	Page     int
	PageSize int
}

func parseListParams(c *fiber.Ctx) listParams {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.Query("page_size", strconv.Itoa(defaultPageSize)))
	if err != nil || pageSize < 1 {
		pageSize = defaultPageSize
	}
	return listParams{
		Query:    c.Query("q"),
		Page:     page,
		PageSize: pageSize,
	}
}

func listMeta[T any](page view.Page[T], query string) dto.ListMeta {
	return dto.ListMeta{
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
		TotalItems: page.TotalItems,
		Window:     page.Window,
		Query:      query,
	}
}

func currentUser(c *fiber.Ctx) (*domain.User, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return nil, fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	return principal.User, nil
}

func clientID(c *fiber.Ctx) string {
	if id := c.Get(clientIDHeader); id != "" {
		return id
	}
	return uuid.NewString()
}

// exportFormat reads the requested format, defaulting to xlsx.
func exportFormat(c *fiber.Ctx) (string, error) {
	format := c.Query("format", "xlsx")
	if format != "xlsx" && format != "pdf" {
		return "", fiber.NewError(http.StatusBadRequest, "format must be xlsx or pdf")
	}
	return format, nil
}

// exportDataset picks the filtered variant when a query narrowed the rows.
func exportDataset(base export.Dataset, query string) export.Dataset {
	if query != "" {
		return base.Filtered()
	}
	return base
}

func sendDocument(c *fiber.Ctx, doc *export.Document) error {
	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+url.PathEscape(doc.FileName)+`"`)
	return c.Send(doc.Bytes)
}
