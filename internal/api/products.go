package api

import (
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"

	"github.com/smartagro/smartagro/internal/catalog"
	"github.com/smartagro/smartagro/internal/domain"
	"github.com/smartagro/smartagro/internal/webserver"
)

type productQuery struct {
	Category string `query:"category" validate:"omitempty,oneof=all raw processed"`
	Q        string `query:"q" validate:"omitempty,max=100"`
	Sort     string `query:"sort" validate:"omitempty,oneof=id name price"`
	Order    string `query:"order" validate:"omitempty,oneof=asc desc ASC DESC"`
}

// registerProductRoutes registers catalog endpoints
func registerProductRoutes(s *webserver.Server) {
	s.ApiGET("/products", listProducts)
	s.ApiGET("/products/export.csv", exportProducts)
	s.ApiGET("/products/:id", getProduct)
}

func queryProducts(c echo.Context) ([]domain.Product, error) {
	var q productQuery
	if err := bindQuery(c, &q); err != nil {
		return nil, err
	}

	ctx := c.Request().Context()
	reader := GetReader(c)
	var (
		rows []domain.Product
		err  error
	)
	switch q.Category {
	case domain.CategoryRaw:
		rows, err = reader.Products(ctx)
	case domain.CategoryProcessed:
		rows, err = reader.ProcessedProducts(ctx)
	default:
		rows, err = catalog.AllProducts(ctx, reader)
	}
	if err != nil {
		return nil, newAPIError(http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	if term := strings.ToLower(strings.TrimSpace(q.Q)); term != "" {
		filtered := rows[:0]
		for _, p := range rows {
			if strings.Contains(strings.ToLower(p.Name), term) || strings.Contains(strings.ToLower(p.Short), term) {
				filtered = append(filtered, p)
			}
		}
		rows = filtered
	}

	desc := strings.EqualFold(q.Order, "desc")
	less := func(i, j int) bool { return rows[i].ID < rows[j].ID }
	switch q.Sort {
	case "name":
		less = func(i, j int) bool { return rows[i].Name < rows[j].Name }
	case "price":
		less = func(i, j int) bool {
			if rows[i].Price == rows[j].Price {
				return rows[i].ID < rows[j].ID
			}
			return rows[i].Price < rows[j].Price
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if desc {
			return less(j, i)
		}
		return less(i, j)
	})
	return rows, nil
}

func listProducts(c echo.Context) error {
	rows, err := queryProducts(c)
	if err != nil {
		return respond(c, err)
	}
	if rows == nil {
		rows = []domain.Product{}
	}
	page, pageSize := parsePagination(c)
	start, end := pageSlice(len(rows), page, pageSize)
	return paged(c, rows[start:end], len(rows), page, pageSize)
}

func exportProducts(c echo.Context) error {
	rows, err := queryProducts(c)
	if err != nil {
		return respond(c, err)
	}
	data, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "EXPORT_ERROR", "Failed to export products", err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.csv"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", data)
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	p, err := GetReader(c).Product(c.Request().Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}
	return ok(c, p)
}
