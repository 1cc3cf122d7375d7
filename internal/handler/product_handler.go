package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"smartcart/internal/config"
	"smartcart/internal/middleware"
	"smartcart/internal/usecase"
)

// /products の公開API
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

type CreateProductRequest struct {
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          decimal.Decimal   `json:"price"`
	OriginalPrice  *decimal.Decimal  `json:"original_price"`
	Category       string            `json:"category"`
	Image          string            `json:"image"`
	Images         []string          `json:"images"`
	InStock        bool              `json:"in_stock"`
	Specifications map[string]string `json:"specifications"`
	Tags           []string          `json:"tags"`
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/products", h.list)
	e.GET("/products/:id", h.detail)

	// 登録は管理者のみ
	e.POST("/products", h.create, middleware.AuthJWT(cfg), middleware.RequireAdmin())
}

func (h *ProductHandler) list(c echo.Context) error {
	// page（default 1）
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fail(c, http.StatusBadRequest, "invalid page")
		}
		page = p
	}

	// limit（default 20）
	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return fail(c, http.StatusBadRequest, "invalid limit")
		}
		limit = l
	}

	var minPrice, maxPrice *decimal.Decimal
	if v := c.QueryParam("min_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return fail(c, http.StatusBadRequest, "invalid min_price")
		}
		minPrice = &d
	}
	if v := c.QueryParam("max_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return fail(c, http.StatusBadRequest, "invalid max_price")
		}
		maxPrice = &d
	}

	out, err := h.uc.ListProducts(c.Request().Context(), usecase.ListProductsInput{
		Page:        page,
		Limit:       limit,
		Q:           c.QueryParam("q"),
		Category:    c.QueryParam("category"),
		MinPrice:    minPrice,
		MaxPrice:    maxPrice,
		InStockOnly: c.QueryParam("in_stock") == "true",
		Sort:        c.QueryParam("sort"),
	})
	if err != nil {
		return writeError(c, err)
	}

	return success(c, out, "")
}

func (h *ProductHandler) detail(c echo.Context) error {
	out, err := h.uc.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return success(c, out, "")
}

func (h *ProductHandler) create(c echo.Context) error {
	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	out, err := h.uc.CreateProduct(c.Request().Context(), usecase.CreateProductInput{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		OriginalPrice:  req.OriginalPrice,
		Category:       req.Category,
		Image:          req.Image,
		Images:         req.Images,
		InStock:        req.InStock,
		Specifications: req.Specifications,
		Tags:           req.Tags,
	})
	if err != nil {
		return writeError(c, err)
	}

	return success(c, out, "Product created")
}
