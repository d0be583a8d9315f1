package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/paintcompare/marketplace-api/internal/core/domain"
	"github.com/paintcompare/marketplace-api/internal/core/ports"
)

type ProductHandler struct {
	catalog ports.CatalogService
}

func NewProductHandler(catalog ports.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

type productRequest struct {
	Name       string  `json:"name" validate:"required"`
	Brand      string  `json:"brand"`
	ColorHex   string  `json:"color_hex" validate:"omitempty,hexcolor"`
	Finish     string  `json:"finish" validate:"omitempty,oneof=matte eggshell satin semi-gloss gloss"`
	SizeLiters float64 `json:"size_liters" validate:"gt=0"`
	Price      float64 `json:"price" validate:"gt=0"`
}

type productListResponse struct {
	Products []*domain.Product `json:"products"`
	Total    int64             `json:"total"`
}

// List returns a page of the catalog, filterable for price comparison.
//
// @Summary      Browse the paint catalog
// @Tags         catalog
// @Produce      json
// @Param        brand      query     string  false  "Filter by brand"
// @Param        color      query     string  false  "Filter by color (hex)"
// @Param        finish     query     string  false  "Filter by finish"
// @Param        max_price  query     number  false  "Maximum price"
// @Success      200        {object}  productListResponse
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	filter := domain.ProductFilter{
		Brand:    c.QueryParam("brand"),
		ColorHex: c.QueryParam("color"),
		Finish:   c.QueryParam("finish"),
	}
	if raw := c.QueryParam("max_price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "max_price must be a number")
		}
		filter.MaxPrice = price
	}
	filter.Limit, filter.Offset = pageParams(c)

	products, total, err := h.catalog.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	if products == nil {
		products = []*domain.Product{}
	}
	return c.JSON(http.StatusOK, productListResponse{Products: products, Total: total})
}

// Get returns a single product.
//
// @Summary      Get a product
// @Tags         catalog
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  map[string]string
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.catalog.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Create adds a listing owned by the requesting supplier.
//
// @Summary      Create a product
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        body  body      productRequest  true  "Product details"
// @Success      201   {object}  domain.Product
// @Failure      403   {object}  map[string]string
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.catalog.Create(c.Request().Context(), identity, productInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

// Update rewrites a listing; suppliers may only touch their own.
//
// @Summary      Update a product
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Product ID"
// @Param        body  body      productRequest  true  "Product details"
// @Success      200   {object}  domain.Product
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.catalog.Update(c.Request().Context(), identity, c.Param("id"), productInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Delete removes a listing; suppliers may only remove their own.
//
// @Summary      Delete a product
// @Tags         catalog
// @Param        id  path  string  true  "Product ID"
// @Success      204  "deleted"
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.catalog.Delete(c.Request().Context(), identity, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func productInput(req productRequest) ports.ProductInput {
	return ports.ProductInput{
		Name:       req.Name,
		Brand:      req.Brand,
		ColorHex:   req.ColorHex,
		Finish:     req.Finish,
		SizeLiters: req.SizeLiters,
		Price:      req.Price,
	}
}

// pageParams reads limit/offset query parameters, leaving zero values for the
// service defaults when absent or unparsable.
func pageParams(c echo.Context) (limit, offset int64) {
	limit, _ = strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	offset, _ = strconv.ParseInt(c.QueryParam("offset"), 10, 64)
	return limit, offset
}
