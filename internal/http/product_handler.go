package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gradeshop/catalog-service/internal/catalog"
	"github.com/gradeshop/catalog-service/internal/domain"
	"github.com/gradeshop/catalog-service/internal/service"
)

type ProductHandler struct {
	catalogs *service.CatalogService
	charts   *service.SizeChartService
	timeout  time.Duration
}

func NewProductHandler(catalogs *service.CatalogService, charts *service.SizeChartService, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		catalogs: catalogs,
		charts:   charts,
		timeout:  timeout,
	}
}

type OptionDTO struct {
	Value     string `json:"value"`
	Available bool   `json:"available"`
	Selected  bool   `json:"selected"`
}

type VariantDTO struct {
	ID    int64  `json:"id"`
	Size  string `json:"size"`
	Grade string `json:"grade"`
	Stock int    `json:"stock"`
	Price int64  `json:"price"`
}

type ProductViewDTO struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Brand        string            `json:"brand"`
	Categories   []string          `json:"categories"`
	Sizes        []OptionDTO       `json:"sizes"`
	Grades       []OptionDTO       `json:"grades"`
	DisplayPrice int64             `json:"display_price"`
	Variant      *VariantDTO       `json:"variant,omitempty"`
	Selection    catalog.Selection `json:"selection"`
}

// GetProduct renders one product view: the size and grade option lists with
// per-value availability under the caller's current selection, the resolved
// variant when both axes are chosen, and the display price fallback.
// Selection arrives as optional ?size= and ?grade= query params.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	sel := catalog.Selection{
		Size:  r.URL.Query().Get("size"),
		Grade: r.URL.Query().Get("grade"),
	}

	cat, err := h.catalogs.Load(ctx, productID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	price, err := cat.DisplayPrice(sel)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	view := buildProductView(cat, sel, price)
	respondJSON(w, http.StatusOK, view)
}

func buildProductView(cat *catalog.Catalog, sel catalog.Selection, price int64) ProductViewDTO {
	product := cat.Product()

	categories := make([]string, 0, len(product.Categories))
	for _, c := range product.Categories {
		categories = append(categories, c.Name)
	}

	sizes := make([]OptionDTO, 0, len(cat.Sizes()))
	for _, size := range cat.Sizes() {
		sizes = append(sizes, OptionDTO{
			Value:     size,
			Available: cat.SizeAvailable(size, sel),
			Selected:  sel.Size == size,
		})
	}

	grades := make([]OptionDTO, 0, len(cat.Grades()))
	for _, grade := range cat.Grades() {
		grades = append(grades, OptionDTO{
			Value:     grade,
			Available: cat.GradeAvailable(grade, sel),
			Selected:  sel.Grade == grade,
		})
	}

	view := ProductViewDTO{
		ID:           product.ID,
		Name:         product.Name,
		Description:  product.Description,
		Brand:        product.BrandName,
		Categories:   categories,
		Sizes:        sizes,
		Grades:       grades,
		DisplayPrice: price,
		Selection:    sel,
	}

	if v, ok := cat.Resolve(sel); ok {
		view.Variant = &VariantDTO{
			ID:    v.ID,
			Size:  v.Size,
			Grade: v.GradeName,
			Stock: v.Stock,
			Price: v.Price,
		}
	}

	return view
}

type SizeChartDTO struct {
	ImageURL string `json:"image_url"`
}

// GetSizeChart returns the chart for the product's brand and first category,
// or a null chart when none exists.
func (h *ProductHandler) GetSizeChart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	cat, err := h.catalogs.Load(ctx, productID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	product := cat.Product()
	category := ""
	if len(product.Categories) > 0 {
		category = product.Categories[0].Name
	}

	chart, err := h.charts.Lookup(ctx, product.BrandID, category)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toChartDTO(chart))
}

func toChartDTO(chart *domain.SizeChart) map[string]*SizeChartDTO {
	if chart == nil {
		return map[string]*SizeChartDTO{"chart": nil}
	}
	return map[string]*SizeChartDTO{"chart": {ImageURL: chart.ImageURL}}
}
