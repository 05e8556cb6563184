package rest

import (
	"net/http"

	"github.com/finwatch/finwatch/internal/retail/service"
	"github.com/finwatch/finwatch/pkg/web"
)

const (
	defaultLowStockThreshold = 10
	defaultExpiringDays      = 30
)

// CreateCategory handles the request to create a new product category.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	dto, ok := decodeValid[service.CategoryCreateDto](h, w, r, mLogger)
	if !ok {
		return
	}

	created, err := h.categories.Create(r.Context(), dto)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error creating category", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to create category")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

// FindCategoryByID handles the request to find a category by its ID.
func (h *Handler) FindCategoryByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	found, err := h.categories.FindByID(r.Context(), id)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Failed to find category")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// FindAllCategories handles the request to list all categories.
func (h *Handler) FindAllCategories(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	categories, err := h.categories.FindAll(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error listing categories", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to list categories")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, categories)
}

// UpdateCategory handles the request to update an existing category.
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	dto, ok := decodeValid[service.CategoryCreateDto](h, w, r, mLogger)
	if !ok {
		return
	}

	updated, err := h.categories.Update(r.Context(), id, dto)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Failed to update category")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// DeleteCategory handles the request to delete a category.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	if err := h.categories.Delete(r.Context(), id); err != nil {
		h.respondLookupError(w, r, mLogger, err, "Failed to delete category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateProduct handles the request to add a product to the catalog.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	dto, ok := decodeValid[service.ProductCreateDto](h, w, r, mLogger)
	if !ok {
		return
	}

	created, err := h.products.Create(r.Context(), dto)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Failed to create product")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

// FindProductByID handles the request to find a product by its ID.
func (h *Handler) FindProductByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	found, err := h.products.FindByID(r.Context(), id)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Failed to find product")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// FindAllProducts handles the request to list all products.
func (h *Handler) FindAllProducts(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	products, err := h.products.FindAll(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error listing products", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to list products")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, products)
}

// FindProductsByCategory lists the products that belong to one category.
func (h *Handler) FindProductsByCategory(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	if _, err := h.categories.FindByID(r.Context(), id); err != nil {
		h.respondLookupError(w, r, mLogger, err, "Failed to find category")
		return
	}

	products, err := h.products.FindByCategory(r.Context(), id)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error listing products by category", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to list products")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, products)
}

// FindLowStockProducts lists products whose stock is below the threshold
// query parameter.
func (h *Handler) FindLowStockProducts(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	threshold, ok := web.ParseOptionalGt(r, w, mLogger, "threshold", defaultLowStockThreshold)
	if !ok {
		return
	}

	products, err := h.products.FindLowStock(r.Context(), threshold)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error listing low stock products", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to list products")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, products)
}

// FindExpiringProducts lists products whose expiration date falls within the
// next N days, given by the days query parameter.
func (h *Handler) FindExpiringProducts(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	days, ok := web.ParseOptionalGt(r, w, mLogger, "days", defaultExpiringDays)
	if !ok {
		return
	}

	products, err := h.products.FindExpiring(r.Context(), days)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error listing expiring products", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to list products")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, products)
}

// UpdateProduct handles the request to update an existing product.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	dto, ok := decodeValid[service.ProductCreateDto](h, w, r, mLogger)
	if !ok {
		return
	}

	updated, err := h.products.Update(r.Context(), id, dto)
	if err != nil {
		h.respondLookupError(w, r, mLogger, err, "Failed to update product")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// DeleteProduct handles the request to delete a product.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		h.respondLookupError(w, r, mLogger, err, "Failed to delete product")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
