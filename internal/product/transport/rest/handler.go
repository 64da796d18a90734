// Package rest provides HTTP handlers for product-related operations.
package rest

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	perrors "github.com/abgdnv/productcatalog/internal/product/errors"
	"github.com/abgdnv/productcatalog/internal/product/model"
	"github.com/abgdnv/productcatalog/internal/product/service"
	"github.com/abgdnv/productcatalog/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Handler struct {
	service service.ProductService
	logger  *slog.Logger
}

// NewHandler creates a new instance of Handler with the provided service.
func NewHandler(service service.ProductService, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the product catalog.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Put("/", h.Update)
			r.Delete("/", h.Delete)
		})
	})

	r.Get("/healthz", h.HealthCheck)
}

// FindByID retrieves a product by its ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}

	h.logger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, id, err, "retrieve")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, found.Serialize())
}

// List returns all products, or the products matching one query parameter.
// Recognized parameters, by precedence: name, category, available, price.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var (
		filter service.Filter
		ok     bool
	)
	if r.URL.Query().Has("name") {
		name := r.URL.Query().Get("name")
		filter.Name = &name
	}
	if filter.Category, ok = web.ParseOptional(w, r, h.logger, "category", model.ParseCategory); !ok {
		return
	}
	if filter.Available, ok = web.ParseOptional(w, r, h.logger, "available", web.ParseBool); !ok {
		return
	}
	if filter.Price, ok = web.ParseOptional(w, r, h.logger, "price", parsePrice); !ok {
		return
	}

	h.logger.DebugContext(r.Context(), "Received request to list products", "filtered", !filter.IsEmpty())
	list, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	result := make([]map[string]any, len(list))
	for i := range list {
		result[i] = list[i].Serialize()
	}
	h.logger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(result))
	web.RespondJSON(w, h.logger, http.StatusOK, result)
}

// Create handles the creation of a new product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var p model.Product
	if !h.decodeProduct(w, r, &p) {
		return
	}
	if err := h.service.Create(r.Context(), &p); err != nil {
		if errors.Is(err, perrors.ErrDataValidation) {
			h.logger.WarnContext(r.Context(), "Invalid product", "error", err)
			web.RespondError(w, h.logger, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.ErrorContext(r.Context(), "Error creating product", "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to create product")
		return
	}
	h.logger.InfoContext(r.Context(), "Product created successfully", "ID", p.ID, "Name", p.Name)
	w.Header().Set("Location", "/api/v1/products/"+p.ID.String())
	web.RespondJSON(w, h.logger, http.StatusCreated, p.Serialize())
}

// Update replaces the fields of an existing product.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to update product", "ID", id)
	p := model.Product{ID: id}
	if !h.decodeProduct(w, r, &p) {
		return
	}
	if err := h.service.Update(r.Context(), &p); err != nil {
		h.respondServiceError(w, r, id, err, "update")
		return
	}
	h.logger.InfoContext(r.Context(), "Product updated successfully", "ID", p.ID, "Name", p.Name)
	web.RespondJSON(w, h.logger, http.StatusOK, p.Serialize())
}

// Delete deletes a product by its ID.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to delete product", "ID", id)
	if err := h.service.Delete(r.Context(), &model.Product{ID: id}); err != nil {
		h.respondServiceError(w, r, id, err, "delete")
		return
	}
	h.logger.InfoContext(r.Context(), "Product deleted successfully", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	web.RespondJSON(w, h.logger, http.StatusOK, map[string]string{"status": "OK"})
}

// decodeProduct reads the request body into p, responding with 400 on failure.
func (h *Handler) decodeProduct(w http.ResponseWriter, r *http.Request, p *model.Product) bool {
	body, err := web.DecodeJSONObject(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := p.Deserialize(body); err != nil {
		h.logger.WarnContext(r.Context(), "Invalid product", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, id uuid.UUID, err error, action string) {
	switch {
	case errors.Is(err, perrors.ErrProductNotFound):
		h.logger.WarnContext(r.Context(), "Product not found", "ID", id, "action", action)
		web.RespondError(w, h.logger, http.StatusNotFound, fmt.Sprintf("Product with ID %s not found", id))
	case errors.Is(err, perrors.ErrDataValidation):
		h.logger.WarnContext(r.Context(), "Invalid product", "ID", id, "action", action, "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "Error processing product", "ID", id, "action", action, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, fmt.Sprintf("Failed to %s product with ID %s", action, id))
	}
}

func parsePrice(raw string) (decimal.Decimal, error) {
	return model.ParsePrice(raw)
}
