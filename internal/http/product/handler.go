package product

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/sapataria/internal/http/response"
	"github.com/MrJamesThe3rd/sapataria/internal/inventory"
	"github.com/MrJamesThe3rd/sapataria/internal/label"
	"github.com/MrJamesThe3rd/sapataria/internal/validation"
)

const qrPixels = 256

type Handler struct {
	store *inventory.Store
}

func NewHandler(store *inventory.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Post("/variants", h.createVariants)
	r.Post("/labels", h.labels)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/sold", h.markAsSold)
	r.Get("/{id}/qr.png", h.qr)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	products := h.store.Snapshot().Search(r.URL.Query().Get("q"))

	response.JSON(w, http.StatusOK, response.FromProducts(products))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req inventory.NewProduct
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validation.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.store.AddProduct(r.Context(), req)
	if err != nil {
		slog.Error("failed to add product", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	response.JSON(w, http.StatusCreated, response.FromProduct(p))
}

// createVariants adds one product per selected color and size. A failed write stops the batch;
// products added before it are kept.
func (h *Handler) createVariants(w http.ResponseWriter, r *http.Request) {
	var req inventory.VariantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	specs := req.Expand()
	created := make([]inventory.Product, 0, len(specs))

	for _, np := range specs {
		p, err := h.store.AddProduct(r.Context(), np)
		if err != nil {
			slog.Error("failed to add variant", "name", np.Name, "added", len(created), "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)

			return
		}

		created = append(created, p)
	}

	response.JSON(w, http.StatusCreated, response.FromProducts(created))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p, ok := h.lookup(w, r)
	if !ok {
		return
	}

	response.JSON(w, http.StatusOK, response.FromProduct(p))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	p, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req inventory.ProductPatch
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validation.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.store.UpdateProduct(r.Context(), p.ID, req); err != nil {
		slog.Error("failed to update product", "id", p.ID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	h.respondCurrent(w, p.ID)
}

// delete answers 204 for unknown ids too: the product is gone either way.
func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.store.DeleteProduct(r.Context(), id); err != nil {
		slog.Error("failed to delete product", "id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// markAsSold is idempotent: selling a sold product returns it unchanged.
func (h *Handler) markAsSold(w http.ResponseWriter, r *http.Request) {
	p, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if err := h.store.MarkAsSold(r.Context(), p.ID); err != nil {
		slog.Error("failed to mark product as sold", "id", p.ID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	h.respondCurrent(w, p.ID)
}

func (h *Handler) qr(w http.ResponseWriter, r *http.Request) {
	p, ok := h.lookup(w, r)
	if !ok {
		return
	}

	png, err := label.QR(p, qrPixels)
	if err != nil {
		slog.Error("failed to render qr", "id", p.ID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "image/png")

	if _, err := w.Write(png); err != nil {
		slog.Error("failed to write qr", "error", err)
	}
}

type labelsRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

// labels renders a sheet of tags for the given ids, or for every unsold product when none are given.
func (h *Handler) labels(w http.ResponseWriter, r *http.Request) {
	var req labelsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var products []inventory.Product

	if len(req.IDs) == 0 {
		for _, p := range h.store.Products() {
			if !p.IsSold {
				products = append(products, p)
			}
		}
	}

	for _, id := range req.IDs {
		p, err := h.store.Product(id)
		if err != nil {
			http.Error(w, "product not found: "+id.String(), http.StatusNotFound)
			return
		}

		products = append(products, p)
	}

	if len(products) == 0 {
		http.Error(w, label.ErrNoProducts.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="etiquetas.pdf"`)

	if err := label.PDF(w, products, label.DefaultLayout); err != nil {
		slog.Error("failed to render labels", "error", err)
	}
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (inventory.Product, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return inventory.Product{}, false
	}

	p, err := h.store.Product(id)
	if err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return inventory.Product{}, false
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return inventory.Product{}, false
	}

	return p, true
}

func (h *Handler) respondCurrent(w http.ResponseWriter, id uuid.UUID) {
	p, err := h.store.Product(id)
	if err != nil {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	response.JSON(w, http.StatusOK, response.FromProduct(p))
}
