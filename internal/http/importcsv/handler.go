package importcsv

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/sapataria/internal/http/response"
	"github.com/MrJamesThe3rd/sapataria/internal/importer"
)

const maxUpload = 10 << 20

type Handler struct {
	importSvc *importer.Service
}

func NewHandler(importSvc *importer.Service) *Handler {
	return &Handler{importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type previewResponse struct {
	Products []previewProduct `json:"products"`
}

type previewProduct struct {
	Name          string `json:"name"`
	SKU           string `json:"sku"`
	SalePrice     string `json:"salePrice"`
	CostPrice     string `json:"costPrice"`
	StockQuantity int    `json:"stockQuantity"`
}

type importSuccessResponse struct {
	Imported int                `json:"imported"`
	Products []response.Product `json:"products"`
}

type importPartialResponse struct {
	Error    string             `json:"error"`
	Imported int                `json:"imported"`
	Products []response.Product `json:"products"`
}

// importCSV reads a multipart "file" field. With dry_run=true the parsed rows are returned
// without touching the store.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		format = importer.FormatCatalog
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if dry, _ := strconv.ParseBool(r.FormValue("dry_run")); dry {
		specs, err := h.importSvc.Parse(format, file)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		resp := previewResponse{Products: make([]previewProduct, 0, len(specs))}
		for _, np := range specs {
			resp.Products = append(resp.Products, previewProduct{
				Name:          np.Name,
				SKU:           np.SKU,
				SalePrice:     np.SalePrice.String(),
				CostPrice:     np.CostPrice.String(),
				StockQuantity: np.StockQuantity,
			})
		}

		response.JSON(w, http.StatusOK, resp)

		return
	}

	specs, err := h.importSvc.Parse(format, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	added, err := h.importSvc.Add(r.Context(), specs)
	if err != nil {
		response.JSON(w, http.StatusInternalServerError, importPartialResponse{
			Error:    err.Error(),
			Imported: len(added),
			Products: response.FromProducts(added),
		})

		return
	}

	response.JSON(w, http.StatusCreated, importSuccessResponse{
		Imported: len(added),
		Products: response.FromProducts(added),
	})
}
