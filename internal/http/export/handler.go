package export

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/sapataria/internal/export"
	"github.com/MrJamesThe3rd/sapataria/internal/http/response"
	"github.com/MrJamesThe3rd/sapataria/internal/ledger"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.metadata)
	r.Post("/download", h.download)
}

type exportRequest struct {
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

func (req exportRequest) filter() export.Filter {
	var f export.Filter

	if req.StartDate != nil {
		f.Start = *req.StartDate
	}

	if req.EndDate != nil {
		f.End = *req.EndDate
	}

	return f
}

type exportMetadataResponse struct {
	Transactions []response.Transaction `json:"transactions"`
	Summary      string                 `json:"summary"`
}

func (h *Handler) metadata(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txs := h.svc.List(req.filter())

	response.JSON(w, http.StatusOK, exportMetadataResponse{
		Transactions: response.FromTransactions(txs),
		Summary:      h.svc.GenerateSummary(txs),
	})
}

// download answers with a zip holding the CSV sheet, the text summary and the PDF report.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	filter := req.filter()

	tmpDir, err := os.MkdirTemp("", "sapataria-export-*")
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer os.RemoveAll(tmpDir)

	_, txs, err := h.svc.Export(r.Context(), filter, tmpDir)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "resumo.txt"), []byte(h.svc.GenerateSummary(txs)), 0o644); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := writePDF(h.svc, filepath.Join(tmpDir, "relatorio.pdf"), export.Title(filter), txs); err != nil {
		slog.Error("failed to render report", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"export_%s.zip\"", time.Now().Format("20060102")))

	zipWriter := zip.NewWriter(w)
	defer zipWriter.Close()

	err = filepath.Walk(tmpDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}

		relPath, _ := filepath.Rel(tmpDir, path)

		zf, err := zipWriter.Create(relPath)
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(zf, f)

		return err
	})
	if err != nil {
		slog.Error("failed to create zip", "error", err)
	}
}

func writePDF(svc *export.Service, path, title string, txs []ledger.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := svc.WritePDF(f, title, txs); err != nil {
		return err
	}

	return f.Close()
}
