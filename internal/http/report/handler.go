package report

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/sapataria/internal/http/response"
	"github.com/MrJamesThe3rd/sapataria/internal/inventory"
	"github.com/MrJamesThe3rd/sapataria/internal/ledger"
)

// RecentLimit is how many profits and expenses the financial overview lists. They are the first
// entries of each type in ledger order, which are the oldest.
const RecentLimit = 5

type Handler struct {
	store *inventory.Store
}

func NewHandler(store *inventory.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/dashboard", h.dashboard)
	r.Get("/transactions", h.transactions)
	r.Get("/financial", h.financial)
}

type totalsResponse struct {
	Stock   int    `json:"stock"`
	Sold    int    `json:"sold"`
	Revenue string `json:"revenue"`
	Cost    string `json:"cost"`
}

type dashboardResponse struct {
	Totals     totalsResponse     `json:"totals"`
	LowStock   []response.Product `json:"lowStock"`
	TopSellers []response.Product `json:"topSellers"`
}

func (h *Handler) dashboard(w http.ResponseWriter, _ *http.Request) {
	snap := h.store.Snapshot()
	totals := snap.StockTotals()

	response.JSON(w, http.StatusOK, dashboardResponse{
		Totals: totalsResponse{
			Stock:   totals.Stock,
			Sold:    totals.Sold,
			Revenue: totals.Revenue.String(),
			Cost:    totals.Cost.String(),
		},
		LowStock:   response.FromProducts(snap.LowStock()),
		TopSellers: response.FromProducts(snap.TopSellers()),
	})
}

func (h *Handler) transactions(w http.ResponseWriter, r *http.Request) {
	start, end, ok := parseRange(w, r)
	if !ok {
		return
	}

	txs := ledger.Between(h.store.Transactions(), start, end)

	if s := r.URL.Query().Get("type"); s != "" {
		typ := ledger.Type(s)
		if typ != ledger.TypeExpense && typ != ledger.TypeProfit {
			http.Error(w, "invalid type", http.StatusBadRequest)
			return
		}

		limit := len(txs)

		if l := r.URL.Query().Get("limit"); l != "" {
			n, err := strconv.Atoi(l)
			if err != nil || n < 0 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}

			limit = n
		}

		txs = ledger.Take(txs, typ, limit)
	}

	response.JSON(w, http.StatusOK, response.FromTransactions(txs))
}

type financialResponse struct {
	Summary        response.Summary       `json:"summary"`
	// First RecentLimit entries of each type in ledger order.
	RecentProfits  []response.Transaction `json:"recentProfits"`
	RecentExpenses []response.Transaction `json:"recentExpenses"`
}

func (h *Handler) financial(w http.ResponseWriter, r *http.Request) {
	start, end, ok := parseRange(w, r)
	if !ok {
		return
	}

	txs := ledger.Between(h.store.Transactions(), start, end)

	response.JSON(w, http.StatusOK, financialResponse{
		Summary:        response.FromSummary(ledger.Summarize(txs)),
		RecentProfits:  response.FromTransactions(ledger.Take(txs, ledger.TypeProfit, RecentLimit)),
		RecentExpenses: response.FromTransactions(ledger.Take(txs, ledger.TypeExpense, RecentLimit)),
	})
}

// parseRange reads start_date and end_date (YYYY-MM-DD). The end date is inclusive.
func parseRange(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	var start, end time.Time

	if s := r.URL.Query().Get("start_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			http.Error(w, "invalid start_date", http.StatusBadRequest)
			return start, end, false
		}

		start = t
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			http.Error(w, "invalid end_date", http.StatusBadRequest)
			return start, end, false
		}

		end = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	return start, end, true
}
