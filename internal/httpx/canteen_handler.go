package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arkanhadi/go-campus-services/internal/canteen"
)

type CanteenHandler struct {
	Service *canteen.Service
	Auth    func(http.Handler) http.Handler
}

func (h *CanteenHandler) Register(r *chi.Mux) {
	r.Get("/canteen/menu", h.listMenu)
	r.Group(func(g chi.Router) {
		g.Use(h.Auth)
		g.Post("/canteen/menu", h.addMenuItem)
		g.Post("/canteen/order", h.placeOrder)
		g.Get("/canteen/orders", h.listOrders)
	})
}

func (h *CanteenHandler) listMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ListMenu(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if items == nil {
		items = []canteen.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

type addMenuItemReq struct {
	Name       string `json:"name"`
	PriceCents int    `json:"price_cents"`
	Quantity   int    `json:"quantity"`
}

func (h *CanteenHandler) addMenuItem(w http.ResponseWriter, r *http.Request) {
	var req addMenuItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	it, err := h.Service.AddItem(r.Context(), req.Name, req.PriceCents, req.Quantity)
	if errors.Is(err, canteen.ErrInvalidItem) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

type placeOrderReq struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

func (h *CanteenHandler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.ItemID == "" {
		writeError(w, http.StatusBadRequest, "item_id required")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	conf, err := h.Service.PlaceOrder(r.Context(), AccountID(r.Context()), req.ItemID, req.Quantity)
	switch {
	case errors.Is(err, canteen.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "item not found")
		return
	case errors.Is(err, canteen.ErrCannotFulfill):
		writeError(w, http.StatusBadRequest, "item not available or insufficient quantity")
		return
	case errors.Is(err, canteen.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, conf)
}

func (h *CanteenHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	out, err := h.Service.ListOrders(r.Context(), AccountID(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if out == nil {
		out = []canteen.OrderSummary{}
	}
	writeJSON(w, http.StatusOK, out)
}
