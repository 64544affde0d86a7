package main

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	cartgrpc "github.com/mastice-lab/storefront/internal/cart/grpc"
	catalogdomain "github.com/mastice-lab/storefront/internal/catalog/domain"
	cgrpc "github.com/mastice-lab/storefront/internal/catalog/grpc"
	checkoutdomain "github.com/mastice-lab/storefront/internal/checkout/domain"
	checkoutgrpc "github.com/mastice-lab/storefront/internal/checkout/grpc"
	contactdomain "github.com/mastice-lab/storefront/internal/contact/domain"
	contactgrpc "github.com/mastice-lab/storefront/internal/contact/grpc"
	ordergrpc "github.com/mastice-lab/storefront/internal/order/grpc"
	searchgrpc "github.com/mastice-lab/storefront/internal/search/grpc"
)

const maxBodyBytes = 64 << 10

type clients struct {
	catalog  *cgrpc.Client
	cart     *cartgrpc.Client
	checkout *checkoutgrpc.Client
	orders   *ordergrpc.Client
	search   *searchgrpc.Client
	contact  *contactgrpc.Client
}

type handlers struct {
	c     clients
	log   *slog.Logger
	ready func() bool
}

func newRouter(h *handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.log))
	r.Use(middleware.Recoverer)
	r.Use(traced)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if h.ready != nil && !h.ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.listProducts)
		r.Get("/products/{id}", h.getProduct)
		r.Get("/categories", h.listCategories)
		r.Get("/search", h.search)
		r.Post("/contact", h.submitContact)

		r.Group(func(r chi.Router) {
			r.Use(withShopper)

			r.Get("/cart", h.getCart)
			r.Delete("/cart", h.clearCart)
			r.Post("/cart/items", h.addCartItem)
			r.Patch("/cart/items/{id}", h.setCartItemQuantity)
			r.Delete("/cart/items/{id}", h.removeCartItem)
			r.Put("/cart/items/{id}/color", h.changeCartItemColor)

			r.Get("/checkout/quote", h.quote)
			r.Post("/checkout", h.placeOrder)

			r.Get("/orders", h.listOrders)
			r.Get("/orders/{id}", h.getOrder)
		})
	})

	return r
}

func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	code, errCode, msg := httpStatusFromGRPC(err)
	if code >= http.StatusInternalServerError {
		h.log.Error("upstream call failed", slog.String("path", r.URL.Path), slog.Any("err", err))
	}
	writeError(w, code, errCode, msg)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "malformed JSON body")
		return false
	}
	return true
}

func intParam(w http.ResponseWriter, raw, name string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", name+" must be an integer")
		return 0, false
	}
	return n, true
}

func (h *handlers) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, ok := intParam(w, q.Get("limit"), "limit")
	if !ok {
		return
	}
	cursor, ok := intParam(w, q.Get("cursor"), "cursor")
	if !ok {
		return
	}

	out, err := h.c.catalog.ListProducts(r.Context(), cgrpc.ListProductsRequest{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Limit:    limit,
		Cursor:   cursor,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if out.Products == nil {
		out.Products = []catalogdomain.Product{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handlers) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, chi.URLParam(r, "id"), "id")
	if !ok {
		return
	}
	p, err := h.c.catalog.GetProduct(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *handlers) listCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.c.catalog.ListCategories(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": cats})
}

func (h *handlers) search(w http.ResponseWriter, r *http.Request) {
	limit, ok := intParam(w, r.URL.Query().Get("limit"), "limit")
	if !ok {
		return
	}
	results, err := h.c.search.Search(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (h *handlers) submitContact(w http.ResponseWriter, r *http.Request) {
	var msg contactdomain.Message
	if !decode(w, r, &msg) {
		return
	}
	out, err := h.c.contact.Submit(r.Context(), msg)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, out)
}

func (h *handlers) getCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.c.cart.GetCart(r.Context(), shopperID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *handlers) clearCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.c.cart.ClearCart(r.Context(), shopperID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

type addItemBody struct {
	ProductID int    `json:"productId"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

func (h *handlers) addCartItem(w http.ResponseWriter, r *http.Request) {
	var body addItemBody
	if !decode(w, r, &body) {
		return
	}
	cart, err := h.c.cart.AddItem(r.Context(), cartgrpc.AddItemRequest{
		ShopperID: shopperID(r),
		ProductID: body.ProductID,
		Color:     body.Color,
		Quantity:  body.Quantity,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

type quantityBody struct {
	Color    string `json:"color"`
	Quantity *int   `json:"quantity"`
}

func (h *handlers) setCartItemQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, chi.URLParam(r, "id"), "id")
	if !ok {
		return
	}
	var body quantityBody
	if !decode(w, r, &body) {
		return
	}
	if body.Quantity == nil {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "quantity is required")
		return
	}
	cart, err := h.c.cart.SetItemQuantity(r.Context(), cartgrpc.SetItemQuantityRequest{
		ShopperID: shopperID(r),
		ProductID: id,
		Color:     body.Color,
		Quantity:  *body.Quantity,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// removeCartItem takes the line's color from ?color=, URL-encoded.
func (h *handlers) removeCartItem(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, chi.URLParam(r, "id"), "id")
	if !ok {
		return
	}
	cart, err := h.c.cart.RemoveItem(r.Context(), cartgrpc.RemoveItemRequest{
		ShopperID: shopperID(r),
		ProductID: id,
		Color:     r.URL.Query().Get("color"),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

type colorBody struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (h *handlers) changeCartItemColor(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, chi.URLParam(r, "id"), "id")
	if !ok {
		return
	}
	var body colorBody
	if !decode(w, r, &body) {
		return
	}
	cart, err := h.c.cart.ChangeColor(r.Context(), cartgrpc.ChangeColorRequest{
		ShopperID: shopperID(r),
		ProductID: id,
		From:      body.From,
		To:        body.To,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *handlers) quote(w http.ResponseWriter, r *http.Request) {
	q, err := h.c.checkout.Quote(r.Context(), shopperID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *handlers) placeOrder(w http.ResponseWriter, r *http.Request) {
	var form checkoutdomain.Form
	if !decode(w, r, &form) {
		return
	}
	receipt, err := h.c.checkout.PlaceOrder(r.Context(), checkoutgrpc.PlaceOrderRequest{
		ShopperID:      shopperID(r),
		Form:           form,
		IdempotencyKey: r.Header.Get("Idempotency-Key"),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	code := http.StatusCreated
	if receipt.Replayed {
		code = http.StatusOK
	}
	w.Header().Set("Location", "/api/orders/"+receipt.OrderID)
	writeJSON(w, code, receipt)
}

func (h *handlers) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.c.orders.ListOrders(r.Context(), shopperID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": orders, "totalOrders": len(orders)})
}

func (h *handlers) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.c.orders.GetOrder(r.Context(), shopperID(r), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}
