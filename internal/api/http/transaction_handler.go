package http

import (
	"net/http"
	"strconv"

	"rentalmotor-backend/internal/domain"
	"rentalmotor-backend/internal/service"

	"github.com/gorilla/mux"
)

type TransactionHandler struct {
	svc     service.TransactionService
	payment service.PaymentService
}

func NewTransactionHandler(svc service.TransactionService, payment service.PaymentService) *TransactionHandler {
	return &TransactionHandler{svc: svc, payment: payment}
}

func (h *TransactionHandler) Register(r *mux.Router) {
	r.HandleFunc("/transactions/quote", h.Quote).Methods(http.MethodPost).Name("transactions.quote")
	r.HandleFunc("/transactions", h.List).Methods(http.MethodGet).Name("transactions.list")
	r.HandleFunc("/transactions", h.Create).Methods(http.MethodPost).Name("transactions.create")
	r.HandleFunc("/transactions/code/{code}", h.GetByCode).Methods(http.MethodGet).Name("transactions.byCode")
	r.HandleFunc("/transactions/{id:[0-9]+}", h.Get).Methods(http.MethodGet).Name("transactions.get")
	r.HandleFunc("/transactions/{id:[0-9]+}/finish", h.Finish).Methods(http.MethodPost).Name("transactions.finish")
	r.HandleFunc("/transactions/{id:[0-9]+}/cancel", h.Cancel).Methods(http.MethodPost).Name("transactions.cancel")
	r.HandleFunc("/transactions/{id:[0-9]+}/paid", h.MarkPaid).Methods(http.MethodPost).Name("transactions.paid")
	r.HandleFunc("/transactions/{id:[0-9]+}/qris", h.QRIS).Methods(http.MethodGet).Name("transactions.qris")
	r.HandleFunc("/transactions/{id:[0-9]+}/qris.png", h.QRISImage).Methods(http.MethodGet).Name("transactions.qrisImage")
}

func (h *TransactionHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var input service.RentalInput
	if !decodeJSON(w, r, &input) {
		return
	}
	q, err := h.svc.Quote(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.TransactionFilter{
		Status:        q.Get("status"),
		PaymentStatus: q.Get("payment_status"),
		UnitID:        queryInt32(r, "unit_id", 0),
		Query:         q.Get("q"),
	}
	page, pageSize := pagination(r)

	txs, total, err := h.svc.ListTransactions(r.Context(), filter, page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if txs == nil {
		txs = []domain.Transaction{}
	}
	writeJSON(w, http.StatusOK, pageResponse{Items: txs, Total: total, Page: page, PageSize: pageSize})
}

func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	adminID, ok := currentAdmin(w, r)
	if !ok {
		return
	}
	var input service.RentalInput
	if !decodeJSON(w, r, &input) {
		return
	}
	tx, err := h.svc.CreateTransaction(r.Context(), adminID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	tx, err := h.svc.GetTransaction(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (h *TransactionHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	tx, err := h.svc.GetByCode(r.Context(), mux.Vars(r)["code"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (h *TransactionHandler) Finish(w http.ResponseWriter, r *http.Request) {
	adminID, ok := currentAdmin(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	tx, err := h.svc.FinishTransaction(r.Context(), adminID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (h *TransactionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	adminID, ok := currentAdmin(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}
	tx, err := h.svc.CancelTransaction(r.Context(), adminID, id, req.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (h *TransactionHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	tx, err := h.svc.MarkPaid(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (h *TransactionHandler) QRIS(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	qr, err := h.payment.GenerateQRIS(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, qr)
}

func (h *TransactionHandler) QRISImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	qr, err := h.payment.GenerateQRIS(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(qr.PNG)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(qr.PNG)
}
