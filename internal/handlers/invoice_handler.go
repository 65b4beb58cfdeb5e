package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"freelance-backend/internal/models"
	"freelance-backend/internal/services"
	"freelance-backend/internal/store"

	"github.com/gorilla/mux"
)

type InvoiceHandler struct {
	Service    *services.InvoiceService
	PDFService *services.PDFService
	// QRImageSize is the default pixel size for /qr.png responses.
	QRImageSize int
}

func NewInvoiceHandler(s *services.InvoiceService, pdfService *services.PDFService, qrImageSize int) *InvoiceHandler {
	return &InvoiceHandler{Service: s, PDFService: pdfService, QRImageSize: qrImageSize}
}

// CreateInvoice creates a new invoice
func (h *InvoiceHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req models.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	invoice, err := h.Service.CreateInvoice(r.Context(), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(invoice)
}

// GetInvoice retrieves an invoice by ID
func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	invoice, err := h.Service.GetInvoice(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(invoice)
}

// GetInvoiceByNumber retrieves an invoice by invoice number
func (h *InvoiceHandler) GetInvoiceByNumber(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]

	invoice, err := h.Service.GetInvoiceByNumber(r.Context(), number)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(invoice)
}

// ListInvoices returns all invoices, optionally filtered by customer
func (h *InvoiceHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	if customerID := r.URL.Query().Get("customer_id"); customerID != "" {
		invoices, err := h.Service.ListByCustomer(r.Context(), customerID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(invoices)
		return
	}

	invoices, err := h.Service.ListInvoices(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(invoices)
}

// UpdateInvoice updates an invoice
func (h *InvoiceHandler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.UpdateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	invoice, err := h.Service.UpdateInvoice(r.Context(), id, &req)
	if err != nil {
		status := http.StatusBadRequest
		if err == store.ErrNotFound {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(invoice)
}

// UpdateStatus moves an invoice between kanban columns
func (h *InvoiceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.UpdateInvoiceStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	invoice, err := h.Service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		status := http.StatusBadRequest
		if err == store.ErrNotFound {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(invoice)
}

// DeleteInvoice removes an invoice
func (h *InvoiceHandler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.Service.DeleteInvoice(r.Context(), id); err != nil {
		status := http.StatusInternalServerError
		if err == store.ErrNotFound {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetQRPayload returns the raw SPC text record for an invoice. Validation
// failures come back as 422 so the editor can surface them inline.
func (h *InvoiceHandler) GetQRPayload(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	payload, err := h.Service.GeneratePayload(r.Context(), id)
	if err != nil {
		if err == store.ErrNotFound {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, payload)
}

// GetQRImage returns the rendered QR PNG with the Swiss cross overlay
func (h *InvoiceHandler) GetQRImage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	size := h.QRImageSize
	if v := r.URL.Query().Get("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 64 && n <= 2048 {
			size = n
		}
	}

	data, err := h.Service.GenerateQRImage(r.Context(), id, size)
	if err != nil {
		if err == store.ErrNotFound {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(data)
}

// GetPDF returns the invoice document with the payment part
func (h *InvoiceHandler) GetPDF(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	data, err := h.PDFService.RenderInvoice(r.Context(), id)
	if err != nil {
		if err == store.ErrNotFound {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Write(data)
}

// ValidateReference classifies a candidate reference against the profile
// account before the editor saves it
func (h *InvoiceHandler) ValidateReference(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reference string `json:"reference"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	cls, err := h.Service.ValidateReference(r.Context(), req.Reference)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"scheme":    cls.Scheme,
		"reference": cls.Reference,
		"valid":     cls.Valid,
		"reason":    cls.Reason.String(),
	})
}
