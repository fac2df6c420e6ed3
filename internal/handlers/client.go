package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/rajatkhanna/invoice-api/internal/httpx"
	"github.com/rajatkhanna/invoice-api/internal/models"
	"github.com/rajatkhanna/invoice-api/internal/validation"
)

type ClientHandler struct {
	DB *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{DB: db}
}

type clientReq struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Company        string `json:"company"`
	BillingAddress string `json:"billing_address"`
	ActualAddress  string `json:"actual_address"`
	Notes          string `json:"notes"`
}

func (req *clientReq) validate() validation.Violations {
	v := make(validation.Violations)
	validation.Required("name", req.Name, v)
	validation.Required("email", req.Email, v)
	return v
}

func (req *clientReq) apply(c *models.Client) {
	c.Name = req.Name
	c.Email = validation.NormalizeEmail(req.Email)
	c.Phone = req.Phone
	c.Company = req.Company
	c.BillingAddress = req.BillingAddress
	c.ActualAddress = req.ActualAddress
	c.Notes = req.Notes
}

// List: GET /clients
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	var clients []models.Client
	if err := h.DB.Order("created_at desc").Find(&clients).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_clients", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, clients)
}

// Create: POST /clients
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req clientReq
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := req.validate(); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	email := validation.NormalizeEmail(req.Email)
	var count int64
	h.DB.Model(&models.Client{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "email_already_exists", nil)
		return
	}
	var client models.Client
	req.apply(&client)
	if err := h.DB.Create(&client).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_client", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, client)
}

// Get: GET /clients/{id}
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	client, ok := h.load(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, client)
}

// Update: PUT /clients/{id}
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	client, ok := h.load(w, r)
	if !ok {
		return
	}
	var req clientReq
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := req.validate(); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	email := validation.NormalizeEmail(req.Email)
	var count int64
	h.DB.Model(&models.Client{}).Where("email = ? AND id <> ?", email, client.ID).Count(&count)
	if count > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "email_already_exists", nil)
		return
	}
	req.apply(&client)
	if err := h.DB.Save(&client).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_client", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, client)
}

// Delete: DELETE /clients/{id}
// A client referenced by any invoice cannot be deleted; the error lists up to
// three of the blocking invoice numbers.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	client, ok := h.load(w, r)
	if !ok {
		return
	}
	var referencing []models.Invoice
	if err := h.DB.Select("invoice_number").Where("client_id = ?", client.ID).Find(&referencing).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_client", nil)
		return
	}
	if len(referencing) > 0 {
		numbers := make([]string, 0, 3)
		for _, inv := range referencing {
			if len(numbers) == 3 {
				break
			}
			numbers = append(numbers, inv.InvoiceNumber)
		}
		httpx.JSONError(w, http.StatusBadRequest, "client_has_invoices", map[string]any{
			"count":    len(referencing),
			"invoices": numbers,
		})
		return
	}
	if err := h.DB.Delete(&client).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_client", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Client %q deleted successfully", client.Name),
	})
}

type bulkResult struct {
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors"`
}

// Bulk: POST /clients/bulk
// Imports a list of clients; rows failing validation or duplicating an email
// are skipped and reported, the rest are inserted in one batch.
func (h *ClientHandler) Bulk(w http.ResponseWriter, r *http.Request) {
	var reqs []clientReq
	if err := httpx.Decode(r, &reqs); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "payload_must_be_a_list", nil)
		return
	}

	var emails []string
	h.DB.Model(&models.Client{}).Pluck("email", &emails)
	seen := make(map[string]bool, len(emails))
	for _, e := range emails {
		seen[e] = true
	}

	result := bulkResult{Errors: []string{}}
	var batch []models.Client
	for i, req := range reqs {
		if v := req.validate(); !v.Empty() {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: missing required fields (name and email)", i+1))
			continue
		}
		email := validation.NormalizeEmail(req.Email)
		if seen[email] {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: email %q already exists", i+1, req.Email))
			continue
		}
		var client models.Client
		req.apply(&client)
		batch = append(batch, client)
		seen[email] = true
		result.Successful++
	}
	if len(batch) > 0 {
		if err := h.DB.Create(&batch).Error; err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_import_clients", nil)
			return
		}
	}
	httpx.JSON(w, http.StatusOK, result)
}

// Export: GET /clients/export
func (h *ClientHandler) Export(w http.ResponseWriter, r *http.Request) {
	var clients []models.Client
	if err := h.DB.Order("created_at").Find(&clients).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_export_clients", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"data":        clients,
		"count":       len(clients),
		"exported_at": time.Now().Format(time.RFC3339),
	})
}

// load fetches the client addressed by the {id} path value, writing the
// error response itself when the id is malformed or unknown.
func (h *ClientHandler) load(w http.ResponseWriter, r *http.Request) (models.Client, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return models.Client{}, false
	}
	var client models.Client
	if err := h.DB.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "client_not_found", nil)
		} else {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_client", nil)
		}
		return models.Client{}, false
	}
	return client, true
}
