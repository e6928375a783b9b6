package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domclient "github.com/clinicbase/clinic-scheduler/internal/domain/client"
	"github.com/clinicbase/clinic-scheduler/internal/httperr"
	"github.com/clinicbase/clinic-scheduler/internal/httpresp"
	"github.com/clinicbase/clinic-scheduler/internal/models"
	"github.com/clinicbase/clinic-scheduler/internal/validators"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

// ======================================================
// LIST
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Session(&gorm.Session{})
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR contact LIKE ?", like, like)
	}

	var clients []models.Client
	if err := q.Order("created_at DESC").Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Error listing clients.")
		return
	}
	httpresp.List(c, clients)
}

func (h *ClientHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var client models.Client
	if err := h.db.First(&client, id).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Client not found")
		return
	}
	httpresp.OK(c, client)
}

// ======================================================
// UPDATE
// ======================================================

type UpdateClientRequest struct {
	Name    *string `json:"name"`
	Age     *int    `json:"age"`
	Gender  *string `json:"gender"`
	Contact *string `json:"contact"`
	Address *string `json:"address"`
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var client models.Client
	if err := h.db.First(&client, id).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Client not found")
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Name != nil {
		normalized := domclient.Normalize(*req.Name)
		if normalized == "" {
			httperr.BadRequest(c, "invalid_name", "Client name must not be empty")
			return
		}
		client.Name = *req.Name
		client.NormalizedName = normalized
	}
	if req.Age != nil {
		if err := domclient.ValidateAge(*req.Age); err != nil {
			httperr.BadRequest(c, "invalid_age", "Client age must be between 1 and 120")
			return
		}
		client.Age = *req.Age
	}
	if req.Gender != nil {
		client.Gender = *req.Gender
	}
	if req.Contact != nil {
		if *req.Contact != "" && !validators.IsValidContact(*req.Contact) {
			httperr.BadRequest(c, "invalid_contact", "Invalid phone number")
			return
		}
		client.Contact = *req.Contact
	}
	if req.Address != nil {
		client.Address = *req.Address
	}

	if err := h.db.Save(&client).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "client_name_taken", "Another client already uses this name")
			return
		}
		httperr.Internal(c, "failed_to_update_client", "Error updating client.")
		return
	}
	httpresp.OK(c, client)
}

// ======================================================
// DELETE (cascades to the client's appointments)
// ======================================================

func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var client models.Client
	if err := h.db.First(&client, id).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Client not found")
		return
	}

	// Reschedule history is deliberately kept: the ledger outlives the
	// records it references.
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", client.ID).
			Delete(&models.Appointment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&client).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_delete_client", "Error deleting client.")
		return
	}
	httpresp.OKMessage(c, "Client and related appointments deleted", nil)
}

func (h *ClientHandler) parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid client ID")
		return 0, false
	}
	return uint(id), true
}
