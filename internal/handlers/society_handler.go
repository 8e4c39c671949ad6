package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/coopregistry/coopregistry-api/internal/middleware"
	"github.com/coopregistry/coopregistry-api/internal/models"
	"github.com/coopregistry/coopregistry-api/internal/repository"
	"github.com/coopregistry/coopregistry-api/internal/services"
)

// Multipart field keys for registration uploads
const (
	fileKeyCertificate = "registrationCertificate"
	fileKeyBylaws      = "bylaws"
	fileKeyAdditional  = "additionalDocs"
)

type SocietyHandler struct {
	registrationSvc *services.RegistrationService
	societySvc      *services.SocietyService
	exportSvc       *services.ExportService
}

func NewSocietyHandler(registrationSvc *services.RegistrationService, societySvc *services.SocietyService, exportSvc *services.ExportService) *SocietyHandler {
	return &SocietyHandler{
		registrationSvc: registrationSvc,
		societySvc:      societySvc,
		exportSvc:       exportSvc,
	}
}

type RegisterSocietyRequest struct {
	Name               string `form:"name"`
	RegistrationNumber string `form:"registrationNumber"`
	SocietyType        string `form:"societyType"`
	EstablishedOn      string `form:"establishedOn"`
	Address            string `form:"address"`
	AdminFullName      string `form:"adminFullName"`
	AdminEmail         string `form:"adminEmail"`
	AdminPhone         string `form:"adminPhone"`
	AdminPassword      string `form:"adminPassword"`
}

// Register accepts a multipart society registration: textual fields plus the
// statutory documents under registrationCertificate, bylaws and
// additionalDocs.
func (h *SocietyHandler) Register(c *gin.Context) {
	var req RegisterSocietyRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation",
			"message": "Formulario de registro inválido",
		})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation",
			"message": "Se requiere un formulario multipart con los documentos",
		})
		return
	}

	var uploads []services.DocumentUpload
	for _, header := range form.File[fileKeyCertificate] {
		uploads = append(uploads, services.DocumentUpload{Kind: models.DocumentKindRegistrationCertificate, Header: header})
	}
	for _, header := range form.File[fileKeyBylaws] {
		uploads = append(uploads, services.DocumentUpload{Kind: models.DocumentKindBylaws, Header: header})
	}
	for _, header := range form.File[fileKeyAdditional] {
		uploads = append(uploads, services.DocumentUpload{Kind: models.DocumentKindAdditional, Header: header})
	}

	input := services.RegistrationInput{
		Name:               req.Name,
		RegistrationNumber: req.RegistrationNumber,
		SocietyType:        req.SocietyType,
		EstablishedOn:      req.EstablishedOn,
		Address:            req.Address,
		AdminFullName:      req.AdminFullName,
		AdminEmail:         req.AdminEmail,
		AdminPhone:         req.AdminPhone,
		AdminPassword:      req.AdminPassword,
	}

	result, err := h.registrationSvc.Register(c.Request.Context(), input, uploads, requestMeta(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// PendingIndex lists societies awaiting a decision (developer only)
func (h *SocietyHandler) PendingIndex(c *gin.Context) {
	query := buildListQuery(c)

	pending, total, err := h.societySvc.ListPending(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"societies": pending,
		"total":     total,
		"page":      query.Page,
		"per_page":  query.PerPage,
	})
}

// PendingExport downloads the review queue as XLSX or CSV (developer only)
func (h *SocietyHandler) PendingExport(c *gin.Context) {
	query := buildListQuery(c)
	query.PerPage = 0 // export everything

	pending, _, err := h.societySvc.ListPending(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	var data []byte
	var filename string
	switch c.DefaultQuery("format", "xlsx") {
	case "csv":
		data, filename, err = h.exportSvc.PendingCSV(c.Request.Context(), pending)
		if err == nil {
			c.Header("Content-Disposition", "attachment; filename="+filename)
			c.Data(http.StatusOK, "text/csv", data)
		}
	default:
		data, filename, err = h.exportSvc.PendingXLSX(c.Request.Context(), pending)
		if err == nil {
			c.Header("Content-Disposition", "attachment; filename="+filename)
			c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
		}
	}
	if err != nil {
		respondError(c, err)
	}
}

type ApprovalRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
	Reason string `json:"reason"`
}

// Approval decides a pending registration (developer only)
func (h *SocietyHandler) Approval(c *gin.Context) {
	societyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation",
			"message": "Identificador de sociedad inválido",
		})
		return
	}

	var req ApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation",
			"message": "La decisión debe ser approved o rejected",
		})
		return
	}

	society, err := h.societySvc.Decide(
		c.Request.Context(),
		uint(societyID),
		req.Status,
		req.Reason,
		middleware.GetUserID(c),
		requestMeta(c),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     society.ID,
		"status": society.Status,
	})
}

// Show returns a full society record with its documents
func (h *SocietyHandler) Show(c *gin.Context) {
	societyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation",
			"message": "Identificador de sociedad inválido",
		})
		return
	}

	society, err := h.societySvc.FindByID(c.Request.Context(), uint(societyID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, society.ToResponse())
}

// buildListQuery reads common pagination and filter params
func buildListQuery(c *gin.Context) *repository.ListQuery {
	query := repository.NewListQuery()
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		query.Page = page
	}
	if perPage, err := strconv.Atoi(c.Query("per_page")); err == nil && perPage > 0 {
		query.PerPage = perPage
	}
	query.Search = c.Query("search")
	if societyType := c.Query("society_type"); societyType != "" {
		query.Filters["society_type"] = societyType
	}
	return query
}
