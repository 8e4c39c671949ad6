package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/coopregistry/coopregistry-api/internal/config"
	"github.com/coopregistry/coopregistry-api/internal/models"
	"github.com/coopregistry/coopregistry-api/internal/repository"
	"github.com/coopregistry/coopregistry-api/internal/services"
	"github.com/coopregistry/coopregistry-api/internal/storage"
)

type mockSocietyRepo struct {
	repository.SocietyRepository
	mockFindByID                 func(ctx context.Context, id uint) (*models.Society, error)
	mockFindByRegistrationNumber func(ctx context.Context, regNumber string) (*models.Society, error)
	mockCreateWithAdmin          func(ctx context.Context, society *models.Society, admin *models.User, docs []models.SocietyDocument) error
}

func (m *mockSocietyRepo) FindByID(ctx context.Context, id uint) (*models.Society, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockSocietyRepo) FindByRegistrationNumber(ctx context.Context, regNumber string) (*models.Society, error) {
	return m.mockFindByRegistrationNumber(ctx, regNumber)
}

func (m *mockSocietyRepo) CreateWithAdmin(ctx context.Context, society *models.Society, admin *models.User, docs []models.SocietyDocument) error {
	return m.mockCreateWithAdmin(ctx, society, admin, docs)
}

type mockUserRepoFindByEmail struct {
	repository.UserRepository
	mockFindByEmail func(ctx context.Context, email string) (*models.User, error)
}

func (m *mockUserRepoFindByEmail) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.mockFindByEmail(ctx, email)
}

func newSocietyHandler(t *testing.T, societyRepo repository.SocietyRepository, userRepo repository.UserRepository, audit *mockAudit) *SocietyHandler {
	t.Helper()
	cfg := &config.Config{JWTSecret: "test-secret", MaxUploadSizeMB: 10, MaxAdditionalDocs: 3}
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	registrationSvc := services.NewRegistrationService(societyRepo, userRepo, audit, store, cfg)
	societySvc := services.NewSocietyService(societyRepo, audit)
	return NewSocietyHandler(registrationSvc, societySvc, services.NewExportService())
}

// registrationForm builds a complete multipart registration request body
func registrationForm(t *testing.T, registrationNumber string) (*bytes.Buffer, string) {
	t.Helper()
	buf := new(bytes.Buffer)
	writer := multipart.NewWriter(buf)

	fields := map[string]string{
		"name":               "Alpha Co-op",
		"registrationNumber": registrationNumber,
		"societyType":        models.SocietyTypeCredit,
		"establishedOn":      "2020-04-15",
		"address":            "Av. Central 42",
		"adminFullName":      "Ana Pérez",
		"adminEmail":         "ana@coop.example",
		"adminPhone":         "555-0101",
		"adminPassword":      "secret123",
	}
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	addFile := func(field, filename, contentType string, content []byte) {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = io.Copy(part, bytes.NewReader(content))
		require.NoError(t, err)
	}
	addFile("registrationCertificate", "cert.png", "image/png", []byte("png-bytes"))
	addFile("bylaws", "bylaws.pdf", "application/pdf", []byte("%PDF-1.4 bylaws"))

	require.NoError(t, writer.Close())
	return buf, writer.FormDataContentType()
}

func performRegister(t *testing.T, handler *SocietyHandler, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auth/society/register", handler.Register)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/auth/society/register", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)
	return w
}

func TestSocietyHandler_Register_Created(t *testing.T) {
	societyRepo := &mockSocietyRepo{}
	userRepo := &mockUserRepoFindByEmail{}

	societyRepo.mockFindByRegistrationNumber = func(ctx context.Context, regNumber string) (*models.Society, error) {
		return nil, gorm.ErrRecordNotFound
	}
	userRepo.mockFindByEmail = func(ctx context.Context, email string) (*models.User, error) {
		return nil, gorm.ErrRecordNotFound
	}
	societyRepo.mockCreateWithAdmin = func(ctx context.Context, society *models.Society, admin *models.User, docs []models.SocietyDocument) error {
		society.ID = 11
		admin.ID = 21
		return nil
	}

	handler := newSocietyHandler(t, societyRepo, userRepo, &mockAudit{})
	body, contentType := registrationForm(t, "RC-001")
	w := performRegister(t, handler, body, contentType)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp services.RegistrationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint(11), resp.SocietyID)
	assert.Equal(t, models.SocietyStatusPending, resp.Status)
	assert.Len(t, resp.Documents, 2)
}

func TestSocietyHandler_Register_AuditCarriesRequesterProvenance(t *testing.T) {
	societyRepo := &mockSocietyRepo{}
	userRepo := &mockUserRepoFindByEmail{}
	audit := &mockAudit{}

	societyRepo.mockFindByRegistrationNumber = func(ctx context.Context, regNumber string) (*models.Society, error) {
		return nil, gorm.ErrRecordNotFound
	}
	userRepo.mockFindByEmail = func(ctx context.Context, email string) (*models.User, error) {
		return nil, gorm.ErrRecordNotFound
	}
	societyRepo.mockCreateWithAdmin = func(ctx context.Context, society *models.Society, admin *models.User, docs []models.SocietyDocument) error {
		society.ID = 11
		admin.ID = 21
		return nil
	}

	handler := newSocietyHandler(t, societyRepo, userRepo, audit)
	body, contentType := registrationForm(t, "RC-002")

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auth/society/register", handler.Register)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/auth/society/register", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", "coop-portal/1.0")
	req.RemoteAddr = "203.0.113.50:4242"
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.AuditActionRegister, audit.entries[0].Action)
	assert.Equal(t, "203.0.113.50", audit.entries[0].Meta.IP)
	assert.Equal(t, "coop-portal/1.0", audit.entries[0].Meta.UserAgent)
}

func TestSocietyHandler_Register_DuplicateIs409(t *testing.T) {
	societyRepo := &mockSocietyRepo{}
	userRepo := &mockUserRepoFindByEmail{}

	societyRepo.mockFindByRegistrationNumber = func(ctx context.Context, regNumber string) (*models.Society, error) {
		return &models.Society{ID: 1, RegistrationNumber: regNumber}, nil
	}

	handler := newSocietyHandler(t, societyRepo, userRepo, &mockAudit{})
	body, contentType := registrationForm(t, "RC-001")
	w := performRegister(t, handler, body, contentType)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "conflict", resp["error"])
}

func TestSocietyHandler_Register_MissingFilesIs400(t *testing.T) {
	handler := newSocietyHandler(t, &mockSocietyRepo{}, &mockUserRepoFindByEmail{}, &mockAudit{})

	buf := new(bytes.Buffer)
	writer := multipart.NewWriter(buf)
	require.NoError(t, writer.WriteField("name", "Alpha Co-op"))
	require.NoError(t, writer.Close())

	w := performRegister(t, handler, buf, writer.FormDataContentType())
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSocietyHandler_Approval_InvalidStatus(t *testing.T) {
	handler := newSocietyHandler(t, &mockSocietyRepo{}, &mockUserRepoFindByEmail{}, &mockAudit{})

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.PUT("/auth/society/:id/approval", handler.Approval)

	payload, _ := json.Marshal(map[string]string{"status": "pending"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/auth/society/5/approval", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSocietyHandler_Approval_NotFound(t *testing.T) {
	societyRepo := &mockSocietyRepo{}
	societyRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Society, error) {
		return nil, gorm.ErrRecordNotFound
	}
	handler := newSocietyHandler(t, societyRepo, &mockUserRepoFindByEmail{}, &mockAudit{})

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.PUT("/auth/society/:id/approval", handler.Approval)

	payload, _ := json.Marshal(map[string]string{"status": "approved"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/auth/society/99/approval", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSocietyHandler_Show_NotFound(t *testing.T) {
	societyRepo := &mockSocietyRepo{}
	societyRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Society, error) {
		return nil, gorm.ErrRecordNotFound
	}
	handler := newSocietyHandler(t, societyRepo, &mockUserRepoFindByEmail{}, &mockAudit{})

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/auth/society/:id", handler.Show)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/auth/society/99", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
