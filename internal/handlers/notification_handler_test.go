package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobportal_backend/internal/auth"
	"jobportal_backend/internal/config"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/internal/validator"
	"jobportal_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	config.AppConfig = &config.Config{}
	config.AppConfig.JWT.Secret = "test-secret"
	config.AppConfig.JWT.TTL = 5
}

// stubNotificationService отвечает канонными данными; права и маршрутизацию
// проверяет сам HTTP-слой.
type stubNotificationService struct {
	services.NotificationService

	lastSenderRole models.UserRole
	toggleResult   bool
	failWith       error
}

func (s *stubNotificationService) Send(_ context.Context, senderID primitive.ObjectID, senderRole models.UserRole, req *dto.SendNotificationRequest) (*dto.NotificationResponse, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	s.lastSenderRole = senderRole
	return &dto.NotificationResponse{
		ID:     primitive.NewObjectID().Hex(),
		Sender: senderID.Hex(), SenderRole: senderRole,
		RecipientType: models.RecipientType(req.RecipientType),
		Title:         req.Title, Message: req.Message,
	}, nil
}

func (s *stubNotificationService) ListVisible(_ context.Context, _ primitive.ObjectID, _ models.UserRole) (*dto.NotificationFeedResponse, error) {
	return &dto.NotificationFeedResponse{
		Received: []*dto.NotificationResponse{},
		Sent:     []*dto.NotificationResponse{},
	}, nil
}

func (s *stubNotificationService) ToggleRead(_ context.Context, _ string, _ primitive.ObjectID) (*dto.ToggleReadResponse, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	return &dto.ToggleReadResponse{IsRead: s.toggleResult}, nil
}

func (s *stubNotificationService) SoftDelete(_ context.Context, _ string, _ primitive.ObjectID) error {
	return s.failWith
}

func (s *stubNotificationService) HardDelete(_ context.Context, _ string) error {
	return s.failWith
}

func newNotificationRouter(svc services.NotificationService) *gin.Engine {
	router := gin.New()
	base := NewBaseHandler(validator.New())
	handler := NewNotificationHandler(base, svc)
	api := router.Group("/api")
	handler.RegisterRoutes(api)
	return router
}

func bearerFor(t *testing.T, role models.UserRole) string {
	t.Helper()
	token, err := auth.SignToken(primitive.NewObjectID().Hex(), role)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSendNotification_RoleGate(t *testing.T) {
	stub := &stubNotificationService{}
	router := newNotificationRouter(stub)

	body := dto.SendNotificationRequest{
		Title: "t", Message: "m", RecipientType: "all_students",
	}

	// Без токена
	rec := doJSON(router, http.MethodPost, "/api/notifications", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Студент не проходит RequireRoles
	rec = doJSON(router, http.MethodPost, "/api/notifications", bearerFor(t, models.UserRoleStudent), body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Компания проходит
	rec = doJSON(router, http.MethodPost, "/api/notifications", bearerFor(t, models.UserRoleCompany), body)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, models.UserRoleCompany, stub.lastSenderRole, "роль берется из токена, не из тела")
}

func TestSendNotification_ValidationErrors(t *testing.T) {
	router := newNotificationRouter(&stubNotificationService{})

	rec := doJSON(router, http.MethodPost, "/api/notifications", bearerFor(t, models.UserRoleAdmin),
		dto.SendNotificationRequest{Message: "m", RecipientType: "everyone"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, string(apperrors.CodeValidationFailed), resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "title")
	assert.Contains(t, resp.Error.Details, "recipientType")
}

func TestListNotifications_FeedShape(t *testing.T) {
	router := newNotificationRouter(&stubNotificationService{})

	rec := doJSON(router, http.MethodGet, "/api/notifications", bearerFor(t, models.UserRoleStudent), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var feed dto.NotificationFeedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feed))
	assert.NotNil(t, feed.Received)
	assert.NotNil(t, feed.Sent)
}

func TestToggleRead_PropagatesServiceErrors(t *testing.T) {
	missing := &stubNotificationService{failWith: apperrors.ErrNotificationNotFound(nil)}
	router := newNotificationRouter(missing)

	rec := doJSON(router, http.MethodPut, "/api/notifications/abc/read", bearerFor(t, models.UserRoleStudent), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	ok := &stubNotificationService{toggleResult: true}
	router = newNotificationRouter(ok)
	rec = doJSON(router, http.MethodPut, "/api/notifications/abc/read", bearerFor(t, models.UserRoleStudent), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.ToggleReadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.IsRead)
}

func TestHardDelete_AdminOnly(t *testing.T) {
	router := newNotificationRouter(&stubNotificationService{})

	rec := doJSON(router, http.MethodDelete, "/api/admin/notifications/abc", bearerFor(t, models.UserRoleCompany), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(router, http.MethodDelete, "/api/admin/notifications/abc", bearerFor(t, models.UserRoleAdmin), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
