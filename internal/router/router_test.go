package router_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"preventivi/internal/domain"
	"preventivi/internal/handler"
	"preventivi/internal/logger"
	"preventivi/internal/router"
	"preventivi/internal/service"
	"preventivi/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

type testRouter struct {
	engine  *gin.Engine
	auth    *mocks.MockAuthService
	quotes  *mocks.MockQuoteService
	folders *mocks.MockFolderService
	tmpls   *mocks.MockTemplateService
	userID  uuid.UUID
}

func setupRouter() *testRouter {
	tr := &testRouter{
		auth:    new(mocks.MockAuthService),
		quotes:  new(mocks.MockQuoteService),
		folders: new(mocks.MockFolderService),
		tmpls:   new(mocks.MockTemplateService),
		userID:  uuid.New(),
	}
	tr.auth.On("ValidateToken", "good").Return(&service.Claims{UserID: tr.userID, Email: "user@test.it"}, nil)
	tr.auth.On("ValidateToken", mock.Anything).Return(nil, errors.New("bad token"))

	tr.engine = router.Setup(tr.auth, router.Handlers{
		Auth:     handler.NewAuthHandler(tr.auth),
		Company:  handler.NewCompanyHandler(new(mocks.MockCompanyService)),
		Quote:    handler.NewQuoteHandler(tr.quotes),
		Export:   handler.NewExportHandler(new(mocks.MockExportService)),
		Template: handler.NewTemplateHandler(tr.tmpls),
		Folder:   handler.NewFolderHandler(tr.folders),
		Health:   handler.NewHealthHandler(okPinger{}),
	}, []string{"*"}, logger.Discard())
	return tr
}

func (tr *testRouter) do(method, path, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, http.NoBody)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	tr.engine.ServeHTTP(w, req)
	return w
}

func TestRouter_HealthIsPublic(t *testing.T) {
	tr := setupRouter()

	assert.Equal(t, http.StatusOK, tr.do(http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, tr.do(http.MethodGet, "/readyz", "").Code)
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	tr := setupRouter()

	assert.Equal(t, http.StatusUnauthorized, tr.do(http.MethodGet, "/api/v1/quotes", "").Code)
	assert.Equal(t, http.StatusUnauthorized, tr.do(http.MethodGet, "/api/v1/folders", "bad").Code)
	tr.quotes.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestRouter_StaticSegmentsWinOverParams(t *testing.T) {
	tr := setupRouter()

	tr.quotes.On("NewDraft", mock.Anything, tr.userID).Return(&domain.QuoteDocument{}, nil)
	tr.quotes.On("EmptyTrash", mock.Anything, tr.userID).Return(int64(0), nil)
	tr.folders.On("ListQuotes", mock.Anything, tr.userID, (*uuid.UUID)(nil), domain.RecordState(""), 0, 20).
		Return([]domain.QuoteSummary{}, 0, nil)
	tr.tmpls.On("EnsureDefault", mock.Anything, tr.userID, domain.DocumentTypeQuote).
		Return(&domain.DocumentTemplate{}, nil)

	assert.Equal(t, http.StatusOK, tr.do(http.MethodGet, "/api/v1/quotes/new", "good").Code)
	assert.Equal(t, http.StatusOK, tr.do(http.MethodDelete, "/api/v1/quotes/trash", "good").Code)
	assert.Equal(t, http.StatusOK, tr.do(http.MethodGet, "/api/v1/folders/none/quotes", "good").Code)
	assert.Equal(t, http.StatusOK, tr.do(http.MethodGet, "/api/v1/templates/default/preventivo", "good").Code)

	tr.quotes.AssertExpectations(t)
	tr.folders.AssertExpectations(t)
	tr.tmpls.AssertExpectations(t)
}

func TestRouter_CORSPreflight(t *testing.T) {
	tr := setupRouter()

	req, _ := http.NewRequest(http.MethodOptions, "/api/v1/quotes", http.NoBody)
	req.Header.Set("Origin", "https://app.example.it")
	w := httptest.NewRecorder()
	tr.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
