package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"preventivi/internal/domain"
	"preventivi/internal/handler"
	"preventivi/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setAuthContext(c *gin.Context, userID uuid.UUID) {
	c.Set(middleware.ContextKeyUserID, userID)
	c.Set(middleware.ContextKeyEmail, "user@test.it")
}

// newContext returns a test context whose request carries body as JSON when
// body is non-nil.
func newContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != nil {
		raw, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, http.NoBody)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func sampleDocument() domain.QuoteDocument {
	return domain.QuoteDocument{
		Metadata: domain.QuoteMetadata{
			Number:    "2026-001",
			IssueDate: "2026-03-01",
			Subject:   "Arredo ufficio",
			Status:    domain.QuoteStatusDraft,
		},
		Issuer: domain.Issuer{
			Name:      "Rossi Srl",
			VATNumber: "IT01234567890",
			Address:   domain.Address{Street: "Via Roma 1", PostalCode: "20100", City: "Milano", Province: "MI"},
			Email:     "info@rossi.it",
		},
		Recipient: domain.Recipient{
			Name:    "Bianchi SpA",
			Address: domain.Address{Street: "Corso Italia 5", PostalCode: "10100", City: "Torino", Province: "TO"},
		},
		Body: domain.QuoteBody{Lines: []domain.LineItem{
			{Description: "Scrivania", Quantity: 2, UnitNetPrice: 150, VATRate: 22},
		}},
	}
}
