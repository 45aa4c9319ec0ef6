package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"rentalmotor-backend/internal/domain"
	"rentalmotor-backend/internal/logger"
	"rentalmotor-backend/internal/repository"
	"rentalmotor-backend/internal/security"
	"rentalmotor-backend/internal/service"
	"rentalmotor-backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-123456"

type apiFixture struct {
	auth    *MockAuthService
	txs     *MockTransactionService
	payment *MockPaymentService
	blogs   *MockBlogService
	tokens  security.TokenManager
	handler http.Handler
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	store, err := storage.NewLocalStorage("http://localhost/api/v1/files", t.TempDir())
	require.NoError(t, err)

	f := &apiFixture{
		auth:    new(MockAuthService),
		txs:     new(MockTransactionService),
		payment: new(MockPaymentService),
		blogs:   new(MockBlogService),
		tokens:  security.NewTokenManager(testSecret, time.Hour, 24*time.Hour),
	}
	f.handler = NewRouter(Services{
		Auth:           f.auth,
		Transaction:    f.txs,
		Payment:        f.payment,
		Blog:           f.blogs,
		Upload:         service.NewUploadService(store, []string{"image/png"}, 1024),
		Tokens:         f.tokens,
		MaxUploadBytes: 1024,
	})
	return f
}

func (f *apiFixture) accessToken(t *testing.T, adminID int32) string {
	t.Helper()
	token, err := f.tokens.GenerateAccessToken(adminID, "owner")
	require.NoError(t, err)
	return token
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestAuthMiddleware(t *testing.T) {
	f := newAPIFixture(t)

	t.Run("Public route", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/healthz", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Missing token", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/transactions", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Garbage token", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/transactions", "not-a-jwt", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Refresh token on access route", func(t *testing.T) {
		refresh, err := f.tokens.GenerateRefreshToken(1, "owner")
		require.NoError(t, err)
		rec := f.do(t, http.MethodGet, "/api/v1/transactions", refresh, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Access token on refresh route", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/v1/auth/refresh", f.accessToken(t, 1), nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Refresh route", func(t *testing.T) {
		refresh, err := f.tokens.GenerateRefreshToken(1, "owner")
		require.NoError(t, err)
		f.auth.On("RefreshToken", mock.Anything, refresh).Return("a2", "r2", nil).Once()

		rec := f.do(t, http.MethodPost, "/api/v1/auth/refresh", refresh, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp tokenResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "a2", resp.AccessToken)
	})
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	logger.InitializeWithWriter(&buf, "info", "text")
	t.Cleanup(func() { logger.Initialize("info", "text") })

	f := newAPIFixture(t)
	f.txs.On("GetTransaction", mock.Anything, int32(12)).Return(&domain.Transaction{ID: 12}, nil).Once()

	t.Run("Authenticated request records the admin", func(t *testing.T) {
		buf.Reset()
		rec := f.do(t, http.MethodGet, "/api/v1/transactions/12", f.accessToken(t, 42), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, buf.String(), "adminID=42")
		assert.Contains(t, buf.String(), "status=200")
	})

	t.Run("Public request has no admin", func(t *testing.T) {
		buf.Reset()
		rec := f.do(t, http.MethodGet, "/api/v1/healthz", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, buf.String(), "HTTP request")
		assert.NotContains(t, buf.String(), "adminID=")
	})

	t.Run("Rejected token has no admin", func(t *testing.T) {
		buf.Reset()
		rec := f.do(t, http.MethodGet, "/api/v1/transactions/12", "not-a-jwt", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, buf.String(), "status=401")
		assert.NotContains(t, buf.String(), "adminID=")
	})
}

func TestLogin(t *testing.T) {
	f := newAPIFixture(t)

	f.auth.On("Login", mock.Anything, "owner", "rahasia123").Return(&domain.Admin{ID: 1, Username: "owner", PasswordHash: "hash"}, "a", "r", nil)
	f.auth.On("Login", mock.Anything, "owner", "salah").Return(nil, "", "", service.ErrInvalidCredentials)

	rec := f.do(t, http.MethodPost, "/api/v1/auth/login", "", loginRequest{Username: "owner", Password: "rahasia123"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hash")
	var resp tokenResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "a", resp.AccessToken)
	assert.Equal(t, "r", resp.RefreshToken)

	rec = f.do(t, http.MethodPost, "/api/v1/auth/login", "", loginRequest{Username: "owner", Password: "salah"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTransactionRoutes(t *testing.T) {
	f := newAPIFixture(t)
	token := f.accessToken(t, 5)

	t.Run("Create uses authenticated admin", func(t *testing.T) {
		input := service.RentalInput{UnitID: 3, CustomerName: "Budi", CustomerPhone: "0812", StartDate: "2023-01-01", StartTime: "08:00", EndDate: "2023-01-02", EndTime: "10:00"}
		f.txs.On("CreateTransaction", mock.Anything, int32(5), input).
			Return(&domain.Transaction{ID: 10, Code: "TRX-1", TotalCost: 130000, Status: domain.TransactionStatusActive}, nil).Once()

		rec := f.do(t, http.MethodPost, "/api/v1/transactions", token, input)
		require.Equal(t, http.StatusCreated, rec.Code)
		var tx domain.Transaction
		decodeBody(t, rec, &tx)
		assert.Equal(t, int64(130000), tx.TotalCost)
	})

	t.Run("Invalid period is a bad request", func(t *testing.T) {
		f.txs.On("CreateTransaction", mock.Anything, int32(5), mock.MatchedBy(func(in service.RentalInput) bool { return in.UnitID == 4 })).
			Return(nil, service.ErrInvalidPeriod).Once()

		rec := f.do(t, http.MethodPost, "/api/v1/transactions", token, service.RentalInput{UnitID: 4})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Validation error names the field", func(t *testing.T) {
		f.txs.On("Quote", mock.Anything, mock.Anything).Return(nil, &service.ValidationError{Field: "start", Message: "invalid date"}).Once()

		rec := f.do(t, http.MethodPost, "/api/v1/transactions/quote", token, service.RentalInput{})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp errorResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "start", resp.Field)
	})

	t.Run("Unit not available is a conflict", func(t *testing.T) {
		f.txs.On("FinishTransaction", mock.Anything, int32(5), int32(9)).Return(nil, service.ErrTransactionClosed).Once()
		rec := f.do(t, http.MethodPost, "/api/v1/transactions/9/finish", token, nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("Not found", func(t *testing.T) {
		f.txs.On("GetTransaction", mock.Anything, int32(404)).Return(nil, repository.ErrNotFound).Once()
		rec := f.do(t, http.MethodGet, "/api/v1/transactions/404", token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Unexpected errors are hidden", func(t *testing.T) {
		f.txs.On("GetTransaction", mock.Anything, int32(500)).Return(nil, errors.New("pq: connection refused")).Once()
		rec := f.do(t, http.MethodGet, "/api/v1/transactions/500", token, nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "pq:")
	})

	t.Run("List with filters", func(t *testing.T) {
		filter := domain.TransactionFilter{Status: "OVERDUE", Query: "budi"}
		f.txs.On("ListTransactions", mock.Anything, filter, int32(2), int32(100)).
			Return([]domain.Transaction{{ID: 1}}, int32(101), nil).Once()

		rec := f.do(t, http.MethodGet, "/api/v1/transactions?status=OVERDUE&q=budi&page=2&page_size=500", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Items []domain.Transaction `json:"items"`
			Total int32                `json:"total"`
		}
		decodeBody(t, rec, &resp)
		assert.Len(t, resp.Items, 1)
		assert.Equal(t, int32(101), resp.Total)
	})

	t.Run("QRIS image", func(t *testing.T) {
		f.payment.On("GenerateQRIS", mock.Anything, int32(10)).Return(&service.QRISPayment{TransactionID: 10, Amount: 130000, PNG: []byte("\x89PNGdata")}, nil).Once()

		rec := f.do(t, http.MethodGet, "/api/v1/transactions/10/qris.png", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		assert.Equal(t, "\x89PNGdata", rec.Body.String())
	})

	t.Run("QRIS not configured", func(t *testing.T) {
		f.payment.On("GenerateQRIS", mock.Anything, int32(11)).Return(nil, service.ErrPaymentNotConfigured).Once()
		rec := f.do(t, http.MethodGet, "/api/v1/transactions/11/qris", token, nil)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestBlogRoutes(t *testing.T) {
	f := newAPIFixture(t)

	f.blogs.On("ListBlogs", mock.Anything, true, int32(1), int32(20)).Return([]domain.Blog{{ID: 1, Slug: "tips"}}, int32(1), nil)
	rec := f.do(t, http.MethodGet, "/api/v1/blogs", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	f.blogs.On("GetBySlug", mock.Anything, "tips", true).Return(&domain.Blog{ID: 1, Slug: "tips", Published: true}, nil)
	rec = f.do(t, http.MethodGet, "/api/v1/blogs/tips", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// drafts are admin-only
	rec = f.do(t, http.MethodGet, "/api/v1/admin/blogs", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/blogs", "", domain.Blog{Title: "x"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFileRoutes(t *testing.T) {
	f := newAPIFixture(t)
	token := f.accessToken(t, 1)

	upload := func(t *testing.T, contentType string, data []byte) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("folder", "motors"))
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="file"; filename="scoopy.png"`)
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		f.handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("Upload then serve publicly", func(t *testing.T) {
		rec := upload(t, "image/png", []byte("png-bytes"))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var stored domain.StoredFile
		decodeBody(t, rec, &stored)
		assert.True(t, strings.HasPrefix(stored.Key, "motors/"))

		rec = f.do(t, http.MethodGet, "/api/v1/files/"+stored.Key, "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		assert.Equal(t, "png-bytes", rec.Body.String())
	})

	t.Run("Unsupported type", func(t *testing.T) {
		rec := upload(t, "application/pdf", []byte("%PDF"))
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("Too large", func(t *testing.T) {
		rec := upload(t, "image/png", bytes.Repeat([]byte("x"), 2048))
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("Missing file", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, fmt.Sprintf("/api/v1/files/motors/%s.png", "nope"), "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
