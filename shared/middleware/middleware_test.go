package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eaglebank/signup-service/shared/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("webhook-secret")

func signToken(t *testing.T, secret []byte, method jwt.SigningMethod, expiresAt time.Time) string {
	t.Helper()
	claims := Claims{
		Role: "service_role",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	s, err := jwt.NewWithClaims(method, claims).SignedString(secret)
	require.NoError(t, err)
	return s
}

func newAuthTestRouter(secret []byte) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(LoggingMiddleware())
	r.POST("/hook", AuthMiddleware(secret), func(c *gin.Context) {
		role, _ := c.Get("role")
		c.JSON(http.StatusOK, gin.H{"role": role})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		secret         []byte
		header         func(t *testing.T) string
		expectedStatus int
	}{
		{
			name:           "disabled - empty secret lets requests through",
			secret:         nil,
			header:         func(t *testing.T) string { return "" },
			expectedStatus: http.StatusOK,
		},
		{
			name:   "success - valid HS256 token",
			secret: testSecret,
			header: func(t *testing.T) string {
				return "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS256, time.Now().Add(time.Hour))
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unauthorized - missing header",
			secret:         testSecret,
			header:         func(t *testing.T) string { return "" },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "unauthorized - not a bearer token",
			secret:         testSecret,
			header:         func(t *testing.T) string { return "Basic abc" },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "unauthorized - wrong secret",
			secret: testSecret,
			header: func(t *testing.T) string {
				return "Bearer " + signToken(t, []byte("other"), jwt.SigningMethodHS256, time.Now().Add(time.Hour))
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "unauthorized - disallowed algorithm",
			secret: testSecret,
			header: func(t *testing.T) string {
				return "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS512, time.Now().Add(time.Hour))
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "unauthorized - expired token",
			secret: testSecret,
			header: func(t *testing.T) string {
				return "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS256, time.Now().Add(-time.Minute))
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAuthTestRouter(tt.secret)
			req := httptest.NewRequest(http.MethodPost, "/hook", nil)
			if h := tt.header(t); h != "" {
				req.Header.Set("Authorization", h)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			require.NotEmpty(t, w.Header().Get("X-Request-Id"))
		})
	}
}

func TestLoggingMiddlewareKeepsCallerRequestID(t *testing.T) {
	router := newAuthTestRouter(nil)
	req := httptest.NewRequest(http.MethodPost, "/hook", nil)
	req.Header.Set("X-Request-Id", "req-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, "req-42", w.Header().Get("X-Request-Id"))
}

func TestValidateRequest(t *testing.T) {
	require.Nil(t, ValidateRequest(models.SignupEvent{ID: "u1", Email: "a@example.com"}))

	errs := ValidateRequest(models.SignupEvent{ID: "u1"})
	require.Len(t, errs, 1)
	require.Equal(t, "SignupEvent.Email", errs[0].Field)
	require.Equal(t, "required", errs[0].Type)

	errs = ValidateRequest(models.SignupEvent{})
	require.Len(t, errs, 2)
	require.Contains(t, Summarize(errs), "SignupEvent.ID: This field is required")
}
