package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"spendsmart/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testUser(role models.UserRole) *models.User {
	u := &models.User{
		Name:  "Test User",
		Email: "test@example.com",
		Role:  role,
	}
	u.ID = 42
	return u
}

func setupAuthRouter() *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware())
	r.GET("/test", func(c *gin.Context) {
		userID, _ := c.Get("userID")
		role, _ := c.Get("role")
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "role": role})
	})
	return r
}

func doAuthRequest(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestGenerateAndValidateTokens(t *testing.T) {
	user := testUser(models.RoleUser)

	access, err := GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("failed to generate access token: %v", err)
	}
	refresh, err := GenerateRefreshToken(user)
	if err != nil {
		t.Fatalf("failed to generate refresh token: %v", err)
	}

	claims, err := ValidateRefreshToken(refresh)
	if err != nil {
		t.Fatalf("expected refresh token to validate: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user ID 42 in claims, got %d", claims.UserID)
	}
	if claims.Role != models.RoleUser {
		t.Errorf("expected user role in claims, got %q", claims.Role)
	}

	if _, err := ValidateRefreshToken(access); err == nil {
		t.Error("expected access token to be rejected as a refresh token")
	}
	if _, err := ValidateRefreshToken("not-a-token"); err == nil {
		t.Error("expected garbage to be rejected")
	}
}

func TestAuthMiddleware(t *testing.T) {
	user := testUser(models.RoleUser)
	access, err := GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("failed to generate access token: %v", err)
	}
	refresh, err := GenerateRefreshToken(user)
	if err != nil {
		t.Fatalf("failed to generate refresh token: %v", err)
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid_access_token", header: "Bearer " + access, wantStatus: http.StatusOK},
		{name: "missing_header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "malformed_header", header: "token-without-scheme", wantStatus: http.StatusUnauthorized},
		{name: "wrong_scheme", header: "Basic " + access, wantStatus: http.StatusUnauthorized},
		{name: "garbage_token", header: "Bearer not-a-token", wantStatus: http.StatusUnauthorized},
		{name: "refresh_token_rejected_as_access", header: "Bearer " + refresh, wantStatus: http.StatusUnauthorized},
	}

	r := setupAuthRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doAuthRequest(r, tt.header)
			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if tt.wantStatus == http.StatusOK {
				var result map[string]interface{}
				if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
					t.Fatalf("failed to parse response body: %v", err)
				}
				if result["user_id"].(float64) != 42 {
					t.Errorf("expected user_id 42 in context, got %v", result["user_id"])
				}
			}
		})
	}
}

func TestRequireOwner(t *testing.T) {
	tests := []struct {
		name       string
		role       models.UserRole
		wantStatus int
	}{
		{name: "owner_allowed", role: models.RoleOwner, wantStatus: http.StatusOK},
		{name: "user_forbidden", role: models.RoleUser, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := testUser(tt.role)
			token, err := GenerateAccessToken(user)
			if err != nil {
				t.Fatalf("failed to generate token: %v", err)
			}

			r := gin.New()
			r.Use(AuthMiddleware(), RequireOwner())
			r.GET("/test", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"status": "ok"})
			})

			rec := doAuthRequest(r, "Bearer "+token)
			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHashToken(t *testing.T) {
	h := HashToken("some-refresh-token")
	if len(h) != 64 {
		t.Errorf("expected 64-char hex digest, got %d chars", len(h))
	}
	if h != HashToken("some-refresh-token") {
		t.Error("expected hashing to be deterministic")
	}
	if h == HashToken("another-token") {
		t.Error("expected different tokens to hash differently")
	}
}
