package utils

import (
	"net/http/httptest"
	"testing"

	"quizmaster-service/configs"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
	configs.AppConfig = &configs.Config{JWTSecret: "test-secret"}
}

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT("user-1", "admin")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("Expected token to validate, got %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("Expected userId 'user-1', got %q", claims.UserID)
	}
	if claims.Role != "admin" {
		t.Errorf("Expected role 'admin', got %q", claims.Role)
	}
}

func TestValidateJWTRejectsBadToken(t *testing.T) {
	if _, err := ValidateJWT("not-a-token"); err == nil {
		t.Error("Expected an error for a malformed token")
	}
	if _, err := ValidateJWT(""); err == nil {
		t.Error("Expected an error for an empty token")
	}
}

func TestClaimsFromRequestBearerPrefix(t *testing.T) {
	token, err := GenerateJWT("user-2", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Request.Header.Set("Authorization", "Bearer "+token)

	claims, err := ClaimsFromRequest(c)
	if err != nil {
		t.Fatalf("Expected claims, got %v", err)
	}
	if claims.UserID != "user-2" {
		t.Errorf("Expected userId 'user-2', got %q", claims.UserID)
	}
}

func TestClaimsFromRequestCleansObjectIDFormat(t *testing.T) {
	token, err := GenerateJWT(`ObjectID("685b6c9d50a1b64e180f2db5")`, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Request.Header.Set("Authorization", "Bearer "+token)

	claims, err := ClaimsFromRequest(c)
	if err != nil {
		t.Fatalf("Expected claims, got %v", err)
	}
	if claims.UserID != "685b6c9d50a1b64e180f2db5" {
		t.Errorf("Expected bare hex id, got %q", claims.UserID)
	}
}

func TestClaimsFromRequestMissingHeader(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)

	if _, err := ClaimsFromRequest(c); err == nil {
		t.Error("Expected an error when the Authorization header is absent")
	}
}
