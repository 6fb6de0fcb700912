package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestSalonScopeRejectsNonStringClaim(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("salonId", 12345)
		c.Next()
	})
	r.GET("/api/branches", GetBranches)

	req := httptest.NewRequest(http.MethodGet, "/api/branches", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("malformed claim: expected 401, got %d", resp.Code)
	}
}

func TestSalonScopeRejectsMissingClaim(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/branches", GetBranches)

	req := httptest.NewRequest(http.MethodGet, "/api/branches", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("missing claim: expected 401, got %d", resp.Code)
	}
}
