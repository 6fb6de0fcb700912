package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"salonhub-backend/models"
)

func TestCreateClientDuplicateEmail(t *testing.T) {
	db, salon, r := setupControllerTest(t)

	existing := models.Client{SalonID: salon.ID, Name: "John", Email: "john@example.com"}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatalf("create client: %v", err)
	}

	body := `{"name":"John Clone","email":"john@example.com"}`
	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/clients", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d body=%s", resp.Code, resp.Body.String())
	}

	var count int64
	db.Model(&models.Client{}).Where("salon_id = ?", salon.ID).Count(&count)
	if count != 1 {
		t.Errorf("duplicate must not be created, have %d clients", count)
	}
}

func TestCreateClientSuccess(t *testing.T) {
	_, _, r := setupControllerTest(t)

	body := `{"name":"Priya","email":"priya@example.com","phone":"+14155550100"}`
	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/clients", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", resp.Code, resp.Body.String())
	}

	var created models.Client
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Name != "Priya" || created.Email != "priya@example.com" {
		t.Errorf("created = %+v", created)
	}
}

func TestGetClientsIncludesLabels(t *testing.T) {
	db, salon, r := setupControllerTest(t)

	client := models.Client{SalonID: salon.ID, Name: "John", Email: "john@example.com"}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("create client: %v", err)
	}

	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var views []struct {
		Label string `json:"label"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &views); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(views) != 1 || views[0].Label != "John (john@example.com)" {
		t.Errorf("views = %+v", views)
	}
}

func TestResolveClientExplicitExisting(t *testing.T) {
	db, salon, r := setupControllerTest(t)

	client := models.Client{SalonID: salon.ID, Name: "John", Email: "john@example.com"}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("create client: %v", err)
	}

	body := `{"clientId":"` + client.ID.String() + `"}`
	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/clients/resolve", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", resp.Code, resp.Body.String())
	}
	var view struct {
		ID    string `json:"ID"`
		Label string `json:"label"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.Label != "John (john@example.com)" {
		t.Errorf("label = %q", view.Label)
	}
}

func TestResolveClientNothingSupplied(t *testing.T) {
	_, _, r := setupControllerTest(t)

	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/clients/resolve", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
