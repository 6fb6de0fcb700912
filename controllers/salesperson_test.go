package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"salonhub-backend/models"
)

func TestCommissionEndpoint(t *testing.T) {
	db, salon, r := setupControllerTest(t)

	sp := models.Salesperson{
		SalonID:              salon.ID,
		Name:                 "Alex",
		CommissionPercentage: 15,
		ReferralCode:         "REF-TEST01",
	}
	if err := db.Create(&sp).Error; err != nil {
		t.Fatalf("create salesperson: %v", err)
	}
	user := models.User{
		Email:        "referred@example.com",
		Password:     "password123",
		Name:         "Referred",
		Role:         "employee",
		SalonID:      salon.ID,
		ReferredByID: &sp.ID,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	for _, price := range []float64{1000, 2000} {
		plan := models.PurchasedPlan{UserID: user.ID, Name: "Plan", Price: price}
		if err := db.Create(&plan).Error; err != nil {
			t.Fatalf("create plan: %v", err)
		}
	}

	// Two salary payments of 100 through the API
	for i := 0; i < 2; i++ {
		resp := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost,
			"/api/salespersons/"+sp.ID.String()+"/salary",
			strings.NewReader(`{"amount":100}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(resp, req)
		if resp.Code != http.StatusCreated {
			t.Fatalf("add salary: expected 201, got %d body=%s", resp.Code, resp.Body.String())
		}
	}

	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/salespersons/"+sp.ID.String()+"/commission", nil)
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", resp.Code, resp.Body.String())
	}

	var summary struct {
		TotalSales      float64 `json:"totalSales"`
		TotalCommission float64 `json:"totalCommission"`
		TotalPaid       float64 `json:"totalPaid"`
		DueCommission   float64 `json:"dueCommission"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if summary.TotalSales != 3000 || summary.TotalCommission != 450 ||
		summary.TotalPaid != 200 || summary.DueCommission != 250 {
		t.Errorf("summary = %+v, want 3000/450/200/250", summary)
	}
}

func TestAddSalaryPaymentRejectsNegativeAmount(t *testing.T) {
	db, salon, r := setupControllerTest(t)

	sp := models.Salesperson{
		SalonID:              salon.ID,
		Name:                 "Alex",
		CommissionPercentage: 10,
		ReferralCode:         "REF-TEST02",
	}
	if err := db.Create(&sp).Error; err != nil {
		t.Fatalf("create salesperson: %v", err)
	}

	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost,
		"/api/salespersons/"+sp.ID.String()+"/salary",
		strings.NewReader(`{"amount":-20}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestDeleteSalespersonWithDueCommission(t *testing.T) {
	db, salon, r := setupControllerTest(t)

	sp := models.Salesperson{
		SalonID:              salon.ID,
		Name:                 "Alex",
		CommissionPercentage: 15,
		ReferralCode:         "REF-TEST03",
	}
	if err := db.Create(&sp).Error; err != nil {
		t.Fatalf("create salesperson: %v", err)
	}
	user := models.User{
		Email:        "referred2@example.com",
		Password:     "password123",
		Name:         "Referred",
		Role:         "employee",
		SalonID:      salon.ID,
		ReferredByID: &sp.ID,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	plan := models.PurchasedPlan{UserID: user.ID, Name: "Plan", Price: 1000}
	if err := db.Create(&plan).Error; err != nil {
		t.Fatalf("create plan: %v", err)
	}

	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/salespersons/"+sp.ID.String(), nil)
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 with 150 due, got %d body=%s", resp.Code, resp.Body.String())
	}
}

func TestCreateSalespersonGeneratesReferralCode(t *testing.T) {
	_, _, r := setupControllerTest(t)

	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/salespersons",
		strings.NewReader(`{"name":"Alex","commissionPercentage":15}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", resp.Code, resp.Body.String())
	}

	var created models.Salesperson
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(created.ReferralCode, "REF-") {
		t.Errorf("referral code = %q", created.ReferralCode)
	}
}
