package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amaryllis-studio/florist/internal/domain"
	"github.com/amaryllis-studio/florist/internal/interfaces"
)

type nopLogger struct{}

func (nopLogger) Info(action, message, requestID string, details map[string]interface{})             {}
func (nopLogger) Debug(action, message, requestID string, details map[string]interface{})            {}
func (nopLogger) Warn(action, message, requestID string, details map[string]interface{})             {}
func (nopLogger) Error(action, message, requestID string, details map[string]interface{}, err error) {}

type fakeOrderService struct {
	createCmd  interfaces.CreateOrderCommand
	updateCmd  interfaces.UpdateOrderStatusCommand
	listQuery  interfaces.ListOrdersQuery
	order      *domain.Order
	createErr  error
	lookupErr  error
	pagination *interfaces.Pagination
}

func (s *fakeOrderService) CreateOrder(ctx context.Context, cmd interfaces.CreateOrderCommand) (*domain.Order, error) {
	s.createCmd = cmd
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.order, nil
}

func (s *fakeOrderService) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	return s.order, nil
}

func (s *fakeOrderService) ListOrders(ctx context.Context, q interfaces.ListOrdersQuery) ([]*domain.Order, *interfaces.Pagination, error) {
	s.listQuery = q
	return nil, s.pagination, nil
}

func (s *fakeOrderService) UpdateStatus(ctx context.Context, id int, cmd interfaces.UpdateOrderStatusCommand) (*domain.Order, error) {
	s.updateCmd = cmd
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	return s.order, nil
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	return resp
}

func TestCreateOrderFlattensImageGroups(t *testing.T) {
	svc := &fakeOrderService{order: &domain.Order{OrderNumber: "ORD-20260310-0001"}}
	handler := NewOrderHandler(svc, nopLogger{})

	body := `{
		"bouquet_id": 1,
		"customer_name": "Maya",
		"sender_name": "Dion",
		"payment_type": "DP",
		"pickup_date": "2026-03-12",
		"pickup_time": "10:00",
		"payment_method": "bank_transfer",
		"reference_images": ["/uploads/a.webp", "/uploads/b.webp"],
		"payment_proof_images": ["/uploads/proof.webp"]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.CreateOrder(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Error("success = false, want true")
	}

	images := svc.createCmd.Images
	if len(images) != 3 {
		t.Fatalf("got %d images, want 3", len(images))
	}
	if images[0].ImageType != string(domain.ImageTypeReference) || images[0].DisplayOrder != 0 {
		t.Errorf("first image = %+v, want REFERENCE at 0", images[0])
	}
	if images[1].DisplayOrder != 1 {
		t.Errorf("second reference image order = %d, want 1", images[1].DisplayOrder)
	}
	if images[2].ImageType != string(domain.ImageTypePaymentProof) {
		t.Errorf("third image type = %s, want PAYMENT_PROOF", images[2].ImageType)
	}
}

func TestCreateOrderRejectsBadBody(t *testing.T) {
	handler := NewOrderHandler(&fakeOrderService{}, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	handler.CreateOrder(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if resp := decodeResponse(t, rec); resp.Success {
		t.Error("success = true, want false")
	}
}

func TestCreateOrderMapsServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", domain.NewValidationError("customer_name", "is required"), http.StatusBadRequest},
		{"business rule", domain.NewBusinessRuleError("bouquet is no longer available"), http.StatusBadRequest},
		{"not found", domain.NewNotFoundError("bouquet"), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewOrderHandler(&fakeOrderService{createErr: tt.err}, nopLogger{})

			req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"bouquet_id":1}`))
			rec := httptest.NewRecorder()

			handler.CreateOrder(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			resp := decodeResponse(t, rec)
			if resp.Success {
				t.Error("success = true, want false")
			}
			if resp.Message != tt.err.Error() {
				t.Errorf("message = %q, want %q", resp.Message, tt.err.Error())
			}
		})
	}
}

func TestListOrdersMapsQueryParams(t *testing.T) {
	svc := &fakeOrderService{pagination: &interfaces.Pagination{Page: 2, Limit: 5, Total: 11, TotalPages: 3}}
	handler := NewOrderHandler(svc, nopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/api/orders?q=maya&status=IN_PROCESS&payment_status=PAID&page=2&limit=5", nil)
	rec := httptest.NewRecorder()

	handler.ListOrders(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	q := svc.listQuery
	if q.Search != "maya" || q.Status != "IN_PROCESS" || q.PaymentStatus != "PAID" || q.Page != 2 || q.Limit != 5 {
		t.Errorf("query = %+v, want mapped params", q)
	}

	resp := decodeResponse(t, rec)
	if resp.Pagination == nil || resp.Pagination.TotalPages != 3 {
		t.Errorf("pagination = %+v, want totalPages 3", resp.Pagination)
	}
	// A nil slice from the service must serialize as [], not null.
	if data, ok := resp.Data.([]any); !ok || data == nil {
		t.Errorf("data = %v, want empty array", resp.Data)
	}
}

func TestGetOrderRejectsNonNumericID(t *testing.T) {
	handler := NewOrderHandler(&fakeOrderService{}, nopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/api/orders/abc", nil)
	req.SetPathValue("id", "abc")
	rec := httptest.NewRecorder()

	handler.GetOrder(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestGetOrderNotFound(t *testing.T) {
	handler := NewOrderHandler(&fakeOrderService{lookupErr: domain.NewNotFoundError("order")}, nopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/api/orders/7", nil)
	req.SetPathValue("id", "7")
	rec := httptest.NewRecorder()

	handler.GetOrder(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestUpdateStatusAttributesAdminFromClaims(t *testing.T) {
	svc := &fakeOrderService{order: &domain.Order{OrderNumber: "ORD-20260310-0001"}}
	handler := NewOrderHandler(svc, nopLogger{})

	req := httptest.NewRequest(http.MethodPut, "/api/orders/7/status", strings.NewReader(`{"status":"PAYMENT_CONFIRMED"}`))
	req.SetPathValue("id", "7")
	req = req.WithContext(withClaims(req.Context(), &interfaces.AuthClaims{AdminID: 3, Username: "florist"}))
	rec := httptest.NewRecorder()

	handler.UpdateStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if svc.updateCmd.AdminID == nil || *svc.updateCmd.AdminID != 3 {
		t.Errorf("admin id = %v, want 3", svc.updateCmd.AdminID)
	}
	if svc.updateCmd.ChangedBy != "florist" {
		t.Errorf("changed by = %s, want florist", svc.updateCmd.ChangedBy)
	}
}
