package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/amaryllis-studio/florist/internal/adapter/logger"
	"github.com/amaryllis-studio/florist/internal/domain"
	"github.com/amaryllis-studio/florist/internal/interfaces"
)

type OrderHandler struct {
	service interfaces.OrderService
	logger  logger.Logger
}

func NewOrderHandler(service interfaces.OrderService, lgr logger.Logger) *OrderHandler {
	return &OrderHandler{service: service, logger: lgr}
}

type createOrderRequest struct {
	BouquetID            int      `json:"bouquet_id"`
	CustomerName         string   `json:"customer_name"`
	SenderName           string   `json:"sender_name"`
	SenderPhone          string   `json:"sender_phone"`
	PaymentMethod        string   `json:"payment_method"`
	PaymentType          string   `json:"payment_type"`
	PickupDate           string   `json:"pickup_date"`
	PickupTime           string   `json:"pickup_time"`
	Notes                *string  `json:"notes,omitempty"`
	ReferenceImages      []string `json:"reference_images,omitempty"`
	DesiredBouquetImages []string `json:"desired_bouquet_images,omitempty"`
	PaymentProofImages   []string `json:"payment_proof_images,omitempty"`
}

type updateStatusRequest struct {
	Status        *string `json:"status,omitempty"`
	PaymentStatus *string `json:"payment_status,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.NewValidationError("body", "invalid request body"))
		return
	}

	cmd := interfaces.CreateOrderCommand{
		BouquetID:     req.BouquetID,
		CustomerName:  req.CustomerName,
		SenderName:    req.SenderName,
		SenderPhone:   req.SenderPhone,
		PaymentMethod: req.PaymentMethod,
		PaymentType:   req.PaymentType,
		PickupDate:    req.PickupDate,
		PickupTime:    req.PickupTime,
		Notes:         req.Notes,
		Images:        collectImages(req),
	}

	order, err := h.service.CreateOrder(r.Context(), cmd)
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusCreated, order)
}

// collectImages flattens the per-type URL arrays into tagged image commands,
// keeping the caller-supplied ordering within each type.
func collectImages(req createOrderRequest) []interfaces.CreateOrderImageCommand {
	var images []interfaces.CreateOrderImageCommand
	appendAll := func(urls []string, imageType domain.ImageType) {
		for i, url := range urls {
			images = append(images, interfaces.CreateOrderImageCommand{
				ImageURL:     url,
				ImageType:    string(imageType),
				DisplayOrder: i,
			})
		}
	}
	appendAll(req.ReferenceImages, domain.ImageTypeReference)
	appendAll(req.DesiredBouquetImages, domain.ImageTypeDesiredBouquet)
	appendAll(req.PaymentProofImages, domain.ImageTypePaymentProof)
	return images
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	q := interfaces.ListOrdersQuery{
		Search:        query.Get("q"),
		Status:        query.Get("status"),
		PaymentStatus: query.Get("payment_status"),
		Page:          page,
		Limit:         limit,
	}

	orders, pagination, err := h.service.ListOrders(r.Context(), q)
	if err != nil {
		respondError(w, err)
		return
	}

	if orders == nil {
		orders = []*domain.Order{}
	}
	respondList(w, orders, pagination)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		respondError(w, domain.NewValidationError("id", "must be an integer"))
		return
	}

	order, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusOK, order)
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		respondError(w, domain.NewValidationError("id", "must be an integer"))
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.NewValidationError("body", "invalid request body"))
		return
	}

	cmd := interfaces.UpdateOrderStatusCommand{
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
		Notes:         req.Notes,
	}
	if claims, ok := ClaimsFromContext(r.Context()); ok {
		cmd.AdminID = &claims.AdminID
		cmd.ChangedBy = claims.Username
	}

	order, err := h.service.UpdateStatus(r.Context(), id, cmd)
	if err != nil {
		respondError(w, err)
		return
	}

	respondData(w, http.StatusOK, order)
}
