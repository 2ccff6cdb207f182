package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/anonto42/forum-server/internal/models"
	"github.com/anonto42/forum-server/internal/repositories"
	"github.com/anonto42/forum-server/pkg/payment"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	defaultCurrency = "usd"
	maxPaymentBody  = 64 << 10
)

var paymentMethods = []string{"card"}

// PaymentHandler handles charge intents, the payment ledger and the uuid helpers used by checkout
type PaymentHandler struct {
	paymentRepository repositories.PaymentRepository
	userRepository    repositories.UserRepository
	processor         payment.Processor
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentRepo repositories.PaymentRepository, userRepo repositories.UserRepository, processor payment.Processor) *PaymentHandler {
	return &PaymentHandler{
		paymentRepository: paymentRepo,
		userRepository:    userRepo,
		processor:         processor,
	}
}

// RegisterPaymentRoutes registers payment routes
func (h *PaymentHandler) RegisterPaymentRoutes(g *echo.Group, guards Guards) {
	g.GET("/getRandUUid", h.RandomUUID)
	g.POST("/paymentsUuidRand/:id", h.ValidateUUID)
	g.POST("/create-payment-intent", h.CreatePaymentIntent, guards.Token)
	g.POST("/paymentsData", h.RecordPayment, guards.Token)
	g.GET("/paymentHistories", h.GetPaymentHistory, guards.Token)
}

// RandomUUID returns a fresh v4 UUID for checkout correlation
func (h *PaymentHandler) RandomUUID(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"uuid": uuid.NewString()})
}

// ValidateUUID answers whether the path segment is a UUID in the hyphenated 36 character form
func (h *PaymentHandler) ValidateUUID(c echo.Context) error {
	id := c.Param("id")
	if len(id) != 36 {
		return c.JSON(http.StatusBadRequest, echo.Map{"valid": false})
	}
	if _, err := uuid.Parse(id); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"valid": false})
	}
	return c.JSON(http.StatusOK, echo.Map{"valid": true})
}

// CreatePaymentIntent opens a card charge for the price and returns the client secret
func (h *PaymentHandler) CreatePaymentIntent(c echo.Context) error {
	var req models.PaymentIntentRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	amount, err := payment.ToMinorUnits(req.Price)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	secret, err := h.processor.CreateChargeIntent(c.Request().Context(), amount, defaultCurrency, paymentMethods)
	if err != nil {
		if errors.Is(err, payment.ErrInvalidAmount) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"clientSecret": secret})
}

// RecordPayment stores a completed payment for the caller and upgrades their membership
func (h *PaymentHandler) RecordPayment(c echo.Context) error {
	email, err := callerEmail(c)
	if err != nil {
		return err
	}

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxPaymentBody))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	var req models.PaymentRecordRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	record := &models.Payment{
		Email:         email,
		TransactionID: strings.TrimSpace(req.TransactionID),
		Price:         req.Price,
		Currency:      strings.ToLower(strings.TrimSpace(req.Currency)),
		Details:       json.RawMessage(body),
	}
	if record.TransactionID == "" {
		record.TransactionID = uuid.NewString()
	}
	if record.Currency == "" {
		record.Currency = defaultCurrency
	}

	ctx := c.Request().Context()
	if err := h.paymentRepository.CreatePayment(ctx, record); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return echo.NewHTTPError(http.StatusConflict, "Payment already recorded")
		}
		return err
	}

	if err := h.userRepository.UpgradeMembership(ctx, email); err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		log.Printf("payment %s recorded for %s, who has no user document", record.TransactionID, email)
	}

	return c.JSON(http.StatusOK, inserted(record.ID, 0))
}

// GetPaymentHistory lists the caller's payments, newest first
func (h *PaymentHandler) GetPaymentHistory(c echo.Context) error {
	email, err := callerEmail(c)
	if err != nil {
		return err
	}
	payments, err := h.paymentRepository.GetPaymentsByEmail(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payments)
}
