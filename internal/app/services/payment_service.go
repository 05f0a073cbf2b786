package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/coeptech/unimis/internal/app/models"
	"github.com/coeptech/unimis/internal/app/models/dto"
	"github.com/coeptech/unimis/internal/pkg/apperrors"
	"github.com/coeptech/unimis/internal/pkg/payment"
)

// PaymentApplicationStore is the slice of the application repository the
// payment service needs.
type PaymentApplicationStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Application, error)
	SetPaymentOrder(ctx context.Context, userID int64, orderID string, amount int64) error
	MarkPaid(ctx context.Context, userID int64, paymentID, signature string) error
}

// PaymentService handles admission fee payment through the gateway.
type PaymentService interface {
	CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error)
	VerifyPayment(ctx context.Context, req *dto.VerifyPaymentRequest) (*dto.VerifyPaymentResponse, error)
}

type paymentService struct {
	applications PaymentApplicationStore
	gateway      payment.Gateway
	keyID        string
	keySecret    string
	currency     string
	logger       zerolog.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(applications PaymentApplicationStore, gateway payment.Gateway, keyID, keySecret, currency string, logger zerolog.Logger) PaymentService {
	return &paymentService{
		applications: applications,
		gateway:      gateway,
		keyID:        keyID,
		keySecret:    keySecret,
		currency:     currency,
		logger:       logger,
	}
}

// CreateOrder opens a gateway order for the user's admission fee and records
// the order id on the application. Amounts arrive in rupees and are sent to
// the gateway in paise.
func (s *paymentService) CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	app, err := s.applications.GetByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if app.FeeStatus == models.FeePaid {
		return nil, apperrors.ErrFeesAlreadyPaid
	}
	if app.FeeStatus == models.FeeScholarship {
		return nil, apperrors.NewBadRequestError("Scholarship applications have no admission fee")
	}

	amountPaise := int64(req.Amount * 100)
	receipt := fmt.Sprintf("admission_%d", req.UserID)

	order, err := s.gateway.CreateOrder(ctx, amountPaise, s.currency, receipt)
	if err != nil {
		s.logger.Error().Err(err).Int64("userId", req.UserID).Msg("Gateway order creation failed")
		return nil, apperrors.ErrOrderCreationFail
	}

	if err := s.applications.SetPaymentOrder(ctx, req.UserID, order.ID, order.Amount); err != nil {
		return nil, err
	}

	s.logger.Info().Str("orderId", order.ID).Int64("userId", req.UserID).Msg("Payment order created")

	return &dto.CreateOrderResponse{
		ID:       order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Key:      s.keyID,
	}, nil
}

// VerifyPayment checks the checkout callback signature against the order and
// payment ids. A mismatch changes nothing; a match marks the fee as paid.
func (s *paymentService) VerifyPayment(ctx context.Context, req *dto.VerifyPaymentRequest) (*dto.VerifyPaymentResponse, error) {
	app, err := s.applications.GetByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if app.PaymentOrderID == nil || *app.PaymentOrderID != req.RazorpayOrderID {
		return nil, apperrors.NewBadRequestError("Order does not match this application")
	}

	if !payment.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, s.keySecret) {
		s.logger.Warn().Int64("userId", req.UserID).Str("orderId", req.RazorpayOrderID).Msg("Payment signature mismatch")
		return nil, apperrors.ErrInvalidSignature
	}

	if err := s.applications.MarkPaid(ctx, req.UserID, req.RazorpayPaymentID, req.RazorpaySignature); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userId", req.UserID).Str("paymentId", req.RazorpayPaymentID).Msg("Payment verified")

	return &dto.VerifyPaymentResponse{
		Success: true,
		Message: "Payment verified successfully",
	}, nil
}
