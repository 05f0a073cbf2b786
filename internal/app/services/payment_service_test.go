package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coeptech/unimis/internal/app/models"
	"github.com/coeptech/unimis/internal/app/models/dto"
	"github.com/coeptech/unimis/internal/pkg/apperrors"
	"github.com/coeptech/unimis/internal/pkg/payment"
)

const testKeySecret = "test_key_secret"

type fakePaymentApplicationStore struct {
	byUserID map[int64]*models.Application
}

func (f *fakePaymentApplicationStore) GetByUserID(ctx context.Context, userID int64) (*models.Application, error) {
	app, ok := f.byUserID[userID]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	return app, nil
}

func (f *fakePaymentApplicationStore) SetPaymentOrder(ctx context.Context, userID int64, orderID string, amount int64) error {
	app := f.byUserID[userID]
	app.PaymentOrderID = &orderID
	app.PaymentAmount = &amount
	return nil
}

func (f *fakePaymentApplicationStore) MarkPaid(ctx context.Context, userID int64, paymentID, signature string) error {
	app := f.byUserID[userID]
	app.PaymentID = &paymentID
	app.PaymentSignature = &signature
	app.FeeStatus = models.FeePaid
	now := time.Now()
	app.PaymentAt = &now
	return nil
}

type fakeGateway struct {
	lastAmount int64
	fail       bool
}

func (f *fakeGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*payment.Order, error) {
	if f.fail {
		return nil, errors.New("gateway unavailable")
	}
	f.lastAmount = amount
	return &payment.Order{ID: "order_test_1", Amount: amount, Currency: currency}, nil
}

func checkoutSignature(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testKeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func newPaymentFixture(feeStatus models.FeeStatus) (PaymentService, *fakePaymentApplicationStore, *fakeGateway) {
	apps := &fakePaymentApplicationStore{byUserID: map[int64]*models.Application{
		1: {ID: 1, UserID: 1, Email: "asha@example.com", FeeStatus: feeStatus},
	}}
	gateway := &fakeGateway{}
	svc := NewPaymentService(apps, gateway, "rzp_test_key", testKeySecret, "INR", zerolog.Nop())
	return svc, apps, gateway
}

func TestCreateOrder_ConvertsRupeesToPaise(t *testing.T) {
	svc, apps, gateway := newPaymentFixture(models.FeePending)

	resp, err := svc.CreateOrder(context.Background(), &dto.CreateOrderRequest{UserID: 1, Amount: 1500})
	require.NoError(t, err)

	assert.Equal(t, int64(150000), gateway.lastAmount)
	assert.Equal(t, "order_test_1", resp.ID)
	assert.Equal(t, "rzp_test_key", resp.Key)
	require.NotNil(t, apps.byUserID[1].PaymentOrderID)
	assert.Equal(t, "order_test_1", *apps.byUserID[1].PaymentOrderID)
}

func TestCreateOrder_AlreadyPaid(t *testing.T) {
	svc, _, _ := newPaymentFixture(models.FeePaid)

	_, err := svc.CreateOrder(context.Background(), &dto.CreateOrderRequest{UserID: 1, Amount: 1500})
	assert.ErrorIs(t, err, apperrors.ErrFeesAlreadyPaid)
}

func TestCreateOrder_Scholarship(t *testing.T) {
	svc, _, _ := newPaymentFixture(models.FeeScholarship)

	_, err := svc.CreateOrder(context.Background(), &dto.CreateOrderRequest{UserID: 1, Amount: 1500})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestCreateOrder_GatewayFailure(t *testing.T) {
	svc, apps, gateway := newPaymentFixture(models.FeePending)
	gateway.fail = true

	_, err := svc.CreateOrder(context.Background(), &dto.CreateOrderRequest{UserID: 1, Amount: 1500})
	assert.ErrorIs(t, err, apperrors.ErrOrderCreationFail)
	assert.Nil(t, apps.byUserID[1].PaymentOrderID)
}

func TestVerifyPayment_Valid(t *testing.T) {
	svc, apps, _ := newPaymentFixture(models.FeePending)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, &dto.CreateOrderRequest{UserID: 1, Amount: 1500})
	require.NoError(t, err)

	resp, err := svc.VerifyPayment(ctx, &dto.VerifyPaymentRequest{
		UserID:            1,
		RazorpayOrderID:   "order_test_1",
		RazorpayPaymentID: "pay_test_1",
		RazorpaySignature: checkoutSignature("order_test_1", "pay_test_1"),
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, models.FeePaid, apps.byUserID[1].FeeStatus)
}

func TestVerifyPayment_BadSignature(t *testing.T) {
	svc, apps, _ := newPaymentFixture(models.FeePending)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, &dto.CreateOrderRequest{UserID: 1, Amount: 1500})
	require.NoError(t, err)

	_, err = svc.VerifyPayment(ctx, &dto.VerifyPaymentRequest{
		UserID:            1,
		RazorpayOrderID:   "order_test_1",
		RazorpayPaymentID: "pay_test_1",
		RazorpaySignature: "deadbeef",
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidSignature)
	// A rejected signature must leave the application untouched
	assert.Equal(t, models.FeePending, apps.byUserID[1].FeeStatus)
	assert.Nil(t, apps.byUserID[1].PaymentID)
}

func TestVerifyPayment_OrderMismatch(t *testing.T) {
	svc, _, _ := newPaymentFixture(models.FeePending)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, &dto.CreateOrderRequest{UserID: 1, Amount: 1500})
	require.NoError(t, err)

	_, err = svc.VerifyPayment(ctx, &dto.VerifyPaymentRequest{
		UserID:            1,
		RazorpayOrderID:   "order_unknown",
		RazorpayPaymentID: "pay_test_1",
		RazorpaySignature: checkoutSignature("order_unknown", "pay_test_1"),
	})

	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestVerifyPayment_NoOrderCreated(t *testing.T) {
	svc, _, _ := newPaymentFixture(models.FeePending)

	_, err := svc.VerifyPayment(context.Background(), &dto.VerifyPaymentRequest{
		UserID:            1,
		RazorpayOrderID:   "order_test_1",
		RazorpayPaymentID: "pay_test_1",
		RazorpaySignature: checkoutSignature("order_test_1", "pay_test_1"),
	})

	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}
