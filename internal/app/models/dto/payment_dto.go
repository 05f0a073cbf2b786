package dto

// CreateOrderRequest asks for a payment-gateway order for a user's
// application fee. Amount is in rupees.
type CreateOrderRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	UserID int64   `json:"user_id" binding:"required,min=1"`
}

// CreateOrderResponse returns the gateway order handed to the checkout page.
type CreateOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Key      string `json:"key"`
}

// VerifyPaymentRequest carries the gateway's checkout callback fields.
type VerifyPaymentRequest struct {
	UserID            int64  `json:"user_id" binding:"required,min=1"`
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// VerifyPaymentResponse confirms a verified payment.
type VerifyPaymentResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
