package handlers

import (
	"fmt"
	"html"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"backend/internal/notify"
)

type PaymentInitiateRequest struct {
	Amount float64 `json:"amount"`
}

type OrderCustomerDetails struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
	Street string `json:"street"`
	City   string `json:"city"`
	Zip    string `json:"zip"`
}

type OrderItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type PaymentSuccessRequest struct {
	Amount          float64              `json:"amount"`
	CustomerDetails OrderCustomerDetails `json:"customerDetails"`
	Items           []OrderItem          `json:"items"`
}

// InitiatePayment is the mock gateway entry point: pure computation, no
// persistence, no external calls. It only echoes a redirect target embedding
// the amount.
func InitiatePayment() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PaymentInitiateRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Amount <= 0 {
			respondWithError(c, http.StatusBadRequest, "PAYMENT", "A valid amount is required")
			return
		}

		log.Printf("[PAYMENT] [INFO] payment initiation requested for %.2f", req.Amount)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Payment initiated",
			"url":     fmt.Sprintf("/payment/mock?amount=%g", req.Amount),
		})
	}
}

// ConfirmPayment simulates a successful gateway callback. The confirmation
// email to the operator is best-effort: a sender failure is logged and
// swallowed, unlike the OTP path, so a down mail provider never fails the
// mock payment. There is no persisted order record.
func ConfirmPayment(email notify.EmailSender, notifyAddress string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PaymentSuccessRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, "PAYMENT", "Invalid body")
			return
		}

		log.Printf("[PAYMENT] [INFO] payment success for %.2f", req.Amount)

		body := renderOrderEmail(req)
		if err := email.SendEmail(c.Request.Context(), notifyAddress, "New Order Confirmed!", body); err != nil {
			log.Println("[PAYMENT] [ERROR] confirmation email failed:", err)
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Order processed and email sent",
		})
	}
}

// renderOrderEmail composes the HTML order-confirmation mail: customer block,
// one row per item with its line total, and the grand total.
func renderOrderEmail(req PaymentSuccessRequest) string {
	var b strings.Builder

	b.WriteString(`<div style="font-family: sans-serif; padding: 20px;">`)
	b.WriteString(`<h2>Order Success</h2>`)
	b.WriteString(`<p>A new order has been placed and payment is confirmed.</p>`)

	b.WriteString(`<h3>Customer Details</h3>`)
	fmt.Fprintf(&b, `<p><strong>Name:</strong> %s</p>`, orNA(req.CustomerDetails.Name))
	fmt.Fprintf(&b, `<p><strong>Phone:</strong> %s</p>`, orNA(req.CustomerDetails.Phone))
	fmt.Fprintf(&b, `<p><strong>Email:</strong> %s</p>`, orNA(req.CustomerDetails.Email))
	fmt.Fprintf(&b, `<p><strong>Address:</strong> %s, %s, %s</p>`,
		html.EscapeString(req.CustomerDetails.Street),
		html.EscapeString(req.CustomerDetails.City),
		html.EscapeString(req.CustomerDetails.Zip),
	)

	b.WriteString(`<h3>Order Summary</h3>`)
	b.WriteString(`<table style="width: 100%; border-collapse: collapse;">`)
	b.WriteString(`<tr><th>Item</th><th>Qty</th><th>Price</th></tr>`)
	for _, item := range req.Items {
		fmt.Fprintf(&b, `<tr><td>%s</td><td>%d</td><td>%.2f</td></tr>`,
			html.EscapeString(item.Name),
			item.Quantity,
			item.Price*float64(item.Quantity),
		)
	}
	fmt.Fprintf(&b, `<tr><td colspan="2"><strong>Total Amount Paid:</strong></td><td><strong>%.2f</strong></td></tr>`, req.Amount)
	b.WriteString(`</table>`)
	b.WriteString(`</div>`)

	return b.String()
}

func orNA(value string) string {
	if strings.TrimSpace(value) == "" {
		return "N/A"
	}
	return html.EscapeString(value)
}
