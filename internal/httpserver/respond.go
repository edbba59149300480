package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fayclick/internal/domain"
	"fayclick/internal/gateway"
	"fayclick/internal/receipt"
	authsvc "fayclick/internal/service/auth"
	"fayclick/internal/service/checkout"
	clientsvc "fayclick/internal/service/client"
	productsvc "fayclick/internal/service/product"
	quotesvc "fayclick/internal/service/quote"
)

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, authsvc.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, authsvc.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
	case errors.Is(err, checkout.ErrSubscriptionExpired):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "subscription expired", "action": "renew"})
	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrInsufficientCash),
		errors.Is(err, gateway.ErrInvalidPhone):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, checkout.ErrEncashmentIncomplete),
		errors.Is(err, checkout.ErrNotRetryable),
		errors.Is(err, quotesvc.ErrBadTransition),
		errors.Is(err, quotesvc.ErrNotConvertible):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, productsvc.ErrInvalidProduct),
		errors.Is(err, clientsvc.ErrInvalidClient),
		errors.Is(err, quotesvc.ErrInvalidQuote):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// receiptResponse bundles the structured receipt with its rendered
// forms so the client never reimplements ticket layout.
type receiptResponse struct {
	Receipt   *domain.Receipt `json:"receipt"`
	Ticket    string          `json:"ticket"`
	ShareText string          `json:"shareText"`
}

func newReceiptResponse(r *domain.Receipt) *receiptResponse {
	return &receiptResponse{
		Receipt:   r,
		Ticket:    receipt.FormatTicket(r),
		ShareText: receipt.FormatShareText(r),
	}
}

// walletResponse decorates a wallet status with the rendered receipt
// once the payment completed.
type walletResponse struct {
	*checkout.WalletStatus
	Ticket    string `json:"ticket,omitempty"`
	ShareText string `json:"shareText,omitempty"`
}

func newWalletResponse(ws *checkout.WalletStatus) *walletResponse {
	out := &walletResponse{WalletStatus: ws}
	if ws.Receipt != nil {
		out.Ticket = receipt.FormatTicket(ws.Receipt)
		out.ShareText = receipt.FormatShareText(ws.Receipt)
	}
	return out
}
