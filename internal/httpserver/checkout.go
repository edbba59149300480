package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fayclick/internal/domain"
)

type cashCheckoutRequest struct {
	CartID       string  `json:"cartId" binding:"required"`
	CashReceived int64   `json:"cashReceived" binding:"required"`
	ClientID     *string `json:"clientId"`
}

func checkoutCashHandler(svc checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cashCheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cartId and cashReceived required"})
			return
		}
		u := currentUser(c)
		rcpt, err := svc.CheckoutCash(c.Request.Context(), u.StructureID, req.CartID, req.ClientID, req.CashReceived)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, newReceiptResponse(rcpt))
	}
}

type walletCheckoutRequest struct {
	CartID   string  `json:"cartId" binding:"required"`
	Method   string  `json:"method" binding:"required"`
	Phone    string  `json:"phone" binding:"required"`
	ClientID *string `json:"clientId"`
}

func startWalletHandler(svc checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req walletCheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cartId, method and phone required"})
			return
		}
		method := domain.PaymentMethod(req.Method)
		if method != domain.MethodOM && method != domain.MethodWave {
			c.JSON(http.StatusBadRequest, gin.H{"error": "method must be OM or WAVE"})
			return
		}
		u := currentUser(c)
		ws, err := svc.StartWallet(c.Request.Context(), u.StructureID, req.CartID, method, req.Phone, req.ClientID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusAccepted, newWalletResponse(ws))
	}
}

func walletStatusHandler(svc checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		ws, err := svc.Status(u.StructureID, c.Param("paymentId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, newWalletResponse(ws))
	}
}

func cancelWalletHandler(svc checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		if err := svc.Cancel(u.StructureID, c.Param("paymentId")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func retryEncashmentHandler(svc checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		ws, err := svc.RetryEncashment(c.Request.Context(), u.StructureID, c.Param("paymentId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, newWalletResponse(ws))
	}
}
