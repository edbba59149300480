package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fayclick/internal/domain"
	quotesvc "fayclick/internal/service/quote"
)

type createQuoteRequest struct {
	ClientID string               `json:"clientId" binding:"required"`
	Lines    []quotesvc.LineInput `json:"lines" binding:"required"`
}

func createQuoteHandler(quotes quoteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createQuoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "clientId and lines required"})
			return
		}
		u := currentUser(c)
		q, err := quotes.Create(c.Request.Context(), u.StructureID, req.ClientID, req.Lines)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, q)
	}
}

func listQuotesHandler(quotes quoteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		list, err := quotes.List(c.Request.Context(), u.StructureID)
		if err != nil {
			respondError(c, err)
			return
		}
		if list == nil {
			list = []domain.Quote{}
		}
		c.JSON(http.StatusOK, gin.H{"quotes": list})
	}
}

func getQuoteHandler(quotes quoteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		q, err := quotes.Get(c.Request.Context(), u.StructureID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, q)
	}
}

func quoteTransitionHandler(quotes quoteService, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		var (
			q   *domain.Quote
			err error
		)
		switch action {
		case "send":
			q, err = quotes.Send(c.Request.Context(), u.StructureID, c.Param("id"))
		case "accept":
			q, err = quotes.Accept(c.Request.Context(), u.StructureID, c.Param("id"))
		case "reject":
			q, err = quotes.Reject(c.Request.Context(), u.StructureID, c.Param("id"))
		}
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, q)
	}
}

func convertQuoteHandler(quotes quoteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		inv, err := quotes.ConvertToInvoice(c.Request.Context(), u.StructureID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, inv)
	}
}
