package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fayclick/internal/domain"
)

func listInvoicesHandler(invoices invoiceReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 50
		if raw := c.Query("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
				limit = n
			}
		}
		u := currentUser(c)
		list, err := invoices.ListByStructure(c.Request.Context(), u.StructureID, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		if list == nil {
			list = []domain.Invoice{}
		}
		c.JSON(http.StatusOK, gin.H{"invoices": list})
	}
}

func listUnsettledHandler(invoices invoiceReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		list, err := invoices.ListUnsettled(c.Request.Context(), u.StructureID)
		if err != nil {
			respondError(c, err)
			return
		}
		if list == nil {
			list = []domain.Invoice{}
		}
		c.JSON(http.StatusOK, gin.H{"invoices": list})
	}
}

func getInvoiceHandler(invoices invoiceReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		inv, err := invoices.GetByID(c.Request.Context(), u.StructureID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, inv)
	}
}
