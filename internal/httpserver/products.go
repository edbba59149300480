package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fayclick/internal/domain"
	productsvc "fayclick/internal/service/product"
)

func listProductsHandler(products productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		list, err := products.List(c.Request.Context(), u.StructureID)
		if err != nil {
			respondError(c, err)
			return
		}
		if list == nil {
			list = []domain.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"products": list})
	}
}

func getProductHandler(products productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		p, err := products.Get(c.Request.Context(), u.StructureID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func createProductHandler(products productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in productsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		u := currentUser(c)
		p, err := products.Create(c.Request.Context(), u.StructureID, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

func updateProductHandler(products productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in productsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		u := currentUser(c)
		p, err := products.Update(c.Request.Context(), u.StructureID, c.Param("id"), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func deleteProductHandler(products productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		if err := products.Delete(c.Request.Context(), u.StructureID, c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type stockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

func adjustStockHandler(products productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req stockRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "delta required"})
			return
		}
		u := currentUser(c)
		p, err := products.AdjustStock(c.Request.Context(), u.StructureID, c.Param("id"), req.Delta)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}
