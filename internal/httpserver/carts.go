package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cartsvc "fayclick/internal/service/cart"
)

func createCartHandler(carts *cartsvc.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		id, err := carts.Create(u.StructureID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"cartId": id})
	}
}

func getCartHandler(carts *cartsvc.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		cart, err := carts.Get(u.StructureID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart.Snapshot())
	}
}

func destroyCartHandler(carts *cartsvc.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		if _, err := carts.Get(u.StructureID, c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		carts.Destroy(c.Param("id"))
		c.Status(http.StatusNoContent)
	}
}

type addLineRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

func addCartLineHandler(carts *cartsvc.Store, products productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addLineRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
			return
		}
		if req.Quantity <= 0 {
			req.Quantity = 1
		}
		u := currentUser(c)
		cart, err := carts.Get(u.StructureID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		p, err := products.Get(c.Request.Context(), u.StructureID, req.ProductID)
		if err != nil {
			respondError(c, err)
			return
		}
		if p.Stock <= 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "product out of stock"})
			return
		}
		cart.AddLine(*p, req.Quantity)
		c.JSON(http.StatusOK, cart.Snapshot())
	}
}

type updateLineRequest struct {
	Quantity int `json:"quantity"`
}

func updateCartLineHandler(carts *cartsvc.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateLineRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity required"})
			return
		}
		u := currentUser(c)
		cart, err := carts.Get(u.StructureID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		cart.UpdateQuantity(c.Param("productId"), req.Quantity)
		c.JSON(http.StatusOK, cart.Snapshot())
	}
}

func removeCartLineHandler(carts *cartsvc.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		cart, err := carts.Get(u.StructureID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		cart.RemoveLine(c.Param("productId"))
		c.JSON(http.StatusOK, cart.Snapshot())
	}
}

type discountRequest struct {
	Amount int64 `json:"amount"`
}

func setDiscountHandler(carts *cartsvc.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req discountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount required"})
			return
		}
		if req.Amount < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must not be negative"})
			return
		}
		u := currentUser(c)
		cart, err := carts.Get(u.StructureID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		cart.SetDiscount(req.Amount)
		c.JSON(http.StatusOK, cart.Snapshot())
	}
}
