package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fayclick/internal/domain"
	clientsvc "fayclick/internal/service/client"
)

func listClientsHandler(clients clientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		list, err := clients.List(c.Request.Context(), u.StructureID)
		if err != nil {
			respondError(c, err)
			return
		}
		if list == nil {
			list = []domain.Client{}
		}
		c.JSON(http.StatusOK, gin.H{"clients": list})
	}
}

func getClientHandler(clients clientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		cl, err := clients.Get(c.Request.Context(), u.StructureID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cl)
	}
}

func createClientHandler(clients clientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in clientsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		u := currentUser(c)
		cl, err := clients.Create(c.Request.Context(), u.StructureID, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, cl)
	}
}

func updateClientHandler(clients clientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in clientsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		u := currentUser(c)
		cl, err := clients.Update(c.Request.Context(), u.StructureID, c.Param("id"), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cl)
	}
}

func deleteClientHandler(clients clientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		if err := clients.Delete(c.Request.Context(), u.StructureID, c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
