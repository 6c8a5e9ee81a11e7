package controllers

import (
	"net/http"

	"backend/models"

	"github.com/gin-gonic/gin"
)

func CreateExchange(c *gin.Context) {
	var input models.ExchangeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	userID, role := actingIdentity(c)
	exchange, err := Ledger.CreateExchange(ctx, input, userID, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, exchange)
}

func SettleExchange(c *gin.Context) {
	var input models.SettleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	userID, role := actingIdentity(c)
	exchange, err := Ledger.SettleExchange(ctx, c.Param("id"), input, userID, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exchange)
}

func GetExchange(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	exchange, err := Ledger.GetExchange(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exchange)
}

func ListExchanges(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	exchanges, err := Ledger.ListExchanges(ctx, parseQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exchanges)
}
