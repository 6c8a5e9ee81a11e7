package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"backend/ledger"

	"github.com/gin-gonic/gin"
)

// Ledger is the settlement core all handlers talk to; main wires it up
// after the database connection is established.
var Ledger *ledger.Ledger

func Init(l *ledger.Ledger) {
	Ledger = l
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func respondError(c *gin.Context, err error) {
	var notFound *ledger.NotFoundError
	var validation *ledger.ValidationError
	var stock *ledger.InsufficientStockError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &validation), errors.As(err, &stock):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func actingIdentity(c *gin.Context) (string, string) {
	return c.GetString("userID"), c.GetString("role")
}
