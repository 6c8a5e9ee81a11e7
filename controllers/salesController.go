package controllers

import (
	"net/http"

	"backend/models"

	"github.com/gin-gonic/gin"
)

func CreateSale(c *gin.Context) {
	var input models.SaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	userID, role := actingIdentity(c)
	sale, err := Ledger.CreateSale(ctx, input, userID, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

func RegisterPayment(c *gin.Context) {
	var input models.PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	userID, role := actingIdentity(c)
	sale, err := Ledger.RegisterPayment(ctx, c.Param("id"), input, userID, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

func GetSale(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	sale, err := Ledger.GetSale(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

func ListSales(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	q := parseQuery(c)
	sales, err := Ledger.ListSales(ctx, q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

// GetReceipt is the public lookup by the sale's view token, for printed
// receipts carrying a QR link.
func GetReceipt(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	sale, err := Ledger.SaleByViewToken(ctx, c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"membername": sale.MemberName,
		"items":      sale.Items,
		"total":      sale.Total,
		"paid":       sale.Paid,
		"status":     sale.Status,
		"created_at": sale.CreatedAt,
	})
}
