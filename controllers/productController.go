package controllers

import (
	"net/http"

	"backend/config"
	"backend/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetAllProducts is the stock view the till works from. Purchase prices
// stay out of it.
func GetAllProducts(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	projection := bson.M{
		"purchaseprice": 0,
		"updated_at":    0,
	}
	cursor, err := config.ProductCollection.Find(ctx, bson.M{}, options.Find().SetProjection(projection))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err = cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode products"})
		return
	}

	var result []map[string]interface{}
	for _, product := range products {
		if product.Quantity <= 0 {
			continue
		}
		result = append(result, map[string]interface{}{
			"id":           product.ID,
			"name":         product.Name,
			"category":     product.Category,
			"quantity":     product.Quantity,
			"sellingprice": product.SellingPrice,
		})
	}

	c.JSON(http.StatusOK, result)
}
