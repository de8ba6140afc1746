package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	storeerrors "github.com/Humphrey-He/storefront/pkg/errors"
)

// respondError writes err with the status that matches its kind.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var stockErr *storeerrors.StockError
	switch {
	case storeerrors.IsValidation(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": err.Error(),
			"field": storeerrors.FieldOf(err),
		})
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":      err.Error(),
			"product_id": stockErr.ProductID,
			"stock":      stockErr.Stock,
		})
	case storeerrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, storeerrors.ErrUnknownSortKey):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
