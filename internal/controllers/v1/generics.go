package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/pocketplan/backend/internal/models"
)

// resourceOptionsDetail returns the appropriate response for an HTTP
// OPTIONS request for a specific resource.
func resourceOptionsDetail[R models.BudgetCategory | models.BudgetPurpose | models.BudgetRule | models.Posting | models.Contact | models.ContactGroup | models.SavingsPlan](c *gin.Context, resource R, options func(*gin.Context)) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&resource, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	options(c)
}
