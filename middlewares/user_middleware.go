package middlewares

import (
	"net/http"
	"sync"

	"github.com/jaychung003/food-tracker/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserMiddleware resolves the single demo account and attaches its ID to the
// request context. The app runs in a fixed single-user mode; swapping this
// middleware for a real session layer is the only change multi-user support
// would need at the HTTP layer.
func UserMiddleware(db *gorm.DB) gin.HandlerFunc {
	var once sync.Once
	var userID uint
	var initErr error

	return func(c *gin.Context) {
		once.Do(func() {
			var user models.User
			err := db.Where("username = ?", models.DemoUsername).First(&user).Error
			if err == gorm.ErrRecordNotFound {
				user = models.User{Username: models.DemoUsername, Password: "unused"}
				err = db.Create(&user).Error
			}
			if err != nil {
				initErr = err
				return
			}
			userID = user.ID
		})
		if initErr != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "user context unavailable"})
			return
		}
		c.Set("userID", userID)
		c.Next()
	}
}
