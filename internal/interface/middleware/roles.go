package middleware

import (
	"github.com/gin-gonic/gin"

	repo "github.com/citymarket/citymarket/internal/domain/repository"
)

// RequireMerchant passes only authenticated actors whose profile has the
// merchant role. A missing profile is an authorization failure like any
// other: back to login, never an error page.
func RequireMerchant(profiles repo.ProfileRepository) gin.HandlerFunc {
	return requireRole(profiles, true)
}

// RequireShopper passes only authenticated actors with the shopper role.
func RequireShopper(profiles repo.ProfileRepository) gin.HandlerFunc {
	return requireRole(profiles, false)
}

func requireRole(profiles repo.ProfileRepository, merchant bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID := c.GetString(CtxAccountIDKey)
		if accountID == "" {
			redirectLogin(c)
			return
		}
		p, err := profiles.GetByAccount(c.Request.Context(), accountID)
		if err != nil || p == nil || p.IsMerchant != merchant {
			redirectLogin(c)
			return
		}
		c.Next()
	}
}
