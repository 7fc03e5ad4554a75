package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/citymarket/citymarket/pkg/helpers"
)

const (
	// LoginPath is where every failed guard sends the actor. There is no
	// separate forbidden page.
	LoginPath = "/login/"

	CtxAccountIDKey = "accountID"
	CtxUsernameKey  = "username"
)

// Session validates the access token cookie and ensures an active session
// exists in Redis with a matching session id. On success it stores the
// account id and username in the Gin context; on any failure the actor is
// redirected to the login entry point.
func Session(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			redirectLogin(c)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			redirectLogin(c)
			return
		}

		key := helpers.SessionKey(claims.AccountID)
		data, err := rdb.HGetAll(c.Request.Context(), key).Result()
		if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			redirectLogin(c)
			return
		}

		c.Set(CtxAccountIDKey, claims.AccountID)
		c.Set(CtxUsernameKey, data["username"])
		c.Next()
	}
}

func redirectLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, LoginPath)
	c.Abort()
}
