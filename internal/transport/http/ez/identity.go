package ez

import (
	"github.com/gin-gonic/gin"

	"raluma-api/internal/domain"
)

const keyIdentity = "identity"

func SetIdentity(c *gin.Context, id domain.Identity) { c.Set(keyIdentity, id) }

// Identity returns the caller resolved by the auth middleware.
func Identity(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(keyIdentity)
	if !ok {
		return domain.Identity{}, false
	}
	id, ok := v.(domain.Identity)
	return id, ok
}
