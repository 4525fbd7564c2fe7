package handler

import "github.com/gin-gonic/gin"

// ErrorResponse is the error payload shape for all handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ContextUserUID is the gin context key the auth middleware stores the
// authenticated uid under.
const ContextUserUID = "user_uid"

func currentUID(c *gin.Context) (string, bool) {
	v, exists := c.Get(ContextUserUID)
	if !exists {
		return "", false
	}
	uid, ok := v.(string)
	return uid, ok && uid != ""
}
