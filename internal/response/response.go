package response

import "github.com/gin-gonic/gin"

// Envelope is the JSON shape every endpoint returns.
type Envelope struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// OK writes a success envelope with the given HTTP status and payload.
func OK(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Envelope{Status: true, Message: message, Data: data})
}

// Fail writes a failure envelope with the given HTTP status.
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, Envelope{Status: false, Message: message})
}

// Abort writes a failure envelope and stops the remaining handler chain.
// Middleware must use this so no handler runs with a partially resolved
// identity.
func Abort(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, Envelope{Status: false, Message: message})
}
