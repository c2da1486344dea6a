package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Run blocks serving the router. The port is always set: config.Load
// defaults it to 8080.
func Run(router *gin.Engine, port string) {
	if err := router.Run(":" + port); err != nil && err != http.ErrServerClosed {
		panic(err)
	}
}
