package handler

import (
	"net/http"

	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/model/store"

	"github.com/gin-gonic/gin"
)

func StatusHandler(c *gin.Context) {
	if errCode := store.GetStore().HealthCheck(); errCode != http.StatusOK {
		c.JSON(errCode, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
