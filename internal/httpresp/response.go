package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created answers a booking that inserted new sessions.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}
