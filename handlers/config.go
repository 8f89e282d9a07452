package handlers

import (
	"net/http"

	"cibnlibrary/config"

	"github.com/gin-gonic/gin"
)

// ConfigHandler serves public client configuration.
type ConfigHandler struct {
	Departments []config.DepartmentOption
}

// NewConfigHandler creates a ConfigHandler for the parsed department options.
func NewConfigHandler(departments []config.DepartmentOption) *ConfigHandler {
	return &ConfigHandler{Departments: departments}
}

// DepartmentsHandler handles GET /api/config/departments.
func (h *ConfigHandler) DepartmentsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Departments)
}
