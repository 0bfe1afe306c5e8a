package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/locpham-gh/the-gathering/internal/model"
	"github.com/locpham-gh/the-gathering/internal/service"

	"github.com/gin-gonic/gin"
)

// apiResponse is the envelope used on resource endpoints
type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ResourceHandler handles library resource requests
type ResourceHandler struct {
	service service.ResourceService
}

// NewResourceHandler creates a new ResourceHandler
func NewResourceHandler(s service.ResourceService) *ResourceHandler {
	return &ResourceHandler{service: s}
}

// ListResources handles GET /resources?search=&type=&category=&status=
func (h *ResourceHandler) ListResources(c *gin.Context) {
	role, err := getAuthUserRole(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apiResponse{Success: false, Message: err.Error()})
		return
	}

	var filters model.ResourceFilters
	if search := c.Query("search"); search != "" {
		filters.Search = &search
	}
	if contentType := c.Query("type"); contentType != "" {
		filters.ContentType = &contentType
	}
	if category := c.Query("category"); category != "" {
		filters.Category = &category
	}
	if status := c.Query("status"); status != "" {
		filters.Status = &status
	}

	resources, err := h.service.ListResources(c.Request.Context(), role, filters)
	if err != nil {
		log.Printf("Error listing resources: %v", err)
		c.JSON(http.StatusInternalServerError, apiResponse{Success: false, Message: "Internal server error while fetching resources"})
		return
	}

	if resources == nil {
		resources = []model.Resource{}
	}
	c.JSON(http.StatusOK, apiResponse{Success: true, Data: resources})
}

// GetResource handles GET /resources/:id
func (h *ResourceHandler) GetResource(c *gin.Context) {
	role, err := getAuthUserRole(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apiResponse{Success: false, Message: err.Error()})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apiResponse{Success: false, Message: "Invalid resource ID"})
		return
	}

	resource, err := h.service.GetResource(c.Request.Context(), id, role)
	if err != nil {
		if errors.Is(err, service.ErrResourceNotFound) {
			c.JSON(http.StatusNotFound, apiResponse{Success: false, Message: "Resource not found"})
			return
		}
		log.Printf("Error getting resource: %v", err)
		c.JSON(http.StatusInternalServerError, apiResponse{Success: false, Message: "Internal server error while fetching resource"})
		return
	}

	c.JSON(http.StatusOK, apiResponse{Success: true, Data: resource})
}

// UploadResource handles POST /resources. Any authenticated user may
// upload; the resource enters moderation as pending.
func (h *ResourceHandler) UploadResource(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apiResponse{Success: false, Message: err.Error()})
		return
	}

	var req model.CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiResponse{Success: false, Message: "Invalid request: " + err.Error()})
		return
	}

	resource, err := h.service.UploadResource(c.Request.Context(), userID, req)
	if err != nil {
		log.Printf("Error uploading resource: %v", err)
		c.JSON(http.StatusInternalServerError, apiResponse{Success: false, Message: "Internal server error while uploading resource"})
		return
	}

	c.JSON(http.StatusCreated, apiResponse{Success: true, Data: resource, Message: "Resource submitted for moderation"})
}

// ModerateResource handles PATCH /resources/:id/status (admin only)
func (h *ResourceHandler) ModerateResource(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apiResponse{Success: false, Message: "Invalid resource ID"})
		return
	}

	var req model.ModerateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiResponse{Success: false, Message: "Invalid request: " + err.Error()})
		return
	}

	resource, err := h.service.ModerateResource(c.Request.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, apiResponse{Success: false, Message: err.Error()})
		case errors.Is(err, service.ErrResourceNotFound):
			c.JSON(http.StatusNotFound, apiResponse{Success: false, Message: "Resource not found"})
		default:
			log.Printf("Error moderating resource: %v", err)
			c.JSON(http.StatusInternalServerError, apiResponse{Success: false, Message: "Internal server error while moderating resource"})
		}
		return
	}

	c.JSON(http.StatusOK, apiResponse{Success: true, Data: resource})
}

// RegisterResourceRoutes registers resource routes
func (h *ResourceHandler) RegisterResourceRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	resourceGroup := rg.Group("/resources")
	resourceGroup.Use(authMW)
	{
		resourceGroup.GET("", h.ListResources)
		resourceGroup.GET("/:id", h.GetResource)
		resourceGroup.POST("", h.UploadResource)
		resourceGroup.PATCH("/:id/status", adminMW, h.ModerateResource)
	}
}
