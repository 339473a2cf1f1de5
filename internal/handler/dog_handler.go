package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brightpaws/service-boarding/internal/application"
	"github.com/brightpaws/service-boarding/internal/pkg/auth"
	"github.com/brightpaws/service-boarding/internal/pkg/middleware"
	"github.com/brightpaws/service-boarding/internal/pkg/response"
)

// DogHandler handles HTTP requests for dog profiles and their photos.
type DogHandler struct {
	dogs   *application.DogService
	photos *application.PhotoService
}

// NewDogHandler creates a new DogHandler.
func NewDogHandler(dogs *application.DogService, photos *application.PhotoService) *DogHandler {
	return &DogHandler{dogs: dogs, photos: photos}
}

// RegisterRoutes registers all dog routes on the given router group.
func (h *DogHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	dogs := r.Group("/api/v1/dogs")
	dogs.Use(authMW)
	{
		dogs.POST("", h.CreateDog)
		dogs.GET("", h.ListDogs)
		dogs.GET("/:id", h.GetDog)
		dogs.PUT("/:id", h.UpdateDog)
		dogs.DELETE("/:id", h.DeleteDog)
		dogs.POST("/:id/photos", h.AddPhoto)
		dogs.GET("/:id/photos", h.ListPhotos)
	}
}

// CreateDog handles POST /api/v1/dogs.
func (h *DogHandler) CreateDog(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.CreateDogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.dogs.CreateDog(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListDogs handles GET /api/v1/dogs.
func (h *DogHandler) ListDogs(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.dogs.ListDogs(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetDog handles GET /api/v1/dogs/:id.
func (h *DogHandler) GetDog(c *gin.Context) {
	dogID, userID, ok := h.dogRequest(c)
	if !ok {
		return
	}

	result, err := h.dogs.GetDog(c.Request.Context(), dogID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateDog handles PUT /api/v1/dogs/:id.
func (h *DogHandler) UpdateDog(c *gin.Context) {
	dogID, userID, ok := h.dogRequest(c)
	if !ok {
		return
	}

	var req application.UpdateDogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.dogs.UpdateDog(c.Request.Context(), dogID, userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteDog handles DELETE /api/v1/dogs/:id.
func (h *DogHandler) DeleteDog(c *gin.Context) {
	dogID, userID, ok := h.dogRequest(c)
	if !ok {
		return
	}

	if err := h.dogs.DeleteDog(c.Request.Context(), dogID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

// AddPhoto handles POST /api/v1/dogs/:id/photos.
func (h *DogHandler) AddPhoto(c *gin.Context) {
	dogID, userID, ok := h.dogRequest(c)
	if !ok {
		return
	}

	var req application.AddPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.photos.AddPhoto(c.Request.Context(), dogID, userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListPhotos handles GET /api/v1/dogs/:id/photos.
func (h *DogHandler) ListPhotos(c *gin.Context) {
	dogID, userID, ok := h.dogRequest(c)
	if !ok {
		return
	}

	result, err := h.photos.ListPhotos(c.Request.Context(), dogID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// dogRequest extracts the dog ID and caller identity common to all :id routes.
func (h *DogHandler) dogRequest(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	dogID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid dog ID")
		return uuid.Nil, uuid.Nil, false
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, uuid.Nil, false
	}
	return dogID, userID, true
}
