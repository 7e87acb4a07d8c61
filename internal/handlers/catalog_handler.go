package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/gravadigital/eventos-api/internal/response"
	"github.com/gravadigital/eventos-api/internal/services"
)

// CatalogHandler serves the categories and rooms events and activities refer to
type CatalogHandler struct {
	categoryService *services.CategoryService
	roomService     *services.RoomService
}

func NewCatalogHandler(categoryService *services.CategoryService, roomService *services.RoomService) *CatalogHandler {
	return &CatalogHandler{
		categoryService: categoryService,
		roomService:     roomService,
	}
}

// ListCategories handles GET /api/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, categories)
}

// CreateCategory handles POST /api/categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	identity, ok := actor(c)
	if !ok {
		return
	}

	var req services.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), identity, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Category created successfully", category)
}

// ListRooms handles GET /api/rooms
func (h *CatalogHandler) ListRooms(c *gin.Context) {
	rooms, err := h.roomService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rooms)
}

// CreateRoom handles POST /api/rooms
func (h *CatalogHandler) CreateRoom(c *gin.Context) {
	identity, ok := actor(c)
	if !ok {
		return
	}

	var req services.RoomRequest
	if !bindJSON(c, &req) {
		return
	}

	rm, err := h.roomService.Create(c.Request.Context(), identity, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Room created successfully", rm)
}
