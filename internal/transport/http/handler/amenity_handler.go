package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"staymarket/internal/service"
	resp "staymarket/internal/transport/http/response"
)

// CreateAmenity POST /amenities（facade 里限管理员）
func (h *Handlers) CreateAmenity(c *gin.Context) {
	var in struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, "invalid request body"))
		return
	}
	a, err := h.F.CreateAmenity(c.Request.Context(), actorFrom(c), service.CreateAmenityInput{
		Name:        in.Name,
		Description: in.Description,
	})
	if err != nil {
		fail(c, err)
		return
	}
	created(c, a)
}

// GetAmenity GET /amenities/:id
func (h *Handlers) GetAmenity(c *gin.Context) {
	a, err := h.F.GetAmenity(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, a)
}

// ListAmenities GET /amenities
func (h *Handlers) ListAmenities(c *gin.Context) {
	as, err := h.F.ListAmenities(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, as)
}

// UpdateAmenity PUT /amenities/:id
func (h *Handlers) UpdateAmenity(c *gin.Context) {
	fields, good := bindFields(c)
	if !good {
		return
	}
	a, err := h.F.UpdateAmenity(c.Request.Context(), actorFrom(c), c.Param("id"), fields)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, a)
}

// DeleteAmenity DELETE /amenities/:id
func (h *Handlers) DeleteAmenity(c *gin.Context) {
	if err := h.F.DeleteAmenity(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"deleted": c.Param("id")})
}
