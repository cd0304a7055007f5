package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"staymarket/internal/service"
	resp "staymarket/internal/transport/http/response"
)

// CreatePlace POST /places
// owner_id 缺省为当前登录用户；替他人建房源要管理员。
func (h *Handlers) CreatePlace(c *gin.Context) {
	var in struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Price       float64  `json:"price"`
		Latitude    float64  `json:"latitude"`
		Longitude   float64  `json:"longitude"`
		OwnerID     string   `json:"owner_id"`
		AmenityIDs  []string `json:"amenity_ids"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, "invalid request body"))
		return
	}
	p, err := h.F.CreatePlace(c.Request.Context(), actorFrom(c), service.CreatePlaceInput{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		OwnerID:     in.OwnerID,
		AmenityIDs:  in.AmenityIDs,
	})
	if err != nil {
		fail(c, err)
		return
	}
	created(c, p)
}

// GetPlace GET /places/:id
func (h *Handlers) GetPlace(c *gin.Context) {
	p, err := h.F.GetPlace(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, p)
}

// ListPlaces GET /places
func (h *Handlers) ListPlaces(c *gin.Context) {
	ps, err := h.F.ListPlaces(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, ps)
}

// UpdatePlace PUT /places/:id
func (h *Handlers) UpdatePlace(c *gin.Context) {
	fields, good := bindFields(c)
	if !good {
		return
	}
	p, err := h.F.UpdatePlace(c.Request.Context(), actorFrom(c), c.Param("id"), fields)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, p)
}

// DeletePlace DELETE /places/:id
func (h *Handlers) DeletePlace(c *gin.Context) {
	if err := h.F.DeletePlace(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"deleted": c.Param("id")})
}

// AddPlaceAmenity POST /places/:id/amenities/:amenity_id
func (h *Handlers) AddPlaceAmenity(c *gin.Context) {
	p, err := h.F.AddAmenityToPlace(c.Request.Context(), actorFrom(c), c.Param("id"), c.Param("amenity_id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, p)
}

// RemovePlaceAmenity DELETE /places/:id/amenities/:amenity_id
func (h *Handlers) RemovePlaceAmenity(c *gin.Context) {
	p, err := h.F.RemoveAmenityFromPlace(c.Request.Context(), actorFrom(c), c.Param("id"), c.Param("amenity_id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, p)
}

// ListPlaceAmenities GET /places/:id/amenities
func (h *Handlers) ListPlaceAmenities(c *gin.Context) {
	as, err := h.F.ListAmenitiesByPlace(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, as)
}

// ListPlaceReviews GET /places/:id/reviews
func (h *Handlers) ListPlaceReviews(c *gin.Context) {
	rs, err := h.F.ListReviewsByPlace(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, rs)
}
