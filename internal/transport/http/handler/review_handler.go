package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"staymarket/internal/service"
	resp "staymarket/internal/transport/http/response"
)

// CreateReview POST /reviews
// user_id 缺省为当前登录用户；自评、重复评由 facade 拦。
func (h *Handlers) CreateReview(c *gin.Context) {
	var in struct {
		Text    string `json:"text"`
		Rating  int    `json:"rating"`
		PlaceID string `json:"place_id"`
		UserID  string `json:"user_id"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, "invalid request body"))
		return
	}
	if in.UserID == "" {
		in.UserID = c.GetString("userId")
	}
	r, err := h.F.CreateReview(c.Request.Context(), actorFrom(c), service.CreateReviewInput{
		Text:    in.Text,
		Rating:  in.Rating,
		PlaceID: in.PlaceID,
		UserID:  in.UserID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	created(c, r)
}

// GetReview GET /reviews/:id
func (h *Handlers) GetReview(c *gin.Context) {
	r, err := h.F.GetReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, r)
}

// ListReviews GET /reviews
func (h *Handlers) ListReviews(c *gin.Context) {
	rs, err := h.F.ListReviews(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, rs)
}

// UpdateReview PUT /reviews/:id
func (h *Handlers) UpdateReview(c *gin.Context) {
	fields, good := bindFields(c)
	if !good {
		return
	}
	r, err := h.F.UpdateReview(c.Request.Context(), actorFrom(c), c.Param("id"), fields)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, r)
}

// DeleteReview DELETE /reviews/:id
func (h *Handlers) DeleteReview(c *gin.Context) {
	if err := h.F.DeleteReview(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"deleted": c.Param("id")})
}
