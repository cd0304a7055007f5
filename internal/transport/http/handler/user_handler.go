package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"staymarket/internal/service"
	resp "staymarket/internal/transport/http/response"
)

// CreateUser POST /users
// 公开注册；is_admin 只能由带管理员 token 的调用方指定。
func (h *Handlers) CreateUser(c *gin.Context) {
	var in struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		IsAdmin   bool   `json:"is_admin"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, "invalid request body"))
		return
	}
	u, err := h.F.CreateUser(c.Request.Context(), actorFrom(c), service.CreateUserInput{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  in.Password,
		IsAdmin:   in.IsAdmin,
	})
	if err != nil {
		fail(c, err)
		return
	}
	created(c, u)
}

// GetUser GET /users/:id
func (h *Handlers) GetUser(c *gin.Context) {
	u, err := h.F.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, u)
}

// ListUsers GET /users
func (h *Handlers) ListUsers(c *gin.Context) {
	us, err := h.F.ListUsers(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, us)
}

// UpdateUser PUT /users/:id
func (h *Handlers) UpdateUser(c *gin.Context) {
	fields, good := bindFields(c)
	if !good {
		return
	}
	u, err := h.F.UpdateUser(c.Request.Context(), actorFrom(c), c.Param("id"), fields)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, u)
}

// DeleteUser DELETE /users/:id
func (h *Handlers) DeleteUser(c *gin.Context) {
	if err := h.F.DeleteUser(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"deleted": c.Param("id")})
}
