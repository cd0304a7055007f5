package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"staymarket/internal/core/auth"
	resp "staymarket/internal/transport/http/response"
)

type AuthHandler struct {
	*Handlers
	JWT *auth.JWTer
}

func NewAuth(h *Handlers, j *auth.JWTer) *AuthHandler { return &AuthHandler{Handlers: h, JWT: j} }

// Login POST /auth/login
// 凭据错误一律 401，不区分“邮箱不存在”和“密码不对”。
func (h *AuthHandler) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, "email and password are required"))
		return
	}
	u, err := h.F.Authenticate(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "invalid email or password"))
		return
	}
	tok, err := h.JWT.Issue(u.ID, u.IsAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, "issue token failed"))
		return
	}
	ok(c, gin.H{"token": tok, "user": u})
}

// Me GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.F.GetUser(c.Request.Context(), c.GetString("userId"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, u)
}
