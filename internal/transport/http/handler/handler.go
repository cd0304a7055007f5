package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"staymarket/internal/service"
	resp "staymarket/internal/transport/http/response"
)

// Handlers 薄控制器：绑定 JSON → 调 facade → 包络输出。
// 业务规则全在 facade/domain，这里只做传输层的事。
type Handlers struct {
	F *service.Facade
}

func New(f *service.Facade) *Handlers { return &Handlers{F: f} }

// actorFrom 从 JWT 中间件写入的上下文键还原调用方身份。
// 公开路由上两个键都为空，得到匿名 Actor。
func actorFrom(c *gin.Context) service.Actor {
	return service.Actor{ID: c.GetString("userId"), IsAdmin: c.GetBool("isAdmin")}
}

func fail(c *gin.Context, err error) {
	status, body := resp.FromError(err)
	c.JSON(status, body)
}

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, resp.OK(data))
}

func created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, resp.New(resp.CodeOK, "Created", data))
}

// bindFields 部分更新用：原样拿字段表，未知键由实体层拒绝
func bindFields(c *gin.Context) (map[string]any, bool) {
	fields := map[string]any{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, "invalid request body"))
		return nil, false
	}
	return fields, true
}
