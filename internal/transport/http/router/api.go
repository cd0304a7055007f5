package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"staymarket/internal/core/auth"
	"staymarket/internal/service"
	"staymarket/internal/transport/http/handler"
	mdw "staymarket/internal/transport/http/middleware"
)

// NewAPIEngine 组装中间件链和 /api/v1 路由。
// 读操作公开，写操作走 JWT；管理员细分交给 facade 判。
func NewAPIEngine(l *zap.Logger, f *service.Facade, jwter *auth.JWTer) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		cors.Default(),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := handler.New(f)
	ah := handler.NewAuth(h, jwter)

	api := r.Group("/api/v1")

	// 公开
	api.POST("/auth/login", ah.Login)
	api.POST("/users", h.CreateUser)
	api.GET("/places", h.ListPlaces)
	api.GET("/places/:id", h.GetPlace)
	api.GET("/places/:id/amenities", h.ListPlaceAmenities)
	api.GET("/places/:id/reviews", h.ListPlaceReviews)
	api.GET("/amenities", h.ListAmenities)
	api.GET("/amenities/:id", h.GetAmenity)
	api.GET("/reviews", h.ListReviews)
	api.GET("/reviews/:id", h.GetReview)

	// 鉴权
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(jwter, false))

	authed.GET("/auth/me", ah.Me)

	authed.GET("/users", h.ListUsers)
	authed.GET("/users/:id", h.GetUser)
	authed.PUT("/users/:id", h.UpdateUser)
	authed.DELETE("/users/:id", h.DeleteUser)

	authed.POST("/places", h.CreatePlace)
	authed.PUT("/places/:id", h.UpdatePlace)
	authed.DELETE("/places/:id", h.DeletePlace)
	authed.POST("/places/:id/amenities/:amenity_id", h.AddPlaceAmenity)
	authed.DELETE("/places/:id/amenities/:amenity_id", h.RemovePlaceAmenity)

	authed.POST("/amenities", h.CreateAmenity)
	authed.PUT("/amenities/:id", h.UpdateAmenity)
	authed.DELETE("/amenities/:id", h.DeleteAmenity)

	authed.POST("/reviews", h.CreateReview)
	authed.PUT("/reviews/:id", h.UpdateReview)
	authed.DELETE("/reviews/:id", h.DeleteReview)

	return r
}
