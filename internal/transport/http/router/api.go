package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"charity-fund-api/internal/core/auth"
	"charity-fund-api/internal/core/cache"
	"charity-fund-api/internal/repo"
	"charity-fund-api/internal/service"
	"charity-fund-api/internal/transport/http/handler"
	mdw "charity-fund-api/internal/transport/http/middleware"
)

// NewAPIEngine 组装中间件链、服务和全部路由；c 传 nil 表示不启用缓存
func NewAPIEngine(l *zap.Logger, db *gorm.DB, jwter *auth.JWTer, c *cache.Cache) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Charity Fundraising API"})
	})
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	users := repo.NewUserRepo(db)
	campaigns := repo.NewCampaignRepo(db)
	donations := repo.NewDonationRepo(db)

	authH := handler.NewAuthHandler(service.NewAuthService(users, jwter, l))
	campaignH := handler.NewCampaignHandler(service.NewCampaignService(campaigns, c, l))
	donationH := handler.NewDonationHandler(service.NewDonationService(db, donations, campaigns, users, c, l))
	userH := handler.NewUserHandler(service.NewUserService(users, l))

	api := r.Group("/api")
	guard := mdw.AuthJWT(jwter)

	authH.Mount(api.Group("/auth"), guard)
	campaignH.Mount(api.Group("/campaigns"), guard)
	donationH.Mount(api.Group("/donations"), guard)
	userH.Mount(api.Group("/users"), guard)

	return r
}
