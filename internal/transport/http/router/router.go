package router

import (
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"home-services-admin/internal/core/auth"
	"home-services-admin/internal/core/cache"
	"home-services-admin/internal/core/config"
	"home-services-admin/internal/service"
	"home-services-admin/internal/transport/http/handler"
	mdw "home-services-admin/internal/transport/http/middleware"
)

var validatorOnce sync.Once

// setupValidator 校验报错里用 json 字段名，前端能直接对上表单项
func setupValidator() {
	validatorOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := fld.Tag.Get("json")
			if name == "" {
				name = fld.Tag.Get("form")
			}
			name = strings.SplitN(name, ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

func New(l *zap.Logger, db *gorm.DB, cfg *config.Config, ch *cache.Cache) *gin.Engine {
	setupValidator()

	r := gin.New()
	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	protected := api
	if cfg.Auth.Enabled {
		jwter := &auth.JWTer{
			Secret: []byte(cfg.Auth.Secret),
			Issuer: cfg.Auth.Issuer,
			TTL:    time.Duration(cfg.Auth.AccessTokenTTLMin) * time.Minute,
		}
		handler.NewAuthHandler(jwter, cfg.Auth.AdminUser, cfg.Auth.AdminPassHash).Mount(api)
		protected = api.Group("")
		protected.Use(mdw.AuthJWT(jwter))
	}

	handler.NewUserHandler(service.NewUserService(db)).Mount(protected)
	handler.NewJobCategoryHandler(service.NewJobCategoryService(db)).Mount(protected)
	handler.NewServiceHandler(service.NewServiceService(db, ch)).Mount(protected)
	handler.NewBookingHandler(service.NewBookingService(db, ch)).Mount(protected)

	return r
}
