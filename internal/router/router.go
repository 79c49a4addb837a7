package router

import (
	"github.com/gin-gonic/gin"

	"orient_store/internal/controller"
	"orient_store/internal/middleware"
	"orient_store/internal/model"
)

// Controllers 路由依赖的全部控制器
type Controllers struct {
	Product    *controller.ProductController
	Collection *controller.CollectionController
	Content    *controller.ContentController
	Booking    *controller.BookingController
	User       *controller.UserController
	Upload     *controller.UploadController
	Session    *controller.SessionController
	Sync       *controller.SyncController
	Health     *controller.HealthController
}

// Options 路由配置
type Options struct {
	// UploadDir 本地存储目录，非空时挂载 /uploads 静态路由
	UploadDir string
	// Limiter 前台表单提交限流
	Limiter *middleware.CooldownLimiter
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, ctl Controllers, opts Options) {
	r.GET("/health", ctl.Health.Check)
	if opts.UploadDir != "" {
		r.Static("/uploads", opts.UploadDir)
	}

	limiter := opts.Limiter
	if limiter == nil {
		limiter = middleware.NewCooldownLimiter()
	}

	api := r.Group("/api")
	{
		// 商品目录
		products := api.Group("/products")
		{
			products.GET("", ctl.Product.List)
			products.GET("/facets", ctl.Product.Facets)
			products.GET("/:id", ctl.Product.Get)
			products.GET("/:id/related", ctl.Product.Related)
		}

		collections := api.Group("/collections")
		{
			collections.GET("", ctl.Collection.List)
			collections.GET("/:id", ctl.Collection.Get)
			collections.GET("/:id/products", ctl.Collection.Products)
		}

		// 首页内容
		content := api.Group("/content")
		{
			content.GET("/home", ctl.Content.Home)
			content.GET("/hero", ctl.Content.Hero)
			content.GET("/promo", ctl.Content.Promo)
			content.GET("/heritage", ctl.Content.Heritage)
			content.GET("/featured", ctl.Content.Featured)
		}

		// POST /api/bookings 同一 IP 30 秒内只能提交一次
		api.POST("/bookings",
			middleware.SubmitRateLimit(limiter, middleware.ScopeBooking, middleware.GetInterval(middleware.ScopeBooking)),
			ctl.Booking.Create)

		// 商品详情页会话：画廊 / 加购 / 相关商品轮播
		sessions := api.Group("/sessions")
		{
			sessions.POST("", ctl.Session.Open)
			sessions.GET("/:sid", ctl.Session.Get)
			sessions.DELETE("/:sid", ctl.Session.Close)

			sessions.POST("/:sid/gallery/select", ctl.Session.SelectImage)
			sessions.POST("/:sid/gallery/next", ctl.Session.NextImage)
			sessions.POST("/:sid/gallery/prev", ctl.Session.PreviousImage)
			sessions.POST("/:sid/gallery/pointer", ctl.Session.MovePointer)
			sessions.POST("/:sid/gallery/zoom", ctl.Session.SetZoom)
			sessions.POST("/:sid/gallery/leave", ctl.Session.PointerLeave)

			sessions.GET("/:sid/cart", ctl.Session.CartItems)
			sessions.POST("/:sid/cart/quantity", ctl.Session.SetQuantity)
			sessions.POST("/:sid/cart/add", ctl.Session.AddToCart)

			sessions.POST("/:sid/carousel/measure", ctl.Session.MeasureCarousel)
			sessions.POST("/:sid/carousel/scroll", ctl.Session.ScrollCarousel)
		}

		// auth 鉴权组
		auth := api.Group("/auth")
		{
			auth.POST("/login", ctl.User.Login)

			authed := auth.Group("", middleware.JWTAuth())
			authed.GET("/profile", ctl.User.GetProfile)
			authed.PUT("/password", ctl.User.ChangePassword)
		}

		// 后台管理：需要管理员角色，写操作记录审计人
		admin := api.Group("/admin",
			middleware.JWTAuth(),
			middleware.RequireRole(model.RoleAdmin),
			middleware.AuditContext())
		{
			admin.POST("/products", ctl.Product.Create)
			admin.PUT("/products/:id", ctl.Product.Update)
			admin.DELETE("/products/:id", ctl.Product.Delete)

			admin.POST("/collections", ctl.Collection.Create)
			admin.PUT("/collections/:id", ctl.Collection.Update)
			admin.DELETE("/collections/:id", ctl.Collection.Delete)

			admin.PUT("/content/hero", ctl.Content.UpdateHero)
			admin.PUT("/content/promo", ctl.Content.UpdatePromo)
			admin.PUT("/content/heritage", ctl.Content.UpdateHeritage)
			admin.PUT("/content/featured", ctl.Content.SetFeatured)

			admin.GET("/bookings", ctl.Booking.List)
			admin.GET("/bookings/stats", ctl.Booking.Stats)
			admin.GET("/bookings/:id", ctl.Booking.Get)
			admin.PATCH("/bookings/:id/status", ctl.Booking.UpdateStatus)
			admin.DELETE("/bookings/:id", ctl.Booking.Delete)

			admin.POST("/upload", ctl.Upload.Upload)

			// 后台任务手动触发
			if ctl.Sync != nil {
				admin.POST("/sync/catalog", ctl.Sync.SyncCatalog)
				admin.POST("/sync/sessions/reap", ctl.Sync.ReapSessions)
				admin.GET("/sync/status", ctl.Sync.Status)
			}
		}
	}
}
