package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"orient_store/internal/api/dto"
	"orient_store/internal/config"
	"orient_store/internal/controller"
	"orient_store/internal/middleware"
	"orient_store/internal/model"
	"orient_store/internal/repository"
	"orient_store/internal/router"
	"orient_store/internal/service"
	"orient_store/internal/task"
	"orient_store/pkg/catalogfeed"
	"orient_store/pkg/database"
	"orient_store/pkg/logger"
	"orient_store/pkg/seed"
)

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	Config      *config.Config
	Log         *zap.Logger
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Limiter     *middleware.CooldownLimiter
	Tasks       *task.TaskManager
	Controllers *router.Controllers
	UploadDir   string
}

// Repositories 仓库集合
type Repositories struct {
	Product    repository.ProductRepository
	Collection repository.CollectionRepository
	Content    repository.ContentRepository
	Booking    repository.BookingRepository
	User       repository.UserRepository
}

// Services 服务集合
type Services struct {
	Catalog    *service.CatalogService
	Collection *service.CollectionService
	Content    *service.ContentService
	Booking    *service.BookingService
	User       *service.UserService
	Upload     *service.UploadService
	Cart       *service.CartService
	Session    *service.PageSessionService
}

// ==================== 初始化函数 ====================

// initDatabase 连接数据库并执行迁移
func initDatabase(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := database.InitDB(database.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		LogLevel:        logger.GormLevel(cfg.Database.LogLevel),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}
	if err := middleware.RegisterAuditCallbacks(db); err != nil {
		return nil, fmt.Errorf("注册审计回调失败: %w", err)
	}
	if err := database.QuickInit(db, model.AllModels(), log.Named("db")); err != nil {
		return nil, err
	}
	return db, nil
}

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, log *zap.Logger, db *gorm.DB) (*Dependencies, error) {
	middleware.SetJWTConfig(&middleware.JWTConfig{
		SecretKey:      cfg.Auth.JWTSecret,
		AccessTokenTTL: cfg.Auth.AccessTokenTTL,
	})
	middleware.RegisterValidators()

	// -------- Repo 层 --------
	repos := &Repositories{
		Product:    repository.NewProductRepository(db),
		Collection: repository.NewCollectionRepository(db),
		Content:    repository.NewContentRepository(db),
		Booking:    repository.NewBookingRepository(db),
		User:       repository.NewUserRepository(db),
	}

	// -------- 存储 --------
	storage, err := service.NewStorageProvider(service.StorageConfig{
		Provider:  cfg.Storage.Provider,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
		CDNDomain: cfg.Storage.CDNDomain,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("存储服务初始化失败: %w", err)
	}
	var uploadDir string
	if local, ok := storage.(*service.LocalStorage); ok {
		uploadDir = local.Dir()
	}

	// -------- 业务服务 --------
	svc := &Services{
		Catalog:    service.NewCatalogService(repos.Product, log),
		Collection: service.NewCollectionService(repos.Collection, repos.Product, log),
		Booking:    service.NewBookingService(repos.Booking, log),
		User:       service.NewUserService(repos.User, log),
		Upload:     service.NewUploadService(storage, log),
		Cart:       service.NewCartService(),
	}
	svc.Content = service.NewContentService(repos.Content, repos.Product, svc.Collection, cfg.Content.HomeCacheTTL, log)
	svc.Session = service.NewPageSessionService(svc.Catalog, svc.Cart, log)

	limiter := middleware.NewCooldownLimiter()

	// -------- 定时任务 --------
	taskDeps := &task.TaskManagerDeps{
		Sessions:    svc.Session,
		Limiter:     limiter,
		Products:    svc.Catalog,
		Collections: svc.Collection,
		Home:        svc.Content,
		Logger:      log,
	}
	feed, err := catalogfeed.NewClient(catalogfeed.Config{
		BaseURL:  cfg.Feed.BaseURL,
		APIKey:   cfg.Feed.APIKey,
		ProxyURL: cfg.Feed.ProxyURL,
		Timeout:  cfg.Feed.Timeout,
		Retries:  cfg.Feed.Retries,
	})
	switch {
	case err == nil:
		taskDeps.Feed = feed
	case errors.Is(err, catalogfeed.ErrFeedDisabled):
		log.Info("未配置外部目录，跳过目录同步")
	default:
		return nil, fmt.Errorf("目录数据源初始化失败: %w", err)
	}

	taskCfg := task.DefaultConfig()
	taskCfg.ReaperSpec = cfg.Session.ReaperSpec
	taskCfg.SessionMaxIdle = cfg.Session.MaxIdle
	taskCfg.LimiterWindow = middleware.GetInterval(middleware.ScopeBooking)
	taskCfg.FeedSpec = cfg.Feed.Spec
	tasks := task.NewTaskManager(taskDeps, taskCfg)

	deps := &Dependencies{
		Config:    cfg,
		Log:       log,
		DB:        db,
		Repos:     repos,
		Services:  svc,
		Limiter:   limiter,
		Tasks:     tasks,
		UploadDir: uploadDir,
	}
	deps.Controllers = initControllers(deps)
	return deps, nil
}

// initControllers 初始化所有控制器
func initControllers(deps *Dependencies) *router.Controllers {
	svc, log := deps.Services, deps.Log
	return &router.Controllers{
		Product:    controller.NewProductController(svc.Catalog, svc.Content, log),
		Collection: controller.NewCollectionController(svc.Collection, svc.Content, log),
		Content:    controller.NewContentController(svc.Content, log),
		Booking:    controller.NewBookingController(svc.Booking, log),
		User:       controller.NewUserController(svc.User, log),
		Upload:     controller.NewUploadController(svc.Upload, log),
		Session:    controller.NewSessionController(svc.Session, svc.Cart, log),
		Sync:       controller.NewSyncController(deps.Tasks, log),
		Health:     controller.NewHealthController(deps.DB, svc.Session),
	}
}

// newEngine 构建 gin 引擎
func newEngine(deps *Dependencies) *gin.Engine {
	gin.SetMode(deps.Config.Server.Mode)
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(deps.Log), middleware.Recovery(deps.Log))
	r.MaxMultipartMemory = service.MaxUploadSize * 2

	router.InitRoutes(r, *deps.Controllers, router.Options{
		UploadDir: deps.UploadDir,
		Limiter:   deps.Limiter,
	})
	return r
}

// ==================== 启动数据 ====================

// ensureAdmin 未配置密码时跳过
func ensureAdmin(ctx context.Context, deps *Dependencies) error {
	auth := deps.Config.Auth
	if auth.AdminPassword == "" {
		deps.Log.Warn("未配置 auth.admin_password，跳过管理员初始化")
		return nil
	}
	_, err := deps.Services.User.EnsureAdmin(ctx, auth.AdminEmail, auth.AdminPassword, auth.AdminName)
	return err
}

// catalogEmpty 商品表是否为空
func catalogEmpty(ctx context.Context, db *gorm.DB) (bool, error) {
	var n int64
	if err := db.WithContext(ctx).Model(&model.Product{}).Count(&n).Error; err != nil {
		return false, err
	}
	return n == 0, nil
}

// SeedResult 种子导入结果
type SeedResult struct {
	Collections int
	Products    int
	Featured    int
}

// seedCatalog 写入系列、商品与首页推荐位，按 SKU upsert，可重复执行
func seedCatalog(ctx context.Context, deps *Dependencies, cat *seed.Catalog) (*SeedResult, error) {
	svc := deps.Services

	collections := cat.CollectionModels()
	if err := svc.Collection.Import(ctx, collections); err != nil {
		return nil, fmt.Errorf("导入系列失败: %w", err)
	}
	n, err := svc.Catalog.Import(ctx, cat.Products())
	if err != nil {
		return nil, err
	}

	featured := make([]dto.FeaturedWatchReq, 0, len(cat.Featured))
	for _, f := range cat.Featured {
		p, err := deps.Repos.Product.GetBySKU(ctx, f.SKU)
		if err != nil {
			return nil, fmt.Errorf("推荐位商品 %s 不存在: %w", f.SKU, err)
		}
		featured = append(featured, dto.FeaturedWatchReq{
			ProductID: strconv.FormatInt(p.ID, 10),
			Order:     f.Order,
			IsNew:     f.IsNew,
		})
	}
	if len(featured) > 0 {
		if err := svc.Content.SetFeatured(ctx, featured); err != nil {
			return nil, fmt.Errorf("写入推荐位失败: %w", err)
		}
	}
	svc.Content.InvalidateHome()

	return &SeedResult{Collections: len(collections), Products: n, Featured: len(featured)}, nil
}
