package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"orient_store/pkg/database"
	"orient_store/pkg/seed"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP 服务与后台任务",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// 1. 初始化数据库
	db, err := initDatabase(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	// 2. 初始化依赖
	deps, err := initDependencies(cfg, log, db)
	if err != nil {
		return err
	}
	if err := ensureAdmin(ctx, deps); err != nil {
		return err
	}

	// 3. 空库时导入内置目录
	if cfg.Seed.OnBoot {
		if err := seedIfEmpty(ctx, deps); err != nil {
			log.Warn("启动导入目录失败", zap.Error(err))
		}
	}

	// 4. 启动定时任务
	if err := deps.Tasks.Start(); err != nil {
		return err
	}
	defer deps.Tasks.Stop()

	// 5. 启动服务
	return startServer(deps)
}

func seedIfEmpty(ctx context.Context, deps *Dependencies) error {
	empty, err := catalogEmpty(ctx, deps.DB)
	if err != nil || !empty {
		return err
	}
	cat, err := seed.Load(deps.Config.Seed.Path)
	if err != nil {
		return err
	}
	res, err := seedCatalog(ctx, deps, cat)
	if err != nil {
		return err
	}
	log.Info("已导入初始目录",
		zap.Int("collections", res.Collections),
		zap.Int("products", res.Products),
		zap.Int("featured", res.Featured))
	return nil
}

// ==================== 服务启动 ====================

// startServer 启动服务，收到退出信号后优雅关闭
func startServer(deps *Dependencies) error {
	srv := &http.Server{
		Addr:    ":" + deps.Config.Server.Port,
		Handler: newEngine(deps),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-quit:
	}

	log.Info("正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), deps.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("服务强制关闭", zap.Error(err))
	}

	// 页面会话卸载，取消所有挂起的定时器
	n := deps.Services.Session.CloseAll()
	log.Info("服务已退出", zap.Int("closed_sessions", n))
	return nil
}
