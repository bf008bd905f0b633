package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lifelog/src/calendar"
	"lifelog/src/config"
	"lifelog/src/database"
	"lifelog/src/domain"
	"lifelog/src/infrastructure/memory"
	"lifelog/src/infrastructure/repository"
	"lifelog/src/interface/handler"
	"lifelog/src/logger"
	"lifelog/src/middleware"
	"lifelog/src/routes"
	"lifelog/src/security"
	"lifelog/src/service"
	"lifelog/src/storage"
	"lifelog/src/store"
	"lifelog/src/usecase"
	"lifelog/src/validator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// .env.local → .env の順に読み込む（既存の環境変数は上書きしない）
	loaded := config.LoadDotEnv()
	cfg := config.LoadConfig()

	// ロガーを初期化
	if err := logger.InitLoggerWithZone(cfg.Log.Level, cfg.Log.Directory, cfg.Service.Timezone); err != nil {
		panic(fmt.Sprintf("ロガーの初期化に失敗: %v", err))
	}
	defer logger.CloseLogger()
	log := logger.Log

	log.WithField("env_files", loaded).Info("アプリケーションを開始しています")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// リポジトリ（PostgreSQL またはメモリ）
	repos, db, err := openRepositories(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("リポジトリの初期化に失敗")
	}
	if db != nil {
		defer db.Close()
	}

	// サービス期間と共有状態
	loc := cfg.Service.Location()
	start, err := domain.ParseDate(cfg.Service.StartDate)
	if err != nil {
		log.WithError(err).Warn("SERVICE_START_DATE が不正なため既定値を使用します")
		start = calendar.DefaultServiceStart
	}
	window := calendar.NewWindow(start, loc)
	state := store.NewAppState(window)
	loader := store.NewLoader(state.Store, repos, log)

	// ログイン試行回数の制限
	limiter := newAttemptLimiter(ctx, cfg, log)

	// ユースケース
	journalUsecase := usecase.NewJournalUsecase(repos.Journals, state.Store, window)
	todoUsecase := usecase.NewTodoUsecase(repos.Todos, repos.Categories, state.Store)
	categoryUsecase := usecase.NewCategoryUsecase(repos.Categories, state.Store)
	anniversaryUsecase := usecase.NewAnniversaryUsecase(repos.Anniversaries, state.Store)
	profileUsecase := usecase.NewProfileUsecase(repos.Profiles, state.Store, window)
	calendarUsecase := usecase.NewCalendarUsecase(loader, state, window, cfg.Service.CalendarPadding)
	statsUsecase := usecase.NewStatsUsecase(loader)

	jwtService := service.NewJWTService(cfg.Auth)
	authService := service.NewAuthService(repos.Profiles, jwtService, limiter, cfg.Auth, log)

	// ハンドラー
	v := validator.NewCustomValidator()
	var pinger handler.Pinger
	if db != nil {
		pinger = db
	}
	handlers := routes.Handlers{
		Auth:        handler.NewAuthHandler(authService, state, v, log),
		Journal:     handler.NewJournalHandler(journalUsecase, v, log),
		Todo:        handler.NewTodoHandler(todoUsecase, v, loc, log),
		Category:    handler.NewCategoryHandler(categoryUsecase, v, log),
		Anniversary: handler.NewAnniversaryHandler(anniversaryUsecase, v, log),
		Profile:     handler.NewProfileHandler(profileUsecase, v, log),
		Calendar:    handler.NewCalendarHandler(calendarUsecase, v, log),
		Stats:       handler.NewStatsHandler(statsUsecase, v, log),
		Health:      handler.NewHealthHandler(pinger, state.Store, log),
	}

	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.HandleMethodNotAllowed = true

	// NoRouteハンドラー（404）
	r.NoRoute(func(c *gin.Context) {
		logger.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"uri":       c.Request.RequestURI,
			"client_ip": c.ClientIP(),
		}).Warn("404: ルートが見つかりません")
		c.JSON(http.StatusNotFound, handler.Response{Success: false, Error: handler.CodeNotFound, Message: "route not found"})
	})

	// NoMethodハンドラー（405）
	r.NoMethod(func(c *gin.Context) {
		logger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"uri":    c.Request.RequestURI,
		}).Warn("405: サポートされていないメソッド")
		c.JSON(http.StatusMethodNotAllowed, handler.Response{Success: false, Error: "METHOD_NOT_ALLOWED", Message: "method not allowed"})
	})

	routes.SetupRoutes(r, handlers, routes.Options{
		JWTService:  jwtService,
		Limiter:     limiter,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	// S3アップローダーを初期化（設定が有効な場合）
	var uploader *storage.LogUploader
	if cfg.Log.UploadEnabled {
		uploader, err = storage.NewLogUploader(storage.S3Config{
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			Region:          cfg.S3.Region,
			Bucket:          cfg.S3.Bucket,
			UseSSL:          cfg.S3.UseSSL,
		}, log)
		if err != nil {
			log.WithError(err).Error("S3アップローダーの初期化に失敗")
		} else {
			uploader.SkipFile(logger.GetCurrentLogFile)
			uploader.StartPeriodicUpload(ctx, cfg.Log.Directory, cfg.Log.UploadInterval, cfg.Log.UploadMaxAge)
		}
	}

	go collectGauges(ctx, db, state.Store)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.WithField("port", cfg.Server.Port).Info("サーバーを開始します")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("サーバーの起動に失敗")
		}
	}()

	// グレースフルシャットダウン
	<-ctx.Done()
	log.Info("シャットダウンシグナルを受信しました")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("サーバーの停止に失敗")
	}

	// 最後のログアップロードを実行
	if uploader != nil {
		if _, err := uploader.UploadOldLogs(shutdownCtx, cfg.Log.Directory, 0); err != nil {
			log.WithError(err).Error("最後のログアップロードに失敗")
		}
	}
}

// openRepositories selects the storage backend from DB_DRIVER
func openRepositories(ctx context.Context, cfg *config.Config, log *logrus.Logger) (store.Repositories, *database.DB, error) {
	if cfg.Database.Driver != "postgres" {
		log.Info("メモリリポジトリを使用します")
		return store.Repositories{
			Journals:      memory.NewJournalRepository(),
			Todos:         memory.NewTodoRepository(),
			Categories:    memory.NewCategoryRepository(),
			Anniversaries: memory.NewAnniversaryRepository(),
			Profiles:      memory.NewProfileRepository(),
		}, nil, nil
	}

	db, err := database.NewDB(&database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.Name,
		SSLMode:  cfg.Database.SSLMode,
	}, log)
	if err != nil {
		return store.Repositories{}, nil, err
	}
	if cfg.Database.Migrate {
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return store.Repositories{}, nil, err
		}
	}

	return store.Repositories{
		Journals:      repository.NewJournalRepository(db, log),
		Todos:         repository.NewTodoRepository(db, log),
		Categories:    repository.NewCategoryRepository(db, log),
		Anniversaries: repository.NewAnniversaryRepository(db, log),
		Profiles:      repository.NewProfileRepository(db, log),
	}, db, nil
}

// newAttemptLimiter uses Redis when enabled and reachable, memory otherwise
func newAttemptLimiter(ctx context.Context, cfg *config.Config, log *logrus.Logger) security.AttemptLimiter {
	if cfg.Redis.Enabled {
		client, err := security.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err == nil {
			log.WithField("addr", cfg.Redis.Addr).Info("ログイン試行回数をRedisで管理します")
			return security.NewRedisAttemptLimiter(client, cfg.Auth.AttemptLimit, cfg.Auth.AttemptWindow, log)
		}
		log.WithError(err).Warn("Redisに接続できないためメモリで管理します")
	}
	return security.NewMemoryAttemptLimiter(cfg.Auth.AttemptLimit, cfg.Auth.AttemptWindow)
}

// collectGauges publishes pool usage and snapshot generation to Prometheus
func collectGauges(ctx context.Context, db *database.DB, st *store.Store) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if db != nil {
				middleware.SetDBConnectionsInUse(db.Stats().InUse)
			}
			if snap := st.Current(); snap != nil {
				middleware.SetStoreGeneration(snap.Generation)
			}
		}
	}
}
