package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ContactServer/apps/contact/internal/handler"
	"ContactServer/apps/contact/internal/middleware"
	"ContactServer/apps/contact/internal/repository"
	"ContactServer/apps/contact/internal/router"
	"ContactServer/apps/contact/internal/service"
	"ContactServer/apps/contact/mq"
	"ContactServer/config"
	"ContactServer/model"
	"ContactServer/pkg/async"
	"ContactServer/pkg/jwt"
	"ContactServer/pkg/kafka"
	"ContactServer/pkg/logger"
	"ContactServer/pkg/mailer"
	"ContactServer/pkg/mysql"
	pkgredis "ContactServer/pkg/redis"
	"ContactServer/pkg/util"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 1. 初始化日志
	logCfg := config.DefaultLoggerConfig()
	zl, err := logger.Build(logCfg)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	logger.ReplaceGlobal(zl)
	defer zl.Sync()

	// 2. 初始化MySQL
	dbCfg := config.DefaultMySQLConfig()
	db, err := mysql.Build(dbCfg)
	if err != nil {
		log.Fatalf("初始化MySQL失败: %v", err)
	}
	mysql.ReplaceGlobal(db)

	// 自动建表（users 在前，contacts 的唯一索引依赖其存在的 uuid）
	if err := db.AutoMigrate(&model.User{}, &model.Contact{}); err != nil {
		log.Fatalf("自动建表失败: %v", err)
	}

	// contacts 两个外键均级联删除：账号硬删除时清掉其作为任一方的关系记录
	for name, col := range map[string]string{
		"fk_contacts_owner":  "owner_uuid",
		"fk_contacts_person": "person_uuid",
	} {
		if db.Migrator().HasConstraint(&model.Contact{}, name) {
			continue
		}
		ddl := fmt.Sprintf("ALTER TABLE contacts ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES users(uuid) ON DELETE CASCADE", name, col)
		if err := db.Exec(ddl).Error; err != nil {
			logger.Warn(ctx, "创建级联外键失败", logger.String("constraint", name), logger.ErrorField("error", err))
		}
	}

	// 3. 初始化Redis
	redisCfg := config.DefaultRedisConfig()
	// 调整 Redis 读写超时时间为 50ms（快速失败）
	redisCfg.ReadTimeout = 50 * time.Millisecond
	redisCfg.WriteTimeout = 50 * time.Millisecond

	redisClient, err := pkgredis.Build(redisCfg)
	if err != nil {
		// Redis 初始化失败不阻塞启动（降级到只用 MySQL + 本地限流）
		logger.Warn(ctx, "Redis 初始化失败，将降级到 MySQL-Only 模式",
			logger.ErrorField("error", err),
		)
		redisClient = nil
	} else {
		pkgredis.ReplaceGlobal(redisClient)
		logger.Info(ctx, "Redis 初始化成功",
			logger.String("addr", redisCfg.Addr),
		)
	}

	// 4. 初始化协程池（旁路任务：缓存回填、事件投递、通知邮件）
	if err := async.Init(config.DefaultAsyncConfig()); err != nil {
		log.Fatalf("初始化协程池失败: %v", err)
	}
	async.SetContextPropagator(middleware.PropagateContext)
	defer async.Release()

	// 5. 初始化小组件
	jwt.Init(config.DefaultJWTConfig())
	if err := util.InitIDNode(1); err != nil {
		log.Fatalf("初始化ID生成器失败: %v", err)
	}

	// 6. 初始化 Kafka Producer（不可用时事件投递自动变为 no-op）
	kafkaCfg := config.DefaultKafkaConfig()
	var kafkaProducer *kafka.Producer
	if len(kafkaCfg.Brokers) > 0 {
		kafkaProducer = kafka.NewProducer(kafkaCfg.Brokers, kafkaCfg.ContactEventTopic)
		mq.SetGlobalProducer(kafkaProducer)
		logger.Info(ctx, "Kafka Producer 初始化成功",
			logger.String("brokers", kafkaCfg.Brokers[0]),
			logger.String("topic", kafkaCfg.ContactEventTopic),
		)
		defer func() {
			if err := kafkaProducer.Close(); err != nil {
				logger.Error(ctx, "关闭 Kafka Producer 失败", logger.ErrorField("error", err))
			}
		}()
	}

	// 7. 初始化通知邮件（未配置 SMTP 时不发）
	mailCfg := config.DefaultMailConfig()
	var notifier service.Notifier
	if mailCfg.Host != "" {
		notifier = mailer.New(mailCfg)
	}

	// 8. 初始化限流器
	serverCfg := config.DefaultServerConfig()
	if err := middleware.InitRateLimiter(serverCfg.RateLimitRate, serverCfg.RateLimitBurst, redisClient); err != nil {
		log.Fatalf("初始化限流器失败: %v", err)
	}

	// 9. 组装依赖 - Repository 层
	userRepo := repository.NewUserRepository(db, redisClient)
	contactRepo := repository.NewContactRepository(db)

	// 10. 组装依赖 - Service 层
	authService := service.NewAuthService(userRepo)
	contactService := service.NewContactService(userRepo, contactRepo, notifier)

	// 11. 组装依赖 - Handler 层
	authHandler := handler.NewAuthHandler(authService)
	contactHandler := handler.NewContactHandler(contactService)

	// 12. 启动 HTTP Server
	engine := router.InitRouter(serverCfg, authHandler, contactHandler)
	srv := &http.Server{
		Addr:    serverCfg.Addr,
		Handler: engine,
	}

	go func() {
		logger.Info(ctx, "Contact 服务启动中", logger.String("address", serverCfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(ctx, "HTTP 服务启动失败", logger.ErrorField("error", err))
		}
	}()

	// 13. 等待退出信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "收到退出信号，开始优雅关闭")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "HTTP 服务关闭异常", logger.ErrorField("error", err))
	}

	logger.Info(ctx, "Contact 服务已退出")
}
