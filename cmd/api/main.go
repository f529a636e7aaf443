package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/xiebiao/bookcatalog/docs"
	appauthor "github.com/xiebiao/bookcatalog/internal/application/author"
	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/application/event"
	appuser "github.com/xiebiao/bookcatalog/internal/application/user"
	"github.com/xiebiao/bookcatalog/internal/domain/author"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/mq"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// @title 图书目录服务API
// @version 1.0
// @description 图书与作者目录管理服务,提供查询管线(过滤/搜索/排序/分页)与JWT认证
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	log.Printf("配置加载成功: port=%d mode=%s db=%s:%d/%s redis=%s",
		cfg.Server.Port, cfg.Server.Mode,
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName,
		cfg.Redis.Addr())

	// 2. 初始化可观测性组件
	metrics.InitMetrics()

	if cfg.Trace.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Trace.ServiceName, cfg.Trace.Endpoint)
		if err != nil {
			log.Fatalf("初始化链路追踪失败: %v", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Printf("关闭链路追踪失败: %v", err)
			}
		}()
	}

	// 3. 初始化存储连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}
	defer redisClient.Close()

	// 4. 目录事件发布器(未启用MQ时降级为空实现)
	var events event.Publisher = event.NopPublisher{}
	if cfg.MQ.Enabled {
		publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
		if err != nil {
			log.Fatalf("初始化消息队列失败: %v", err)
		}
		defer publisher.Close()
		events = event.NewMQPublisher(publisher)
	}

	// 5. 依赖注入(手动组装,等价链路见wire.go)
	// Repository ← Service ← UseCase ← Handler

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	authorRepo := mysql.NewAuthorRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)

	// 领域层
	userService := user.NewService(userRepo)
	bookService := book.NewService(bookRepo, authorRepo)
	authorService := author.NewService(authorRepo)

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore)
	logoutUseCase := appuser.NewLogoutUseCase(sessionStore, cfg.JWT.AccessTokenExpire)

	listBooksUseCase := appbook.NewListBooksUseCase(bookService)
	getBookUseCase := appbook.NewGetBookUseCase(bookService)
	createBookUseCase := appbook.NewCreateBookUseCase(bookService, events)
	updateBookUseCase := appbook.NewUpdateBookUseCase(bookService, events)
	deleteBookUseCase := appbook.NewDeleteBookUseCase(bookService, events)

	listAuthorsUseCase := appauthor.NewListAuthorsUseCase(authorService)
	getAuthorUseCase := appauthor.NewGetAuthorUseCase(authorService)
	createAuthorUseCase := appauthor.NewCreateAuthorUseCase(authorService, events)
	updateAuthorUseCase := appauthor.NewUpdateAuthorUseCase(authorService, events)
	deleteAuthorUseCase := appauthor.NewDeleteAuthorUseCase(authorService, authorRepo, bookRepo, txManager, events)

	// 接口层
	userHandler := handler.NewUserHandler(registerUseCase, loginUseCase, logoutUseCase)
	bookHandler := handler.NewBookHandler(listBooksUseCase, getBookUseCase, createBookUseCase, updateBookUseCase, deleteBookUseCase)
	authorHandler := handler.NewAuthorHandler(listAuthorsUseCase, getAuthorUseCase, createAuthorUseCase, updateAuthorUseCase, deleteAuthorUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 6. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.Metrics())
	if cfg.Trace.Enabled {
		r.Use(middleware.Tracing(cfg.Trace.ServiceName))
	}

	registerRoutes(r, bookHandler, authorHandler, userHandler, authMiddleware)

	// 7. 启动服务(支持优雅停机)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("服务启动: http://localhost%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("启动服务失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("收到停机信号,等待进行中的请求结束...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("优雅停机失败: %v", err)
	}
	log.Println("服务已退出")
}

// registerRoutes 注册路由
// 列表与详情为公开接口,写操作需要登录
func registerRoutes(
	r *gin.Engine,
	bookHandler *handler.BookHandler,
	authorHandler *handler.AuthorHandler,
	userHandler *handler.UserHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "healthy"})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.POST("/logout", authMiddleware.RequireAuth(), userHandler.Logout)
			users.GET("/profile", authMiddleware.RequireAuth(), userHandler.Profile)
		}

		books := v1.Group("/books")
		{
			books.GET("", bookHandler.List)
			books.GET("/:id", bookHandler.Get)
			books.POST("/create", authMiddleware.RequireAuth(), bookHandler.Create)
			books.PUT("/update/:id", authMiddleware.RequireAuth(), bookHandler.Update)
			books.PATCH("/update/:id", authMiddleware.RequireAuth(), bookHandler.Update)
			books.DELETE("/delete/:id", authMiddleware.RequireAuth(), bookHandler.Delete)
		}

		authors := v1.Group("/authors")
		{
			authors.GET("", authorHandler.List)
			authors.GET("/:id", authorHandler.Get)
			authors.POST("/create", authMiddleware.RequireAuth(), authorHandler.Create)
			authors.PUT("/update/:id", authMiddleware.RequireAuth(), authorHandler.Update)
			authors.PATCH("/update/:id", authMiddleware.RequireAuth(), authorHandler.Update)
			authors.DELETE("/delete/:id", authMiddleware.RequireAuth(), authorHandler.Delete)
		}
	}
}
