//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 运行 `wire gen ./cmd/api` 生成wire_gen.go,
// main.go中的手动组装与此处的依赖链等价
package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

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
	"github.com/xiebiao/bookcatalog/pkg/mq"
)

// infrastructureSet 基础设施层:配置、数据库、Redis
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
)

// repositorySet 仓储层
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewBookRepository,
	mysql.NewAuthorRepository,
	mysql.NewTxManager,
)

// domainSet 领域层
var domainSet = wire.NewSet(
	user.NewService,
	book.NewService,
	author.NewService,
)

// applicationSet 应用层用例
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	provideLogoutUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewCreateBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appauthor.NewListAuthorsUseCase,
	appauthor.NewGetAuthorUseCase,
	appauthor.NewCreateAuthorUseCase,
	appauthor.NewUpdateAuthorUseCase,
	appauthor.NewDeleteAuthorUseCase,
)

// middlewareSet 中间件与横切依赖
var middlewareSet = wire.NewSet(
	provideJWTManager,
	provideSessionStore,
	provideEventPublisher,
	provideAuthorChecker,
	provideTxManager,
	provideTokenBlacklist,
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewBookHandler,
	handler.NewAuthorHandler,
)

// provideJWTManager 从配置提取JWT参数
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideSessionStore 从Redis客户端创建会话存储
func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// provideTokenBlacklist 会话存储同时承担Token黑名单查询
func provideTokenBlacklist(store *redis.SessionStore) middleware.TokenBlacklist {
	return store
}

// provideLogoutUseCase 黑名单TTL取Access Token有效期
func provideLogoutUseCase(cfg *config.Config, store *redis.SessionStore) *appuser.LogoutUseCase {
	return appuser.NewLogoutUseCase(store, cfg.JWT.AccessTokenExpire)
}

// provideAuthorChecker 图书领域通过该接口校验作者引用
func provideAuthorChecker(repo author.Repository) book.AuthorChecker {
	return repo
}

// provideTxManager 作者级联删除的事务边界
func provideTxManager(tm *mysql.TxManager) appauthor.TxManager {
	return tm
}

// provideEventPublisher 目录事件发布器
// 未启用MQ时降级为空实现,保证写操作不依赖消息队列
func provideEventPublisher(cfg *config.Config) (event.Publisher, error) {
	if !cfg.MQ.Enabled {
		return event.NopPublisher{}, nil
	}
	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
	if err != nil {
		return nil, err
	}
	return event.NewMQPublisher(publisher), nil
}

// provideGinEngine 创建Gin引擎并注册路由
func provideGinEngine(
	cfg *config.Config,
	bookHandler *handler.BookHandler,
	authorHandler *handler.AuthorHandler,
	userHandler *handler.UserHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
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
	return r
}

// InitializeApp 组装整个应用,返回配置好的Gin引擎
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
	)
	return nil, nil
}
