package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/mercadinho/internal/adapter/api/controller"
	"github.com/hugohenrick/mercadinho/internal/adapter/api/route"
	"github.com/hugohenrick/mercadinho/internal/adapter/repository"
	"github.com/hugohenrick/mercadinho/internal/adapter/repository/memory"
	"github.com/hugohenrick/mercadinho/internal/application/catalog"
	"github.com/hugohenrick/mercadinho/internal/application/inventory"
	"github.com/hugohenrick/mercadinho/internal/application/replenishment"
	"github.com/hugohenrick/mercadinho/internal/application/settlement"
	"github.com/hugohenrick/mercadinho/internal/domain"
	"github.com/hugohenrick/mercadinho/internal/domain/client"
	"github.com/hugohenrick/mercadinho/internal/domain/finance"
	"github.com/hugohenrick/mercadinho/internal/domain/order"
	"github.com/hugohenrick/mercadinho/internal/domain/product"
	"github.com/hugohenrick/mercadinho/internal/domain/sale"
	"github.com/hugohenrick/mercadinho/internal/domain/supplier"
	"github.com/hugohenrick/mercadinho/internal/infrastructure/config"
	"github.com/hugohenrick/mercadinho/internal/infrastructure/database"
	"github.com/hugohenrick/mercadinho/internal/infrastructure/metrics"
	"github.com/hugohenrick/mercadinho/pkg/logger"
	"github.com/hugohenrick/mercadinho/pkg/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/hugohenrick/mercadinho/docs"
)

// App representa a aplicação e suas dependências
type App struct {
	cfg    *config.Config
	router *gin.Engine
	db     *database.PostgresDB // nil com STORAGE_DRIVER=memory
	logger logger.Logger

	saleController    *controller.SaleController
	orderController   *controller.OrderController
	catalogController *controller.CatalogController
}

// repositories agrupa as implementações escolhidas pelo driver de armazenamento
type repositories struct {
	tx          domain.Transactor
	products    product.Repository
	suppliers   supplier.Repository
	clients     client.Repository
	orders      order.Repository
	sales       sale.Repository
	payables    finance.PayableRepository
	receivables finance.ReceivableRepository
}

// NewApp cria uma nova instância do aplicativo
func NewApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	app := &App{cfg: cfg, logger: log}

	repos, err := app.newRepositories(ctx)
	if err != nil {
		return nil, err
	}

	// Serviços
	ledger := inventory.NewLedger(repos.products)
	engine := replenishment.NewEngine(repos.tx, ledger, repos.suppliers, repos.orders, repos.payables, log)
	sales := settlement.NewService(repos.tx, ledger, engine, repos.clients, repos.sales, repos.receivables, log)
	cat := catalog.NewService(repos.products, repos.suppliers, repos.clients, log)

	// Controllers
	app.saleController = controller.NewSaleController(sales, log)
	app.orderController = controller.NewOrderController(engine, log)
	app.catalogController = controller.NewCatalogController(cat, log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	app.router = gin.New()
	app.router.Use(
		middleware.RequestID(),
		middleware.Recovery(log),
		logger.GinMiddleware(log),
		metrics.Middleware(),
		cors.New(corsConfig(cfg.HTTP.CORSAllowOrigins)),
	)

	app.SetupRoutes(cfg.App.BasePath)
	return app, nil
}

func (a *App) newRepositories(ctx context.Context) (*repositories, error) {
	if a.cfg.Storage.Driver == config.StorageMemory {
		a.logger.Warn("usando armazenamento em memória; os dados se perdem ao reiniciar")
		store := memory.NewStore()
		return &repositories{
			tx:          store,
			products:    store.Products(),
			suppliers:   store.Suppliers(),
			clients:     store.Clients(),
			orders:      store.Orders(),
			sales:       store.Sales(),
			payables:    store.Payables(),
			receivables: store.Receivables(),
		}, nil
	}

	if a.cfg.Storage.AutoMigrate {
		if err := database.RunMigrations(a.cfg.Database.ConnectionString(), a.cfg.Storage.MigrationsPath); err != nil {
			return nil, err
		}
		a.logger.Info("migrações aplicadas", "path", a.cfg.Storage.MigrationsPath)
	}

	db, err := database.NewPostgresDB(ctx, &a.cfg.Database, a.logger)
	if err != nil {
		return nil, err
	}
	a.db = db

	return &repositories{
		tx:          db,
		products:    repository.NewProductRepository(db),
		suppliers:   repository.NewSupplierRepository(db),
		clients:     repository.NewClientRepository(db),
		orders:      repository.NewOrderRepository(db),
		sales:       repository.NewSaleRepository(db),
		payables:    repository.NewPayableRepository(db),
		receivables: repository.NewReceivableRepository(db),
	}, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// SetupRoutes configura as rotas da aplicação
func (a *App) SetupRoutes(basePath string) {
	a.router.GET("/metrics", metrics.Handler())
	if a.cfg.HTTP.SwaggerEnabled {
		a.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := a.router.Group(basePath)

	// Health check
	api.GET("/health", a.health)

	route.RegisterSaleRoutes(api, a.saleController)
	route.RegisterOrderRoutes(api, a.orderController)
	route.RegisterCatalogRoutes(api, a.catalogController)
}

func (a *App) health(c *gin.Context) {
	status := gin.H{
		"status":  "ok",
		"version": "1.0.0",
		"storage": a.cfg.Storage.Driver,
	}

	if a.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := a.db.Ping(ctx); err != nil {
			a.logger.Error("banco de dados indisponível", "error", err)
			status["status"] = "unavailable"
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
	}

	c.JSON(http.StatusOK, status)
}

// GetRouter retorna o router da aplicação
func (a *App) GetRouter() *gin.Engine {
	return a.router
}

// Server monta o servidor HTTP na porta configurada
func (a *App) Server() *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%s", a.cfg.App.Port),
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}
