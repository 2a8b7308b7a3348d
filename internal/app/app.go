// Package app wires the configuration, logging, repositories and services
// into one Application with a defined startup and shutdown sequence.
package app

import (
	"os"
	"time"
	_ "time/tzdata"

	"github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vmarket/storecore/config"
	"github.com/vmarket/storecore/internal/codec"
	"github.com/vmarket/storecore/internal/domain"
	"github.com/vmarket/storecore/internal/repository"
	"github.com/vmarket/storecore/internal/store"
)

type Application struct {
	appConfig *config.AppConfig
	bus       EventBus.Bus
	sched     *cron.Cron

	products *repository.Repository[domain.Product]
	clients  *repository.Repository[domain.Client]
	orders   *repository.Repository[domain.Order]

	productSvc *store.ProductService
	clientSvc  *store.ClientService
	orderSvc   *store.OrderService
}

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig { return a.appConfig }

func (a *Application) ProductService() *store.ProductService { return a.productSvc }
func (a *Application) ClientService() *store.ClientService   { return a.clientSvc }
func (a *Application) OrderService() *store.OrderService     { return a.orderSvc }

// Init configures logging, loads the three collections from their backing
// files, seeds the identity allocators from the loaded state and wires the
// services together.
func (a *Application) Init() error {
	cfg := a.appConfig

	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	a.initLogger()

	if err := os.MkdirAll(cfg.DataDir(), 0o755); err != nil {
		return &domain.PersistenceError{File: cfg.DataDir(), Err: err}
	}

	a.products = repository.New("product", cfg.ProductsPath(),
		codec.ProductCodec{}, func(p domain.Product) int64 { return p.ID }, defaultProducts)
	a.clients = repository.New("client", cfg.ClientsPath(),
		codec.ClientCodec{}, func(c domain.Client) int64 { return c.ID }, defaultClients)
	a.orders = repository.New("order", cfg.OrdersPath(),
		codec.OrderCodec{}, func(o domain.Order) int64 { return o.ID }, nil)

	var g errgroup.Group
	g.Go(a.products.LoadAll)
	g.Go(a.clients.LoadAll)
	g.Go(a.orders.LoadAll)
	if err := g.Wait(); err != nil {
		// Collections keep whatever decoded before the failing line; the
		// error still reaches the caller so the damage is visible.
		zap.L().Error("data load failed", zap.Error(err))
		return err
	}

	a.bus = EventBus.New()

	a.productSvc = store.NewProductService(a.products, store.NewIDAllocator(a.products.MaxID()))
	a.clientSvc = store.NewClientService(a.clients, store.NewIDAllocator(a.clients.MaxID()))
	a.orderSvc = store.NewOrderService(a.orders, a.productSvc,
		store.NewIDAllocator(a.orders.MaxID()), a.bus)

	if err := a.clientSvc.SubscribeOrderEvents(a.bus); err != nil {
		return err
	}

	a.initJob()

	zap.L().Info("application initialized",
		zap.String("workdir", cfg.System.Workdir),
		zap.Int("products", a.products.Count()),
		zap.Int("clients", a.clients.Count()),
		zap.Int("orders", a.orders.Count()))
	return nil
}

func (a *Application) initLogger() {
	cfg := a.appConfig

	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller())
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller())
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)
}

// FlushAll writes every collection to its backing file, overwriting each
// file in full. The first error is returned but the remaining collections
// are still flushed.
func (a *Application) FlushAll() error {
	var firstErr error
	for _, flush := range []func() error{
		a.productSvc.Flush,
		a.clientSvc.Flush,
		a.orderSvc.Flush,
	} {
		if err := flush(); err != nil {
			zap.L().Error("flush failed", zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Release flushes all collections and stops background jobs. Called once at
// shutdown.
func (a *Application) Release() {
	if err := a.FlushAll(); err != nil {
		zap.L().Error("shutdown flush failed", zap.Error(err))
	}
	if a.sched != nil {
		a.sched.Stop()
	}
	_ = zap.L().Sync()
}
