package app

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	if spec := a.appConfig.Store.AutosaveSpec; spec != "" {
		_, err := a.sched.AddFunc(spec, func() {
			if err := a.FlushAll(); err != nil {
				zap.L().Error("autosave failed", zap.Error(err))
			} else {
				zap.L().Debug("autosave completed")
			}
		})
		if err != nil {
			zap.S().Errorf("init autosave job error %s", err.Error())
		}
	}

	_, err := a.sched.AddFunc("@daily", func() {
		report := a.orderSvc.UnitsSoldPerProduct()
		zap.L().Info("daily sales summary",
			zap.Int("products_sold", len(report)),
			zap.Int("orders", a.orders.Count()))
	})
	if err != nil {
		zap.S().Errorf("init report job error %s", err.Error())
	}

	a.sched.Start()
}
