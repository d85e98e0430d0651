package wire

import (
	"Sundial/internal/api"
	"Sundial/internal/api/config"
	"Sundial/internal/api/handler"
	"Sundial/internal/job"
	"Sundial/internal/pkg/cron"
	sundialmongo "Sundial/internal/pkg/mongo"
	"Sundial/internal/repository"
	"Sundial/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	counterRepo := repository.NewCounterRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	siteStatRepo := repository.NewSiteStatRepository(db)
	eventRepo := sundialmongo.NewApplyEventRepo(mongoDB)

	historyService := service.NewHistoryService(historyRepo)
	counterService := service.NewCounterService(counterRepo, historyRepo, eventRepo, historyService, cfg.App)
	statsService := service.NewStatsService(siteStatRepo)

	handlers := &api.HandlersGroup{
		CounterHandler: handler.NewCounterHandler(counterService),
		HistoryHandler: handler.NewHistoryHandler(historyService),
		StatsHandler:   handler.NewStatsHandler(statsService),
		WSHandler:      handler.NewWsHandler(counterService),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(job.NewViewFlushJob(statsService))

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
