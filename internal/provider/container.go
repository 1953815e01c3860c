package provider

import (
	"github.com/slideboard-next/internal/cache"
	"github.com/slideboard-next/internal/config"
	"github.com/slideboard-next/internal/logger"
	"github.com/slideboard-next/internal/models"
	"github.com/slideboard-next/internal/queue"
	"github.com/slideboard-next/internal/repository"
	"github.com/slideboard-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	OrderRepo         repository.OrderRepository
	LeadRepo          repository.LeadRepository
	ChannelRepo       repository.ChannelRepository
	ProductRepo       repository.ProductRepository
	FinanceConfigRepo repository.FinanceConfigRepository
	CommissionRepo    repository.CommissionRepository

	// Services
	CommissionService *service.CommissionService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}
	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.OrderRepo = repository.NewOrderRepository(db)
	c.LeadRepo = repository.NewLeadRepository(db)
	c.ChannelRepo = repository.NewChannelRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.FinanceConfigRepo = repository.NewFinanceConfigRepository(db)
	c.CommissionRepo = repository.NewCommissionRepository(db)
}

func (c *Container) initServices() {
	c.CommissionService = service.NewCommissionService(
		c.OrderRepo,
		c.LeadRepo,
		c.ChannelRepo,
		c.ProductRepo,
		c.FinanceConfigRepo,
		c.CommissionRepo,
	)
}
