package main

import (
	"context"
	"time"

	"github.com/Abraxas-365/backoffice/backoffice/adminuser/adminuserapi"
	"github.com/Abraxas-365/backoffice/backoffice/application"
	"github.com/Abraxas-365/backoffice/backoffice/application/applicationapi"
	"github.com/Abraxas-365/backoffice/backoffice/blogpost"
	"github.com/Abraxas-365/backoffice/backoffice/blogpost/blogpostapi"
	"github.com/Abraxas-365/backoffice/backoffice/booking"
	"github.com/Abraxas-365/backoffice/backoffice/booking/bookingapi"
	"github.com/Abraxas-365/backoffice/backoffice/careerjob"
	"github.com/Abraxas-365/backoffice/backoffice/careerjob/careerjobapi"
	"github.com/Abraxas-365/backoffice/backoffice/contact"
	"github.com/Abraxas-365/backoffice/backoffice/contact/contactapi"
	"github.com/Abraxas-365/backoffice/backoffice/dashboard"
	"github.com/Abraxas-365/backoffice/backoffice/dashboard/dashboardapi"
	"github.com/Abraxas-365/backoffice/backoffice/dashboard/dashboardsrv"
	"github.com/Abraxas-365/backoffice/backoffice/notification"
	"github.com/Abraxas-365/backoffice/backoffice/notification/notificationapi"
	"github.com/Abraxas-365/backoffice/backoffice/notification/notificationinfra"
	"github.com/Abraxas-365/backoffice/backoffice/notification/notificationsrv"
	"github.com/Abraxas-365/backoffice/backoffice/notification/worker"
	"github.com/Abraxas-365/backoffice/backoffice/service"
	"github.com/Abraxas-365/backoffice/backoffice/service/serviceapi"
	"github.com/Abraxas-365/backoffice/pkg/config"
	"github.com/Abraxas-365/backoffice/pkg/iam/auth/authapi"
	"github.com/Abraxas-365/backoffice/pkg/kernel"
	"github.com/Abraxas-365/backoffice/pkg/logx"
	"github.com/Abraxas-365/backoffice/pkg/mailx"
	"github.com/Abraxas-365/backoffice/pkg/proxy"
	"github.com/Abraxas-365/backoffice/pkg/upstream"
	"github.com/go-redis/redis/v8"
)

// Container holds all application dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	Redis      *redis.Client
	EmailQueue *notificationinfra.RedisQueue
	Upstream   *upstream.Client
	Gateway    *proxy.Gateway
	Mailer     mailx.Sender

	// Services
	LoginService        *authapi.LoginService
	DashboardService    *dashboardsrv.DashboardService
	NotificationService *notificationsrv.NotificationService
	EmailWorker         *worker.EmailWorker

	// API Handlers
	AuthHandlers         *authapi.Handlers
	AdminUserHandlers    *adminuserapi.Handlers
	ApplicationHandlers  *applicationapi.Handlers
	BlogPostHandlers     *blogpostapi.Handlers
	BookingHandlers      *bookingapi.Handlers
	CareerJobHandlers    *careerjobapi.Handlers
	ContactHandlers      *contactapi.Handlers
	ServiceHandlers      *serviceapi.Handlers
	DashboardHandlers    *dashboardapi.Handlers
	NotificationHandlers *notificationapi.Handlers
}

// NewContainer initializes the dependency injection container
func NewContainer(cfg *config.Config) *Container {
	c := &Container{Config: cfg}
	c.initInfrastructure()
	c.initServices()
	c.initHandlers()
	return c
}

func (c *Container) initInfrastructure() {
	cfg := c.Config

	// 1. Upstream API
	c.Upstream = upstream.NewClient(upstream.Config{
		BaseURL:          cfg.Upstream.BaseURL,
		AlternateBaseURL: cfg.Upstream.AlternateBaseURL,
		Timeout:          cfg.Upstream.Timeout,
		MaxBodyBytes:     cfg.Upstream.MaxBodyBytes,
	}, nil)
	c.Gateway = proxy.NewGateway(c.Upstream)

	if cfg.UpstreamHostsDiffer() {
		logx.Warnf("Upstream hosts differ: primary %s, alternate %s. Content routes (blog-posts, services) use the alternate host; reconcile UPSTREAM_BASE_URL and NEXT_PUBLIC_API_BASE_URL if that is not intended.",
			cfg.Upstream.BaseURL, cfg.Upstream.AlternateBaseURL)
	}

	// 2. Redis Connection (optional, enables queued email)
	if cfg.Redis.Addr != "" {
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Pass,
			DB:       0,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Redis.Ping(ctx).Err(); err != nil {
			logx.Warnf("Failed to connect to Redis: %v", err)
		}
		c.EmailQueue = notificationinfra.NewRedisQueue(c.Redis, cfg.Redis.Queue)
	}

	// 3. Email provider
	if cfg.Mail.ResendAPIKey != "" {
		c.Mailer = mailx.NewResendSender(cfg.Mail.ResendAPIKey, cfg.Mail.From)
	} else {
		logx.Warn("RESEND_API_KEY is not set, emails will be logged instead of sent")
		c.Mailer = mailx.NewNoopSender()
	}
}

func (c *Container) initServices() {
	cfg := c.Config

	c.LoginService = authapi.NewLoginService(c.Gateway)

	c.DashboardService = dashboardsrv.NewDashboardService(c.Gateway,
		dashboard.Source{Resource: booking.Resource, GroupBy: "status", Seed: dashboard.Keys(booking.Statuses)},
		dashboard.Source{Resource: application.Resource, GroupBy: "status", Seed: dashboard.Keys(application.Statuses)},
		dashboard.Source{Resource: contact.Resource, GroupBy: "status"},
		dashboard.Source{Resource: careerjob.Resource},
		dashboard.Source{Resource: blogpost.Resource},
		dashboard.Source{Resource: service.Resource},
	)

	renderer, err := notificationsrv.NewRenderer(notificationsrv.Brand{
		CompanyName:   kernel.CompanyName(cfg.Mail.CompanyName).String(),
		ContactPerson: kernel.PersonName(cfg.Mail.ContactPerson).String(),
		AppURL:        cfg.Mail.AppURL,
	})
	if err != nil {
		logx.Fatalf("Failed to parse email templates: %v", err)
	}

	// a nil *RedisQueue must not become a non-nil interface
	var queue notification.Queue
	if c.EmailQueue != nil {
		queue = c.EmailQueue
	}

	c.NotificationService = notificationsrv.NewNotificationService(c.Mailer, queue, renderer, notificationsrv.Settings{
		From:        cfg.Mail.From,
		AdminEmail:  kernel.NewEmail(cfg.Mail.AdminEmail),
		MaxAttempts: cfg.Notification.MaxAttempts,
	})

	if queue != nil {
		c.EmailWorker = worker.NewEmailWorker(c.NotificationService, queue, cfg.Notification.Workers)
	}
}

func (c *Container) initHandlers() {
	c.AuthHandlers = authapi.NewHandlers(c.LoginService, c.Config.IsProduction())

	c.AdminUserHandlers = adminuserapi.NewHandlers(c.Gateway)
	c.ApplicationHandlers = applicationapi.NewHandlers(c.Gateway)
	c.BlogPostHandlers = blogpostapi.NewHandlers(c.Gateway)
	c.BookingHandlers = bookingapi.NewHandlers(c.Gateway)
	c.CareerJobHandlers = careerjobapi.NewHandlers(c.Gateway)
	c.ContactHandlers = contactapi.NewHandlers(c.Gateway)
	c.ServiceHandlers = serviceapi.NewHandlers(c.Gateway)

	c.DashboardHandlers = dashboardapi.NewHandlers(c.DashboardService)

	var inspector notification.QueueInspector
	if c.EmailQueue != nil {
		inspector = c.EmailQueue
	}
	c.NotificationHandlers = notificationapi.NewHandlers(c.NotificationService, inspector)
}

// Close releases infrastructure connections
func (c *Container) Close() {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Warnf("Closing Redis: %v", err)
		}
	}
}
