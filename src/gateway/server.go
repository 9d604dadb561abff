package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/decentraland/thirdparty-registry/src/registry"
	"github.com/decentraland/thirdparty-registry/src/utils/config"
	"github.com/decentraland/thirdparty-registry/src/utils/monitoring"
	"github.com/decentraland/thirdparty-registry/src/utils/task"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

// REST API of the registry. Write endpoints require a signed caller.
type Server struct {
	*task.Task

	httpServer *http.Server
	Router     *gin.Engine

	monitor  monitoring.Monitor
	registry *registry.Registry

	// Signatures already used, kept until they expire
	replays *cache.Cache

	// Rate limiters per client ip
	limiters *cache.Cache

	now func() time.Time
}

func NewServer(config *config.Config) (self *Server) {
	self = new(Server)

	self.Task = task.NewTask(config, "gateway").
		WithSubtaskFunc(self.run).
		WithOnStop(self.stop)

	self.replays = cache.New(config.Gateway.SignatureMaxAge, time.Minute)
	self.limiters = cache.New(10*time.Minute, time.Minute)
	self.now = time.Now

	if !config.IsDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}

	self.Router = gin.New()
	self.Router.Use(gin.Recovery(), self.requestId(), self.rateLimit(), self.timeout())
	self.routes()

	self.httpServer = &http.Server{
		Addr:              config.Gateway.RESTListenAddress,
		Handler:           self.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return
}

func (self *Server) WithMonitor(monitor monitoring.Monitor) *Server {
	self.monitor = monitor
	return self
}

func (self *Server) WithRegistry(registry *registry.Registry) *Server {
	self.registry = registry
	return self
}

func (self *Server) WithClock(now func() time.Time) *Server {
	self.now = now
	return self
}

func (self *Server) routes() {
	v1 := self.Router.Group("v1")
	{
		// Reads
		v1.GET("third-parties", self.onListThirdParties)
		v1.GET("third-parties/:id", self.onGetThirdParty)
		v1.GET("third-parties/:id/slots/quote", self.onQuoteItemSlots)
		v1.GET("third-parties/:id/items", self.onListItems)
		v1.GET("third-parties/:id/items/:itemId", self.onGetItem)
		v1.GET("managers/:id/:address", self.onIsThirdPartyManager)
		v1.GET("messages/:hash", self.onIsMessageProcessed)
		v1.GET("settings", self.onGetSettings)
		v1.GET("events", self.onGetEvents)

		// Writes
		auth := v1.Group("", self.authenticate())
		{
			auth.POST("third-parties", self.onAddThirdParties)
			auth.PATCH("third-parties", self.onUpdateThirdParties)
			auth.POST("third-parties/:id/slots", self.onBuyItemSlots)
			auth.POST("third-parties/:id/items", self.onAddItems)
			auth.PATCH("third-parties/:id/items", self.onUpdateItems)
			auth.POST("third-parties/:id/consume", self.onConsumeSlots)
			auth.POST("third-parties/:id/root-review", self.onReviewThirdPartyWithRoot)
			auth.PUT("third-parties/:id/rules", self.onSetRules)
			auth.POST("reviews", self.onReviewThirdParties)
			auth.PUT("settings/:name", self.onSetSetting)
		}
	}
}

func (self *Server) run() (err error) {
	err = self.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		self.Log.WithError(err).Error("Failed to start REST server")
		return
	}
	return nil
}

func (self *Server) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), self.Config.StopTimeout)
	defer cancel()

	err := self.httpServer.Shutdown(ctx)
	if err != nil {
		self.Log.WithError(err).Error("Failed to gracefully shutdown REST server")
		return
	}
}
