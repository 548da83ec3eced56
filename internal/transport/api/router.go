package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fsdevblog/escrow-ledger/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const (
	DefaultServiceTimeout = 3 * time.Second
)

const (
	RouteGroup            = "/api"
	ConnectRoute          = "/identity/connect"
	ProfileRoute          = "/profile"
	ProfileByAccountRoute = "/profiles/:account"
	KycRoute              = "/profile/kyc"
	AdminProfilesRoute    = "/admin/profiles"
	AdminKycRoute         = "/admin/profiles/:account/kyc"
	CatalogRoute          = "/catalog"
	CatalogItemRoute      = "/catalog/:id"
	PurchaseRoute         = "/catalog/:id/purchase"
	ShipmentsRoute        = "/shipments"
	ShipmentRoute         = "/shipments/:id"
	DispatchRoute         = "/shipments/:id/dispatch"
	ShipmentStatusRoute   = "/shipments/:id/status"
	BalanceRoute          = "/balance"
	NotificationsRoute    = "/notifications"
	StatsRoute            = "/stats"
	MetricsRoute          = "/metrics"
)

type RouterArgs struct {
	Logger          *logrus.Logger
	IdentityService IdentityServicer
	CatalogService  CatalogServicer
	ShipmentService ShipmentServicer
	LedgerService   LedgerServicer
	NotifyService   NotificationServicer
	JWTSecretKey    []byte
	// MetricsHandler отдает метрики по MetricsRoute. По умолчанию promhttp.Handler().
	MetricsHandler http.Handler
}

func New(args RouterArgs) (*gin.Engine, error) {
	if err := registerValidators(); err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	metricsHandler := args.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.GET(MetricsRoute, gin.WrapH(metricsHandler))

	identityHandler := NewIdentityHandler(args.IdentityService)
	catalogHandler := NewCatalogHandler(args.CatalogService, args.ShipmentService)
	shipmentsHandler := NewShipmentsHandler(args.ShipmentService)
	accountHandler := NewAccountHandler(args.LedgerService, args.NotifyService, args.ShipmentService)

	api := r.Group(RouteGroup)

	api.POST(ConnectRoute, identityHandler.Connect)

	api.Use(middlewares.AuthRequired(args.JWTSecretKey))
	// ниже все роуты группы требуют подключенного счета.
	api.GET(ProfileRoute, identityHandler.Profile)
	api.PUT(ProfileRoute, identityHandler.Register)
	api.GET(ProfileByAccountRoute, identityHandler.ProfileByAccount)
	api.POST(KycRoute, identityHandler.SubmitKyc)
	api.GET(AdminProfilesRoute, identityHandler.ListProfiles)
	api.PUT(AdminKycRoute, identityHandler.SetKyc)

	api.GET(CatalogRoute, catalogHandler.Index)
	api.POST(CatalogRoute, catalogHandler.Create)
	api.DELETE(CatalogItemRoute, catalogHandler.Delete)
	api.POST(PurchaseRoute, catalogHandler.Purchase)

	api.POST(ShipmentsRoute, shipmentsHandler.Create)
	api.GET(ShipmentsRoute, shipmentsHandler.Index)
	api.GET(ShipmentRoute, shipmentsHandler.Show)
	api.POST(DispatchRoute, shipmentsHandler.Dispatch)
	api.POST(ShipmentStatusRoute, shipmentsHandler.UpdateStatus)

	api.GET(BalanceRoute, accountHandler.Balance)
	api.GET(NotificationsRoute, accountHandler.Notifications)
	api.GET(StatsRoute, accountHandler.Stats)
	return r, nil
}
