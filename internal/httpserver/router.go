package httpserver

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"fayclick/internal/domain"
	cartsvc "fayclick/internal/service/cart"
	"fayclick/internal/service/checkout"
	clientsvc "fayclick/internal/service/client"
	productsvc "fayclick/internal/service/product"
	quotesvc "fayclick/internal/service/quote"
)

type authService interface {
	Login(ctx context.Context, login, password string) (*domain.User, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, current, next string) error
	Logout(ctx context.Context, token string) error
	AccessTTLSeconds() int
}

type productService interface {
	List(ctx context.Context, structureID string) ([]domain.Product, error)
	Get(ctx context.Context, structureID, id string) (*domain.Product, error)
	Create(ctx context.Context, structureID string, in productsvc.Input) (*domain.Product, error)
	Update(ctx context.Context, structureID, id string, in productsvc.Input) (*domain.Product, error)
	Delete(ctx context.Context, structureID, id string) error
	AdjustStock(ctx context.Context, structureID, id string, delta int) (*domain.Product, error)
}

type clientService interface {
	List(ctx context.Context, structureID string) ([]domain.Client, error)
	Get(ctx context.Context, structureID, id string) (*domain.Client, error)
	Create(ctx context.Context, structureID string, in clientsvc.Input) (*domain.Client, error)
	Update(ctx context.Context, structureID, id string, in clientsvc.Input) (*domain.Client, error)
	Delete(ctx context.Context, structureID, id string) error
}

type quoteService interface {
	Create(ctx context.Context, structureID, clientID string, lines []quotesvc.LineInput) (*domain.Quote, error)
	Get(ctx context.Context, structureID, id string) (*domain.Quote, error)
	List(ctx context.Context, structureID string) ([]domain.Quote, error)
	Send(ctx context.Context, structureID, id string) (*domain.Quote, error)
	Accept(ctx context.Context, structureID, id string) (*domain.Quote, error)
	Reject(ctx context.Context, structureID, id string) (*domain.Quote, error)
	ConvertToInvoice(ctx context.Context, structureID, id string) (*domain.Invoice, error)
}

type invoiceReader interface {
	GetByID(ctx context.Context, structureID, id string) (*domain.Invoice, error)
	ListByStructure(ctx context.Context, structureID string, limit int) ([]domain.Invoice, error)
	ListUnsettled(ctx context.Context, structureID string) ([]domain.Invoice, error)
}

type checkoutService interface {
	CheckoutCash(ctx context.Context, structureID, cartID string, clientID *string, cashReceived int64) (*domain.Receipt, error)
	StartWallet(ctx context.Context, structureID, cartID string, method domain.PaymentMethod, phone string, clientID *string) (*checkout.WalletStatus, error)
	Status(structureID, paymentID string) (*checkout.WalletStatus, error)
	Cancel(structureID, paymentID string) error
	RetryEncashment(ctx context.Context, structureID, paymentID string) (*checkout.WalletStatus, error)
}

type featureGate interface {
	CanSell(ctx context.Context, structureID string) (bool, error)
	Subscription(ctx context.Context, structureID string) (*domain.Subscription, error)
}

// Deps bundles everything the router needs.
type Deps struct {
	Auth        authService
	Products    productService
	Clients     clientService
	Quotes      quoteService
	Invoices    invoiceReader
	Checkout    checkoutService
	Gate        featureGate
	Carts       *cartsvc.Store
	CORSOrigins []string
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(deps.CORSOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = deps.CORSOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	v1 := router.Group("/api/v1")
	v1.POST("/auth/login", loginHandler(deps.Auth))

	authed := v1.Group("")
	authed.Use(authMiddleware(deps.Auth))
	{
		authed.POST("/auth/logout", logoutHandler(deps.Auth))
		authed.GET("/auth/me", meHandler)
		authed.POST("/auth/password", changePasswordHandler(deps.Auth))

		authed.GET("/subscription", subscriptionHandler(deps.Gate))

		authed.GET("/products", listProductsHandler(deps.Products))
		authed.POST("/products", createProductHandler(deps.Products))
		authed.GET("/products/:id", getProductHandler(deps.Products))
		authed.PUT("/products/:id", updateProductHandler(deps.Products))
		authed.DELETE("/products/:id", deleteProductHandler(deps.Products))
		authed.POST("/products/:id/stock", adjustStockHandler(deps.Products))

		authed.GET("/clients", listClientsHandler(deps.Clients))
		authed.POST("/clients", createClientHandler(deps.Clients))
		authed.GET("/clients/:id", getClientHandler(deps.Clients))
		authed.PUT("/clients/:id", updateClientHandler(deps.Clients))
		authed.DELETE("/clients/:id", deleteClientHandler(deps.Clients))

		authed.GET("/quotes", listQuotesHandler(deps.Quotes))
		authed.POST("/quotes", createQuoteHandler(deps.Quotes))
		authed.GET("/quotes/:id", getQuoteHandler(deps.Quotes))
		authed.POST("/quotes/:id/send", quoteTransitionHandler(deps.Quotes, "send"))
		authed.POST("/quotes/:id/accept", quoteTransitionHandler(deps.Quotes, "accept"))
		authed.POST("/quotes/:id/reject", quoteTransitionHandler(deps.Quotes, "reject"))

		authed.GET("/invoices", listInvoicesHandler(deps.Invoices))
		authed.GET("/invoices/unsettled", listUnsettledHandler(deps.Invoices))
		authed.GET("/invoices/:id", getInvoiceHandler(deps.Invoices))

		authed.POST("/carts", createCartHandler(deps.Carts))
		authed.GET("/carts/:id", getCartHandler(deps.Carts))
		authed.DELETE("/carts/:id", destroyCartHandler(deps.Carts))
		authed.POST("/carts/:id/lines", addCartLineHandler(deps.Carts, deps.Products))
		authed.PATCH("/carts/:id/lines/:productId", updateCartLineHandler(deps.Carts))
		authed.DELETE("/carts/:id/lines/:productId", removeCartLineHandler(deps.Carts))
		authed.PUT("/carts/:id/discount", setDiscountHandler(deps.Carts))

		// Selling is gated on an active subscription.
		gated := authed.Group("")
		gated.Use(requireActiveSubscription(deps.Gate))
		{
			gated.POST("/checkout/cash", checkoutCashHandler(deps.Checkout))
			gated.POST("/checkout/wallet", startWalletHandler(deps.Checkout))
			gated.POST("/quotes/:id/convert", convertQuoteHandler(deps.Quotes))
		}

		// Status reads and cancellation stay available after expiry so an
		// in-flight payment can still conclude.
		authed.GET("/checkout/wallet/:paymentId", walletStatusHandler(deps.Checkout))
		authed.DELETE("/checkout/wallet/:paymentId", cancelWalletHandler(deps.Checkout))
		authed.POST("/checkout/wallet/:paymentId/retry-encashment", retryEncashmentHandler(deps.Checkout))
	}

	return router, nil
}
