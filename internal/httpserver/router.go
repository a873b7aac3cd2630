package httpserver

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookstore-api/internal/domain"
	bookrepo "bookstore-api/internal/repository/book"
	statsrepo "bookstore-api/internal/repository/stats"
	booksvc "bookstore-api/internal/service/book"
	cartsvc "bookstore-api/internal/service/cart"
	ordersvc "bookstore-api/internal/service/order"
	sessionsvc "bookstore-api/internal/service/session"
)

// CartEngine is the cart surface the handlers consume.
type CartEngine interface {
	Load(ctx context.Context, owner domain.OwnerKey) (*domain.Cart, error)
	AddItem(ctx context.Context, owner domain.OwnerKey, bookID string, quantity int) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, owner domain.OwnerKey, bookID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, owner domain.OwnerKey, bookID string) (*domain.Cart, error)
	Clear(ctx context.Context, owner domain.OwnerKey) (*domain.Cart, error)
	Merge(ctx context.Context, userID, sessionID string, guestItems []cartsvc.MergeItem) (*domain.Cart, error)
}

// OrderDesk is the order-submission surface the handlers consume.
type OrderDesk interface {
	Submit(ctx context.Context, in ordersvc.SubmitInput) (*domain.Order, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Order, error)
}

// Catalog is the book surface the handlers consume.
type Catalog interface {
	Create(ctx context.Context, in booksvc.Input) (*domain.Book, error)
	GetByID(ctx context.Context, id string) (*domain.Book, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Book, error)
	List(ctx context.Context, filter bookrepo.ListFilter) ([]domain.Book, error)
	Update(ctx context.Context, id string, in booksvc.Input) (*domain.Book, error)
	Delete(ctx context.Context, id string) error
}

type StatsProvider interface {
	Overview(ctx context.Context) (*statsrepo.Overview, error)
}

type SessionIssuer interface {
	Issue() sessionsvc.Session
	Validate(id string) error
}

// Deps carries the injected services; handlers never reach for ambient state.
type Deps struct {
	CartSvc    CartEngine
	OrderSvc   OrderDesk
	BookSvc    Catalog
	StatsSvc   StatsProvider
	SessionSvc SessionIssuer
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(corsConfig(corsOrigins)))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")

	api.POST("/session", issueSessionHandler(deps.SessionSvc))

	cart := api.Group("/cart", ownerMiddleware(deps.SessionSvc))
	cart.GET("", getCartHandler(deps.CartSvc))
	cart.POST("/add", addToCartHandler(deps.CartSvc))
	cart.PUT("/update/:bookId", updateQuantityHandler(deps.CartSvc))
	cart.DELETE("/remove/:bookId", removeFromCartHandler(deps.CartSvc))
	cart.DELETE("/clear", clearCartHandler(deps.CartSvc))
	api.POST("/cart/merge", mergeCartHandler(deps.CartSvc))

	api.POST("/orders", ownerMiddleware(deps.SessionSvc), submitOrderHandler(deps.OrderSvc, deps.CartSvc))
	api.GET("/orders/email/:email", listOrdersHandler(deps.OrderSvc, deps.BookSvc))

	api.POST("/books/create-book", createBookHandler(deps.BookSvc))
	api.GET("/books", listBooksHandler(deps.BookSvc))
	api.GET("/books/:id", getBookHandler(deps.BookSvc))
	api.PUT("/books/edit/:id", updateBookHandler(deps.BookSvc))
	api.DELETE("/books/:id", deleteBookHandler(deps.BookSvc))

	api.GET("/admin/stats", statsHandler(deps.StatsSvc))

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", "X-User-Id", "X-Session-Id")
	return cfg
}
