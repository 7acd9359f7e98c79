package http

import (
	_ "github.com/Maria-Yarosh/shop.project.SF/docs" // регистрация swagger-спецификации
	"github.com/Maria-Yarosh/shop.project.SF/internal/cfg"
	"github.com/Maria-Yarosh/shop.project.SF/internal/usecase"
	"github.com/Maria-Yarosh/shop.project.SF/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router   *chi.Mux
	logger   logger.Logger
	httpCfg  *cfg.HTTPConfig
	minioCfg *cfg.MinIOCfg // nil, если загрузка файлов отключена
}

func NewRouter(router *chi.Mux, logger logger.Logger, httpCfg *cfg.HTTPConfig, minioCfg *cfg.MinIOCfg) *Router {
	return &Router{router: router, logger: logger, httpCfg: httpCfg, minioCfg: minioCfg}
}

func (r *Router) Init(prUC usecase.ProductUC, cmUC usecase.CommentUC) {
	r.router.Use(middleware.RequestID)
	r.router.Use(middleware.RealIP)
	r.router.Use(middleware.Recoverer)
	r.router.Use(metricsMiddleware)
	r.router.Use(corsMiddleware(r.httpCfg.AllowedOrigins))

	r.router.Handle("/metrics", promhttp.Handler())
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	var (
		uploadLimit  int
		maxImageSize int64
	)
	if r.minioCfg != nil {
		uploadLimit = r.minioCfg.UploadImagesLimit
		maxImageSize = r.minioCfg.MaxImageSize
	}

	r.router.Route("/api", func(api chi.Router) {
		prHandler := NewProductHandler(prUC, r.logger, uploadLimit, maxImageSize)
		registerProductRoutes(api, prHandler, prUC.UploadsEnabled())

		cmHandler := NewCommentHandler(cmUC, r.logger)
		registerCommentRoutes(api, cmHandler, r.httpCfg.CommentsPerMin)
	})
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler, uploadsEnabled bool) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", prHandler.listProducts)
		pr.Post("/", prHandler.createProduct)
		pr.Get("/search", prHandler.searchProducts)

		pr.Post("/add-images", prHandler.addImages)
		pr.Post("/remove-images", prHandler.removeImages)
		pr.Post("/update-thumbnail/{id}", prHandler.updateThumbnail)

		pr.Get("/similar/{id}", prHandler.similarProducts)
		pr.Post("/add-similar", prHandler.addSimilar)
		pr.Post("/remove-similar", prHandler.removeSimilar)

		pr.Get("/{id}", prHandler.getProduct)
		pr.Patch("/{id}", prHandler.updateProduct)
		pr.Delete("/{id}", prHandler.deleteProduct)

		if uploadsEnabled {
			pr.Post("/{id}/images/upload", prHandler.uploadImages)
		}
	})
}

func registerCommentRoutes(router chi.Router, cmHandler *CommentHandler, commentsPerMin int) {
	router.Route("/comments", func(cm chi.Router) {
		cm.Get("/", cmHandler.listComments)
		cm.With(commentRateLimit(commentsPerMin)).Post("/", cmHandler.createComment)
		cm.Patch("/", cmHandler.updateComment)
		cm.Get("/{id}", cmHandler.getComment)
		cm.Delete("/{id}", cmHandler.deleteComment)
	})
}
