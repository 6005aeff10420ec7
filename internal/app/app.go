package app

import (
	"archivio/internal/config"
	"archivio/internal/db"
	"archivio/internal/handlers"
	"archivio/internal/repository"
	"archivio/internal/routes"
	"archivio/internal/services"

	"github.com/gorilla/mux"
)

func InitApp(cfg *config.Config) (*mux.Router, error) {
	pool, err := db.NewPostgresConnection(cfg)
	if err != nil {
		return nil, err
	}

	// Репозитории
	userRepo := repository.NewUserRepository(pool)
	docRepo := repository.NewDocumentRepository(pool)
	tagRepo := repository.NewTagRepository(pool)
	tagRequestRepo := repository.NewTagRequestRepository(pool)
	publishRequestRepo := repository.NewPublishRequestRepository(pool)
	relationRepo := repository.NewRelationRepository(pool)
	collectionRepo := repository.NewCollectionRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	txManager := repository.NewTxManager(pool)

	// Сервисы
	authService := services.NewAuthService(userRepo)
	docService := services.NewDocumentService(docRepo, userRepo)
	tagWorkflow := services.NewTagWorkflowService(userRepo, docRepo, tagRepo, tagRequestRepo, txManager)
	publishWorkflow := services.NewPublishWorkflowService(userRepo, docRepo, publishRequestRepo, txManager)
	tagCatalog := services.NewTagCatalogService(tagRepo)
	relationService := services.NewRelationService(relationRepo, docRepo)
	collectionService := services.NewCollectionService(collectionRepo)
	commentService := services.NewCommentService(commentRepo, docRepo)
	favouritesService := services.NewFavouritesService(userRepo)
	adminService := services.NewAdminService(userRepo, docRepo, collectionRepo, commentRepo)

	// Хендлеры
	authHandler := handlers.NewAuthHandler(authService)
	docHandler := handlers.NewDocumentHandler(docService, publishWorkflow)
	tagRequestHandler := handlers.NewTagRequestHandler(tagWorkflow, tagCatalog)
	moderationHandler := handlers.NewModerationHandler(tagWorkflow, publishWorkflow)
	relationHandler := handlers.NewRelationHandler(relationService)
	collectionHandler := handlers.NewCollectionHandler(collectionService)
	commentHandler := handlers.NewCommentHandler(commentService)
	favouritesHandler := handlers.NewFavouritesHandler(favouritesService)
	adminHandler := handlers.NewAdminHandler(adminService, tagCatalog)

	// Маршруты
	router := mux.NewRouter()
	routes.InitRoutes(
		router,
		cfg.JWTSecret,
		authHandler,
		docHandler,
		tagRequestHandler,
		moderationHandler,
		relationHandler,
		collectionHandler,
		commentHandler,
		favouritesHandler,
		adminHandler,
	)

	return router, nil
}
