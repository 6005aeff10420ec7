package routes

import (
	"archivio/internal/handlers"
	"archivio/internal/middleware"

	"github.com/gorilla/mux"
)

func InitRoutes(
	router *mux.Router,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	documentHandler *handlers.DocumentHandler,
	tagRequestHandler *handlers.TagRequestHandler,
	moderationHandler *handlers.ModerationHandler,
	relationHandler *handlers.RelationHandler,
	collectionHandler *handlers.CollectionHandler,
	commentHandler *handlers.CommentHandler,
	favouritesHandler *handlers.FavouritesHandler,
	adminHandler *handlers.AdminHandler,
) {
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Logging)

	api := router.PathPrefix("/api").Subrouter()

	// --- Публичные маршруты ---
	api.HandleFunc("/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/refresh", authHandler.Refresh).Methods("POST")

	api.HandleFunc("/documents", documentHandler.PublishedDocuments).Methods("GET")
	api.HandleFunc("/tags", tagRequestHandler.AllTags).Methods("GET")

	// --- Защищённые JWT ---
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.JWTAuth(jwtSecret))
	protected.Use(middleware.AdminFastLane)

	protected.HandleFunc("/profile", authHandler.Profile).Methods("GET")

	protected.HandleFunc("/documents", documentHandler.CreateDocument).Methods("POST")
	protected.HandleFunc("/documents/my", documentHandler.OwnDocuments).Methods("GET")
	protected.HandleFunc("/documents/search", documentHandler.SearchDocuments).Methods("GET")
	protected.HandleFunc("/documents/{id:[0-9]+}", documentHandler.GetDocument).Methods("GET")
	protected.HandleFunc("/documents/{id:[0-9]+}", documentHandler.DeleteDocument).Methods("DELETE")

	protected.HandleFunc("/documents/{id:[0-9]+}/publish-request", documentHandler.AskForPublication).Methods("POST")
	protected.HandleFunc("/publish-requests/my", documentHandler.OwnPublishRequests).Methods("GET")

	protected.HandleFunc("/documents/{id:[0-9]+}/tag-requests/add", tagRequestHandler.RequestAddExistingTag).Methods("POST")
	protected.HandleFunc("/documents/{id:[0-9]+}/tag-requests/add-new", tagRequestHandler.RequestAddNewTag).Methods("POST")
	protected.HandleFunc("/documents/{id:[0-9]+}/tag-requests/remove", tagRequestHandler.RequestRemoveTag).Methods("POST")
	protected.HandleFunc("/documents/{id:[0-9]+}/tag-requests", tagRequestHandler.DocumentTagRequests).Methods("GET")
	protected.HandleFunc("/tag-requests/my", tagRequestHandler.OwnTagRequests).Methods("GET")

	protected.HandleFunc("/documents/{id:[0-9]+}/relations", relationHandler.DocumentRelations).Methods("GET")
	protected.HandleFunc("/relations", relationHandler.AddRelation).Methods("POST")
	protected.HandleFunc("/relations", relationHandler.RemoveRelation).Methods("DELETE")
	protected.HandleFunc("/relations", relationHandler.UpdateRelationType).Methods("PATCH")
	protected.HandleFunc("/relations/confirm", relationHandler.ConfirmRelation).Methods("PATCH")

	protected.HandleFunc("/collections", collectionHandler.CreateCollection).Methods("POST")
	protected.HandleFunc("/collections/my", collectionHandler.OwnCollections).Methods("GET")
	protected.HandleFunc("/collections/{id:[0-9]+}", collectionHandler.DeleteCollection).Methods("DELETE")
	protected.HandleFunc("/collections/{id:[0-9]+}/documents", collectionHandler.CollectionDocuments).Methods("GET")
	protected.HandleFunc("/collections/{id:[0-9]+}/documents/{doc_id:[0-9]+}", collectionHandler.AddDocument).Methods("POST")
	protected.HandleFunc("/collections/{id:[0-9]+}/documents/{doc_id:[0-9]+}", collectionHandler.RemoveDocument).Methods("DELETE")

	protected.HandleFunc("/documents/{id:[0-9]+}/comments", commentHandler.WriteComment).Methods("POST")
	protected.HandleFunc("/documents/{id:[0-9]+}/comments", commentHandler.DocumentComments).Methods("GET")

	protected.HandleFunc("/favourites/documents", favouritesHandler.Documents).Methods("GET")
	protected.HandleFunc("/favourites/documents/{id:[0-9]+}", favouritesHandler.AddDocument).Methods("POST")
	protected.HandleFunc("/favourites/documents/{id:[0-9]+}", favouritesHandler.RemoveDocument).Methods("DELETE")
	protected.HandleFunc("/favourites/collections", favouritesHandler.Collections).Methods("GET")
	protected.HandleFunc("/favourites/collections/{id:[0-9]+}", favouritesHandler.AddCollection).Methods("POST")
	protected.HandleFunc("/favourites/collections/{id:[0-9]+}", favouritesHandler.RemoveCollection).Methods("DELETE")

	// --- Модераторские маршруты (админу открыты фастлейном) ---
	moderation := protected.PathPrefix("/moderation").Subrouter()
	moderation.Use(middleware.AnyRole("moderator", "admin"))
	moderation.HandleFunc("/tag-requests", moderationHandler.PendingTagRequests).Methods("GET")
	moderation.HandleFunc("/tag-requests/history", moderationHandler.TagRequestHistory).Methods("GET")
	moderation.HandleFunc("/tag-requests/{id:[0-9]+}", moderationHandler.DecideTagRequest).Methods("POST")
	moderation.HandleFunc("/publish-requests", moderationHandler.PendingPublishRequests).Methods("GET")
	moderation.HandleFunc("/publish-requests/history", moderationHandler.PublishRequestHistory).Methods("GET")
	moderation.HandleFunc("/publish-requests/{id:[0-9]+}", moderationHandler.DecidePublishRequest).Methods("POST")

	// --- Админские маршруты ---
	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.OnlyRole("admin"))
	admin.HandleFunc("/users", adminHandler.GetUsers).Methods("GET")
	admin.HandleFunc("/users/search", adminHandler.GetUserByEmail).Methods("GET")
	admin.HandleFunc("/users/{id:[0-9]+}", adminHandler.GetUserByID).Methods("GET")
	admin.HandleFunc("/users/{id:[0-9]+}", adminHandler.DeleteUser).Methods("DELETE")
	admin.HandleFunc("/users/{id:[0-9]+}/moderator", adminHandler.SetModerator).Methods("PATCH")
	admin.HandleFunc("/documents", adminHandler.GetDocuments).Methods("GET")
	admin.HandleFunc("/collections", adminHandler.GetCollections).Methods("GET")
	admin.HandleFunc("/collections/{id:[0-9]+}", adminHandler.DeleteCollection).Methods("DELETE")
	admin.HandleFunc("/comments", adminHandler.GetComments).Methods("GET")
	admin.HandleFunc("/comments/{id:[0-9]+}", adminHandler.DeleteComment).Methods("DELETE")
	admin.HandleFunc("/tags", adminHandler.SeedTag).Methods("POST")
}
