package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"gghubblog/cmd/app"
	"gghubblog/internal/config"
	handlers "gghubblog/internal/handler"
	"gghubblog/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, services, postsCache := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(services, db, postsCache, cfg)

	requireAuth := middleware.RequireAuth(services.Auth)
	optionalAuth := middleware.OptionalAuth(services.Auth)

	router := mux.NewRouter()

	// setting up routes
	router.HandleFunc("/health", handler.HealthHandler).Methods(http.MethodGet)

	router.HandleFunc("/register", handler.Register).Methods(http.MethodPost)
	router.HandleFunc("/login", handler.Login).Methods(http.MethodPost)
	router.HandleFunc("/status", requireAuth(handler.AuthStatus)).Methods(http.MethodGet)

	router.HandleFunc("/profile/{id}", optionalAuth(handler.GetProfile)).Methods(http.MethodGet)
	router.HandleFunc("/profile/{id}", requireAuth(handler.UpdateProfile)).Methods(http.MethodPatch)

	router.HandleFunc("/posts", handler.GetPosts).Methods(http.MethodGet)
	router.HandleFunc("/posts/create", requireAuth(handler.CreatePost)).Methods(http.MethodPost)
	router.HandleFunc("/posts/option/{id}", requireAuth(handler.ToggleOption)).Methods(http.MethodPatch)
	router.HandleFunc("/posts/{id}", handler.GetPost).Methods(http.MethodGet)
	router.HandleFunc("/posts/{id}", requireAuth(handler.UpdatePost)).Methods(http.MethodPatch)
	router.HandleFunc("/posts/{id}", requireAuth(handler.DeletePost)).Methods(http.MethodDelete)

	router.HandleFunc("/posts/{id}/comments", handler.GetComments).Methods(http.MethodGet)
	router.HandleFunc("/posts/{id}/comments", requireAuth(handler.AddComment)).Methods(http.MethodPost)
	router.HandleFunc("/comments/{id}", requireAuth(handler.DeleteComment)).Methods(http.MethodDelete)

	router.HandleFunc("/upload", handler.UploadFile).Methods(http.MethodPost)
	router.HandleFunc("/upload/userbanner/{id}", requireAuth(handler.UploadBanner)).Methods(http.MethodPost)

	handlerChain := middleware.Chain(
		router,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware(cfg),
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Сервер запущен на %s\n", addr)
	fmt.Printf("База данных: %s\n", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
