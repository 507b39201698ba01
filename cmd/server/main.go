package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Adilet2002/item-service/internal/config"
	"github.com/Adilet2002/item-service/internal/database"
	"github.com/Adilet2002/item-service/internal/handlers"
	"github.com/Adilet2002/item-service/internal/repository"
	"github.com/Adilet2002/item-service/internal/services"
	"github.com/Adilet2002/item-service/pkg/logger"
	"github.com/Adilet2002/item-service/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger(cfg.LogLevel)
	logger.Log.Info("Logger initialized")

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Index creation error: %v", err)
	}

	// --- Repositories ---
	itemRepo := repository.NewItemRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	wishListRepo := repository.NewWishListRepository(db)

	// --- Services ---
	itemService := services.NewItemService(itemRepo, categoryRepo, reviewRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	reviewService := services.NewReviewService(reviewRepo)
	wishListService := services.NewWishListService(wishListRepo)

	// --- Handlers ---
	itemHandler := handlers.NewItemHandler(itemService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	wishListHandler := handlers.NewWishListHandler(wishListService)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Item routes. Static prefixes are registered before the {id} routes so
	// mux resolves them first.
	itemRoutes := router.PathPrefix("/items").Subrouter()
	itemRoutes.HandleFunc("/top", itemHandler.GetTopRatedItemsHandler).Methods("GET")
	itemRoutes.HandleFunc("/category/{name}", itemHandler.GetItemsByCategoryHandler).Methods("GET")
	itemRoutes.HandleFunc("/brand/{name}", itemHandler.GetItemsByBrandHandler).Methods("GET")
	itemRoutes.HandleFunc("/search/{text}", itemHandler.SearchItemsHandler).Methods("GET")
	itemRoutes.HandleFunc("", itemHandler.GetItemsHandler).Methods("GET")
	itemRoutes.HandleFunc("", itemHandler.CreateItemHandler).Methods("POST")
	itemRoutes.HandleFunc("/{id}", itemHandler.GetItemHandler).Methods("GET")
	itemRoutes.HandleFunc("/{id}", itemHandler.UpdateItemHandler).Methods("PUT")
	itemRoutes.HandleFunc("/{id}", itemHandler.DeleteItemHandler).Methods("DELETE")

	// Category routes
	categoryRoutes := router.PathPrefix("/categories").Subrouter()
	categoryRoutes.HandleFunc("", categoryHandler.GetCategoriesHandler).Methods("GET")
	categoryRoutes.HandleFunc("", categoryHandler.CreateCategoryHandler).Methods("POST")
	categoryRoutes.HandleFunc("/{id}", categoryHandler.GetCategoryHandler).Methods("GET")
	categoryRoutes.HandleFunc("/{id}", categoryHandler.UpdateCategoryHandler).Methods("PUT")
	categoryRoutes.HandleFunc("/{id}", categoryHandler.DeleteCategoryHandler).Methods("DELETE")

	// Review routes
	reviewRoutes := router.PathPrefix("/reviews").Subrouter()
	reviewRoutes.HandleFunc("/item/{id}", reviewHandler.GetReviewsByItemHandler).Methods("GET")
	reviewRoutes.HandleFunc("", reviewHandler.GetReviewsHandler).Methods("GET")
	reviewRoutes.HandleFunc("", reviewHandler.CreateReviewHandler).Methods("POST")
	reviewRoutes.HandleFunc("/{id}", reviewHandler.GetReviewHandler).Methods("GET")
	reviewRoutes.HandleFunc("/{id}", reviewHandler.UpdateReviewHandler).Methods("PUT")
	reviewRoutes.HandleFunc("/{id}", reviewHandler.DeleteReviewHandler).Methods("DELETE")

	// WishList routes
	wishListRoutes := router.PathPrefix("/wishlists").Subrouter()
	wishListRoutes.HandleFunc("/user/{userId}", wishListHandler.GetWishListsByUserHandler).Methods("GET")
	wishListRoutes.HandleFunc("", wishListHandler.GetWishListsHandler).Methods("GET")
	wishListRoutes.HandleFunc("", wishListHandler.CreateWishListHandler).Methods("POST")
	wishListRoutes.HandleFunc("/{id}/addItem", wishListHandler.AddItemHandler).Methods("PUT")
	wishListRoutes.HandleFunc("/{id}/removeItem", wishListHandler.RemoveItemHandler).Methods("PUT")
	wishListRoutes.HandleFunc("/{id}", wishListHandler.GetWishListHandler).Methods("GET")
	wishListRoutes.HandleFunc("/{id}", wishListHandler.UpdateWishListHandler).Methods("PUT")
	wishListRoutes.HandleFunc("/{id}", wishListHandler.DeleteWishListHandler).Methods("DELETE")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Start the HTTP server
	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
