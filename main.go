package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handlers"
	"backend/internal/middleware"
	"backend/internal/store"
)

func main() {
	cfg := config.Load()

	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(cfg.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureAddressIndexes(db); err != nil {
		log.Printf("address index warning: %v", err)
	}

	users := store.NewMongoUserStore(db)
	addresses := store.NewMongoAddressStore(db)
	contacts := store.NewMongoContactStore(db)

	r := gin.Default()
	r.Use(cors.Default())

	authRequired := middleware.RequireUser(cfg.JWTSecret)

	api := r.Group("/api")
	{
		api.POST("/signup", handlers.Signup(users, cfg.JWTSecret, cfg.TokenTTL))
		api.POST("/login", handlers.Login(users, cfg.JWTSecret, cfg.TokenTTL))
		api.GET("/users/me", authRequired, handlers.GetMe(users))
		api.PUT("/update", authRequired, handlers.UpdateMe(users))
		api.PUT("/change-password", authRequired, handlers.ChangePassword(users))

		api.POST("/addresses/add", authRequired, handlers.AddAddress(addresses))
		api.GET("/addresses", authRequired, handlers.ListAddresses(addresses))

		api.POST("/contact", handlers.SubmitContact(contacts))
	}

	r.Static("/assets", "./dist/assets")
	r.NoRoute(handlers.SPAFallback("./dist"))

	r.Run(":" + cfg.Port)
}
