package main

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/retronet/feedranker/event"
	"github.com/retronet/feedranker/ranking"
	"github.com/retronet/feedranker/server"
	"github.com/retronet/feedranker/server/middlewares"
	"github.com/retronet/feedranker/store"
	"github.com/retronet/feedranker/utils"
	"github.com/retronet/feedranker/utils/dotenv"
	Flag "github.com/retronet/feedranker/utils/flag"
	Logger "github.com/retronet/feedranker/utils/log"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
)

func cleanup() {
	utils.CloseProfiler()
	utils.CloseTracer()
	Logger.Log.Info("feed api server shutdown")
}

func loadConfig() ranking.Config {
	if *Flag.ConfigPath == "" {
		return ranking.DefaultConfig()
	}
	config, err := ranking.ParseConfigFile(*Flag.ConfigPath)
	if err != nil {
		Logger.Log.Fatal("cannot load ranking config: ", err)
	}
	return config
}

func main() {
	defer cleanup()

	Flag.Parse()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	// Re-init so the logger picks up the parsed service name.
	Logger.InitLogger()

	utils.StartTracer()
	utils.StartProfiler()
	middlewares.Setup()

	config := loadConfig()

	db, err := utils.GetDBConnection()
	if err != nil {
		Logger.Log.Fatal("cannot connect to DB: ", err)
	}
	utils.DatabaseSetupAndMigration(db)

	dataStore := store.NewStore(db)
	trendingCache := store.NewRedisTrendingCache(utils.GetRedisClient())

	interest := ranking.NewInterestGenerator(dataStore, dataStore, config)
	friend := ranking.NewFriendGenerator(dataStore, dataStore, config)
	trending := ranking.NewTrendingGenerator(dataStore, trendingCache, config)
	composer := ranking.NewComposer(interest, friend, trending, dataStore, config)
	updater := ranking.NewProfileUpdater(dataStore, dataStore, dataStore, config)

	bus := event.NewBus()
	subscriber := event.NewProfileSubscriber(updater, bus)
	go func() {
		if err := subscriber.Run(context.Background()); err != nil {
			Logger.Log.Error("profile subscriber stopped: ", err)
		}
	}()

	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()

	router.Use(cors.Default())
	router.Use(gintrace.Middleware(*Flag.ServiceName))
	router.Use(middlewares.Metrics())

	handlers := server.NewHandlers(composer, trending, dataStore, bus)
	router.GET("/api/users/:id/feed", handlers.GetFeed)
	router.GET("/api/trending", handlers.GetTrending)
	router.POST("/api/users/:id/interactions", handlers.PostInteraction)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	Logger.Log.Info("feed api server starts up")
	router.Run(":8080")
}
