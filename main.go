package main

import (
	"log"
	"os"
	"time"

	"backend/config"
	"backend/controllers"
	"backend/ledger"
	"backend/middleware"
	"backend/repository"
	"backend/routes"
	"backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	gin.SetMode(gin.ReleaseMode)
	log.Printf("Running in %s mode", gin.Mode())

	r := gin.Default()

	middleware.InitMetrics()
	r.Use(middleware.PrometheusMiddleware())

	r.GET("/metrics", func(c *gin.Context) {
		if token := os.Getenv("METRICS_TOKEN"); token != "" && c.GetHeader("X-Metrics-Token") != token {
			c.AbortWithStatus(403)
			return
		}
		promhttp.Handler().ServeHTTP(c.Writer, c.Request)
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("FRONTEND_ORIGIN")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	config.ConnectDatabase()

	l := ledger.New(
		repository.NewStockRepository(config.ProductCollection),
		repository.NewSaleRepository(config.SaleCollection),
		repository.NewExchangeRepository(config.ExchangeCollection),
		repository.NewReservationRepository(config.ReservationCollection),
		repository.NewActorDirectory(config.UserCollection, config.WorkerCollection),
	)
	controllers.Init(l)

	s := gocron.NewScheduler(time.Local)
	s.Every(1).Day().At("21:30").Do(func() { utils.SendDailyCollectionsReport(l) })
	s.StartAsync()

	routes.InitializeRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "1414"
	}

	r.Run(":" + port)
}
