package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"
	log "github.com/sirupsen/logrus"

	config "github.com/avvvet/match-services/configs"
	mongodb "github.com/avvvet/match-services/internal/db"
	"github.com/avvvet/match-services/internal/matchsvc/archive"
	"github.com/avvvet/match-services/internal/matchsvc/broker"
	"github.com/avvvet/match-services/internal/matchsvc/db"
	handlers "github.com/avvvet/match-services/internal/matchsvc/handlers"
	"github.com/avvvet/match-services/internal/matchsvc/models"
	"github.com/avvvet/match-services/internal/matchsvc/service"
	"github.com/avvvet/match-services/internal/matchsvc/session"
	"github.com/avvvet/match-services/internal/matchsvc/store"
	nats "github.com/avvvet/match-services/internal/nats"
)

const SERVICE_NAME = "match"

var instanceId string

func init() {
	instanceId = "001"
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func main() {

	// pg connection
	dbpool, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.ClosePool()
	log.Printf("pg connection established successfully")

	gameStore := store.NewGameStore(dbpool)
	gameService := service.NewGameService(gameStore)

	periodStore := store.NewPeriodStore(dbpool)
	periodService := service.NewPeriodService(periodStore)

	stoppageStore := store.NewStoppageStore(dbpool)
	stoppageService := service.NewStoppageService(stoppageStore)

	subStore := store.NewSubstitutionStore(dbpool)
	subService := service.NewSubstitutionService(subStore)

	playerStore := store.NewPlayerStore(dbpool)
	playerService := service.NewPlayerService(playerStore)

	eventStore := store.NewEventStore(dbpool)
	eventService := service.NewEventService(eventStore)

	matchStore := service.NewMatchStore(gameService, periodService, stoppageService,
		subService, playerService, eventService)

	// Connect to NATS
	n, err := nats.Connect()
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(0)
	}

	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	// optional mongo archive for finished matches
	var archiver *archive.Writer
	if os.Getenv("MONGODB_URI") != "" {
		mdb, cancelMongo, err := mongodb.ConnectToDB()
		if err != nil {
			log.Errorf("Error: unable to connect to archive store %v", err)
		} else {
			defer cancelMongo()
			if err := mongodb.CreateTTLIndexForCollection(mdb, archive.Collection); err != nil {
				log.Warnf("unable to ensure archive TTL index: %v", err)
			}
			archiver = archive.NewWriter(mdb, 365*24*time.Hour)
			log.Printf("archive store connection established successfully")
		}
	}

	// one session per live game; stage changes fan out to socket clients and,
	// at the final whistle, into the archive
	var sessions *session.Manager
	var b *broker.Broker
	sessions = session.NewManager(matchStore, session.WithStatusHook(
		func(gameID int64, status string, stage session.Stage) {
			b.PublishStageChange(gameID, status, stage)
			if status != models.GameCompleted || archiver == nil {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			sess, err := sessions.Get(ctx, gameID)
			if err != nil {
				log.Errorf("Error archiving game %d: %v", gameID, err)
				return
			}
			if err := archiver.ArchiveMatch(ctx, sess.Snapshot()); err != nil {
				log.Errorf("Error archiving game %d: %v", gameID, err)
			}
		}))

	// init peer message broker
	b = broker.NewBroker(n.Conn, sessions)

	// subscribe to socket service
	topic := "socket.service"
	sub, err := b.SubscribSocketService(topic)
	if err != nil {
		log.Errorf("Error: unable to subscribe to queue %v", err)
		os.Exit(0)
	}

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	rateLimitStr := os.Getenv("RATE_LIMIT")
	rateLimit, err := strconv.Atoi(rateLimitStr)
	if err != nil {
		log.Fatalf("Invalid RATE_LIMIT value: %v", err)
	}
	r.Use(httprate.LimitByIP(rateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(sessions)
	h.InitAuth()
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + os.Getenv("MATCH_SERVICE_PORT"),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	sub.Unsubscribe()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
