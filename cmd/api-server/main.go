package main

import (
	"net/http"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"gorm.io/gorm"

	"github.com/stockquest/api-server/internals/ledger"
	"github.com/stockquest/api-server/internals/market"
	"github.com/stockquest/api-server/internals/scoring"
	"github.com/stockquest/api-server/pkg/conf"
	"github.com/stockquest/api-server/pkg/kvstore"
)

type App struct {
	DB       *gorm.DB
	R        *chi.Mux
	WS       map[*websocket.Conn]WSDetails
	ClientsM sync.Mutex
	KVStore  kvstore.KVStore
	Ch       *amqp.Channel
	Cfg      *viper.Viper
	Log      *logrus.Logger

	Market  *market.MarketService
	Ledger  *ledger.LedgerService
	Scoring *scoring.ScoringService
}

func main() {
	cfg := conf.Config(".")

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	conn, err := amqp.Dial(cfg.GetString("amqp.url"))
	failOnError(err, "Failed to connect to RabbitMQ")
	defer conn.Close()

	ch, err := conn.Channel()
	failOnError(err, "Failed to open a channel")
	defer ch.Close()

	app := &App{
		WS:  make(map[*websocket.Conn]WSDetails),
		Ch:  ch,
		Cfg: cfg,
		Log: log,
	}

	db, err := app.initDB()
	if err != nil {
		log.WithError(err).Fatal("could not connect to postgres")
	}

	r := chi.NewRouter()
	// CORS middleware configuration
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"}, // Your frontend URL
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}).Handler)

	app.DB = db
	app.R = r

	app.initKVStore()
	app.initServices()
	app.initHandlers()

	// The external scoring pipeline publishes score events on a fanout
	// exchange; every api-server instance gets its own ephemeral queue.
	err = ch.ExchangeDeclare(
		"scores", // name
		"fanout", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	failOnError(err, "Failed to declare an exchange")

	q, err := ch.QueueDeclare(
		"",    // name
		false, // durable
		false, // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	failOnError(err, "Failed to declare a queue")

	err = ch.QueueBind(
		q.Name,   // queue name
		"",       // routing key
		"scores", // exchange
		false,
		nil,
	)
	failOnError(err, "Failed to bind a queue")

	msgs, err := ch.Consume(
		q.Name, // queue
		"",     // consumer
		true,   // auto-ack
		false,  // exclusive
		false,  // no-local
		false,  // no-wait
		nil,    // args
	)
	failOnError(err, "Failed to register a consumer")

	go func() {
		for d := range msgs {
			app.ScorePicker(d.Body)
		}
	}()

	addr := cfg.GetString("server.addr")
	log.WithField("addr", addr).Info("api-server listening")

	server := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
