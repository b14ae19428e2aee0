package main

import (
	auth "JTSim/internal/auth"
	jt "JTSim/internal/calc/jt"
	report "JTSim/internal/calc/report"
	sweep "JTSim/internal/calc/sweep"
	fluids "JTSim/internal/fluids"
	history "JTSim/internal/history"
	repo "JTSim/internal/repo"
	ws "JTSim/internal/ws"
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var wg sync.WaitGroup

var startTime = time.Now()

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, db *sql.DB) {
	limiter := auth.NewIPRateLimiter(1, 3)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	jtH := &jt.Handler{}
	sweepH := &sweep.Handler{}
	reportH := &report.Handler{}

	if db != nil {
		dbRepo := repo.NewPostgresDB(db)
		tokenKey := os.Getenv("TOKEN_KEY")
		if tokenKey == "" {
			log.Fatal("TOKEN_KEY environment variable is not set")
		}
		authEnv := &auth.Authenv{JWTkey: []byte(tokenKey), Repo: dbRepo}
		historyH := &history.Handler{Repo: dbRepo}
		jtH.Record = historyH.Record

		api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
		api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

		secureApi := api.PathPrefix("/user").Subrouter()
		secureApi.Use(authEnv.AuthMiddleware)
		secureApi.HandleFunc("/history", historyH.List).Methods("GET")

		// Authenticated calc path so Record sees the user id.
		secureApi.HandleFunc("/tools/jt/calc", jtH.Calc).Methods("POST")
	} else {
		log.Warn("DATABASE_URL not set, auth and history disabled")
	}

	api.HandleFunc("/tools/jt/calc", jtH.Calc).Methods("POST")
	api.HandleFunc("/tools/jt/fluids", jtH.Fluids).Methods("GET")
	api.HandleFunc("/tools/jt/sweep", sweepH.Calc).Methods("POST")
	api.HandleFunc("/tools/jt/sweep/xlsx", sweepH.Xlsx).Methods("POST")
	api.HandleFunc("/tools/jt/report/pdf", reportH.Generate).Methods("POST")

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
	wsServer := ws.NewServer(upgrader)
	mux.HandleFunc("/ws", wsServer.ServeWs)

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "ok %s", time.Since(startTime))
	})
	mux.Handle("/metrics", promhttp.Handler())
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := godotenv.Load(); err != nil {
		log.Info("no .env file, using process environment")
	}

	if path := os.Getenv("FLUIDS_INI"); path != "" {
		if err := fluids.LoadINI(path); err != nil {
			log.Fatal("fluid database overlay: ", err)
		}
		log.Info("fluid database overlay loaded from ", path)
	}

	db := auth.InitDB()
	if db != nil {
		defer db.Close()
	}

	mux := mux.NewRouter()
	HandleList(mux, db)
	handler := CORS(mux)

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("Starting server on ", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Shutdown signal received!")
	fmt.Println("Закрытие активных соединений")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Ошибка при остановке сервера: %v", err)
	}
	log.Info("Сервер успешно остановлен")

	wg.Wait()
}
