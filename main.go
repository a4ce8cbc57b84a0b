package main

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"photo-seo/api"
	"photo-seo/config"
	"photo-seo/exifmeta"
	"photo-seo/metrics"
	"photo-seo/process"
	"photo-seo/storage"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()

	catalog, err := config.LoadLocations(cfg.LocationsPath)
	if err != nil {
		logger.Fatal("failed to load location catalog", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	var recordDB storage.RecordDB
	if cfg.MongoURI != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		db, err := storage.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoColl)
		cancel()
		if err != nil {
			logger.Fatal("failed to connect to MongoDB", zap.Error(err))
		}
		defer db.Close(context.Background())
		recordDB = db
		logger.Info("record store connected", zap.String("database", cfg.MongoDatabase))
	} else {
		logger.Warn("MONGO_URI not set, photo records disabled")
	}

	handlers := &api.PhotoHandlers{
		Log:       logger,
		Processor: process.NewProcessor(exifmeta.NewWriter(), logger, appMetrics),
		Reader:    exifmeta.NewReader(),
		Catalog:   catalog,
		Storage: &storage.LocalPhotoStorage{
			Directory: cfg.OutputDir,
		},
		Db:           recordDB,
		SecretKey:    cfg.SecretKey,
		PasswordHash: cfg.PasswordHash,
	}

	mux := http.NewServeMux()
	handlers.ServeHTTP(mux)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	logger.Info("starting server", zap.String("addr", cfg.Addr))

	server := &http.Server{
		Addr:        cfg.Addr,
		Handler:     mux,
		ReadTimeout: 5 * time.Minute, // whole-batch uploads can be large
	}
	if err := server.ListenAndServe(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
