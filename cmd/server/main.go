package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"github.com/jerrymart/quickmart/internal/adapter/handler"
	"github.com/jerrymart/quickmart/internal/adapter/storage"
	"github.com/jerrymart/quickmart/internal/config"
	"github.com/jerrymart/quickmart/internal/core/service"
	"github.com/jerrymart/quickmart/internal/port"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	taxRate, err := cfg.ParsedTaxRate()
	if err != nil {
		log.Fatalf("bad tax rate: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional transaction journal
	var journal port.JournalRepository
	var db *sql.DB
	if cfg.MySQLDSN != "" {
		db, err = sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatalf("failed to open mysql: %v", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
		if err := db.PingContext(ctx); err != nil {
			log.Fatalf("failed to ping mysql: %v", err)
		}
		journal = storage.NewMySQLJournal(db)
		log.Println("connected to mysql journal")
	}

	// Sequence source: Redis when configured, otherwise process-local
	var seq port.SequenceRepository
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		seq = storage.NewRedisSequence(rdb)
		log.Println("using redis transaction sequence")
	} else {
		seq = storage.NewMemorySequence()
	}

	catalogText, err := storage.LoadCatalogText(cfg.InventoryPath)
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}

	codec := storage.NewTextCodec()
	archive := storage.NewFileArchive(cfg.ReceiptDir, cfg.InventoryPath)

	checkout := service.NewCheckoutService(catalogText, taxRate, codec, seq, cfg.QueueSize)

	// A default register so single-register setups need no session call
	sess, err := checkout.CreateSession()
	if err != nil {
		log.Fatalf("failed to open register session: %v", err)
	}
	log.Printf("register session ready: %s (%d catalog items)", sess.ID(), len(sess.AvailableItems()))

	// Persistence worker pool
	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			workerLoop(id, checkout.Artifacts(), journal, archive)
		}(i)
	}
	log.Printf("started %d persistence workers", cfg.Workers)

	httpHandler := handler.NewHTTPHandler(checkout)
	mux := http.NewServeMux()
	httpHandler.Register(mux)

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: mux,
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	log.Println("HTTP server stopped")

	checkout.Close()
	wg.Wait()
	log.Println("workers stopped")

	if rdb != nil {
		rdb.Close()
	}
	if db != nil {
		db.Close()
	}
	log.Println("connections closed")
}

// workerLoop drains completed sales: journal first, then receipt file, then
// the inventory snapshot. Persistence failures are logged and never undo
// the sale.
func workerLoop(id int, queue <-chan service.Artifact, journal port.JournalRepository, archive port.ArchiveRepository) {
	for a := range queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

		if journal != nil {
			if err := journal.RecordTransaction(ctx, a.Transaction); err != nil {
				log.Printf("worker %d: failed to journal transaction %06d: %v", id, a.Transaction.Sequence, err)
			}
		}
		if err := archive.SaveReceipt(a.Transaction, a.Receipt); err != nil {
			log.Printf("worker %d: failed to save receipt %06d: %v", id, a.Transaction.Sequence, err)
		}
		if err := archive.SaveInventorySnapshot(a.InventorySnapshot); err != nil {
			log.Printf("worker %d: failed to save inventory snapshot: %v", id, err)
		} else {
			log.Printf("worker %d: archived transaction %06d", id, a.Transaction.Sequence)
		}

		cancel()
	}
}
