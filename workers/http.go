package workers

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"goteleportbridge/config"
	"goteleportbridge/workers/handlers"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	log "github.com/sirupsen/logrus"
)

// signal to other threads/workers to exit
var WorkerShutdown = false

func Worker_HTTP() {
	log.Printf("Starting HTTP service")

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Options("/*", CORSHeaders)

	r.Get("/state", handlers.State)
	r.Get("/health", handlers.HealthCheck)

	// read-only table access
	r.Get("/stats", handlers.GetStats)
	r.Get("/chains", handlers.GetChains)
	r.Get("/oracles", handlers.GetOracles)
	r.Get("/deposits", handlers.GetDeposits)
	r.Get("/deposits/{account}", handlers.GetDeposit)
	r.Get("/receipts", handlers.GetReceipts)
	r.Get("/receipts/{id}", handlers.GetReceipt)
	r.Get("/receipts/ref/{chainID}/{ref}", handlers.GetReceiptByRef)
	r.Get("/teleports", handlers.GetTeleports)
	r.Get("/teleports/{id}", handlers.GetTeleport)
	r.Get("/transfers/{status}", handlers.GetTransfers)
	r.Get("/balance/evm/{chainID}", handlers.BalanceEVM)
	r.Get("/balance/token", handlers.BalanceToken)

	// user actions
	r.Post("/teleport", handlers.Teleport)
	r.Post("/withdraw", handlers.Withdraw)
	r.Post("/cancel", handlers.Cancel)
	r.Post("/payoracles", handlers.PayOracles)

	// oracle actions
	r.Post("/received", handlers.Received)
	r.Post("/sign", handlers.Sign)
	r.Post("/claimed", handlers.Claimed)

	// owner actions
	r.Post("/admin/ini", handlers.Initialize)
	r.Post("/admin/chains", handlers.AddChain)
	r.Delete("/admin/chains/{id}", handlers.RemoveChain)
	r.Post("/admin/oracles", handlers.RegisterOracle)
	r.Delete("/admin/oracles/{oracle}", handlers.UnregisterOracle)
	r.Post("/admin/min", handlers.SetMinimum)
	r.Post("/admin/fee", handlers.SetFee)
	r.Post("/admin/threshold", handlers.SetThreshold)
	r.Post("/admin/freeze", handlers.SetFreeze)
	r.Post("/admin/receipts/repair", handlers.RepairReceipt)
	r.Delete("/admin/receipts", handlers.DeleteReceipts)
	r.Delete("/admin/teleports", handlers.DeleteTeleports)

	// token-ledger transfer notification callback
	r.Post("/notify/transfer", handlers.NotifyTransfer)

	var server *http.Server

	if config.Config.Server.UseSSL {
		cert, _ := tls.LoadX509KeyPair("certchain.pem", "privatekey.pem")
		server = &http.Server{
			Addr:    ":443",
			Handler: r,
			TLSConfig: &tls.Config{
				Certificates: []tls.Certificate{cert},
				MinVersion:   tls.VersionTLS12,
			},
		}
	} else {
		server = &http.Server{
			Addr:    fmt.Sprintf(":%d", config.Config.Server.Port),
			Handler: r,
		}
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if config.Config.Server.UseSSL {
			if err := server.ListenAndServeTLS("", ""); err != nil && err != http.ErrServerClosed {
				log.Fatalf("error listening to: %s", err)
			}
		} else {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("error listening to: %s", err)
			}
		}
	}()
	log.Print("HTTP service started")

	<-done
	log.Print("HTTP service stopped")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer func() {
		cancel()
	}()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP service shutdown error: %+v", err)
	}
	log.Print("HTTP service shutdown normal")

	WorkerShutdown = true
}

func CORSHeaders(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
	w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Origin, X-Requested-With")
}
