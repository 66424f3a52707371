// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"farelink/internal/ai"
	"farelink/internal/booking"
	"farelink/internal/config"
	httptransport "farelink/internal/http"
	"farelink/internal/infra"
	"farelink/internal/maps"
	"farelink/internal/modules/conversation"
	"farelink/internal/modules/quota"
	"farelink/internal/modules/tripspec"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.AI.GeminiKey == "" {
		log.Fatal("GEMINI_API_KEY is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	extractor, err := ai.NewGeminiExtractor(ctx, cfg.AI.GeminiKey)
	if err != nil {
		log.Fatalf("gemini init: %v", err)
	}
	defer extractor.Close()

	var resolver conversation.AirportResolver
	if cfg.Maps.APIKey != "" {
		airportSvc, err := maps.NewAirportService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
		resolver = airportSvc
	}

	codec := booking.NewCodec(booking.Config{
		BaseURL:        cfg.Partner.BaseURL,
		DeepLinkScheme: cfg.Partner.DeepLinkScheme,
		Currency:       cfg.Partner.Currency,
		Market:         cfg.Partner.Market,
		AffiliateID:    cfg.Partner.AffiliateID,
		UTMSource:      cfg.Partner.UTMSource,
		UTMMedium:      cfg.Partner.UTMMedium,
		UTMCampaign:    cfg.Partner.UTMCampaign,
	})

	quotaSvc := quota.NewService(quota.NewStore(dbPool))

	convSvc := conversation.NewService(conversation.ServiceDeps{
		Conversations: conversation.NewStore(dbPool),
		Specs:         tripspec.NewStore(dbPool),
		Extractor:     extractor,
		Locker:        infra.NewTurnLock(redisClient),
		Credits:       quotaSvc,
		Resolver:      resolver,
		Codec:         codec,
		Validator:     &tripspec.Validator{MinDaysAhead: cfg.Trip.MinDaysAhead},
		Policy:        tripspec.KindPolicyByName(cfg.Trip.KindPolicy),
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: httptransport.NewRouter(convSvc)}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
