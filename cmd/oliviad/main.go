// Command oliviad wires a seed, an in-memory store, the oracle engine,
// the ingress dispatcher and the observer together and runs them
// until interrupted. It takes no flags and reads no configuration
// file: it exists to prove the pieces assemble, not as the product's
// CLI surface (that is an external concern, per the core's scope).
package main

import (
	"context"
	"crypto/rand"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/olivia-oracle/olivia/crypto"
	"github.com/olivia-oracle/olivia/event"
	"github.com/olivia-oracle/olivia/ingress"
	"github.com/olivia-oracle/olivia/metrics"
	"github.com/olivia-oracle/olivia/observer"
	"github.com/olivia-oracle/olivia/oracle"
	"github.com/olivia-oracle/olivia/store/memstore"
)

const schemaVersion = 1

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("oliviad: failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	seed, secretKey, err := newIdentity()
	if err != nil {
		logger.Fatal("failed to generate oracle identity", zap.Error(err))
	}

	m := metrics.New(nil)
	obs := observer.NewBroadcaster(m)
	port := memstore.New()
	engine := oracle.New(seed, secretKey, schemaVersion, port,
		oracle.WithObserver(obs), oracle.WithMetrics(m), oracle.WithLogger(logger))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := engine.Init(ctx); err != nil {
		logger.Fatal("oracle identity mismatch at startup", zap.Error(err))
	}
	logger.Info("oracle initialized", zap.String("public_key", pubKeyHex(engine.PublicKey())))

	notifications, unsubscribe := obs.Subscribe()
	defer unsubscribe()
	go logNotifications(logger, notifications)

	records := make(chan ingress.Record, 16)
	dispatcher := ingress.New(engine, []ingress.SourceConfig{
		{Name: "demo", PathPrefix: event.RootPath, Source: ingress.NewChannelSource(records)},
	}, ingress.WithMetrics(m), ingress.WithLogger(logger))

	go seedDemoTicker(records)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutting down")
		cancel()
	}()

	dispatcher.Run(ctx)
	logger.Info("oliviad exiting")
}

func newIdentity() (crypto.Seed, crypto.SecretKey, error) {
	var seed crypto.Seed
	if _, err := rand.Read(seed[:]); err != nil {
		return crypto.Seed{}, crypto.SecretKey{}, err
	}
	var skBytes [32]byte
	for {
		if _, err := rand.Read(skBytes[:]); err != nil {
			return crypto.Seed{}, crypto.SecretKey{}, err
		}
		sk, err := crypto.NewSecretKey(skBytes)
		if err == nil {
			return seed, sk, nil
		}
	}
}

func pubKeyHex(pub crypto.PublicKey) string {
	b := pub.Bytes()
	const hexDigits = "0123456789abcdef"
	out := make([]byte, 0, len(b)*2)
	for _, v := range b {
		out = append(out, hexDigits[v>>4], hexDigits[v&0x0f])
	}
	return string(out)
}

func logNotifications(logger *zap.Logger, ch <-chan observer.Notification) {
	for n := range ch {
		kind := "created"
		if n.Kind == observer.EventAttested {
			kind = "attested"
		}
		logger.Info("event notification", zap.String("kind", kind), zap.String("event_id", n.ID.String()))
	}
}

// seedDemoTicker pushes a single time-ticker event and its outcome
// through the demo ingress source, the end-to-end scenario from the
// testable-properties section: announce, then attest one second later.
func seedDemoTicker(records chan<- ingress.Record) {
	id := "/time/2026-07-29T00:00:00.occur"
	records <- ingress.Record{Event: &ingress.EventRecord{
		ID:                  id,
		ExpectedOutcomeTime: "2026-07-29T00:00:00Z",
	}}
	time.Sleep(time.Second)
	records <- ingress.Record{Outcome: &ingress.OutcomeRecord{ID: id, Outcome: "true"}}
}
