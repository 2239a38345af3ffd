// Command tail streams workflow analytics events from the NATS bus to
// stdout. Useful for watching a bot's conversations during development
// without querying the analytics table.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"chatbot-flow-be/internal/config"
	pktNats "chatbot-flow-be/pkg/nats"
)

func main() {
	subject := flag.String("subject", "events.>", "subject pattern to tail")
	durable := flag.String("durable", "analytics-tail", "durable consumer name")
	flag.Parse()

	cfg := config.Load()

	sub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Fatalf("connect to NATS: %v", err)
	}
	defer sub.Close()

	err = sub.Subscribe(*subject, *durable, func(ctx context.Context, subject string, payload map[string]interface{}) error {
		line, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		fmt.Printf("%s %s\n", subject, line)
		return nil
	})
	if err != nil {
		log.Fatalf("subscribe: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
}
