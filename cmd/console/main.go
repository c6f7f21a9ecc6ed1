package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Leopold1975/signage_control/internal/pkg/config"
	"github.com/Leopold1975/signage_control/internal/signage/app"
	"github.com/Leopold1975/signage_control/internal/signage/domain/models"
)

func main() {
	var (
		configPath string
		collection string
		op         app.ConsoleOp
	)

	flag.StringVar(&configPath, "config", "", "path to configuration file")
	flag.StringVar(&op.Name, "op", "", "create, update, toggle or delete")
	flag.StringVar(&collection, "collection", "", "slides, rates, news or exchange-rates")
	flag.StringVar(&op.ID, "id", "", "record id for update, toggle and delete")
	flag.StringVar(&op.Body, "body", "", "JSON body for create and update")
	flag.Parse()

	cfg, err := config.New(configPath)
	if err != nil {
		log.Fatal(err)
	}

	op.Collection, err = models.ParseCollection(collection)
	if err != nil {
		log.Fatalf("%s: %q", err, collection)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.RunConsole(ctx, cfg, op); err != nil {
		log.Println(err)
		os.Exit(1) //nolint:gocritic
	}
}
