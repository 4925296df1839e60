package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"restaurant-pos/internal/app/dashboard"
	"restaurant-pos/internal/app/kitchen"
	"restaurant-pos/internal/app/orders"
	"restaurant-pos/internal/app/pos"
	"restaurant-pos/internal/common/config"
	"restaurant-pos/internal/common/logger"
)

func main() {
	mode := flag.String("mode", "", "pos-service | kitchen-board | orders-service | dashboard-service")
	port := flag.Int("port", 0, "http port for the selected service")
	cfgPath := flag.String("config", "", "path to config.yaml (default: auto-discover)")
	flag.Parse()

	lg := logger.New("bootstrap")
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	path := *cfgPath
	if path == "" {
		var err error
		if path, err = config.FindConfig(); err != nil {
			lg.Error("config_not_found", err, nil)
			os.Exit(1)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		lg.Error("config_load_failed", err, map[string]any{"path": path})
		os.Exit(1)
	}

	switch *mode {
	case "pos-service":
		if *port == 0 {
			*port = 3000
		}
		lg.Info("service_started", map[string]any{"service": "pos-service", "port": *port})
		if err := pos.Run(ctx, *port, cfg); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}
	case "kitchen-board":
		if *port == 0 {
			*port = 3001
		}
		lg.Info("service_started", map[string]any{"service": "kitchen-board", "port": *port})
		if err := kitchen.Run(ctx, *port, cfg); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}
	case "orders-service":
		if *port == 0 {
			*port = 3002
		}
		lg.Info("service_started", map[string]any{"service": "orders-service", "port": *port})
		if err := orders.Run(ctx, *port, cfg); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}
	case "dashboard-service":
		if *port == 0 {
			*port = 3003
		}
		lg.Info("service_started", map[string]any{"service": "dashboard-service", "port": *port})
		if err := dashboard.Run(ctx, *port, cfg); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "--mode is required: pos-service | kitchen-board | orders-service | dashboard-service")
		os.Exit(2)
	}
}
