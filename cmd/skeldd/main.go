package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/skeldnet/skeld/internal/core/geometry"
	"github.com/skeldnet/skeld/internal/core/observability/log"
	"github.com/skeldnet/skeld/internal/core/tasks"
	"github.com/skeldnet/skeld/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "skeldd:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	config, err := server.LoadConfigFile(configPath)
	if err != nil {
		return err
	}

	logger := log.New(config.LogLevel)

	pool, world := buildGame(logger)

	srv, err := server.New(config, pool, world, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := srv.Start(ctx); err != nil {
		return err
	}

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-stopCh

	cancel()
	return srv.Stop()
}

// buildGame assembles the built-in map and its tasks.
func buildGame(logger log.Log) (*tasks.Pool, *server.World) {
	pool := tasks.NewPool(logger)

	wiring := tasks.New("fix wiring", &tasks.Calibrator{
		Target: geometry.NewPolygon(
			geometry.V(0, 2), geometry.V(0, -2),
			geometry.V(-4, -2), geometry.V(-4, 2),
		),
		Steps: 3,
	})
	upload := tasks.New("upload data", &tasks.Upload{})
	pool.Add(wiring)
	pool.Add(upload)

	world := server.NewWorld(geometry.NewPolygon(
		geometry.V(-60, -40), geometry.V(60, -40),
		geometry.V(60, 40), geometry.V(-60, 40),
	))
	world.AddZone(server.Zone{
		Name: "electrical",
		Area: geometry.NewPolygon(
			geometry.V(10, -30), geometry.V(30, -30),
			geometry.V(30, -10), geometry.V(10, -10),
		),
		TaskID: wiring.ID(),
	})
	world.AddZone(server.Zone{
		Name: "admin",
		Area: geometry.NewPolygon(
			geometry.V(-30, 10), geometry.V(-10, 10),
			geometry.V(-10, 30), geometry.V(-30, 30),
		),
		TaskID: upload.ID(),
	})
	world.AddVent(geometry.NewCircle(geometry.V(40, 20), 1.5))
	world.AddVent(geometry.NewCircle(geometry.V(-40, -20), 1.5))

	return pool, world
}
