package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Abraxas-365/hireboard/internal/ai"
	"github.com/Abraxas-365/hireboard/internal/config"
	"github.com/Abraxas-365/hireboard/internal/devserver"
	"github.com/Abraxas-365/hireboard/pkg/logx"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
)

func main() {
	flags := pflag.NewFlagSet("devserver", pflag.ExitOnError)
	envFile := flags.String("env", ".env", "dotenv file to load")
	port := flags.StringP("port", "p", "", "port to listen on (default DEVSERVER_PORT)")
	noSeed := flags.Bool("no-seed", false, "start with an empty store")
	quiet := flags.BoolP("quiet", "q", false, "disable the request log")
	_ = flags.Parse(os.Args[1:])

	// 1. Configuration and logger
	cfg, err := config.Load(*envFile)
	if err != nil {
		logx.Fatalf("Invalid configuration: %v", err)
	}
	logx.SetOutput(os.Stderr, true)
	logx.SetLevel(logx.ParseLevel(cfg.LogLevel))
	logx.Info("Starting Hireboard dev API...")

	if *port == "" {
		*port = cfg.DevServer.Port
	}

	// 2. Assist engine
	var engine ai.Engine = ai.Heuristic{}
	if cfg.DevServer.OpenAIKey != "" {
		engine = ai.NewOpenAI(cfg.DevServer.OpenAIKey)
		logx.Info("AI assist backed by OpenAI")
	}

	// 3. Resume analysis queue
	var queue devserver.Queue
	if cfg.DevServer.Queue == "redis" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		defer rdb.Close()
		q := devserver.NewRedisQueue(rdb, "hireboard:resume-analysis")
		if err := q.Ping(context.Background()); err != nil {
			logx.Fatalf("Redis unreachable at %s: %v", cfg.Redis.Addr, err)
		}
		queue = q
		logx.Infof("Resume analysis queued in Redis at %s", cfg.Redis.Addr)
	}

	// 4. Server
	srv := devserver.New(devserver.Config{
		JWTSecret: cfg.DevServer.JWTSecret,
		Engine:    engine,
		Seed:      cfg.DevServer.Seed && !*noSeed,
		AccessLog: !*quiet,
		Queue:     queue,
		Workers:   cfg.DevServer.Workers,
	})
	if cfg.DevServer.Seed && !*noSeed {
		logx.Infof("Demo accounts: %s / %s and %s / %s",
			devserver.DemoSeekerEmail, devserver.DemoPassword,
			devserver.DemoEmployerEmail, devserver.DemoPassword)
	}

	go func() {
		logx.Infof("Server listening on port %s", *port)
		if err := srv.Listen(":" + *port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c
	logx.Info("Shutting down server...")

	if err := srv.Shutdown(); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	logx.Info("Server exited")
}
