package main

import (
	"os"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"taskboard/render"
	"taskboard/storage"
	"taskboard/web"
)

func main() {
	if dbg, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil && dbg {
		log.SetLevel(log.DebugLevel)
	}

	renderer, err := render.New()
	if err != nil {
		log.Fatalf("render: %v", err)
	}

	store := storage.New()
	logger := log.New()

	var emitter web.Emitter
	if redisConn := os.Getenv("REDIS_CONNECTION_STRING"); redisConn != "" {
		redisOpts, err := redis.ParseURL(redisConn)
		if err != nil {
			log.Fatalf("invalid REDIS_CONNECTION_STRING: %v", err)
		}
		re := web.NewRedisEmitter(redis.NewClient(redisOpts), logger, web.EmitterConfig{
			Queue:          os.Getenv("TELEMETRY_QUEUE"),
			Workers:        envInt("TELEMETRY_WORKERS", 2),
			Buffer:         envInt("TELEMETRY_BUFFER", 1024),
			HandoffTimeout: envDur("TELEMETRY_HANDOFF_TIMEOUT", 5*time.Millisecond),
		})
		defer re.Close()
		emitter = re
	}

	e := echo.New()
	e.Use(middleware.Recover())

	web.Register(e, store, renderer, emitter, logger)

	listenAddr := ":8080"
	if val, ok := os.LookupEnv("PORT"); ok {
		listenAddr = ":" + val
	}

	e.Logger.Fatal(e.Start(listenAddr))
}

func envInt(name string, def int) int {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Fatalf("invalid %s: %s", name, v)
	}
	return n
}

func envDur(name string, def time.Duration) time.Duration {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		log.Fatalf("invalid %s: %s", name, v)
	}
	return d
}
