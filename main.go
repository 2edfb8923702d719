// go_youtube: quota-aware YouTube Data API MCP server.
//
// Exposes six read-only MCP tools: channel resolution, channel video listing
// (uploads playlist, local sort, search), in-channel search, playlists,
// playlist videos and comment threads.
// Runs as HTTP MCP server or stdio transport.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/anatolykoptev/go_youtube/internal/engine"
	"github.com/anatolykoptev/go_youtube/internal/telemetry"
	"github.com/anatolykoptev/go_youtube/internal/ytserver"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var (
	version = "dev"
	mcpPort string
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("load .env failed", slog.Any("error", err))
	}
	mcpPort = env.Str("MCP_PORT", "8895")

	initEngine()
	shutdownTracing := initTracing()
	defer shutdownTracing()

	slog.Info("starting go_youtube",
		slog.String("port", mcpPort),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_youtube",
		Version: version,
	}, nil)

	ytserver.RegisterTools(server)
	slog.Info("tools registered", slog.Int("count", ytserver.ToolCount))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_youtube",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 120 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() {
	timeout := env.Duration("YOUTUBE_HTTP_TIMEOUT", 10*time.Second)
	c := engine.Config{
		YouTubeAPIKey:  env.Str("YOUTUBE_API_KEY", ""),
		YouTubeAPIBase: env.Str("YOUTUBE_API_BASE", ""),
		HTTPTimeout:    timeout,
		RequestsPerSec: env.Float("YOUTUBE_RPS", 0),
		Retry: engine.RetryConfig{
			MaxRetries:  env.Int("YOUTUBE_MAX_RETRIES", engine.DefaultRetryConfig.MaxRetries),
			InitialWait: env.Duration("YOUTUBE_INITIAL_BACKOFF", engine.DefaultRetryConfig.InitialWait),
			MaxWait:     env.Duration("YOUTUBE_MAX_BACKOFF", engine.DefaultRetryConfig.MaxWait),
			Multiplier:  engine.DefaultRetryConfig.Multiplier,
		},
		MaxVideos:     env.Int("QUOTA_MAX_VIDEOS", 200),
		MaxPages:      env.Int("QUOTA_MAX_PAGES", 10),
		MaxQuotaUnits: env.Int("QUOTA_MAX_UNITS", 1000),
		HTTPClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}
	engine.Init(c)

	if c.YouTubeAPIKey == "" {
		slog.Warn("YOUTUBE_API_KEY is not set, tool calls will fail until it is configured")
	}
}

// initTracing exports ytapi spans when OTEL_EXPORTER_OTLP_ENDPOINT or
// OTEL_TRACES_EXPORTER is set. The returned func flushes pending spans.
func initTracing() func() {
	endpoint := env.Str("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	exporter := telemetry.ExporterNone
	if endpoint != "" {
		exporter = telemetry.ExporterOTLP
	}
	exporter = env.Str("OTEL_TRACES_EXPORTER", exporter)

	shutdown, err := telemetry.Init(context.Background(), telemetry.Config{
		ServiceName:    "go_youtube",
		ServiceVersion: version,
		Exporter:       exporter,
		OTLPEndpoint:   endpoint,
		OTLPInsecure:   env.Str("OTEL_EXPORTER_OTLP_INSECURE", "true") == "true",
	})
	if err != nil {
		slog.Warn("tracing disabled", slog.Any("error", err))
	} else if exporter != telemetry.ExporterNone {
		slog.Info("tracing enabled", slog.String("exporter", exporter))
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			slog.Warn("tracer shutdown failed", slog.Any("error", err))
		}
	}
}
