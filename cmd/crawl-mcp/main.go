package main

import (
	"flag"

	"github.com/mark3labs/mcp-go/server"
	"github.com/peterkuimelis/cardcrawl/internal/combat"
	"github.com/peterkuimelis/cardcrawl/internal/config"
	"github.com/peterkuimelis/cardcrawl/internal/content"
	crawlmcp "github.com/peterkuimelis/cardcrawl/internal/mcp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	hero := flag.String("hero", cfg.Hero, "default hero for start_run")
	dir := flag.String("content", cfg.ContentDir, "content directory (empty for built-in content)")
	flag.Parse()

	logger, err := cfg.NewLogger()
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	defer logger.Sync()

	reg, err := content.NewLoader(logger).LoadDir(*dir)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	engine := combat.NewEngine(reg, combat.WithLogger(logger), combat.WithHandSize(cfg.HandSize))

	s := server.NewMCPServer("cardcrawl", "1.0.0")
	crawlmcp.NewHandler(engine, logger, *hero, cfg.RunSeed).RegisterTools(s)

	logger.Info("serving on stdio", zap.String("hero", *hero))
	if err := server.ServeStdio(s); err != nil {
		config.Exitf("Error: %v", err)
	}
}
