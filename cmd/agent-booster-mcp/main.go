// Command agent-booster-mcp serves internal/booster over the Model
// Context Protocol on stdio (SPEC_FULL.md §6.2).
package main

import (
	"context"
	"log"

	"github.com/mvp-joe/agent-booster/internal/booster"
	"github.com/mvp-joe/agent-booster/internal/config"
	"github.com/mvp-joe/agent-booster/internal/mcpserver"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("agent-booster-mcp: load config: %v", err)
	}

	engine := booster.New(booster.Config{
		PrefilterThreshold: cfg.PrefilterThreshold,
		PrefilterTopK:      cfg.PrefilterTopK,
	})

	srv := mcpserver.New(engine)
	if err := srv.Serve(context.Background()); err != nil {
		log.Fatalf("agent-booster-mcp: %v", err)
	}
}
