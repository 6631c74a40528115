// Package app wires the full newspaper pipeline: fetch feeds, analyze
// articles, assemble the page and render the PDF, once per edition.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/unmaskedindia/press/internal/analysis"
	"github.com/unmaskedindia/press/internal/config"
	"github.com/unmaskedindia/press/internal/logger"
	"github.com/unmaskedindia/press/internal/metrics"
	"github.com/unmaskedindia/press/internal/paper"
	"github.com/unmaskedindia/press/internal/pdf"
	"github.com/unmaskedindia/press/internal/rss"
	"github.com/unmaskedindia/press/internal/sponsor"
)

// documentRenderer is what the edition loop needs from the PDF stage.
// *pdf.Renderer implements it.
type documentRenderer interface {
	Render(html, outputPath string) error
}

// Run executes the whole pipeline. It returns an error only for startup
// failures; a failed edition is logged and the remaining editions still run.
func Run() error {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	editions, err := rss.LoadEditions(cfg.EditionsConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load editions config: %w", err)
	}

	// Sponsors load once and are shared read-only across editions.
	gold, silver, err := sponsor.Load(cfg.SponsorsPath)
	if err != nil {
		return err
	}
	logger.Info("loaded sponsors", "gold", len(gold.Sponsors()), "silver", len(silver.Sponsors()))

	ctx := context.Background()

	client, err := analysis.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return err
	}
	defer client.Close()
	analyzer := analysis.NewAnalyzer(client, cfg.RequestTimeout)

	assembler, err := paper.NewAssembler(cfg.TemplatePath, cfg.Timezone)
	if err != nil {
		return err
	}
	renderer := pdf.NewRenderer(cfg.StylesheetPath)

	start := time.Now()
	defer func() {
		metrics.Global.RecordRunDuration(time.Since(start))
		metrics.Global.SetLastRun()
	}()

	runEditions(ctx, cfg, editions, analyzer, assembler, renderer, gold, silver)
	return nil
}

// runEditions runs every edition in order. An edition failure never stops
// the editions after it.
func runEditions(ctx context.Context, cfg *config.Config, editions []rss.Edition,
	analyzer *analysis.Analyzer, assembler *paper.Assembler, renderer documentRenderer,
	gold, silver sponsor.Tier) {

	for _, edition := range editions {
		logger.Info("starting edition", "language", edition.Language, "output", edition.Output)
		if err := runEdition(ctx, cfg, edition, analyzer, assembler, renderer, gold, silver); err != nil {
			logger.Error("edition failed", "language", edition.Language, "error", err)
			metrics.Global.IncrementEditionsFailed()
			metrics.Global.SetError(err.Error())
			continue
		}
		metrics.Global.IncrementEditionsCompleted()
	}
}

func runEdition(ctx context.Context, cfg *config.Config, edition rss.Edition,
	analyzer *analysis.Analyzer, assembler *paper.Assembler, renderer documentRenderer,
	gold, silver sponsor.Tier) error {

	articles := rss.FetchArticles(edition.Feeds, cfg.PerSourceLimit, cfg.MaxArticles)
	if len(articles) == 0 {
		logger.Warn("no articles fetched, skipping edition", "language", edition.Language)
		return nil
	}

	fragments := analyzer.AnalyzeAll(ctx, articles, edition.Language)

	document, err := assembler.Assemble(fragments, gold, silver, edition.BodyClass)
	if err != nil {
		return err
	}

	return renderer.Render(document, edition.Output)
}
