// Package analysis turns fetched articles into editorial HTML fragments
// using a generative model.
package analysis

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/unmaskedindia/press/internal/logger"
	"github.com/unmaskedindia/press/internal/metrics"
	"github.com/unmaskedindia/press/internal/rss"
)

const analystPrompt = `
You are a neutral, senior news analyst for "Unmasked India". Analyze the following article content.
1. Provide a factual, unbiased summary of the key events in about 150-200 words.
2. Explain the background of this issue in 2-3 simple points.
3. Present the main arguments from both sides (Pro and Con), if applicable.
4. Conclude with one open-ended, thought-provoking question (Manthan Point).
The final output must be in clear, accessible %s.
The summary should be in HTML paragraph tags <p>, and the Manthan Point in a paragraph with class 'manthan-point'.

Article Title: %s
Article Summary from RSS: %s
`

// Generator is the single generation call the analyzer depends on.
// *GeminiClient implements it; tests substitute a fake.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Analyzer struct {
	gen     Generator
	timeout time.Duration
}

func NewAnalyzer(gen Generator, timeout time.Duration) *Analyzer {
	return &Analyzer{gen: gen, timeout: timeout}
}

// BuildPrompt fills the analyst instruction template for one article.
func BuildPrompt(language, title, summary string) string {
	return fmt.Sprintf(analystPrompt, language, title, summary)
}

// AnalyzeAll runs every article through the model in order. A failed call
// is logged and the article is dropped; no placeholder fragment is emitted.
// The returned fragments keep the input order of the articles that succeeded.
func (a *Analyzer) AnalyzeAll(ctx context.Context, articles []rss.Article, language string) []string {
	logger.Info("starting analysis", "language", language, "articles", len(articles))

	fragments := make([]string, 0, len(articles))
	for _, article := range articles {
		fragment, err := a.analyzeOne(ctx, article, language)
		if err != nil {
			logger.Warn("analysis failed", "title", article.Title, "error", err)
			metrics.Global.IncrementAnalysesFailed()
			continue
		}
		fragments = append(fragments, fragment)
		metrics.Global.IncrementAnalysesCompleted()
		logger.Debug("analyzed article", "title", article.Title)
	}

	logger.Info("analysis done", "language", language, "fragments", len(fragments))
	return fragments
}

func (a *Analyzer) analyzeOne(ctx context.Context, article rss.Article, language string) (string, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	text, err := a.gen.Generate(ctx, BuildPrompt(language, article.Title, article.Summary))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty response")
	}

	return fmt.Sprintf("<h3>%s</h3>\n%s", html.EscapeString(article.Title), text), nil
}
