package rss

import (
	"fmt"
	"os"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"github.com/unmaskedindia/press/internal/logger"
	"github.com/unmaskedindia/press/internal/metrics"
)

// Article is one feed entry reduced to what the analysis stage needs.
// Summary is the raw feed description and may contain HTML.
type Article struct {
	Title   string
	Summary string
	Link    string
}

// Edition describes one language run of the newspaper.
// BodyClass is empty for the default language; a non-empty value is
// added to <body> so the stylesheet can switch typography.
type Edition struct {
	Language  string   `yaml:"language"`
	BodyClass string   `yaml:"body_class"`
	Output    string   `yaml:"output"`
	Feeds     []string `yaml:"feeds"`
}

// EditionsConfig is the YAML config structure
// editions:
//   - language: English
//     output: Unmasked_India_EN.pdf
//     feeds:
//       - https://...
type EditionsConfig struct {
	Editions []Edition `yaml:"editions"`
}

// LoadEditions reads the ordered edition list from a YAML file.
func LoadEditions(path string) ([]Edition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg EditionsConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	if len(cfg.Editions) == 0 {
		return nil, fmt.Errorf("no editions configured in %s", path)
	}
	return cfg.Editions, nil
}

// FetchArticles downloads and parses all feeds in order, taking at most
// perSource entries from the top of each feed and at most maxTotal overall.
// A feed that fails to fetch or parse is logged and skipped; relative order
// of everything else is preserved.
func FetchArticles(urls []string, perSource, maxTotal int) []Article {
	parser := gofeed.NewParser()
	var articles []Article
	successCount := 0

	for _, url := range urls {
		feed, err := parser.ParseURL(url)
		if err != nil {
			logger.Warn("failed to parse feed", "url", url, "error", err)
			metrics.Global.IncrementFeedFailures()
			continue // skip this source, keep the run going
		}

		items := feed.Items
		if len(items) > perSource {
			items = items[:perSource]
		}
		for _, item := range items {
			articles = append(articles, Article{
				Title:   item.Title,
				Summary: item.Description,
				Link:    item.Link,
			})
		}
		successCount++
		logger.Info("loaded feed", "url", url, "items", len(feed.Items), "kept", len(items))
	}

	if len(articles) > maxTotal {
		articles = articles[:maxTotal]
	}

	metrics.Global.AddArticlesFetched(len(articles))
	logger.Info("fetched articles", "total", len(articles), "feeds_ok", successCount, "feeds", len(urls))
	return articles
}
