package translate

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
	translatev2 "google.golang.org/api/translate/v2"
)

const defaultBatchSize = 100

// GoogleTranslator uses the Cloud Translation v2 API.
type GoogleTranslator struct {
	svc       *translatev2.Service
	batchSize int
	timeout   time.Duration
	logger    *zap.Logger
}

// NewGoogleTranslator creates a translator from cfg. Extra client options
// are applied after the ones derived from cfg.
func NewGoogleTranslator(ctx context.Context, cfg Config, logger *zap.Logger, opts ...option.ClientOption) (*GoogleTranslator, error) {
	var clientOpts []option.ClientOption
	if cfg.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(cfg.Endpoint))
	}
	clientOpts = append(clientOpts, opts...)

	svc, err := translatev2.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create translation client: %w", err)
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	return &GoogleTranslator{
		svc:       svc,
		batchSize: batchSize,
		timeout:   time.Duration(cfg.TimeoutSeconds) * time.Second,
		logger:    logger,
	}, nil
}

type languagePair struct {
	source string
	target string
}

// Translate sends the requests grouped by language pair and chunked by batch
// size. A failed chunk fails only its own items.
func (g *GoogleTranslator) Translate(ctx context.Context, requests []Request) ([]Result, error) {
	results := make([]Result, len(requests))

	var pairs []languagePair
	groups := make(map[languagePair][]int)
	for i, req := range requests {
		results[i].Key = req.Key
		pair := languagePair{source: googleLanguage(req.SourceLang), target: googleLanguage(req.TargetLang)}
		if _, ok := groups[pair]; !ok {
			pairs = append(pairs, pair)
		}
		groups[pair] = append(groups[pair], i)
	}

	for _, pair := range pairs {
		indexes := groups[pair]
		for start := 0; start < len(indexes); start += g.batchSize {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			end := min(start+g.batchSize, len(indexes))
			chunk := indexes[start:end]

			texts := make([]string, len(chunk))
			for j, idx := range chunk {
				texts[j] = requests[idx].Text
			}

			translated, err := g.translateChunk(ctx, pair, texts)
			if err != nil {
				g.logger.Warn("Translation batch failed",
					zap.String("source", pair.source),
					zap.String("target", pair.target),
					zap.Int("size", len(chunk)),
					zap.Error(err))
				for _, idx := range chunk {
					results[idx].Err = err
				}
				continue
			}

			for j, idx := range chunk {
				results[idx].Text = translated[j]
			}
			g.logger.Debug("Translation batch done",
				zap.String("source", pair.source),
				zap.String("target", pair.target),
				zap.Int("size", len(chunk)))
		}
	}

	return results, nil
}

func (g *GoogleTranslator) translateChunk(ctx context.Context, pair languagePair, texts []string) ([]string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := g.svc.Translations.Translate(&translatev2.TranslateTextRequest{
		Q:      texts,
		Source: pair.source,
		Target: pair.target,
		Format: "text",
	}).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	if len(resp.Translations) != len(texts) {
		return nil, fmt.Errorf("got %d translations for %d texts", len(resp.Translations), len(texts))
	}

	out := make([]string, len(texts))
	for i, tr := range resp.Translations {
		out[i] = tr.TranslatedText
	}
	return out, nil
}

// googleLanguage maps a locale to a Cloud Translation v2 language code.
// Chinese is sent as zh-CN or zh-TW depending on script and region, Portugal
// keeps pt-PT, and every other locale is reduced to its base language.
// Tags that do not parse are sent unchanged.
func googleLanguage(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return locale
	}
	base, script, region := tag.Raw()

	switch base.String() {
	case "zh":
		switch {
		case script.String() == "Hant":
			return "zh-TW"
		case script.String() == "Hans":
			return "zh-CN"
		}
		switch region.String() {
		case "TW", "HK", "MO":
			return "zh-TW"
		}
		return "zh-CN"
	case "pt":
		if region.String() == "PT" {
			return "pt-PT"
		}
	}
	return base.String()
}
