// Package elasticsearch creates verified go-elasticsearch clients.
package elasticsearch

import (
	"context"
	"fmt"
	"io"
	"strings"

	es "github.com/elastic/go-elasticsearch/v8"

	"github.com/Sahil-memane/urban-resource-harmony-sub000/infrastructure/logger"
	"github.com/Sahil-memane/urban-resource-harmony-sub000/infrastructure/retry"
)

// NewClient creates a client and pings the cluster, retrying with backoff.
func NewClient(ctx context.Context, cfg Config, log logger.Logger) (*es.Client, error) {
	cfg.SetDefaults()
	url := normalizeURL(cfg.URL)

	clientConfig := es.Config{
		Addresses:  []string{url},
		MaxRetries: cfg.MaxRetries,
	}
	switch {
	case cfg.APIKey != "":
		clientConfig.APIKey = cfg.APIKey
	case cfg.Username != "" && cfg.Password != "":
		clientConfig.Username = cfg.Username
		clientConfig.Password = cfg.Password
	}

	client, err := es.NewClient(clientConfig)
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	log.Info("Verifying Elasticsearch connection", logger.String("url", url))

	if err = retry.Retry(ctx, *cfg.RetryConfig, func() error {
		return Ping(ctx, client, cfg)
	}); err != nil {
		return nil, fmt.Errorf("connect to elasticsearch: %w", err)
	}

	log.Info("Elasticsearch connection established", logger.String("url", url))
	return client, nil
}

// Ping checks that the cluster answers within the configured timeout.
func Ping(ctx context.Context, client *es.Client, cfg Config) error {
	pingCtx := ctx
	if cfg.PingTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.PingTimeout)
		defer cancel()
	}

	res, err := client.Ping(client.Ping.WithContext(pingCtx))
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("ping returned [%s]: %s", res.Status(), string(body))
	}
	return nil
}

func normalizeURL(url string) string {
	if url == "" {
		return "http://localhost:9200"
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "http://" + url
	}
	return url
}
