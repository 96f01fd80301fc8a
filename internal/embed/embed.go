// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package embed provides the embedding client used by the vector index.
// It speaks the OpenAI embeddings API, which a local Ollama instance also
// serves, and resolves a primary-or-fallback model choice once per open.
package embed

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/tgweon/trag/pkg/types"
)

// probeText is the trivial input used to verify a model is reachable.
const probeText = "ping"

// ErrNoModel reports that neither the primary nor the fallback embedding
// model answered the probe. Nothing downstream can work without embeddings,
// so callers must fail loudly on it.
var ErrNoModel = errors.New("no embedding model reachable")

// Embedder turns text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Client is an Embedder backed by an OpenAI-compatible endpoint.
type Client struct {
	api   *openai.Client
	model string
}

// NewClient returns a client bound to one model. No network call is made.
func NewClient(cfg types.EmbeddingConfig, model string) *Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(clientCfg),
		model: model,
	}
}

// Model returns the model the client resolved to.
func (c *Client) Model() string {
	return c.model
}

// Embed implements Embedder.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:          []string{text},
		Model:          openai.EmbeddingModel(c.model),
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding with %s: %w", c.model, err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("embedding with %s: empty response", c.model)
	}
	return resp.Data[0].Embedding, nil
}

// NewWithFallback returns a client for the preferred model, probing it with
// a trivial embedding call. If the probe fails it transparently retries
// with the fallback model. Both models failing is fatal: the error wraps
// ErrNoModel and both probe failures.
func NewWithFallback(ctx context.Context, cfg types.EmbeddingConfig) (*Client, error) {
	primary := NewClient(cfg, cfg.Model)
	_, primaryErr := primary.Embed(ctx, probeText)
	if primaryErr == nil {
		return primary, nil
	}
	if cfg.FallbackModel == "" {
		return nil, fmt.Errorf("%w: %s: %v", ErrNoModel, cfg.Model, primaryErr)
	}

	fallback := NewClient(cfg, cfg.FallbackModel)
	if _, fbErr := fallback.Embed(ctx, probeText); fbErr != nil {
		return nil, fmt.Errorf("%w: %s: %v; %s: %v", ErrNoModel, cfg.Model, primaryErr, cfg.FallbackModel, fbErr)
	}
	return fallback, nil
}
