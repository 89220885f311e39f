// Package search finds candidate company websites through a web search engine.
package search

import (
	"context"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/pkg/ddg"
	"github.com/sells-group/prospect-cli/pkg/jina"
)

// Query is a provider-neutral search request.
type Query struct {
	Text       string
	Region     string // "<lang>-<country>", e.g. "fr-fr"
	MaxResults int
}

// Provider is a web search backend.
type Provider interface {
	Name() string
	Search(ctx context.Context, q Query) ([]model.SearchHit, error)
}

type duckDuckGo struct {
	client ddg.Client
}

// NewDuckDuckGo adapts a DuckDuckGo client.
func NewDuckDuckGo(client ddg.Client) Provider {
	return &duckDuckGo{client: client}
}

func (p *duckDuckGo) Name() string { return "duckduckgo" }

func (p *duckDuckGo) Search(ctx context.Context, q Query) ([]model.SearchHit, error) {
	results, err := p.client.Search(ctx, q.Text, ddg.WithRegion(q.Region), ddg.WithMaxResults(q.MaxResults))
	if err != nil {
		return nil, err
	}
	hits := make([]model.SearchHit, 0, len(results))
	for _, r := range results {
		hits = append(hits, model.SearchHit{Title: r.Title, URL: r.URL, Snippet: r.Snippet})
	}
	return hits, nil
}

type jinaSearch struct {
	client jina.Client
}

// NewJina adapts a Jina search client.
func NewJina(client jina.Client) Provider {
	return &jinaSearch{client: client}
}

func (p *jinaSearch) Name() string { return "jina" }

func (p *jinaSearch) Search(ctx context.Context, q Query) ([]model.SearchHit, error) {
	resp, err := p.client.Search(ctx, q.Text, jina.WithRegion(q.Region))
	if err != nil {
		return nil, err
	}
	data := resp.Data
	if q.MaxResults > 0 && len(data) > q.MaxResults {
		data = data[:q.MaxResults]
	}
	hits := make([]model.SearchHit, 0, len(data))
	for _, r := range data {
		hits = append(hits, model.SearchHit{Title: r.Title, URL: r.URL, Snippet: r.Description})
	}
	return hits, nil
}
