package rpc

import (
	"context"
	"sync"
	"time"

	"github.com/Mohsinsiddi/fundraiser/internal/chain"
)

// pingTimeout bounds each endpoint probe.
const pingTimeout = 5 * time.Second

// Benchmark pings all urls in parallel. Results keep the order of urls.
func Benchmark(ctx context.Context, urls []string) []Endpoint {
	results := make([]Endpoint, len(urls))
	var wg sync.WaitGroup

	for i, url := range urls {
		wg.Add(1)
		go func(idx int, u string) {
			defer wg.Done()
			results[idx] = probe(ctx, u)
		}(i, url)
	}

	wg.Wait()
	return results
}

func probe(ctx context.Context, url string) Endpoint {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	ep := Endpoint{URL: url}
	c, err := chain.Dial(ctx, url)
	if err != nil {
		ep.Err = err
		return ep
	}
	defer c.Close()

	ep.Latency, ep.BlockNumber, ep.Err = c.Ping(ctx)
	return ep
}

// Select returns the best URL from urls. A single URL is returned without
// probing, so local dev nodes are never pinged twice.
func Select(ctx context.Context, urls []string, algo Algorithm) (string, error) {
	switch len(urls) {
	case 0:
		return "", ErrNoHealthyRPC
	case 1:
		return urls[0], nil
	}

	winner, err := Pick(Benchmark(ctx, urls), algo)
	if err != nil {
		return "", err
	}
	return winner.URL, nil
}
