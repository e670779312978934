// check-deployments: pings every network that has a FundraiserFactory
// deployment in the artifact (plus local overrides) in parallel, checks the
// node reports the expected network id, and prints fundraisersCount.
//
// Run from the module root:
//
//	go run ./scripts/check-deployments [artifact.json]
//
// Without an argument the configured artifact is used.
package main

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"os"
	"sort"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/Mohsinsiddi/fundraiser/internal/chain"
	"github.com/Mohsinsiddi/fundraiser/internal/config"
	"github.com/Mohsinsiddi/fundraiser/internal/contract"
	"github.com/Mohsinsiddi/fundraiser/internal/rpc"
)

const checkTimeout = 12 * time.Second

type result struct {
	networkID string
	network   string
	address   string
	rpcURL    string
	count     string
	note      string
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "check-deployments:", err)
		os.Exit(1)
	}
}

func run(args []string, w io.Writer) error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}
	art, err := loadArtifact(cfg, args)
	if err != nil {
		return err
	}

	algo, err := rpc.ParseAlgorithm(cfg.RPCAlgorithm)
	if err != nil {
		return err
	}

	reg := chain.NewRegistry()
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results []result
	)
	record := func(r result) {
		mu.Lock()
		results = append(results, r)
		mu.Unlock()
	}

	for _, id := range art.NetworkIDs() {
		d, err := art.Resolve(id)
		if err != nil {
			continue
		}
		r := result{networkID: id, network: "-", address: shortAddr(d.Address.Hex())}

		n, err := reg.GetByNetworkID(id)
		if err != nil {
			r.note = "no known RPC"
			record(r)
			continue
		}
		r.network = n.Name
		urls := cfg.GetRPCs(n.Name)
		if len(urls) == 0 {
			urls = n.RPCs
		}

		wg.Add(1)
		go func(r result, urls []string, d contract.Deployment) {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
			defer cancel()

			check(ctx, &r, art, urls, algo, d)
			record(r)
		}(r, urls, d)
	}
	wg.Wait()

	printTable(w, results)
	return nil
}

func loadArtifact(cfg *config.Config, args []string) (*contract.Artifact, error) {
	path := cfg.ArtifactPath
	if len(args) > 0 {
		path = args[0]
	}

	var (
		art *contract.Artifact
		err error
	)
	if path != "" {
		art, err = contract.LoadArtifact(path)
	} else {
		art, err = contract.BuiltinArtifact(contract.BuiltinFactory)
	}
	if err != nil {
		return nil, err
	}

	store := contract.NewDeployments(cfg.DeploymentsPath())
	if err := store.Load(); err != nil {
		return nil, err
	}
	return art.WithOverrides(store.Overrides()), nil
}

func check(ctx context.Context, r *result, art *contract.Artifact, urls []string, algo rpc.Algorithm, d contract.Deployment) {
	url, err := rpc.Select(ctx, urls, algo)
	if err != nil {
		r.count, r.note = "-", "unreachable"
		return
	}
	r.rpcURL = url

	client, err := chain.Dial(ctx, url)
	if err != nil {
		r.count, r.note = "-", shortErr(err)
		return
	}
	defer client.Close()

	got, err := client.NetworkID(ctx)
	if err != nil {
		r.count, r.note = "-", shortErr(err)
		return
	}
	if got != r.networkID {
		r.count, r.note = "-", "node reports network "+got
		return
	}

	data, err := art.ABI.Pack("fundraisersCount")
	if err != nil {
		r.count, r.note = "-", shortErr(err)
		return
	}
	raw, err := client.Call(ctx, d.Address, data)
	if err != nil {
		r.count, r.note = "-", shortErr(err)
		return
	}
	if len(raw) == 0 {
		r.count, r.note = "-", "no contract code"
		return
	}
	out, err := art.ABI.Unpack("fundraisersCount", raw)
	if err != nil {
		r.count, r.note = "-", shortErr(err)
		return
	}
	if n, ok := out[0].(*big.Int); ok {
		r.count = n.String()
	}
}

func printTable(out io.Writer, results []result) {
	sort.Slice(results, func(i, j int) bool {
		return results[i].networkID < results[j].networkID
	})

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NETWORK ID\tNETWORK\tFACTORY\tFUNDRAISERS\tRPC\tNOTE")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.networkID, r.network, r.address, r.count, r.rpcURL, r.note)
	}
	w.Flush()
}

func shortAddr(addr string) string {
	if len(addr) < 10 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}

func shortErr(err error) string {
	s := err.Error()
	if len(s) > 30 {
		return s[:30] + "…"
	}
	return s
}
