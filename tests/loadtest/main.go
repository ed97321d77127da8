package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"net"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	flag "github.com/spf13/pflag"
)

// Hammers the daemon's read endpoints. /rank is served from the cache after the
// first hit, so upstream calls stay at one per cache TTL.

type endpoint struct {
	path   string
	weight float64
	// accepted statuses; /rank and /backup answer 404 legitimately
	ok map[int]bool
}

var endpoints = []endpoint{
	{"/rank", 0.6, map[int]bool{200: true, 404: true}},
	{"/health", 0.3, map[int]bool{200: true}},
	{"/backup", 0.1, map[int]bool{200: true, 404: true}},
}

type result struct {
	path    string
	latency time.Duration
	failed  bool
}

type summary struct {
	count     int
	errors    int
	latencies []time.Duration
}

func newClient() *http.Client {
	return &http.Client{
		Timeout: 5 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        200,
			MaxIdleConnsPerHost: 200,
			IdleConnTimeout:     30 * time.Second,
			DialContext: (&net.Dialer{
				Timeout:   2 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
		},
	}
}

func main() {
	baseURL := flag.String("url", "http://127.0.0.1:8090", "daemon base URL")
	workers := flag.Int("workers", 20, "concurrent clients")
	duration := flag.Duration("duration", 10*time.Second, "test length")
	flag.Parse()

	client := newClient()
	fmt.Printf("=== rankwatch load test: %d workers for %s against %s ===\n", *workers, *duration, *baseURL)

	if !waitReady(client, *baseURL) {
		fmt.Println("server not responding")
		os.Exit(1)
	}

	results := run(client, *baseURL, *workers, *duration)
	if report(results, *duration) > 0 {
		os.Exit(1)
	}
}

func waitReady(client *http.Client, baseURL string) bool {
	for i := 0; i < 30; i++ {
		resp, err := client.Get(baseURL + "/health")
		if err == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return true
		}
		time.Sleep(200 * time.Millisecond)
	}
	return false
}

func pick(r float64) endpoint {
	for _, ep := range endpoints {
		if r < ep.weight {
			return ep
		}
		r -= ep.weight
	}
	return endpoints[len(endpoints)-1]
}

func hit(client *http.Client, baseURL string, ep endpoint) result {
	start := time.Now()
	resp, err := client.Get(baseURL + ep.path)
	lat := time.Since(start)
	if err != nil {
		return result{ep.path, lat, true}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{ep.path, lat, !ep.ok[resp.StatusCode]}
}

func run(client *http.Client, baseURL string, workers int, duration time.Duration) map[string]*summary {
	results := make(chan result, 1024)
	stop := make(chan struct{})
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(seed uint64) {
			defer wg.Done()
			rng := rand.New(rand.NewPCG(seed, seed*31))
			for {
				select {
				case <-stop:
					return
				default:
					results <- hit(client, baseURL, pick(rng.Float64()))
				}
			}
		}(uint64(i + 1))
	}

	all := make(map[string]*summary)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := all[r.path]
			if !ok {
				s = &summary{}
				all[r.path] = s
			}
			s.count++
			if r.failed {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done
	return all
}

// report prints per-endpoint latency percentiles and returns the error count.
func report(all map[string]*summary, duration time.Duration) int {
	paths := make([]string, 0, len(all))
	for p := range all {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	fmt.Printf("\n  %-10s %8s %6s %10s %10s %10s\n", "Endpoint", "Reqs", "Errs", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 60))

	total, errs := 0, 0
	for _, p := range paths {
		s := all[p]
		total += s.count
		errs += s.errors
		sort.Slice(s.latencies, func(i, j int) bool { return s.latencies[i] < s.latencies[j] })
		fmt.Printf("  %-10s %8d %6d %10s %10s %10s\n", p, s.count, s.errors,
			percentile(s.latencies, 0.50), percentile(s.latencies, 0.95), percentile(s.latencies, 0.99))
	}

	fmt.Println("  " + strings.Repeat("-", 60))
	fmt.Printf("  Total: %d reqs | Errors: %d | RPS: %.0f\n", total, errs, float64(total)/duration.Seconds())
	return errs
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)-1) * p)
	return sorted[idx].Round(time.Microsecond)
}
