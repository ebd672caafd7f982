package publicdata

import (
	"context"
	"fmt"
	"sync"
)

// CallAsync runs Call in its own goroutine and delivers the result on a
// one-slot channel. The call suspends only at network I/O and backoff
// waits; cancelling ctx aborts at the next suspension point.
func (c *Client) CallAsync(ctx context.Context, endpoint string, params map[string]string) <-chan *Result {
	ch := make(chan *Result, 1)
	go func() {
		ch <- c.Call(ctx, endpoint, params)
		close(ch)
	}()
	return ch
}

// BatchCall fans out all requests concurrently. Slot k of the returned
// slice always holds the outcome of endpoints[k]; one member's failure is
// captured in its own slot and does not cancel siblings. The only error
// is the up-front length mismatch between endpoints and params, which is
// a programmer error and fails fast.
//
// There is no built-in concurrency ceiling; callers wanting throttling
// must chunk the input themselves.
func (c *Client) BatchCall(ctx context.Context, endpoints []string, params []map[string]string) ([]*Result, error) {
	if len(endpoints) != len(params) {
		return nil, fmt.Errorf("publicdata: batch length mismatch: %d endpoints, %d param sets", len(endpoints), len(params))
	}

	results := make([]*Result, len(endpoints))
	var wg sync.WaitGroup
	for i := range endpoints {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.Call(ctx, endpoints[i], params[i])
		}(i)
	}
	wg.Wait()

	return results, nil
}
