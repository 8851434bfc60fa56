package smsaero

import (
	"context"
	"sync"
)

// BulkOptions tunes SendBulk. Zero values fall back to the defaults.
type BulkOptions struct {
	SendOptions

	// ChunkSize is the number of recipients per API request.
	ChunkSize int
	// MaxWorkers bounds how many chunk requests run concurrently.
	MaxWorkers int
}

const (
	defaultChunkSize  = 50
	defaultMaxWorkers = 4
)

// BulkResult is the outcome of one chunk of a bulk sending.
type BulkResult struct {
	Phones  []int64
	Message *Message
	Err     error
}

// SendBulk splits a large recipient list into chunks and dispatches
// the chunk requests over a bounded worker pool. It returns one result
// per chunk, in chunk order, plus the first error encountered. A
// cancelled context stops workers from picking up new chunks; chunks
// already in flight finish on their own.
func (c *Client) SendBulk(ctx context.Context, phones []int64, text string, opts *BulkOptions) ([]BulkResult, error) {
	if err := validatePhones(phones); err != nil {
		return nil, err
	}
	if err := validateText(text); err != nil {
		return nil, err
	}

	chunkSize := defaultChunkSize
	maxWorkers := defaultMaxWorkers
	var sendOpts SendOptions
	if opts != nil {
		if opts.ChunkSize > 0 {
			chunkSize = opts.ChunkSize
		}
		if opts.MaxWorkers > 0 {
			maxWorkers = opts.MaxWorkers
		}
		sendOpts = opts.SendOptions
	}

	var chunks [][]int64
	for start := 0; start < len(phones); start += chunkSize {
		end := start + chunkSize
		if end > len(phones) {
			end = len(phones)
		}
		chunks = append(chunks, phones[start:end])
	}

	workerCount := len(chunks)
	if workerCount > maxWorkers {
		workerCount = maxWorkers
	}

	results := make([]BulkResult, len(chunks))

	var wg sync.WaitGroup

	// Each worker processes a stride of chunks: with 4 workers, worker
	// 0 takes chunks 0, 4, 8, ... and so on. Results land in disjoint
	// slots, so no locking is needed.
	for w := 0; w < workerCount; w++ {
		wg.Add(1)

		go func(start int) {
			defer wg.Done()

			for i := start; i < len(chunks); i += workerCount {
				if ctx.Err() != nil {
					results[i] = BulkResult{Phones: chunks[i], Err: ctx.Err()}
					continue
				}

				msg, err := c.SendSMS(ctx, chunks[i], text, &sendOpts)
				results[i] = BulkResult{Phones: chunks[i], Message: msg, Err: err}
			}
		}(w)
	}

	wg.Wait()

	for _, r := range results {
		if r.Err != nil {
			return results, r.Err
		}
	}
	return results, nil
}
