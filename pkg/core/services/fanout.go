package services

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// DefaultConcurrency bounds detail fetches when no limit is configured
const DefaultConcurrency = 10

// fanOut calls fetch for every item with at most limit calls in flight.
// Failed items are logged and left out; results keep the input order.
func fanOut[T, R any](
	ctx context.Context,
	logger *zap.Logger,
	limit int,
	items []T,
	fetch func(context.Context, T) (R, error),
	describe func(T) zap.Field,
) (results []R, skipped int) {
	if limit < 1 {
		limit = DefaultConcurrency
	}

	type fetchResult struct {
		index int
		value R
		err   error
	}

	resultChan := make(chan fetchResult, len(items))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, limit)

	for i, item := range items {
		wg.Add(1)
		go func(i int, item T) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			value, err := fetch(ctx, item)
			if err != nil {
				logger.Warn("Skipping item after failed fetch", describe(item), zap.Error(err))
				resultChan <- fetchResult{index: i, err: err}
				return
			}
			resultChan <- fetchResult{index: i, value: value}
		}(i, item)
	}

	wg.Wait()
	close(resultChan)

	ordered := make([]*R, len(items))
	for result := range resultChan {
		if result.err != nil {
			skipped++
			continue
		}
		value := result.value
		ordered[result.index] = &value
	}

	results = make([]R, 0, len(items)-skipped)
	for _, v := range ordered {
		if v != nil {
			results = append(results, *v)
		}
	}
	return results, skipped
}
