package parallel

import "sync"

import "github.com/klauspost/cpuid/v2"

// Limit reports the default number of concurrent goroutines: one per logical core.
func Limit() int {
	if cpuid.CPU.LogicalCores > 0 {
		return cpuid.CPU.LogicalCores
	}
	return 1
}

// ForEach executes a for loop with a limited number of concurrent goroutines.
// Each goroutine processes one integer, from 0 to length.
func ForEach(length, limit int, body func(i int)) {
	if limit <= 0 {
		limit = Limit()
	}
	if length <= 0 {
		return
	}

	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup
	wg.Add(length)

	for i := 0; i < length; i++ {
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			body(i)
		}(i)
	}

	wg.Wait()
}
