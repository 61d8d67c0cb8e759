package lazy

import (
	"sync"

	"github.com/specialistvlad/lazyflow/internal/metrics"
)

// cache remembers the last served interval. A request overlapping it only
// fetches the frames outside the cached interval; anything else replaces it.
type cache[T Frames[T]] struct {
	src Box[T]

	mu    sync.Mutex
	valid bool
	start int
	end   int
	value T
}

// NewCache wraps src with a single-slot, interval-aware cache. Results are
// always identical to src.RequestRange; only the amount of work differs.
// Concurrent callers are serialized.
func NewCache[T Frames[T]](src Box[T]) Box[T] {
	return NewBox[T](&cache[T]{src: src})
}

func (c *cache[T]) Length() int {
	return c.src.Length()
}

func (c *cache[T]) RequestRange(start, end int) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.valid || start >= c.end || end <= c.start {
		v, err := c.src.RequestRange(start, end)
		if err != nil {
			return v, err
		}
		metrics.CacheRequests.WithLabelValues(metrics.CacheMiss).Inc()
		metrics.CacheFetchedFrames.Add(float64(end - start))
		c.keep(start, end, v)
		return v, nil
	}

	v := c.value
	fetched := 0
	if start >= c.start {
		v = v.CutFront(start - c.start)
	} else {
		part, err := c.src.RequestRange(start, c.start)
		if err != nil {
			return part, err
		}
		v = v.Prepend(part)
		fetched += c.start - start
	}
	if end <= c.end {
		v = v.CutEnd(c.end - end)
	} else {
		part, err := c.src.RequestRange(c.end, end)
		if err != nil {
			return part, err
		}
		v = v.Append(part)
		fetched += end - c.end
	}

	if fetched == 0 {
		metrics.CacheRequests.WithLabelValues(metrics.CacheHit).Inc()
	} else {
		metrics.CacheRequests.WithLabelValues(metrics.CachePartial).Inc()
		metrics.CacheFetchedFrames.Add(float64(fetched))
	}
	c.keep(start, end, v)
	return v, nil
}

func (c *cache[T]) keep(start, end int, v T) {
	c.valid = true
	c.start = start
	c.end = end
	c.value = v
}

func (c *cache[T]) CalculateOverhead(start, end int) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.valid || start >= c.end || end <= c.start {
		return c.src.CalculateOverhead(start, end)
	}
	cost := 0
	if start < c.start {
		cost += c.src.CalculateOverhead(start, c.start)
	}
	if end > c.end {
		cost += c.src.CalculateOverhead(c.end, end)
	}
	return cost
}
