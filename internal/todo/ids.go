package todo

import (
	"strconv"
	"time"
)

// idSource issues decimal Unix-millisecond ids. When the clock has not moved
// past the last issued (or loaded) id, it hands out last+1 instead.
type idSource struct {
	now  func() time.Time
	last int64
}

func newIDSource(now func() time.Time) *idSource {
	return &idSource{now: now}
}

func (g *idSource) next() string {
	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}

// observe bumps the floor past an existing id so it is never reissued.
// Non-numeric ids cannot collide with generated ones and are skipped.
func (g *idSource) observe(id string) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return
	}
	if n > g.last {
		g.last = n
	}
}
