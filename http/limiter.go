package http

import (
	"context"
	"net"
	"strings"
	"sync"

	"github.com/fwojciec/contrasta"
	"golang.org/x/time/rate"
)

var _ contrasta.DomainLimiter = (*HostLimiter)(nil)

// HostLimiter spaces out article requests to each publisher host.
// Hosts are compared without case, port or a leading "www.", so
// www.elplural.com and elplural.com:443 share one budget.
type HostLimiter struct {
	limit rate.Limit

	mu    sync.Mutex
	hosts map[string]*rate.Limiter
}

// NewHostLimiter allows rps requests per second to each host with no
// bursting. A non-positive rps disables the limit.
func NewHostLimiter(rps float64) *HostLimiter {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &HostLimiter{
		limit: limit,
		hosts: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until a request to host is allowed or ctx is done.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	if l.limit == rate.Inf {
		return nil
	}

	key := hostKey(host)
	l.mu.Lock()
	lim, ok := l.hosts[key]
	if !ok {
		lim = rate.NewLimiter(l.limit, 1)
		l.hosts[key] = lim
	}
	l.mu.Unlock()

	return lim.Wait(ctx)
}

func hostKey(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}
