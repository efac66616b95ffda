package sheets

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/googleapi"

	"salesdesk/pkg/metrics"
)

const (
	DefaultAttempts  = 4
	DefaultBase      = 1.4
	DefaultMaxJitter = 500 * time.Millisecond
)

// Retrier re-runs remote calls that failed on quota or transient HTTP errors.
// The delay before retrying attempt n (0-based) is Base^n seconds plus a
// uniform jitter in [0, MaxJitter).
type Retrier struct {
	Attempts  int
	Base      float64
	MaxJitter time.Duration

	// Overridable in tests.
	Sleep  func(ctx context.Context, d time.Duration) error
	Jitter func() float64

	Metrics *metrics.Metrics
}

func NewRetrier(m *metrics.Metrics) *Retrier {
	return &Retrier{
		Attempts:  DefaultAttempts,
		Base:      DefaultBase,
		MaxJitter: DefaultMaxJitter,
		Sleep:     sleepContext,
		Jitter:    rand.Float64,
		Metrics:   m,
	}
}

// Do runs fn, retrying quota and transient errors. Other errors, and the last
// error once attempts run out, are returned unchanged.
func (r *Retrier) Do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	return r.DoIf(ctx, op, Retryable, fn)
}

// DoIf is Do with a custom retry predicate. Appends use IsQuota so a write
// that may have landed is never repeated.
func (r *Retrier) DoIf(ctx context.Context, op string, retryable func(error) bool, fn func(ctx context.Context) error) error {
	attempts := r.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		err = fn(ctx)
		r.Metrics.RemoteCall(op, err)
		if err == nil || !retryable(err) || attempt == attempts-1 {
			return err
		}
		delay := r.backoff(attempt)
		log.WithFields(log.Fields{
			"op":      op,
			"attempt": attempt + 1,
			"delay":   delay,
		}).WithError(err).Debug("retrying spreadsheet call")
		r.Metrics.Retry(op)
		if serr := r.sleep(ctx, delay); serr != nil {
			return err
		}
	}
	return err
}

func (r *Retrier) backoff(attempt int) time.Duration {
	base := r.Base
	if base <= 0 {
		base = DefaultBase
	}
	d := time.Duration(math.Pow(base, float64(attempt)) * float64(time.Second))
	if r.MaxJitter > 0 {
		jitter := rand.Float64
		if r.Jitter != nil {
			jitter = r.Jitter
		}
		d += time.Duration(jitter() * float64(r.MaxJitter))
	}
	return d
}

func (r *Retrier) sleep(ctx context.Context, d time.Duration) error {
	if r.Sleep != nil {
		return r.Sleep(ctx, d)
	}
	return sleepContext(ctx, d)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func Retryable(err error) bool {
	return IsQuota(err) || IsTransient(err)
}

// IsQuota reports rate-limit and quota errors: HTTP 429, 403 with a rate
// limit reason, or a rate limit marker in the error text.
func IsQuota(err error) bool {
	if err == nil {
		return false
	}
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		if gErr.Code == http.StatusTooManyRequests {
			return true
		}
		if gErr.Code == http.StatusForbidden {
			for _, item := range gErr.Errors {
				if item.Reason == "rateLimitExceeded" || item.Reason == "userRateLimitExceeded" {
					return true
				}
			}
		}
	}
	msg := strings.ToUpper(err.Error())
	for _, marker := range []string{"RESOURCE_EXHAUSTED", "429", "RATE_LIMIT"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// IsTransient reports server-side and transport failures worth retrying.
// Cancellation is never transient.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return gErr.Code == http.StatusRequestTimeout || gErr.Code >= 500
	}
	var uErr *url.Error
	if errors.As(err, &uErr) {
		return true
	}
	var nErr net.Error
	return errors.As(err, &nErr)
}
