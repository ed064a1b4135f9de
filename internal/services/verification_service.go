package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"unimart/internal/domain"
	applog "unimart/internal/log"
	"unimart/internal/repos"
)

// VerificationService is the per-profile "show verified badges" switch.
type VerificationService struct {
	Store repos.Shim
}

func NewVerificationService(store repos.Shim) *VerificationService {
	return &VerificationService{Store: store}
}

func (s *VerificationService) Enabled(profile string) bool {
	var on bool
	return s.Store.Get(profile, repos.KeyVerified, &on) && on
}

// Toggle flips the switch and returns the stored state. A failed write leaves it unchanged.
func (s *VerificationService) Toggle(profile string) bool {
	cur := s.Enabled(profile)
	if err := s.Store.Set(profile, repos.KeyVerified, !cur); err != nil {
		applog.L().Error("verification.toggle.fail", zap.String("profile", profile), zap.Error(err))
		return cur
	}
	return !cur
}

// Activity is one simulated ledger event.
type Activity struct {
	TxID      string    `json:"txId"`
	ListingID string    `json:"listingId"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	At        time.Time `json:"at"`
}

const (
	DefaultActivityCap = 20
	firstTx            = 7829
)

// ActivityTicker periodically records a simulated verification for one of the verified listings,
// cycling through them. Only the newest Cap entries are kept.
type ActivityTicker struct {
	Catalog  *CatalogService
	Interval time.Duration
	Cap      int
	Now      func() time.Time

	mu    sync.Mutex
	ring  []Activity
	head  int // next write position
	count int
	tx    int
	turn  int
}

func NewActivityTicker(c *CatalogService, interval time.Duration) *ActivityTicker {
	return &ActivityTicker{Catalog: c, Interval: interval, Cap: DefaultActivityCap, Now: time.Now}
}

// Run ticks until ctx is done.
func (t *ActivityTicker) Run(ctx context.Context) error {
	if t.Interval <= 0 {
		return fmt.Errorf("activity ticker: interval must be positive, got %s", t.Interval)
	}
	tk := time.NewTicker(t.Interval)
	defer tk.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tk.C:
			t.Tick()
		}
	}
}

// Tick records one activity entry. It reports false when no listing is verified.
func (t *ActivityTicker) Tick() bool {
	var verified []domain.Listing
	for _, l := range t.Catalog.All() {
		if l.IsBlockchainVerified {
			verified = append(verified, l)
		}
	}
	if len(verified) == 0 {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ring == nil {
		size := t.Cap
		if size <= 0 {
			size = DefaultActivityCap
		}
		t.ring = make([]Activity, size)
		t.tx = firstTx
	}
	l := verified[t.turn%len(verified)]
	t.turn++
	a := Activity{
		TxID:      fmt.Sprintf("#BD%04d", t.tx),
		ListingID: l.ID,
		Title:     l.Title,
		At:        t.Now(),
	}
	a.Message = fmt.Sprintf("Transaction %s verified %q", a.TxID, l.Title)
	t.tx++
	t.ring[t.head] = a
	t.head = (t.head + 1) % len(t.ring)
	if t.count < len(t.ring) {
		t.count++
	}
	return true
}

// Recent copies up to n entries, newest first.
func (t *ActivityTicker) Recent(n int) []Activity {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n <= 0 || n > t.count {
		n = t.count
	}
	out := make([]Activity, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, t.ring[(t.head-i+len(t.ring))%len(t.ring)])
	}
	return out
}
