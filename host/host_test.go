package host

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

type countingListener struct {
	mu      sync.Mutex
	toggles int
	err     error
}

func (l *countingListener) HandleToggle(_ context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.toggles++
	return l.err
}

func (l *countingListener) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.toggles
}

type fakeChannel struct {
	errs  []error
	calls int
}

func (c *fakeChannel) SendToggle(_ context.Context, _ int) error {
	c.calls++
	if len(c.errs) == 0 {
		return nil
	}
	err := c.errs[0]
	c.errs = c.errs[1:]
	return err
}

type fakeInjector struct {
	scriptErr error
	cssErr    error
	calls     []string
}

func (i *fakeInjector) InjectScript(_ context.Context, _ int) error {
	i.calls = append(i.calls, "script")
	return i.scriptErr
}

func (i *fakeInjector) InjectCSS(_ context.Context, _ int) error {
	i.calls = append(i.calls, "css")
	return i.cssErr
}

func newHost(t *testing.T, ch Channel, inj Injector, opts ...Option) *Host {
	t.Helper()
	cfg := DefaultConfig()
	cfg.RetryDelay = time.Millisecond
	h, err := New(ch, inj, append([]Option{WithConfig(cfg)}, opts...)...)
	require.NoError(t, err)
	return h
}

func parseDoc(t *testing.T) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(`<p>hello</p>`))
	require.NoError(t, err)
	return doc
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil, &fakeInjector{})
	assert.Error(t, err)

	_, err = New(&fakeChannel{}, nil)
	assert.Error(t, err)

	_, err = New(&fakeChannel{}, &fakeInjector{}, WithConfig(&Config{RetryDelay: -time.Second}))
	assert.Error(t, err)

	_, err = New(&fakeChannel{}, &fakeInjector{}, WithLogger(nil))
	assert.Error(t, err)
}

func TestConfig_IsRestricted(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		url  string
		want bool
	}{
		{"", true},
		{"chrome://settings", true},
		{"chrome-extension://abc/popup.html", true},
		{"edge://flags", true},
		{"about:blank", true},
		{"chrome-search://local-ntp", true},
		{"https://example.com/chrome://", false},
		{"file:///tmp/page.html", false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.IsRestricted(tt.url))
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultRetryDelay, cfg.RetryDelay)

	cfg.RetryDelay = time.Minute
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Restricted = append(cfg.Restricted, " ")
	assert.Error(t, cfg.Validate())
}

func TestHandleToggle_Restricted(t *testing.T) {
	ch := &fakeChannel{}
	inj := &fakeInjector{}
	h := newHost(t, ch, inj)

	err := h.HandleToggle(context.Background(), Tab{ID: 1, URL: "chrome://newtab"})
	assert.ErrorIs(t, err, ErrRestrictedURL)
	assert.Zero(t, ch.calls)
	assert.Empty(t, inj.calls)
}

func TestHandleToggle_Delivered(t *testing.T) {
	ch := &fakeChannel{}
	inj := &fakeInjector{}
	h := newHost(t, ch, inj)

	require.NoError(t, h.HandleToggle(context.Background(), Tab{ID: 1, URL: "https://example.com"}))
	assert.Equal(t, 1, ch.calls)
	assert.Empty(t, inj.calls)
}

func TestHandleToggle_InjectsAndResendsOnce(t *testing.T) {
	ch := &fakeChannel{errs: []error{ErrNoListener, nil}}
	inj := &fakeInjector{}
	h := newHost(t, ch, inj)

	require.NoError(t, h.HandleToggle(context.Background(), Tab{ID: 1, URL: "https://example.com"}))
	assert.Equal(t, 2, ch.calls)
	assert.Equal(t, []string{"script", "css"}, inj.calls)
}

func TestHandleToggle_SecondFailureReturned(t *testing.T) {
	ch := &fakeChannel{errs: []error{ErrNoListener, ErrNoListener}}
	h := newHost(t, ch, &fakeInjector{})

	err := h.HandleToggle(context.Background(), Tab{ID: 1, URL: "https://example.com"})
	assert.ErrorIs(t, err, ErrNoListener)
	assert.Equal(t, 2, ch.calls)
}

func TestHandleToggle_InjectionFailure(t *testing.T) {
	boom := errors.New("boom")

	ch := &fakeChannel{errs: []error{ErrNoListener}}
	inj := &fakeInjector{scriptErr: boom}
	err := newHost(t, ch, inj).HandleToggle(context.Background(), Tab{ID: 1, URL: "https://example.com"})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"script"}, inj.calls)
	assert.Equal(t, 1, ch.calls)

	ch = &fakeChannel{errs: []error{ErrNoListener}}
	inj = &fakeInjector{cssErr: boom}
	err = newHost(t, ch, inj).HandleToggle(context.Background(), Tab{ID: 1, URL: "https://example.com"})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"script", "css"}, inj.calls)
	assert.Equal(t, 1, ch.calls)
}

func TestHandleToggle_OtherSendError(t *testing.T) {
	boom := errors.New("boom")
	ch := &fakeChannel{errs: []error{boom}}
	inj := &fakeInjector{}

	err := newHost(t, ch, inj).HandleToggle(context.Background(), Tab{ID: 1, URL: "https://example.com"})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, inj.calls)
}

func TestHandleToggle_CanceledDuringDelay(t *testing.T) {
	ch := &fakeChannel{errs: []error{ErrNoListener}}
	cfg := DefaultConfig()
	cfg.RetryDelay = 5 * time.Second
	h, err := New(ch, &fakeInjector{}, WithConfig(cfg))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err = h.HandleToggle(ctx, Tab{ID: 1, URL: "https://example.com"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, ch.calls)
}

func TestHandleCommand(t *testing.T) {
	reg := NewRegistry()
	listener := &countingListener{}
	reg.Open(Tab{ID: 7, URL: "https://example.com"}, parseDoc(t))
	require.NoError(t, reg.Listen(7, listener))

	h := newHost(t, reg, &fakeInjector{}, WithTabSource(reg))
	require.NoError(t, h.HandleCommand(context.Background(), CommandTriggerSearch))
	assert.Equal(t, 1, listener.count())

	assert.ErrorIs(t, h.HandleCommand(context.Background(), "other"), ErrUnknownCommand)

	reg.CloseTab(7)
	assert.ErrorIs(t, h.HandleCommand(context.Background(), CommandTriggerSearch), ErrNoActiveTab)

	noTabs := newHost(t, reg, &fakeInjector{})
	assert.ErrorIs(t, noTabs.HandleCommand(context.Background(), CommandTriggerSearch), ErrNoActiveTab)
}

func TestHost_WithRegistryAndInjector(t *testing.T) {
	reg := NewRegistry()
	reg.Open(Tab{ID: 1, URL: "https://example.com"}, parseDoc(t))

	var created []*countingListener
	inj, err := NewPageInjector(reg, func(doc *html.Node) (Listener, error) {
		require.NotNil(t, doc)
		l := &countingListener{}
		created = append(created, l)
		return l, nil
	})
	require.NoError(t, err)

	h := newHost(t, reg, inj)

	// First toggle: no listener yet, injected then delivered once.
	require.NoError(t, h.HandleToggle(context.Background(), Tab{ID: 1, URL: "https://example.com"}))
	require.Len(t, created, 1)
	assert.Equal(t, 1, created[0].count())
	assert.Equal(t, []string{Stylesheet}, reg.Stylesheets(1))

	// Second toggle goes straight to the existing listener.
	require.NoError(t, h.HandleToggle(context.Background(), Tab{ID: 1, URL: "https://example.com"}))
	assert.Len(t, created, 1)
	assert.Equal(t, 2, created[0].count())
	assert.Equal(t, []string{Stylesheet}, reg.Stylesheets(1))
}
