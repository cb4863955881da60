package usecase

import (
	"context"
	"fmt"
	"sync"

	"campaigndash/internal/domain"
	"campaigndash/pkg/logger"
	"campaigndash/pkg/metrics"
)

// ClientSubscriber reacts to a client selection change. The returned channel
// closes once the subscriber's own follow-up fetches have settled.
type ClientSubscriber func(ctx context.Context, client *domain.Client) <-chan struct{}

type SelectionState struct {
	Clients  []domain.Client
	Selected *domain.Client
	Loading  bool
	Error    string
}

// Selection owns the currently selected client shared by the compare and
// benchmark workflows.
type Selection struct {
	api     domain.AnalyticsAPI
	logger  *logger.Logger
	metrics *metrics.Metrics

	// selectMu serializes a selection change with its notifications so
	// subscribers observe changes in the order they were made
	selectMu sync.Mutex

	mu          sync.Mutex
	state       SelectionState
	loading     chan struct{}
	subscribers []ClientSubscriber
}

func NewSelection(api domain.AnalyticsAPI, logger *logger.Logger, metrics *metrics.Metrics) *Selection {
	return &Selection{
		api:     api,
		logger:  logger,
		metrics: metrics,
	}
}

// Subscribe registers fn for every later selection change.
func (s *Selection) Subscribe(fn ClientSubscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Selection) State() SelectionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.state
	if s.state.Selected != nil {
		selected := *s.state.Selected
		state.Selected = &selected
	}
	return state
}

// LoadClients fetches the client list. While a load is in flight further
// calls issue no request and return the pending load's channel. The first
// successful load selects the first client if none is selected yet.
func (s *Selection) LoadClients(ctx context.Context) <-chan struct{} {
	s.mu.Lock()
	if s.loading != nil {
		pending := s.loading
		s.mu.Unlock()
		return pending
	}
	done := make(chan struct{})
	s.loading = done
	s.state.Loading = true
	s.mu.Unlock()

	s.metrics.RecordTransition("selection", "load_clients")

	go func() {
		defer close(done)

		bg := context.WithoutCancel(ctx)
		log := s.logger.WithContext(bg)

		clients, err := s.api.GetClients(bg)

		s.mu.Lock()
		s.loading = nil
		s.state.Loading = false
		if err != nil {
			s.state.Error = err.Error()
			s.mu.Unlock()
			log.WithError(err).Error("Failed to load clients")
			return
		}
		s.state.Clients = clients
		s.state.Error = ""
		autoSelect := s.state.Selected == nil && len(clients) > 0
		s.mu.Unlock()

		log.WithField("clients", len(clients)).Info("Loaded clients")

		if autoSelect {
			<-s.selectFirst(bg)
		}
	}()

	return done
}

func (s *Selection) selectFirst(ctx context.Context) <-chan struct{} {
	s.selectMu.Lock()
	defer s.selectMu.Unlock()

	s.mu.Lock()
	// a user pick may have landed while the list was loading
	if s.state.Selected != nil || len(s.state.Clients) == 0 {
		s.mu.Unlock()
		return closedChan()
	}
	first := s.state.Clients[0]
	s.state.Selected = &first
	subscribers := append([]ClientSubscriber(nil), s.subscribers...)
	s.mu.Unlock()

	s.metrics.RecordTransition("selection", "auto_select")
	s.logger.WithContext(ctx).WithField("client_id", first.ClientID).Info("Auto-selected first client")

	return notify(ctx, &first, subscribers)
}

// Select makes clientID the current client. It must be in the loaded list.
func (s *Selection) Select(ctx context.Context, clientID int64) (<-chan struct{}, error) {
	s.selectMu.Lock()
	defer s.selectMu.Unlock()

	s.mu.Lock()
	client := domain.FindClient(s.state.Clients, clientID)
	if client == nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %d", ErrUnknownClient, clientID)
	}
	s.state.Selected = client
	subscribers := append([]ClientSubscriber(nil), s.subscribers...)
	s.mu.Unlock()

	s.metrics.RecordTransition("selection", "select")
	s.logger.WithContext(ctx).WithField("client_id", clientID).Debug("Client selected")

	return notify(ctx, client, subscribers), nil
}

// Clear drops the current client.
func (s *Selection) Clear(ctx context.Context) <-chan struct{} {
	s.selectMu.Lock()
	defer s.selectMu.Unlock()

	s.mu.Lock()
	s.state.Selected = nil
	subscribers := append([]ClientSubscriber(nil), s.subscribers...)
	s.mu.Unlock()

	s.metrics.RecordTransition("selection", "clear")

	return notify(ctx, nil, subscribers)
}

// each subscriber gets its own copy of client
func notify(ctx context.Context, client *domain.Client, subscribers []ClientSubscriber) <-chan struct{} {
	chans := make([]<-chan struct{}, 0, len(subscribers))
	for _, fn := range subscribers {
		var c *domain.Client
		if client != nil {
			copied := *client
			c = &copied
		}
		chans = append(chans, fn(ctx, c))
	}
	return waitAll(chans...)
}
