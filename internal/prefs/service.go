package prefs

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// DefaultOwner is used when a caller has no identity (AUTH_MODE=none).
const DefaultOwner = "default"

// Theme is the resolved view of one owner's settings.
type Theme struct {
	Settings
	SystemDark bool `json:"systemDark"`
	Dark       bool `json:"dark"`
}

// Patch carries the settings to change; nil fields are left alone.
type Patch struct {
	Mode         *string `json:"mode"`
	NavColor     *string `json:"navColor"`
	SidebarColor *string `json:"sidebarColor"`
	ButtonColor  *string `json:"buttonColor"`
}

type ownerState struct {
	settings   Settings
	systemDark bool
	subs       map[int]chan Theme
}

func (o *ownerState) theme() Theme {
	return Theme{
		Settings:   o.settings,
		SystemDark: o.systemDark,
		Dark:       Resolve(o.settings.Mode, o.systemDark),
	}
}

// Service reads settings from the Store on every call, persists each change
// before returning, and notifies subscribers. Several instances may share
// one Store.
type Service struct {
	store  Store
	logger *zap.Logger

	mu     sync.Mutex
	owners map[string]*ownerState
	nextID int
}

func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, owners: make(map[string]*ownerState)}
}

// state returns the owner's state with settings freshly read from the
// store, so writes made by other processes are seen. Only owners with open
// subscriptions stay in memory; for anyone else the state is transient.
// Callers hold s.mu.
func (s *Service) state(ctx context.Context, owner string) (*ownerState, error) {
	values, err := s.store.Load(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("loading theme: %w", err)
	}
	settings := FromValues(values)
	if st, ok := s.owners[owner]; ok {
		if st.settings != settings {
			st.settings = settings
			s.broadcast(st)
		}
		return st, nil
	}
	return &ownerState{settings: settings, subs: make(map[int]chan Theme)}, nil
}

func ownerOrDefault(owner string) string {
	if owner == "" {
		return DefaultOwner
	}
	return owner
}

func (s *Service) Get(ctx context.Context, owner string) (Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.state(ctx, ownerOrDefault(owner))
	if err != nil {
		return Theme{}, err
	}
	return st.theme(), nil
}

// apply validates patch, writes the changed keys and then updates the
// in-memory settings.
func (s *Service) apply(ctx context.Context, owner string, patch Patch) (Theme, error) {
	owner = ownerOrDefault(owner)
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.state(ctx, owner)
	if err != nil {
		return Theme{}, err
	}

	next := st.settings
	values := map[string]string{}
	if patch.Mode != nil {
		m, err := ParseMode(*patch.Mode)
		if err != nil {
			return Theme{}, err
		}
		next.Mode = m
		values[KeyThemeMode] = string(m)
	}
	for slot, raw := range map[Slot]*string{SlotNav: patch.NavColor, SlotSidebar: patch.SidebarColor, SlotButton: patch.ButtonColor} {
		if raw == nil {
			continue
		}
		c, err := ParseColor(*raw)
		if err != nil {
			return Theme{}, err
		}
		*next.color(slot) = c
		values[slotKey(slot)] = string(c)
	}
	if len(values) == 0 {
		return st.theme(), nil
	}

	if err := s.store.Save(ctx, owner, values); err != nil {
		return Theme{}, fmt.Errorf("saving theme: %w", err)
	}
	st.settings = next
	s.broadcast(st)
	return st.theme(), nil
}

func (s *Service) Update(ctx context.Context, owner string, patch Patch) (Theme, error) {
	return s.apply(ctx, owner, patch)
}

func (s *Service) SetMode(ctx context.Context, owner, mode string) (Theme, error) {
	return s.apply(ctx, owner, Patch{Mode: &mode})
}

func (s *Service) SetColor(ctx context.Context, owner, slot, color string) (Theme, error) {
	sl, err := ParseSlot(slot)
	if err != nil {
		return Theme{}, err
	}
	var p Patch
	switch sl {
	case SlotNav:
		p.NavColor = &color
	case SlotSidebar:
		p.SidebarColor = &color
	case SlotButton:
		p.ButtonColor = &color
	}
	return s.apply(ctx, owner, p)
}

// Reset removes the stored keys and returns to the defaults.
func (s *Service) Reset(ctx context.Context, owner string) (Theme, error) {
	owner = ownerOrDefault(owner)
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.state(ctx, owner)
	if err != nil {
		return Theme{}, err
	}
	if err := s.store.Remove(ctx, owner, Keys); err != nil {
		return Theme{}, fmt.Errorf("resetting theme: %w", err)
	}
	st.settings = Defaults()
	s.broadcast(st)
	return st.theme(), nil
}

// SetSystemDark records the environment's color scheme. It is not
// persisted and is only remembered while the owner has a subscription;
// subscribers are notified only when it changes.
func (s *Service) SetSystemDark(ctx context.Context, owner string, dark bool) (Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.state(ctx, ownerOrDefault(owner))
	if err != nil {
		return Theme{}, err
	}
	if st.systemDark != dark {
		st.systemDark = dark
		s.broadcast(st)
	}
	return st.theme(), nil
}

// Subscribe returns a channel that receives the current theme and then every
// change. Only the latest theme is buffered. cancel closes the channel and is
// safe to call more than once.
func (s *Service) Subscribe(ctx context.Context, owner string) (<-chan Theme, func(), error) {
	owner = ownerOrDefault(owner)
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.state(ctx, owner)
	if err != nil {
		return nil, nil, err
	}
	id := s.nextID
	s.nextID++
	ch := make(chan Theme, 1)
	ch <- st.theme()
	st.subs[id] = ch
	s.owners[owner] = st

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := st.subs[id]; ok {
				delete(st.subs, id)
				close(ch)
			}
			if len(st.subs) == 0 && s.owners[owner] == st {
				delete(s.owners, owner)
			}
		})
	}
	return ch, cancel, nil
}

// broadcast delivers the owner's theme to each subscriber, replacing any
// value it has not read yet. Callers hold s.mu.
func (s *Service) broadcast(st *ownerState) {
	t := st.theme()
	for _, ch := range st.subs {
		select {
		case <-ch:
		default:
		}
		ch <- t
	}
}

// CloseSubscriptions ends every open subscription. The service stays usable.
func (s *Service) CloseSubscriptions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for owner, st := range s.owners {
		for id, ch := range st.subs {
			delete(st.subs, id)
			close(ch)
		}
		delete(s.owners, owner)
	}
}

// Close ends all subscriptions and closes the store.
func (s *Service) Close() error {
	s.CloseSubscriptions()
	if err := s.store.Close(); err != nil {
		s.logger.Warn("Failed to close preference store", zap.Error(err))
		return err
	}
	return nil
}
