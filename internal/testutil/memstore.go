// Package testutil provides in-memory implementations of the domain
// repositories for tests.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/RehanMehtaIND/noteslite/internal/core/domain"
)

// Users is an in-memory domain.UserRepository. Setting Err makes every call
// fail with it.
type Users struct {
	mu    sync.Mutex
	rows  map[string]domain.UserRow
	Err   error
	Calls int
}

// NewUsers returns an empty user store.
func NewUsers() *Users {
	return &Users{rows: make(map[string]domain.UserRow)}
}

// begin counts a call; the caller holds mu.
func (s *Users) begin() error {
	s.Calls++
	return s.Err
}

func (s *Users) find(match func(domain.UserRow) bool) *domain.UserRow {
	for _, r := range s.rows {
		if match(r) {
			row := r
			return &row
		}
	}
	return nil
}

func (s *Users) GetByEmail(_ context.Context, email string) (*domain.UserRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return nil, err
	}
	return s.find(func(r domain.UserRow) bool { return r.Email == email }), nil
}

func (s *Users) GetByID(_ context.Context, id string) (*domain.UserRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return nil, err
	}
	if r, ok := s.rows[id]; ok {
		return &r, nil
	}
	return nil, nil
}

func (s *Users) GetByExternalID(_ context.Context, externalID string) (*domain.UserRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return nil, err
	}
	return s.find(func(r domain.UserRow) bool { return r.ExternalID != "" && r.ExternalID == externalID }), nil
}

func (s *Users) Create(_ context.Context, name, email, passwordHash string) (*domain.UserRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return nil, err
	}
	return s.insert(domain.UserRow{Name: name, Email: email, PasswordHash: passwordHash})
}

func (s *Users) CreateExternal(_ context.Context, externalID, name, email string) (*domain.UserRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return nil, err
	}
	return s.insert(domain.UserRow{Name: name, Email: email, ExternalID: externalID})
}

func (s *Users) Count(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return 0, err
	}
	return int64(len(s.rows)), nil
}

// Put stores row as is, assigning an id when missing.
func (s *Users) Put(row domain.UserRow) domain.UserRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	s.rows[row.ID] = row
	return row
}

// insert enforces the unique email and external id constraints.
func (s *Users) insert(row domain.UserRow) (*domain.UserRow, error) {
	for _, r := range s.rows {
		if r.Email == row.Email || (row.ExternalID != "" && r.ExternalID == row.ExternalID) {
			return nil, domain.ErrDuplicate
		}
	}
	row.ID = uuid.NewString()
	s.rows[row.ID] = row
	return &row, nil
}

// Boards is an in-memory domain.BoardRepository.
type Boards struct {
	mu     sync.Mutex
	boards []domain.Board
	Err    error
	clock  time.Time
}

// NewBoards returns an empty board store.
func NewBoards() *Boards {
	return &Boards{clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// tick returns strictly increasing timestamps so ordering is stable.
func (s *Boards) tick() time.Time {
	s.clock = s.clock.Add(time.Millisecond)
	return s.clock
}

func (s *Boards) ListByUser(_ context.Context, userID string) ([]domain.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []domain.Board{}
	for _, b := range s.boards {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Boards) Create(_ context.Context, board domain.Board) (*domain.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	board.ID = uuid.NewString()
	board.CreatedAt = s.tick()
	board.UpdatedAt = board.CreatedAt
	s.boards = append(s.boards, board)
	return &board, nil
}

func (s *Boards) CreateMany(_ context.Context, boards []domain.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, b := range boards {
		b.ID = uuid.NewString()
		b.CreatedAt = s.tick()
		b.UpdatedAt = b.CreatedAt
		s.boards = append(s.boards, b)
	}
	return nil
}

func (s *Boards) Update(_ context.Context, userID, id string, patch domain.BoardPatch) (*domain.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.boards {
		b := &s.boards[i]
		if b.ID != id || b.UserID != userID {
			continue
		}
		if patch.Title != nil {
			b.Title = *patch.Title
		}
		if patch.ImageSet {
			b.Image = patch.Image
		}
		if patch.BackgroundMode != nil {
			b.BackgroundMode = *patch.BackgroundMode
		}
		if patch.BackgroundColor != nil {
			b.BackgroundColor = *patch.BackgroundColor
		}
		if patch.GradientFrom != nil {
			b.GradientFrom = *patch.GradientFrom
		}
		if patch.GradientTo != nil {
			b.GradientTo = *patch.GradientTo
		}
		b.UpdatedAt = s.tick()
		out := *b
		return &out, nil
	}
	return nil, nil
}

func (s *Boards) Delete(_ context.Context, userID, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	for i, b := range s.boards {
		if b.ID == id && b.UserID == userID {
			s.boards = append(s.boards[:i], s.boards[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Workspaces is an in-memory domain.WorkspaceRepository.
type Workspaces struct {
	mu    sync.Mutex
	items []domain.Workspace
	Err   error
	clock time.Time
}

// NewWorkspaces returns an empty workspace store.
func NewWorkspaces() *Workspaces {
	return &Workspaces{clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (s *Workspaces) tick() time.Time {
	s.clock = s.clock.Add(time.Millisecond)
	return s.clock
}

func (s *Workspaces) ListByUser(_ context.Context, userID string) ([]domain.Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []domain.Workspace{}
	for _, w := range s.items {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (s *Workspaces) Get(_ context.Context, userID, id string) (*domain.Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, w := range s.items {
		if w.ID == id && w.UserID == userID {
			return &w, nil
		}
	}
	return nil, nil
}

func (s *Workspaces) Create(_ context.Context, w domain.Workspace) (*domain.Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	w.ID = uuid.NewString()
	w.CreatedAt = s.tick()
	w.UpdatedAt = w.CreatedAt
	s.items = append(s.items, w)
	return &w, nil
}

func (s *Workspaces) Update(_ context.Context, userID, id string, patch domain.WorkspacePatch) (*domain.Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.items {
		w := &s.items[i]
		if w.ID != id || w.UserID != userID {
			continue
		}
		if patch.Name != nil {
			w.Name = *patch.Name
		}
		if patch.Theme != nil {
			w.Theme = *patch.Theme
		}
		w.UpdatedAt = s.tick()
		out := *w
		return &out, nil
	}
	return nil, nil
}

func (s *Workspaces) Delete(_ context.Context, userID, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	for i, w := range s.items {
		if w.ID == id && w.UserID == userID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Limiter is a domain.AttemptLimiter that allows up to Limit attempts per key.
type Limiter struct {
	mu     sync.Mutex
	counts map[string]int
	Limit  int
	Retry  time.Duration
	Err    error
}

// NewLimiter returns a limiter allowing limit attempts per key.
func NewLimiter(limit int) *Limiter {
	return &Limiter{counts: make(map[string]int), Limit: limit, Retry: time.Minute}
}

func (l *Limiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Err != nil {
		return false, 0, l.Err
	}
	l.counts[key]++
	if l.counts[key] > l.Limit {
		return false, l.Retry, nil
	}
	return true, 0, nil
}
