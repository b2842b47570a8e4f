package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"exam-companion-be/internal/entity"
	"exam-companion-be/internal/pkg/logger"
	"exam-companion-be/internal/repository/contract"
	"exam-companion-be/internal/repository/specification"
	"exam-companion-be/internal/repository/unitofwork"
	"exam-companion-be/pkg/llm"

	"github.com/google/uuid"
)

// In-memory fakes for the repository contracts so service behavior can be
// tested without a database.

type fakeStore struct {
	mu       sync.Mutex
	codes    map[uuid.UUID]*entity.AccessCode
	sessions map[uuid.UUID]*entity.ChatSession
	messages []*entity.ChatMessage
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		codes:    make(map[uuid.UUID]*entity.AccessCode),
		sessions: make(map[uuid.UUID]*entity.ChatSession),
	}
}

type fakeFactory struct {
	store *fakeStore
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: f.store}
}

type fakeUow struct {
	store *fakeStore
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) AccessCodeRepository() contract.AccessCodeRepository {
	return &fakeAccessCodeRepo{store: u.store}
}

func (u *fakeUow) ChatSessionRepository() contract.ChatSessionRepository {
	return &fakeChatSessionRepo{store: u.store}
}

func (u *fakeUow) ChatMessageRepository() contract.ChatMessageRepository {
	return &fakeChatMessageRepo{store: u.store}
}

// --- Access code repo ---

type fakeAccessCodeRepo struct {
	store *fakeStore
}

func (r *fakeAccessCodeRepo) Create(ctx context.Context, code *entity.AccessCode) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *code
	r.store.codes[code.Id] = &cp
	return nil
}

func (r *fakeAccessCodeRepo) Update(ctx context.Context, code *entity.AccessCode) error {
	return r.Create(ctx, code)
}

func (r *fakeAccessCodeRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AccessCode, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *fakeAccessCodeRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AccessCode, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*entity.AccessCode
	for _, c := range r.store.codes {
		if matchAccessCode(c, specs) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginateAccessCodes(out, specs), nil
}

func (r *fakeAccessCodeRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

func paginateAccessCodes(codes []*entity.AccessCode, specs []specification.Specification) []*entity.AccessCode {
	for _, s := range specs {
		if p, ok := s.(specification.Pagination); ok {
			if p.Offset >= len(codes) {
				return nil
			}
			codes = codes[p.Offset:]
			if p.Limit < len(codes) {
				codes = codes[:p.Limit]
			}
		}
	}
	return codes
}

func matchAccessCode(c *entity.AccessCode, specs []specification.Specification) bool {
	for _, s := range specs {
		switch spec := s.(type) {
		case specification.ByID:
			if c.Id != spec.ID {
				return false
			}
		case specification.ByCode:
			if c.Code != spec.Code {
				return false
			}
		case specification.ByStatus:
			if string(c.Status) != spec.Status {
				return false
			}
		}
	}
	return true
}

// --- Chat session repo ---

type fakeChatSessionRepo struct {
	store *fakeStore
}

func (r *fakeChatSessionRepo) Create(ctx context.Context, session *entity.ChatSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *session
	r.store.sessions[session.Id] = &cp
	return nil
}

func (r *fakeChatSessionRepo) Update(ctx context.Context, session *entity.ChatSession) error {
	return r.Create(ctx, session)
}

func (r *fakeChatSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.sessions, id)
	return nil
}

func (r *fakeChatSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *fakeChatSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*entity.ChatSession
	for _, s := range r.store.sessions {
		if matchSession(s, specs) {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeChatSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

func matchSession(s *entity.ChatSession, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch spec := sp.(type) {
		case specification.ByID:
			if s.Id != spec.ID {
				return false
			}
		case specification.OwnedByAccessCode:
			if s.AccessCodeId != spec.AccessCodeID {
				return false
			}
		}
	}
	return true
}

// --- Chat message repo ---

type fakeChatMessageRepo struct {
	store *fakeStore
}

func (r *fakeChatMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *message
	r.store.messages = append(r.store.messages, &cp)
	return nil
}

func (r *fakeChatMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*entity.ChatMessage
	for _, m := range r.store.messages {
		if matchMessage(m, specs) {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeChatMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

func (r *fakeChatMessageRepo) DeleteByChatSessionId(ctx context.Context, chatSessionId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	kept := r.store.messages[:0]
	for _, m := range r.store.messages {
		if m.ChatSessionId != chatSessionId {
			kept = append(kept, m)
		}
	}
	r.store.messages = kept
	return nil
}

func matchMessage(m *entity.ChatMessage, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch spec := sp.(type) {
		case specification.ByChatSessionID:
			if m.ChatSessionId != spec.ChatSessionID {
				return false
			}
		}
	}
	return true
}

// --- LLM fake ---

type fakeLLM struct {
	mu       sync.Mutex
	reply    string
	fail     bool
	calls    int
	history  [][]llm.Message
	lastOpts llm.Options
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.history = append(f.history, history)
	f.lastOpts = llm.Options{}
	for _, opt := range options {
		opt(&f.lastOpts)
	}
	if f.fail {
		return "", errors.New("provider unavailable")
	}
	return f.reply, nil
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

// --- Logger fake ---

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
func (nopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (nopLogger) GetLogById(id string) (*logger.LogEntry, error) {
	return nil, errors.New("log not found")
}
