package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/bp4sp4/korhrd-landing/internal/model"
	"github.com/bp4sp4/korhrd-landing/internal/repository"
	pkgerrors "github.com/bp4sp4/korhrd-landing/pkg/errors"
)

// ── Mock InquiryRepository ──

type mockInquiryRepo struct {
	inquiries map[int64]*model.Inquiry
	nextID    int64
	err       error // 非 nil 时所有方法返回该错误
}

func newMockInquiryRepo() *mockInquiryRepo {
	return &mockInquiryRepo{inquiries: make(map[int64]*model.Inquiry)}
}

func (m *mockInquiryRepo) Create(_ context.Context, inq *model.Inquiry) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	inq.ID = m.nextID
	copied := *inq
	m.inquiries[inq.ID] = &copied
	return nil
}

func (m *mockInquiryRepo) sorted() []model.Inquiry {
	out := make([]model.Inquiry, 0, len(m.inquiries))
	for _, inq := range m.inquiries {
		out = append(out, *inq)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (m *mockInquiryRepo) ListAll(_ context.Context) ([]model.Inquiry, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sorted(), nil
}

func (m *mockInquiryRepo) ListPage(_ context.Context, offset, limit int) ([]model.Inquiry, int64, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	all := m.sorted()
	total := int64(len(all))
	if offset > len(all) {
		return []model.Inquiry{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockInquiryRepo) Delete(_ context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.inquiries[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.inquiries, id)
	return nil
}

func (m *mockInquiryRepo) DeleteByIDs(_ context.Context, ids []int64) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	for _, id := range ids {
		if _, ok := m.inquiries[id]; !ok {
			return 0, pkgerrors.ErrStaleSelection
		}
	}
	for _, id := range ids {
		delete(m.inquiries, id)
	}
	return int64(len(ids)), nil
}

// ── Mock OperatorRepository ──

type mockOperatorRepo struct {
	operators map[string]*model.Operator // key: operator_id
}

func newMockOperatorRepo() *mockOperatorRepo {
	return &mockOperatorRepo{operators: make(map[string]*model.Operator)}
}

func (m *mockOperatorRepo) Create(_ context.Context, op *model.Operator) error {
	if op.OperatorID == "" {
		op.OperatorID = "op-" + op.Email
	}
	m.operators[op.OperatorID] = op
	return nil
}

func (m *mockOperatorRepo) GetByID(_ context.Context, id string) (*model.Operator, error) {
	if op, ok := m.operators[id]; ok {
		return op, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOperatorRepo) GetByEmail(_ context.Context, email string) (*model.Operator, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, op := range m.operators {
		if strings.ToLower(op.Email) == email {
			return op, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOperatorRepo) Update(_ context.Context, op *model.Operator) error {
	m.operators[op.OperatorID] = op
	return nil
}

// ── Mock TokenBlacklist ──

type mockBlacklist struct {
	mu      sync.Mutex
	entries map[string]time.Duration
	err     error
}

func newMockBlacklist() *mockBlacklist {
	return &mockBlacklist{entries: make(map[string]time.Duration)}
}

func (m *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.entries[jti] = ttl
	return nil
}

func (m *mockBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.entries[jti]
	return ok, nil
}

// ── 测试辅助 ──

var errMockDB = errors.New("connection reset by peer")

func newMockRepository() (*repository.Repository, *mockInquiryRepo, *mockOperatorRepo) {
	inqRepo := newMockInquiryRepo()
	opRepo := newMockOperatorRepo()
	return &repository.Repository{Inquiry: inqRepo, Operator: opRepo}, inqRepo, opRepo
}
