package store

import (
	"context"
	"sync"

	"github.com/mishasvintus/team_roster_admin/internal/domain"
)

type listResult struct {
	items []domain.TeamMember
	err   error
}

// fakeMembers is an in-memory Remote for team members. When gated, every List
// call announces itself on entered and blocks until its own gate is released.
type fakeMembers struct {
	mu sync.Mutex

	items   []domain.TeamMember
	listErr error

	getFn    func(id int64) (domain.TeamMember, error)
	createFn func(d domain.TeamMemberDraft) (domain.TeamMember, error)
	updateFn func(id int64, d domain.TeamMemberDraft) (domain.TeamMember, error)
	deleteFn func(id int64) error

	gates     []chan listResult
	entered   chan int
	listCalls int

	deleteCalls []int64
}

func newGatedMembers(n int) *fakeMembers {
	f := &fakeMembers{entered: make(chan int, n)}
	for i := 0; i < n; i++ {
		f.gates = append(f.gates, make(chan listResult, 1))
	}
	return f
}

func (f *fakeMembers) List(ctx context.Context) ([]domain.TeamMember, error) {
	f.mu.Lock()
	call := f.listCalls
	f.listCalls++
	gated := call < len(f.gates)
	items, err := f.items, f.listErr
	f.mu.Unlock()

	if !gated {
		return items, err
	}
	f.entered <- call
	select {
	case r := <-f.gates[call]:
		return r.items, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *fakeMembers) Get(_ context.Context, id int64) (domain.TeamMember, error) {
	if f.getFn != nil {
		return f.getFn(id)
	}
	return domain.TeamMember{}, nil
}

func (f *fakeMembers) Create(_ context.Context, d domain.TeamMemberDraft) (domain.TeamMember, error) {
	if f.createFn != nil {
		return f.createFn(d)
	}
	return domain.TeamMember{}, nil
}

func (f *fakeMembers) Update(_ context.Context, id int64, d domain.TeamMemberDraft) (domain.TeamMember, error) {
	if f.updateFn != nil {
		return f.updateFn(id, d)
	}
	return domain.TeamMember{}, nil
}

func (f *fakeMembers) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	f.deleteCalls = append(f.deleteCalls, id)
	f.mu.Unlock()
	if f.deleteFn != nil {
		return f.deleteFn(id)
	}
	return nil
}

func newMembersStore(remote Remote[domain.TeamMember, int64, domain.TeamMemberDraft]) *TeamMembers {
	return New(NameTeamMembers, remote, domain.TeamMember.Key)
}

func member(id int64, first string) domain.TeamMember {
	return domain.TeamMember{
		ID:          id,
		FirstName:   first,
		LastName:    "Member",
		Email:       first + "@example.com",
		PhoneNumber: "(555) 123-4567",
	}
}

func int64Ptr(v int64) *int64 { return &v }
