package fakeuserrepo

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jrsteele09/ular-tangga-admin/users"
)

var _ users.Lister = (*FakeUserRepo)(nil)

// FakeUserRepo is an in-memory users.Lister. Calls records the page/limit
// pairs it was asked for so tests can assert on fetch behaviour.
type FakeUserRepo struct {
	users map[string]*users.Profile
	lock  sync.RWMutex
	err   error
	calls [][2]int
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users: make(map[string]*users.Profile),
	}
}

func (ur *FakeUserRepo) Upsert(user *users.Profile) {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	ur.users[user.ID] = user
}

// FailWith makes every subsequent ListUsers call return err
func (ur *FakeUserRepo) FailWith(err error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()
	ur.err = err
}

func (ur *FakeUserRepo) Calls() [][2]int {
	ur.lock.RLock()
	defer ur.lock.RUnlock()
	return append([][2]int(nil), ur.calls...)
}

func (ur *FakeUserRepo) ListUsers(_ context.Context, token string, page, limit int) (*users.ListResponse, error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	ur.calls = append(ur.calls, [2]int{page, limit})
	if ur.err != nil {
		return nil, ur.err
	}
	if token == "" {
		return nil, errors.New("unauthorized")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	userList := make([]*users.Profile, 0, len(ur.users))
	for _, v := range ur.users {
		userList = append(userList, v)
	}
	sort.Slice(userList, func(i, j int) bool {
		return userList[i].ID < userList[j].ID
	})

	total := len(userList)
	offset := (page - 1) * limit
	end := offset + limit
	if offset > total {
		offset = total
	}
	if end > total {
		end = total
	}

	return &users.ListResponse{
		Users: userList[offset:end],
		Pagination: &users.Pagination{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: (total + limit - 1) / limit,
		},
	}, nil
}
