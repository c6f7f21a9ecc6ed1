package memory

import (
	"context"
	"sync"

	"github.com/Leopold1975/signage_control/internal/signage/domain/models"
	"github.com/Leopold1975/signage_control/internal/signage/repository/userrepo"
)

type UsersMemoryRepo struct {
	mu     sync.RWMutex
	users  map[string]models.User
	nextID int
}

func New() *UsersMemoryRepo {
	return &UsersMemoryRepo{
		users:  make(map[string]models.User),
		nextID: 1,
	}
}

func (ur *UsersMemoryRepo) CreateUser(_ context.Context, u models.User) error {
	ur.mu.Lock()
	defer ur.mu.Unlock()

	if _, ok := ur.users[u.Username]; ok {
		return userrepo.ErrAleradyExists
	}

	u.ID = ur.nextID
	ur.nextID++
	ur.users[u.Username] = u

	return nil
}

func (ur *UsersMemoryRepo) GetUser(_ context.Context, username string) (models.User, error) {
	ur.mu.RLock()
	defer ur.mu.RUnlock()

	u, ok := ur.users[username]
	if !ok {
		return models.User{}, userrepo.ErrNotFound
	}

	return u, nil
}
