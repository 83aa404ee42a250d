package redisstore

import (
	"strings"

	"github.com/pverlaine/convene/internal/models"
	"github.com/pverlaine/convene/internal/store"
	"github.com/redis/go-redis/v9"
)

func userKey(userID string) string   { return key("user", userID) }
func userNameKey(name string) string { return key("user", "name", strings.ToLower(name)) }
func usersIndexKey() string          { return key("users") }

func (s *Store) CreateUser(user *models.User) error {
	ctx, cancel := operationContext()
	defer cancel()

	if err := s.setJSON(ctx, userKey(user.ID), user); err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, userNameKey(user.Name), user.ID, 0)
	pipe.SAdd(ctx, usersIndexKey(), user.ID)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Store) FindUserByID(userID string) (models.User, error) {
	ctx, cancel := operationContext()
	defer cancel()

	var user models.User
	found, err := s.getJSON(ctx, userKey(userID), &user)
	if err != nil {
		return models.User{}, err
	}
	if !found {
		return models.User{}, store.ErrNotFound
	}
	return user, nil
}

func (s *Store) FindUserByName(name string) (models.User, error) {
	ctx, cancel := operationContext()
	defer cancel()

	userID, err := s.client.Get(ctx, userNameKey(name)).Result()
	if err == redis.Nil {
		return models.User{}, store.ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return s.FindUserByID(userID)
}

func (s *Store) ListUsers() ([]models.User, error) {
	ctx, cancel := operationContext()
	defer cancel()

	userIDs, err := s.client.SMembers(ctx, usersIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(userIDs))
	for _, userID := range userIDs {
		var user models.User
		found, err := s.getJSON(ctx, userKey(userID), &user)
		if err != nil {
			return nil, err
		}
		if found {
			users = append(users, user)
		}
	}
	sortUsers(users)
	return users, nil
}

func (s *Store) CountUsers() (int64, error) {
	ctx, cancel := operationContext()
	defer cancel()
	return s.client.SCard(ctx, usersIndexKey()).Result()
}
