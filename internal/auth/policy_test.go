package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/portfolio-api/internal/model"
)

func owner(id uint64) *uint64 { return &id }

func TestCanMutate(t *testing.T) {
	t.Parallel()

	alice := model.User{ID: 1, Username: "alice", Role: model.RoleUser}
	bob := model.User{ID: 2, Username: "bob", Role: model.RoleUser}
	root := model.User{ID: 3, Username: "root", Role: model.RoleAdmin}
	unknown := model.User{ID: 1, Role: model.Role("superuser")}

	owned := []struct {
		name string
		res  func(*uint64) Owned
	}{
		{"project", func(o *uint64) Owned { return model.Project{UserID: o} }},
		{"testimonial", func(o *uint64) Owned { return model.Testimonial{UserID: o} }},
		{"profile", func(o *uint64) Owned { return model.Profile{UserID: o} }},
		{"article", func(o *uint64) Owned { return model.Article{UserID: o} }},
	}

	for _, kind := range owned {
		t.Run(kind.name, func(t *testing.T) {
			ofAlice := kind.res(owner(1))
			orphan := kind.res(nil)

			assert.True(t, CanMutate(alice, ofAlice), "owner may mutate")
			assert.False(t, CanMutate(bob, ofAlice), "other user may not")
			assert.True(t, CanMutate(root, ofAlice), "admin overrides ownership")

			assert.False(t, CanMutate(alice, orphan), "unowned rows are admin-only")
			assert.True(t, CanMutate(root, orphan))

			assert.False(t, CanMutate(unknown, ofAlice), "unknown roles get nothing")

			assert.ErrorIs(t, Authorize(bob, ofAlice), ErrForbidden)
			assert.NoError(t, Authorize(alice, ofAlice))
		})
	}
}
