package policy

import (
	"testing"

	"ContactServer/model"

	"github.com/stretchr/testify/assert"
)

func TestViewAnyAndCreate(t *testing.T) {
	assert.True(t, CanViewAny("u1"))
	assert.True(t, CanCreate("u1"))

	// 未登录（空 actor）一律拒绝
	assert.False(t, CanViewAny(""))
	assert.False(t, CanCreate(""))
}

func TestViewAndDelete(t *testing.T) {
	contact := &model.Contact{Id: 1, OwnerUuid: "u1", PersonUuid: "u2"}

	t.Run("owner_allowed", func(t *testing.T) {
		assert.True(t, CanView("u1", contact))
		assert.True(t, CanDelete("u1", contact))
	})

	t.Run("other_user_denied", func(t *testing.T) {
		assert.False(t, CanView("u2", contact))
		assert.False(t, CanDelete("u2", contact))
	})

	t.Run("person_side_has_no_rights", func(t *testing.T) {
		// 关系是有向的：被添加方对这条记录没有任何权限
		assert.False(t, CanView(contact.PersonUuid, contact))
		assert.False(t, CanDelete(contact.PersonUuid, contact))
	})

	t.Run("nil_contact_denied", func(t *testing.T) {
		assert.False(t, CanView("u1", nil))
		assert.False(t, CanDelete("u1", nil))
	})

	t.Run("empty_actor_denied", func(t *testing.T) {
		assert.False(t, CanView("", contact))
		assert.False(t, CanDelete("", contact))
	})
}
