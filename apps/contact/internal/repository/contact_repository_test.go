package repository

import (
	"context"
	"testing"

	"ContactServer/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newContactTestDB 打开内存库并建表，每个测试独立一份
func newContactTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Contact{}))
	return db
}

func seedContactUser(t *testing.T, db *gorm.DB, uuid, name, email string) {
	t.Helper()
	require.NoError(t, db.Create(&model.User{
		Uuid:     uuid,
		Name:     name,
		Email:    email,
		Password: "x",
	}).Error)
}

func seedContact(t *testing.T, db *gorm.DB, ownerUUID, personUUID string) int64 {
	t.Helper()
	contact := &model.Contact{OwnerUuid: ownerUUID, PersonUuid: personUUID}
	require.NoError(t, db.Create(contact).Error)
	return contact.Id
}

func TestContactRepositoryGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found_with_person_fields", func(t *testing.T) {
		db := newContactTestDB(t)
		seedContactUser(t, db, "owner-1", "Owner", "owner@example.com")
		seedContactUser(t, db, "person-1", "Alice", "alice@example.com")
		id := seedContact(t, db, "owner-1", "person-1")

		repo := NewContactRepository(db)
		row, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "owner-1", row.OwnerUuid)
		assert.Equal(t, "person-1", row.PersonUuid)
		assert.Equal(t, "Alice", row.PersonName)
		assert.Equal(t, "alice@example.com", row.PersonEmail)
	})

	t.Run("not_found", func(t *testing.T) {
		db := newContactTestDB(t)
		repo := NewContactRepository(db)

		_, err := repo.GetByID(ctx, 404)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("person_soft_deleted_still_loadable_and_deletable", func(t *testing.T) {
		db := newContactTestDB(t)
		seedContactUser(t, db, "owner-1", "Owner", "owner@example.com")
		seedContactUser(t, db, "person-1", "Alice", "alice@example.com")
		id := seedContact(t, db, "owner-1", "person-1")

		// 对方账号软删除后，列表可以隐藏这条关系，但归属者必须仍能查到并删除它
		require.NoError(t, db.Delete(&model.User{}, "uuid = ?", "person-1").Error)

		repo := NewContactRepository(db)
		row, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Alice", row.PersonName)

		require.NoError(t, repo.Delete(ctx, id))

		_, err = repo.GetByID(ctx, id)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})
}

func TestContactRepositoryList(t *testing.T) {
	ctx := context.Background()

	t.Run("scoped_to_owner", func(t *testing.T) {
		db := newContactTestDB(t)
		seedContactUser(t, db, "owner-1", "Owner", "owner@example.com")
		seedContactUser(t, db, "owner-2", "Other", "other@example.com")
		seedContactUser(t, db, "person-1", "Alice", "alice@example.com")
		seedContact(t, db, "owner-1", "person-1")
		seedContact(t, db, "owner-2", "person-1")

		repo := NewContactRepository(db)
		rows, total, err := repo.List(ctx, "owner-1", "", "name", "asc", 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, rows, 1)
		assert.Equal(t, "owner-1", rows[0].OwnerUuid)
	})

	t.Run("excludes_soft_deleted_person", func(t *testing.T) {
		db := newContactTestDB(t)
		seedContactUser(t, db, "owner-1", "Owner", "owner@example.com")
		seedContactUser(t, db, "person-1", "Alice", "alice@example.com")
		seedContactUser(t, db, "person-2", "Bob", "bob@example.com")
		seedContact(t, db, "owner-1", "person-1")
		seedContact(t, db, "owner-1", "person-2")

		require.NoError(t, db.Delete(&model.User{}, "uuid = ?", "person-1").Error)

		repo := NewContactRepository(db)
		rows, total, err := repo.List(ctx, "owner-1", "", "name", "asc", 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, rows, 1)
		assert.Equal(t, "Bob", rows[0].PersonName)
	})
}

func TestContactRepositoryCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate_pair_returns_duplicate_key", func(t *testing.T) {
		db := newContactTestDB(t)
		seedContactUser(t, db, "owner-1", "Owner", "owner@example.com")
		seedContactUser(t, db, "person-1", "Alice", "alice@example.com")

		repo := NewContactRepository(db)
		require.NoError(t, repo.Create(ctx, &model.Contact{OwnerUuid: "owner-1", PersonUuid: "person-1"}))

		err := repo.Create(ctx, &model.Contact{OwnerUuid: "owner-1", PersonUuid: "person-1"})
		assert.ErrorIs(t, err, ErrDuplicateKey)
	})
}

func TestContactRepositoryDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("already_gone_returns_not_found", func(t *testing.T) {
		db := newContactTestDB(t)
		repo := NewContactRepository(db)

		assert.ErrorIs(t, repo.Delete(ctx, 404), ErrRecordNotFound)
	})

	t.Run("deleted_pair_can_be_readded", func(t *testing.T) {
		db := newContactTestDB(t)
		seedContactUser(t, db, "owner-1", "Owner", "owner@example.com")
		seedContactUser(t, db, "person-1", "Alice", "alice@example.com")
		id := seedContact(t, db, "owner-1", "person-1")

		repo := NewContactRepository(db)
		require.NoError(t, repo.Delete(ctx, id))

		// 硬删除释放唯一索引，同一对用户可以重新添加
		assert.NoError(t, repo.Create(ctx, &model.Contact{OwnerUuid: "owner-1", PersonUuid: "person-1"}))
	})
}

func TestContactRepositoryHasContact(t *testing.T) {
	ctx := context.Background()
	db := newContactTestDB(t)
	seedContactUser(t, db, "owner-1", "Owner", "owner@example.com")
	seedContactUser(t, db, "person-1", "Alice", "alice@example.com")
	seedContact(t, db, "owner-1", "person-1")

	repo := NewContactRepository(db)

	has, err := repo.HasContact(ctx, "owner-1", "person-1")
	require.NoError(t, err)
	assert.True(t, has)

	// 方向性：person 没有反向添加 owner
	has, err = repo.HasContact(ctx, "person-1", "owner-1")
	require.NoError(t, err)
	assert.False(t, has)
}
