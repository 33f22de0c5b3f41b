package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"ContactServer/apps/contact/internal/dto"
	"ContactServer/apps/contact/internal/repository"
	"ContactServer/config"
	"ContactServer/consts"
	"ContactServer/model"
	"ContactServer/pkg/jwt"
	"ContactServer/pkg/logger"
	"ContactServer/pkg/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var authSvcTestOnce sync.Once

func initAuthSvcTest(t *testing.T) {
	t.Helper()
	authSvcTestOnce.Do(func() {
		logger.ReplaceGlobal(zap.NewNop())
		jwt.Init(config.DefaultJWTConfig())
		if err := util.InitIDNode(1); err != nil {
			t.Fatalf("init id node: %v", err)
		}
	})
}

type fakeAuthUserRepo struct {
	repository.IUserRepository

	getByEmailFn    func(context.Context, string) (*model.User, error)
	existsByEmailFn func(context.Context, string) (bool, error)
	createFn        func(context.Context, *model.User) (*model.User, error)
}

func (f *fakeAuthUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if f.getByEmailFn == nil {
		return nil, errors.New("unexpected GetByEmail call")
	}
	return f.getByEmailFn(ctx, email)
}

func (f *fakeAuthUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if f.existsByEmailFn == nil {
		return false, nil
	}
	return f.existsByEmailFn(ctx, email)
}

func (f *fakeAuthUserRepo) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if f.createFn == nil {
		return nil, errors.New("unexpected Create call")
	}
	return f.createFn(ctx, user)
}

func dtoRegister(name, email, password string) *dto.RegisterRequest {
	return &dto.RegisterRequest{Name: name, Email: email, Password: password}
}

func dtoLogin(email, password string) *dto.LoginRequest {
	return &dto.LoginRequest{Email: email, Password: password}
}

func hashAuthPassword(t *testing.T, raw string) string {
	t.Helper()
	v, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	require.NoError(t, err)
	return string(v)
}

func TestAuthServiceRegister(t *testing.T) {
	initAuthSvcTest(t)

	t.Run("email_already_registered", func(t *testing.T) {
		svc := NewAuthService(&fakeAuthUserRepo{
			existsByEmailFn: func(_ context.Context, email string) (bool, error) {
				require.Equal(t, "taken@example.com", email)
				return true, nil
			},
		})
		resp, err := svc.Register(context.Background(), dtoRegister("Alice", "taken@example.com", "secret-1"))
		require.Nil(t, resp)
		requireBizCode(t, err, consts.CodeUserAlreadyExist)
	})

	t.Run("concurrent_duplicate_translated", func(t *testing.T) {
		// 预检查未命中，但插入撞唯一索引：两个注册请求并发提交同一邮箱
		svc := NewAuthService(&fakeAuthUserRepo{
			createFn: func(_ context.Context, _ *model.User) (*model.User, error) {
				return nil, repository.ErrDuplicateKey
			},
		})
		resp, err := svc.Register(context.Background(), dtoRegister("Alice", "race@example.com", "secret-1"))
		require.Nil(t, resp)
		requireBizCode(t, err, consts.CodeUserAlreadyExist)
	})

	t.Run("success_hashes_password_and_issues_token", func(t *testing.T) {
		var stored *model.User
		svc := NewAuthService(&fakeAuthUserRepo{
			createFn: func(_ context.Context, user *model.User) (*model.User, error) {
				stored = user
				user.Id = 1
				return user, nil
			},
		})
		resp, err := svc.Register(context.Background(), dtoRegister("  Alice  ", "new@example.com", "secret-1"))
		require.NoError(t, err)
		require.NotNil(t, resp)
		require.NotNil(t, stored)

		// 明文不落库
		require.NotEqual(t, "secret-1", stored.Password)
		require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret-1")))
		assert.Equal(t, "Alice", stored.Name)
		assert.NotEmpty(t, stored.Uuid)

		require.NotEmpty(t, resp.Token)
		claims, err := jwt.ParseToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, stored.Uuid, claims.UserUUID)
		assert.Equal(t, "new@example.com", resp.User.Email)
	})
}

func TestAuthServiceLogin(t *testing.T) {
	initAuthSvcTest(t)

	t.Run("unknown_email_same_error_as_bad_password", func(t *testing.T) {
		svc := NewAuthService(&fakeAuthUserRepo{
			getByEmailFn: func(_ context.Context, _ string) (*model.User, error) {
				return nil, nil
			},
		})
		resp, err := svc.Login(context.Background(), dtoLogin("ghost@example.com", "whatever"))
		require.Nil(t, resp)
		requireBizCode(t, err, consts.CodePasswordError)
	})

	t.Run("wrong_password", func(t *testing.T) {
		svc := NewAuthService(&fakeAuthUserRepo{
			getByEmailFn: func(_ context.Context, _ string) (*model.User, error) {
				return &model.User{
					Uuid:     "u1",
					Email:    "alice@example.com",
					Password: hashAuthPassword(t, "right-password"),
				}, nil
			},
		})
		resp, err := svc.Login(context.Background(), dtoLogin("alice@example.com", "wrong-password"))
		require.Nil(t, resp)
		requireBizCode(t, err, consts.CodePasswordError)
	})

	t.Run("success", func(t *testing.T) {
		svc := NewAuthService(&fakeAuthUserRepo{
			getByEmailFn: func(_ context.Context, email string) (*model.User, error) {
				require.Equal(t, "alice@example.com", email)
				return &model.User{
					Uuid:     "u1",
					Name:     "Alice",
					Email:    "alice@example.com",
					Password: hashAuthPassword(t, "secret-1"),
				}, nil
			},
		})
		resp, err := svc.Login(context.Background(), dtoLogin("alice@example.com", "secret-1"))
		require.NoError(t, err)
		require.NotNil(t, resp)
		require.NotEmpty(t, resp.Token)

		claims, err := jwt.ParseToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.UserUUID)
		assert.Equal(t, "Alice", resp.User.Name)
	})
}
