package service

import (
	"ContactServer/apps/contact/internal/dto"
	"ContactServer/apps/contact/internal/repository"
	"ContactServer/consts"
	"ContactServer/model"
	"ContactServer/pkg/jwt"
	"ContactServer/pkg/logger"
	"ContactServer/pkg/util"
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// authServiceImpl 用户认证服务实现
type authServiceImpl struct {
	userRepo repository.IUserRepository
}

// NewAuthService 创建认证服务实例
func NewAuthService(userRepo repository.IUserRepository) AuthService {
	return &authServiceImpl{userRepo: userRepo}
}

func toUserInfo(user *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		UUID:  user.Uuid,
		Name:  user.Name,
		Email: user.Email,
	}
}

// Register 用户注册
// 邮箱预检查只是提前提示，唯一索引才是最终防线，
// 冲突发生在插入时同样按已存在处理
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.TrimSpace(req.Email)

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		logger.Error(ctx, "检查邮箱是否注册失败", logger.ErrorField("error", err))
		return nil, err
	}
	if exists {
		return nil, NewBizError(consts.CodeUserAlreadyExist)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error(ctx, "密码加密失败", logger.ErrorField("error", err))
		return nil, NewBizError(consts.CodeInternalError)
	}

	user := &model.User{
		Uuid:     util.NewUID(),
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: string(hashed),
	}
	if _, err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, NewBizError(consts.CodeUserAlreadyExist)
		}
		logger.Error(ctx, "创建用户失败", logger.ErrorField("error", err))
		return nil, err
	}

	token, err := jwt.GenerateToken(user.Uuid)
	if err != nil {
		logger.Error(ctx, "生成 token 失败", logger.ErrorField("error", err))
		return nil, NewBizError(consts.CodeInternalError)
	}

	logger.Info(ctx, "用户注册成功", logger.String("uuid", user.Uuid))

	return &dto.AuthResponse{
		Token: token,
		User:  toUserInfo(user),
	}, nil
}

// Login 邮箱密码登录
// 用户不存在与密码错误统一返回 11003，避免暴露邮箱注册状态
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		logger.Error(ctx, "登录查询用户失败", logger.ErrorField("error", err))
		return nil, err
	}
	if user == nil {
		return nil, NewBizError(consts.CodePasswordError)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, NewBizError(consts.CodePasswordError)
	}

	token, err := jwt.GenerateToken(user.Uuid)
	if err != nil {
		logger.Error(ctx, "生成 token 失败", logger.ErrorField("error", err))
		return nil, NewBizError(consts.CodeInternalError)
	}

	logger.Info(ctx, "用户登录成功", logger.String("uuid", user.Uuid))

	return &dto.AuthResponse{
		Token: token,
		User:  toUserInfo(user),
	}, nil
}
