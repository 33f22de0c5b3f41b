package repository

import (
	rediskey "ContactServer/consts/redisKey"
	"ContactServer/model"
	"ContactServer/pkg/async"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// userRepositoryImpl 用户数据访问层实现
type userRepositoryImpl struct {
	db          *gorm.DB
	redisClient *redis.Client
}

// NewUserRepository 创建用户仓储实例
// redisClient 可以为 nil（降级到 MySQL-Only 模式）
func NewUserRepository(db *gorm.DB, redisClient *redis.Client) IUserRepository {
	return &userRepositoryImpl{db: db, redisClient: redisClient}
}

// GetByUUID 根据UUID查询用户信息
// Cache-Aside：优先查 Redis，未命中回源 MySQL 并异步回填；
// 不存在的用户写入空占位符 "{}" 短 TTL，防止缓存穿透
func (r *userRepositoryImpl) GetByUUID(ctx context.Context, uuid string) (*model.User, error) {
	cacheKey := rediskey.UserInfoKey(uuid)

	// ==================== 1. 先查 Redis 缓存 ====================
	if r.redisClient != nil {
		cachedData, err := r.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			if cachedData == "{}" {
				return nil, nil
			}
			var user model.User
			if jsonErr := json.Unmarshal([]byte(cachedData), &user); jsonErr == nil {
				return &user, nil
			}
			// 反序列化失败当作未命中，继续回源
		} else if err != redis.Nil {
			LogRedisError(ctx, err) // 记录日志，降级查 DB
		}
	}

	// ==================== 2. 缓存未命中，查询 MySQL ====================
	var user model.User
	err := r.db.WithContext(ctx).Where("uuid = ?", uuid).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 空占位符短 TTL，防止同一个不存在的 uuid 反复打到 DB
			r.setCacheAsync(ctx, cacheKey, "{}", rediskey.UserInfoEmptyTTL)
			return nil, nil
		}
		return nil, WrapDBError(err)
	}

	// ==================== 3. 异步回填缓存 ====================
	if userJSON, jsonErr := json.Marshal(&user); jsonErr == nil {
		r.setCacheAsync(ctx, cacheKey, string(userJSON), rediskey.UserInfoTTL)
	}

	return &user, nil
}

// GetByEmail 根据邮箱查询用户信息（不区分大小写）
// 不走缓存：此查询只出现在添加联系人和登录路径上，需要权威数据
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, WrapDBError(err)
	}

	return &user, nil
}

// ExistsByEmail 检查邮箱是否已被注册（不区分大小写）
func (r *userRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("LOWER(email) = LOWER(?)", email).
		Count(&count).Error
	if err != nil {
		return false, WrapDBError(err)
	}

	return count > 0, nil
}

// Create 创建新用户
// 邮箱唯一索引冲突翻译成 ErrDuplicateKey（并发注册同一邮箱时兜底）
func (r *userRepositoryImpl) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, WrapDBError(err)
	}
	return user, nil
}

// setCacheAsync 异步写缓存，带随机抖动 TTL，失败只记日志
func (r *userRepositoryImpl) setCacheAsync(ctx context.Context, key, value string, baseTTL time.Duration) {
	if r.redisClient == nil {
		return
	}
	ttl := getRandomExpireTime(baseTTL)
	async.RunSafe(ctx, func(runCtx context.Context) {
		if err := r.redisClient.Set(runCtx, key, value, ttl).Err(); err != nil {
			LogRedisError(runCtx, err)
		}
	}, 0)
}
