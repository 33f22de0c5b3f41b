package middleware

import (
	"ContactServer/consts"
	rediskey "ContactServer/consts/redisKey"
	"ContactServer/pkg/logger"
	"ContactServer/pkg/result"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// luaTokenBucket Redis 令牌桶 Lua 脚本
// 原子性地补充令牌并判断是否放行
// 参数：
//
//	KEYS[1]: 限流 key (如: rate:limit:ip:{ip})
//	ARGV[1]: 当前时间戳 (毫秒)
//	ARGV[2]: 令牌桶容量
//	ARGV[3]: 每秒产生的令牌数
//	ARGV[4]: 每次请求消耗的令牌数
//
// 返回值：1 放行，0 令牌不足
const luaTokenBucket = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local rate = tonumber(ARGV[3])
local requested = tonumber(ARGV[4])

local info = redis.call('HMGET', key, 'tokens', 'last_time')
local current_tokens = tonumber(info[1])
local last_time = tonumber(info[2])

if current_tokens == nil then
    current_tokens = capacity
end
if last_time == nil then
    last_time = now
end

local time_diff = math.max(0, now - last_time)

-- 补充令牌: (时间差ms * 速率) / 1000
local new_tokens = math.floor((time_diff * rate) / 1000)

if new_tokens > 0 then
    current_tokens = math.min(capacity, current_tokens + new_tokens)
    last_time = now -- 只有产生新令牌才推进时间，防止精度丢失
end

local allowed = 0
if current_tokens >= requested then
    current_tokens = current_tokens - requested
    allowed = 1
end

redis.call('HMSET', key, 'tokens', current_tokens, 'last_time', last_time)

-- 过期时间：桶填满所需时间 * 2，至少 60 秒
local fill_time = math.ceil(capacity / rate)
local ttl = math.max(60, fill_time * 2)
redis.call('EXPIRE', key, ttl)

return allowed
`

// localLimiterCacheSize 本地限流器 LRU 容量，超出后最久未活跃的 IP 被淘汰
const localLimiterCacheSize = 4096

// RateLimiter IP 级别限流器
// Redis 可用时多实例共享一个令牌桶；Redis 不可用或未配置时
// 回退到进程内 LRU 缓存的 rate.Limiter，按 IP 各自限流
type RateLimiter struct {
	redisClient *redis.Client
	rate        float64 // 每秒产生的令牌数
	burst       int     // 令牌桶容量

	mu    sync.RWMutex
	local *lru.Cache[string, *rate.Limiter]
}

// NewRateLimiter 创建限流器
// r: 每秒产生的令牌数；burst: 令牌桶容量
func NewRateLimiter(r float64, burst int) (*RateLimiter, error) {
	local, err := lru.New[string, *rate.Limiter](localLimiterCacheSize)
	if err != nil {
		return nil, err
	}
	return &RateLimiter{
		rate:  r,
		burst: burst,
		local: local,
	}, nil
}

// SetRedisClient 设置 Redis 客户端（延迟注入，避免初始化顺序问题）
func (r *RateLimiter) SetRedisClient(client *redis.Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.redisClient = client
}

// Allow 检查是否允许请求通过
// Redis 出错一律回退到本地限流，不因限流组件故障拒绝请求
func (r *RateLimiter) Allow(ctx context.Context, ip string) bool {
	r.mu.RLock()
	client := r.redisClient
	r.mu.RUnlock()

	if client == nil {
		return r.allowLocal(ip)
	}

	// Redis 操作加独立短超时（50ms），防止 Redis 响应慢拖死请求链路
	redisCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()

	key := rediskey.RateLimitIPKey(ip)
	cmd := client.Eval(redisCtx, luaTokenBucket, []string{key},
		time.Now().UnixMilli(), r.burst, r.rate, 1)
	val, err := cmd.Result()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			logger.Warn(ctx, "Redis 限流检查超时，回退本地限流",
				logger.String("ip", ip),
				logger.ErrorField("error", err),
			)
		} else {
			logger.Error(ctx, "Redis 限流检查失败，回退本地限流",
				logger.String("ip", ip),
				logger.ErrorField("error", err),
			)
		}
		return r.allowLocal(ip)
	}

	allowed, ok := val.(int64)
	if !ok {
		logger.Warn(ctx, "Redis 限流返回值类型错误，回退本地限流",
			logger.String("ip", ip),
			logger.Any("result", val),
		)
		return r.allowLocal(ip)
	}

	return allowed == 1
}

// allowLocal 进程内令牌桶，按 IP 从 LRU 取（或创建）限流器
func (r *RateLimiter) allowLocal(ip string) bool {
	limiter, ok := r.local.Get(ip)
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(r.rate), r.burst)
		// 并发创建同一 IP 的限流器时后写覆盖先写，偏差可接受
		r.local.Add(ip, limiter)
	}
	return limiter.Allow()
}

// ==================== IP 限流中间件 ====================

var globalLimiter *RateLimiter

// InitRateLimiter 初始化全局限流器
// r: 每秒产生的令牌数；burst: 令牌桶容量；redisClient 可为 nil（纯本地限流）
func InitRateLimiter(r float64, burst int, redisClient *redis.Client) error {
	limiter, err := NewRateLimiter(r, burst)
	if err != nil {
		return err
	}
	limiter.SetRedisClient(redisClient)
	globalLimiter = limiter

	logger.Info(context.Background(), "限流器初始化完成",
		logger.Float64("rate", r),
		logger.Int("burst", burst),
		logger.Bool("redis", redisClient != nil),
	)
	return nil
}

// IPRateLimitMiddleware 基于令牌桶的 IP 级别限流中间件
func IPRateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 限流器未初始化，放行请求
		if globalLimiter == nil {
			c.Next()
			return
		}

		ip, ok := GetClientIPSafe(c)
		if !ok {
			// 无法获取 IP，放行请求（记录警告）
			logger.Warn(NewContextWithGin(c), "无法获取客户端 IP，跳过限流检查",
				logger.String("path", c.Request.URL.Path),
			)
			c.Next()
			return
		}

		if !globalLimiter.Allow(c.Request.Context(), ip) {
			logger.Warn(NewContextWithGin(c), "IP 请求被限流",
				logger.String("ip", ip),
				logger.String("path", c.Request.URL.Path),
				logger.String("method", c.Request.Method),
			)
			result.Fail(c, nil, consts.CodeTooManyRequests)
			c.Abort()
			return
		}

		c.Next()
	}
}
