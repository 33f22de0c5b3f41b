package handler

import (
	"ContactServer/apps/contact/internal/dto"
	"ContactServer/apps/contact/internal/middleware"
	"ContactServer/apps/contact/internal/service"
	"ContactServer/consts"
	"ContactServer/pkg/logger"
	"ContactServer/pkg/result"

	"github.com/gin-gonic/gin"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register 用户注册接口
// @Summary 用户注册
// @Description 用户通过邮箱和密码注册
// @Tags 认证接口
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "注册请求"
// @Success 200 {object} dto.AuthResponse
// @Router /api/v1/public/user/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	// 1. 绑定请求数据
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// 参数错误由客户端输入导致,属于正常业务流程,不记录日志
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	// 2. 调用服务层处理业务逻辑（依赖注入）
	resp, err := h.authService.Register(ctx, &req)
	if err != nil {
		// 检查是否为业务错误
		if consts.IsNonServerError(service.ExtractErrorCode(err)) {
			// 业务逻辑失败（如邮箱已注册等）
			result.Fail(c, nil, service.ExtractErrorCode(err))
			return
		}

		// 其他内部错误
		logger.Error(ctx, "注册服务内部错误",
			logger.ErrorField("error", err),
		)
		result.Fail(c, nil, consts.CodeInternalError)
		return
	}

	// 3. 返回成功响应
	result.Success(c, resp)
}

// Login 用户登录接口
// @Summary 用户登录
// @Description 用户通过邮箱和密码登录
// @Tags 认证接口
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录请求"
// @Success 200 {object} dto.AuthResponse
// @Router /api/v1/public/user/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	// 1. 绑定请求数据
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// 参数错误由客户端输入导致,属于正常业务流程,不记录日志
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	// 2. 调用服务层处理业务逻辑（依赖注入）
	resp, err := h.authService.Login(ctx, &req)
	if err != nil {
		// 检查是否为业务错误
		if consts.IsNonServerError(service.ExtractErrorCode(err)) {
			// 业务逻辑失败（如密码错误等）
			result.Fail(c, nil, service.ExtractErrorCode(err))
			return
		}

		// 其他内部错误
		logger.Error(ctx, "登录服务内部错误",
			logger.ErrorField("error", err),
		)
		result.Fail(c, nil, consts.CodeInternalError)
		return
	}

	// 3. 返回成功响应
	result.Success(c, resp)
}
