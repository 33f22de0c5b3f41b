package handler

import (
	"ContactServer/apps/contact/internal/dto"
	"ContactServer/apps/contact/internal/middleware"
	"ContactServer/apps/contact/internal/service"
	"ContactServer/consts"
	"ContactServer/pkg/logger"
	"ContactServer/pkg/result"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ContactHandler 联系人处理器
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler 创建联系人处理器
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

// parseContactID 解析路径中的联系人ID，非法输入按参数错误处理
func parseContactID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// List 联系人列表接口
// @Summary 联系人列表
// @Description 分页查询当前用户的联系人，支持按姓名/邮箱搜索和排序
// @Tags 联系人接口
// @Accept json
// @Produce json
// @Param search query string false "搜索关键字"
// @Param sort query string false "排序字段 name/email"
// @Param direction query string false "排序方向 asc/desc"
// @Param page query int false "页码"
// @Success 200 {object} dto.ListContactsResponse
// @Router /api/v1/auth/contacts [get]
func (h *ContactHandler) List(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	// 1. 绑定请求数据（搜索/排序非法值在查询层静默回退，不算参数错误）
	var req dto.ListContactsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	// 2. 调用服务层处理业务逻辑（依赖注入）
	resp, err := h.contactService.List(ctx, middleware.GetUserUUID(c), &req)
	if err != nil {
		// 检查是否为业务错误
		if consts.IsNonServerError(service.ExtractErrorCode(err)) {
			result.Fail(c, nil, service.ExtractErrorCode(err))
			return
		}

		// 其他内部错误
		logger.Error(ctx, "联系人列表服务内部错误",
			logger.ErrorField("error", err),
		)
		result.Fail(c, nil, consts.CodeInternalError)
		return
	}

	// 3. 返回成功响应
	result.Success(c, resp)
}

// Get 联系人详情接口
// @Summary 联系人详情
// @Description 查询单条联系人详情，仅记录归属者可见
// @Tags 联系人接口
// @Accept json
// @Produce json
// @Param id path int true "联系人ID"
// @Success 200 {object} dto.ContactDetailResponse
// @Router /api/v1/auth/contacts/{id} [get]
func (h *ContactHandler) Get(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	// 1. 解析路径参数
	contactID, ok := parseContactID(c)
	if !ok {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	// 2. 调用服务层处理业务逻辑（依赖注入）
	resp, err := h.contactService.Get(ctx, middleware.GetUserUUID(c), contactID)
	if err != nil {
		// 检查是否为业务错误
		if consts.IsNonServerError(service.ExtractErrorCode(err)) {
			// 业务逻辑失败（如记录不存在、无权查看等）
			result.Fail(c, nil, service.ExtractErrorCode(err))
			return
		}

		// 其他内部错误
		logger.Error(ctx, "联系人详情服务内部错误",
			logger.ErrorField("error", err),
		)
		result.Fail(c, nil, consts.CodeInternalError)
		return
	}

	// 3. 返回成功响应
	result.Success(c, resp)
}

// Create 添加联系人接口
// @Summary 添加联系人
// @Description 按邮箱精确搜索用户并添加为联系人
// @Tags 联系人接口
// @Accept json
// @Produce json
// @Param request body dto.CreateContactRequest true "添加联系人请求"
// @Success 200 {object} dto.CreateContactResponse
// @Router /api/v1/auth/contacts [post]
func (h *ContactHandler) Create(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	// 1. 绑定请求数据
	var req dto.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// 参数错误由客户端输入导致,属于正常业务流程,不记录日志
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	// 2. 调用服务层处理业务逻辑（依赖注入）
	resp, err := h.contactService.Create(ctx, middleware.GetUserUUID(c), &req)
	if err != nil {
		// 检查是否为业务错误
		if consts.IsNonServerError(service.ExtractErrorCode(err)) {
			// 业务逻辑失败时回显提交的邮箱，便于前端回填表单
			result.Fail(c, &dto.ContactEmailEcho{Email: req.Email}, service.ExtractErrorCode(err))
			return
		}

		// 其他内部错误：添加失败同样回显邮箱，前端表单不丢用户输入
		logger.Error(ctx, "添加联系人服务内部错误",
			logger.ErrorField("error", err),
		)
		result.Fail(c, &dto.ContactEmailEcho{Email: req.Email}, consts.CodeInternalError)
		return
	}

	// 3. 返回成功响应
	result.SuccessWithMessage(c, resp, resp.PersonName+" 已添加到联系人")
}

// Delete 删除联系人接口
// @Summary 删除联系人
// @Description 删除一条联系人记录，仅记录归属者可操作
// @Tags 联系人接口
// @Accept json
// @Produce json
// @Param id path int true "联系人ID"
// @Success 200 {object} dto.DeleteContactResponse
// @Router /api/v1/auth/contacts/{id} [delete]
func (h *ContactHandler) Delete(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	// 1. 解析路径参数
	contactID, ok := parseContactID(c)
	if !ok {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	// 2. 调用服务层处理业务逻辑（依赖注入）
	resp, err := h.contactService.Delete(ctx, middleware.GetUserUUID(c), contactID)
	if err != nil {
		// 检查是否为业务错误
		if consts.IsNonServerError(service.ExtractErrorCode(err)) {
			// 业务逻辑失败（如记录不存在、无权删除等）
			result.Fail(c, nil, service.ExtractErrorCode(err))
			return
		}

		// 其他内部错误
		logger.Error(ctx, "删除联系人服务内部错误",
			logger.ErrorField("error", err),
		)
		result.Fail(c, nil, consts.CodeInternalError)
		return
	}

	// 3. 返回成功响应
	result.SuccessWithMessage(c, resp, resp.PersonName+" 已从联系人移除")
}
