package consts

// 通用错误码
const (
	CodeSuccess int32 = 0 // 成功
)

// 客户端错误 (1xxxx)
const (
	CodeParamError       int32 = 10001 // 参数验证失败
	CodeBodyError        int32 = 10002 // 请求体格式错误
	CodeResourceNotFound int32 = 10003 // 资源不存在
	CodeMethodNotAllowed int32 = 10004 // 请求方法不允许
	CodeTooManyRequests  int32 = 10005 // 请求过于频繁
)

// 认证错误 (2xxxx)
const (
	CodeUnauthorized   int32 = 20001 // 未认证
	CodeInvalidToken   int32 = 20002 // Token 无效
	CodeTokenExpired   int32 = 20003 // Token 已过期
	CodePermissionDeny int32 = 20004 // 权限不足
)

// 用户模块错误 (11xxx)
const (
	CodeUserNotFound     int32 = 11001 // 用户不存在（按邮箱搜索无结果）
	CodeUserAlreadyExist int32 = 11002 // 用户已存在
	CodePasswordError    int32 = 11003 // 密码错误
)

// 联系人模块错误 (12xxx)
const (
	CodeContactNotFound      int32 = 12001 // 联系人不存在或已被删除
	CodeContactAlreadyExists int32 = 12002 // 该用户已在联系人列表中
	CodeContactSelfAdd       int32 = 12003 // 不能添加自己为联系人
)

// 服务端错误 (3xxxx)
const (
	CodeInternalError      int32 = 30001 // 服务器内部错误
	CodeServiceUnavailable int32 = 30002 // 服务暂不可用
	CodeTimeoutError       int32 = 30003 // 请求处理超时
)

// 错误消息映射
var CodeMessage = map[int32]string{
	CodeSuccess: "success",

	// 客户端错误
	CodeParamError:       "参数验证失败",
	CodeBodyError:        "请求体格式错误",
	CodeResourceNotFound: "资源不存在",
	CodeMethodNotAllowed: "请求方法不允许",
	CodeTooManyRequests:  "请求过于频繁",

	// 认证错误
	CodeUnauthorized:   "未认证",
	CodeInvalidToken:   "Token 无效",
	CodeTokenExpired:   "Token 已过期",
	CodePermissionDeny: "权限不足",

	// 用户模块
	CodeUserNotFound:     "未找到使用该邮箱的用户",
	CodeUserAlreadyExist: "该邮箱已被注册",
	CodePasswordError:    "邮箱或密码错误",

	// 联系人模块
	CodeContactNotFound:      "联系人不存在",
	CodeContactAlreadyExists: "该用户已在你的联系人列表中",
	CodeContactSelfAdd:       "不能添加自己为联系人",

	// 服务端错误
	CodeInternalError:      "服务器内部错误",
	CodeServiceUnavailable: "服务暂不可用",
	CodeTimeoutError:       "请求处理超时",
}

// GetMessage 根据错误码获取错误消息
func GetMessage(code int32) string {
	if msg, ok := CodeMessage[code]; ok {
		return msg
	}
	return "未知错误"
}

// IsNonServerError 判断是否为业务/客户端错误（非 3xxxx 服务端错误）
// 业务错误属于正常流程，直接返回给客户端展示，不记录错误日志
func IsNonServerError(code int32) bool {
	return code > 0 && code < 30000
}
