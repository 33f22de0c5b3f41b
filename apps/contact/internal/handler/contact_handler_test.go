package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"ContactServer/apps/contact/internal/dto"
	"ContactServer/apps/contact/internal/service"
	"ContactServer/consts"
	"ContactServer/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeContactService struct {
	listFn   func(context.Context, string, *dto.ListContactsRequest) (*dto.ListContactsResponse, error)
	getFn    func(context.Context, string, int64) (*dto.ContactDetailResponse, error)
	createFn func(context.Context, string, *dto.CreateContactRequest) (*dto.CreateContactResponse, error)
	deleteFn func(context.Context, string, int64) (*dto.DeleteContactResponse, error)
}

var _ service.ContactService = (*fakeContactService)(nil)

func (f *fakeContactService) List(ctx context.Context, actorUUID string, req *dto.ListContactsRequest) (*dto.ListContactsResponse, error) {
	if f.listFn == nil {
		return &dto.ListContactsResponse{}, nil
	}
	return f.listFn(ctx, actorUUID, req)
}

func (f *fakeContactService) Get(ctx context.Context, actorUUID string, contactID int64) (*dto.ContactDetailResponse, error) {
	if f.getFn == nil {
		return &dto.ContactDetailResponse{}, nil
	}
	return f.getFn(ctx, actorUUID, contactID)
}

func (f *fakeContactService) Create(ctx context.Context, actorUUID string, req *dto.CreateContactRequest) (*dto.CreateContactResponse, error) {
	if f.createFn == nil {
		return &dto.CreateContactResponse{}, nil
	}
	return f.createFn(ctx, actorUUID, req)
}

func (f *fakeContactService) Delete(ctx context.Context, actorUUID string, contactID int64) (*dto.DeleteContactResponse, error) {
	if f.deleteFn == nil {
		return &dto.DeleteContactResponse{}, nil
	}
	return f.deleteFn(ctx, actorUUID, contactID)
}

type handlerResultBody struct {
	Code    int32           `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

var contactHandlerLoggerOnce sync.Once

func initContactHandlerTest() {
	contactHandlerLoggerOnce.Do(func() {
		logger.ReplaceGlobal(zap.NewNop())
		gin.SetMode(gin.TestMode)
	})
}

// newContactTestRouter 挂一个写入 user_uuid 的假认证中间件，绕过 JWT
func newContactTestRouter(svc service.ContactService, userUUID string) *gin.Engine {
	h := NewContactHandler(svc)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userUUID != "" {
			c.Set("user_uuid", userUUID)
		}
		c.Next()
	})
	r.GET("/contacts", h.List)
	r.POST("/contacts", h.Create)
	r.GET("/contacts/:id", h.Get)
	r.DELETE("/contacts/:id", h.Delete)
	return r
}

func decodeHandlerBody(t *testing.T, w *httptest.ResponseRecorder) handlerResultBody {
	t.Helper()
	var body handlerResultBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func newJSONRequest(t *testing.T, method, path, body string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, path, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestContactHandlerList(t *testing.T) {
	initContactHandlerTest()

	t.Run("success_passes_query_params", func(t *testing.T) {
		r := newContactTestRouter(&fakeContactService{
			listFn: func(_ context.Context, actorUUID string, req *dto.ListContactsRequest) (*dto.ListContactsResponse, error) {
				require.Equal(t, "u1", actorUUID)
				require.Equal(t, "alice", req.Search)
				require.Equal(t, "email", req.Sort)
				require.Equal(t, "desc", req.Direction)
				require.Equal(t, 2, req.Page)
				return &dto.ListContactsResponse{Sort: "email", Direction: "desc"}, nil
			},
		}, "u1")

		w := httptest.NewRecorder()
		req, err := http.NewRequest(http.MethodGet, "/contacts?search=alice&sort=email&direction=desc&page=2", nil)
		require.NoError(t, err)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeHandlerBody(t, w)
		assert.Equal(t, consts.CodeSuccess, body.Code)
	})

	t.Run("negative_page_param_error", func(t *testing.T) {
		r := newContactTestRouter(&fakeContactService{}, "u1")
		w := httptest.NewRecorder()
		req, err := http.NewRequest(http.MethodGet, "/contacts?page=-1", nil)
		require.NoError(t, err)
		r.ServeHTTP(w, req)

		body := decodeHandlerBody(t, w)
		assert.Equal(t, consts.CodeParamError, body.Code)
	})

	t.Run("internal_error_masked", func(t *testing.T) {
		r := newContactTestRouter(&fakeContactService{
			listFn: func(_ context.Context, _ string, _ *dto.ListContactsRequest) (*dto.ListContactsResponse, error) {
				return nil, errors.New("db gone")
			},
		}, "u1")
		w := httptest.NewRecorder()
		req, err := http.NewRequest(http.MethodGet, "/contacts", nil)
		require.NoError(t, err)
		r.ServeHTTP(w, req)

		body := decodeHandlerBody(t, w)
		assert.Equal(t, consts.CodeInternalError, body.Code)
	})
}

func TestContactHandlerGet(t *testing.T) {
	initContactHandlerTest()

	t.Run("invalid_id_param_error", func(t *testing.T) {
		r := newContactTestRouter(&fakeContactService{}, "u1")
		w := httptest.NewRecorder()
		req, err := http.NewRequest(http.MethodGet, "/contacts/abc", nil)
		require.NoError(t, err)
		r.ServeHTTP(w, req)

		body := decodeHandlerBody(t, w)
		assert.Equal(t, consts.CodeParamError, body.Code)
	})

	t.Run("not_found_biz_code", func(t *testing.T) {
		r := newContactTestRouter(&fakeContactService{
			getFn: func(_ context.Context, _ string, contactID int64) (*dto.ContactDetailResponse, error) {
				require.Equal(t, int64(99), contactID)
				return nil, service.NewBizError(consts.CodeContactNotFound)
			},
		}, "u1")
		w := httptest.NewRecorder()
		req, err := http.NewRequest(http.MethodGet, "/contacts/99", nil)
		require.NoError(t, err)
		r.ServeHTTP(w, req)

		body := decodeHandlerBody(t, w)
		assert.Equal(t, consts.CodeContactNotFound, body.Code)
	})

	t.Run("forbidden_biz_code", func(t *testing.T) {
		r := newContactTestRouter(&fakeContactService{
			getFn: func(_ context.Context, _ string, _ int64) (*dto.ContactDetailResponse, error) {
				return nil, service.NewBizError(consts.CodePermissionDeny)
			},
		}, "u1")
		w := httptest.NewRecorder()
		req, err := http.NewRequest(http.MethodGet, "/contacts/7", nil)
		require.NoError(t, err)
		r.ServeHTTP(w, req)

		body := decodeHandlerBody(t, w)
		assert.Equal(t, consts.CodePermissionDeny, body.Code)
	})
}

func TestContactHandlerCreate(t *testing.T) {
	initContactHandlerTest()

	t.Run("invalid_json_param_error", func(t *testing.T) {
		r := newContactTestRouter(&fakeContactService{}, "u1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, newJSONRequest(t, http.MethodPost, "/contacts", "{not json"))

		body := decodeHandlerBody(t, w)
		assert.Equal(t, consts.CodeParamError, body.Code)
	})

	t.Run("malformed_email_param_error", func(t *testing.T) {
		r := newContactTestRouter(&fakeContactService{}, "u1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, newJSONRequest(t, http.MethodPost, "/contacts", `{"email":"not-an-email"}`))

		body := decodeHandlerBody(t, w)
		assert.Equal(t, consts.CodeParamError, body.Code)
	})

	t.Run("biz_failure_echoes_email", func(t *testing.T) {
		r := newContactTestRouter(&fakeContactService{
			createFn: func(_ context.Context, _ string, _ *dto.CreateContactRequest) (*dto.CreateContactResponse, error) {
				return nil, service.NewBizError(consts.CodeUserNotFound)
			},
		}, "u1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, newJSONRequest(t, http.MethodPost, "/contacts", `{"email":"ghost@example.com"}`))

		body := decodeHandlerBody(t, w)
		assert.Equal(t, consts.CodeUserNotFound, body.Code)

		// 失败时回显提交的邮箱，便于前端回填表单
		var echo dto.ContactEmailEcho
		require.NoError(t, json.Unmarshal(body.Data, &echo))
		assert.Equal(t, "ghost@example.com", echo.Email)
	})

	t.Run("internal_error_still_echoes_email", func(t *testing.T) {
		r := newContactTestRouter(&fakeContactService{
			createFn: func(_ context.Context, _ string, _ *dto.CreateContactRequest) (*dto.CreateContactResponse, error) {
				return nil, errors.New("db connection reset")
			},
		}, "u1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, newJSONRequest(t, http.MethodPost, "/contacts", `{"email":"alice@example.com"}`))

		// 存储故障也要回显邮箱，否则前端表单会丢掉用户输入
		body := decodeHandlerBody(t, w)
		assert.Equal(t, consts.CodeInternalError, body.Code)

		var echo dto.ContactEmailEcho
		require.NoError(t, json.Unmarshal(body.Data, &echo))
		assert.Equal(t, "alice@example.com", echo.Email)
	})

	t.Run("success_message_contains_person_name", func(t *testing.T) {
		r := newContactTestRouter(&fakeContactService{
			createFn: func(_ context.Context, actorUUID string, req *dto.CreateContactRequest) (*dto.CreateContactResponse, error) {
				require.Equal(t, "u1", actorUUID)
				require.Equal(t, "alice@example.com", req.Email)
				return &dto.CreateContactResponse{
					Contact:    &dto.ContactItem{Id: 42, PersonName: "Alice"},
					PersonName: "Alice",
				}, nil
			},
		}, "u1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, newJSONRequest(t, http.MethodPost, "/contacts", `{"email":"alice@example.com"}`))

		body := decodeHandlerBody(t, w)
		assert.Equal(t, consts.CodeSuccess, body.Code)
		assert.Contains(t, body.Message, "Alice")
	})
}

func TestContactHandlerDelete(t *testing.T) {
	initContactHandlerTest()

	t.Run("invalid_id_param_error", func(t *testing.T) {
		r := newContactTestRouter(&fakeContactService{}, "u1")
		w := httptest.NewRecorder()
		req, err := http.NewRequest(http.MethodDelete, "/contacts/0", nil)
		require.NoError(t, err)
		r.ServeHTTP(w, req)

		body := decodeHandlerBody(t, w)
		assert.Equal(t, consts.CodeParamError, body.Code)
	})

	t.Run("success_message_contains_person_name", func(t *testing.T) {
		r := newContactTestRouter(&fakeContactService{
			deleteFn: func(_ context.Context, actorUUID string, contactID int64) (*dto.DeleteContactResponse, error) {
				require.Equal(t, "u1", actorUUID)
				require.Equal(t, int64(5), contactID)
				return &dto.DeleteContactResponse{PersonName: "Alice"}, nil
			},
		}, "u1")
		w := httptest.NewRecorder()
		req, err := http.NewRequest(http.MethodDelete, "/contacts/5", nil)
		require.NoError(t, err)
		r.ServeHTTP(w, req)

		body := decodeHandlerBody(t, w)
		assert.Equal(t, consts.CodeSuccess, body.Code)
		assert.Contains(t, body.Message, "Alice")
	})
}
