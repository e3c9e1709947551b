package validator

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	govalidator "github.com/go-playground/validator/v10"
	"github.com/gymwarriors/fitnesshub-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staffPayload struct {
	Role string `json:"role" validate:"required,staff_role"`
}

func newValidate() *govalidator.Validate {
	v := govalidator.New()
	register(v)
	return v
}

func TestUserStatusTag(t *testing.T) {
	v := newValidate()

	assert.NoError(t, v.Struct(model.UpdateUserStatusRequest{Status: model.UserStatusActive}))

	err := v.Struct(struct {
		Status model.UserStatus `json:"status" validate:"required,user_status"`
	}{Status: "banned"})
	require.Error(t, err)

	fields := TranslateErrors(err)
	assert.Equal(t, "status must be one of: pending, active", fields["status"])
}

func TestStaffRoleTag(t *testing.T) {
	v := newValidate()

	assert.NoError(t, v.Struct(staffPayload{Role: "it_admin"}))

	fields := TranslateErrors(v.Struct(staffPayload{Role: "owner"}))
	assert.Equal(t, "role must be one of: trainer, admin, it_admin", fields["role"])
}

func TestTranslateErrors_NotValidation(t *testing.T) {
	fields := TranslateErrors(assert.AnError)
	assert.Equal(t, assert.AnError.Error(), fields["detail"])
}

func TestBind(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Setup()

	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"ok", `{"email":"rina@fitnesshub.id","password":"secret123"}`, ""},
		{"bad email", `{"email":"rina","password":"secret123"}`, "email"},
		{"short password", `{"email":"rina@fitnesshub.id","password":"123"}`, "password"},
		{"malformed json", `{"email":`, "detail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var req model.LoginRequest
			fields := Bind(c, &req)
			if tt.wantField == "" {
				assert.Nil(t, fields)
				return
			}
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestParamUUID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	c.Params = gin.Params{{Key: "id", Value: "6a1f0c52-8e0b-4c1e-9d2a-3b7c5e9f1a20"}}
	id, ok := ParamUUID(c, "id")
	assert.True(t, ok)
	assert.Equal(t, "6a1f0c52-8e0b-4c1e-9d2a-3b7c5e9f1a20", id.String())

	c.Params = gin.Params{{Key: "id", Value: "42"}}
	_, ok = ParamUUID(c, "id")
	assert.False(t, ok)
}
