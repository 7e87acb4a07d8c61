package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/eventos-api/internal/domain/common"
)

func render(t *testing.T, err error) (int, ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/test", nil)

	Error(c, err)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestErrorStatusPerKind(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", common.NewValidationError(map[string]string{"title": "title is required"}), http.StatusBadRequest, common.CodeValidation},
		{"conflict", common.ErrDateConflict, http.StatusConflict, common.CodeDateConflict},
		{"permission", common.ErrForbidden, http.StatusForbidden, common.CodeForbidden},
		{"not found", common.NewNotFound("event"), http.StatusNotFound, common.CodeNotFound},
		{"state guard", common.ErrNoVacancyOnActivity, http.StatusConflict, common.CodeNoVacancyOnActivity},
		{"wrapped", fmt.Errorf("registering: %w", common.ErrOutsideOfRegistryDate), http.StatusConflict, common.CodeOutsideOfRegistryDate},
		{"internal", errors.New("connection refused"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := render(t, tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body.Code)
			assert.False(t, body.Success)
		})
	}
}

func TestErrorCarriesFieldsAndData(t *testing.T) {
	_, body := render(t, common.NewValidationError(map[string]string{"title": "title is required"}))
	assert.Equal(t, "title is required", body.Fields["title"])

	_, body = render(t, common.ErrDateConflict.WithData([]string{"clash"}))
	assert.Equal(t, []any{"clash"}, body.Data)
}

func TestInternalErrorHidesDetail(t *testing.T) {
	_, body := render(t, errors.New("pq: password authentication failed"))
	assert.Equal(t, "internal server error", body.Message)
}
