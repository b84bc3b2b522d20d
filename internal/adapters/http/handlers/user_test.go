package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/jsamuelsen/quote-api/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-api/internal/adapters/memory"
	"github.com/jsamuelsen/quote-api/internal/app"
)

func userRouter() *gin.Engine {
	r := gin.New()
	svc := app.NewUserService(memory.NewUserDirectory(memory.SeedUsers()), discard)
	NewUserHandler(svc).RegisterRoutes(r.Group("/api/users"))

	return r
}

func TestUserHandler_List(t *testing.T) {
	w := do(userRouter(), http.MethodGet, "/api/users", "")

	assert.Equal(t, http.StatusOK, w.Code)
	users := decode[[]dto.UserResponse](t, w)
	assert.Len(t, users, 3)
	assert.Equal(t, "Alice Johnson", users[0].Name)
}

func TestUserHandler_Get(t *testing.T) {
	tests := []struct {
		path       string
		wantStatus int
		wantName   string
	}{
		{path: "/api/users/2", wantStatus: http.StatusOK, wantName: "Bob Smith"},
		{path: "/api/users/99", wantStatus: http.StatusNotFound},
		{path: "/api/users/abc", wantStatus: http.StatusNotFound},
		{path: "/api/users/-1", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := do(userRouter(), http.MethodGet, tt.path, "")
			assert.Equal(t, tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantName, decode[dto.UserResponse](t, w).Name)
				return
			}

			assert.JSONEq(t, `{"error":"User not found","code":"NOT_FOUND"}`, w.Body.String())
		})
	}
}
