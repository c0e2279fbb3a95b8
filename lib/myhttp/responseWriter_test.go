package myhttp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcGrol/cartcheckout/lib/myerrors"
	"github.com/MarcGrol/cartcheckout/lib/mylog"
)

func TestResponseWriter(t *testing.T) {
	writer := NewWriter(mylog.New("test"))

	t.Run("Write error", func(t *testing.T) {
		response := httptest.NewRecorder()

		writer.WriteError(context.TODO(), response, 3, myerrors.NewBadGatewayError(fmt.Errorf("backend said no")))

		assert.Equal(t, http.StatusBadGateway, response.Code)
		assert.Equal(t, "application/json", response.Header().Get("Content-Type"))
		resp := ErrorResponse{}
		require.NoError(t, json.Unmarshal(response.Body.Bytes(), &resp))
		assert.Equal(t, 3, resp.ErrorCode)
		assert.Equal(t, "status: 502, err: backend said no", resp.Message)
	})

	t.Run("Write success", func(t *testing.T) {
		response := httptest.NewRecorder()

		writer.Write(context.TODO(), response, http.StatusOK, SuccessResponse{Message: "ok"})

		assert.Equal(t, http.StatusOK, response.Code)
		assert.JSONEq(t, `{"Message":"ok"}`, response.Body.String())
	})
}

func TestHostnameWithScheme(t *testing.T) {
	r, _ := http.NewRequest(http.MethodGet, "/", nil)
	r.Host = "localhost:8080"

	assert.Equal(t, "http://localhost:8080", HostnameWithScheme(r))
}
