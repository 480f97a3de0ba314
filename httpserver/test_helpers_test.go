//nolint:unused
package httpserver_test

import (
	"encoding/json"
	"testing"

	"net/http/httptest"

	"github.com/stretchr/testify/require"

	"filmoteca/httpserver"
	"filmoteca/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{}
}

func decodeAPIResponse(t *testing.T, recorder *httptest.ResponseRecorder) httpserver.APIResponse {
	t.Helper()
	var resp httpserver.APIResponse
	err := json.Unmarshal(recorder.Body.Bytes(), &resp)
	require.NoError(t, err, "response body should be a valid API envelope")
	return resp
}

// decodeAPIResult re-marshals the envelope's result field into the given
// concrete type.
func decodeAPIResult(t *testing.T, result interface{}, out interface{}) {
	t.Helper()
	raw, err := json.Marshal(result)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}
