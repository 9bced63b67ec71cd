package response

import (
	"io"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONResponse(t *testing.T) {
	tests := []struct {
		name         string
		data         any
		expectedBody string
		expectError  bool
	}{
		{
			name: "message struct",
			data: struct {
				Message string `json:"message"`
			}{Message: "Hello from WebAssembly!"},
			expectedBody: `{"message":"Hello from WebAssembly!"}`,
		},
		{
			name:         "map",
			data:         map[string]any{"ok": true, "status": 200},
			expectedBody: `{"ok":true,"status":200}`,
		},
		{
			name:         "slice",
			data:         []string{"apple", "banana"},
			expectedBody: `["apple","banana"]`,
		},
		{
			name:         "nil",
			data:         nil,
			expectedBody: "null",
		},
		{
			name:        "unmarshalable data",
			data:        make(chan int),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := NewJSONResponse(tt.data)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, resp)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, resp)

			headers := resp.GetHeaders()
			assert.Equal(t, "application/json", headers.Get("content-type"))
			assert.Equal(t, strconv.Itoa(len(tt.expectedBody)), headers.Get("content-length"))

			body := resp.GetBody()
			require.NotNil(t, body)
			bodyBytes, err := io.ReadAll(body)
			require.NoError(t, err)
			// exact bytes, not just equivalent JSON
			assert.Equal(t, tt.expectedBody, string(bodyBytes))

			assert.Equal(t, StatusOK, resp.GetStatusCode())
		})
	}
}

func TestJSONResponseMethods(t *testing.T) {
	resp, err := NewJSONResponse(map[string]string{"test": "value"})
	require.NoError(t, err)

	modifiedResp := resp.WithStatusCode(201)
	assert.Equal(t, StatusCode(201), modifiedResp.GetStatusCode())

	modifiedResp = resp.WithHeader("X-Custom", "test-value")
	assert.Equal(t, "test-value", modifiedResp.GetHeaders().Get("X-Custom"))

	modifiedResp = resp.WithHeaders(map[string]string{
		"X-Test-1": "value1",
		"X-Test-2": "value2",
	})
	assert.Equal(t, "value1", modifiedResp.GetHeaders().Get("X-Test-1"))
	assert.Equal(t, "value2", modifiedResp.GetHeaders().Get("X-Test-2"))
}
