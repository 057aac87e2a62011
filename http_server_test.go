package fill

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func doRequest(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHttpSegment(t *testing.T) {
	h := NewHttpServer(0, newTestTemplates(t)).Handler()

	w := doRequest(t, h, http.MethodPost, "/segment", gin.H{"script": hex.EncodeToString(mockTemplate(t))})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Header().Get(requestIDHeader))

	var resp struct {
		Segments []string `json:"segments"`
		Root     string   `json:"root"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, []string{"0101", "7e02010287"}, resp.Segments)
	require.NotEmpty(t, resp.Root)

	w = doRequest(t, h, http.MethodPost, "/segment", gin.H{"script": "4d01"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, h, http.MethodPost, "/segment", gin.H{"script": "zz"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHttpDisasm(t *testing.T) {
	h := NewHttpServer(0, newTestTemplates(t)).Handler()

	w := doRequest(t, h, http.MethodPost, "/disasm", gin.H{"script": "76a950"})
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"asm":"OP_DUP OP_HASH160 OP_RESERVED"}`, w.Body.String())
}

func TestHttpTemplates(t *testing.T) {
	h := NewHttpServer(0, newTestTemplates(t)).Handler()
	body := gin.H{"script": hex.EncodeToString(mockTemplate(t))}

	w := doRequest(t, h, http.MethodPost, "/templates", body)
	require.Equal(t, http.StatusCreated, w.Code)
	var tpl templateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tpl))
	require.Len(t, tpl.Segments, 2)

	w = doRequest(t, h, http.MethodPost, "/templates", body)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, h, http.MethodGet, "/templates/"+tpl.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got templateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, tpl, got)

	w = doRequest(t, h, http.MethodGet, "/templates", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []templateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)

	w = doRequest(t, h, http.MethodGet, "/templates/"+tpl.ID+"/proof/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var proof struct {
		Count   int      `json:"count"`
		Segment string   `json:"segment"`
		Root    string   `json:"root"`
		Proof   []string `json:"proof"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &proof))
	require.Equal(t, tpl.Segments[1], proof.Segment)
	require.Equal(t, tpl.Root, proof.Root)
	require.Len(t, proof.Proof, 1)
	require.Equal(t, 2, proof.Count)
	require.Equal(t, 1, tpl.Slots)

	w = doRequest(t, h, http.MethodGet, "/templates/"+tpl.ID+"/proof/9", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	w = doRequest(t, h, http.MethodGet, "/templates/"+tpl.ID+"/proof/x", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, h, http.MethodDelete, "/templates/"+tpl.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = doRequest(t, h, http.MethodGet, "/templates/"+tpl.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	w = doRequest(t, h, http.MethodDelete, "/templates/"+tpl.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, h, http.MethodGet, "/templates/bogus", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, h, http.MethodPost, "/templates", gin.H{"script": ""})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
