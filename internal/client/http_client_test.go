package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	fill "github.com/treeforest/easyfill"
	"github.com/treeforest/easyfill/dao"
	"github.com/treeforest/easyfill/script"
)

func newTestNode(t *testing.T) *HttpClient {
	gin.SetMode(gin.TestMode)
	store, err := dao.New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	templates := fill.NewTemplates(store, script.OP_PLACEHOLDER)
	srv := httptest.NewServer(fill.NewHttpServer(0, templates).Handler())
	t.Cleanup(srv.Close)
	return NewHttpClient(srv.URL + "/")
}

func mockTemplate(t *testing.T) []byte {
	raw, err := script.NewScriptBuilder().
		AddData([]byte{0x01}).
		AddPlaceholder().
		AddOp(script.OP_CAT).
		AddData([]byte{0x01, 0x02}).
		AddOp(script.OP_EQUAL).
		Script()
	require.NoError(t, err)
	return raw
}

const defaultTestTimeout = 5 * time.Second

func TestHttpClient(t *testing.T) {
	c := newTestNode(t)
	ctx := context.Background()

	res, err := c.Segment(ctx, mockTemplate(t))
	require.NoError(t, err)
	require.Equal(t, []string{"0101", "7e02010287"}, res.Segments)

	asm, err := c.Disasm(ctx, []byte{script.OP_DUP, script.OP_PLACEHOLDER})
	require.NoError(t, err)
	require.Equal(t, "OP_DUP OP_RESERVED", asm)

	tpl, err := c.Register(ctx, mockTemplate(t))
	require.NoError(t, err)
	require.Equal(t, res.Root, tpl.Root)

	got, err := c.Get(ctx, tpl.ID)
	require.NoError(t, err)
	require.Equal(t, tpl, got)

	tpls, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, tpls, 1)

	proof, err := c.Prove(ctx, tpl.ID, 0)
	require.NoError(t, err)
	require.Equal(t, "0101", proof.Segment)
	require.Equal(t, 2, proof.Count)

	require.NoError(t, c.Remove(ctx, tpl.ID))

	_, err = c.Get(ctx, tpl.ID)
	var serr *StatusError
	require.True(t, errors.As(err, &serr))
	require.Equal(t, http.StatusNotFound, serr.StatusCode)
	require.Contains(t, serr.Message, "not found")
}

func TestHttpClientBadScript(t *testing.T) {
	c := newTestNode(t)
	_, err := c.Segment(context.Background(), []byte{script.OP_PUSHDATA1})
	var serr *StatusError
	require.True(t, errors.As(err, &serr))
	require.Equal(t, http.StatusBadRequest, serr.StatusCode)
}
