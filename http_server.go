package fill

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pborman/uuid"
	"github.com/pkg/errors"
	"github.com/treeforest/easyfill/dao"
	"github.com/treeforest/easyfill/merkle"
	"github.com/treeforest/easyfill/script"
	log "github.com/treeforest/logger"
)

const requestIDHeader = "X-Request-Id"

type HttpServer struct {
	port      int
	templates *Templates
	srv       *http.Server
}

func NewHttpServer(port int, templates *Templates) *HttpServer {
	s := &HttpServer{port: port, templates: templates}
	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.Handler(),
	}
	return s
}

// Handler 构建路由
func (s *HttpServer) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.POST("/segment", s.handleSegment)
	r.POST("/disasm", s.handleDisasm)
	r.POST("/templates", s.handlePostTemplate)
	r.GET("/templates", s.handleGetTemplates)
	r.GET("/templates/:id", s.handleGetTemplate)
	r.DELETE("/templates/:id", s.handleDeleteTemplate)
	r.GET("/templates/:id/proof/:index", s.handleGetProof)

	return r
}

// Run 阻塞运行，Shutdown 后返回 nil
func (s *HttpServer) Run() error {
	log.Infof("http server listen on %s", s.srv.Addr)
	err := s.srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *HttpServer) Shutdown(ctx context.Context) error {
	log.Info("http server shutting down...")
	return s.srv.Shutdown(ctx)
}

// requestLogger 为每个请求分配 ID 并记录耗时
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New()
		}
		c.Header(requestIDHeader, id)

		start := time.Now()
		c.Next()
		log.Debugf("[%s] %s %s %d %v", id, c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start))
	}
}

type scriptRequest struct {
	Script string `json:"script"` // hex 编码的脚本
}

type templateResponse struct {
	ID        string   `json:"id"`
	Hash160   string   `json:"hash160"`
	Script    string   `json:"script"`
	Segments  []string `json:"segments"`
	Root      string   `json:"root"`
	CreatedAt int64    `json:"created_at"`
	Slots     int      `json:"slots"`
}

func hexSegments(segments [][]byte) []string {
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		out = append(out, hex.EncodeToString(seg))
	}
	return out
}

func newTemplateResponse(tpl *Template) templateResponse {
	return templateResponse{
		ID:        tpl.ID,
		Hash160:   hex.EncodeToString(tpl.Hash160),
		Script:    hex.EncodeToString(tpl.Script),
		Segments:  hexSegments(tpl.Segments),
		Root:      hex.EncodeToString(tpl.Root),
		CreatedAt: tpl.CreatedAt,
		Slots:     tpl.Slots,
	}
}

// bindScript 解析请求中的脚本，失败时已写回响应
func bindScript(c *gin.Context) ([]byte, bool) {
	req := scriptRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request obj error"})
		return nil, false
	}
	raw, err := hex.DecodeString(req.Script)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "script is not hex"})
		return nil, false
	}
	return raw, true
}

// writeError 按错误类型返回状态码
func writeError(c *gin.Context, err error) {
	var serr script.Error
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &serr),
		errors.Is(err, ErrEmptyTemplate),
		errors.Is(err, ErrInvalidID),
		errors.Is(err, merkle.ErrLeafNotFound):
		status = http.StatusBadRequest
	case errors.Is(err, dao.ErrNotFound):
		status = http.StatusNotFound
	default:
		log.Errorf("request failed: %v", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (s *HttpServer) handleSegment(c *gin.Context) {
	raw, ok := bindScript(c)
	if !ok {
		return
	}

	f, err := s.templates.Segment(raw)
	if err != nil {
		writeError(c, err)
		return
	}

	type Response struct {
		Segments []string `json:"segments"`
		Root     string   `json:"root,omitempty"`
	}
	resp := Response{Segments: hexSegments(f.Segments)}
	if f.Len() > 0 {
		tree, err := merkle.New(f.Segments)
		if err != nil {
			writeError(c, err)
			return
		}
		resp.Root = hex.EncodeToString(tree.Root())
	}
	c.JSON(http.StatusOK, resp)
}

func (s *HttpServer) handleDisasm(c *gin.Context) {
	raw, ok := bindScript(c)
	if !ok {
		return
	}

	asm, err := script.DisasmString(raw)
	if err != nil {
		writeError(c, err)
		return
	}

	type Response struct {
		Asm string `json:"asm"`
	}
	c.JSON(http.StatusOK, Response{Asm: asm})
}

func (s *HttpServer) handlePostTemplate(c *gin.Context) {
	raw, ok := bindScript(c)
	if !ok {
		return
	}

	tpl, created, err := s.templates.Register(raw)
	if err != nil {
		writeError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, newTemplateResponse(tpl))
}

func (s *HttpServer) handleGetTemplates(c *gin.Context) {
	tpls, err := s.templates.List()
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]templateResponse, 0, len(tpls))
	for _, tpl := range tpls {
		resp = append(resp, newTemplateResponse(tpl))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *HttpServer) handleGetTemplate(c *gin.Context) {
	tpl, err := s.templates.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTemplateResponse(tpl))
}

func (s *HttpServer) handleDeleteTemplate(c *gin.Context) {
	if err := s.templates.Remove(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *HttpServer) handleGetProof(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index is not a number"})
		return
	}

	proof, err := s.templates.Prove(c.Param("id"), index)
	if err != nil {
		writeError(c, err)
		return
	}

	type Response struct {
		ID       string   `json:"id"`
		Index    int      `json:"index"`
		Count    int      `json:"count"`
		Segment  string   `json:"segment"`
		LeafHash string   `json:"leaf_hash"`
		Root     string   `json:"root"`
		Proof    []string `json:"proof"`
	}
	c.JSON(http.StatusOK, Response{
		ID:       proof.ID,
		Index:    proof.Index,
		Count:    proof.Count,
		Segment:  hex.EncodeToString(proof.Segment),
		LeafHash: hex.EncodeToString(proof.LeafHash),
		Root:     hex.EncodeToString(proof.Root),
		Proof:    hexSegments(proof.Proof),
	})
}
