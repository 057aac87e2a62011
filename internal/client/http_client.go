package client

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Template 节点返回的模板，字节字段均为 hex 编码
type Template struct {
	ID        string   `json:"id"`
	Hash160   string   `json:"hash160"`
	Script    string   `json:"script"`
	Segments  []string `json:"segments"`
	Root      string   `json:"root"`
	CreatedAt int64    `json:"created_at"`
	Slots     int      `json:"slots"`
}

// SegmentResult 切分结果
type SegmentResult struct {
	Segments []string `json:"segments"`
	Root     string   `json:"root"`
}

// Proof 片段默克尔证明
type Proof struct {
	ID       string   `json:"id"`
	Index    int      `json:"index"`
	Count    int      `json:"count"`
	Segment  string   `json:"segment"`
	LeafHash string   `json:"leaf_hash"`
	Root     string   `json:"root"`
	Proof    []string `json:"proof"`
}

// StatusError 非 2xx 响应
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status code:%d error:%s", e.StatusCode, e.Message)
}

type HttpClient struct {
	baseUrl string
	client  *http.Client
}

func NewHttpClient(baseUrl string) *HttpClient {
	return &HttpClient{
		baseUrl: strings.TrimRight(baseUrl, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HttpClient) Url(route string) string {
	return fmt.Sprintf("%s%s", c.baseUrl, route)
}

type scriptRequest struct {
	Script string `json:"script"`
}

func (c *HttpClient) postScript(ctx context.Context, route string, raw []byte, out interface{}) error {
	body, err := json.Marshal(scriptRequest{Script: hex.EncodeToString(raw)})
	if err != nil {
		return err
	}
	return c.Do(ctx, http.MethodPost, route, body, out)
}

// Segment 切分脚本
func (c *HttpClient) Segment(ctx context.Context, raw []byte) (*SegmentResult, error) {
	resp := new(SegmentResult)
	if err := c.postScript(ctx, "/segment", raw, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Disasm 反汇编脚本
func (c *HttpClient) Disasm(ctx context.Context, raw []byte) (string, error) {
	type Response struct {
		Asm string `json:"asm"`
	}
	resp := Response{}
	if err := c.postScript(ctx, "/disasm", raw, &resp); err != nil {
		return "", err
	}
	return resp.Asm, nil
}

// Register 存储模板
func (c *HttpClient) Register(ctx context.Context, raw []byte) (*Template, error) {
	tpl := new(Template)
	if err := c.postScript(ctx, "/templates", raw, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

// Get 获取模板
func (c *HttpClient) Get(ctx context.Context, id string) (*Template, error) {
	tpl := new(Template)
	if err := c.Do(ctx, http.MethodGet, "/templates/"+url.PathEscape(id), nil, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

// List 获取所有模板
func (c *HttpClient) List(ctx context.Context) ([]Template, error) {
	var tpls []Template
	if err := c.Do(ctx, http.MethodGet, "/templates", nil, &tpls); err != nil {
		return nil, err
	}
	return tpls, nil
}

// Remove 删除模板
func (c *HttpClient) Remove(ctx context.Context, id string) error {
	return c.Do(ctx, http.MethodDelete, "/templates/"+url.PathEscape(id), nil, nil)
}

// Prove 获取片段证明
func (c *HttpClient) Prove(ctx context.Context, id string, index int) (*Proof, error) {
	proof := new(Proof)
	route := fmt.Sprintf("/templates/%s/proof/%d", url.PathEscape(id), index)
	if err := c.Do(ctx, http.MethodGet, route, nil, proof); err != nil {
		return nil, err
	}
	return proof, nil
}

// Do 发送请求，out 不为 nil 时解析 JSON 响应
func (c *HttpClient) Do(ctx context.Context, method, route string, body []byte, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.Url(route), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create %s request failed:%v", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, route, err)
	}
	defer resp.Body.Close()

	b, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read resp body failed:%v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := struct {
			Error string `json:"error"`
		}{}
		if json.Unmarshal(b, &msg) != nil || msg.Error == "" {
			msg.Error = string(b)
		}
		return &StatusError{StatusCode: resp.StatusCode, Message: msg.Error}
	}

	if out == nil || len(b) == 0 {
		return nil
	}
	if err = json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("unmarshal response failed: %v", err)
	}
	return nil
}
