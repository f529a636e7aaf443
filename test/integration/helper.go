package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 集成测试辅助工具
// 这些测试需要完整运行的服务(API + MySQL + Redis),
// 服务不可达时跳过而不是失败,便于在纯单元测试环境下运行

const (
	// ServerURL 被测服务地址
	ServerURL = "http://localhost:8080"
	// BaseURL API基础URL
	BaseURL = ServerURL + "/api/v1"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// RequireServer 检查被测服务是否可达,不可达时跳过当前测试
func RequireServer(t *testing.T) {
	t.Helper()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(ServerURL + "/ping")
	if err != nil {
		t.Skipf("服务不可达,跳过集成测试: %v", err)
	}
	resp.Body.Close()
}

// DoJSON 发送JSON请求并解析响应
// 返回HTTP状态码与解析后的响应体(body为空时返回nil)
func DoJSON(t *testing.T, method, url, token string, data interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reqBody io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, url, reqBody)
	require.NoError(t, err, "创建HTTP请求失败")

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	if len(body) == 0 {
		return resp.StatusCode, nil
	}

	result := make(map[string]interface{})
	require.NoError(t, json.Unmarshal(body, &result), "解析JSON响应失败: %s", string(body))

	return resp.StatusCode, result
}

// PostJSON 发送POST请求
func PostJSON(t *testing.T, url string, data interface{}, token string) (int, map[string]interface{}) {
	t.Helper()
	return DoJSON(t, http.MethodPost, url, token, data)
}

// GetJSON 发送GET请求
func GetJSON(t *testing.T, url string, token string) (int, map[string]interface{}) {
	t.Helper()
	return DoJSON(t, http.MethodGet, url, token, nil)
}

// RegisterAndLogin 注册新用户并登录,返回Access Token
func RegisterAndLogin(t *testing.T, prefix string) string {
	t.Helper()

	email := GenerateTestEmail(prefix)
	password := "abc12345"

	status, _ := PostJSON(t, BaseURL+"/users/register", map[string]interface{}{
		"email":    email,
		"password": password,
		"nickname": "集成测试用户",
	}, "")
	require.Equal(t, http.StatusCreated, status, "注册失败")

	status, resp := PostJSON(t, BaseURL+"/users/login", map[string]interface{}{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, status, "登录失败")

	token, ok := resp["access_token"].(string)
	require.True(t, ok && token != "", "登录响应缺少access_token")
	return token
}

// CreateTestAuthor 创建测试作者,返回作者ID
func CreateTestAuthor(t *testing.T, token, name string) uint {
	t.Helper()

	status, resp := PostJSON(t, BaseURL+"/authors/create", map[string]interface{}{
		"name": name,
	}, token)
	require.Equal(t, http.StatusCreated, status, "创建作者失败: %v", resp)

	data := resp["data"].(map[string]interface{})
	return uint(data["id"].(float64))
}

// GenerateTestEmail 生成唯一的测试邮箱,避免重复运行时冲突
func GenerateTestEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, time.Now().UnixNano())
}

// GenerateTestName 生成唯一的测试名称
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}
