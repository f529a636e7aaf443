package integration

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 作者模块集成测试
// 覆盖作者CRUD、创作统计与级联删除

func TestAuthorLifecycle(t *testing.T) {
	RequireServer(t)

	token := RegisterAndLogin(t, "author_lifecycle")
	name := GenerateTestName("生命周期作者")

	var authorID float64

	t.Run("正常新增作者", func(t *testing.T) {
		status, resp := PostJSON(t, BaseURL+"/authors/create", map[string]interface{}{
			"name": name,
		}, token)

		require.Equal(t, http.StatusCreated, status)
		assert.Equal(t, "Author created successfully", resp["message"])

		data := resp["data"].(map[string]interface{})
		assert.Equal(t, name, data["name"])
		authorID = data["id"].(float64)
	})

	t.Run("未登录不能新增", func(t *testing.T) {
		status, _ := PostJSON(t, BaseURL+"/authors/create", map[string]interface{}{
			"name": GenerateTestName("未登录作者"),
		}, "")

		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("名称过滤与列表信封", func(t *testing.T) {
		status, resp := GetJSON(t, BaseURL+"/authors?name="+url.QueryEscape(name), "")
		require.Equal(t, http.StatusOK, status)

		results := resp["results"].([]interface{})
		require.Len(t, results, 1)
		assert.Equal(t, name, results[0].(map[string]interface{})["name"])

		metadata := resp["metadata"].(map[string]interface{})
		assert.Equal(t, float64(1), metadata["total_count"])
	})

	t.Run("详情携带创作统计", func(t *testing.T) {
		for _, y := range []int{2001, 2005, 2005} {
			status, _ := PostJSON(t, BaseURL+"/books/create", map[string]interface{}{
				"title":            GenerateTestName(fmt.Sprintf("统计图书%d", y)),
				"publication_year": y,
				"author":           authorID,
			}, token)
			require.Equal(t, http.StatusCreated, status)
		}

		status, resp := GetJSON(t, fmt.Sprintf("%s/authors/%.0f", BaseURL, authorID), "")
		require.Equal(t, http.StatusOK, status)

		stats := resp["statistics"].(map[string]interface{})
		assert.Equal(t, float64(3), stats["total_books"])

		// 出版年份去重升序
		years := stats["publication_years"].([]interface{})
		require.Len(t, years, 2)
		assert.Equal(t, float64(2001), years[0])
		assert.Equal(t, float64(2005), years[1])
	})

	t.Run("更新作者", func(t *testing.T) {
		newName := GenerateTestName("改名作者")
		status, resp := DoJSON(t, http.MethodPut,
			fmt.Sprintf("%s/authors/update/%.0f", BaseURL, authorID), token,
			map[string]interface{}{"name": newName})

		require.Equal(t, http.StatusOK, status)
		data := resp["data"].(map[string]interface{})
		assert.Equal(t, newName, data["name"])
	})

	t.Run("删除作者级联删除图书", func(t *testing.T) {
		status, resp := DoJSON(t, http.MethodDelete,
			fmt.Sprintf("%s/authors/delete/%.0f", BaseURL, authorID), token, nil)

		require.Equal(t, http.StatusOK, status)
		deleted := resp["deleted_author"].(map[string]interface{})
		assert.Equal(t, authorID, deleted["id"])

		// 作者已删除
		status, _ = GetJSON(t, fmt.Sprintf("%s/authors/%.0f", BaseURL, authorID), "")
		assert.Equal(t, http.StatusNotFound, status)

		// 名下图书同时删除
		status, listResp := GetJSON(t, fmt.Sprintf("%s/books?author=%.0f", BaseURL, authorID), "")
		require.Equal(t, http.StatusOK, status)
		metadata := listResp["metadata"].(map[string]interface{})
		assert.Equal(t, float64(0), metadata["total_count"])
	})
}

func TestAuthorHasBooksFilter(t *testing.T) {
	RequireServer(t)

	token := RegisterAndLogin(t, "author_filter")

	// 一位有作品的作者,一位无作品的作者
	withBooks := GenerateTestName("有作品")
	withoutBooks := GenerateTestName("无作品")
	withID := CreateTestAuthor(t, token, withBooks)
	CreateTestAuthor(t, token, withoutBooks)

	status, _ := PostJSON(t, BaseURL+"/books/create", map[string]interface{}{
		"title":            GenerateTestName("唯一作品"),
		"publication_year": 2015,
		"author":           withID,
	}, token)
	require.Equal(t, http.StatusCreated, status)

	t.Run("has_books为true只返回有作品的作者", func(t *testing.T) {
		status, resp := GetJSON(t, BaseURL+"/authors?has_books=true&page_size=100", "")
		require.Equal(t, http.StatusOK, status)

		names := authorNames(resp)
		assert.Contains(t, names, withBooks)
		assert.NotContains(t, names, withoutBooks)
	})

	t.Run("has_books为false只返回无作品的作者", func(t *testing.T) {
		status, resp := GetJSON(t, BaseURL+"/authors?has_books=false&page_size=100", "")
		require.Equal(t, http.StatusOK, status)

		names := authorNames(resp)
		assert.Contains(t, names, withoutBooks)
		assert.NotContains(t, names, withBooks)
	})
}

func authorNames(resp map[string]interface{}) []string {
	var names []string
	for _, item := range resp["results"].([]interface{}) {
		names = append(names, item.(map[string]interface{})["name"].(string))
	}
	return names
}
