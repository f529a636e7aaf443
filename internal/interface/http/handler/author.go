package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	appauthor "github.com/xiebiao/bookcatalog/internal/application/author"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// AuthorHandler 作者HTTP处理器
type AuthorHandler struct {
	listAuthors  *appauthor.ListAuthorsUseCase
	getAuthor    *appauthor.GetAuthorUseCase
	createAuthor *appauthor.CreateAuthorUseCase
	updateAuthor *appauthor.UpdateAuthorUseCase
	deleteAuthor *appauthor.DeleteAuthorUseCase
}

// NewAuthorHandler 创建作者处理器
func NewAuthorHandler(
	listAuthors *appauthor.ListAuthorsUseCase,
	getAuthor *appauthor.GetAuthorUseCase,
	createAuthor *appauthor.CreateAuthorUseCase,
	updateAuthor *appauthor.UpdateAuthorUseCase,
	deleteAuthor *appauthor.DeleteAuthorUseCase,
) *AuthorHandler {
	return &AuthorHandler{
		listAuthors:  listAuthors,
		getAuthor:    getAuthor,
		createAuthor: createAuthor,
		updateAuthor: updateAuthor,
		deleteAuthor: deleteAuthor,
	}
}

// List 作者列表
// @Summary 作者列表
// @Description 支持过滤(name子串、has_books)、search搜索、ordering排序与分页
// @Tags 作者
// @Produce json
// @Param name query string false "按姓名子串过滤(大小写不敏感)"
// @Param has_books query bool false "true只看有作品的作者,false只看无作品的作者"
// @Param search query string false "搜索关键词"
// @Param ordering query string false "排序字段,如-name"
// @Param page query int false "页码,默认1"
// @Param page_size query int false "每页数量,默认20,最大100"
// @Success 200 {object} response.ListBody
// @Router /api/v1/authors [get]
func (h *AuthorHandler) List(c *gin.Context) {
	resp, err := h.listAuthors.Execute(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, resp.Results, resp.Metadata)
}

// Get 作者详情
// @Summary 作者详情
// @Description 返回作者信息及创作统计(作品总数、出版年份分布)
// @Tags 作者
// @Produce json
// @Param id path int true "作者ID"
// @Success 200 {object} appauthor.AuthorDetailResponse
// @Failure 404 {object} response.ErrorBody
// @Router /api/v1/authors/{id} [get]
func (h *AuthorHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.getAuthor.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, resp)
}

// Create 新增作者
// @Summary 新增作者
// @Tags 作者
// @Accept json
// @Produce json
// @Param request body dto.CreateAuthorRequest true "作者信息"
// @Success 201 {object} response.MutationBody
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Security BearerAuth
// @Router /api/v1/authors/create [post]
func (h *AuthorHandler) Create(c *gin.Context) {
	var req dto.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	item, err := h.createAuthor.Execute(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Author created successfully", item, map[string]string{
		"self": fmt.Sprintf("/api/v1/authors/%d", item.ID),
		"list": "/api/v1/authors",
	})
}

// Update 更新作者
// @Summary 更新作者
// @Tags 作者
// @Accept json
// @Produce json
// @Param id path int true "作者ID"
// @Param request body dto.UpdateAuthorRequest true "作者信息"
// @Success 200 {object} response.MutationBody
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Security BearerAuth
// @Router /api/v1/authors/update/{id} [put]
func (h *AuthorHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	item, err := h.updateAuthor.Execute(c.Request.Context(), id, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Updated(c, "Author updated successfully", item, map[string]string{
		"self": fmt.Sprintf("/api/v1/authors/%d", item.ID),
		"list": "/api/v1/authors",
	})
}

// Delete 删除作者
// @Summary 删除作者
// @Description 级联删除该作者的全部图书,响应携带被删除作者的快照
// @Tags 作者
// @Produce json
// @Param id path int true "作者ID"
// @Success 200 {object} response.DeletionBody
// @Failure 404 {object} response.ErrorBody
// @Security BearerAuth
// @Router /api/v1/authors/delete/{id} [delete]
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	deleted, err := h.deleteAuthor.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Deleted(c, "Author deleted successfully", "deleted_author", deleted, map[string]string{
		"list": "/api/v1/authors",
	})
}
