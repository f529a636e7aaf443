package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	listBooks  *appbook.ListBooksUseCase
	getBook    *appbook.GetBookUseCase
	createBook *appbook.CreateBookUseCase
	updateBook *appbook.UpdateBookUseCase
	deleteBook *appbook.DeleteBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	listBooks *appbook.ListBooksUseCase,
	getBook *appbook.GetBookUseCase,
	createBook *appbook.CreateBookUseCase,
	updateBook *appbook.UpdateBookUseCase,
	deleteBook *appbook.DeleteBookUseCase,
) *BookHandler {
	return &BookHandler{
		listBooks:  listBooks,
		getBook:    getBook,
		createBook: createBook,
		updateBook: updateBook,
		deleteBook: deleteBook,
	}
}

// List 图书列表
// @Summary 图书列表
// @Description 支持过滤(title、title__icontains、author、author_name、publication_year及其__gt/__lt/__gte/__lte/_range变体、recent_only、classic_books)、search全文搜索、ordering排序与分页,响应metadata描述本端点的全部查询能力
// @Tags 图书
// @Produce json
// @Param search query string false "搜索关键词(书名/作者名)"
// @Param ordering query string false "排序字段,逗号分隔,前缀-为降序,如-publication_year,title"
// @Param page query int false "页码,默认1"
// @Param page_size query int false "每页数量,默认20,最大100"
// @Success 200 {object} response.ListBody
// @Router /api/v1/books [get]
func (h *BookHandler) List(c *gin.Context) {
	resp, err := h.listBooks.Execute(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, resp.Results, resp.Metadata)
}

// Get 图书详情
// @Summary 图书详情
// @Description 返回图书信息及同作者的相关图书(最多5本)
// @Tags 图书
// @Produce json
// @Param id path int true "图书ID"
// @Success 200 {object} appbook.BookDetailResponse
// @Failure 404 {object} response.ErrorBody
// @Router /api/v1/books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.getBook.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, resp)
}

// Create 上架图书
// @Summary 上架图书
// @Tags 图书
// @Accept json
// @Produce json
// @Param request body dto.CreateBookRequest true "图书信息"
// @Success 201 {object} response.MutationBody
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Security BearerAuth
// @Router /api/v1/books/create [post]
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	item, err := h.createBook.Execute(c.Request.Context(), appbook.CreateBookRequest{
		Title:           req.Title,
		PublicationYear: req.PublicationYear,
		AuthorID:        req.Author,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Book created successfully", item, map[string]string{
		"self": fmt.Sprintf("/api/v1/books/%d", item.ID),
		"list": "/api/v1/books",
	})
}

// Update 更新图书
// @Summary 更新图书
// @Description 支持部分更新,未提供的字段保持不变
// @Tags 图书
// @Accept json
// @Produce json
// @Param id path int true "图书ID"
// @Param request body dto.UpdateBookRequest true "待更新字段"
// @Success 200 {object} response.MutationBody
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Security BearerAuth
// @Router /api/v1/books/update/{id} [put]
func (h *BookHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	item, err := h.updateBook.Execute(c.Request.Context(), appbook.UpdateBookRequest{
		ID:              id,
		Title:           req.Title,
		PublicationYear: req.PublicationYear,
		AuthorID:        req.Author,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Updated(c, "Book updated successfully", item, map[string]string{
		"self": fmt.Sprintf("/api/v1/books/%d", item.ID),
		"list": "/api/v1/books",
	})
}

// Delete 下架图书
// @Summary 下架图书
// @Description 物理删除,响应携带被删除图书的快照
// @Tags 图书
// @Produce json
// @Param id path int true "图书ID"
// @Success 200 {object} response.DeletionBody
// @Failure 404 {object} response.ErrorBody
// @Security BearerAuth
// @Router /api/v1/books/delete/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	deleted, err := h.deleteBook.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Deleted(c, "Book deleted successfully", "deleted_book", deleted, map[string]string{
		"list": "/api/v1/books",
	})
}

// parseIDParam 解析路径中的id参数
func parseIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperrors.NewFieldError("id", "ID必须是正整数")
	}
	return uint(id), nil
}
