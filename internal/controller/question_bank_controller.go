package controller

import (
	"errors"
	"strconv"

	"authoring_console_backend/internal/service"
	"authoring_console_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionBankController struct {
	Service *service.QuestionBankService
}

func NewQuestionBankController(svc *service.QuestionBankService) *QuestionBankController {
	return &QuestionBankController{Service: svc}
}

// @Summary 创建题库
// @Tags 题库
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.QuestionBankRequest true "题库信息"
// @Success 201 {object} util.Response
// @Router /api/teacher/banks [post]
func (c *QuestionBankController) Create(ctx *gin.Context) {
	var req service.QuestionBankRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	b, err := c.Service.Create(req, user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, b)
}

// @Summary 获取题库列表
// @Tags 题库
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param limit query int false "每页条数"
// @Success 200 {object} util.Response
// @Router /api/teacher/banks [get]
func (c *QuestionBankController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	banks, total, err := c.Service.List(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: banks, Total: total, Page: page, Limit: limit})
}

// @Summary 获取题库详情
// @Tags 题库
// @Produce json
// @Security BearerAuth
// @Param bankId path string true "题库ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/banks/{bankId} [get]
func (c *QuestionBankController) Get(ctx *gin.Context) {
	b, err := c.Service.Get(ctx.Param("bankId"))
	if err != nil {
		if errors.Is(err, util.ErrBankNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, b)
}

// @Summary 更新题库
// @Tags 题库
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bankId path string true "题库ID"
// @Param body body service.QuestionBankRequest true "题库信息"
// @Success 200 {object} util.Response
// @Router /api/teacher/banks/{bankId} [put]
func (c *QuestionBankController) Update(ctx *gin.Context) {
	var req service.QuestionBankRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	b, err := c.Service.Update(ctx.Param("bankId"), req)
	if err != nil {
		if errors.Is(err, util.ErrBankNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, b)
}

// @Summary 删除题库
// @Tags 题库
// @Produce json
// @Security BearerAuth
// @Param bankId path string true "题库ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/banks/{bankId} [delete]
func (c *QuestionBankController) Delete(ctx *gin.Context) {
	id := ctx.Param("bankId")

	if err := c.Service.Delete(id); err != nil {
		if errors.Is(err, util.ErrBankNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}
