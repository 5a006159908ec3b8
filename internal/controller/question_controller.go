package controller

import (
	"errors"
	"strconv"

	"authoring_console_backend/internal/domain"
	"authoring_console_backend/internal/service"
	"authoring_console_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	Service *service.QuestionService
	Drafts  *service.AIDraftService
}

func NewQuestionController(svc *service.QuestionService, drafts *service.AIDraftService) *QuestionController {
	return &QuestionController{Service: svc, Drafts: drafts}
}

// @Summary 创建试题
// @Tags 试题
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.QuestionRequest true "试题信息"
// @Success 201 {object} util.Response
// @Failure 422 {object} util.Response
// @Router /api/teacher/questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, verrs, err := c.Service.Create(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if len(verrs) > 0 {
		util.UnprocessableEntity(ctx, verrs)
		return
	}

	util.Created(ctx, q)
}

// @Summary 获取试题详情
// @Tags 试题
// @Produce json
// @Security BearerAuth
// @Param id path string true "试题ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/questions/{id} [get]
func (c *QuestionController) Get(ctx *gin.Context) {
	q, err := c.Service.Get(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, q)
}

// @Summary 查询题库试题（筛选+分页）
// @Tags 试题
// @Produce json
// @Security BearerAuth
// @Param bankId path string true "题库ID"
// @Param type query string false "题型筛选"
// @Param difficulty query string false "难度筛选"
// @Param tags query []string false "标签筛选（与）"
// @Param search query string false "题干关键字"
// @Param page query int false "页码"
// @Param limit query int false "每页条数"
// @Success 200 {object} util.Response
// @Router /api/teacher/banks/{bankId}/questions [get]
func (c *QuestionController) List(ctx *gin.Context) {
	var filter domain.QuestionFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	result, err := c.Service.List(ctx.Param("bankId"), filter, page, limit)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPageSize) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  result.Items,
		Total: int64(result.Total),
		Page:  page,
		Limit: limit,
	})
}

// @Summary 更新试题（子树整体替换）
// @Tags 试题
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "试题ID"
// @Param body body service.QuestionUpdate true "要替换的子树"
// @Success 200 {object} util.Response
// @Failure 422 {object} util.Response
// @Router /api/teacher/questions/{id} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	var upd service.QuestionUpdate
	if err := ctx.ShouldBindJSON(&upd); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, verrs, err := c.Service.Update(ctx.Param("id"), upd)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	if len(verrs) > 0 {
		util.UnprocessableEntity(ctx, verrs)
		return
	}

	util.Success(ctx, q)
}

// @Summary 删除试题
// @Description 被未归档测评引用的试题不允许删除
// @Tags 试题
// @Produce json
// @Security BearerAuth
// @Param id path string true "试题ID"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/teacher/questions/{id} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.Service.Delete(id); err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
			return
		}
		if errors.Is(err, util.ErrQuestionReferenced) {
			util.Conflict(ctx, "question is referenced by an active assessment")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": id})
}

// @Summary AI 起草试题
// @Description 调用模型起草一道试题，起草结果须先通过校验，不入库
// @Tags 试题
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.DraftRequest true "起草要求"
// @Success 200 {object} util.Response
// @Failure 422 {object} util.Response
// @Router /api/teacher/question-drafts [post]
func (c *QuestionController) Draft(ctx *gin.Context) {
	var req service.DraftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, verrs, err := c.Drafts.Draft(ctx.Request.Context(), req)
	if err != nil {
		if errors.Is(err, util.ErrDraftRejected) {
			util.UnprocessableEntity(ctx, verrs)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, q)
}
