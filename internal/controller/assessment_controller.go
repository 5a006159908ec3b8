package controller

import (
	"errors"
	"strconv"

	"authoring_console_backend/internal/domain"
	"authoring_console_backend/internal/model"
	"authoring_console_backend/internal/service"
	"authoring_console_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	Service *service.AssessmentService
}

func NewAssessmentController(svc *service.AssessmentService) *AssessmentController {
	return &AssessmentController{Service: svc}
}

// @Summary 创建测评（草稿）
// @Tags 测评
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.AssessmentRequest true "测评信息"
// @Success 201 {object} util.Response
// @Router /api/teacher/assessments [post]
func (c *AssessmentController) Create(ctx *gin.Context) {
	var req service.AssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	a, err := c.Service.Create(req, user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrRubricNotFound) {
			util.BadRequest(ctx, "rubric does not exist")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, a)
}

// @Summary 获取测评列表
// @Tags 测评
// @Produce json
// @Security BearerAuth
// @Param status query string false "状态筛选 draft|published|archived"
// @Param page query int false "页码"
// @Param limit query int false "每页条数"
// @Success 200 {object} util.Response
// @Router /api/teacher/assessments [get]
func (c *AssessmentController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	status := model.AssessmentStatus(ctx.Query("status"))

	assessments, total, err := c.Service.List(status, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: assessments, Total: total, Page: page, Limit: limit})
}

// @Summary 获取测评详情
// @Tags 测评
// @Produce json
// @Security BearerAuth
// @Param id path string true "测评ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/assessments/{id} [get]
func (c *AssessmentController) Get(ctx *gin.Context) {
	a, err := c.Service.Get(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrAssessmentNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, a)
}

// @Summary 更新测评（仅草稿）
// @Tags 测评
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "测评ID"
// @Param body body service.AssessmentUpdate true "要更新的字段"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/teacher/assessments/{id} [put]
func (c *AssessmentController) Update(ctx *gin.Context) {
	var upd service.AssessmentUpdate
	if err := ctx.ShouldBindJSON(&upd); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	a, err := c.Service.Update(ctx.Param("id"), upd)
	if err != nil {
		c.renderError(ctx, err)
		return
	}
	util.Success(ctx, a)
}

// @Summary 复制测评
// @Description 复制为新草稿：设置深拷贝，题目引用浅拷贝，状态重置
// @Tags 测评
// @Produce json
// @Security BearerAuth
// @Param id path string true "测评ID"
// @Success 201 {object} util.Response
// @Router /api/teacher/assessments/{id}/duplicate [post]
func (c *AssessmentController) Duplicate(ctx *gin.Context) {
	a, err := c.Service.Duplicate(ctx.Param("id"))
	if err != nil {
		c.renderError(ctx, err)
		return
	}
	util.Created(ctx, a)
}

// @Summary 发布测评
// @Description 发布前逐门校验：非空、引用的题目全部有效、设置合法
// @Tags 测评
// @Produce json
// @Security BearerAuth
// @Param id path string true "测评ID"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response
// @Failure 422 {object} util.Response
// @Router /api/teacher/assessments/{id}/publish [post]
func (c *AssessmentController) Publish(ctx *gin.Context) {
	a, err := c.Service.Publish(ctx.Param("id"))
	if err != nil {
		c.renderError(ctx, err)
		return
	}
	util.Success(ctx, a)
}

// @Summary 归档测评
// @Tags 测评
// @Produce json
// @Security BearerAuth
// @Param id path string true "测评ID"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/teacher/assessments/{id}/archive [post]
func (c *AssessmentController) Archive(ctx *gin.Context) {
	a, err := c.Service.Archive(ctx.Param("id"))
	if err != nil {
		c.renderError(ctx, err)
		return
	}
	util.Success(ctx, a)
}

// renderError maps lifecycle and lookup failures onto the response envelope.
// Publish guards come back itemized so the author sees every defect at once.
func (c *AssessmentController) renderError(ctx *gin.Context, err error) {
	var (
		illegal    *domain.IllegalTransitionError
		terminal   *domain.AlreadyTerminalError
		empty      *domain.EmptyAssessmentError
		badQs      *domain.InvalidQuestionsError
		badSetting *domain.InvalidSettingsError
	)
	switch {
	case errors.Is(err, util.ErrAssessmentNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrRubricNotFound):
		util.BadRequest(ctx, "rubric does not exist")
	case errors.As(err, &illegal):
		util.Conflict(ctx, illegal.Error())
	case errors.As(err, &terminal):
		util.Conflict(ctx, terminal.Error())
	case errors.As(err, &empty):
		util.UnprocessableEntity(ctx, gin.H{"reason": empty.Error()})
	case errors.As(err, &badQs):
		util.UnprocessableEntity(ctx, gin.H{"reason": badQs.Error(), "failures": badQs.Failures})
	case errors.As(err, &badSetting):
		util.UnprocessableEntity(ctx, gin.H{"reason": badSetting.Error(), "violations": badSetting.Reasons})
	default:
		util.LogInternalError(ctx, err)
	}
}
