package controller

import (
	"errors"
	"strconv"

	"authoring_console_backend/internal/service"
	"authoring_console_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RubricController struct {
	Service *service.RubricService
}

func NewRubricController(svc *service.RubricService) *RubricController {
	return &RubricController{Service: svc}
}

// @Summary 创建评分量表
// @Description 总分不存储，始终由各维度最高档位之和推导
// @Tags 评分量表
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.RubricRequest true "量表信息"
// @Success 201 {object} util.Response
// @Failure 422 {object} util.Response
// @Router /api/teacher/rubrics [post]
func (c *RubricController) Create(ctx *gin.Context) {
	var req service.RubricRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	v, verrs, err := c.Service.Create(req, user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if len(verrs) > 0 {
		util.UnprocessableEntity(ctx, verrs)
		return
	}

	util.Created(ctx, v)
}

// @Summary 获取量表列表
// @Tags 评分量表
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param limit query int false "每页条数"
// @Success 200 {object} util.Response
// @Router /api/teacher/rubrics [get]
func (c *RubricController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	views, total, err := c.Service.List(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: views, Total: total, Page: page, Limit: limit})
}

// @Summary 获取量表详情
// @Tags 评分量表
// @Produce json
// @Security BearerAuth
// @Param id path string true "量表ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/rubrics/{id} [get]
func (c *RubricController) Get(ctx *gin.Context) {
	v, err := c.Service.Get(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrRubricNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, v)
}

// @Summary 更新量表
// @Tags 评分量表
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "量表ID"
// @Param body body service.RubricRequest true "量表信息"
// @Success 200 {object} util.Response
// @Failure 422 {object} util.Response
// @Router /api/teacher/rubrics/{id} [put]
func (c *RubricController) Update(ctx *gin.Context) {
	var req service.RubricRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	v, verrs, err := c.Service.Update(ctx.Param("id"), req)
	if err != nil {
		if errors.Is(err, util.ErrRubricNotFound) {
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

	util.Success(ctx, v)
}

// @Summary 删除量表
// @Tags 评分量表
// @Produce json
// @Security BearerAuth
// @Param id path string true "量表ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/rubrics/{id} [delete]
func (c *RubricController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.Service.Delete(id); err != nil {
		if errors.Is(err, util.ErrRubricNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}
