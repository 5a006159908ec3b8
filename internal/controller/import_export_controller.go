package controller

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"authoring_console_backend/internal/codec"
	"authoring_console_backend/internal/service"
	"authoring_console_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// 10 MB; import payloads beyond this are rejected before parsing
const maxImportBody = 10 << 20

type ImportExportController struct {
	Service *service.ImportExportService
}

func NewImportExportController(svc *service.ImportExportService) *ImportExportController {
	return &ImportExportController{Service: svc}
}

// @Summary 批量导入试题
// @Description 逐条隔离：单条记录出错不影响其余记录；容器级错误整体拒绝
// @Tags 导入导出
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bankId path string true "目标题库ID"
// @Param format query string true "json|csv|qti"
// @Success 200 {object} util.ImportResponse
// @Failure 400 {object} util.Response
// @Router /api/teacher/banks/{bankId}/questions/import [post]
func (c *ImportExportController) ImportQuestions(ctx *gin.Context) {
	format, err := codec.ParseFormat(ctx.Query("format"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	data, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxImportBody))
	if err != nil {
		util.BadRequest(ctx, "could not read request body")
		return
	}

	user := util.GetUserFromContext(ctx)
	userID := ""
	if user != nil {
		userID = user.UserID
	}

	report, err := c.Service.ImportQuestions(ctx.Request.Context(), ctx.Param("bankId"), format, data, userID)
	if err != nil {
		c.renderImportError(ctx, err)
		return
	}

	util.Success(ctx, util.ImportResponse{
		Imported: report.Imported,
		Errors:   report.Errors,
		Partial:  report.Partial,
	})
}

// @Summary 批量导入测评
// @Description 仅支持 JSON；导入的测评一律落为草稿
// @Tags 导入导出
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param format query string true "json"
// @Success 200 {object} util.ImportResponse
// @Failure 400 {object} util.Response
// @Router /api/teacher/imports/assessments [post]
func (c *ImportExportController) ImportAssessments(ctx *gin.Context) {
	format, err := codec.ParseFormat(ctx.DefaultQuery("format", "json"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	data, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxImportBody))
	if err != nil {
		util.BadRequest(ctx, "could not read request body")
		return
	}

	user := util.GetUserFromContext(ctx)
	userID := ""
	if user != nil {
		userID = user.UserID
	}

	report, err := c.Service.ImportAssessments(ctx.Request.Context(), format, data, userID)
	if err != nil {
		c.renderImportError(ctx, err)
		return
	}

	util.Success(ctx, util.ImportResponse{
		Imported: report.Imported,
		Errors:   report.Errors,
	})
}

// @Summary 导出题库试题
// @Description 按声明格式串流返回；QTI 下不支持的题型逐条跳过并记入响应头
// @Tags 导入导出
// @Produce json
// @Security BearerAuth
// @Param bankId path string true "题库ID"
// @Param format query string true "json|csv|qti"
// @Success 200 {string} string "导出内容"
// @Router /api/teacher/banks/{bankId}/questions/export [get]
func (c *ImportExportController) ExportQuestions(ctx *gin.Context) {
	format, err := codec.ParseFormat(ctx.Query("format"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	data, recordErrs, url, err := c.Service.ExportQuestions(ctx.Request.Context(), ctx.Param("bankId"), format)
	if err != nil {
		if errors.Is(err, util.ErrBankNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	if len(recordErrs) > 0 {
		skipped := make([]string, len(recordErrs))
		for i, fe := range recordErrs {
			skipped[i] = fe.Error()
		}
		ctx.Header("X-Export-Skipped", strings.Join(skipped, "; "))
	}
	if url != "" {
		ctx.Header("X-Export-Artifact", url)
	}
	ctx.Data(http.StatusOK, format.ContentType(), data)
}

// @Summary 导出测评
// @Description 仅支持 JSON
// @Tags 导入导出
// @Produce json
// @Security BearerAuth
// @Param ids query string true "逗号分隔的测评ID"
// @Param format query string false "json"
// @Success 200 {string} string "导出内容"
// @Router /api/teacher/exports/assessments [get]
func (c *ImportExportController) ExportAssessments(ctx *gin.Context) {
	format, err := codec.ParseFormat(ctx.DefaultQuery("format", "json"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	ids := strings.Split(ctx.Query("ids"), ",")
	clean := ids[:0]
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			clean = append(clean, id)
		}
	}
	if len(clean) == 0 {
		util.BadRequest(ctx, "ids query parameter is required")
		return
	}

	data, url, err := c.Service.ExportAssessments(ctx.Request.Context(), clean, format)
	if err != nil {
		c.renderImportError(ctx, err)
		return
	}

	if url != "" {
		ctx.Header("X-Export-Artifact", url)
	}
	ctx.Data(http.StatusOK, format.ContentType(), data)
}

// @Summary 下载导出产物
// @Description 按导出时返回的产物名取回归档内容
// @Tags 导入导出
// @Produce octet-stream
// @Security BearerAuth
// @Param name path string true "产物名"
// @Success 200 {string} string "产物内容"
// @Failure 404 {object} util.Response
// @Router /api/teacher/exports/artifacts/{name} [get]
func (c *ImportExportController) DownloadArtifact(ctx *gin.Context) {
	name := strings.TrimPrefix(ctx.Param("name"), "/")

	reader, err := c.Service.Artifact(ctx.Request.Context(), name)
	if err != nil {
		if errors.Is(err, util.ErrExportArtifactMissing) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	defer reader.Close()

	format, err := codec.ParseFormat(strings.TrimPrefix(filepath.Ext(name), "."))
	contentType := "application/octet-stream"
	if err == nil {
		contentType = format.ContentType()
	}

	ctx.Header("Content-Type", contentType)
	ctx.Status(http.StatusOK)
	io.Copy(ctx.Writer, reader)
}

// @Summary 最近一次导入报告
// @Tags 导入导出
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/teacher/imports/last [get]
func (c *ImportExportController) LastImportReport(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	report, err := c.Service.LastImportReport(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if report == nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, report)
}

func (c *ImportExportController) renderImportError(ctx *gin.Context, err error) {
	var (
		container   *codec.ContainerParseError
		unsupported *codec.UnsupportedFormatError
	)
	switch {
	case errors.Is(err, util.ErrBankNotFound), errors.Is(err, util.ErrAssessmentNotFound):
		util.NotFound(ctx)
	case errors.As(err, &container):
		util.BadRequest(ctx, container.Error())
	case errors.As(err, &unsupported):
		util.BadRequest(ctx, unsupported.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
