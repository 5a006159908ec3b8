package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"authoring_console_backend/internal/codec"
	"authoring_console_backend/internal/config"
	"authoring_console_backend/internal/model"
	"authoring_console_backend/internal/repository"
	"authoring_console_backend/internal/util"
	"authoring_console_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
)

const importReportTTL = 24 * time.Hour

type ImportExportService struct {
	Questions   *repository.QuestionRepository
	Assessments *repository.AssessmentRepository
	Banks       *repository.QuestionBankRepository
	Storage     *StorageService
	Redis       *redis.Client
	Cfg         *config.ImportConfig
}

func NewImportExportService(
	questions *repository.QuestionRepository,
	assessments *repository.AssessmentRepository,
	banks *repository.QuestionBankRepository,
	storage *StorageService,
	rdb *redis.Client,
	cfg *config.ImportConfig,
) *ImportExportService {
	return &ImportExportService{
		Questions:   questions,
		Assessments: assessments,
		Banks:       banks,
		Storage:     storage,
		Redis:       rdb,
		Cfg:         cfg,
	}
}

// ImportReport is what the caller gets back from a bulk import and what gets
// cached as the user's most recent import outcome.
type ImportReport struct {
	Format   string    `json:"format"`
	Imported int       `json:"imported"`
	Failed   int       `json:"failed"`
	Errors   []string  `json:"errors,omitempty"`
	Partial  bool      `json:"partial"`
	At       time.Time `json:"at"`
}

// ImportQuestions runs the bulk pipeline under the configured timeout and
// persists every record that survived validation. Invalid records are
// reported, never stored.
func (s *ImportExportService) ImportQuestions(ctx context.Context, bankID string, format codec.Format, data []byte, userID string) (*ImportReport, error) {
	if _, err := s.Banks.FindByID(bankID); err != nil {
		return nil, util.ErrBankNotFound
	}

	if s.Cfg != nil && s.Cfg.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Cfg.TimeoutSeconds)
		defer cancel()
	}

	opts := codec.ImportOptions{}
	if s.Cfg != nil {
		opts.Workers = s.Cfg.Workers
	}
	result, err := codec.ImportQuestions(ctx, format, data, opts)
	if err != nil {
		monitoring.RecordImport(string(format), 0, 0)
		return nil, err
	}

	for i := range result.Questions {
		result.Questions[i].BankID = bankID
	}
	if len(result.Questions) > 0 {
		if err := s.Questions.CreateBatch(result.Questions); err != nil {
			return nil, err
		}
	}

	monitoring.RecordImport(string(format), result.Imported(), len(result.Errors))

	report := &ImportReport{
		Format:   string(format),
		Imported: result.Imported(),
		Failed:   len(result.Errors),
		Partial:  result.Partial != nil,
		At:       time.Now(),
	}
	for _, fe := range result.Errors {
		report.Errors = append(report.Errors, fe.Error())
	}
	s.cacheReport(ctx, userID, report)
	return report, nil
}

// ImportAssessments imports an assessment batch; JSON only. Imported
// assessments always land as drafts.
func (s *ImportExportService) ImportAssessments(ctx context.Context, format codec.Format, data []byte, userID string) (*ImportReport, error) {
	batch, err := codec.ParseAssessments(format, data)
	if err != nil {
		return nil, err
	}
	for i := range batch.Assessments {
		batch.Assessments[i].Status = model.StatusDraft
		batch.Assessments[i].CreatorID = userID
		if err := s.Assessments.Create(&batch.Assessments[i]); err != nil {
			return nil, err
		}
	}
	monitoring.RecordImport(string(format), batch.Imported(), len(batch.Errors))

	report := &ImportReport{
		Format:   string(format),
		Imported: batch.Imported(),
		Failed:   len(batch.Errors),
		At:       time.Now(),
	}
	for _, fe := range batch.Errors {
		report.Errors = append(report.Errors, fe.Error())
	}
	s.cacheReport(ctx, userID, report)
	return report, nil
}

// ExportQuestions serializes a bank's questions and archives the artifact in
// object storage. The bytes are returned for streaming; the artifact URL is
// for later retrieval.
func (s *ImportExportService) ExportQuestions(ctx context.Context, bankID string, format codec.Format) ([]byte, []codec.FormatError, string, error) {
	if _, err := s.Banks.FindByID(bankID); err != nil {
		return nil, nil, "", util.ErrBankNotFound
	}
	questions, err := s.Questions.ListByBank(bankID)
	if err != nil {
		return nil, nil, "", err
	}

	data, recordErrs, err := codec.ExportQuestions(questions, format)
	if err != nil {
		return nil, nil, "", err
	}
	monitoring.ExportedBatches.WithLabelValues(string(format)).Inc()

	url := s.archive(ctx, fmt.Sprintf("questions/%s-%d.%s", bankID, time.Now().Unix(), format), data, format)
	return data, recordErrs, url, nil
}

// ExportAssessments serializes assessments by id; JSON only.
func (s *ImportExportService) ExportAssessments(ctx context.Context, ids []string, format codec.Format) ([]byte, string, error) {
	assessments := make([]model.Assessment, 0, len(ids))
	for _, id := range ids {
		a, err := s.Assessments.FindByID(id)
		if err != nil {
			return nil, "", util.ErrAssessmentNotFound
		}
		assessments = append(assessments, *a)
	}

	data, err := codec.ExportAssessments(assessments, format)
	if err != nil {
		return nil, "", err
	}
	monitoring.ExportedBatches.WithLabelValues(string(format)).Inc()

	url := s.archive(ctx, fmt.Sprintf("assessments/%d.%s", time.Now().Unix(), format), data, format)
	return data, url, nil
}

// Artifact streams a previously archived export by name. Names never contain
// parent segments; anything else is treated as a missing artifact.
func (s *ImportExportService) Artifact(ctx context.Context, name string) (io.ReadCloser, error) {
	if s.Storage == nil || name == "" || strings.Contains(name, "..") {
		return nil, util.ErrExportArtifactMissing
	}
	return s.Storage.Download(ctx, name)
}

// LastImportReport returns the user's cached most-recent import outcome.
func (s *ImportExportService) LastImportReport(ctx context.Context, userID string) (*ImportReport, error) {
	if s.Redis == nil {
		return nil, nil
	}
	raw, err := s.Redis.Get(ctx, reportKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var report ImportReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// cacheReport is best-effort; a cache miss never fails the import itself.
func (s *ImportExportService) cacheReport(ctx context.Context, userID string, report *ImportReport) {
	if s.Redis == nil || userID == "" {
		return
	}
	raw, err := json.Marshal(report)
	if err != nil {
		return
	}
	s.Redis.Set(ctx, reportKey(userID), raw, importReportTTL)
}

// archive is best-effort too; exports still stream even when object storage
// is down.
func (s *ImportExportService) archive(ctx context.Context, name string, data []byte, format codec.Format) string {
	if s.Storage == nil {
		return ""
	}
	url, err := s.Storage.Upload(ctx, name, bytes.NewReader(data), int64(len(data)), format.ContentType())
	if err != nil {
		return ""
	}
	return url
}

func reportKey(userID string) string {
	return "import:report:" + userID
}
