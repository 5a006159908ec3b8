package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"authoring_console_backend/internal/config"
	"authoring_console_backend/internal/util"
)

func localService(t *testing.T) *StorageService {
	t.Helper()
	cfg := &config.Config{}
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = t.TempDir()
	return NewStorageService(cfg)
}

func TestLocalStorageRoundTrip(t *testing.T) {
	s := localService(t)
	ctx := context.Background()

	payload := `[{"id":"q1"}]`
	url, err := s.Upload(ctx, "questions/bank-1.json", strings.NewReader(payload), int64(len(payload)), "application/json")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if url != "/exports/questions/bank-1.json" {
		t.Errorf("Upload url = %q, want local exports path", url)
	}

	r, err := s.Download(ctx, "questions/bank-1.json")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	defer r.Close()
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != payload {
		t.Errorf("Download = %q, want %q", got, payload)
	}
}

func TestLocalStorageDownloadMissingArtifact(t *testing.T) {
	s := localService(t)

	_, err := s.Download(context.Background(), "questions/never-exported.json")
	if !errors.Is(err, util.ErrExportArtifactMissing) {
		t.Fatalf("Download error = %v, want ErrExportArtifactMissing", err)
	}
}

func TestArtifactRejectsParentSegments(t *testing.T) {
	svc := &ImportExportService{Storage: localService(t)}

	_, err := svc.Artifact(context.Background(), "../configs/config.yaml")
	if !errors.Is(err, util.ErrExportArtifactMissing) {
		t.Fatalf("Artifact error = %v, want ErrExportArtifactMissing", err)
	}
}
