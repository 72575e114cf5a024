package kb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Kapiti-Coast-District-Libraries/LibSysAI/config"
	apperrors "github.com/Kapiti-Coast-District-Libraries/LibSysAI/errors"
	"go.uber.org/zap"
)

const manifestFile = "manifest.json"

// Text-like extensions are ingested as knowledge documents; everything else
// in the manifest is counted as skipped.
var textExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".html": true,
	".csv":  true,
	".log":  true,
	".pdf":  true,
}

// SyncReport summarizes a single knowledge-base sync run.
type SyncReport struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
}

// Syncer pulls the knowledge-base manifest and raw files from the remote
// repository and publishes a fresh snapshot into the store. A failed
// manifest fetch leaves the published snapshot untouched; individual bad
// files are skipped and counted.
type Syncer struct {
	baseURL    string
	store      *Store
	httpClient *http.Client
	logger     *zap.Logger
}

func NewSyncer(cfg *config.Config, store *Store, logger *zap.Logger) *Syncer {
	return &Syncer{
		baseURL:    strings.TrimRight(cfg.KnowledgeBaseURL, "/") + "/",
		store:      store,
		httpClient: &http.Client{Timeout: cfg.SyncTimeout},
		logger:     logger,
	}
}

// Sync fetches every manifest entry and publishes the result atomically.
// Variables and lookup tables are replaced wholesale; documents accumulate
// on top of the previously published collection.
func (s *Syncer) Sync(ctx context.Context) (*SyncReport, error) {
	manifest, err := s.fetchManifest(ctx)
	if err != nil {
		return nil, apperrors.WrapErrorf(apperrors.ErrManifestUnavailable, "fetch manifest: %v", err)
	}

	prev := s.store.Snapshot()
	variables := prev.Variables
	tables := prev.Tables
	documents := make([]Document, len(prev.Documents), len(prev.Documents)+len(manifest))
	copy(documents, prev.Documents)

	report := &SyncReport{}
	for _, filePath := range manifest {
		fileName := baseName(filePath)

		switch {
		case fileName == "vqd.json":
			data, err := s.fetchFile(ctx, filePath)
			if err != nil {
				s.logger.Warn("Failed to fetch variable dictionary", zap.String("path", filePath), zap.Error(err))
				report.Skipped++
				continue
			}
			parsed, err := ParseVariables(data)
			if err != nil {
				// Bad container shape abandons this source; the previously
				// published variables stay in effect.
				s.logger.Warn("Failed to parse variable dictionary", zap.String("path", filePath), zap.Error(err))
				report.Skipped++
				continue
			}
			variables = parsed
			s.logger.Info("Loaded variable dictionary", zap.Int("entries", len(parsed)))
			report.Processed++

		case fileName == "lkp.json":
			data, err := s.fetchFile(ctx, filePath)
			if err != nil {
				s.logger.Warn("Failed to fetch lookup dictionary", zap.String("path", filePath), zap.Error(err))
				report.Skipped++
				continue
			}
			parsed, err := ParseLookupTables(data)
			if err != nil {
				s.logger.Warn("Failed to parse lookup dictionary", zap.String("path", filePath), zap.Error(err))
				report.Skipped++
				continue
			}
			tables = parsed
			s.logger.Info("Loaded lookup dictionary", zap.Int("tables", len(parsed)))
			report.Processed++

		case textExtensions[extension(fileName)]:
			data, err := s.fetchFile(ctx, filePath)
			if err != nil {
				s.logger.Warn("Failed to fetch knowledge document", zap.String("path", filePath), zap.Error(err))
				report.Skipped++
				continue
			}
			content, err := extractContent(fileName, data)
			if err != nil {
				s.logger.Warn("Failed to extract knowledge document", zap.String("path", filePath), zap.Error(err))
				report.Skipped++
				continue
			}
			documents = append(documents, Document{Name: fileName, Path: filePath, Content: content})
			report.Processed++

		default:
			report.Skipped++
		}
	}

	s.store.Publish(variables, tables, documents)
	s.logger.Info("Knowledge base synced",
		zap.Int("processed", report.Processed),
		zap.Int("skipped", report.Skipped))
	return report, nil
}

func extractContent(fileName string, data []byte) (string, error) {
	switch extension(fileName) {
	case ".html":
		return StripHTML(string(data)), nil
	case ".pdf":
		return ExtractPDFText(data)
	default:
		return string(data), nil
	}
}

// fetchManifest accepts either a bare JSON array of paths or an object
// wrapping one under "files".
func (s *Syncer) fetchManifest(ctx context.Context) ([]string, error) {
	data, err := s.fetchFile(ctx, manifestFile)
	if err != nil {
		return nil, err
	}

	var paths []string
	if err := json.Unmarshal(data, &paths); err == nil && paths != nil {
		return paths, nil
	}

	var wrapped struct {
		Files []string `json:"files"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Files != nil {
		return wrapped.Files, nil
	}
	return nil, fmt.Errorf("manifest is not a JSON array of file paths")
}

func (s *Syncer) fetchFile(ctx context.Context, filePath string) ([]byte, error) {
	url := s.baseURL + filePath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request for %s: %w", url, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("fetch %s: status %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func baseName(filePath string) string {
	if idx := strings.LastIndex(filePath, "/"); idx >= 0 {
		return filePath[idx+1:]
	}
	return filePath
}

func extension(fileName string) string {
	if idx := strings.LastIndex(fileName, "."); idx >= 0 {
		return strings.ToLower(fileName[idx:])
	}
	return ""
}
