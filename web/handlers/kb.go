package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Kapiti-Coast-District-Libraries/LibSysAI/config"
	apperrors "github.com/Kapiti-Coast-District-Libraries/LibSysAI/errors"
	"github.com/Kapiti-Coast-District-Libraries/LibSysAI/kb"
)

type KBHandler struct {
	store  *kb.Store
	syncer *kb.Syncer
	cfg    *config.Config
	logger *zap.Logger
}

func NewKBHandler(store *kb.Store, syncer *kb.Syncer, cfg *config.Config, logger *zap.Logger) *KBHandler {
	return &KBHandler{
		store:  store,
		syncer: syncer,
		cfg:    cfg,
		logger: logger,
	}
}

// Status reports the published snapshot: its version and collection sizes.
func (h *KBHandler) Status(c *gin.Context) {
	snap := h.store.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"version":   snap.Version,
		"variables": len(snap.Variables),
		"tables":    len(snap.Tables),
		"documents": len(snap.Documents),
	})
}

// Sync pulls the knowledge base from the configured source and publishes a
// new snapshot. The request blocks until the sync completes or times out.
func (h *KBHandler) Sync(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.cfg.SyncTimeout)
	defer cancel()

	report, err := h.syncer.Sync(ctx)
	if err != nil {
		if apperrors.IsManifestUnavailable(err) {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Knowledge base sync failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "knowledge base sync failed"})
		return
	}

	snap := h.store.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"processed": report.Processed,
		"skipped":   report.Skipped,
		"version":   snap.Version,
	})
}

// Clear drops the knowledge documents while keeping the structured index.
func (h *KBHandler) Clear(c *gin.Context) {
	snap := h.store.Clear()
	c.JSON(http.StatusOK, gin.H{
		"version":   snap.Version,
		"documents": len(snap.Documents),
	})
}
