package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event as a debug record. It implements
// [PipelineHooks], [CacheHooks] and [HTTPHooks], so one value can be
// registered for all three.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks creates hooks writing to logger, prefixed with "hook".
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger.WithPrefix("hook")}
}

func (h *LogHooks) OnScanStart(_ context.Context, root string) {
	h.logger.Debug("scan start", "root", root)
}

func (h *LogHooks) OnScanComplete(_ context.Context, root string, entryCount int, d time.Duration, err error) {
	h.logger.Debug("scan complete", "root", root, "entries", entryCount, "took", d, "err", err)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, nodeCount, edgeCount int) {
	h.logger.Debug("layout start", "nodes", nodeCount, "edges", edgeCount)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, layerCount int, cyclic bool, d time.Duration, err error) {
	h.logger.Debug("layout complete", "layers", layerCount, "cyclic", cyclic, "took", d, "err", err)
}

func (h *LogHooks) OnRenderStart(_ context.Context, format string) {
	h.logger.Debug("render start", "format", format)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, format string, d time.Duration, err error) {
	h.logger.Debug("render complete", "format", format, "took", d, "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "took", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
