// Package dump writes diagnostic artifacts (parsed elements, chunk sets,
// assembled prompts) to disk for offline inspection. Dump failures are
// logged and swallowed so diagnostics never break the pipeline.
package dump

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"docqa/internal/contextutil"
)

// SaveJSON marshals v with indentation and writes it to path.
func SaveJSON(ctx context.Context, path string, v any) {
	logger := contextutil.LoggerFromContext(ctx)

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logger.WarnContext(ctx, "failed to marshal dump", "path", path, "error", err)
		return
	}
	writeBytes(ctx, path, data)
}

// WriteFile writes raw text to path.
func WriteFile(ctx context.Context, path, content string) {
	writeBytes(ctx, path, []byte(content))
}

func writeBytes(ctx context.Context, path string, data []byte) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.WarnContext(ctx, "failed to create dump directory", "path", path, "error", err)
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		logger.WarnContext(ctx, "failed to write dump", "path", path, "error", err)
		return
	}
	logger.DebugContext(ctx, "dump written", "path", path, "bytes", len(data))
}
