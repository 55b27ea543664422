// Package web embeds the built frontend static assets for single-binary
// distribution.
package web

import "embed"

// Assets contains the frontend production build output.
// The build/ directory is created by `pnpm run build` in the web/ directory;
// a placeholder index.html is committed so the embed never fails.
//
//go:embed all:build
var Assets embed.FS
