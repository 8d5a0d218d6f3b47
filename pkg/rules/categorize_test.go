// Test Type: Unit Test
// Description: Tests for file categorization by extension and MIME type

package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/scour/pkg/rules"
	"github.com/arthur-debert/scour/pkg/types"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name     string
		ext      string
		mime     string
		expected types.Category
	}{
		{"jpeg_is_image", ".jpg", "", types.CategoryImages},
		{"uppercase_extension_is_normalized", ".PNG", "", types.CategoryImages},
		{"pdf_is_document", ".pdf", "", types.CategoryDocuments},
		{"txt_is_document", ".txt", "", types.CategoryDocuments},
		{"mkv_is_video", ".mkv", "", types.CategoryVideos},
		{"flac_is_audio", ".flac", "", types.CategoryAudio},
		{"zip_is_archive", ".zip", "", types.CategoryArchives},
		{"tmp_is_temporary", ".tmp", "", types.CategoryTemporary},
		{"bak_is_temporary", ".bak", "", types.CategoryTemporary},
		{"log_is_log", ".log", "", types.CategoryLogs},
		{"unknown_is_other", ".xyz", "", types.CategoryOther},
		{"no_extension_is_other", "", "", types.CategoryOther},
		{"mime_image_without_known_extension", ".heic", "image/heic", types.CategoryImages},
		{"mime_text_without_known_extension", ".md", "text/markdown", types.CategoryDocuments},
		{"mime_video_without_known_extension", ".webm", "video/webm", types.CategoryVideos},
		{"mime_audio_without_known_extension", ".opus", "audio/opus", types.CategoryAudio},
		// Earlier categories in the precedence chain win over later ones:
		// a text MIME type cannot demote a known image extension.
		{"extension_precedence_beats_mime", ".png", "text/plain", types.CategoryImages},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := types.FileRecord{
				Name:      "file" + tt.ext,
				Extension: tt.ext,
				MimeType:  tt.mime,
			}
			assert.Equal(t, tt.expected, rules.Categorize(rec))
		})
	}
}
