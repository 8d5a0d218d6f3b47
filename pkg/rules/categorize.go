package rules

import (
	"strings"

	"github.com/arthur-debert/scour/pkg/types"
)

var (
	imageExtensions = map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
		".bmp": true, ".tiff": true, ".webp": true,
	}
	documentExtensions = map[string]bool{
		".pdf": true, ".doc": true, ".docx": true, ".xls": true,
		".xlsx": true, ".ppt": true, ".pptx": true, ".txt": true,
	}
	videoExtensions = map[string]bool{
		".mp4": true, ".avi": true, ".mov": true, ".wmv": true,
		".flv": true, ".mkv": true,
	}
	audioExtensions = map[string]bool{
		".mp3": true, ".wav": true, ".aac": true, ".flac": true, ".ogg": true,
	}
	archiveExtensions = map[string]bool{
		".zip": true, ".rar": true, ".7z": true, ".tar": true, ".gz": true,
	}
	tempExtensions = map[string]bool{
		".tmp": true, ".temp": true, ".bak": true, ".old": true,
	}
)

// Categorize assigns a record to a category based on its extension and,
// when present, its MIME type. First match wins, in this fixed order:
// image, document, video, audio, archive, temporary, log, other.
func Categorize(rec types.FileRecord) types.Category {
	ext := strings.ToLower(rec.Extension)
	mime := rec.MimeType

	switch {
	case imageExtensions[ext] || strings.Contains(mime, "image"):
		return types.CategoryImages
	case documentExtensions[ext] || strings.Contains(mime, "text"):
		return types.CategoryDocuments
	case videoExtensions[ext] || strings.Contains(mime, "video"):
		return types.CategoryVideos
	case audioExtensions[ext] || strings.Contains(mime, "audio"):
		return types.CategoryAudio
	case archiveExtensions[ext]:
		return types.CategoryArchives
	case tempExtensions[ext]:
		return types.CategoryTemporary
	case ext == ".log":
		return types.CategoryLogs
	default:
		return types.CategoryOther
	}
}
