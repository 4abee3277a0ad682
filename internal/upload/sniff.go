package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// Messenger exports are plain text or CSV. Anything with a recognizable
// binary signature would only come back as a 415 from the backend, so it is
// rejected before the round-trip.
var allowedExtensions = map[string]bool{
	".txt": true,
	".csv": true,
}

const sniffLen = 262 // filetype's maximum signature length

// CheckExport validates that path looks like an uploadable chat export.
func CheckExport(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !allowedExtensions[ext] {
		return fmt.Errorf("지원하지 않는 파일 형식입니다: %s (.txt, .csv만 올릴 수 있습니다)", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("파일을 열 수 없습니다: %w", err)
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := f.Read(head)
	if err != nil && err != io.EOF {
		return fmt.Errorf("파일을 읽을 수 없습니다: %w", err)
	}

	// A matched signature means a binary format wearing a text extension.
	if kind, _ := filetype.Match(head[:n]); kind != filetype.Unknown {
		return fmt.Errorf("지원하지 않는 파일 형식입니다: %s로 보입니다", kind.Extension)
	}
	return nil
}
