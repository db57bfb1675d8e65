package storage

import (
	"context"
	"os"
)

type FileTemplateSource struct {
	FilePath string
}

func NewFileTemplateSource(filePath string) *FileTemplateSource {
	return &FileTemplateSource{FilePath: filePath}
}

func (f *FileTemplateSource) Load(ctx context.Context) (string, error) {
	b, err := os.ReadFile(f.FilePath)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
