package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// FileOutputHandler writes each frame as a PNG, via a temp file so a
// reader never sees a half-written image.
type FileOutputHandler struct {
	filePath string
}

func NewFileOutputHandler(filePath string) *FileOutputHandler {
	return &FileOutputHandler{filePath: filePath}
}

func (f *FileOutputHandler) Type() string {
	return "file"
}

func (f *FileOutputHandler) Output(img image.Image) error {
	tmp := f.filePath + ".tmp"

	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create file: %v", err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to encode frame: %v", err)
	}
	if err := file.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, f.filePath)
}

func (f *FileOutputHandler) Close() error {
	return nil
}
