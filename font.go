package main

import (
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// The font size selector of a widget profile is an ordinal 1..6 mapped to
// pixel sizes here; out-of-range indices clamp.
var fontSizeTable = [6]int{10, 12, 14, 18, 24, 32}

func FontSizeForIndex(index int) int {
	if index < 1 {
		index = 1
	}
	if index > len(fontSizeTable) {
		index = len(fontSizeTable)
	}
	return fontSizeTable[index-1]
}

// FontCache loads faces lazily per pixel size from one discovered system
// font file.
type FontCache struct {
	fontFile string
	fallback font.Face
	fontMap  map[int]font.Face
	mutex    sync.RWMutex
}

func LoadFontCache(families []string) (*FontCache, error) {
	fontFile := findSystemFont(families)
	if fontFile == "" {
		logWarnModule("font", "No suitable font found, using builtin default")
	} else {
		logInfoModule("font", "Using font: %s", filepath.Base(fontFile))
	}

	cache := &FontCache{
		fontFile: fontFile,
		fontMap:  make(map[int]font.Face),
	}

	fallback, err := gg.LoadFontFace(fontFile, float64(FontSizeForIndex(3)))
	if err != nil {
		fallback, err = gg.LoadFontFace("", float64(FontSizeForIndex(3)))
		if err != nil {
			return nil, err
		}
	}
	cache.fallback = fallback

	return cache, nil
}

func (fc *FontCache) GetFont(size int) font.Face {
	fc.mutex.RLock()
	if face, exists := fc.fontMap[size]; exists {
		fc.mutex.RUnlock()
		return face
	}
	fc.mutex.RUnlock()

	face, err := gg.LoadFontFace(fc.fontFile, float64(size))
	if err != nil {
		return fc.fallback
	}

	fc.mutex.Lock()
	fc.fontMap[size] = face
	fc.mutex.Unlock()

	return face
}

func findSystemFont(families []string) string {
	if len(families) == 0 {
		families = []string{
			"DejaVuSans.ttf",
			"LiberationSans-Regular.ttf",
			"Roboto-Regular.ttf",
			"Ubuntu-Regular.ttf",
			"NotoSans-Regular.ttf",
			"FreeSans.ttf",
			"arial.ttf",
			"Arial.ttf",
		}
	}

	fontDirs := []string{
		"/usr/share/fonts",
		"/usr/local/share/fonts",
		"/System/Library/Fonts",
		"/Library/Fonts",
		"~/.fonts",
		"~/.local/share/fonts",
	}

	for _, name := range families {
		for _, dir := range fontDirs {
			cmd := exec.Command("find", dir, "-name", "*"+name+"*", "-type", "f")
			output, err := cmd.Output()
			if err != nil {
				continue
			}

			for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
				if line == "" {
					continue
				}
				if strings.HasSuffix(line, ".ttf") || strings.HasSuffix(line, ".ttc") || strings.HasSuffix(line, ".otf") {
					if _, err := gg.LoadFontFace(line, 16); err == nil {
						return line
					}
				}
			}
		}
	}
	return ""
}
