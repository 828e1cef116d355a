package text

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"fyne.io/fyne/v2/theme"
	"github.com/go-text/typesetting/font"
)

// Collection owns the font data shared by every layout pass. Fonts are
// loaded up front; after that the collection is read-only. When no font
// file has been loaded the bundled sans-serif font backs everything, so
// a collection is always usable.
type Collection struct {
	mu   sync.Mutex
	data [][]byte
	face *font.Face
}

// NewCollection returns an empty collection backed by the bundled font.
func NewCollection() *Collection {
	return &Collection{}
}

// LoadFile adds one font file (.ttf or .otf) to the collection. The
// first file loaded becomes the default face.
func (c *Collection) LoadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}
	if _, err := font.ParseTTF(bytes.NewReader(b)); err != nil {
		return fmt.Errorf("parse font %s: %w", filepath.Base(path), err)
	}
	c.mu.Lock()
	c.data = append(c.data, b)
	c.face = nil
	c.mu.Unlock()
	return nil
}

// LoadDir adds every font file in dir, in name order.
func (c *Collection) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("load fonts: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".ttf", ".otf":
			if err := c.LoadFile(filepath.Join(dir, entry.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}

// Default returns the face shaping runs against: the first loaded font,
// or the bundled fallback when nothing was loaded.
func (c *Collection) Default() (*font.Face, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.face != nil {
		return c.face, nil
	}
	data, err := c.defaultDataLocked()
	if err != nil {
		return nil, err
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse default font: %w", err)
	}
	c.face = face
	return face, nil
}

// DefaultData returns the raw bytes of the default font file, for
// consumers that rasterize with their own font stack.
func (c *Collection) DefaultData() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.defaultDataLocked()
}

func (c *Collection) defaultDataLocked() ([]byte, error) {
	if len(c.data) > 0 {
		return c.data[0], nil
	}
	res := theme.DefaultTextFont()
	if res == nil || len(res.Content()) == 0 {
		return nil, errors.New("no usable font: none loaded and no bundled fallback")
	}
	return res.Content(), nil
}

// NewShaper returns a shaper on the collection's default face.
func (c *Collection) NewShaper() (*FontShaper, error) {
	face, err := c.Default()
	if err != nil {
		return nil, err
	}
	return NewFontShaper(face), nil
}
