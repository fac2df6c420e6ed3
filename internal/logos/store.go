package logos

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rajatkhanna/invoice-api/internal/models"
)

// MaxSize caps uploaded logo files at 5 MiB.
const MaxSize = 5 << 20

var (
	ErrUnsupportedType = errors.New("unsupported logo file type")
	ErrTooLarge        = errors.New("logo file too large")
	ErrNotFound        = errors.New("logo not found")
)

var allowedExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".svg":  true,
}

// Store keeps uploaded company logos on disk under a single directory,
// renamed to uuid filenames so uploads can never collide or escape the dir.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create logo dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string { return s.dir }

// Save stores an uploaded logo and returns its record. The reader is capped
// at MaxSize; anything longer is rejected without a partial file left behind.
func (s *Store) Save(originalName string, r io.Reader) (models.Logo, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExts[ext] {
		return models.Logo{}, ErrUnsupportedType
	}
	data, err := io.ReadAll(io.LimitReader(r, MaxSize+1))
	if err != nil {
		return models.Logo{}, fmt.Errorf("read logo: %w", err)
	}
	if len(data) > MaxSize {
		return models.Logo{}, ErrTooLarge
	}
	filename := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0o644); err != nil {
		return models.Logo{}, fmt.Errorf("write logo: %w", err)
	}
	return models.Logo{
		Filename:     filename,
		OriginalName: filepath.Base(originalName),
		URL:          "/logos/" + filename,
	}, nil
}

// Path resolves a stored filename to its on-disk path. The name is reduced
// to its base component so path traversal cannot reach outside the dir.
func (s *Store) Path(filename string) (string, error) {
	clean := filepath.Base(filename)
	p := filepath.Join(s.dir, clean)
	if _, err := os.Stat(p); err != nil {
		return "", ErrNotFound
	}
	return p, nil
}

func (s *Store) Delete(filename string) error {
	p, err := s.Path(filename)
	if err != nil {
		return err
	}
	return os.Remove(p)
}

// FileInfo describes one stored logo for listings.
type FileInfo struct {
	Filename string    `json:"filename"`
	URL      string    `json:"url"`
	Size     int64     `json:"size"`
	Created  time.Time `json:"created"`
}

// List returns the stored logos, skipping anything that is not a recognized
// image file.
func (s *Store) List() ([]FileInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	infos := make([]FileInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !allowedExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		infos = append(infos, FileInfo{
			Filename: e.Name(),
			URL:      "/logos/" + e.Name(),
			Size:     fi.Size(),
			Created:  fi.ModTime(),
		})
	}
	return infos, nil
}
