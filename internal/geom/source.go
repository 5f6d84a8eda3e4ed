package geom

import (
	"os"
	"time"

	"polymap/internal/logging"
	"polymap/internal/mtime"
	"polymap/internal/polydata"
)

// FileSource is a polydata.Source reading a geometry file. It reports
// itself modified whenever the file's size or modification time on disk
// changes, so a dataset attached to it reloads on its next Update.
type FileSource struct {
	path string
	opts Options

	stamp    mtime.Stamp
	observed bool
	exists   bool
	modTime  time.Time
	size     int64
}

var _ polydata.Source = (*FileSource)(nil)

// NewFileSource returns a source for the file at path.
func NewFileSource(path string, opts Options) *FileSource {
	s := &FileSource{path: path, opts: opts}
	s.stamp.Modified()
	return s
}

// Path returns the file path.
func (s *FileSource) Path() string { return s.path }

// Touch forces the next Update of an attached dataset to reload the file.
func (s *FileSource) Touch() { s.stamp.Modified() }

// MTime stats the file and returns when it was last seen changing,
// appearing or disappearing.
func (s *FileSource) MTime() mtime.Time {
	var (
		modTime time.Time
		size    int64
	)
	fi, err := os.Stat(s.path)
	exists := err == nil
	if exists {
		modTime, size = fi.ModTime(), fi.Size()
	}
	if s.observed && (exists != s.exists || !modTime.Equal(s.modTime) || size != s.size) {
		logging.Logger().Debug("geom: file changed", "path", s.path, "exists", exists)
		s.stamp.Modified()
	}
	s.observed, s.exists = true, exists
	s.modTime, s.size = modTime, size
	return s.stamp.Time()
}

// Execute loads the file into d. On failure d is left unchanged.
func (s *FileSource) Execute(d *polydata.PolyData) error {
	loaded, err := Load(s.path, s.opts)
	if err != nil {
		return err
	}
	d.CopyFrom(loaded)
	return nil
}
