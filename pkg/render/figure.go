package render

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/maflot/diceplot/pkg/errors"
)

// Figure is a rendered plot. Save dispatches on the path extension; formats
// beyond the figure's native one go through SVG conversion where supported.
type Figure interface {
	// Format is the native format extension without the dot ("svg", "png").
	Format() string

	// WriteTo writes the native encoding.
	WriteTo(w io.Writer) (int64, error)

	// Save writes the figure to path, converting if the extension differs
	// from the native format.
	Save(path string) error

	// Show writes the figure to a temporary file and opens the platform
	// viewer.
	Show() error
}

// WriteFile writes a figure's native encoding to path.
func WriteFile(f Figure, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer out.Close()
	if _, err := f.WriteTo(out); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}

// ShowFile opens path with the platform's default viewer. The viewer is
// started detached; Show returns once the process is launched.
func ShowFile(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "open viewer for %s", path)
	}
	return nil
}

// ShowTemp writes a figure to a temporary file and opens it.
func ShowTemp(f Figure) error {
	tmp, err := os.CreateTemp("", "diceplot-*."+f.Format())
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create temp figure")
	}
	if _, err := f.WriteTo(tmp); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeInternal, err, "write temp figure")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "close temp figure")
	}
	return ShowFile(tmp.Name())
}

// Ext returns the lowercase extension of path without the dot.
func Ext(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	return ext[1:]
}
