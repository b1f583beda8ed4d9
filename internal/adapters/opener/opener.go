package opener

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"studytrack/internal/ports"
)

// Opener implements ports.DocumentOpener with the platform opener or $STUDYTRACK_VIEWER
type Opener struct {
	viewer string
	goos   string
}

var _ ports.DocumentOpener = (*Opener)(nil)

// NewOpener creates a new opener
func NewOpener() *Opener {
	return &Opener{viewer: os.Getenv("STUDYTRACK_VIEWER"), goos: runtime.GOOS}
}

// Open starts the external viewer on ref without waiting for it to exit
func (o *Opener) Open(ref string) error {
	cmd, err := o.Command(ref)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start viewer: %w", err)
	}
	go cmd.Wait()
	return nil
}

// Command returns the exec.Cmd that displays ref
func (o *Opener) Command(ref string) (*exec.Cmd, error) {
	if strings.TrimSpace(ref) == "" {
		return nil, fmt.Errorf("nothing to open")
	}

	if o.viewer != "" {
		fields := strings.Fields(o.viewer)
		return exec.Command(fields[0], append(fields[1:], ref)...), nil
	}

	switch o.goos {
	case "darwin":
		return exec.Command("open", ref), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", ref), nil
	case "windows":
		return exec.Command("cmd", "/c", "start", "", ref), nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", o.goos)
	}
}
