// Package viewer launches the platform PDF viewer on a given page.
package viewer

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"sync"
)

// process is one tracked viewer. done is closed by the reaper goroutine
// after Wait returns; everyone else watches the channel instead of
// touching cmd state that Wait writes to.
type process struct {
	cmd  *exec.Cmd
	done chan struct{}
}

// Launcher starts external viewer processes and keeps track of them so
// they can be torn down when the application exits.
type Launcher struct {
	// Command overrides the platform viewer executable. On Windows this
	// is where a bundled SumatraPDF lives; elsewhere it is optional.
	Command string

	mu    sync.Mutex
	procs []*process
}

// Open shows path in a viewer, jumping to the 1-based page where the
// platform viewer supports it (macOS Preview does not take a page
// argument).
func (l *Launcher) Open(path string, page int) error {
	cmd, err := l.command(path, page)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch viewer: %w", err)
	}

	p := &process{cmd: cmd, done: make(chan struct{})}
	l.mu.Lock()
	l.procs = append(l.procs, p)
	l.mu.Unlock()

	go func() {
		cmd.Wait()
		close(p.done)
	}()
	return nil
}

func (l *Launcher) command(path string, page int) (*exec.Cmd, error) {
	return l.commandFor(runtime.GOOS, path, page)
}

func (l *Launcher) commandFor(goos, path string, page int) (*exec.Cmd, error) {
	switch goos {
	case "linux":
		if l.Command != "" {
			return exec.Command(l.Command, path, strconv.Itoa(page)), nil
		}
		if mupdf, err := exec.LookPath("mupdf"); err == nil {
			return exec.Command(mupdf, path, strconv.Itoa(page)), nil
		}
		return exec.Command("xdg-open", path), nil
	case "darwin":
		return exec.Command("open", path), nil
	case "windows":
		if l.Command == "" {
			return nil, fmt.Errorf("no viewer configured; set viewer_path to a SumatraPDF executable")
		}
		return exec.Command(l.Command, path, "-page", strconv.Itoa(page)), nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", goos)
	}
}

// Wait blocks until every viewer opened so far has exited or ctx is
// cancelled; cancellation closes the viewers still running.
func (l *Launcher) Wait(ctx context.Context) {
	l.mu.Lock()
	procs := append([]*process(nil), l.procs...)
	l.mu.Unlock()

	for _, p := range procs {
		select {
		case <-p.done:
		case <-ctx.Done():
			l.CloseAll()
			return
		}
	}
}

// CloseAll terminates any viewer processes still running and waits for
// them to be reaped.
func (l *Launcher) CloseAll() {
	l.mu.Lock()
	procs := l.procs
	l.procs = nil
	l.mu.Unlock()

	for _, p := range procs {
		select {
		case <-p.done:
		default:
			p.cmd.Process.Kill()
			<-p.done
		}
	}
}
