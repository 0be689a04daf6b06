// Package runner executes the external OpenFOAM utilities of a case.
//
// Every step writes its combined stdout and stderr to a log file inside the
// case directory, mirroring the log.* convention of the OpenFOAM tutorials.
package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Step is a single external command run inside a case directory
type Step struct {
	Name    string // Stage label used in logs
	Binary  string
	Args    []string
	LogFile string // Relative to the case directory
}

func (s Step) String() string {
	if len(s.Args) == 0 {
		return s.Binary
	}
	return s.Binary + " " + strings.Join(s.Args, " ")
}

type Executor interface {
	Run(ctx context.Context, dir string, step Step) error
}

// StepError reports a step that failed to start or exited unsuccessfully
type StepError struct {
	Step     Step
	ExitCode int // -1 when the process never produced an exit status
	LogPath  string
	Err      error
}

func (e *StepError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("%s exited with status %d, see %s", e.Step, e.ExitCode, e.LogPath)
	}
	return fmt.Sprintf("%s failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// ProcessExecutor runs steps as child processes
type ProcessExecutor struct {
	Env      []string // KEY=VALUE pairs appended to the inherited environment
	Logger   *zap.Logger
	TailLogs int // Lines of the step log reported on failure
}

func NewProcessExecutor(logger *zap.Logger) *ProcessExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProcessExecutor{Logger: logger, TailLogs: 10}
}

func (pe *ProcessExecutor) Run(ctx context.Context, dir string, step Step) (err error) {
	var (
		logPath = filepath.Join(dir, step.LogFile)
		logFile *os.File
		bin     string
	)
	if bin, err = exec.LookPath(step.Binary); err != nil {
		return &StepError{Step: step, ExitCode: -1, LogPath: logPath,
			Err: fmt.Errorf("%s not found in PATH, is the OpenFOAM environment sourced? %w", step.Binary, err)}
	}
	if logFile, err = os.Create(logPath); err != nil {
		return &StepError{Step: step, ExitCode: -1, LogPath: logPath, Err: err}
	}
	defer logFile.Close()

	cmd := exec.CommandContext(ctx, bin, step.Args...)
	cmd.Dir = dir
	cmd.Stdout, cmd.Stderr = logFile, logFile
	if len(pe.Env) != 0 {
		cmd.Env = append(os.Environ(), pe.Env...)
	}

	log := pe.Logger.With(zap.String("step", step.Name), zap.String("dir", dir))
	log.Info("running", zap.String("cmd", step.String()), zap.String("log", logPath))
	start := time.Now()
	err = cmd.Run()
	elapsed := time.Since(start)
	if err == nil {
		log.Info("completed", zap.String("cmd", step.String()), zap.Duration("elapsed", elapsed))
		return nil
	}

	se := &StepError{Step: step, ExitCode: -1, LogPath: logPath, Err: err}
	var exitErr *exec.ExitError
	if ctx.Err() != nil {
		se.Err = ctx.Err()
	} else if errors.As(err, &exitErr) {
		se.ExitCode = exitErr.ExitCode()
	}
	log.Error("failed", zap.String("cmd", step.String()), zap.Duration("elapsed", elapsed),
		zap.Int("exitCode", se.ExitCode), zap.Error(se.Err),
		zap.Strings("logTail", LogTail(logPath, pe.TailLogs)))
	return se
}

// LogTail returns the last n lines of a log file, nil if it can not be read
func LogTail(path string, n int) (lines []string) {
	if n <= 0 {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if len(lines) > n {
			lines = lines[1:]
		}
	}
	return
}

// DryRunExecutor records and logs steps without running anything
type DryRunExecutor struct {
	Logger *zap.Logger

	mu    sync.Mutex
	steps []Step
	dirs  []string
}

func NewDryRunExecutor(logger *zap.Logger) *DryRunExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DryRunExecutor{Logger: logger}
}

func (de *DryRunExecutor) Run(ctx context.Context, dir string, step Step) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	de.mu.Lock()
	de.steps = append(de.steps, step)
	de.dirs = append(de.dirs, dir)
	de.mu.Unlock()
	de.Logger.Info("dry run", zap.String("step", step.Name), zap.String("dir", dir),
		zap.String("cmd", step.String()), zap.String("log", step.LogFile))
	return nil
}

// Steps returns the recorded steps in execution order
func (de *DryRunExecutor) Steps() []Step {
	de.mu.Lock()
	defer de.mu.Unlock()
	return append([]Step(nil), de.steps...)
}

// Commands renders the recorded steps as command lines
func (de *DryRunExecutor) Commands() (cmds []string) {
	for _, s := range de.Steps() {
		cmds = append(cmds, s.String())
	}
	return
}
