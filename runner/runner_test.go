package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestStepString(t *testing.T) {
	assert.Equal(t, "blockMesh", Step{Binary: "blockMesh"}.String())
	s := Step{Binary: "mpirun", Args: []string{"-np", "4", "snappyHexMesh", "-parallel"}}
	assert.Equal(t, "mpirun -np 4 snappyHexMesh -parallel", s.String())
}

func TestProcessExecutor(t *testing.T) {
	var (
		dir = t.TempDir()
		pe  = NewProcessExecutor(zaptest.NewLogger(t))
		ctx = context.Background()
	)
	{ // Output of both streams lands in the log
		step := Step{Name: "echo", Binary: "sh", Args: []string{"-c", "echo out; echo err 1>&2; pwd"}, LogFile: "log_echo.txt"}
		require.NoError(t, pe.Run(ctx, dir, step))
		data, err := os.ReadFile(filepath.Join(dir, "log_echo.txt"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "out\n")
		assert.Contains(t, string(data), "err\n")
		assert.Contains(t, string(data), filepath.Base(dir))
	}
	{ // Environment additions are visible to the child
		pe.Env = []string{"GOMESH_TEST_VALUE=42"}
		step := Step{Name: "env", Binary: "sh", Args: []string{"-c", "echo $GOMESH_TEST_VALUE"}, LogFile: "log_env.txt"}
		require.NoError(t, pe.Run(ctx, dir, step))
		assert.Equal(t, []string{"42"}, LogTail(filepath.Join(dir, "log_env.txt"), 5))
		pe.Env = nil
	}
	{ // Non-zero exit
		step := Step{Name: "fail", Binary: "sh", Args: []string{"-c", "echo boom; exit 3"}, LogFile: "log_fail.txt"}
		err := pe.Run(ctx, dir, step)
		var se *StepError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, 3, se.ExitCode)
		assert.Equal(t, filepath.Join(dir, "log_fail.txt"), se.LogPath)
		assert.Contains(t, err.Error(), "status 3")
	}
	{ // Missing binary
		step := Step{Name: "missing", Binary: "gomesh-no-such-binary", LogFile: "log_missing.txt"}
		err := pe.Run(ctx, dir, step)
		var se *StepError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, -1, se.ExitCode)
		assert.Contains(t, err.Error(), "not found in PATH")
	}
}

func TestProcessExecutorCancel(t *testing.T) {
	dir := t.TempDir()
	pe := NewProcessExecutor(nil)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	step := Step{Name: "sleep", Binary: "sleep", Args: []string{"10"}, LogFile: "log_sleep.txt"}
	start := time.Now()
	err := pe.Run(ctx, dir, step)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLogTail(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "log.txt")
	require.NoError(t, os.WriteFile(fn, []byte("1\n2\n3\n4\n5\n"), 0644))
	assert.Equal(t, []string{"4", "5"}, LogTail(fn, 2))
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, LogTail(fn, 50))
	assert.Nil(t, LogTail(fn, 0))
	assert.Nil(t, LogTail(fn+".missing", 3))
}

func TestDryRunExecutor(t *testing.T) {
	de := NewDryRunExecutor(zaptest.NewLogger(t))
	ctx := context.Background()
	require.NoError(t, de.Run(ctx, "case", Step{Binary: "blockMesh"}))
	require.NoError(t, de.Run(ctx, "case", Step{Binary: "snappyHexMesh", Args: []string{"-overwrite"}}))
	assert.Equal(t, []string{"blockMesh", "snappyHexMesh -overwrite"}, de.Commands())

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, de.Run(cctx, "case", Step{Binary: "x"}), context.Canceled)
	assert.Len(t, de.Steps(), 2)
}
