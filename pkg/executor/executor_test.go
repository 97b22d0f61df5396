package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoeyai/zfinder/internal/logger"
	"github.com/zoeyai/zfinder/pkg/auto"
	"github.com/zoeyai/zfinder/pkg/auto/input"
	"github.com/zoeyai/zfinder/pkg/auto/window"
	"github.com/zoeyai/zfinder/pkg/config"
	"github.com/zoeyai/zfinder/pkg/finder"
	"github.com/zoeyai/zfinder/pkg/vision/cv"
)

type stubDesktop struct {
	mu     sync.Mutex
	screen image.Image
	clicks []auto.Point
}

func (d *stubDesktop) ListWindows() ([]window.Info, error) {
	return []window.Info{
		{PID: 7, Title: "Game", Bounds: auto.Region{X: 10, Y: 20, Width: 120, Height: 90}},
	}, nil
}

func (d *stubDesktop) Capture(window.Info) (image.Image, error) {
	return d.screen, nil
}

func (d *stubDesktop) Activate(int) (bool, error) {
	return true, nil
}

func (d *stubDesktop) MoveClick(x, y int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clicks = append(d.clicks, auto.Point{X: x, Y: y})
	return nil
}

func (d *stubDesktop) KeysDown(keys ...string) (bool, error) {
	return input.KeysDown(keys...)
}

func (d *stubDesktop) ScaleFactor() float64 {
	return 1.0
}

func newStubDesktop() *stubDesktop {
	rng := rand.New(rand.NewSource(3))
	img := image.NewGray(image.Rect(0, 0, 120, 90))
	for i := range img.Pix {
		img.Pix[i] = uint8(rng.Intn(256))
	}
	return &stubDesktop{screen: img}
}

func newTestExecutor(t *testing.T, d *stubDesktop) (*Executor, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l := logger.New()
	l.SetConsole(&syncWriter{w: &buf})
	l.SetLevel(logger.DEBUG)

	cfg := config.DefaultConfig()
	cfg.Workers = 2
	f := finder.New(d, cfg, finder.WithLogger(l))
	return NewExecutor(f, WithLogger(l)), &buf
}

type syncWriter struct {
	mu sync.Mutex
	w  *bytes.Buffer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func TestConsoleRoutesToLogger(t *testing.T) {
	e, buf := newTestExecutor(t, newStubDesktop())

	err := e.Run(context.Background(), "console.js", `
		console.log("hello", 1, true);
		console.warn("careful");
		console.error("broken");
		console.debug("details");
	`)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "| INFO  | hello 1 true")
	assert.Contains(t, out, "| WARN  | careful")
	assert.Contains(t, out, "| ERROR | broken")
	assert.Contains(t, out, "| DEBUG | details")
}

func TestExitStopsScript(t *testing.T) {
	e, buf := newTestExecutor(t, newStubDesktop())

	err := e.Run(context.Background(), "exit.js", `
		console.log("before");
		exit(3);
		console.log("after");
	`)
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "应返回 ExitError, 实际 %v", err)
	assert.Equal(t, 3, exitErr.Code)
	assert.Contains(t, buf.String(), "before")
	assert.NotContains(t, buf.String(), "after")
}

func TestExitAsLastStatement(t *testing.T) {
	e, _ := newTestExecutor(t, newStubDesktop())

	err := e.Run(context.Background(), "last.js", `exit(2)`)
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 2, exitErr.Code)

	err = e.Run(context.Background(), "zero.js", `exit()`)
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 0, exitErr.Code)
}

func TestScriptError(t *testing.T) {
	e, _ := newTestExecutor(t, newStubDesktop())

	err := e.Run(context.Background(), "throw.js", `throw new Error("bad")`)
	var scriptErr *ScriptError
	require.True(t, errors.As(err, &scriptErr))
	assert.Equal(t, "throw.js", scriptErr.Name)
	assert.Contains(t, err.Error(), "bad")

	err = e.Run(context.Background(), "syntax.js", `function (`)
	assert.True(t, errors.As(err, &scriptErr))
}

func TestTimeoutInterruptsLoop(t *testing.T) {
	e, _ := newTestExecutor(t, newStubDesktop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := e.Run(ctx, "loop.js", `for (;;) {}`)
	assert.ErrorIs(t, err, ErrCanceled)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSleepIsCanceled(t *testing.T) {
	e, _ := newTestExecutor(t, newStubDesktop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := e.Run(ctx, "sleep.js", `sleep(10000); for (;;) {}`)
	assert.ErrorIs(t, err, ErrCanceled)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestHostFunctions(t *testing.T) {
	d := newStubDesktop()
	tpl := filepath.Join(t.TempDir(), "button.png")
	require.NoError(t, cv.WriteImage(tpl, cv.CropImage(d.screen, image.Rect(30, 40, 46, 52))))

	e, _ := newTestExecutor(t, d)
	script := fmt.Sprintf(`
		var TPL = %s;
		if (findTemplate(TPL) !== 0) exit(10);
		if (!findWindow("Game")) exit(1);
		if (findWindow("Other")) exit(11);
		if (!activeWindow()) exit(12);
		if (findTemplate(TPL) < 0.99) exit(2);
		if (findX() !== 30 || findY() !== 40) exit(3);
		if (!click()) exit(4);
		if (!click(5, 6)) exit(13);
		if (windowWidth() !== 120 || windowHeight() !== 90) exit(5);
		if (findTemplate(TPL, 20, 30, 40, 30) < 0.99) exit(6);
		if (findTemplate(TPL, 0, 0, 5, 5) !== 0) exit(7);
		if (findTemplate(TPL, -1, 0, 40, 30) < 0.99) exit(14);
		if (findTemplate() !== 0) exit(8);
		if (isKeyDown("a")) exit(9);
		if (!isKeyDown()) exit(15);
		sleep(1);
	`, strconv.Quote(tpl))

	err := e.Run(context.Background(), "host.js", script)
	require.NoError(t, err)

	// 中心 (38,46) + 窗口 (10,20)；显式坐标 (5,6) + 窗口
	assert.Equal(t, []auto.Point{{X: 48, Y: 66}, {X: 15, Y: 26}}, d.clicks)
}

func TestRunFile(t *testing.T) {
	e, buf := newTestExecutor(t, newStubDesktop())

	path := filepath.Join(t.TempDir(), "main.js")
	require.NoError(t, os.WriteFile(path, []byte(`console.log("from file")`), 0644))
	require.NoError(t, e.RunFile(context.Background(), path))
	assert.Contains(t, buf.String(), "from file")

	err := e.RunFile(context.Background(), filepath.Join(t.TempDir(), "missing.js"))
	assert.Error(t, err)
}

func TestCancelTask(t *testing.T) {
	e, _ := newTestExecutor(t, newStubDesktop())

	status, tasks := e.GetStatus()
	assert.Equal(t, "IDLE", status)
	assert.Empty(t, tasks)

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Run(context.Background(), "forever.js", `for (;;) {}`)
	}()

	var taskID string
	require.Eventually(t, func() bool {
		status, tasks := e.GetStatus()
		if status != "BUSY" || len(tasks) != 1 {
			return false
		}
		taskID = tasks[0].TaskID
		return true
	}, 2*time.Second, 5*time.Millisecond)

	assert.True(t, strings.HasPrefix(taskID, "script-"))
	assert.True(t, e.CancelTask(taskID))
	assert.False(t, e.CancelTask(taskID), "重复取消应返回 false")

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrCanceled)
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("取消后脚本未结束")
	}

	status, _ = e.GetStatus()
	assert.Equal(t, "IDLE", status)
}
