package doctor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/toolkitlog/internal/config"
	"github.com/thoreinstein/toolkitlog/internal/errors"
	"github.com/thoreinstein/toolkitlog/internal/logging"
	"github.com/thoreinstein/toolkitlog/pkg/channel"
	"github.com/thoreinstein/toolkitlog/pkg/logger"
)

// probeTimeout bounds the write probe of LogFileCheck.
const probeTimeout = 2 * time.Second

// ConfigCheck validates the config file syntax and values.
type ConfigCheck struct {
	path string
}

var _ Check = (*ConfigCheck)(nil)

// NewConfigCheck creates a check of the config file at path.
func NewConfigCheck(path string) *ConfigCheck {
	return &ConfigCheck{path: path}
}

// Name returns the unique identifier for this check.
func (c *ConfigCheck) Name() string {
	return "config-file"
}

// Category returns the grouping for this check.
func (c *ConfigCheck) Category() string {
	return "config"
}

// Run reads and validates the config file.
func (c *ConfigCheck) Run(_ context.Context) *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"path": c.path},
	}

	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		result.Status = SeverityInfo
		result.Message = "no config file, defaults apply"
		result.FixHint = "toolkitlog config init"
		return result
	}
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("cannot read config file: %v", err)
		return result
	}

	// Unset keys keep their defaults, as they do when viper loads the file.
	cfg := config.Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("invalid YAML: %v", err)
		result.FixHint = "toolkitlog config init --force"
		return result
	}

	if errs := config.Validate(cfg); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		result.Status = SeverityError
		result.Message = strings.Join(msgs, "; ")
		result.Details["errors"] = msgs
		result.FixHint = "toolkitlog config set <key> <value>"
		return result
	}

	result.Status = SeverityPass
	result.Message = "config file is valid"
	return result
}

// LogFileCheck verifies that the file sink can write to the log file and
// that the file is private to the user.
type LogFileCheck struct {
	PermissionFixer

	path string
}

var (
	_ Check = (*LogFileCheck)(nil)
	_ Fixer = (*LogFileCheck)(nil)
)

// NewLogFileCheck creates a check of the log file at path. An empty path
// means the file sink is disabled.
func NewLogFileCheck(path string) *LogFileCheck {
	return &LogFileCheck{path: path}
}

// Name returns the unique identifier for this check.
func (c *LogFileCheck) Name() string {
	return "log-file"
}

// Category returns the grouping for this check.
func (c *LogFileCheck) Category() string {
	return "sink"
}

// Run probes the log directory through a FileSink and checks permissions.
func (c *LogFileCheck) Run(ctx context.Context) *CheckResult {
	c.setIssues(nil)

	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"path": c.path},
	}

	if c.path == "" {
		result.Status = SeverityInfo
		result.Message = "file sink disabled (log_file is empty)"
		return result
	}

	dir := filepath.Dir(c.path)
	dirInfo, err := os.Stat(dir)
	if os.IsNotExist(err) {
		result.Status = SeverityInfo
		result.Message = "log directory does not exist yet; it is created on first write"
		return result
	}
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("cannot access log directory: %v", err)
		return result
	}
	if !dirInfo.IsDir() {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%s is not a directory", dir)
		return result
	}

	if err := probe(ctx, dir); err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("log directory is not writable: %v", err)
		result.FixHint = "check ownership of " + dir
		return result
	}

	var issues []pathIssue
	issues = append(issues, checkDirectoryPermissions(dir, dirInfo.Mode())...)

	fileInfo, err := os.Stat(c.path)
	switch {
	case err == nil && fileInfo.IsDir():
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%s is a directory", c.path)
		return result
	case err == nil:
		result.Details["size"] = fileInfo.Size()
		issues = append(issues, checkFilePermissions(c.path, fileInfo.Mode())...)
	case !os.IsNotExist(err):
		result.Status = SeverityError
		result.Message = fmt.Sprintf("cannot access log file: %v", err)
		return result
	}

	c.setIssues(issues)
	return buildPermissionResult(result, issues)
}

// probeMessage is the line the write probe logs.
const probeMessage = "toolkitlog doctor probe"

// probe logs one line through a Logger with a FileSink in dir and an
// in-memory output channel, waits for both, and removes the file again.
func probe(ctx context.Context, dir string) error {
	path := filepath.Join(dir, fmt.Sprintf(".toolkitlog-doctor-%d.log", os.Getpid()))
	defer os.Remove(path)

	var failure error
	l := logger.New(logger.LevelDebug, logger.WithErrorHandler(func(err *logger.SinkWriteError) {
		failure = err.Err
	}))
	out := channel.New("doctor")
	if _, err := l.AttachFile(path); err != nil {
		return err
	}
	if _, err := l.AttachChannel(out); err != nil {
		return err
	}
	_ = l.Info(probeMessage)

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	waitErr := out.WaitForText(ctx, probeMessage)
	if waitErr == nil {
		waitErr = l.Flush(ctx)
	}

	if err := l.Dispose(); err != nil && failure == nil {
		failure = err
	}
	if failure != nil {
		return failure
	}
	if waitErr != nil {
		return errors.Wrap(waitErr, "waiting for probe delivery")
	}
	return nil
}

// ConsoleCheck reports how the console sink renders output.
type ConsoleCheck struct {
	enabled bool
	mode    string
	out     io.Writer
}

var _ Check = (*ConsoleCheck)(nil)

// NewConsoleCheck creates a check of the console sink writing to out.
func NewConsoleCheck(enabled bool, mode string, out io.Writer) *ConsoleCheck {
	return &ConsoleCheck{enabled: enabled, mode: mode, out: out}
}

// Name returns the unique identifier for this check.
func (c *ConsoleCheck) Name() string {
	return "console"
}

// Category returns the grouping for this check.
func (c *ConsoleCheck) Category() string {
	return "sink"
}

// Run describes the console color decision.
func (c *ConsoleCheck) Run(_ context.Context) *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityInfo,
	}

	if !c.enabled {
		result.Message = "console sink disabled"
		return result
	}

	tty := logging.IsTTY(c.out)
	var colored bool
	switch c.mode {
	case config.ColorAlways:
		colored = true
	case config.ColorNever:
		colored = false
	default:
		colored = logging.SupportsColor(c.out)
	}

	result.Details = map[string]any{"terminal": tty, "color_mode": c.mode, "color": colored}
	onOff := "off"
	if colored {
		onOff = "on"
	}
	result.Message = fmt.Sprintf("console sink enabled, color %s (mode %s)", onOff, c.mode)

	if c.mode == config.ColorAlways && !tty {
		result.Status = SeverityWarning
		result.Message += "; output is not a terminal, escape codes will appear in redirected output"
		result.FixHint = "toolkitlog config set color auto"
	}
	return result
}
