package monitor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// DefaultInterval is the pause between checks when nothing is configured
const DefaultInterval = 600 * time.Second

const timestampFormat = "2006-01-02 15:04:05"

// Monitor runs the check command on a fixed interval (runs in the
// foreground process). The interval starts after the command exits,
// so consecutive invocations are spaced by interval plus the command's
// own run time.
type Monitor struct {
	interval  time.Duration
	command   []string
	stopChan  chan struct{}
	mu        sync.RWMutex
	isRunning bool
}

// NewMonitor creates a new monitor. The command is an argv slice; when
// empty the monitor's own executable is invoked with the "check"
// subcommand.
func NewMonitor(interval time.Duration, command []string) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if len(command) == 0 {
		command = SelfCheckCommand()
	}

	return &Monitor{
		interval: interval,
		command:  command,
		stopChan: make(chan struct{}),
	}
}

// SelfCheckCommand returns the argv that re-runs this executable's
// check subcommand
func SelfCheckCommand() []string {
	execPath, err := os.Executable()
	if err != nil {
		// Fallback to a reasonable default
		execPath = "linuxdo-monitor"
	}
	return []string{execPath, "check"}
}

// ResolveCheckCommand parses a configured command string into an argv
// slice, falling back to the self check when empty
func ResolveCheckCommand(configured string) []string {
	fields := strings.Fields(configured)
	if len(fields) == 0 {
		return SelfCheckCommand()
	}
	return fields
}

// Start starts the monitoring loop. It blocks until Stop is called.
func (m *Monitor) Start() {
	m.mu.Lock()
	if m.isRunning {
		m.mu.Unlock()
		return // Already running
	}
	m.isRunning = true
	m.mu.Unlock()

	fmt.Printf("Monitor: starting with interval %v\n", m.interval)

	for {
		select {
		case <-m.stopChan:
			m.finish()
			return
		default:
		}

		m.runCycle()

		select {
		case <-time.After(m.interval):
		case <-m.stopChan:
			m.finish()
			return
		}
	}
}

// Stop stops the monitoring loop
func (m *Monitor) Stop() {
	m.mu.RLock()
	if !m.isRunning {
		m.mu.RUnlock()
		return // Not running
	}
	m.mu.RUnlock()

	close(m.stopChan)
}

// IsRunning checks if the monitor is running
func (m *Monitor) IsRunning() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.isRunning
}

func (m *Monitor) finish() {
	fmt.Println("Monitor: stopping")
	m.mu.Lock()
	m.isRunning = false
	m.mu.Unlock()
}

// runCycle prints the cycle banner, runs the check command and
// announces the upcoming sleep
func (m *Monitor) runCycle() {
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("Monitor: %s\n", time.Now().Format(timestampFormat))
	fmt.Println("Monitor: starting RSS check")

	m.runCheck()

	fmt.Println("Monitor: RSS check complete")
	fmt.Printf("Monitor: sleeping %v until the next check\n", m.interval)
}

// runCheck invokes the check command and blocks until it exits.
// The exit status is deliberately not inspected: a failed check is
// retried on the next cycle anyway.
func (m *Monitor) runCheck() {
	cmd := exec.Command(m.command[0], m.command[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	_ = cmd.Run()
}
