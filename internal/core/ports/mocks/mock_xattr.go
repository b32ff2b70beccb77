package mocks

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"sync"
	"syscall"
	"time"

	"github.com/kamal-hamza/bcattr/internal/core/ports"
)

// MockXattrStore is an in-memory implementation of the XattrStore interface for testing
type MockXattrStore struct {
	mu      sync.Mutex
	attrs   map[string]map[string][]byte
	failOn  map[string]error
	removed []string
}

// NewMockXattrStore creates a new mock store
func NewMockXattrStore() *MockXattrStore {
	return &MockXattrStore{
		attrs:  make(map[string]map[string][]byte),
		failOn: make(map[string]error),
	}
}

// Set seeds an attribute on a path
func (m *MockXattrStore) Set(path, name string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.attrs[path] == nil {
		m.attrs[path] = make(map[string][]byte)
	}
	m.attrs[path][name] = value
}

// FailOn makes Remove return err for the given namespaced name
func (m *MockXattrStore) FailOn(name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failOn[name] = err
}

// Remove deletes an attribute, recording the call
func (m *MockXattrStore) Remove(path string, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.removed = append(m.removed, name)
	if err, ok := m.failOn[name]; ok {
		return err
	}
	delete(m.attrs[path], name)
	return nil
}

// List returns all attribute names on path, sorted
func (m *MockXattrStore) List(path string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.attrs[path]))
	for name := range m.attrs[path] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Get returns one attribute value
func (m *MockXattrStore) Get(path string, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.attrs[path][name]
	if !ok {
		return nil, syscall.ENODATA
	}
	return v, nil
}

// RemoveCalls returns the namespaced names passed to Remove, in call order
func (m *MockXattrStore) RemoveCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.removed))
	copy(out, m.removed)
	return out
}

// Has reports whether an attribute is still set
func (m *MockXattrStore) Has(path, name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.attrs[path][name]
	return ok
}

// --- MockOpener ---

// MockOpener opens fake handles for registered paths
type MockOpener struct {
	mu      sync.Mutex
	entries map[string]fs.FileMode
	statErr map[string]error
	opened  []*MockHandle
	nextFd  uintptr
}

func NewMockOpener() *MockOpener {
	return &MockOpener{
		entries: make(map[string]fs.FileMode),
		statErr: make(map[string]error),
		nextFd:  3,
	}
}

// AddFile registers a regular file
func (m *MockOpener) AddFile(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[path] = 0644
}

// AddDir registers a directory
func (m *MockOpener) AddDir(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[path] = fs.ModeDir | 0755
}

// FailStat makes Stat on handles for path return err
func (m *MockOpener) FailStat(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statErr[path] = err
}

func (m *MockOpener) Open(path string) (ports.Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mode, ok := m.entries[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}

	h := &MockHandle{
		fd:      m.nextFd,
		info:    mockFileInfo{name: path, mode: mode},
		statErr: m.statErr[path],
	}
	m.nextFd++
	m.opened = append(m.opened, h)
	return h, nil
}

// Handles returns every handle opened so far
func (m *MockOpener) Handles() []*MockHandle {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*MockHandle, len(m.opened))
	copy(out, m.opened)
	return out
}

// MockHandle is a fake open target
type MockHandle struct {
	fd      uintptr
	info    mockFileInfo
	statErr error
	closed  bool
}

func (h *MockHandle) Fd() uintptr { return h.fd }

func (h *MockHandle) Stat() (fs.FileInfo, error) {
	if h.statErr != nil {
		return nil, h.statErr
	}
	return h.info, nil
}

func (h *MockHandle) Close() error {
	if h.closed {
		return os.ErrClosed
	}
	h.closed = true
	return nil
}

// Closed reports whether Close was called
func (h *MockHandle) Closed() bool { return h.closed }

type mockFileInfo struct {
	name string
	mode fs.FileMode
}

func (i mockFileInfo) Name() string       { return i.name }
func (i mockFileInfo) Size() int64        { return 0 }
func (i mockFileInfo) Mode() fs.FileMode  { return i.mode }
func (i mockFileInfo) ModTime() time.Time { return time.Time{} }
func (i mockFileInfo) IsDir() bool        { return i.mode.IsDir() }
func (i mockFileInfo) Sys() any           { return nil }

// --- MockPropagator ---

type MockPropagator struct {
	mu        sync.Mutex
	calls     []uintptr
	failError error
}

func NewMockPropagator() *MockPropagator {
	return &MockPropagator{}
}

// SetFailure makes Propagate return err
func (m *MockPropagator) SetFailure(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failError = err
}

func (m *MockPropagator) Propagate(ctx context.Context, fd uintptr) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, fd)
	return m.failError
}

// Calls returns the fds passed to Propagate
func (m *MockPropagator) Calls() []uintptr {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]uintptr, len(m.calls))
	copy(out, m.calls)
	return out
}

// --- MockProbe ---

type MockProbe struct {
	Bcachefs bool
	Err      error
}

func (m *MockProbe) IsBcachefs(path string) (bool, error) {
	return m.Bcachefs, m.Err
}

// --- MockReporter ---

// MockReporter records every progress event as a line of text
type MockReporter struct {
	mu    sync.Mutex
	lines []string
}

func NewMockReporter() *MockReporter {
	return &MockReporter{}
}

func (m *MockReporter) Removing(name string, path string) {
	m.record(fmt.Sprintf("removing %s from %s", name, path))
}

func (m *MockReporter) Propagating(path string) {
	m.record("propagating " + path)
}

func (m *MockReporter) PropagationFailed(path string, err error) {
	m.record(fmt.Sprintf("propagation failed %s: %v", path, err))
}

func (m *MockReporter) record(line string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append(m.lines, line)
}

// Lines returns the recorded events
func (m *MockReporter) Lines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.lines))
	copy(out, m.lines)
	return out
}
