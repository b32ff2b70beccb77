package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"strings"
	"syscall"
	"testing"

	"github.com/kamal-hamza/bcattr/internal/core/domain"
	"github.com/kamal-hamza/bcattr/internal/core/ports/mocks"
)

type testEnv struct {
	opener     *mocks.MockOpener
	store      *mocks.MockXattrStore
	propagator *mocks.MockPropagator
	reporter   *mocks.MockReporter
	svc        *AttributeService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		opener:     mocks.NewMockOpener(),
		store:      mocks.NewMockXattrStore(),
		propagator: mocks.NewMockPropagator(),
		reporter:   mocks.NewMockReporter(),
	}
	env.svc = NewAttributeService(env.opener, env.store, env.propagator, env.reporter, &mocks.MockProbe{Bcachefs: true}, nil)
	return env
}

func mustRemoveOp(t *testing.T, path string, attrs ...domain.AttributeName) domain.Operation {
	t.Helper()
	op, err := domain.NewRemoveOperation(attrs, path)
	if err != nil {
		t.Fatalf("failed to build remove operation: %v", err)
	}
	return op
}

func TestAttributeService_Remove_FileInOrder(t *testing.T) {
	env := newTestEnv()
	env.opener.AddFile("/tmp/file.txt")

	op := mustRemoveOp(t, "/tmp/file.txt", "foo", "bar", "foo")
	result, err := env.svc.Execute(context.Background(), op)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{"bcachefs.foo", "bcachefs.bar", "bcachefs.foo"}
	if got := env.store.RemoveCalls(); !reflect.DeepEqual(got, expected) {
		t.Errorf("remove calls = %v, want %v", got, expected)
	}
	if !reflect.DeepEqual(result.Removed, expected) {
		t.Errorf("result.Removed = %v, want %v", result.Removed, expected)
	}

	if calls := env.propagator.Calls(); len(calls) != 0 {
		t.Errorf("propagation must not run for regular files, got %d calls", len(calls))
	}
	if result.Propagated {
		t.Error("result should not be marked as propagated")
	}
	if result.Target.Kind != domain.KindFile {
		t.Errorf("expected file target, got %s", result.Target.Kind)
	}
}

func TestAttributeService_Remove_DirectoryPropagatesOnce(t *testing.T) {
	env := newTestEnv()
	env.opener.AddDir("/tmp/dir")
	env.store.Set("/tmp/dir", "bcachefs.foo", []byte("lz4"))
	env.store.Set("/tmp/dir", "bcachefs.bar", []byte("1"))

	op := mustRemoveOp(t, "/tmp/dir", "foo", "bar")
	result, err := env.svc.Execute(context.Background(), op)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Two progress lines, then propagation
	expectedLines := []string{
		"removing bcachefs.foo from /tmp/dir",
		"removing bcachefs.bar from /tmp/dir",
		"propagating /tmp/dir",
	}
	if got := env.reporter.Lines(); !reflect.DeepEqual(got, expectedLines) {
		t.Errorf("reporter lines = %v, want %v", got, expectedLines)
	}

	handles := env.opener.Handles()
	if len(handles) != 1 {
		t.Fatalf("expected exactly one open, got %d", len(handles))
	}

	calls := env.propagator.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected exactly one propagation call, got %d", len(calls))
	}
	if calls[0] != handles[0].Fd() {
		t.Errorf("propagation fd = %d, want the target's fd %d", calls[0], handles[0].Fd())
	}

	if !result.Propagated || result.PropagationErr != nil {
		t.Errorf("expected successful propagation, got propagated=%v err=%v", result.Propagated, result.PropagationErr)
	}
	if env.store.Has("/tmp/dir", "bcachefs.foo") || env.store.Has("/tmp/dir", "bcachefs.bar") {
		t.Error("attributes should have been removed")
	}
	if !handles[0].Closed() {
		t.Error("target handle was not closed")
	}
}

func TestAttributeService_Remove_StopsAtFirstFailure(t *testing.T) {
	for k := 1; k <= 3; k++ {
		t.Run(fmt.Sprintf("fail_at_%d", k), func(t *testing.T) {
			env := newTestEnv()
			env.opener.AddDir("/tmp/dir")

			attrs := []domain.AttributeName{"a", "b", "c"}
			failing := attrs[k-1].Namespaced()
			env.store.FailOn(failing, syscall.ENODATA)

			_, err := env.svc.Execute(context.Background(), mustRemoveOp(t, "/tmp/dir", attrs...))

			var rerr *domain.AttributeRemovalError
			if !errors.As(err, &rerr) {
				t.Fatalf("expected AttributeRemovalError, got %v", err)
			}
			if rerr.Name != failing {
				t.Errorf("error references %q, want %q", rerr.Name, failing)
			}
			if rerr.Code() != int(syscall.ENODATA) {
				t.Errorf("error code = %d, want %d", rerr.Code(), int(syscall.ENODATA))
			}

			if got := len(env.store.RemoveCalls()); got != k {
				t.Errorf("expected %d removal attempts, got %d", k, got)
			}
			if calls := env.propagator.Calls(); len(calls) != 0 {
				t.Errorf("propagation must not run after a failure, got %d calls", len(calls))
			}
			if !env.opener.Handles()[0].Closed() {
				t.Error("target handle was not closed on failure")
			}
		})
	}
}

func TestAttributeService_Remove_FileFailureScenario(t *testing.T) {
	env := newTestEnv()
	env.opener.AddFile("/tmp/file.txt")
	env.store.FailOn("bcachefs.foo", syscall.EPERM)

	_, err := env.svc.Execute(context.Background(), mustRemoveOp(t, "/tmp/file.txt", "foo", "bar"))
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	lines := env.reporter.Lines()
	if len(lines) != 1 || !strings.Contains(lines[0], "bcachefs.foo") {
		t.Errorf("expected one progress line for foo, got %v", lines)
	}
	if !errors.Is(err, syscall.EPERM) {
		t.Errorf("expected EPERM in error chain, got %v", err)
	}
	if !strings.Contains(err.Error(), fmt.Sprint(int(syscall.EPERM))) {
		t.Errorf("error message %q does not carry the OS code", err.Error())
	}
}

func TestAttributeService_Remove_MissingTarget(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Execute(context.Background(), mustRemoveOp(t, "/tmp/missing", "foo"))

	var ioErr *domain.IoError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected IoError, got %v", err)
	}
	if ioErr.Op != "open" {
		t.Errorf("expected open failure, got %q", ioErr.Op)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected ErrNotExist in chain, got %v", err)
	}
	if calls := env.store.RemoveCalls(); len(calls) != 0 {
		t.Errorf("expected zero removal calls, got %v", calls)
	}
	if lines := env.reporter.Lines(); len(lines) != 0 {
		t.Errorf("expected no progress output, got %v", lines)
	}
}

func TestAttributeService_Remove_StatFailure(t *testing.T) {
	env := newTestEnv()
	env.opener.AddFile("/tmp/file.txt")
	env.opener.FailStat("/tmp/file.txt", syscall.EIO)

	_, err := env.svc.Execute(context.Background(), mustRemoveOp(t, "/tmp/file.txt", "foo"))

	var ioErr *domain.IoError
	if !errors.As(err, &ioErr) || ioErr.Op != "stat" {
		t.Fatalf("expected stat IoError, got %v", err)
	}
	if calls := env.store.RemoveCalls(); len(calls) != 0 {
		t.Errorf("expected zero removal calls, got %v", calls)
	}
	if !env.opener.Handles()[0].Closed() {
		t.Error("target handle was not closed")
	}
}

func TestAttributeService_Remove_PropagationFailureIsBestEffort(t *testing.T) {
	env := newTestEnv()
	env.opener.AddDir("/tmp/dir")
	walkErr := errors.New("reinherit failed")
	env.propagator.SetFailure(walkErr)

	result, err := env.svc.Execute(context.Background(), mustRemoveOp(t, "/tmp/dir", "foo"))
	if err != nil {
		t.Fatalf("propagation failure should not fail the operation: %v", err)
	}
	if !errors.Is(result.PropagationErr, walkErr) {
		t.Errorf("expected PropagationErr to be recorded, got %v", result.PropagationErr)
	}

	lines := env.reporter.Lines()
	if len(lines) == 0 || !strings.HasPrefix(lines[len(lines)-1], "propagation failed") {
		t.Errorf("expected propagation failure to be reported, got %v", lines)
	}
}

func TestAttributeService_Add_NoSideEffects(t *testing.T) {
	env := newTestEnv()
	env.opener.AddDir("/tmp/dir")

	for i := 0; i < 3; i++ {
		result, err := env.svc.Execute(context.Background(), domain.NewAddOperation())
		if err != nil {
			t.Fatalf("add should always succeed, got %v", err)
		}
		if result.Outcome != domain.OutcomeUnsupported {
			t.Errorf("expected OutcomeUnsupported, got %v", result.Outcome)
		}
	}

	if len(env.opener.Handles()) != 0 {
		t.Error("add must not open anything")
	}
	if len(env.store.RemoveCalls()) != 0 {
		t.Error("add must not touch attributes")
	}
	if len(env.propagator.Calls()) != 0 {
		t.Error("add must not propagate")
	}
	if len(env.reporter.Lines()) != 0 {
		t.Error("add must not report progress")
	}
}

func TestAttributeService_Remove_NotBcachefsStillRuns(t *testing.T) {
	env := newTestEnv()
	env.svc = NewAttributeService(env.opener, env.store, env.propagator, env.reporter, &mocks.MockProbe{Bcachefs: false}, nil)
	env.opener.AddFile("/tmp/file.txt")

	if _, err := env.svc.Execute(context.Background(), mustRemoveOp(t, "/tmp/file.txt", "foo")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(env.store.RemoveCalls()) != 1 {
		t.Error("removal should proceed on non-bcachefs targets")
	}
}

func TestAttributeService_ZeroOperationRejected(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Execute(context.Background(), domain.Operation{})
	var usageErr *domain.UsageError
	if !errors.As(err, &usageErr) {
		t.Errorf("expected UsageError for a zero operation, got %v", err)
	}
}
