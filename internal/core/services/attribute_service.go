package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/kamal-hamza/bcattr/internal/core/domain"
	"github.com/kamal-hamza/bcattr/internal/core/ports"
)

// AttributeService executes parsed operations against a target
type AttributeService struct {
	opener     ports.TargetOpener
	store      ports.XattrStore
	propagator ports.Propagator
	reporter   ports.Reporter
	probe      ports.FilesystemProbe
	log        logrus.FieldLogger
}

// NewAttributeService creates a new attribute service.
// probe may be nil, in which case the bcachefs mount check is skipped.
func NewAttributeService(
	opener ports.TargetOpener,
	store ports.XattrStore,
	propagator ports.Propagator,
	reporter ports.Reporter,
	probe ports.FilesystemProbe,
	log logrus.FieldLogger,
) *AttributeService {
	if log == nil {
		discard := logrus.New()
		discard.SetLevel(logrus.PanicLevel)
		log = discard
	}
	return &AttributeService{
		opener:     opener,
		store:      store,
		propagator: propagator,
		reporter:   reporter,
		probe:      probe,
		log:        log,
	}
}

// Execute runs op and returns the result or the first fatal error
func (s *AttributeService) Execute(ctx context.Context, op domain.Operation) (*domain.Result, error) {
	switch op.Kind() {
	case domain.OpAdd:
		s.log.Debug("add is not implemented yet; nothing to do")
		return &domain.Result{Outcome: domain.OutcomeUnsupported, Operation: domain.OpAdd}, nil
	case domain.OpRemove:
		return s.remove(ctx, op.Attributes(), op.Path())
	default:
		return nil, &domain.UsageError{Msg: "unknown operation: " + op.Kind().String()}
	}
}

// remove strips each attribute in order and stops at the first failure.
// Attributes removed before a failure stay removed.
func (s *AttributeService) remove(ctx context.Context, attrs []domain.AttributeName, path string) (*domain.Result, error) {
	// 1. Open the target; it stays open for the propagation fd
	h, err := s.opener.Open(path)
	if err != nil {
		return nil, &domain.IoError{Op: "open", Path: path, Err: err}
	}
	defer func() {
		if cerr := h.Close(); cerr != nil {
			s.log.WithError(cerr).WithField("path", path).Debug("close failed")
		}
	}()

	// 2. Resolve the kind once
	info, err := h.Stat()
	if err != nil {
		return nil, &domain.IoError{Op: "stat", Path: path, Err: err}
	}
	target := domain.Target{Path: path, Kind: domain.KindFromMode(info.Mode())}

	log := s.log.WithFields(logrus.Fields{"path": path, "kind": target.Kind.String()})
	s.checkFilesystem(log, path)

	result := &domain.Result{
		Outcome:   domain.OutcomeDone,
		Operation: domain.OpRemove,
		Target:    target,
	}

	// 3. Remove each attribute
	for _, attr := range attrs {
		name := attr.Namespaced()
		s.reporter.Removing(name, path)

		if err := s.store.Remove(path, name); err != nil {
			rerr := domain.NewAttributeRemovalError(name, path, err)
			log.WithField("attribute", name).WithError(err).Debug("removexattr failed")
			return nil, rerr
		}
		result.Removed = append(result.Removed, name)
	}

	// 4. Directories get the re-inherit walk
	if target.IsDir() {
		s.reporter.Propagating(path)
		result.Propagated = true

		// Best effort: a failed walk is reported but does not fail the operation
		if err := s.propagator.Propagate(ctx, h.Fd()); err != nil {
			result.PropagationErr = err
			log.WithError(err).Debug("propagating attributes to children failed")
			s.reporter.PropagationFailed(path, err)
		}
	}

	log.WithField("removed", len(result.Removed)).Debug("remove complete")
	return result, nil
}

func (s *AttributeService) checkFilesystem(log logrus.FieldLogger, path string) {
	if s.probe == nil {
		return
	}
	ok, err := s.probe.IsBcachefs(path)
	switch {
	case err != nil:
		log.WithError(err).Debug("could not determine filesystem type")
	case !ok:
		log.Warn("target does not appear to be on a bcachefs filesystem")
	}
}
