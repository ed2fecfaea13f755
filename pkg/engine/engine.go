// Package engine ties a hierarchy to its persisted progress and collapse
// state and produces renderable snapshots.
//
// A [Session] is the boundary an external renderer talks to: it reads
// {nodes, links, progress} through [Session.Layout] and reports clicks back
// through [Session.ToggleKnown] and [Session.ToggleCollapsed]. A Session is
// not safe for concurrent use; callers that share one serialise access.
package engine

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/conceptmap/pkg/errors"
	"github.com/matzehuels/conceptmap/pkg/hierarchy"
	"github.com/matzehuels/conceptmap/pkg/layout"
	"github.com/matzehuels/conceptmap/pkg/observability"
	"github.com/matzehuels/conceptmap/pkg/progress"
	"github.com/matzehuels/conceptmap/pkg/state"
	"github.com/matzehuels/conceptmap/pkg/store"
	"github.com/matzehuels/conceptmap/pkg/tree"
)

// Options configures [Open].
type Options struct {
	// MapID keys the persisted state. Required.
	MapID string
	// Namespace prefixes stored keys. Defaults to store.DefaultNamespace.
	Namespace string
	// StartExpanded makes never-seen topics and subtopics open.
	StartExpanded bool
	// Logger receives debug and warning output. Defaults to log.Default().
	Logger *log.Logger
}

// Session is the live state of one concept map.
type Session struct {
	mapID     string
	namespace string
	logger    *log.Logger

	h           hierarchy.Hierarchy
	roots       []tree.Node
	collapsible map[string]bool

	known    *state.Known
	collapse *state.Collapse
}

// Open restores the state of opts.MapID from s and makes the collapse
// default concrete for every topic and subtopic of h.
func Open(ctx context.Context, h hierarchy.Hierarchy, s *store.Store, opts Options) (*Session, error) {
	if err := errors.ValidateMapID(opts.MapID); err != nil {
		return nil, err
	}
	if opts.Namespace == "" {
		opts.Namespace = store.DefaultNamespace
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	sess := &Session{
		mapID:     opts.MapID,
		namespace: opts.Namespace,
		logger:    opts.Logger,
		known:     state.LoadKnown(ctx, s, opts.Namespace, opts.MapID),
		collapse:  state.LoadCollapse(ctx, s, opts.Namespace, opts.MapID, opts.StartExpanded),
	}
	sess.setHierarchy(ctx, h)
	return sess, nil
}

// Reload swaps in a new hierarchy, keeping known and collapse state. Ids
// that disappeared keep their stored values.
func (s *Session) Reload(ctx context.Context, h hierarchy.Hierarchy) {
	s.setHierarchy(ctx, h)
	s.logger.Debug("hierarchy reloaded", "map", s.mapID, "cards", h.CardCount())
}

func (s *Session) setHierarchy(ctx context.Context, h hierarchy.Hierarchy) {
	s.h = h
	s.roots = tree.Build(h)

	ids := tree.CollapsibleIDs(h)
	s.collapsible = make(map[string]bool, len(ids))
	for _, id := range ids {
		s.collapsible[id] = true
	}
	if n := s.collapse.EnsureDefaults(ctx, ids); n > 0 {
		s.logger.Debug("collapse defaults written", "map", s.mapID, "added", n)
	}
	if dups := h.DuplicateIDs(); len(dups) > 0 {
		s.logger.Warn("duplicate ids share state", "map", s.mapID, "ids", strings.Join(dups, ","))
	}
}

// MapID returns the id keying this session's state.
func (s *Session) MapID() string { return s.mapID }

// Namespace returns the store namespace.
func (s *Session) Namespace() string { return s.namespace }

// Hierarchy returns the loaded hierarchy.
func (s *Session) Hierarchy() hierarchy.Hierarchy { return s.h }

// Roots returns the built tree.
func (s *Session) Roots() []tree.Node { return s.roots }

// =============================================================================
// Known Cards
// =============================================================================

// ToggleKnown flips the known flag of a card and returns the new value.
func (s *Session) ToggleKnown(ctx context.Context, id string) (bool, error) {
	if err := s.requireCard(id); err != nil {
		return false, err
	}
	v := s.known.Toggle(ctx, id)
	observability.Engine().OnToggle(ctx, "known", v)
	s.logger.Debug("known toggled", "map", s.mapID, "card", id, "known", v)
	return v, nil
}

// SetKnown sets the known flag of a card.
func (s *Session) SetKnown(ctx context.Context, id string, known bool) error {
	if err := s.requireCard(id); err != nil {
		return err
	}
	s.known.Set(ctx, id, known)
	observability.Engine().OnToggle(ctx, "known", known)
	return nil
}

// IsKnown reports whether the card id is marked known.
func (s *Session) IsKnown(id string) bool { return s.known.IsKnown(id) }

// ResetProgress forgets every known card.
func (s *Session) ResetProgress(ctx context.Context) {
	s.known.Reset(ctx)
	observability.Engine().OnReset(ctx, "known")
	s.logger.Debug("progress reset", "map", s.mapID)
}

// Known returns a copy of the known set.
func (s *Session) Known() state.Set { return s.known.Snapshot() }

func (s *Session) requireCard(id string) error {
	if s.h.HasCard(id) {
		return nil
	}
	if err := errors.ValidateNodeID(id); err != nil {
		return err
	}
	return errors.New(errors.ErrCodeNotFound, "no card with id %q", id)
}

// =============================================================================
// Collapse State
// =============================================================================

// ToggleCollapsed flips a topic or subtopic open or closed and returns
// whether it is now collapsed.
func (s *Session) ToggleCollapsed(ctx context.Context, id string) (bool, error) {
	if !s.collapsible[id] {
		if err := errors.ValidateNodeID(id); err != nil {
			return false, err
		}
		return false, errors.New(errors.ErrCodeNotFound, "no topic or subtopic with id %q", id)
	}
	v := s.collapse.Toggle(ctx, id)
	observability.Engine().OnToggle(ctx, "collapsed", v)
	s.logger.Debug("collapse toggled", "map", s.mapID, "node", id, "collapsed", v)
	return v, nil
}

// ExpandAll opens (open=true) or closes every topic and subtopic.
func (s *Session) ExpandAll(ctx context.Context, open bool) {
	s.collapse.SetAll(ctx, tree.CollapsibleIDs(s.h), !open)
	observability.Engine().OnReset(ctx, "collapsed")
}

// IsCollapsed reports whether id's subtree is hidden.
func (s *Session) IsCollapsed(id string) bool { return s.collapse.IsCollapsed(id) }

// Collapsed returns a copy of the collapsed set.
func (s *Session) Collapsed() state.Set { return s.collapse.Snapshot() }

// =============================================================================
// Progress and Layout
// =============================================================================

// Progress aggregates known/total per topic and subtopic.
func (s *Session) Progress() progress.Report {
	return progress.Aggregate(s.h, s.known.Map())
}

// Overall sums progress over the whole map.
func (s *Session) Overall() progress.Pair {
	return progress.Overall(s.h, s.known.Map())
}

// Snapshot is what a renderer needs to draw one frame.
type Snapshot struct {
	MapID string `json:"mapId"`
	layout.Result
	Progress  progress.Report `json:"progress"`
	Overall   progress.Pair   `json:"overall"`
	Known     state.Set       `json:"known"`
	Collapsed state.Set       `json:"collapsed"`
}

// Layout computes the given view at the given viewport size.
func (s *Session) Layout(ctx context.Context, view layout.View, width, height float64) (*Snapshot, error) {
	res, err := layout.Compute(ctx, view, layout.Input{
		Roots:       s.roots,
		IsCollapsed: s.collapse.IsCollapsed,
		Width:       width,
		Height:      height,
	})
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		MapID:     s.mapID,
		Result:    res,
		Progress:  s.Progress(),
		Overall:   s.Overall(),
		Known:     s.known.Snapshot(),
		Collapsed: s.collapse.Snapshot(),
	}, nil
}

// MapIDForPath derives a stable map id from a hierarchy file's absolute path.
func MapIDForPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "resolve %s", path)
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+filepath.ToSlash(abs))).String(), nil
}
