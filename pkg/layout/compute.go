package layout

import (
	"context"
	"time"

	"github.com/matzehuels/conceptmap/pkg/errors"
	"github.com/matzehuels/conceptmap/pkg/observability"
	"github.com/matzehuels/conceptmap/pkg/tree"
)

// Input is shared by every strategy. Roots is the full built tree; each
// strategy applies IsCollapsed itself.
type Input struct {
	Roots       []tree.Node
	IsCollapsed tree.CollapsedFunc
	Width       float64
	Height      float64
}

// Compute runs the strategy selected by view.
func Compute(ctx context.Context, view View, in Input) (Result, error) {
	start := time.Now()

	var res Result
	switch view {
	case ViewOutline:
		res = Outline(in.Roots, in.IsCollapsed, in.Width, in.Height)
	case ViewTree:
		res = Tidy(in.Roots, in.IsCollapsed, in.Width, in.Height)
	case ViewTrunk:
		res = Organic(tree.Prune(in.Roots, in.IsCollapsed), in.Width, in.Height)
	case ViewInfographic:
		res = Radial(len(in.Roots), in.Width, in.Height).Result()
	case ViewCanopy:
		res = Canopy(in.Roots, in.Width, in.Height)
	default:
		return Result{}, errors.New(errors.ErrCodeInvalidView, "unknown view %q", view)
	}
	res.View = view

	observability.Engine().OnLayout(ctx, string(view), len(res.Nodes), time.Since(start))
	return res, nil
}
