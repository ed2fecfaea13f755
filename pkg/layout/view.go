package layout

import (
	"strings"

	"github.com/matzehuels/conceptmap/pkg/errors"
)

// View selects a layout strategy.
type View string

const (
	ViewOutline     View = "outline"
	ViewTree        View = "tree"
	ViewTrunk       View = "trunk"
	ViewInfographic View = "infographic"
	ViewCanopy      View = "canopy"
)

// DefaultView is used when no view is requested.
const DefaultView = ViewOutline

// Views lists every supported view in display order.
var Views = []View{ViewOutline, ViewTree, ViewTrunk, ViewInfographic, ViewCanopy}

// ParseView resolves a view name. The empty string yields [DefaultView].
func ParseView(s string) (View, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultView, nil
	}
	for _, v := range Views {
		if string(v) == s {
			return v, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidView, "unknown view %q (want one of %s)", s, ViewNames())
}

// ViewNames returns the supported view names joined for help text.
func ViewNames() string {
	names := make([]string, len(Views))
	for i, v := range Views {
		names[i] = string(v)
	}
	return strings.Join(names, ", ")
}

func (v View) String() string { return string(v) }
