package cli

import (
	"io"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func TestCompleteViews(t *testing.T) {
	got, _ := completeViews(nil, nil, "t")
	want := []string{"tree", "trunk"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("completeViews(t) = %v, want %v", got, want)
	}
}

func TestCompleteRenderFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"p", []string{"png"}},
		{"svg,d", []string{"svg,dot"}},
		{"g", []string{"graphviz"}},
		{"x", nil},
	}
	for _, tt := range tests {
		got, _ := completeRenderFormats(nil, nil, tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("completeRenderFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRegisterCompletions(t *testing.T) {
	root := New(io.Discard, log.FatalLevel).RootCommand()

	find := func(path ...string) *cobra.Command {
		cmd, _, err := root.Find(path)
		if err != nil {
			t.Fatalf("find %v: %v", path, err)
		}
		return cmd
	}

	toggle := find("known", "toggle")
	if toggle.ValidArgsFunction == nil {
		t.Fatal("known toggle has no argument completion")
	}
	ids, directive := toggle.ValidArgsFunction(toggle, nil, "")
	if len(ids) == 0 || directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("card ids = %v (directive %v)", ids, directive)
	}

	set := find("known", "set")
	vals, _ := set.ValidArgsFunction(set, []string{ids[0]}, "")
	if !reflect.DeepEqual(vals, []string{"true", "false"}) {
		t.Errorf("known set second arg = %v", vals)
	}

	layoutCmd := find("layout")
	exts, directive := layoutCmd.ValidArgsFunction(layoutCmd, nil, "")
	if directive != cobra.ShellCompDirectiveFilterFileExt || !reflect.DeepEqual(exts, hierarchyExts) {
		t.Errorf("layout completion = %v (directive %v)", exts, directive)
	}
}
