package cli

import (
	"bytes"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestCompletionCommand(t *testing.T) {
	isolate(t)
	for _, shell := range shells {
		t.Run(shell, func(t *testing.T) {
			root := New(io.Discard, LogInfo).RootCommand()
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetArgs([]string{"completion", shell})
			if err := root.Execute(); err != nil {
				t.Fatalf("completion %s: %v", shell, err)
			}
			if !strings.Contains(out.String(), "anchor") {
				t.Errorf("completion %s does not mention the command name", shell)
			}
		})
	}

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"completion", "tcsh"})
	if err := root.Execute(); err == nil {
		t.Error("completion tcsh succeeded")
	}
}

func TestCompleteScene(t *testing.T) {
	got, dir := completeScene(nil, nil, "")
	if dir != cobra.ShellCompDirectiveFilterFileExt || !slices.Equal(got, []string{"toml"}) {
		t.Errorf("completeScene() = %v, %v", got, dir)
	}
	if got, dir := completeScene(nil, []string{"a.toml"}, ""); got != nil || dir != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("completeScene() after an argument = %v, %v", got, dir)
	}
}

func TestCompleteAttributes(t *testing.T) {
	got, _ := completeAttributes(nil, nil, "width,he")
	if !slices.Contains(got, "width,height") {
		t.Errorf("completeAttributes() = %v, want width,height among them", got)
	}
	for _, s := range got {
		if !strings.HasPrefix(s, "width,") {
			t.Fatalf("completion %q lost the typed prefix", s)
		}
	}
}

func TestCompletePacking(t *testing.T) {
	got, _ := completePacking(nil, nil, "")
	if !slices.Contains(got, "spread") || !slices.Contains(got, "fill") {
		t.Errorf("completePacking() = %v", got)
	}
}
