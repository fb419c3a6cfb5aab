package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func complete(t *testing.T, args ...string) string {
	t.Helper()
	root := New(io.Discard, LogInfo).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out.String()
}

func TestCompletionScripts(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			if out := complete(t, "completion", shell); !strings.Contains(out, "arbor") {
				t.Errorf("%s script does not mention arbor", shell)
			}
		})
	}
}

func TestFlagCompletions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"RenderFormat", []string{"__complete", "render", "doc.json", "--format", ""}, []string{"svg", "graphviz", "text"}},
		{"RenderStyle", []string{"__complete", "render", "doc.json", "--style", ""}, []string{"lots", "paper"}},
		{"ExploreExpand", []string{"__complete", "explore", "doc.json", "--expand", ""}, []string{"document", "all", "none"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := strings.Split(complete(t, tt.args...), "\n")
			for _, w := range tt.want {
				found := false
				for _, l := range lines {
					if l == w {
						found = true
					}
				}
				if !found {
					t.Errorf("completions %v missing %q", lines, w)
				}
			}
		})
	}
}

func TestDocumentCompletion(t *testing.T) {
	out := complete(t, "__complete", "info", "")
	for _, ext := range []string{"json", "yaml", "yml"} {
		if !strings.Contains(out, ext+"\n") {
			t.Errorf("document completion missing %q:\n%s", ext, out)
		}
	}
	if !strings.Contains(out, ":8") {
		t.Errorf("document completion should filter by extension:\n%s", out)
	}
}
