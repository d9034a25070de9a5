package framework

import "testing"

func TestActOf_KnownTool(t *testing.T) {
	f := New()

	act, ok := f.ActOf("clarify_research_goals")
	if !ok {
		t.Fatal("clarify_research_goals should be known")
	}
	if act != Conceptualization {
		t.Errorf("act = %s, want conceptualization", act)
	}
}

func TestActOf_UnknownTool(t *testing.T) {
	f := New()
	if _, ok := f.ActOf("not_a_real_tool"); ok {
		t.Error("unknown tool should report ok=false")
	}
}

func TestEveryToolHasExactlyOneAct(t *testing.T) {
	f := New()
	seen := make(map[string]bool)
	for _, c := range f.categories {
		for _, tool := range c.Tools {
			if seen[tool] {
				t.Errorf("tool %q appears in more than one category", tool)
			}
			seen[tool] = true
		}
	}
}

func TestToolsForAct_NonEmptyForEveryAct(t *testing.T) {
	f := New()
	for _, act := range Acts {
		tools := f.ToolsForAct(act)
		if len(tools) == 0 {
			t.Errorf("act %s has no tools assigned", act)
		}
	}
}

func TestCanonicalAct_HistoricalAliases(t *testing.T) {
	cases := map[string]Act{
		"implementation": KnowledgeAcquisition,
		"analysis":       AnalysisSynthesis,
		"synthesis":      ValidationRefinement,
		"publication":    Communication,
	}
	for alias, want := range cases {
		if got := CanonicalAct(alias); got != want {
			t.Errorf("CanonicalAct(%s) = %s, want %s", alias, got, want)
		}
	}
	if CanonicalAct("conceptualization") != Conceptualization {
		t.Error("canonical names should resolve to themselves")
	}
}

func TestVerify_FlagsUnassignedRegisteredTool(t *testing.T) {
	f := New()
	warnings := f.Verify(append(f.Names(), "mystery_tool"))
	found := false
	for _, w := range warnings {
		if w != "" && contains(w, "mystery_tool") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a warning mentioning mystery_tool, got %v", warnings)
	}
}

func TestVerify_NoWarningsWhenConsistent(t *testing.T) {
	f := New()
	if warnings := f.Verify(f.Names()); len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}

// Names returns every tool name in the taxonomy — test helper mirroring
// what the real Tool Registry would supply at startup.
func (f *Framework) Names() []string {
	var out []string
	for _, c := range f.categories {
		out = append(out, c.Tools...)
	}
	return out
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
