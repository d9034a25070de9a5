package tools

import (
	"context"
	"reflect"
	"strings"
	"testing"
)

func TestAnalyzeFindingsTool_ListsEachSentenceAsObservation(t *testing.T) {
	tool := AnalyzeFindingsTool{}
	result, err := tool.Execute(context.Background(), map[string]any{
		"findings": "Yield increased with temperature. Byproduct formation was negligible below 80C.",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	text := result.Content[0].Text
	for _, want := range []string{"Yield increased with temperature", "Byproduct formation was negligible below 80C", "Limitations to state explicitly"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected output to contain %q, got %s", want, text)
		}
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("First point.\nSecond point. Third point\n")
	want := []string{"First point", "Second point", "Third point"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitSentences = %v, want %v", got, want)
	}
}

func TestClusterByKeyword_GroupsSharedSignificantWord(t *testing.T) {
	notes := []string{
		"temperature increases reaction rate substantially",
		"higher temperature also increases side-product formation",
		"catalyst choice had no measurable effect",
	}
	themes := clusterByKeyword(notes)

	found := false
	for keyword, members := range themes {
		if keyword == "temperature" {
			found = true
			if len(members) != 2 {
				t.Errorf("expected 2 notes clustered under %q, got %d", keyword, len(members))
			}
		}
	}
	if !found {
		t.Errorf("expected a theme keyed on a word shared by two notes, got themes=%v", themes)
	}
}

func TestSynthesizeThemesTool_ShortNoteReportsNoThemes(t *testing.T) {
	tool := SynthesizeThemesTool{}
	result, err := tool.Execute(context.Background(), map[string]any{"notes": "ok"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(result.Content[0].Text, "No distinguishable themes") {
		t.Errorf("expected a single short note to produce no themes, got %s", result.Content[0].Text)
	}
}

func TestAnalysisTools_NoContextRequired(t *testing.T) {
	if (AnalyzeFindingsTool{}).ContextRequired() {
		t.Errorf("analyze_findings should not require project context")
	}
	if (SynthesizeThemesTool{}).ContextRequired() {
		t.Errorf("synthesize_themes should not require project context")
	}
}
