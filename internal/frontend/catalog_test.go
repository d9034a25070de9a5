package frontend

import "testing"

func TestValidate_NoProblemsForFullyRegisteredToolSet(t *testing.T) {
	names := make([]string, 0, len(Catalog))
	for name := range Catalog {
		names = append(names, name)
	}
	if problems := Validate(names); len(problems) != 0 {
		t.Errorf("expected no problems when every catalog name is registered, got %v", problems)
	}
}

func TestValidate_ReportsMissingCatalogOrDefaultEntries(t *testing.T) {
	problems := Validate([]string{"not_a_real_tool"})
	if len(problems) != 2 {
		t.Fatalf("expected 2 problems (missing catalog entry and missing defaults entry), got %d: %v", len(problems), problems)
	}
}

func TestCatalogAndDefaults_ShareTheSameToolNames(t *testing.T) {
	for name := range Catalog {
		if _, ok := Defaults[name]; !ok {
			t.Errorf("tool %q has catalog metadata but no default-arguments entry", name)
		}
	}
	for name := range Defaults {
		if _, ok := Catalog[name]; !ok {
			t.Errorf("tool %q has default arguments but no catalog metadata", name)
		}
	}
}
