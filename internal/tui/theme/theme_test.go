package theme

import (
	"testing"

	"smartnote/internal/storage"
)

func TestApplySwitchesPalette(t *testing.T) {
	t.Cleanup(func() { Apply(storage.ThemeDark) })

	Apply(storage.ThemeLight)
	if Current() != storage.ThemeLight {
		t.Fatalf("expected light, got %q", Current())
	}
	if Primary != Light.Primary {
		t.Errorf("expected light primary %q, got %q", Light.Primary, Primary)
	}
	if Title.GetForeground() != Light.Primary {
		t.Errorf("title style not rebuilt for light palette")
	}

	Apply(storage.ThemeDark)
	if Primary != Dark.Primary {
		t.Errorf("expected dark primary %q, got %q", Dark.Primary, Primary)
	}
}
