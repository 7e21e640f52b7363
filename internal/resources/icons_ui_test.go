package resources

import (
	"bytes"
	"testing"

	"fyne.io/fyne/v2/theme"
)

func TestUIIconResourceVariants(t *testing.T) {
	for _, icon := range []UIIcon{UIIconConnected, UIIconDisconnected, UIIconReset, UIIconHistory} {
		light := UIIconResource(icon, theme.VariantLight)
		dark := UIIconResource(icon, theme.VariantDark)
		if light == nil || dark == nil {
			t.Fatalf("expected both variants for %q", icon)
		}
		if light.Name() == dark.Name() {
			t.Fatalf("expected distinct variants for %q, got %q", icon, light.Name())
		}
		if !bytes.HasPrefix(light.Content(), []byte("<svg")) {
			t.Fatalf("expected svg content for %q", icon)
		}
	}
}

func TestUIIconResourceUnknown(t *testing.T) {
	if got := UIIconResource(UIIcon("missing"), theme.VariantDark); got != nil {
		t.Fatalf("expected nil for unknown icon, got %q", got.Name())
	}
}

func TestLinkIcon(t *testing.T) {
	if got := LinkIcon(true, theme.VariantDark); got != UIIconResource(UIIconConnected, theme.VariantDark) {
		t.Fatalf("expected connected icon, got %q", got.Name())
	}
	if got := LinkIcon(false, theme.VariantLight); got != UIIconResource(UIIconDisconnected, theme.VariantLight) {
		t.Fatalf("expected disconnected icon, got %q", got.Name())
	}
}

func TestAppIcon(t *testing.T) {
	if len(AppIconBytes()) == 0 {
		t.Fatalf("expected embedded app icon")
	}
	if AppIconResource().Content() == nil {
		t.Fatalf("expected app icon resource content")
	}
}
