package hotkey

import "testing"

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"":                 "",
		"   ":              "",
		"ctrl+alt+r":       "Ctrl+Alt+R",
		" ctrl + shift+k ": "Ctrl+Shift+K",
		"Ctrl+Alt+R":       "Ctrl+Alt+R",
		"cmdOrCtrl+n":      "CmdOrCtrl+N",
		"f5":               "F5",
		"ctrl++k":          "Ctrl+K",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResolve(t *testing.T) {
	cases := []struct {
		name      string
		useCustom bool
		custom    string
		want      string
		wantReset bool
	}{
		{"disabled ignores custom", false, "ctrl+k", Default, false},
		{"custom normalized", true, "ctrl + k", "Ctrl+K", false},
		{"blank custom resets", true, "  ", Default, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, reset := Resolve(tc.useCustom, tc.custom)
			if got != tc.want || reset != tc.wantReset {
				t.Errorf("Resolve = (%q, %v), want (%q, %v)", got, reset, tc.want, tc.wantReset)
			}
		})
	}
}
