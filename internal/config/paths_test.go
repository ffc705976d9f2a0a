package config

import "testing"

func TestManifestPath(t *testing.T) {
	tests := []struct {
		name      string
		flagValue string
		env       string
		want      string
	}{
		{"default", "", "", DefaultManifestName},
		{"env override", "", "conf/slices.yaml", "conf/slices.yaml"},
		{"flag wins over env", "explicit.yaml", "conf/slices.yaml", "explicit.yaml"},
		{"flag alone", "explicit.yaml", "", "explicit.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PROTOSLICE_MANIFEST", tt.env)
			if got := ManifestPath(tt.flagValue); got != tt.want {
				t.Errorf("ManifestPath(%q) = %q, want %q", tt.flagValue, got, tt.want)
			}
		})
	}
}
