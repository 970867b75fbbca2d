package config

import "testing"

func TestGetEnv(t *testing.T) {
	t.Setenv("PHYSICS2D_TEST_SET", "value")
	t.Setenv("PHYSICS2D_TEST_EMPTY", "")

	tests := []struct {
		key      string
		fallback string
		want     string
	}{
		{"PHYSICS2D_TEST_SET", "fb", "value"},
		{"PHYSICS2D_TEST_EMPTY", "fb", ""},
		{"PHYSICS2D_TEST_UNSET", "fb", "fb"},
	}
	for _, tt := range tests {
		if got := GetEnv(tt.key, tt.fallback); got != tt.want {
			t.Errorf("GetEnv(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestGetEnvUint(t *testing.T) {
	t.Setenv("PHYSICS2D_TEST_SEED", "1234")
	t.Setenv("PHYSICS2D_TEST_BAD", "-1")

	tests := []struct {
		key  string
		want uint64
	}{
		{"PHYSICS2D_TEST_SEED", 1234},
		{"PHYSICS2D_TEST_BAD", 7},
		{"PHYSICS2D_TEST_UNSET", 7},
	}
	for _, tt := range tests {
		if got := GetEnvUint(tt.key, 7); got != tt.want {
			t.Errorf("GetEnvUint(%q) = %d, want %d", tt.key, got, tt.want)
		}
	}
}
