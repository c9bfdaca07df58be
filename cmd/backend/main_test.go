package main

import "testing"

func TestGetenvDefault(t *testing.T) {
	t.Setenv("SHD_TEST_KEY", "value")

	if got := getenvDefault("SHD_TEST_KEY", "fallback"); got != "value" {
		t.Errorf("expected %q, got %q", "value", got)
	}
	if got := getenvDefault("SHD_TEST_KEY_UNSET", "fallback"); got != "fallback" {
		t.Errorf("expected %q, got %q", "fallback", got)
	}
}

func TestMaxUploadBytes(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		want    int64
		wantErr bool
	}{
		{"unset means no limit", "", 0, false},
		{"valid limit", "5242880", 5242880, false},
		{"invalid format", "not-a-number", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SHD_MAX_UPLOAD_BYTES", tt.env)

			got, err := maxUploadBytes()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}
