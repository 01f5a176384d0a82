package urlutil

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://baliexception.com/properties", false},
		{"http://example.com", false},
		{"ftp://example.com", true},
		{"not a url at all://", true},
		{"/relative/only", true},
	}

	for _, tt := range tests {
		err := Validate(tt.url)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
		}
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		base, href, want string
	}{
		{"https://baliexception.com", "/listing/villa-1", "https://baliexception.com/listing/villa-1"},
		{"https://baliexception.com", "https://other.com/x", "https://other.com/x"},
		{"https://villas.baliexception.com", "villa-2", "https://villas.baliexception.com/villa-2"},
		{"https://baliexception.com/", "/listing/villa-3", "https://baliexception.com/listing/villa-3"},
	}

	for _, tt := range tests {
		if got := Resolve(tt.base, tt.href); got != tt.want {
			t.Errorf("Resolve(%q, %q) = %q, want %q", tt.base, tt.href, got, tt.want)
		}
	}
}
