package services

import "testing"

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name    string
		pw      string
		wantErr bool
	}{
		{"valid password", "Str0ngpass", false},
		{"too short", "Ab1", true},
		{"no digit", "longenoughpass", true},
		{"exactly eight with digit", "abcdefg1", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validatePassword(tc.pw)
			if tc.wantErr && err == nil {
				t.Errorf("Expected error for %q, got nil", tc.pw)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("Expected no error for %q, got %v", tc.pw, err)
			}
		})
	}
}

func TestEmailRegex(t *testing.T) {
	valid := []string{"user@example.com", "a.b+c@sub.domain.org"}
	invalid := []string{"", "plain", "user@", "@example.com", "user@host"}

	for _, e := range valid {
		if !emailRegex.MatchString(e) {
			t.Errorf("Expected %q to be valid", e)
		}
	}
	for _, e := range invalid {
		if emailRegex.MatchString(e) {
			t.Errorf("Expected %q to be invalid", e)
		}
	}
}
