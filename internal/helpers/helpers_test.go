package helpers

import "testing"

func TestIsPasswordStrong(t *testing.T) {
	weak := []string{
		"short1!",
		"alllowercase1!",
		"ALLUPPERCASE1!",
		"NoNumbers!!",
		"NoSpecial123",
	}
	for _, password := range weak {
		if IsPasswordStrong(password) {
			t.Errorf("password %q should be rejected", password)
		}
	}

	if !IsPasswordStrong("Str0ng!pass") {
		t.Errorf("Str0ng!pass should be accepted")
	}
}
