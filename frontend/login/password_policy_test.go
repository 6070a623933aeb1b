package login

import "testing"

func TestValidatePasswordPolicy(t *testing.T) {
	cases := []struct {
		name string
		pwd  string
		ok   bool
	}{
		{name: "valid mixed", pwd: "Employee123!Pass", ok: true},
		{name: "too short", pwd: "Abc1!", ok: false},
		{name: "no digit", pwd: "Abcdefghijk!", ok: false},
		{name: "no symbol", pwd: "Abcdefghijk1", ok: false},
		{name: "no upper", pwd: "abcdefghijk1!", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePasswordPolicy(tc.pwd)
			if tc.ok && err != nil {
				t.Fatalf("expected valid password, got error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected policy error")
			}
		})
	}
}
