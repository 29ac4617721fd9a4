package validation

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid email", email: "pilot@example.com", wantErr: false},
		{name: "valid with plus", email: "pilot+training@example.co.uk", wantErr: false},
		{name: "empty", email: "", wantErr: true},
		{name: "whitespace only", email: "   ", wantErr: true},
		{name: "no at sign", email: "pilot.example.com", wantErr: true},
		{name: "no domain", email: "pilot@", wantErr: true},
		{name: "no tld", email: "pilot@example", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid password", password: "longenough", wantErr: false},
		{name: "empty", password: "", wantErr: true},
		{name: "too short", password: "short", wantErr: true},
		{name: "exactly eight", password: "12345678", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTerm(t *testing.T) {
	long := make([]byte, 51)
	for i := range long {
		long[i] = 'x'
	}

	tests := []struct {
		name    string
		term    string
		wantErr bool
	}{
		{name: "valid term", term: "VFR", wantErr: false},
		{name: "empty", term: "", wantErr: true},
		{name: "whitespace only", term: "  ", wantErr: true},
		{name: "too long", term: string(long), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTerm(tt.term)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTerm(%q) error = %v, wantErr %v", tt.term, err, tt.wantErr)
			}
		})
	}
}

func TestValidateMeaning(t *testing.T) {
	long := make([]byte, 501)
	for i := range long {
		long[i] = 'x'
	}

	tests := []struct {
		name    string
		meaning string
		wantErr bool
	}{
		{name: "valid meaning", meaning: "Visual Flight Rules", wantErr: false},
		{name: "empty", meaning: "", wantErr: true},
		{name: "too long", meaning: string(long), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMeaning(tt.meaning)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMeaning() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := ValidationError{Field: "term", Message: "shortcut is required"}
	want := "term: shortcut is required"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
