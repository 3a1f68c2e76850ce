package internal

import "testing"

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
	if cfg.App.HTTP.Port != 8080 {
		t.Errorf("default port = %d", cfg.App.HTTP.Port)
	}
	if cfg.App.HTTP.Address() != ":8080" {
		t.Errorf("address = %q", cfg.App.HTTP.Address())
	}
	if cfg.Auth.AuthEnabled() {
		t.Error("auth must default to disabled")
	}
}

func TestHTTPConfig_Validate(t *testing.T) {
	cases := []struct {
		port    int
		wantErr bool
	}{
		{8080, false},
		{1, false},
		{65535, false},
		{0, true},
		{-1, true},
		{70000, true},
	}
	for _, c := range cases {
		cfg := HTTPConfig{Port: c.port}
		err := cfg.Validate()
		if (err != nil) != c.wantErr {
			t.Errorf("port %d: err = %v, wantErr %v", c.port, err, c.wantErr)
		}
	}
}

func TestDataConfig_Validate(t *testing.T) {
	if err := (&DataConfig{}).Validate(); err == nil {
		t.Error("empty data path must be rejected")
	}
	if err := (&DataConfig{Path: "./website/data"}).Validate(); err != nil {
		t.Errorf("valid data path rejected: %v", err)
	}
}

func TestAuthConfig_Validate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     AuthConfig
		wantErr bool
		enabled bool
	}{
		{"empty mode normalizes to disabled", AuthConfig{}, false, false},
		{"disabled", AuthConfig{Mode: AuthModeDisabled}, false, false},
		{"token with value", AuthConfig{Mode: AuthModeToken, Token: "secret"}, false, true},
		{"token without value", AuthConfig{Mode: AuthModeToken}, true, false},
		{"unknown mode", AuthConfig{Mode: "basic"}, true, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.cfg.Validate()
			if (err != nil) != c.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, c.wantErr)
			}
			if err == nil && c.cfg.AuthEnabled() != c.enabled {
				t.Errorf("AuthEnabled = %v, want %v", c.cfg.AuthEnabled(), c.enabled)
			}
		})
	}
}
