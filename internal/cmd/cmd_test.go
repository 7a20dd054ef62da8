package cmd

import (
	"testing"
	"time"
)

func TestParseExpiry(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		check   func(t *testing.T, got time.Time)
	}{
		{
			name:  "date",
			input: "2027-06-30",
			check: func(t *testing.T, got time.Time) {
				if got.Year() != 2027 || got.Month() != time.June || got.Day() != 30 {
					t.Errorf("got %v, want 2027-06-30", got)
				}
			},
		},
		{
			name:  "day count",
			input: "30d",
			check: func(t *testing.T, got time.Time) {
				want := time.Now().AddDate(0, 0, 30)
				if got.Sub(want) > time.Minute || want.Sub(got) > time.Minute {
					t.Errorf("got %v, want about %v", got, want)
				}
			},
		},
		{
			name:  "empty defaults to one year",
			input: "",
			check: func(t *testing.T, got time.Time) {
				want := time.Now().AddDate(1, 0, 0)
				if got.Sub(want) > time.Minute || want.Sub(got) > time.Minute {
					t.Errorf("got %v, want about %v", got, want)
				}
			},
		},
		{
			name:    "garbage",
			input:   "next tuesday",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseExpiry(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, got)
		})
	}
}

func TestCommandTreeRegistered(t *testing.T) {
	want := map[string]bool{
		"auth":      false,
		"users":     false,
		"orgs":      false,
		"license":   false,
		"db":        false,
		"stats":     false,
		"dashboard": false,
		"monitor":   false,
		"audit":     false,
		"docs":      false,
		"config":    false,
		"version":   false,
	}

	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}

	for name, found := range want {
		if !found {
			t.Errorf("command %q is not registered", name)
		}
	}
}

func TestAuthSubcommands(t *testing.T) {
	subs := map[string]bool{"login": false, "logout": false, "status": false, "validate": false}
	for _, c := range authCmd.Commands() {
		if _, ok := subs[c.Name()]; ok {
			subs[c.Name()] = true
		}
	}
	for name, found := range subs {
		if !found {
			t.Errorf("auth subcommand %q is not registered", name)
		}
	}
}
