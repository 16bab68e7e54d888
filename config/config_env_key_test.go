package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"replicas": []any{
				map[string]any{"host": "replica-1"},
			},
		},
		"googleOAuth": map[string]any{
			"clientId": "",
		},
		"appleOAuth": map[string]any{
			"keysUrl": "",
		},
		"weather": map[string]any{
			"cacheTtl": "5m",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "GOOGLEOAUTH_CLIENTID", want: "googleOAuth.clientId"},
		{envKey: "APPLEOAUTH_KEYSURL", want: "appleOAuth.keysUrl"},
		{envKey: "WEATHER_CACHETTL", want: "weather.cacheTtl"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
