package log

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

const testToken = "secret_AbCdEfGhIjKlMnOpQrStUvWxYz0123456789"

// TestSecureHandler_SanitizesSensitiveKeys tests that sensitive keys are sanitized.
func TestSecureHandler_SanitizesSensitiveKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		key      string
		value    string
		wantMask bool
	}{
		{"authorization key is sanitized", "authorization", "Bearer abc", true},
		{"Authorization key (mixed case) is sanitized", "Authorization", "Bearer abc", true},
		{"token key is sanitized", "token", "plain-value", true},
		{"notion_token key is sanitized", "notion_token", "plain-value", true},
		{"key containing auth is sanitized", "proxy_auth", "user:pass", true},
		{"token_env key is NOT sanitized", "token_env", "NOTION_WORK_TOKEN", false},
		{"page key is NOT sanitized", "page", "Weekly Review", false},
		{"block_id key is NOT sanitized", "block_id", "9bc30ad4-9373-46a5-84ab-0a7845ee52e6", false},
		{"url key is NOT sanitized", "url", "https://www.notion.so/Weekly-Review-9bc30ad4", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := NewSecureLogger(&buf, true)
			logger.Info("test message", tt.key, tt.value)

			output := buf.String()
			if tt.wantMask {
				if strings.Contains(output, tt.value) {
					t.Errorf("expected value %q to be masked, but found in output: %s", tt.value, output)
				}
				if !strings.Contains(output, MaskValue) {
					t.Errorf("expected mask value %q in output, but not found: %s", MaskValue, output)
				}
			} else if !strings.Contains(output, tt.value) {
				t.Errorf("expected value %q to be present in output, but not found: %s", tt.value, output)
			}
		})
	}
}

// TestSecureHandler_RedactsTokens tests masking of Notion tokens by value.
func TestSecureHandler_RedactsTokens(t *testing.T) {
	t.Parallel()

	t.Run("bare token value is masked", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		NewSecureLogger(&buf, true).Info("loaded", "value", testToken)
		if strings.Contains(buf.String(), testToken) {
			t.Errorf("expected token to be masked: %s", buf.String())
		}
	})

	t.Run("ntn token inside a string is masked in place", func(t *testing.T) {
		t.Parallel()

		token := "ntn_" + strings.Repeat("x", 40)
		var buf bytes.Buffer
		NewSecureLogger(&buf, true).Info("config", "detail", "using "+token+" for work")

		output := buf.String()
		if strings.Contains(output, token) {
			t.Errorf("expected token to be masked: %s", output)
		}
		if !strings.Contains(output, "for work") {
			t.Errorf("expected surrounding text to be kept: %s", output)
		}
	})

	t.Run("token inside an error is masked", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("request failed: %w", errors.New("bad header Bearer "+testToken))
		var buf bytes.Buffer
		NewSecureLogger(&buf, true).Warn("crawl failed", "error", err)

		output := buf.String()
		if strings.Contains(output, testToken) {
			t.Errorf("expected token to be masked: %s", output)
		}
		if !strings.Contains(output, "request failed") {
			t.Errorf("expected error message to be kept: %s", output)
		}
	})

	t.Run("token inside the message is masked", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		NewSecureLogger(&buf, true).Error("token " + testToken + " rejected")
		if strings.Contains(buf.String(), testToken) {
			t.Errorf("expected token to be masked: %s", buf.String())
		}
	})

	t.Run("bearer header value is masked", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		NewSecureLogger(&buf, true).Info("header", "value", "Bearer something")
		if strings.Contains(buf.String(), "something") {
			t.Errorf("expected bearer value to be masked: %s", buf.String())
		}
	})
}

// TestSecureHandler_LogLevels tests verbose and quiet levels.
func TestSecureHandler_LogLevels(t *testing.T) {
	t.Parallel()

	t.Run("debug is hidden without verbose", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewSecureLogger(&buf, false)
		logger.Debug("debug message")
		logger.Info("info message")
		logger.Warn("warn message")

		output := buf.String()
		if strings.Contains(output, "debug message") || strings.Contains(output, "info message") {
			t.Errorf("expected debug and info to be hidden: %s", output)
		}
		if !strings.Contains(output, "warn message") {
			t.Errorf("expected warn to be shown: %s", output)
		}
	})

	t.Run("debug is shown with verbose", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		NewSecureLogger(&buf, true).Debug("debug message")
		if !strings.Contains(buf.String(), "debug message") {
			t.Errorf("expected debug to be shown: %s", buf.String())
		}
	})
}

// TestSecureHandler_WithAttrs tests that WithAttrs sanitizes attributes.
func TestSecureHandler_WithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewSecureLogger(&buf, true).With("token", testToken).Info("test message")

	output := buf.String()
	if strings.Contains(output, testToken) {
		t.Errorf("expected token to be masked in WithAttrs, but found in output: %s", output)
	}
	if !strings.Contains(output, MaskValue) {
		t.Errorf("expected mask value in output, but not found: %s", output)
	}
}

// TestSecureHandler_WithGroup tests that grouped attributes are sanitized.
func TestSecureHandler_WithGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewSecureLogger(&buf, true).WithGroup("request").Info("test message",
		"url", "https://api.notion.com/v1/search",
		"authorization", "Bearer "+testToken)

	output := buf.String()
	if !strings.Contains(output, "https://api.notion.com/v1/search") {
		t.Errorf("expected url to be visible, but not found in output: %s", output)
	}
	if strings.Contains(output, testToken) {
		t.Errorf("expected authorization to be masked, but found in output: %s", output)
	}
}

// TestNewSecureJSONLogger tests JSON logger creation.
func TestNewSecureJSONLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewSecureJSONLogger(&buf, true).Info("test message", "token", testToken)

	output := buf.String()
	if !strings.HasPrefix(strings.TrimSpace(output), "{") {
		t.Errorf("expected JSON format, but got: %s", output)
	}
	if strings.Contains(output, testToken) {
		t.Errorf("expected token to be masked, but found in output: %s", output)
	}
}

// TestNewSecureHandler_NilHandler tests the default handler fallback.
func TestNewSecureHandler_NilHandler(t *testing.T) {
	t.Parallel()

	if h := NewSecureHandler(nil); h.handler == nil {
		t.Error("expected default handler to be used")
	}
}

// TestRedactTokens tests in-place token replacement.
func TestRedactTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"no tokens here", "no tokens here"},
		{"key=" + testToken, "key=" + MaskValue},
		{"secret_short", "secret_short"},
		{"a ntn_" + strings.Repeat("A1", 12) + " b", "a " + MaskValue + " b"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if got := RedactTokens(tt.in); got != tt.want {
				t.Errorf("RedactTokens(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
