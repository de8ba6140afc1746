// Package configs provides configuration structures and utilities for the storefront.
// This file contains tests for the Viper-based configuration functionality.
//
// Package configs 提供店面的配置结构和工具。
// 本文件包含基于Viper的配置功能的测试。
package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// TestViperConfigFromFile verifies file values, defaults for missing keys and
// duration decoding.
//
// TestViperConfigFromFile 验证文件值、缺失键的默认值以及时长解码。
func TestViperConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	writeFile(t, path, `
server:
  addr: ":9000"
session:
  ttl: 15m
  max_sessions: 50
`)

	vc, err := NewViperConfig(path)
	if err != nil {
		t.Fatalf("NewViperConfig() failed: %v", err)
	}
	config := vc.Get()
	if config.Server.Addr != ":9000" {
		t.Errorf("Expected Server.Addr ':9000', got '%s'", config.Server.Addr)
	}
	if config.Session.TTL != 15*time.Minute {
		t.Errorf("Expected Session.TTL 15m, got %s", config.Session.TTL)
	}
	if config.Session.MaxSessions != 50 {
		t.Errorf("Expected Session.MaxSessions 50, got %d", config.Session.MaxSessions)
	}
	if config.Store.ContactPhone != "02188776655" {
		t.Errorf("Expected default contact phone, got '%s'", config.Store.ContactPhone)
	}
}

// TestViperEnvOverride verifies that STOREFRONT_* variables win over defaults.
//
// TestViperEnvOverride 验证STOREFRONT_*变量优先于默认值。
func TestViperEnvOverride(t *testing.T) {
	t.Setenv("STOREFRONT_LOG_LEVEL", "debug")
	t.Setenv("STOREFRONT_STORE_CONTACT_PHONE", "021000")

	vc, err := NewViperConfig("")
	if err != nil {
		t.Fatalf("NewViperConfig() failed: %v", err)
	}
	if got := vc.Get().Log.Level; got != "debug" {
		t.Errorf("Expected Log.Level 'debug', got '%s'", got)
	}
	if got := vc.Get().Store.ContactPhone; got != "021000" {
		t.Errorf("Expected Store.ContactPhone '021000', got '%s'", got)
	}
}

// TestViperRejectsInvalidFile verifies that validation runs on load.
//
// TestViperRejectsInvalidFile 验证加载时会执行验证。
func TestViperRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	writeFile(t, path, "log:\n  level: loud\n")

	if _, err := NewViperConfig(path); err == nil {
		t.Error("NewViperConfig() should reject an invalid log level")
	}
}

// TestReloadNotifiesSubscribers verifies that a valid reload swaps the
// configuration and reaches subscribers, and an invalid one is ignored.
//
// TestReloadNotifiesSubscribers 验证有效的重载会替换配置并通知订阅者，
// 无效的重载会被忽略。
func TestReloadNotifiesSubscribers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	writeFile(t, path, "log:\n  level: info\n")

	vc, err := NewViperConfig(path)
	if err != nil {
		t.Fatalf("NewViperConfig() failed: %v", err)
	}

	var notified []string
	vc.Subscribe(func(c *Config) { notified = append(notified, c.Log.Level) })

	writeFile(t, path, "log:\n  level: warn\n")
	if err := vc.Reload(); err != nil {
		t.Fatalf("Reload() failed: %v", err)
	}

	writeFile(t, path, "log:\n  level: nope\n")
	if err := vc.Reload(); err == nil {
		t.Error("Reload() should reject an invalid log level")
	}

	if len(notified) != 1 || notified[0] != "warn" {
		t.Errorf("Expected one notification with 'warn', got %v", notified)
	}
	if vc.Get().Log.Level != "warn" {
		t.Errorf("Expected current Log.Level 'warn', got '%s'", vc.Get().Log.Level)
	}
}
