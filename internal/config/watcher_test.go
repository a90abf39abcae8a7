package config

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReloadsOnSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := SaveServiceConfig(NewServiceConfig(), path); err != nil {
		t.Fatal(err)
	}

	changes := make(chan *ServiceConfig, 4)
	w, err := NewWatcher(path, nil, func(cfg *ServiceConfig) { changes <- cfg })
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()
	defer func() {
		cancel()
		<-done
	}()

	updated := NewServiceConfig()
	updated.SetDomainList([]string{"example.com"})
	if err := SaveServiceConfig(updated, path); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-changes:
			if cfg.Whitelist.Domains == "example.com" {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for configuration reload")
		}
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)

	changes := make(chan *ServiceConfig, 1)
	w, err := NewWatcher(path, nil, func(cfg *ServiceConfig) { changes <- cfg })
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()
	defer func() {
		cancel()
		<-done
	}()

	if err := SaveServiceConfig(NewServiceConfig(), filepath.Join(dir, "other.conf")); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changes:
		t.Error("unrelated file triggered a reload")
	case <-time.After(4 * reloadDelay):
	}
}
