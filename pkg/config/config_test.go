// +build unit
// +build !integration

package config

import (
	"testing"
)

func TestConfigDefaults(t *testing.T) {
	cfg, err := New("")
	if err != nil {
		t.Fatalf("%v", err)
	}

	lat, lon, daysBack := cfg.GetSearch()
	if lat != 62.00 || lon != 15.00 || daysBack != 7 {
		t.Fatalf("Wrong default search: %v %v %v", lat, lon, daysBack)
	}

	dir, unzip := cfg.GetDownload()
	if dir != "." || unzip {
		t.Fatalf("Wrong default download: %s %t", dir, unzip)
	}

	if _, _, _, err = cfg.GetHub(); err == nil {
		t.Fatalf("Credentials should be missing before loading")
	}
}

func TestConfigFile(t *testing.T) {
	cfg, err := New("testdata/config.yaml")
	if err != nil {
		t.Fatalf("%v", err)
	}

	lat, lon, daysBack := cfg.GetSearch()
	if lat != 78.25 || lon != 15.50 || daysBack != 3 {
		t.Fatalf("Wrong search config: %v %v %v", lat, lon, daysBack)
	}

	dir, unzip := cfg.GetDownload()
	if dir != "./products" || !unzip {
		t.Fatalf("Wrong download config: %s %t", dir, unzip)
	}
}

func TestConfigCredentials(t *testing.T) {
	cfg, err := New("")
	if err != nil {
		t.Fatalf("%v", err)
	}

	t.Setenv("DHUS_USER", "")
	t.Setenv("DHUS_PASSWORD", "")
	if err := cfg.LoadCredentials(); err == nil {
		t.Fatalf("Expected missing env variables to fail the load")
	}

	t.Setenv("DHUS_USER", "icefinder")
	t.Setenv("DHUS_PASSWORD", "hunter2")

	if err := cfg.LoadCredentials(); err != nil {
		t.Fatalf("%v", err)
	}

	domain, user, password, err := cfg.GetHub()
	if err != nil {
		t.Fatalf("%v", err)
	}
	if domain == "" || user != "icefinder" || password != "hunter2" {
		t.Fatalf("Wrong hub config: %s %s", domain, user)
	}

	cfg.SetCredentials("flaguser", "flagpass")
	_, user, password, err = cfg.GetHub()
	if err != nil {
		t.Fatalf("%v", err)
	}
	if user != "flaguser" || password != "flagpass" {
		t.Fatalf("Flag override was ignored: %s", user)
	}
}
