package main

import "testing"

func TestRootCommandRegistersSubcommands(t *testing.T) {
	if cmd := serveCmd(); cmd.Use != "serve" {
		t.Fatalf("expected serve command Use to be \"serve\", got %q", cmd.Use)
	}
	if cmd := benchCmd(); cmd.Use != "bench" {
		t.Fatalf("expected bench command Use to be \"bench\", got %q", cmd.Use)
	}
	if cmd := deployCmd(); cmd.Use != "deploy" {
		t.Fatalf("expected deploy command Use to be \"deploy\", got %q", cmd.Use)
	}
	if cmd := versionCmd(); cmd.Use != "version" {
		t.Fatalf("expected version command Use to be \"version\", got %q", cmd.Use)
	}
}

func TestBenchCmdRejectsUnknownProfile(t *testing.T) {
	cmd := benchCmd()
	cmd.SetArgs([]string{"--profile=nonexistent"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected an error for an unknown bench profile")
	}
}

func TestDeployCmdRequiresBucket(t *testing.T) {
	cmd := deployCmd()
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected an error when --bucket is not set")
	}
}
