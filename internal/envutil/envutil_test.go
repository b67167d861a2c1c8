package envutil

import (
	"reflect"
	"testing"
)

func TestGetHostEnvTrims(t *testing.T) {
	t.Setenv("DOMD_FORMAT", "  json \n")
	if got := GetHostEnv("FORMAT"); got != "json" {
		t.Fatalf("expected json, got %q", got)
	}
	if got := HostEnvKey("LOG_LEVEL"); got != "DOMD_LOG_LEVEL" {
		t.Fatalf("unexpected key: %s", got)
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" vendor, ,build,")
	if want := []string{"vendor", "build"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if SplitList("") != nil {
		t.Fatalf("expected nil for empty input")
	}
}
