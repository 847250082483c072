package tests

import (
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	_ = os.Unsetenv("VIRTUAL_ENV")
	os.Exit(m.Run())
}
