package cli

import (
	"io"
	"os"
	"testing"

	"reliefctl/pkg/logging"
)

func TestMain(m *testing.M) {
	logging.InitForCLI(logging.LevelError, io.Discard)
	os.Exit(m.Run())
}
