package optimize

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestMain(m *testing.M) {
	// Every search logs its run ID at info level.
	// Set DEBUG_TESTS=1 to see per-evaluation logs: DEBUG_TESTS=1 go test ./sim/optimize/... -v
	if os.Getenv("DEBUG_TESTS") == "" {
		logrus.SetLevel(logrus.WarnLevel)
	} else {
		logrus.SetLevel(logrus.DebugLevel)
	}
	os.Exit(m.Run())
}
