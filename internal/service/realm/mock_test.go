package realm

import (
	"fmt"
	"io"
	"log/slog"

	"helheim/internal/testutil"
)

// errTest is a sentinel error for test scenarios.
var errTest = fmt.Errorf("test error")

// Type aliases for convenience — keeps test code short.
type mockRealmRepo = testutil.MockRealmRepo
type mockProvisioner = testutil.MockProvisioner
type mockCompute = testutil.MockComputeController

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
