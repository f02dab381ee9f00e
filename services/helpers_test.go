package services_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"swear-jar/config"
	"swear-jar/services"
	"swear-jar/store"
)

// noon on a weekday, well inside the default window
var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store       *store.Store
	clock       *clockwork.FakeClock
	gate        *services.Gate
	progression *services.ProgressionService
	challenges  *services.ChallengeService
	board       *services.BoardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := store.OpenMemory(strings.ReplaceAll(t.Name(), "/", "_") + "_" + uuid.NewString())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	gate, err := services.NewGate(config.GateConfig{Start: "09:00", End: "21:00", Timezone: "UTC"})
	require.NoError(t, err)

	clock := clockwork.NewFakeClockAt(testNow)
	challenges := services.NewChallengeService(st, clock)

	return &fixture{
		store:       st,
		clock:       clock,
		gate:        gate,
		progression: services.NewProgressionService(st, gate, services.DefaultRules, clock),
		challenges:  challenges,
		board:       services.NewBoardService(st, gate, challenges, clock, 5),
	}
}
