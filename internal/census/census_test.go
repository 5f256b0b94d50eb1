package census

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/talgya/estajoj/internal/agents"
)

func agent(id agents.AgentID, sex agents.Sex, life, hunger, ambition float32) agents.Agent {
	return agents.Agent{
		ID:    id,
		Sex:   sex,
		Life:  life,
		Needs: agents.Needs{Hunger: hunger, Ambition: ambition},
	}
}

func TestTakeCounts(t *testing.T) {
	pop := []agents.Agent{
		agent(0, agents.SexMale, 100, 10, 50),
		agent(1, agents.SexFemale, 50, 90, 80),
		agent(2, agents.SexFemale, 75, 29, 71),
		agent(3, agents.SexMale, 25, 30, 70),
	}

	s := Take(7, pop)
	if s.Tick != 7 || s.Total != 4 {
		t.Errorf("unexpected tick/total %d/%d", s.Tick, s.Total)
	}
	if s.Males != 2 || s.Females != 2 {
		t.Errorf("expected 2 males and 2 females, got %d and %d", s.Males, s.Females)
	}
	// Thresholds are strict: 30 is not hungry and 70 is not ambitious.
	if s.Hungry != 2 {
		t.Errorf("expected 2 hungry, got %d", s.Hungry)
	}
	if s.Ambitious != 2 {
		t.Errorf("expected 2 ambitious, got %d", s.Ambitious)
	}
	if s.LifeMean != 62.5 {
		t.Errorf("expected life mean 62.5, got %v", s.LifeMean)
	}
	// Sample standard deviation of 100, 50, 75, 25.
	if want := math.Sqrt(3125.0 / 3); math.Abs(s.LifeStdDev-want) > 1e-9 {
		t.Errorf("expected life stddev %v, got %v", want, s.LifeStdDev)
	}
}

func TestTakeSmallPopulations(t *testing.T) {
	empty := Take(1, nil)
	if empty.Total != 0 || empty.LifeMean != 0 || empty.LifeStdDev != 0 {
		t.Errorf("empty census should be all zero, got %+v", empty)
	}

	one := Take(1, []agents.Agent{agent(0, agents.SexMale, 40, 60, 20)})
	if one.LifeMean != 40 || one.LifeStdDev != 0 {
		t.Errorf("single agent census: mean %v stddev %v", one.LifeMean, one.LifeStdDev)
	}
}

func TestLogWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "census.csv")
	l, err := NewLog(path)
	if err != nil {
		t.Fatal(err)
	}

	for tick := uint32(1); tick <= 3; tick++ {
		if err := l.Write(Snapshot{Tick: tick, Total: 5}); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if l.Rows() != 3 {
		t.Errorf("expected 3 rows, got %d", l.Rows())
	}
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "tick,total,males") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if strings.Count(string(data), "tick,") != 1 {
		t.Error("header written more than once")
	}
}

func TestNilLogIsDisabled(t *testing.T) {
	l, err := NewLog("")
	if err != nil || l != nil {
		t.Fatalf("empty path should disable the log, got %v, %v", l, err)
	}
	if err := l.Write(Snapshot{}); err != nil {
		t.Errorf("nil log Write: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Errorf("nil log Close: %v", err)
	}
}
