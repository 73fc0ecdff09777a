package pipeline

import (
	"math"
	"testing"
)

func TestResolveLagReachesTarget(t *testing.T) {
	tests := []struct {
		scenario Scenario
		target   float64
		severity Severity
	}{
		{Peak, 120000, SevWarn},
		{HotPartition, 500000, SevError},
		{SlowDownstream, 220000, SevError},
		{HeavyLogic, 300000, SevWarn},
		{RetryStorm, 800000, SevError},
	}

	for _, tt := range tests {
		t.Run(string(tt.scenario), func(t *testing.T) {
			start := Resolve(tt.scenario, 0, tt.target)
			end := Resolve(tt.scenario, 1, tt.target)
			if start.Lag != 0 {
				t.Errorf("Lag at start = %d, want 0", start.Lag)
			}
			if end.Lag != int(tt.target) {
				t.Errorf("Lag at end = %d, want %d", end.Lag, int(tt.target))
			}
			if end.Severity != tt.severity {
				t.Errorf("Severity = %v, want %v", end.Severity, tt.severity)
			}

			prev := -1
			for i := 0; i <= 20; i++ {
				st := Resolve(tt.scenario, float64(i)/20, tt.target)
				if st.Lag < prev {
					t.Fatalf("Lag decreased at step %d: %d < %d", i, st.Lag, prev)
				}
				prev = st.Lag
			}
		})
	}
}

func TestResolveBaseline(t *testing.T) {
	st := Resolve(Baseline, 0.7, 0)
	if st.Lag != 0 || st.Severity != SevSteady || st.SourceRate != 1000 {
		t.Errorf("Unexpected baseline: %+v", st)
	}
	for i := 0; i < Partitions; i++ {
		if st.Consumers[i] != Steady || st.PartHot[i] {
			t.Errorf("Consumer %d not steady", i)
		}
	}
	if st.ESOverloaded() {
		t.Error("Baseline must not overload ES")
	}
}

func TestHotPartitionOnlyBlocksOneConsumer(t *testing.T) {
	st := Resolve(HotPartition, 1, 500000)
	for i := 0; i < Partitions; i++ {
		hot := i == HotIndex
		if st.PartHot[i] != hot {
			t.Errorf("Partition %d hot=%v", i, st.PartHot[i])
		}
		if (st.Consumers[i] == Blocked) != hot {
			t.Errorf("Consumer %d state %v", i, st.Consumers[i])
		}
	}
	if math.Abs(st.PartFill[HotIndex]-0.95) > 1e-9 {
		t.Errorf("Hot partition fill = %f", st.PartFill[HotIndex])
	}
}

func TestRetryStormAlternates(t *testing.T) {
	st := Resolve(RetryStorm, 0.5, 800000)
	for i := 0; i < Partitions; i++ {
		want := Waiting
		if i%2 == 0 {
			want = Blocked
		}
		if st.Consumers[i] != want {
			t.Errorf("Consumer %d = %v, want %v", i, st.Consumers[i], want)
		}
	}
}

func TestSlowDownstreamOverloadsES(t *testing.T) {
	st := Resolve(SlowDownstream, 1, 220000)
	if !st.ESOverloaded() {
		t.Errorf("ES meter %f should overload", st.ESMeter)
	}
	if st.IndexingLatency() != 116 {
		t.Errorf("Latency = %d, want 116", st.IndexingLatency())
	}
	if int(st.DashDelay) != 45 {
		t.Errorf("Dashboard delay = %f", st.DashDelay)
	}
}

func TestThousands(t *testing.T) {
	cases := map[int]string{
		0:      "0",
		8000:   "8,000",
		800000: "800,000",
	}
	for n, want := range cases {
		if got := Thousands(n); got != want {
			t.Errorf("Thousands(%d) = %q, want %q", n, got, want)
		}
	}
}
