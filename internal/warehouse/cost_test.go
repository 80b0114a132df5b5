package warehouse

import (
	"bufio"
	"context"
	"errors"
	"math"
	"strings"
	"testing"
)

type fakeEstimator struct {
	bytes int64
	err   error
}

func (f *fakeEstimator) EstimateBytes(ctx context.Context, sql string) (int64, error) {
	return f.bytes, f.err
}

func TestEstimateUSD(t *testing.T) {
	tests := []struct {
		name        string
		bytes       int64
		pricePerTiB float64
		want        float64
	}{
		{"zero bytes", 0, 6.25, 0},
		{"one TiB", 1 << 40, 6.25, 6.25},
		{"half TiB", 1 << 39, 6.25, 3.125},
		{"one GiB", 1 << 30, 5.0, 5.0 / 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateUSD(tt.bytes, tt.pricePerTiB)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("EstimateUSD(%d, %v) = %v, want %v", tt.bytes, tt.pricePerTiB, got, tt.want)
			}
		})
	}
}

func TestGuardCheapQueryRunsWithoutPrompt(t *testing.T) {
	g := &Guard{
		Estimator:      &fakeEstimator{bytes: 1 << 20}, // ~$0.000006
		PricePerTiBUSD: 6.25,
		WarnUSD:        0.001,
		Confirm: func(string) bool {
			t.Fatal("Confirm should not be called for a cheap query")
			return false
		},
	}

	bytes, err := g.Check(context.Background(), "SELECT 1")
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if bytes != 1<<20 {
		t.Errorf("Check() bytes = %d, want %d", bytes, 1<<20)
	}
}

func TestGuardExpensiveQueryPrompts(t *testing.T) {
	prompted := false
	g := &Guard{
		Estimator:      &fakeEstimator{bytes: 1 << 40}, // $6.25
		PricePerTiBUSD: 6.25,
		WarnUSD:        0.001,
		Confirm: func(prompt string) bool {
			prompted = true
			return true
		},
	}

	if _, err := g.Check(context.Background(), "SELECT *"); err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if !prompted {
		t.Error("expected a confirmation prompt for an expensive query")
	}
}

func TestGuardDeclined(t *testing.T) {
	g := &Guard{
		Estimator:      &fakeEstimator{bytes: 1 << 40},
		PricePerTiBUSD: 6.25,
		WarnUSD:        0.001,
		Confirm:        func(string) bool { return false },
	}

	_, err := g.Check(context.Background(), "SELECT *")
	if !errors.Is(err, ErrDeclined) {
		t.Errorf("Check() error = %v, want ErrDeclined", err)
	}
}

func TestConfirmStdinSequentialPrompts(t *testing.T) {
	// Input typed ahead for later prompts must survive between prompts:
	// the report runs several guarded queries against one stdin.
	orig := stdin
	defer func() { stdin = orig }()
	stdin = bufio.NewReader(strings.NewReader("y\nn\nY\n"))

	want := []bool{true, false, true}
	for i, w := range want {
		if got := confirmStdin("Continue? (y/N): "); got != w {
			t.Errorf("prompt %d = %v, want %v", i, got, w)
		}
	}
}

func TestConfirmStdinEOF(t *testing.T) {
	orig := stdin
	defer func() { stdin = orig }()
	stdin = bufio.NewReader(strings.NewReader(""))

	if confirmStdin("Continue? (y/N): ") {
		t.Error("confirmStdin() at EOF should decline")
	}
}

func TestGuardEstimatorError(t *testing.T) {
	wantErr := errors.New("dry run failed")
	g := &Guard{
		Estimator:      &fakeEstimator{err: wantErr},
		PricePerTiBUSD: 6.25,
		WarnUSD:        0.001,
	}

	if _, err := g.Check(context.Background(), "SELECT 1"); !errors.Is(err, wantErr) {
		t.Errorf("Check() error = %v, want %v", err, wantErr)
	}
}
