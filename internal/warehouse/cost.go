package warehouse

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrDeclined is returned by Guard.Check when the operator declines to run
// a query whose estimated cost exceeds the warning threshold.
var ErrDeclined = errors.New("query declined by operator")

// EstimateUSD converts bytes processed to an on-demand cost estimate.
func EstimateUSD(bytes int64, pricePerTiBUSD float64) float64 {
	const tib = 1 << 40
	return float64(bytes) / tib * pricePerTiBUSD
}

// Guard dry-runs queries before they are billed. Estimates above WarnUSD
// require confirmation through Confirm; estimates below run silently.
type Guard struct {
	Estimator      Estimator
	PricePerTiBUSD float64
	WarnUSD        float64

	// Confirm decides whether an expensive query may run. Nil means
	// prompt on stdin.
	Confirm func(prompt string) bool
}

// Check estimates the query cost and returns ErrDeclined when the
// operator refuses an expensive query. The estimated bytes are returned
// for logging either way.
func (g *Guard) Check(ctx context.Context, sql string) (int64, error) {
	bytes, err := g.Estimator.EstimateBytes(ctx, sql)
	if err != nil {
		return 0, err
	}

	cost := EstimateUSD(bytes, g.PricePerTiBUSD)
	if cost <= g.WarnUSD {
		return bytes, nil
	}

	confirm := g.Confirm
	if confirm == nil {
		confirm = confirmStdin
	}
	if !confirm(fmt.Sprintf("Estimated query cost: $%.4f. Continue? (y/N): ", cost)) {
		return bytes, ErrDeclined
	}
	return bytes, nil
}

// stdin is shared across prompts: a fresh bufio.Reader per prompt could
// buffer past the first newline and drop input typed ahead for the next
// guarded query.
var stdin *bufio.Reader

func confirmStdin(prompt string) bool {
	fmt.Fprint(os.Stderr, prompt)
	if stdin == nil {
		stdin = bufio.NewReader(os.Stdin)
	}
	line, err := stdin.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "y")
}
