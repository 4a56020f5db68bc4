// Package datasource provides data fetching from the external collaborators
// of the analysis pipeline: the market-data provider (Yahoo Finance) and the
// two best-effort news sources. Market data is mandatory: a failed or empty
// fetch fails the whole analysis. News is soft: every failure degrades to
// fewer (possibly zero) headlines and is never raised to the caller.
package datasource

import "fmt"

// ErrNoData indicates the market-data provider returned no usable series for
// a symbol. This is the fatal fetch-failure condition: callers surface it as
// "no data for symbol" and run no further stages.
type ErrNoData struct {
	Symbol string
}

func (e *ErrNoData) Error() string {
	return fmt.Sprintf("no data for symbol %s", e.Symbol)
}
