package sentiment

// Keyword lexicon for crypto headline scoring. Terms are matched against
// lower-cased whole words after punctuation stripping.

var bullishWords = map[string]bool{
	"surge":         true,
	"surges":        true,
	"rally":         true,
	"rallies":       true,
	"soar":          true,
	"soars":         true,
	"jump":          true,
	"jumps":         true,
	"gain":          true,
	"gains":         true,
	"bull":          true,
	"bullish":       true,
	"breakout":      true,
	"record":        true,
	"high":          true,
	"highs":         true,
	"adoption":      true,
	"approval":      true,
	"approves":      true,
	"etf":           true,
	"institutional": true,
	"accumulate":    true,
	"accumulation":  true,
	"upgrade":       true,
	"partnership":   true,
	"halving":       true,
	"rebound":       true,
	"recovery":      true,
	"growth":        true,
	"milestone":     true,
	"optimism":      true,
	"buy":           true,
	"buying":        true,
}

var bearishWords = map[string]bool{
	"crash":       true,
	"crashes":     true,
	"plunge":      true,
	"plunges":     true,
	"drop":        true,
	"drops":       true,
	"fall":        true,
	"falls":       true,
	"slump":       true,
	"slumps":      true,
	"tumble":      true,
	"tumbles":     true,
	"bear":        true,
	"bearish":     true,
	"selloff":     true,
	"dump":        true,
	"hack":        true,
	"hacked":      true,
	"exploit":     true,
	"scam":        true,
	"fraud":       true,
	"ban":         true,
	"bans":        true,
	"crackdown":   true,
	"lawsuit":     true,
	"sec":         true,
	"regulation":  true,
	"fear":        true,
	"panic":       true,
	"liquidated":  true,
	"liquidation": true,
	"bankruptcy":  true,
	"collapse":    true,
	"warning":     true,
	"risk":        true,
	"sell":        true,
	"selling":     true,
	"low":         true,
	"lows":        true,
}
