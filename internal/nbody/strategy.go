package nbody

import "fmt"

type Strategy string

const (
	StrategyDirect Strategy = "direct"
	StrategyTree   Strategy = "tree"
	StrategyPair   Strategy = "pair"
)

func Strategies() []Strategy {
	return []Strategy{StrategyDirect, StrategyPair, StrategyTree}
}

func ParseStrategy(name string) (Strategy, error) {
	for _, s := range Strategies() {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

func (s Strategy) String() string { return string(s) }
