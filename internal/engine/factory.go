package engine

import "llm-stock-advisor/internal/interfaces"

func New(d Deps) interfaces.Engine {
	return newEngine(d)
}
