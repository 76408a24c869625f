package grammar

import (
	"github.com/ppiankov/douessay/internal/cache"
	"github.com/ppiankov/douessay/internal/model"
)

// New builds the checker described by the config
func New(cfg model.GrammarConfig, store cache.Cache) Checker {
	if !cfg.Enabled {
		return Disabled{}
	}
	var c Checker = NewLanguageTool(cfg)
	if store != nil {
		c = NewCached(c, store, cfg.Language)
	}
	return c
}
