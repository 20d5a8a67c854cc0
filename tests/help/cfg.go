package help

import (
	"github.com/Borislavv/go-roulette/config"
	"time"
)

func Cfg() *config.Run {
	c := &config.Run{
		Stream: config.StreamCfg{
			Generator:  config.GeneratorLCG,
			MasterSeed: 20241019,
			Stride:     config.DefaultStride,
		},
		Cutoff: &config.CutoffCfg{
			Threshold: 0.25,
			Survive:   1.0,
		},
		Diagnostics: config.DiagnosticsCfg{
			IsLogsEnabled: false,
			LogsInterval:  time.Second * 5,
			Namespace:     "roulette",
		},
		History: &config.HistoryCfg{
			Workers:       4,
			SourceWeight:  1.0,
			MaxCollisions: 1000,
			Leakage:       0.1,
			MaxAbsorption: 0.5,
		},
	}
	c.AdjustConfig()
	return c
}

func SplitMixCfg() *config.Run {
	c := Cfg()
	c.Stream.Generator = config.GeneratorSplitMix
	return c
}

func WindowCfg() *config.Run {
	c := Cfg()
	c.Cutoff = nil
	c.Window = &config.WindowCfg{
		Lower:         0.25,
		Upper:         1.0,
		SurvivalRatio: 3,
		MaxSplit:      10,
	}
	c.History.SourceWeight = 4
	return c
}

func TelemetryCfg() *config.Run {
	c := Cfg()
	c.Diagnostics.IsLogsEnabled = true
	c.Diagnostics.LogsInterval = 10 * time.Millisecond
	return c
}
