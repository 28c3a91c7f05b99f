package nakama

import (
	"context"
	"database/sql"

	"setgame/internal/app"
	"setgame/internal/config"
	"setgame/internal/rules"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires the coordinator, RPCs and match handler for the Nakama runtime.
// One coordinator serves every match in this process.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)

	if path := env[envGameConfig]; path != "" {
		if err := config.LoadGameConfig(path); err != nil {
			logger.Warn("InitModule: Could not load game config: %v", err)
		}
	}
	gameCfg := config.GetGameConfig()

	engine := rules.NewEngine(rules.Config{
		Attributes: gameCfg.Attributes,
		Values:     gameCfg.Values,
		BoardSize:  gameCfg.BoardSize,
	}, nil)
	rulesCfg := engine.Config()
	logger.Info("InitModule: rules %d attributes x %d values, board %d", rulesCfg.Attributes, rulesCfg.Values, rulesCfg.BoardSize)
	store := NewNakamaRoomStore(nk, env[envStorageCollection])
	coord := app.NewCoordinator(store, engine, app.WithQueueSize(gameCfg.CommandQueueSize))

	go func() {
		if err := coord.Run(context.Background()); err != nil {
			logger.Error("Coordinator stopped: %v", err)
		}
	}()

	bindings := newRoomBindings()

	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameSet, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return newMatchHandler(coord, bindings), nil
	}); err != nil {
		return err
	}

	logger.Info("Set Go module loaded.")
	return nil
}
