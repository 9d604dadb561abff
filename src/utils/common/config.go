package common

import (
	"context"

	"github.com/decentraland/thirdparty-registry/src/utils/config"
)

type configKey struct{}

func SetConfig(ctx context.Context, conf *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, conf)
}

func GetConfig(ctx context.Context) (out *config.Config) {
	out, _ = ctx.Value(configKey{}).(*config.Config)
	return
}
