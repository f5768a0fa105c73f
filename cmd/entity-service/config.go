package main

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/diwise/service-chassis/pkg/infrastructure/env"
)

type FlagType int
type FlagMap map[FlagType]string

const (
	listenAddress FlagType = iota
	servicePort

	configPath
	opaPath

	logFormat
)

type AppConfig struct {
	serviceConfig io.ReadCloser
	opaConfig     io.ReadCloser
}

func DefaultFlags() FlagMap {
	return FlagMap{
		listenAddress: "",
		servicePort:   "8080",
		configPath:    "/opt/diwise/config/entity-service.yaml",
		opaPath:       "/opt/diwise/config/authz.rego",
		logFormat:     "json",
	}
}

// parseExternalConfig lets environment variables override the defaults and
// command line flags override both
func parseExternalConfig(ctx context.Context, flags FlagMap) FlagMap {
	flags[servicePort] = env.GetVariableOrDefault(ctx, "SERVICE_PORT", flags[servicePort])
	flags[configPath] = env.GetVariableOrDefault(ctx, "ENTITY_SERVICE_CONFIG", flags[configPath])
	flags[opaPath] = env.GetVariableOrDefault(ctx, "POLICY_PATH", flags[opaPath])
	flags[logFormat] = env.GetVariableOrDefault(ctx, "LOG_FORMAT", flags[logFormat])

	apply := func(f FlagType) func(string) error {
		return func(value string) error {
			flags[f] = value
			return nil
		}
	}

	fs := flag.NewFlagSet("entity-service", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Func("listen", "address to listen on", apply(listenAddress))
	fs.Func("port", "port to listen on", apply(servicePort))
	fs.Func("config", "path to the service configuration file", apply(configPath))
	fs.Func("policies", "path to the authz policy file", apply(opaPath))
	fs.Func("log-format", "log format (json or text)", apply(logFormat))

	fs.Parse(os.Args[1:])

	return flags
}

func openConfigFiles(flags FlagMap) (*AppConfig, error) {
	cfgFile, err := os.Open(flags[configPath])
	if err != nil {
		return nil, err
	}

	policies, err := os.Open(flags[opaPath])
	if err != nil {
		cfgFile.Close()
		return nil, err
	}

	return &AppConfig{
		serviceConfig: cfgFile,
		opaConfig:     policies,
	}, nil
}
