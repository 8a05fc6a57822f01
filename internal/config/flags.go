// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// modelList collects a comma separated list of model identifiers.
// It implements the flag.Value interface.
type modelList []string

// ParseFlags parses all configuration flags from the process command line.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-r remote container server address used by the client
//	-d database DSN
//	-local-store client SQLite store path
//	-flags-file client flag file path
//	-c/-config json file path with configs
//	-hash-key security hash key
//	-version application version
//	-request-timeout server request timeout (e.g., "30s", "1m")
//	-adapter-timeout client request timeout
//	-sync-interval autosave interval
//	-probe-interval connectivity probe interval
//	-probe-max-interval connectivity probe back-off cap
//	-models comma separated model identifiers
//	-container remote container identifier
//	-sync-mode automatic|manual
//	-merge-policy local-wins|remote-wins
//	-log-file client log file path
func ParseFlags() *StructuredConfig {
	// flag.CommandLine exits on error, so the returned error is always nil.
	cfg, _ := parseFlagSet(flag.CommandLine, os.Args[1:])
	return cfg
}

func parseFlagSet(fs *flag.FlagSet, args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var remoteAddress string
	var databaseDSN string
	var localStorePath string
	var flagsFilePath string
	var jsonConfigPath string
	var hashKey string
	var version string
	var requestTimeout time.Duration
	var adapterTimeout time.Duration
	var syncInterval time.Duration
	var probeInterval time.Duration
	var probeMaxInterval time.Duration
	var storeModels modelList
	var container string
	var syncMode string
	var mergePolicy string
	var logFile string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&remoteAddress, "r", "", "Remote container server address")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&localStorePath, "local-store", "", "Local store path")
	fs.StringVar(&flagsFilePath, "flags-file", "", "Flag file path")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&hashKey, "hash-key", "", "Security hash key")
	fs.StringVar(&version, "version", "", "Application version")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Server request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&adapterTimeout, "adapter-timeout", 0, "Client request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Autosave interval")
	fs.DurationVar(&probeInterval, "probe-interval", 0, "Connectivity probe interval")
	fs.DurationVar(&probeMaxInterval, "probe-max-interval", 0, "Connectivity probe back-off cap")
	fs.Var(&storeModels, "models", "Comma separated model identifiers")
	fs.StringVar(&container, "container", "", "Remote container identifier")
	fs.StringVar(&syncMode, "sync-mode", "", "Sync mode: automatic|manual")
	fs.StringVar(&mergePolicy, "merge-policy", "", "Merge policy: local-wins|remote-wins")
	fs.StringVar(&logFile, "log-file", "", "Client log file path")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			HashKey: hashKey,
			Version: version,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Local: Local{
				Path: localStorePath,
			},
			Flags: Flags{
				Path: flagsFilePath,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    remoteAddress,
			RequestTimeout: adapterTimeout,
		},
		Workers: Workers{
			SyncInterval:     syncInterval,
			ProbeInterval:    probeInterval,
			ProbeMaxInterval: probeMaxInterval,
		},
		Store: Store{
			Models:      storeModels,
			Container:   container,
			SyncMode:    syncMode,
			MergePolicy: mergePolicy,
		},
		Log: Log{
			FilePath: logFile,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

func (m *modelList) String() string {
	if m == nil {
		return ""
	}
	return strings.Join(*m, ",")
}

// Set splits s on commas, trimming blanks and dropping empty items.
func (m *modelList) Set(s string) error {
	for item := range strings.SplitSeq(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			*m = append(*m, item)
		}
	}
	return nil
}
