package config

import (
	"errors"
	"flag"
	"net"
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

// ParseFlags parses all agent configuration flags.
//
// Flags:
//
//	-a agent API address in format [host]:[port]
//	-d database DSN
//	-backup-dir backup file directory
//	-skip-migrations skip the schema migration run at startup
//	-device-name device display name announced to the sync peer
//	-log-level minimum log level (debug, info, warn, error)
//	-c/-config json file path with configs
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-listen sync listen address in format [host]:[port]
//	-profile pairing profile (local, remote)
//	-chunk-capacity maximum fragment length per pairing code part
//	-open-wait how long the joiner waits for the channel to open
//	-retention how long deleted records are kept
//	-sweep-interval how often the tombstone sweeper runs
func ParseFlags() *AgentConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var backupDir string
	var skipMigrations bool
	var deviceName string
	var logLevel string
	var jsonConfigPath string
	var requestTimeout time.Duration
	var listenAddress string
	var pairingProfile string
	var chunkCapacity int
	var openWaitTimeout time.Duration
	var tombstoneRetention time.Duration
	var sweepInterval time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&backupDir, "backup-dir", "", "Backup file directory")
	flag.BoolVar(&skipMigrations, "skip-migrations", false, "Skip schema migrations at startup")
	flag.StringVar(&deviceName, "device-name", "", "Device display name")
	flag.StringVar(&logLevel, "log-level", "", "Minimum log level (debug, info, warn, error)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&listenAddress, "listen", "", "Sync listen address host:port")
	flag.StringVar(&pairingProfile, "profile", "", "Pairing profile (local, remote)")
	flag.IntVar(&chunkCapacity, "chunk-capacity", 0, "Maximum fragment length per pairing code part")
	flag.DurationVar(&openWaitTimeout, "open-wait", 0, "Joiner open-wait timeout (e.g., 60s)")
	flag.DurationVar(&tombstoneRetention, "retention", 0, "Tombstone retention period (e.g., 720h)")
	flag.DurationVar(&sweepInterval, "sweep-interval", 0, "Tombstone sweep interval (e.g., 1h)")

	flag.Parse()

	return &AgentConfig{
		App: App{
			DeviceName: deviceName,
			LogLevel:   logLevel,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			BackupDir:      backupDir,
			SkipMigrations: skipMigrations,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Sync: Sync{
			ListenAddress:   listenAddress,
			PairingProfile:  pairingProfile,
			ChunkCapacity:   chunkCapacity,
			OpenWaitTimeout: openWaitTimeout,
		},
		Workers: Workers{
			TombstoneRetention: tombstoneRetention,
			SweepInterval:      sweepInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string so the merge
// step treats the address as unset.
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
