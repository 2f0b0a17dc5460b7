// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"net"
	"net/url"
	"os"
	"runtime"
	"runtime/debug"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spezifisch/lmsview/discovery"
	"github.com/spezifisch/lmsview/engine"
	"github.com/spezifisch/lmsview/lms"
	"github.com/spezifisch/lmsview/logger"
	"github.com/spezifisch/lmsview/remote"
	"github.com/spf13/viper"
)

var osExit = os.Exit  // A variable to allow mocking os.Exit in tests
var headlessMode bool // This can be set to true during tests
var testMode bool     // This can be set to true during tests, too

// exit code of a run stopped by testMode
const testModeExit = 0x23420001

const DEVELOPMENT = "development"

// clientName is shown in the footer and --version
const clientName = "lmsview"

// Version is the program version; usually set from BuildInfo
var Version string = DEVELOPMENT

func setConfigDefaults() {
	viper.SetDefault("server.host", "127.0.0.1:9000")
	viper.SetDefault("server.timeout", lms.DEFAULT_TIMEOUT)
	viper.SetDefault("server.discover", false)
	viper.SetDefault("server.mdns-service", discovery.DefaultService)
	viper.SetDefault("client.tick", time.Second)
	viper.SetDefault("client.mpris", false)
}

// readConfig loads the optional config file. A file given with --config must
// exist; the default locations may have none.
func readConfig(configFile *string) error {
	setConfigDefaults()

	// LMSVIEW_SERVER_HOST, LMSVIEW_SERVER_MDNS_SERVICE, ...
	viper.SetEnvPrefix("LMSVIEW")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if configFile != nil && *configFile != "" {
		// use custom config file
		viper.SetConfigFile(*configFile)
	} else {
		// lookup default dirs
		viper.SetConfigName("lmsview")
		viper.SetConfigType("toml")
		viper.AddConfigPath("$HOME/.config/lmsview")
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("config file error: %w", err)
		}
	}

	// validate
	for _, prop := range []string{"server.timeout", "client.tick"} {
		if viper.GetDuration(prop) <= 0 {
			return fmt.Errorf("config property %s must be a positive duration", prop)
		}
	}

	return nil
}

// parseConfig takes the server argument, [http[s]://]host:port, and stores it
// as server.host.
func parseConfig(arg string) error {
	host := arg
	if strings.Contains(arg, "://") {
		u, err := url.Parse(arg)
		if err != nil {
			return err
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("unsupported scheme %q", u.Scheme)
		}
		host = u.Host
	}
	if _, _, err := net.SplitHostPort(host); err != nil {
		return err
	}

	if strings.HasPrefix(arg, "https://") {
		host = "https://" + host
	}
	viper.Set("server.host", host)
	return nil
}

// discoverServer browses mDNS and stores the first server as server.host.
func discoverServer(logger *logger.Logger) error {
	service := viper.GetString("server.mdns-service")
	fmt.Printf("Looking for %s servers...\n", service)

	server, err := discovery.First(context.Background(), service, discovery.DefaultTimeout, logger)
	if err != nil {
		return err
	}
	fmt.Printf("Found %s at %s\n", server.Name, server.Address())
	viper.Set("server.host", server.Address())
	return nil
}

func printServerInfo(host string, info engine.Info) {
	fmt.Printf("Server %-12s: %s\n", "host", host)
	fmt.Printf("Server %-12s: %s\n", "version", info.Version)
	fmt.Printf("%-19s: %d\n", "Players", info.PlayerCount)
	for _, p := range info.Players {
		fmt.Printf("  %-17s: %s\n", p.Name, p.ID)
	}
}

// return codes:
// 0 - OK
// 1 - generic errors, server unreachable
// 2 - config errors
func main() {
	// parse flags and config
	help := flag.Bool("help", false, "Print usage")
	enableMpris := flag.Bool("mpris", false, "Enable MPRIS2")
	discover := flag.Bool("discover", false, "find the server with mDNS")
	list := flag.Bool("list", false, "list server version and players")
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile := flag.String("memprofile", "", "write memory profile to `file`")
	configFile := flag.String("config", "", "use config `file`")
	version := flag.Bool("version", false, "print the lmsview version and exit")

	flag.Parse()
	if *help {
		fmt.Printf("USAGE: %s <args> [[http://]server:port]\n", os.Args[0])
		flag.Usage()
		osExit(0)
		return
	}
	if Version == DEVELOPMENT {
		if bi, ok := debug.ReadBuildInfo(); ok {
			Version = bi.Main.Version
		}
	}
	if *version {
		fmt.Printf("%s %s\n", clientName, Version)
		osExit(0)
		return
	}

	// cpu/memprofile code straight from https://pkg.go.dev/runtime/pprof
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close() // error handling omitted for example
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	// config gathering
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Failed to read .env: %v\n", err)
		osExit(2)
		return
	}

	if err := readConfig(configFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read configuration: %v\n", err)
		osExit(2)
		return
	}

	hostGiven := len(flag.Args()) > 0
	if hostGiven {
		if err := parseConfig(flag.Arg(0)); err != nil {
			fmt.Printf("Invalid server %q: %v\n", flag.Arg(0), err)
			fmt.Printf("Usage: %s <args> [[http://]server:port]\n", os.Args[0])
			osExit(2)
			return
		}
	}

	palette, err := newPalette(viper.GetViper())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read colors: %v\n", err)
		osExit(2)
		return
	}

	if testMode {
		fmt.Println("Running in test mode for testing.")
		osExit(testModeExit)
		return
	}

	logger := logger.Init()

	// an explicit server argument wins over discovery
	if !hostGiven && (*discover || viper.GetBool("server.discover")) {
		if err := discoverServer(logger); err != nil {
			fmt.Printf("Server discovery failed: %s\n", err)
			osExit(1)
			return
		}
	}

	connection := lms.Init(logger)
	connection.Host = viper.GetString("server.host")
	connection.Timeout = viper.GetDuration("server.timeout")

	info, err := engine.ServerInfo(context.Background(), connection)
	if err != nil {
		fmt.Printf("Error connecting to %s: %s\n", connection.Endpoint(), err)
		osExit(1)
		return
	}

	if *list {
		printServerInfo(connection.Host, info)
		osExit(0)
		return
	}

	var publisher remote.Publisher
	// init mpris2 (linux only but fails gracefully on other systems)
	if *enableMpris || viper.GetBool("client.mpris") {
		mprisPlayer, err := remote.RegisterMprisPlayer(logger)
		if err != nil {
			fmt.Printf("Unable to register MPRIS with DBUS: %s\n", err)
			fmt.Println("Try running without MPRIS")
			osExit(1)
			return
		}
		defer mprisPlayer.Close()
		publisher = mprisPlayer
	}

	if headlessMode {
		fmt.Println("Running in headless mode for testing.")
		osExit(0)
		return
	}

	logger.Printf("connected to %s (LMS %s, %d players)", connection.Host, info.Version, info.PlayerCount)
	ui := InitGui(engine.New(connection, logger), palette, viper.GetDuration("client.tick"), logger, publisher)

	// run main loop
	if err := ui.Run(); err != nil {
		panic(err)
	}

	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			log.Fatal("could not create memory profile: ", err)
		}
		defer f.Close() // error handling omitted for example
		runtime.GC()    // get up-to-date statistics
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal("could not write memory profile: ", err)
		}
	}
}
