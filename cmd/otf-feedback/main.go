package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	otffb "github.com/nsip/otf-feedback"
	"github.com/nsip/otf-feedback/internal/scorer"
	"github.com/peterbourgon/ff/v3"
)

func main() {

	fs := flag.NewFlagSet("otf-feedback", flag.ExitOnError)
	var (
		_             = fs.String("config", "", "config file (optional), json format.")
		serviceName   = fs.String("name", "", "name for this feedback service instance, leave blank to auto-generate a name")
		serviceID     = fs.String("id", "", "id for this feedback service instance, leave blank to auto-generate a unique id")
		serviceHost   = fs.String("host", "localhost", "name/address of host for this service")
		servicePort   = fs.Int("port", 0, "port to run service on, if not specified will assign an available port automatically")
		scorerURL     = fs.String("scorerURL", "", "endpoint of the external scoring service, leave blank to disable /review")
		scorerToken   = fs.String("scorerToken", "", "access token sent to the scoring service")
		scorerTimeout = fs.Duration("scorerTimeout", scorer.DefaultTimeout, "time limit for a single scoring call")
		debug         = fs.Bool("debug", false, "log at debug level")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.JSONParser),
		ff.WithEnvVarPrefix("OTF_FEEDBACK_SRVC"),
	); err != nil {
		fmt.Printf("\nCannot read otf-feedback configuration:\n%s\n\n", err)
		os.Exit(1)
	}

	opts := []otffb.Option{
		otffb.Name(*serviceName),
		otffb.ID(*serviceID),
		otffb.Host(*serviceHost),
		otffb.Port(*servicePort),
		otffb.ScorerURL(*scorerURL),
		otffb.ScorerToken(*scorerToken),
		otffb.ScorerTimeout(*scorerTimeout),
		otffb.Debug(*debug),
	}

	srvc, err := otffb.New(opts...)
	if err != nil {
		fmt.Printf("\nCannot create otf-feedback service:\n%s\n\n", err)
		os.Exit(1)
	}

	srvc.PrintConfig()

	// signal handler for shutdown
	closed := make(chan struct{})
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Println("\notf-feedback shutting down")
		srvc.Shutdown()
		fmt.Println("otf-feedback closed")
		close(closed)
	}()

	srvc.Start()

	// block until shutdown by sig-handler
	<-closed

}
