package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/passkeylab/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-t float    step-up threshold
//	-p bool     platform credential API available
//	-x bool     reject every step-up verification
//	-q bool     zero all ceremony latencies
//	-m string   conversion metrics DSN
//	-l string   log level
//
// os.Args is filtered with flagx.FilterArgs so flags owned by other parsers
// do not interfere. Parse errors panic.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-t", "-p", "-x", "-q", "-m", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.Float64Var(&cfg.StepUpThreshold, "t", cfg.StepUpThreshold, "amounts above this require step-up authentication")
	fs.BoolVar(&cfg.PlatformCredentials, "p", cfg.PlatformCredentials, "platform credential API available")
	fs.BoolVar(&cfg.RejectStepUp, "x", cfg.RejectStepUp, "fail every step-up verification")
	quick := fs.Bool("q", false, "run ceremonies without simulated latency")
	fs.StringVar(&cfg.MetricsDSN, "m", cfg.MetricsDSN, "SQLite DSN for conversion metrics")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if *quick {
		cfg.PasskeyRegistrationDelay = 0
		cfg.PasswordRegistrationDelay = 0
		cfg.PasskeyLoginDelay = 0
		cfg.StepUpAnnouncementDelay = 0
		cfg.StepUpVerificationDelay = 0
	}
}
