// Command accumlog maintains accumulator logs in a local directory store.
//
//	accumlog --log <uuid> [--dir <store>] add <hex leaf>...
//	accumlog --log <uuid> root
//	accumlog --log <uuid> proof <position>
//	accumlog --log <uuid> verify <position> <root> [<proof element>...]
//	accumlog --key <pem> keygen
//	accumlog --log <uuid> --key <pem> seal
//	accumlog --log <uuid> --key <pem> checkpoint [<leaf count>]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-merkleaccumulator/merklelog"
	"github.com/forestrie/go-merkleaccumulator/storage"
	"github.com/google/uuid"
	"github.com/spf13/pflag"
)

var errUsage = errors.New("usage")

type config struct {
	dir      string
	logID    string
	issuer   string
	keyPath  string
	keyID    string
	logLevel string
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "accumlog: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	var cfg config
	flags := pflag.NewFlagSet("accumlog", pflag.ContinueOnError)
	flags.StringVar(&cfg.dir, "dir", ".", "object store directory")
	flags.StringVar(&cfg.logID, "log", "", "log uuid")
	flags.StringVar(&cfg.issuer, "issuer", "accumlog", "issuer claim for sealed checkpoints")
	flags.StringVar(&cfg.keyPath, "key", "", "PEM encoded P-256 private key used to seal and verify checkpoints")
	flags.StringVar(&cfg.keyID, "kid", "accumlog-key", "key identifier for sealed checkpoints")
	flags.StringVar(&cfg.logLevel, "log-level", "NOOP", "logger level")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		return fmt.Errorf("%w: a command is required", errUsage)
	}

	logger.New(cfg.logLevel)
	defer logger.OnExit()
	log := logger.Sugar.WithServiceName("accumlog")

	cmd, cmdArgs := flags.Arg(0), flags.Args()[1:]
	if cmd == "keygen" {
		return keygen(cfg, out)
	}

	logID, err := uuid.Parse(cfg.logID)
	if err != nil {
		return fmt.Errorf("%w: --log must be a uuid: %v", errUsage, err)
	}
	store, err := storage.NewDirStore(log, cfg.dir)
	if err != nil {
		return err
	}
	committer, err := merklelog.NewCommitter(merklelog.CommitterConfig{Issuer: cfg.issuer}, log, store)
	if err != nil {
		return err
	}
	c := command{cfg: cfg, logID: logID, committer: committer, out: out}

	switch cmd {
	case "add":
		return c.add(ctx, cmdArgs)
	case "root":
		return c.root(ctx)
	case "proof":
		return c.proof(ctx, cmdArgs)
	case "verify":
		return c.verify(ctx, cmdArgs)
	case "seal":
		return c.seal(ctx)
	case "checkpoint":
		return c.checkpoint(ctx, cmdArgs)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}
